package coupon

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	quoter *Quoter
}

func NewHandler(quoter *Quoter) *Handler {
	return &Handler{quoter: quoter}
}

//
// --------------------------------------------------
// POST /coupons/quote
// --------------------------------------------------
//

type quoteRequestBody struct {
	ServiceType  string     `json:"service_type"`
	CouponCode   string     `json:"coupon_code"`
	BaseTotal    float64    `json:"base_total"`
	ServiceAt    *time.Time `json:"service_at"`
	ResourceID   string     `json:"resource_id"`
	CategoryKeys []string   `json:"category_keys"`
}

// Quote answers 200 for both accepted and rejected coupons; the client
// inspects ok/message, the same way the booking form does.
func (h *Handler) Quote() gin.HandlerFunc {
	return func(c *gin.Context) {

		var body quoteRequestBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		req := QuoteRequest{
			ServiceType:  body.ServiceType,
			CouponCode:   body.CouponCode,
			BaseTotal:    body.BaseTotal,
			ServiceAt:    body.ServiceAt,
			ResourceID:   body.ResourceID,
			CategoryKeys: body.CategoryKeys,
		}

		// User identity comes from the verified token when present;
		// anonymous quotes are allowed.
		if userID, exists := c.Get("userID"); exists {
			req.UserID, _ = userID.(string)
		}
		if userEmail, exists := c.Get("userEmail"); exists {
			req.UserEmail, _ = userEmail.(string)
		}

		c.JSON(http.StatusOK, h.quoter.Quote(c.Request.Context(), req))
	}
}
