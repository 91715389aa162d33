package pricing

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

//
// --------------------------------------------------
// POST /pricing/preview
// --------------------------------------------------
//

type previewRequest struct {
	Item  Item       `json:"item"`
	Party PartyInput `json:"party"`
}

// PreviewHandler prices an inline item. Price previews always render a
// number, so the only rejected input is an unreadable body.
func PreviewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {

		var req previewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		c.JSON(http.StatusOK, Calculate(req.Item, req.Party))
	}
}
