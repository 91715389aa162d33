package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

//
// --------------------------------------------------
// POST /bookings
// --------------------------------------------------
//

func (h *Handler) CreateBooking() gin.HandlerFunc {
	return func(c *gin.Context) {

		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userEmail, _ := c.Get("userEmail")
		email, _ := userEmail.(string)

		var in CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		b, err := h.service.CreateBooking(
			c.Request.Context(),
			userID.(string),
			email,
			in,
		)
		if err != nil {
			var rejected *ErrCouponRejected
			switch {
			case errors.Is(err, ErrServiceNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			case errors.As(err, &rejected):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": rejected.Reason})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create booking"})
			}
			return
		}

		c.JSON(http.StatusCreated, b)
	}
}

//
// --------------------------------------------------
// GET /bookings/:id
// --------------------------------------------------
//

func (h *Handler) GetBooking() gin.HandlerFunc {
	return func(c *gin.Context) {

		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		b, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}

		// Bookings are only visible to their owner.
		if b.UserID != userID.(string) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}

		c.JSON(http.StatusOK, b)
	}
}

//
// --------------------------------------------------
// GET /bookings
// --------------------------------------------------
//

func (h *Handler) ListBookings() gin.HandlerFunc {
	return func(c *gin.Context) {

		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		bookings, err := h.service.ListBookings(c.Request.Context(), userID.(string))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list bookings"})
			return
		}

		c.JSON(http.StatusOK, bookings)
	}
}

//
// --------------------------------------------------
// GET /admin/bookings
// --------------------------------------------------
//

func (h *Handler) ListAllBookings() gin.HandlerFunc {
	return func(c *gin.Context) {

		bookings, err := h.service.AllBookings(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list bookings"})
			return
		}

		c.JSON(http.StatusOK, bookings)
	}
}
