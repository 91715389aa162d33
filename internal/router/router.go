package router

import (
	"github.com/gin-gonic/gin"

	"github.com/LilKangoo/cypruseye-backend/internal/booking"
	"github.com/LilKangoo/cypruseye-backend/internal/catalog"
	"github.com/LilKangoo/cypruseye-backend/internal/coupon"
	"github.com/LilKangoo/cypruseye-backend/internal/middleware"
	"github.com/LilKangoo/cypruseye-backend/internal/pricing"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Catalog *catalog.Handler
	Booking *booking.Handler
	Coupon  *coupon.Handler
}

func Mount(r *gin.Engine, h Handlers) {
	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public catalog + price previews
	r.GET("/services", h.Catalog.ListServices())
	r.GET("/services/:id", h.Catalog.GetService())
	r.POST("/pricing/preview", pricing.PreviewHandler())

	// Coupon quotes work anonymously; a token only adds per-user context.
	r.POST("/coupons/quote", middleware.AuthOptional(), h.Coupon.Quote())

	bookings := r.Group("/bookings", middleware.AuthRequired())
	{
		bookings.POST("", h.Booking.CreateBooking())
		bookings.GET("", h.Booking.ListBookings())
		bookings.GET("/:id", h.Booking.GetBooking())
	}

	admin := r.Group("/admin", middleware.AuthRequired(), middleware.RequireRole("admin", "service_role"))
	{
		admin.GET("/bookings", h.Booking.ListAllBookings())
	}
}
