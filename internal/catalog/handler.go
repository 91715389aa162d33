package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

//
// --------------------------------------------------
// GET /services?type=hotel
// --------------------------------------------------
//

func (h *Handler) ListServices() gin.HandlerFunc {
	return func(c *gin.Context) {

		serviceType := c.Query("type")
		if serviceType == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "type query parameter is required"})
			return
		}

		services, err := h.repo.ListByType(c.Request.Context(), serviceType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list services"})
			return
		}

		if services == nil {
			services = []*Service{}
		}
		c.JSON(http.StatusOK, services)
	}
}

//
// --------------------------------------------------
// GET /services/:id
// --------------------------------------------------
//

func (h *Handler) GetService() gin.HandlerFunc {
	return func(c *gin.Context) {

		svc, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load service"})
			return
		}

		c.JSON(http.StatusOK, svc)
	}
}
