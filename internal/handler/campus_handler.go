package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/avaliacao-fisica-api/internal/models"
	"github.com/noah-isme/avaliacao-fisica-api/pkg/response"
)

type campusService interface {
	List(ctx context.Context) ([]models.Campus, error)
}

// CampusHandler exposes campus reference data.
type CampusHandler struct {
	campuses campusService
}

// NewCampusHandler constructs CampusHandler.
func NewCampusHandler(campuses campusService) *CampusHandler {
	return &CampusHandler{campuses: campuses}
}

// List godoc
// @Summary List campuses
// @Tags Campus
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /campus [get]
func (h *CampusHandler) List(c *gin.Context) {
	campuses, err := h.campuses.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, campuses)
}
