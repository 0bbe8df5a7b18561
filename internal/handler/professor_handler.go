package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/avaliacao-fisica-api/internal/dto"
	"github.com/noah-isme/avaliacao-fisica-api/internal/models"
	"github.com/noah-isme/avaliacao-fisica-api/pkg/response"
)

type professorService interface {
	List(ctx context.Context) ([]models.AccountWithCampus, error)
	Get(ctx context.Context, id int64) (*models.Account, error)
	Create(ctx context.Context, req dto.CreateProfessorRequest) (*models.Account, error)
	Update(ctx context.Context, id int64, req dto.UpdateProfessorRequest) (*models.Account, error)
	SetStatus(ctx context.Context, actorID, id int64, req dto.ProfessorStatusRequest) (*models.Account, error)
	Delete(ctx context.Context, actorID, id int64) error
}

// ProfessorHandler exposes account management for administrators.
type ProfessorHandler struct {
	professors professorService
}

// NewProfessorHandler constructs ProfessorHandler.
func NewProfessorHandler(professors professorService) *ProfessorHandler {
	return &ProfessorHandler{professors: professors}
}

// List godoc
// @Summary List accounts
// @Tags Professors
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/professors [get]
func (h *ProfessorHandler) List(c *gin.Context) {
	accounts, err := h.professors.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, accounts, map[string]interface{}{"total": len(accounts)})
}

// Get godoc
// @Summary Get account
// @Tags Professors
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/professors/{id} [get]
func (h *ProfessorHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	account, err := h.professors.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, account)
}

// Create godoc
// @Summary Create professor
// @Tags Professors
// @Accept json
// @Produce json
// @Param payload body dto.CreateProfessorRequest true "Professor payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/professors [post]
func (h *ProfessorHandler) Create(c *gin.Context) {
	var req dto.CreateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	account, err := h.professors.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, account)
}

// Update godoc
// @Summary Update account
// @Tags Professors
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param payload body dto.UpdateProfessorRequest true "Account payload"
// @Success 200 {object} response.Envelope
// @Router /admin/professors/{id} [put]
func (h *ProfessorHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	account, err := h.professors.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, account)
}

// SetStatus godoc
// @Summary Activate or deactivate account
// @Tags Professors
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param payload body dto.ProfessorStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Router /admin/professors/{id}/status [patch]
func (h *ProfessorHandler) SetStatus(c *gin.Context) {
	actor, err := currentAccount(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.ProfessorStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	account, err := h.professors.SetStatus(c.Request.Context(), actor.ID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, account)
}

// Delete godoc
// @Summary Delete account
// @Tags Professors
// @Param id path int true "Account ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /admin/professors/{id} [delete]
func (h *ProfessorHandler) Delete(c *gin.Context) {
	actor, err := currentAccount(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.professors.Delete(c.Request.Context(), actor.ID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
