package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/avaliacao-fisica-api/internal/dto"
	"github.com/noah-isme/avaliacao-fisica-api/internal/models"
	"github.com/noah-isme/avaliacao-fisica-api/internal/service"
	"github.com/noah-isme/avaliacao-fisica-api/pkg/response"
)

type assessmentService interface {
	List(ctx context.Context) ([]models.AssessmentDetail, error)
	Get(ctx context.Context, id int64) (*models.AssessmentDetail, error)
	Create(ctx context.Context, evaluator *models.Account, req dto.CreateAssessmentRequest) (*models.Assessment, error)
	Update(ctx context.Context, id int64, patch dto.AssessmentPatch) (*models.AssessmentDetail, error)
}

type reportExporter interface {
	AssessmentReport(ctx context.Context, id int64) (*service.ExportResult, error)
}

// AssessmentHandler exposes assessment endpoints.
type AssessmentHandler struct {
	assessments assessmentService
	exports     reportExporter
}

// NewAssessmentHandler constructs AssessmentHandler.
func NewAssessmentHandler(assessments assessmentService, exports reportExporter) *AssessmentHandler {
	return &AssessmentHandler{assessments: assessments, exports: exports}
}

// List godoc
// @Summary List assessments
// @Description Most recent first, with student and evaluator names
// @Tags Assessments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /avaliacoes [get]
func (h *AssessmentHandler) List(c *gin.Context) {
	items, err := h.assessments.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, map[string]interface{}{"total": len(items)})
}

// Get godoc
// @Summary Get assessment
// @Tags Assessments
// @Produce json
// @Param id path int true "Assessment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /avaliacoes/{id} [get]
func (h *AssessmentHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	detail, err := h.assessments.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// Create godoc
// @Summary Start assessment
// @Description Snapshots the student's intake profile; measurements start empty
// @Tags Assessments
// @Accept json
// @Produce json
// @Param payload body dto.CreateAssessmentRequest true "Assessment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /avaliacoes [post]
func (h *AssessmentHandler) Create(c *gin.Context) {
	evaluator, err := currentAccount(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	assessment, err := h.assessments.Create(c.Request.Context(), evaluator, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assessment)
}

// Update godoc
// @Summary Record measurements
// @Description Present keys are applied; measurement values that are not numbers are stored as null
// @Tags Assessments
// @Accept json
// @Produce json
// @Param id path int true "Assessment ID"
// @Param payload body dto.AssessmentPatch true "Assessment fields"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /avaliacoes/{id} [put]
func (h *AssessmentHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch dto.AssessmentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	detail, err := h.assessments.Update(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// Report godoc
// @Summary Assessment PDF
// @Tags Assessments
// @Produce application/pdf
// @Param id path int true "Assessment ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /avaliacoes/{id}/relatorio.pdf [get]
func (h *AssessmentHandler) Report(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exports.AssessmentReport(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.ContentType, file.Filename, file.Body)
}
