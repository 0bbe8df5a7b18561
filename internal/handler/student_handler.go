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

type studentService interface {
	List(ctx context.Context, caller *models.Account, query dto.StudentQuery) ([]models.Student, error)
	Get(ctx context.Context, caller *models.Account, id int64) (*models.Student, error)
	Create(ctx context.Context, caller *models.Account, req dto.CreateStudentRequest) (*models.Student, error)
	Update(ctx context.Context, caller *models.Account, id int64, req dto.UpdateStudentRequest) (*models.Student, error)
	SetStatus(ctx context.Context, caller *models.Account, id int64, req dto.StudentStatusRequest) (*models.Student, error)
	Delete(ctx context.Context, caller *models.Account, id int64) error
}

type rosterExporter interface {
	StudentRoster(ctx context.Context, caller *models.Account, query dto.StudentQuery) (*service.ExportResult, error)
}

// StudentHandler exposes the caller's students. Every route runs behind AuthenticationRequired.
type StudentHandler struct {
	students studentService
	exports  rosterExporter
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService, exports rosterExporter) *StudentHandler {
	return &StudentHandler{students: students, exports: exports}
}

// List godoc
// @Summary List own students
// @Tags Students
// @Produce json
// @Param search query string false "Search by nome, matricula or cpf"
// @Param status query string false "ATIVO or INATIVO"
// @Success 200 {object} response.Envelope
// @Router /alunos [get]
func (h *StudentHandler) List(c *gin.Context) {
	caller, err := currentAccount(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var query dto.StudentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	students, err := h.students.List(c.Request.Context(), caller, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, map[string]interface{}{"total": len(students)})
}

// Export godoc
// @Summary Export own students as CSV
// @Tags Students
// @Produce text/csv
// @Param search query string false "Search by nome, matricula or cpf"
// @Param status query string false "ATIVO or INATIVO"
// @Success 200 {file} file
// @Router /alunos/export.csv [get]
func (h *StudentHandler) Export(c *gin.Context) {
	caller, err := currentAccount(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var query dto.StudentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	file, err := h.exports.StudentRoster(c.Request.Context(), caller, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.ContentType, file.Filename, file.Body)
}

// Get godoc
// @Summary Get own student
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /alunos/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	caller, id, ok := h.scope(c)
	if !ok {
		return
	}
	student, err := h.students.Get(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Create godoc
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /alunos [post]
func (h *StudentHandler) Create(c *gin.Context) {
	caller, err := currentAccount(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	student, err := h.students.Create(c.Request.Context(), caller, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update godoc
// @Summary Update own student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body dto.UpdateStudentRequest true "Student payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /alunos/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	caller, id, ok := h.scope(c)
	if !ok {
		return
	}
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	student, err := h.students.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// SetStatus godoc
// @Summary Change own student status
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body dto.StudentStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Router /alunos/{id}/status [patch]
func (h *StudentHandler) SetStatus(c *gin.Context) {
	caller, id, ok := h.scope(c)
	if !ok {
		return
	}
	var req dto.StudentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	student, err := h.students.SetStatus(c.Request.Context(), caller, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Delete godoc
// @Summary Delete own student
// @Tags Students
// @Param id path int true "Student ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /alunos/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	caller, id, ok := h.scope(c)
	if !ok {
		return
	}
	if err := h.students.Delete(c.Request.Context(), caller, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *StudentHandler) scope(c *gin.Context) (*models.Account, int64, bool) {
	caller, err := currentAccount(c)
	if err != nil {
		response.Error(c, err)
		return nil, 0, false
	}
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return nil, 0, false
	}
	return caller, id, true
}
