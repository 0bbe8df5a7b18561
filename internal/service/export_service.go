package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/avaliacao-fisica-api/internal/dto"
	"github.com/noah-isme/avaliacao-fisica-api/internal/models"
	appErrors "github.com/noah-isme/avaliacao-fisica-api/pkg/errors"
	"github.com/noah-isme/avaliacao-fisica-api/pkg/export"
)

type rosterSource interface {
	List(ctx context.Context, caller *models.Account, query dto.StudentQuery) ([]models.Student, error)
}

type assessmentSource interface {
	Get(ctx context.Context, id int64) (*models.AssessmentDetail, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(report export.Report) ([]byte, error)
}

// ExportResult is a rendered file ready to be sent as an attachment.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders student rosters and assessment reports.
type ExportService struct {
	students    rosterSource
	assessments assessmentSource
	csv         csvRenderer
	pdf         pdfRenderer
	logger      *zap.Logger
}

var rosterHeaders = []string{"id", "matricula", "nome", "email", "dataNascimento", "cpf", "telefone", "status"}

// NewExportService constructs an ExportService. Nil renderers fall back to the defaults.
func NewExportService(students rosterSource, assessments assessmentSource, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter(';').WithBOM()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{students: students, assessments: assessments, csv: csv, pdf: pdf, logger: logger}
}

// StudentRoster renders the caller's students, filtered like the listing, as CSV.
func (s *ExportService) StudentRoster(ctx context.Context, caller *models.Account, query dto.StudentQuery) (*ExportResult, error) {
	students, err := s.students.List(ctx, caller, query)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]string, 0, len(students))
	for _, st := range students {
		rows = append(rows, map[string]string{
			"id":             strconv.FormatInt(st.ID, 10),
			"matricula":      st.EnrollmentNumber,
			"nome":           st.Name,
			"email":          st.Email,
			"dataNascimento": st.BirthDate.Format("2006-01-02"),
			"cpf":            deref(st.DocumentID),
			"telefone":       deref(st.Phone),
			"status":         string(st.Status),
		})
	}

	body, err := s.csv.Render(export.Dataset{Headers: rosterHeaders, Rows: rows})
	if err != nil {
		s.logger.Error("failed to render roster", zap.Int64("professor_id", caller.ID), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to render roster")
	}
	return &ExportResult{Filename: "alunos.csv", ContentType: "text/csv; charset=utf-8", Body: body}, nil
}

// AssessmentReport renders one assessment as a PDF.
func (s *ExportService) AssessmentReport(ctx context.Context, id int64) (*ExportResult, error) {
	detail, err := s.assessments.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	body, err := s.pdf.Render(assessmentReport(detail))
	if err != nil {
		s.logger.Error("failed to render assessment report", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to render assessment report")
	}
	return &ExportResult{
		Filename:    fmt.Sprintf("avaliacao-%d.pdf", id),
		ContentType: "application/pdf",
		Body:        body,
	}, nil
}

func assessmentReport(d *models.AssessmentDetail) export.Report {
	a := d.Assessment
	return export.Report{
		Title:    "Avaliação Física",
		Subtitle: fmt.Sprintf("%s · %s", d.Student.Name, a.AssessedAt.Format("02/01/2006")),
		Sections: []export.Section{
			{Title: "Anamnese", Fields: []export.Field{
				{Label: "Objetivos", Value: deref(a.Goals)},
				{Label: "Histórico médico", Value: deref(a.MedicalHistory)},
				{Label: "Medicamentos em uso", Value: deref(a.Medications)},
				{Label: "Hábitos", Value: deref(a.Habits)},
				{Label: "Observações", Value: deref(a.Notes)},
			}},
			{Title: "PAR-Q", Fields: parqFields(a.ParQ)},
			{Title: "Antropometria", Fields: []export.Field{
				{Label: "Peso (kg)", Value: formatMeasure(a.Weight)},
				{Label: "Altura (m)", Value: formatMeasure(a.Height)},
			}},
			{Title: "Perimetria (cm)", Fields: []export.Field{
				{Label: "Cintura", Value: formatMeasure(a.Waist)},
				{Label: "Abdômen", Value: formatMeasure(a.Abdomen)},
				{Label: "Quadril", Value: formatMeasure(a.Hip)},
				{Label: "Braço relaxado D", Value: formatMeasure(a.RelaxedArmRight)},
				{Label: "Braço relaxado E", Value: formatMeasure(a.RelaxedArmLeft)},
			}},
			{Title: "Dobras cutâneas (mm)", Fields: []export.Field{
				{Label: "Tríceps", Value: formatMeasure(a.Triceps)},
				{Label: "Subescapular", Value: formatMeasure(a.Subscapular)},
				{Label: "Peitoral", Value: formatMeasure(a.Pectoral)},
				{Label: "Axilar média", Value: formatMeasure(a.Midaxillary)},
				{Label: "Supra-ilíaca", Value: formatMeasure(a.Suprailiac)},
				{Label: "Abdominal", Value: formatMeasure(a.Abdominal)},
				{Label: "Coxa", Value: formatMeasure(a.Thigh)},
			}},
		},
	}
}

func parqFields(p models.ParQ) []export.Field {
	answers := []*bool{p.Q1, p.Q2, p.Q3, p.Q4, p.Q5, p.Q6, p.Q7}
	fields := make([]export.Field, len(answers))
	for i, ans := range answers {
		value := "-"
		if ans != nil {
			value = "Não"
			if *ans {
				value = "Sim"
			}
		}
		fields[i] = export.Field{Label: fmt.Sprintf("Questão %d", i+1), Value: value}
	}
	return fields
}

func formatMeasure(v *float64) string {
	if v == nil {
		return "-"
	}
	return strings.Replace(strconv.FormatFloat(*v, 'f', -1, 64), ".", ",", 1)
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
