package dto

import "time"

// CreateAssessmentRequest starts an assessment from a student's current profile.
type CreateAssessmentRequest struct {
	AlunoID       int64      `json:"alunoId" validate:"required,gt=0"`
	DataAvaliacao *time.Time `json:"dataAvaliacao"`
}

// MeasurementFields lists every numeric field an evaluator can record.
type MeasurementFields struct {
	Peso               NumericInput `json:"peso"`
	Altura             NumericInput `json:"altura"`
	CircCintura        NumericInput `json:"circCintura"`
	CircAbdomen        NumericInput `json:"circAbdomen"`
	CircQuadril        NumericInput `json:"circQuadril"`
	CircBracoRelaxadoD NumericInput `json:"circBracoRelaxadoD"`
	CircBracoRelaxadoE NumericInput `json:"circBracoRelaxadoE"`
	DcTriceps          NumericInput `json:"dcTriceps"`
	DcSubescapular     NumericInput `json:"dcSubescapular"`
	DcPeitoral         NumericInput `json:"dcPeitoral"`
	DcAxilarMedia      NumericInput `json:"dcAxilarMedia"`
	DcSuprailiaca      NumericInput `json:"dcSuprailiaca"`
	DcAbdominal        NumericInput `json:"dcAbdominal"`
	DcCoxa             NumericInput `json:"dcCoxa"`
}

// AssessmentPatch is the partial update accepted for an assessment.
type AssessmentPatch struct {
	DataAvaliacao *time.Time `json:"dataAvaliacao"`
	IntakeFields
	MeasurementFields
}
