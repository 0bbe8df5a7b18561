package models

import "time"

// Circumferences are girth measurements in centimetres.
type Circumferences struct {
	Waist           *float64 `db:"circ_cintura" json:"circCintura"`
	Abdomen         *float64 `db:"circ_abdomen" json:"circAbdomen"`
	Hip             *float64 `db:"circ_quadril" json:"circQuadril"`
	RelaxedArmRight *float64 `db:"circ_braco_relaxado_d" json:"circBracoRelaxadoD"`
	RelaxedArmLeft  *float64 `db:"circ_braco_relaxado_e" json:"circBracoRelaxadoE"`
}

// Skinfolds are caliper measurements in millimetres.
type Skinfolds struct {
	Triceps     *float64 `db:"dc_triceps" json:"dcTriceps"`
	Subscapular *float64 `db:"dc_subescapular" json:"dcSubescapular"`
	Pectoral    *float64 `db:"dc_peitoral" json:"dcPeitoral"`
	Midaxillary *float64 `db:"dc_axilar_media" json:"dcAxilarMedia"`
	Suprailiac  *float64 `db:"dc_suprailiaca" json:"dcSuprailiaca"`
	Abdominal   *float64 `db:"dc_abdominal" json:"dcAbdominal"`
	Thigh       *float64 `db:"dc_coxa" json:"dcCoxa"`
}

// Assessment is one evaluation event. Its IntakeProfile is a copy taken at creation and
// is never linked back to the student's live profile.
type Assessment struct {
	ID          int64     `db:"id" json:"id"`
	StudentID   int64     `db:"aluno_id" json:"alunoId"`
	EvaluatorID int64     `db:"avaliador_id" json:"avaliadorId"`
	AssessedAt  time.Time `db:"data_avaliacao" json:"dataAvaliacao"`
	Weight      *float64  `db:"peso" json:"peso"`
	Height      *float64  `db:"altura" json:"altura"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
	IntakeProfile
	Circumferences
	Skinfolds
}

// StudentRef is the student summary embedded in assessment responses.
type StudentRef struct {
	Name             string `json:"nome"`
	EnrollmentNumber string `json:"matricula,omitempty"`
}

// EvaluatorRef is the evaluator summary embedded in assessment listings.
type EvaluatorRef struct {
	Name string `json:"name"`
}

// AssessmentDetail is an assessment joined with the names shown alongside it.
type AssessmentDetail struct {
	Assessment
	StudentName             string        `db:"aluno_nome" json:"-"`
	StudentEnrollmentNumber string        `db:"aluno_matricula" json:"-"`
	EvaluatorName           string        `db:"avaliador_nome" json:"-"`
	Student                 StudentRef    `db:"-" json:"aluno"`
	Evaluator               *EvaluatorRef `db:"-" json:"avaliador,omitempty"`
}
