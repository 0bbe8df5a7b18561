package dto

import "github.com/noah-isme/avaliacao-fisica-api/internal/models"

// IntakeFields is the anamnesis and PAR-Q block shared by student and assessment payloads.
// Nil pointers mean "not provided".
type IntakeFields struct {
	Objetivos         *string `json:"objetivos"`
	HistoricoMedico   *string `json:"historicoMedico"`
	MedicamentosEmUso *string `json:"medicamentosEmUso"`
	Habitos           *string `json:"habitos"`
	Observacoes       *string `json:"observacoes"`
	ParqQ1            *bool   `json:"parq_q1"`
	ParqQ2            *bool   `json:"parq_q2"`
	ParqQ3            *bool   `json:"parq_q3"`
	ParqQ4            *bool   `json:"parq_q4"`
	ParqQ5            *bool   `json:"parq_q5"`
	ParqQ6            *bool   `json:"parq_q6"`
	ParqQ7            *bool   `json:"parq_q7"`
}

// ApplyTo overwrites the provided fields of profile and leaves the rest untouched.
func (f IntakeFields) ApplyTo(profile *models.IntakeProfile) {
	setString(&profile.Goals, f.Objetivos)
	setString(&profile.MedicalHistory, f.HistoricoMedico)
	setString(&profile.Medications, f.MedicamentosEmUso)
	setString(&profile.Habits, f.Habitos)
	setString(&profile.Notes, f.Observacoes)

	answers := []struct {
		dst **bool
		src *bool
	}{
		{&profile.Q1, f.ParqQ1}, {&profile.Q2, f.ParqQ2}, {&profile.Q3, f.ParqQ3},
		{&profile.Q4, f.ParqQ4}, {&profile.Q5, f.ParqQ5}, {&profile.Q6, f.ParqQ6},
		{&profile.Q7, f.ParqQ7},
	}
	for _, a := range answers {
		if a.src != nil {
			v := *a.src
			*a.dst = &v
		}
	}
}

func setString(dst **string, src *string) {
	if src == nil {
		return
	}
	v := *src
	*dst = &v
}
