package models

import "time"

// StudentStatus is the enrollment state of a student.
type StudentStatus string

const (
	StudentActive   StudentStatus = "ATIVO"
	StudentInactive StudentStatus = "INATIVO"
)

// Valid reports whether s is one of the accepted statuses.
func (s StudentStatus) Valid() bool {
	return s == StudentActive || s == StudentInactive
}

// ParQ holds the seven yes/no pre-participation screening answers.
type ParQ struct {
	Q1 *bool `db:"parq_q1" json:"parq_q1"`
	Q2 *bool `db:"parq_q2" json:"parq_q2"`
	Q3 *bool `db:"parq_q3" json:"parq_q3"`
	Q4 *bool `db:"parq_q4" json:"parq_q4"`
	Q5 *bool `db:"parq_q5" json:"parq_q5"`
	Q6 *bool `db:"parq_q6" json:"parq_q6"`
	Q7 *bool `db:"parq_q7" json:"parq_q7"`
}

// IntakeProfile is the mutable anamnesis a student carries and assessments snapshot.
type IntakeProfile struct {
	Goals          *string `db:"objetivos" json:"objetivos"`
	MedicalHistory *string `db:"historico_medico" json:"historicoMedico"`
	Medications    *string `db:"medicamentos_em_uso" json:"medicamentosEmUso"`
	Habits         *string `db:"habitos" json:"habitos"`
	Notes          *string `db:"observacoes" json:"observacoes"`
	ParQ
}

// Student is a learner owned by the professor who registered them.
type Student struct {
	ID               int64         `db:"id" json:"id"`
	Name             string        `db:"nome" json:"nome"`
	Email            string        `db:"email" json:"email"`
	BirthDate        time.Time     `db:"data_nascimento" json:"dataNascimento"`
	EnrollmentNumber string        `db:"matricula" json:"matricula"`
	DocumentID       *string       `db:"cpf" json:"cpf"`
	Gender           *string       `db:"genero" json:"genero"`
	Phone            *string       `db:"telefone" json:"telefone"`
	Height           *float64      `db:"altura" json:"altura"`
	Weight           *float64      `db:"peso" json:"peso"`
	Status           StudentStatus `db:"status" json:"status"`
	ProfessorID      int64         `db:"professor_id" json:"professorId"`
	CampusID         int64         `db:"campus_id" json:"campusId"`
	CreatedAt        time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time     `db:"updated_at" json:"updatedAt"`
	IntakeProfile
}

// StudentFilter narrows an owner's student listing.
type StudentFilter struct {
	Search string
	Status *StudentStatus
}

// Clone returns a deep copy so the result shares no pointers with p.
func (p IntakeProfile) Clone() IntakeProfile {
	return IntakeProfile{
		Goals:          cloneString(p.Goals),
		MedicalHistory: cloneString(p.MedicalHistory),
		Medications:    cloneString(p.Medications),
		Habits:         cloneString(p.Habits),
		Notes:          cloneString(p.Notes),
		ParQ: ParQ{
			Q1: cloneBool(p.Q1),
			Q2: cloneBool(p.Q2),
			Q3: cloneBool(p.Q3),
			Q4: cloneBool(p.Q4),
			Q5: cloneBool(p.Q5),
			Q6: cloneBool(p.Q6),
			Q7: cloneBool(p.Q7),
		},
	}
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
