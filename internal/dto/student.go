package dto

import "github.com/noah-isme/avaliacao-fisica-api/internal/models"

// CreateStudentRequest registers a student under the calling professor.
type CreateStudentRequest struct {
	Nome           string       `json:"nome" validate:"required,max=255"`
	Email          string       `json:"email" validate:"required,email"`
	DataNascimento string       `json:"dataNascimento" validate:"required"`
	Matricula      string       `json:"matricula" validate:"required,max=64"`
	CPF            *string      `json:"cpf" validate:"omitempty,max=14"`
	Genero         *string      `json:"genero" validate:"omitempty,max=32"`
	Telefone       *string      `json:"telefone" validate:"omitempty,max=32"`
	Altura         NumericInput `json:"altura"`
	Peso           NumericInput `json:"peso"`
	IntakeFields
}

// UpdateStudentRequest is a partial update; absent keys keep their stored value.
type UpdateStudentRequest struct {
	Nome           *string      `json:"nome" validate:"omitempty,min=1,max=255"`
	Email          *string      `json:"email" validate:"omitempty,email"`
	DataNascimento *string      `json:"dataNascimento"`
	Matricula      *string      `json:"matricula" validate:"omitempty,min=1,max=64"`
	CPF            *string      `json:"cpf" validate:"omitempty,max=14"`
	Genero         *string      `json:"genero" validate:"omitempty,max=32"`
	Telefone       *string      `json:"telefone" validate:"omitempty,max=32"`
	Altura         NumericInput `json:"altura"`
	Peso           NumericInput `json:"peso"`
	IntakeFields
}

// StudentStatusRequest toggles enrollment.
type StudentStatusRequest struct {
	Status models.StudentStatus `json:"status" validate:"required,oneof=ATIVO INATIVO"`
}

// StudentQuery mirrors the supported listing filters.
type StudentQuery struct {
	Search string `form:"search"`
	Status string `form:"status"`
}
