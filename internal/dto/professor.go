package dto

import "github.com/noah-isme/avaliacao-fisica-api/internal/models"

// CreateProfessorRequest is submitted by an administrator to open a professor account.
type CreateProfessorRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	CampusID int64  `json:"campusId" validate:"required,gt=0"`
}

// UpdateProfessorRequest changes profile fields; an empty password keeps the current one.
type UpdateProfessorRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	CampusID *int64  `json:"campusId" validate:"omitempty,gt=0"`
}

// ProfessorStatusRequest activates or deactivates an account.
type ProfessorStatusRequest struct {
	Status models.AccountStatus `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
}
