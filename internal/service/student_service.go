package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/avaliacao-fisica-api/internal/dto"
	"github.com/noah-isme/avaliacao-fisica-api/internal/models"
	"github.com/noah-isme/avaliacao-fisica-api/internal/repository"
	appErrors "github.com/noah-isme/avaliacao-fisica-api/pkg/errors"
)

type studentRepository interface {
	FindOwned(ctx context.Context, id, ownerID int64) (*models.Student, error)
	ListOwned(ctx context.Context, ownerID int64, filter models.StudentFilter) ([]models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	UpdateOwned(ctx context.Context, student *models.Student) error
	UpdateStatusOwned(ctx context.Context, id, ownerID int64, status models.StudentStatus) error
	DeleteOwned(ctx context.Context, id, ownerID int64) error
}

var birthDateLayouts = []string{"2006-01-02", time.RFC3339}

// StudentService handles student use-cases. Every operation runs on behalf of the calling
// professor and only ever touches that professor's students.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns the caller's students ordered by name.
func (s *StudentService) List(ctx context.Context, caller *models.Account, query dto.StudentQuery) ([]models.Student, error) {
	filter := models.StudentFilter{Search: strings.TrimSpace(query.Search)}
	if query.Status != "" {
		status := models.StudentStatus(strings.ToUpper(query.Status))
		if !status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "status must be ATIVO or INATIVO")
		}
		filter.Status = &status
	}

	students, err := s.repo.ListOwned(ctx, caller.ID, filter)
	if err != nil {
		s.logger.Error("failed to list students", zap.Int64("professor_id", caller.ID), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to list students")
	}
	return students, nil
}

// Get returns one of the caller's students. Someone else's student is reported as not found.
func (s *StudentService) Get(ctx context.Context, caller *models.Account, id int64) (*models.Student, error) {
	student, err := s.repo.FindOwned(ctx, id, caller.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		s.logger.Error("failed to load student", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to load student")
	}
	return student, nil
}

// Create registers a student owned by the caller on the caller's campus.
func (s *StudentService) Create(ctx context.Context, caller *models.Account, req dto.CreateStudentRequest) (*models.Student, error) {
	req.Email = normalizeEmail(req.Email)
	req.Nome = strings.TrimSpace(req.Nome)
	req.Matricula = strings.TrimSpace(req.Matricula)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "nome, email, dataNascimento and matricula are required")
	}
	birth, err := parseBirthDate(req.DataNascimento)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		Name:             req.Nome,
		Email:            req.Email,
		BirthDate:        birth,
		EnrollmentNumber: req.Matricula,
		DocumentID:       req.CPF,
		Gender:           req.Genero,
		Phone:            req.Telefone,
		Height:           req.Altura.Value,
		Weight:           req.Peso.Value,
		Status:           models.StudentActive,
		ProfessorID:      caller.ID,
		CampusID:         caller.CampusID,
	}
	req.IntakeFields.ApplyTo(&student.IntakeProfile)

	if err := s.repo.Create(ctx, student); err != nil {
		return nil, s.writeError(err, "failed to create student")
	}
	s.logger.Info("student created", zap.Int64("id", student.ID), zap.Int64("professor_id", caller.ID))
	return student, nil
}

// Update applies a partial update to one of the caller's students.
func (s *StudentService) Update(ctx context.Context, caller *models.Account, id int64, req dto.UpdateStudentRequest) (*models.Student, error) {
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		req.Email = &email
	}
	if req.Nome != nil {
		nome := strings.TrimSpace(*req.Nome)
		req.Nome = &nome
	}
	if req.Matricula != nil {
		matricula := strings.TrimSpace(*req.Matricula)
		req.Matricula = &matricula
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	student, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.Nome != nil {
		student.Name = *req.Nome
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.DataNascimento != nil {
		birth, err := parseBirthDate(*req.DataNascimento)
		if err != nil {
			return nil, err
		}
		student.BirthDate = birth
	}
	if req.Matricula != nil {
		student.EnrollmentNumber = *req.Matricula
	}
	if req.CPF != nil {
		student.DocumentID = req.CPF
	}
	if req.Genero != nil {
		student.Gender = req.Genero
	}
	if req.Telefone != nil {
		student.Phone = req.Telefone
	}
	if req.Altura.Set {
		student.Height = req.Altura.Value
	}
	if req.Peso.Set {
		student.Weight = req.Peso.Value
	}
	req.IntakeFields.ApplyTo(&student.IntakeProfile)

	if err := s.repo.UpdateOwned(ctx, student); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, s.writeError(err, "failed to update student")
	}
	return student, nil
}

// SetStatus moves one of the caller's students between ATIVO and INATIVO.
func (s *StudentService) SetStatus(ctx context.Context, caller *models.Account, id int64, req dto.StudentStatusRequest) (*models.Student, error) {
	req.Status = models.StudentStatus(strings.ToUpper(string(req.Status)))
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "status must be ATIVO or INATIVO")
	}

	if err := s.repo.UpdateStatusOwned(ctx, id, caller.ID, req.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		s.logger.Error("failed to update student status", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to update student status")
	}
	return s.Get(ctx, caller, id)
}

// Delete removes one of the caller's students together with its assessments.
func (s *StudentService) Delete(ctx context.Context, caller *models.Account, id int64) error {
	if err := s.repo.DeleteOwned(ctx, id, caller.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		s.logger.Error("failed to delete student", zap.Int64("id", id), zap.Error(err))
		return appErrors.Internal(err, "failed to delete student")
	}
	s.logger.Info("student deleted", zap.Int64("id", id), zap.Int64("professor_id", caller.ID))
	return nil
}

func (s *StudentService) writeError(err error, msg string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return appErrors.Clone(appErrors.ErrConflict, "email or matricula already in use")
	}
	s.logger.Error(msg, zap.Error(err))
	return appErrors.Internal(err, msg)
}

func parseBirthDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "dataNascimento must be a date (YYYY-MM-DD)")
}
