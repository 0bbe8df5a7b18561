package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/avaliacao-fisica-api/internal/dto"
	"github.com/noah-isme/avaliacao-fisica-api/internal/models"
	"github.com/noah-isme/avaliacao-fisica-api/internal/repository"
	appErrors "github.com/noah-isme/avaliacao-fisica-api/pkg/errors"
)

type professorRepository interface {
	List(ctx context.Context) ([]models.AccountWithCampus, error)
	FindByID(ctx context.Context, id int64) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	Update(ctx context.Context, account *models.Account) error
	UpdateStatus(ctx context.Context, id int64, status models.AccountStatus) error
	Delete(ctx context.Context, id int64) error
}

// ProfessorService handles administrator management of accounts.
type ProfessorService struct {
	repo       professorRepository
	validator  *validator.Validate
	logger     *zap.Logger
	bcryptCost int
}

// NewProfessorService creates an instance of ProfessorService.
func NewProfessorService(repo professorRepository, validate *validator.Validate, logger *zap.Logger, bcryptCost int) *ProfessorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &ProfessorService{repo: repo, validator: validate, logger: logger, bcryptCost: bcryptCost}
}

// List returns all accounts with their campus, ordered by name.
func (s *ProfessorService) List(ctx context.Context) ([]models.AccountWithCampus, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list accounts", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to list professors")
	}
	return accounts, nil
}

// Get returns one account.
func (s *ProfessorService) Get(ctx context.Context, id int64) (*models.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		s.logger.Error("failed to load account", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to load professor")
	}
	return account, nil
}

// Create opens a PROFESSOR account. Administrators are only created by the seed command.
func (s *ProfessorService) Create(ctx context.Context, req dto.CreateProfessorRequest) (*models.Account, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "name, email, password and campusId are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to hash password")
	}

	account := &models.Account{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         models.RoleProfessor,
		Status:       models.AccountActive,
		CampusID:     req.CampusID,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, s.writeError(err, "failed to create professor")
	}

	s.logger.Info("professor created", zap.Int64("id", account.ID), zap.Int64("campus_id", account.CampusID))
	return account, nil
}

// Update changes name, email, campus or password of a professor.
func (s *ProfessorService) Update(ctx context.Context, id int64, req dto.UpdateProfessorRequest) (*models.Account, error) {
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		req.Email = &email
	}
	if req.Password != nil && *req.Password == "" {
		req.Password = nil
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid professor payload")
	}

	account, err := s.professor(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Email != nil {
		account.Email = *req.Email
	}
	if req.CampusID != nil {
		account.CampusID = *req.CampusID
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), s.bcryptCost)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to hash password")
		}
		account.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, account); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		return nil, s.writeError(err, "failed to update professor")
	}
	return account, nil
}

// SetStatus activates or deactivates an account. Administrators cannot lock themselves out.
func (s *ProfessorService) SetStatus(ctx context.Context, actorID, id int64, req dto.ProfessorStatusRequest) (*models.Account, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "status must be ACTIVE or INACTIVE")
	}
	if actorID == id && req.Status == models.AccountInactive {
		return nil, appErrors.Clone(appErrors.ErrValidation, "cannot deactivate your own account")
	}
	if _, err := s.professor(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		s.logger.Error("failed to update account status", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to update professor status")
	}
	return s.Get(ctx, id)
}

// Delete removes an account that no longer owns students or assessments.
func (s *ProfessorService) Delete(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return appErrors.Clone(appErrors.ErrValidation, "cannot delete your own account")
	}
	if _, err := s.professor(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		case errors.Is(err, repository.ErrReferenced):
			return appErrors.Clone(appErrors.ErrConflict, "professor still has students or assessments")
		}
		s.logger.Error("failed to delete account", zap.Int64("id", id), zap.Error(err))
		return appErrors.Internal(err, "failed to delete professor")
	}
	s.logger.Info("professor deleted", zap.Int64("id", id))
	return nil
}

// professor loads a PROFESSOR account. Administrator accounts are not managed through these
// routes and are reported as not found.
func (s *ProfessorService) professor(ctx context.Context, id int64) (*models.Account, error) {
	account, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if account.Role != models.RoleProfessor {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
	}
	return account, nil
}

func (s *ProfessorService) writeError(err error, msg string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return appErrors.Clone(appErrors.ErrConflict, "email already in use")
	case errors.Is(err, repository.ErrUnknownReference):
		return appErrors.Clone(appErrors.ErrValidation, "campus not found")
	}
	s.logger.Error(msg, zap.Error(err))
	return appErrors.Internal(err, msg)
}
