package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/avaliacao-fisica-api/internal/auth"
	"github.com/noah-isme/avaliacao-fisica-api/internal/models"
	appErrors "github.com/noah-isme/avaliacao-fisica-api/pkg/errors"
)

type authAccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByID(ctx context.Context, id int64) (*models.Account, error)
}

// SessionCodec issues and verifies session tokens.
type SessionCodec interface {
	Issue(accountID int64, email string, role models.Role) (string, time.Time, error)
	Verify(token string) (*auth.Claims, error)
}

// AuthService implements login and principal resolution.
type AuthService struct {
	repo      authAccountRepository
	codec     SessionCodec
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	dummyHash []byte
}

// NewAuthService constructs an AuthService instance. bcryptCost sizes the hash compared
// against when the email is unknown, so both failure paths cost the same.
func NewAuthService(repo authAccountRepository, codec SessionCodec, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, bcryptCost int) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	if err != nil {
		logger.Warn("failed to prepare dummy hash", zap.Error(err))
	}
	return &AuthService{repo: repo, codec: codec, validator: validate, logger: logger, metrics: metrics, dummyHash: dummy}
}

// Login checks credentials and issues a session. Unknown email and wrong password share
// one response; only a caller holding the right password learns the account is inactive.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "email and password are required")
	}

	account, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
			s.metrics.RecordLogin(LoginRejected)
			return nil, appErrors.ErrInvalidCredentials
		}
		s.logger.Error("failed to load account for login", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to fetch account")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		s.metrics.RecordLogin(LoginRejected)
		return nil, appErrors.ErrInvalidCredentials
	}

	if !account.Active() {
		s.metrics.RecordLogin(LoginInactive)
		return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "account inactive")
	}

	token, expiresAt, err := s.codec.Issue(account.ID, account.Email, account.Role)
	if err != nil {
		s.logger.Error("failed to issue session token", zap.Int64("account_id", account.ID), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to create session")
	}

	s.metrics.RecordLogin(LoginSucceeded)
	s.logger.Info("login succeeded", zap.Int64("account_id", account.ID), zap.String("ip", req.IP))

	return &models.Session{Token: token, ExpiresAt: expiresAt, Account: account}, nil
}

// Resolve turns a session token into the active account it names.
func (s *AuthService) Resolve(ctx context.Context, token string) (*models.Account, error) {
	if token == "" {
		return nil, appErrors.ErrUnauthorized
	}

	claims, err := s.codec.Verify(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpired) {
			return nil, appErrors.ErrTokenExpired
		}
		return nil, appErrors.ErrInvalidToken
	}

	account, err := s.repo.FindByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "account missing or inactive")
		}
		s.logger.Error("failed to load session account", zap.Int64("account_id", claims.AccountID), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to load account")
	}
	if !account.Active() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "account missing or inactive")
	}
	return account, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
