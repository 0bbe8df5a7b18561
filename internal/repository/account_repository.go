package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/avaliacao-fisica-api/internal/models"
)

const accountColumns = `id, email, password_hash, name, role, status, campus_id, created_at, updated_at`

// AccountRepository provides database access for professor and administrator accounts.
type AccountRepository struct {
	db *sqlx.DB
}

// NewAccountRepository creates a new instance of AccountRepository.
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// FindByEmail returns an account by email address.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE email = $1 LIMIT 1`
	var account models.Account
	if err := r.db.GetContext(ctx, &account, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	return &account, nil
}

// FindByID returns an account by identifier.
func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE id = $1 LIMIT 1`
	var account models.Account
	if err := r.db.GetContext(ctx, &account, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return &account, nil
}

// List returns every account joined with its campus, ordered by name.
func (r *AccountRepository) List(ctx context.Context) ([]models.AccountWithCampus, error) {
	const query = `SELECT u.id, u.email, u.password_hash, u.name, u.role, u.status, u.campus_id, u.created_at, u.updated_at, c.name AS campus_name, c.city AS campus_city FROM users u JOIN campus c ON c.id = u.campus_id ORDER BY u.name ASC`
	var accounts []models.AccountWithCampus
	if err := r.db.SelectContext(ctx, &accounts, query); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// Create inserts an account and fills in the generated id and timestamps.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	const query = `INSERT INTO users (email, password_hash, name, role, status, campus_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		account.Email, account.PasswordHash, account.Name, account.Role, account.Status,
		account.CampusID, account.CreatedAt, account.UpdatedAt,
	).Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("create account: %w", translateWriteError(err, false))
	}
	return nil
}

// EnsureByEmail inserts the account unless one with the same email exists.
// It reports whether a row was inserted.
func (r *AccountRepository) EnsureByEmail(ctx context.Context, account *models.Account) (bool, error) {
	now := time.Now().UTC()
	const query = `INSERT INTO users (email, password_hash, name, role, status, campus_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $7) ON CONFLICT (email) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query,
		account.Email, account.PasswordHash, account.Name, account.Role, account.Status, account.CampusID, now,
	)
	if err != nil {
		return false, fmt.Errorf("ensure account: %w", translateWriteError(err, false))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ensure account: %w", err)
	}
	return n > 0, nil
}

// Update writes the mutable profile fields of an account.
func (r *AccountRepository) Update(ctx context.Context, account *models.Account) error {
	account.UpdatedAt = time.Now().UTC()
	const query = `UPDATE users SET email = $2, password_hash = $3, name = $4, campus_id = $5, updated_at = $6 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		account.ID, account.Email, account.PasswordHash, account.Name, account.CampusID, account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", translateWriteError(err, false))
	}
	if err := expectAffected(res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// UpdateStatus activates or deactivates an account.
func (r *AccountRepository) UpdateStatus(ctx context.Context, id int64, status models.AccountStatus) error {
	const query = `UPDATE users SET status = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update account status: %w", err)
	}
	if err := expectAffected(res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("update account status: %w", err)
	}
	return nil
}

// Delete removes an account. Accounts still owning students or assessments yield ErrReferenced.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM users WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", translateWriteError(err, true))
	}
	if err := expectAffected(res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
