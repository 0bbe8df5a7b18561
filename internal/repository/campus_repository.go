package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/avaliacao-fisica-api/internal/models"
)

// CampusRepository reads campus reference data.
type CampusRepository struct {
	db *sqlx.DB
}

// NewCampusRepository constructs the repository.
func NewCampusRepository(db *sqlx.DB) *CampusRepository {
	return &CampusRepository{db: db}
}

// List returns all campuses ordered by name.
func (r *CampusRepository) List(ctx context.Context) ([]models.Campus, error) {
	const query = `SELECT id, name, city FROM campus ORDER BY name ASC`
	var campuses []models.Campus
	if err := r.db.SelectContext(ctx, &campuses, query); err != nil {
		return nil, fmt.Errorf("list campuses: %w", err)
	}
	return campuses, nil
}

// FindByID loads a single campus.
func (r *CampusRepository) FindByID(ctx context.Context, id int64) (*models.Campus, error) {
	const query = `SELECT id, name, city FROM campus WHERE id = $1`
	var campus models.Campus
	if err := r.db.GetContext(ctx, &campus, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find campus: %w", err)
	}
	return &campus, nil
}

// Upsert inserts the campus or refreshes its city, returning the stored row.
func (r *CampusRepository) Upsert(ctx context.Context, name, city string) (*models.Campus, error) {
	const query = `INSERT INTO campus (name, city) VALUES ($1, $2) ON CONFLICT (name) DO UPDATE SET city = EXCLUDED.city RETURNING id, name, city`
	var campus models.Campus
	if err := r.db.GetContext(ctx, &campus, query, name, city); err != nil {
		return nil, fmt.Errorf("upsert campus: %w", err)
	}
	return &campus, nil
}
