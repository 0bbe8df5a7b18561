package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/avaliacao-fisica-api/internal/models"
)

const studentColumns = `id, nome, email, data_nascimento, matricula, cpf, genero, telefone, altura, peso, ` +
	`objetivos, historico_medico, medicamentos_em_uso, habitos, observacoes, ` +
	`parq_q1, parq_q2, parq_q3, parq_q4, parq_q5, parq_q6, parq_q7, ` +
	`status, professor_id, campus_id, created_at, updated_at`

// StudentRepository stores students. Every method except FindByID is conjoined with the
// owning professor, so rows owned by someone else behave exactly like missing rows.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByID loads a student regardless of owner.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM alunos WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &student, nil
}

// FindOwned loads a student only if ownerID registered it.
func (r *StudentRepository) FindOwned(ctx context.Context, id, ownerID int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM alunos WHERE id = $1 AND professor_id = $2`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find owned student: %w", err)
	}
	return &student, nil
}

// ListOwned returns the owner's students ordered by name.
func (r *StudentRepository) ListOwned(ctx context.Context, ownerID int64, filter models.StudentFilter) ([]models.Student, error) {
	conditions := []string{"professor_id = $1"}
	args := []interface{}{ownerID}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(nome ILIKE $%d OR matricula ILIKE $%d OR COALESCE(cpf, '') ILIKE $%d)", n, n, n))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + studentColumns + ` FROM alunos WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY nome ASC`
	students := make([]models.Student, 0)
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// Create inserts a student. ProfessorID and CampusID must already be stamped.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now
	if student.Status == "" {
		student.Status = models.StudentActive
	}

	const query = `INSERT INTO alunos (nome, email, data_nascimento, matricula, cpf, genero, telefone, altura, peso,
objetivos, historico_medico, medicamentos_em_uso, habitos, observacoes,
parq_q1, parq_q2, parq_q3, parq_q4, parq_q5, parq_q6, parq_q7,
status, professor_id, campus_id, created_at, updated_at)
VALUES (:nome, :email, :data_nascimento, :matricula, :cpf, :genero, :telefone, :altura, :peso,
:objetivos, :historico_medico, :medicamentos_em_uso, :habitos, :observacoes,
:parq_q1, :parq_q2, :parq_q3, :parq_q4, :parq_q5, :parq_q6, :parq_q7,
:status, :professor_id, :campus_id, :created_at, :updated_at) RETURNING id`

	bound, args, err := r.db.BindNamed(query, student)
	if err != nil {
		return fmt.Errorf("bind student insert: %w", err)
	}
	if err := r.db.QueryRowxContext(ctx, bound, args...).Scan(&student.ID); err != nil {
		return fmt.Errorf("create student: %w", translateWriteError(err, false))
	}
	return nil
}

// UpdateOwned writes every mutable column of a student the owner holds.
func (r *StudentRepository) UpdateOwned(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE alunos SET nome = :nome, email = :email, data_nascimento = :data_nascimento, matricula = :matricula,
cpf = :cpf, genero = :genero, telefone = :telefone, altura = :altura, peso = :peso,
objetivos = :objetivos, historico_medico = :historico_medico, medicamentos_em_uso = :medicamentos_em_uso,
habitos = :habitos, observacoes = :observacoes,
parq_q1 = :parq_q1, parq_q2 = :parq_q2, parq_q3 = :parq_q3, parq_q4 = :parq_q4, parq_q5 = :parq_q5, parq_q6 = :parq_q6, parq_q7 = :parq_q7,
updated_at = :updated_at
WHERE id = :id AND professor_id = :professor_id`

	res, err := r.db.NamedExecContext(ctx, query, student)
	if err != nil {
		return fmt.Errorf("update student: %w", translateWriteError(err, false))
	}
	if err := expectAffected(res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// UpdateStatusOwned changes the enrollment status of an owned student.
func (r *StudentRepository) UpdateStatusOwned(ctx context.Context, id, ownerID int64, status models.StudentStatus) error {
	const query = `UPDATE alunos SET status = $3, updated_at = $4 WHERE id = $1 AND professor_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, ownerID, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update student status: %w", err)
	}
	if err := expectAffected(res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("update student status: %w", err)
	}
	return nil
}

// DeleteOwned removes an owned student; its assessments go with it.
func (r *StudentRepository) DeleteOwned(ctx context.Context, id, ownerID int64) error {
	const query = `DELETE FROM alunos WHERE id = $1 AND professor_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete student: %w", translateWriteError(err, true))
	}
	if err := expectAffected(res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("delete student: %w", err)
	}
	return nil
}
