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

const assessmentColumns = `a.id, a.aluno_id, a.avaliador_id, a.data_avaliacao, ` +
	`a.objetivos, a.historico_medico, a.medicamentos_em_uso, a.habitos, a.observacoes, ` +
	`a.parq_q1, a.parq_q2, a.parq_q3, a.parq_q4, a.parq_q5, a.parq_q6, a.parq_q7, ` +
	`a.peso, a.altura, a.circ_cintura, a.circ_abdomen, a.circ_quadril, a.circ_braco_relaxado_d, a.circ_braco_relaxado_e, ` +
	`a.dc_triceps, a.dc_subescapular, a.dc_peitoral, a.dc_axilar_media, a.dc_suprailiaca, a.dc_abdominal, a.dc_coxa, ` +
	`a.created_at, a.updated_at`

// AssessmentRepository persists assessments. Reads are not filtered by owner.
type AssessmentRepository struct {
	db *sqlx.DB
}

// NewAssessmentRepository constructs the repository.
func NewAssessmentRepository(db *sqlx.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// List returns every assessment, newest first, with student and evaluator names.
func (r *AssessmentRepository) List(ctx context.Context) ([]models.AssessmentDetail, error) {
	query := `SELECT ` + assessmentColumns + `, s.nome AS aluno_nome, s.matricula AS aluno_matricula, u.name AS avaliador_nome
FROM avaliacoes a
JOIN alunos s ON s.id = a.aluno_id
JOIN users u ON u.id = a.avaliador_id
ORDER BY a.data_avaliacao DESC, a.id DESC`
	rows := make([]models.AssessmentDetail, 0)
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	for i := range rows {
		fillRefs(&rows[i], true)
	}
	return rows, nil
}

// FindByID loads one assessment with its student's name.
func (r *AssessmentRepository) FindByID(ctx context.Context, id int64) (*models.AssessmentDetail, error) {
	query := `SELECT ` + assessmentColumns + `, s.nome AS aluno_nome, s.matricula AS aluno_matricula, u.name AS avaliador_nome
FROM avaliacoes a
JOIN alunos s ON s.id = a.aluno_id
JOIN users u ON u.id = a.avaliador_id
WHERE a.id = $1`
	var detail models.AssessmentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find assessment: %w", err)
	}
	fillRefs(&detail, false)
	return &detail, nil
}

// Create inserts an assessment and assigns its id.
func (r *AssessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	now := time.Now().UTC()
	assessment.CreatedAt = now
	assessment.UpdatedAt = now
	if assessment.AssessedAt.IsZero() {
		assessment.AssessedAt = now
	}

	const query = `INSERT INTO avaliacoes (aluno_id, avaliador_id, data_avaliacao,
objetivos, historico_medico, medicamentos_em_uso, habitos, observacoes,
parq_q1, parq_q2, parq_q3, parq_q4, parq_q5, parq_q6, parq_q7,
peso, altura, circ_cintura, circ_abdomen, circ_quadril, circ_braco_relaxado_d, circ_braco_relaxado_e,
dc_triceps, dc_subescapular, dc_peitoral, dc_axilar_media, dc_suprailiaca, dc_abdominal, dc_coxa,
created_at, updated_at)
VALUES (:aluno_id, :avaliador_id, :data_avaliacao,
:objetivos, :historico_medico, :medicamentos_em_uso, :habitos, :observacoes,
:parq_q1, :parq_q2, :parq_q3, :parq_q4, :parq_q5, :parq_q6, :parq_q7,
:peso, :altura, :circ_cintura, :circ_abdomen, :circ_quadril, :circ_braco_relaxado_d, :circ_braco_relaxado_e,
:dc_triceps, :dc_subescapular, :dc_peitoral, :dc_axilar_media, :dc_suprailiaca, :dc_abdominal, :dc_coxa,
:created_at, :updated_at) RETURNING id`

	bound, args, err := r.db.BindNamed(query, assessment)
	if err != nil {
		return fmt.Errorf("bind assessment insert: %w", err)
	}
	if err := r.db.QueryRowxContext(ctx, bound, args...).Scan(&assessment.ID); err != nil {
		return fmt.Errorf("create assessment: %w", translateWriteError(err, false))
	}
	return nil
}

// Update overwrites the snapshot and measurement columns.
func (r *AssessmentRepository) Update(ctx context.Context, assessment *models.Assessment) error {
	assessment.UpdatedAt = time.Now().UTC()
	const query = `UPDATE avaliacoes SET data_avaliacao = :data_avaliacao,
objetivos = :objetivos, historico_medico = :historico_medico, medicamentos_em_uso = :medicamentos_em_uso,
habitos = :habitos, observacoes = :observacoes,
parq_q1 = :parq_q1, parq_q2 = :parq_q2, parq_q3 = :parq_q3, parq_q4 = :parq_q4, parq_q5 = :parq_q5, parq_q6 = :parq_q6, parq_q7 = :parq_q7,
peso = :peso, altura = :altura, circ_cintura = :circ_cintura, circ_abdomen = :circ_abdomen, circ_quadril = :circ_quadril,
circ_braco_relaxado_d = :circ_braco_relaxado_d, circ_braco_relaxado_e = :circ_braco_relaxado_e,
dc_triceps = :dc_triceps, dc_subescapular = :dc_subescapular, dc_peitoral = :dc_peitoral, dc_axilar_media = :dc_axilar_media,
dc_suprailiaca = :dc_suprailiaca, dc_abdominal = :dc_abdominal, dc_coxa = :dc_coxa,
updated_at = :updated_at
WHERE id = :id`

	res, err := r.db.NamedExecContext(ctx, query, assessment)
	if err != nil {
		return fmt.Errorf("update assessment: %w", err)
	}
	if err := expectAffected(res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("update assessment: %w", err)
	}
	return nil
}

func fillRefs(detail *models.AssessmentDetail, withEvaluator bool) {
	detail.Student = models.StudentRef{Name: detail.StudentName}
	if withEvaluator {
		detail.Student.EnrollmentNumber = detail.StudentEnrollmentNumber
		detail.Evaluator = &models.EvaluatorRef{Name: detail.EvaluatorName}
	}
}
