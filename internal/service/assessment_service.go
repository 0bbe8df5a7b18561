package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/avaliacao-fisica-api/internal/dto"
	"github.com/noah-isme/avaliacao-fisica-api/internal/models"
	appErrors "github.com/noah-isme/avaliacao-fisica-api/pkg/errors"
)

type assessmentRepository interface {
	List(ctx context.Context) ([]models.AssessmentDetail, error)
	FindByID(ctx context.Context, id int64) (*models.AssessmentDetail, error)
	Create(ctx context.Context, assessment *models.Assessment) error
	Update(ctx context.Context, assessment *models.Assessment) error
}

type assessmentStudentLookup interface {
	FindByID(ctx context.Context, id int64) (*models.Student, error)
}

// AssessmentService builds assessments from student snapshots and records measurements.
// Unlike students, assessments are visible to every authenticated evaluator.
type AssessmentService struct {
	repo      assessmentRepository
	students  assessmentStudentLookup
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	now       func() time.Time
}

// NewAssessmentService constructs the service.
func NewAssessmentService(repo assessmentRepository, students assessmentStudentLookup, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *AssessmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{repo: repo, students: students, validator: validate, logger: logger, metrics: metrics, now: time.Now}
}

// List returns all assessments, newest first.
func (s *AssessmentService) List(ctx context.Context) ([]models.AssessmentDetail, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list assessments", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to list assessments")
	}
	return items, nil
}

// Get returns one assessment with its student's name.
func (s *AssessmentService) Get(ctx context.Context, id int64) (*models.AssessmentDetail, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assessment not found")
		}
		s.logger.Error("failed to load assessment", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to load assessment")
	}
	return item, nil
}

// Create copies the student's current intake profile into a new assessment. Measurements start empty.
func (s *AssessmentService) Create(ctx context.Context, evaluator *models.Account, req dto.CreateAssessmentRequest) (*models.Assessment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "alunoId is required")
	}

	student, err := s.students.FindByID(ctx, req.AlunoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		s.logger.Error("failed to load student for assessment", zap.Int64("aluno_id", req.AlunoID), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to load student")
	}

	assessment := &models.Assessment{
		StudentID:     student.ID,
		EvaluatorID:   evaluator.ID,
		AssessedAt:    s.now().UTC(),
		IntakeProfile: student.IntakeProfile.Clone(),
	}
	if req.DataAvaliacao != nil {
		assessment.AssessedAt = req.DataAvaliacao.UTC()
	}

	if err := s.repo.Create(ctx, assessment); err != nil {
		s.logger.Error("failed to create assessment", zap.Int64("aluno_id", student.ID), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to create assessment")
	}
	s.metrics.RecordAssessmentCreated()
	s.logger.Info("assessment created", zap.Int64("id", assessment.ID), zap.Int64("aluno_id", student.ID), zap.Int64("avaliador_id", evaluator.ID))
	return assessment, nil
}

// Update applies a partial patch. Present measurement keys are stored as numbers or null,
// never rejected; absent keys keep their value.
func (s *AssessmentService) Update(ctx context.Context, id int64, patch dto.AssessmentPatch) (*models.AssessmentDetail, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.DataAvaliacao != nil {
		current.AssessedAt = patch.DataAvaliacao.UTC()
	}
	patch.IntakeFields.ApplyTo(&current.IntakeProfile)
	applyMeasurements(&current.Assessment, patch.MeasurementFields)

	if err := s.repo.Update(ctx, &current.Assessment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assessment not found")
		}
		s.logger.Error("failed to update assessment", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to save assessment")
	}
	return current, nil
}

func applyMeasurements(a *models.Assessment, m dto.MeasurementFields) {
	fields := []struct {
		in  dto.NumericInput
		dst **float64
	}{
		{m.Peso, &a.Weight},
		{m.Altura, &a.Height},
		{m.CircCintura, &a.Waist},
		{m.CircAbdomen, &a.Abdomen},
		{m.CircQuadril, &a.Hip},
		{m.CircBracoRelaxadoD, &a.RelaxedArmRight},
		{m.CircBracoRelaxadoE, &a.RelaxedArmLeft},
		{m.DcTriceps, &a.Triceps},
		{m.DcSubescapular, &a.Subscapular},
		{m.DcPeitoral, &a.Pectoral},
		{m.DcAxilarMedia, &a.Midaxillary},
		{m.DcSuprailiaca, &a.Suprailiac},
		{m.DcAbdominal, &a.Abdominal},
		{m.DcCoxa, &a.Thigh},
	}
	for _, f := range fields {
		if f.in.Set {
			*f.dst = f.in.Value
		}
	}
}
