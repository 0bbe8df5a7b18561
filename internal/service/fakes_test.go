package service

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/avaliacao-fisica-api/internal/models"
	"github.com/noah-isme/avaliacao-fisica-api/internal/repository"
)

type fakeAccountRepo struct {
	byID      map[int64]*models.Account
	nextID    int64
	err       error
	deleteErr error
}

func newFakeAccountRepo(accounts ...*models.Account) *fakeAccountRepo {
	repo := &fakeAccountRepo{byID: map[int64]*models.Account{}, nextID: 100}
	for _, a := range accounts {
		repo.byID[a.ID] = a
	}
	return repo
}

func (f *fakeAccountRepo) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, a := range f.byID {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAccountRepo) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccountRepo) List(ctx context.Context) ([]models.AccountWithCampus, error) {
	out := make([]models.AccountWithCampus, 0, len(f.byID))
	for _, a := range f.byID {
		out = append(out, models.AccountWithCampus{Account: *a})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *models.Account) error {
	for _, a := range f.byID {
		if a.Email == account.Email {
			return repository.ErrDuplicate
		}
	}
	f.nextID++
	account.ID = f.nextID
	cp := *account
	f.byID[account.ID] = &cp
	return nil
}

func (f *fakeAccountRepo) Update(ctx context.Context, account *models.Account) error {
	if _, ok := f.byID[account.ID]; !ok {
		return sql.ErrNoRows
	}
	for _, a := range f.byID {
		if a.Email == account.Email && a.ID != account.ID {
			return repository.ErrDuplicate
		}
	}
	cp := *account
	f.byID[account.ID] = &cp
	return nil
}

func (f *fakeAccountRepo) UpdateStatus(ctx context.Context, id int64, status models.AccountStatus) error {
	a, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	a.Status = status
	return nil
}

func (f *fakeAccountRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

type fakeStudentRepo struct {
	byID   map[int64]*models.Student
	nextID int64
}

func newFakeStudentRepo(students ...*models.Student) *fakeStudentRepo {
	repo := &fakeStudentRepo{byID: map[int64]*models.Student{}, nextID: 100}
	for _, s := range students {
		repo.byID[s.ID] = s
	}
	return repo
}

func (f *fakeStudentRepo) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStudentRepo) FindOwned(ctx context.Context, id, ownerID int64) (*models.Student, error) {
	s, ok := f.byID[id]
	if !ok || s.ProfessorID != ownerID {
		return nil, sql.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStudentRepo) ListOwned(ctx context.Context, ownerID int64, filter models.StudentFilter) ([]models.Student, error) {
	out := make([]models.Student, 0)
	for _, s := range f.byID {
		if s.ProfessorID != ownerID {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	f.nextID++
	student.ID = f.nextID
	if student.Status == "" {
		student.Status = models.StudentActive
	}
	cp := *student
	f.byID[student.ID] = &cp
	return nil
}

func (f *fakeStudentRepo) UpdateOwned(ctx context.Context, student *models.Student) error {
	s, ok := f.byID[student.ID]
	if !ok || s.ProfessorID != student.ProfessorID {
		return sql.ErrNoRows
	}
	cp := *student
	f.byID[student.ID] = &cp
	return nil
}

func (f *fakeStudentRepo) UpdateStatusOwned(ctx context.Context, id, ownerID int64, status models.StudentStatus) error {
	s, ok := f.byID[id]
	if !ok || s.ProfessorID != ownerID {
		return sql.ErrNoRows
	}
	s.Status = status
	return nil
}

func (f *fakeStudentRepo) DeleteOwned(ctx context.Context, id, ownerID int64) error {
	s, ok := f.byID[id]
	if !ok || s.ProfessorID != ownerID {
		return sql.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

type fakeAssessmentRepo struct {
	byID   map[int64]*models.Assessment
	nextID int64
}

func newFakeAssessmentRepo() *fakeAssessmentRepo {
	return &fakeAssessmentRepo{byID: map[int64]*models.Assessment{}}
}

func (f *fakeAssessmentRepo) List(ctx context.Context) ([]models.AssessmentDetail, error) {
	out := make([]models.AssessmentDetail, 0, len(f.byID))
	for _, a := range f.byID {
		out = append(out, models.AssessmentDetail{Assessment: *a})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssessedAt.After(out[j].AssessedAt) })
	return out, nil
}

func (f *fakeAssessmentRepo) FindByID(ctx context.Context, id int64) (*models.AssessmentDetail, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.AssessmentDetail{Assessment: *a}, nil
}

func (f *fakeAssessmentRepo) Create(ctx context.Context, assessment *models.Assessment) error {
	f.nextID++
	assessment.ID = f.nextID
	if assessment.AssessedAt.IsZero() {
		assessment.AssessedAt = time.Now().UTC()
	}
	cp := *assessment
	f.byID[assessment.ID] = &cp
	return nil
}

func (f *fakeAssessmentRepo) Update(ctx context.Context, assessment *models.Assessment) error {
	if _, ok := f.byID[assessment.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *assessment
	f.byID[assessment.ID] = &cp
	return nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }

func floatPtr(v float64) *float64 { return &v }
