package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/avaliacao-fisica-api/internal/dto"
	"github.com/noah-isme/avaliacao-fisica-api/internal/models"
	"github.com/noah-isme/avaliacao-fisica-api/internal/repository"
	appErrors "github.com/noah-isme/avaliacao-fisica-api/pkg/errors"
)

func newProfessorFixture() (*ProfessorService, *fakeAccountRepo) {
	repo := newFakeAccountRepo(
		&models.Account{ID: 1, Email: "admin@uni.com", Name: "Admin", Role: models.RoleAdmin, Status: models.AccountActive, CampusID: 1},
		&models.Account{ID: 2, Email: "coadmin@uni.com", Name: "Co-admin", Role: models.RoleAdmin, Status: models.AccountActive, CampusID: 1},
	)
	return NewProfessorService(repo, nil, nil, bcrypt.MinCost), repo
}

func TestProfessorCreate(t *testing.T) {
	svc, repo := newProfessorFixture()

	account, err := svc.Create(context.Background(), dto.CreateProfessorRequest{
		Name: "Marta", Email: "Marta@Uni.com", Password: "segredo1", CampusID: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleProfessor, account.Role)
	assert.Equal(t, models.AccountActive, account.Status)
	assert.Equal(t, "marta@uni.com", account.Email)

	stored := repo.byID[account.ID]
	assert.NotEqual(t, "segredo1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("segredo1")))
}

func TestProfessorCreateDuplicateEmail(t *testing.T) {
	svc, _ := newProfessorFixture()

	_, err := svc.Create(context.Background(), dto.CreateProfessorRequest{
		Name: "Other", Email: "admin@uni.com", Password: "segredo1", CampusID: 1,
	})
	assert.ErrorIs(t, err, appErrors.ErrConflict)
	assert.Equal(t, "email already in use", appErrors.FromError(err).Message)
}

func TestProfessorCreateValidation(t *testing.T) {
	svc, _ := newProfessorFixture()

	_, err := svc.Create(context.Background(), dto.CreateProfessorRequest{Name: "Marta", Email: "marta@uni.com"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestProfessorUpdateKeepsPasswordWhenBlank(t *testing.T) {
	svc, repo := newProfessorFixture()
	created, err := svc.Create(context.Background(), dto.CreateProfessorRequest{Name: "Marta", Email: "marta@uni.com", Password: "segredo1", CampusID: 2})
	require.NoError(t, err)
	before := repo.byID[created.ID].PasswordHash

	blank := ""
	updated, err := svc.Update(context.Background(), created.ID, dto.UpdateProfessorRequest{Name: strPtr("Marta S."), Password: &blank})
	require.NoError(t, err)
	assert.Equal(t, "Marta S.", updated.Name)
	assert.Equal(t, before, repo.byID[created.ID].PasswordHash)

	_, err = svc.Update(context.Background(), 999, dto.UpdateProfessorRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestProfessorSetStatus(t *testing.T) {
	svc, _ := newProfessorFixture()
	created, err := svc.Create(context.Background(), dto.CreateProfessorRequest{Name: "Marta", Email: "marta@uni.com", Password: "segredo1", CampusID: 2})
	require.NoError(t, err)

	account, err := svc.SetStatus(context.Background(), 1, created.ID, dto.ProfessorStatusRequest{Status: models.AccountInactive})
	require.NoError(t, err)
	assert.False(t, account.Active())

	_, err = svc.SetStatus(context.Background(), 1, 1, dto.ProfessorStatusRequest{Status: models.AccountInactive})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.SetStatus(context.Background(), 1, created.ID, dto.ProfessorStatusRequest{Status: "SUSPENDED"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestProfessorDelete(t *testing.T) {
	svc, repo := newProfessorFixture()

	assert.ErrorIs(t, svc.Delete(context.Background(), 1, 1), appErrors.ErrValidation)
	assert.ErrorIs(t, svc.Delete(context.Background(), 1, 404), appErrors.ErrNotFound)

	created, err := svc.Create(context.Background(), dto.CreateProfessorRequest{Name: "Marta", Email: "marta@uni.com", Password: "segredo1", CampusID: 2})
	require.NoError(t, err)
	repo.deleteErr = repository.ErrReferenced
	err = svc.Delete(context.Background(), 1, created.ID)
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	repo.deleteErr = nil
	require.NoError(t, svc.Delete(context.Background(), 1, created.ID))
	assert.NotContains(t, repo.byID, created.ID)
}

func TestProfessorRoutesDoNotTouchOtherAdmins(t *testing.T) {
	svc, repo := newProfessorFixture()
	ctx := context.Background()

	_, err := svc.Update(ctx, 2, dto.UpdateProfessorRequest{Name: strPtr("Renamed")})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.SetStatus(ctx, 1, 2, dto.ProfessorStatusRequest{Status: models.AccountInactive})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 1, 2), appErrors.ErrNotFound)

	require.Contains(t, repo.byID, int64(2))
	assert.Equal(t, "Co-admin", repo.byID[2].Name)
	assert.True(t, repo.byID[2].Active())
}
