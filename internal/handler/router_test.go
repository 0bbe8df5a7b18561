package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/avaliacao-fisica-api/internal/auth"
	"github.com/noah-isme/avaliacao-fisica-api/internal/dto"
	"github.com/noah-isme/avaliacao-fisica-api/internal/models"
	"github.com/noah-isme/avaliacao-fisica-api/internal/service"
	appErrors "github.com/noah-isme/avaliacao-fisica-api/pkg/errors"
)

var (
	adminAccount     = &models.Account{ID: 1, Email: "admin@universidade.com", Role: models.RoleAdmin, Status: models.AccountActive, CampusID: 1}
	professorAccount = &models.Account{ID: 7, Email: "prof@universidade.com", Role: models.RoleProfessor, Status: models.AccountActive, CampusID: 1}
)

type tokenResolver map[string]*models.Account

func (r tokenResolver) Resolve(ctx context.Context, token string) (*models.Account, error) {
	if token == "" {
		return nil, appErrors.ErrUnauthorized
	}
	if token == "inactive" {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "account missing or inactive")
	}
	account, ok := r[token]
	if !ok {
		return nil, appErrors.ErrInvalidToken
	}
	return account, nil
}

type authServiceStub struct {
	session *models.Session
	err     error
	got     models.LoginRequest
}

func (s *authServiceStub) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	s.got = req
	return s.session, s.err
}

type campusServiceStub struct{}

func (campusServiceStub) List(ctx context.Context) ([]models.Campus, error) {
	return []models.Campus{{ID: 1, Name: "Chapecó", City: "Chapecó"}}, nil
}

type professorServiceStub struct {
	deletedBy int64
}

func (s *professorServiceStub) List(ctx context.Context) ([]models.AccountWithCampus, error) {
	return []models.AccountWithCampus{{Account: *adminAccount}}, nil
}

func (s *professorServiceStub) Get(ctx context.Context, id int64) (*models.Account, error) {
	return professorAccount, nil
}

func (s *professorServiceStub) Create(ctx context.Context, req dto.CreateProfessorRequest) (*models.Account, error) {
	return professorAccount, nil
}

func (s *professorServiceStub) Update(ctx context.Context, id int64, req dto.UpdateProfessorRequest) (*models.Account, error) {
	return professorAccount, nil
}

func (s *professorServiceStub) SetStatus(ctx context.Context, actorID, id int64, req dto.ProfessorStatusRequest) (*models.Account, error) {
	return professorAccount, nil
}

func (s *professorServiceStub) Delete(ctx context.Context, actorID, id int64) error {
	s.deletedBy = actorID
	return nil
}

type studentServiceStub struct {
	caller *models.Account
	id     int64
}

func (s *studentServiceStub) List(ctx context.Context, caller *models.Account, query dto.StudentQuery) ([]models.Student, error) {
	s.caller = caller
	return []models.Student{}, nil
}

func (s *studentServiceStub) Get(ctx context.Context, caller *models.Account, id int64) (*models.Student, error) {
	s.caller, s.id = caller, id
	if id == 99 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return &models.Student{ID: id, ProfessorID: caller.ID}, nil
}

func (s *studentServiceStub) Create(ctx context.Context, caller *models.Account, req dto.CreateStudentRequest) (*models.Student, error) {
	s.caller = caller
	return &models.Student{ID: 1, Name: req.Nome, ProfessorID: caller.ID, CampusID: caller.CampusID}, nil
}

func (s *studentServiceStub) Update(ctx context.Context, caller *models.Account, id int64, req dto.UpdateStudentRequest) (*models.Student, error) {
	return &models.Student{ID: id}, nil
}

func (s *studentServiceStub) SetStatus(ctx context.Context, caller *models.Account, id int64, req dto.StudentStatusRequest) (*models.Student, error) {
	return &models.Student{ID: id, Status: req.Status}, nil
}

func (s *studentServiceStub) Delete(ctx context.Context, caller *models.Account, id int64) error {
	s.caller, s.id = caller, id
	return nil
}

type assessmentServiceStub struct {
	patch dto.AssessmentPatch
}

func (s *assessmentServiceStub) List(ctx context.Context) ([]models.AssessmentDetail, error) {
	return []models.AssessmentDetail{}, nil
}

func (s *assessmentServiceStub) Get(ctx context.Context, id int64) (*models.AssessmentDetail, error) {
	return &models.AssessmentDetail{Assessment: models.Assessment{ID: id}}, nil
}

func (s *assessmentServiceStub) Create(ctx context.Context, evaluator *models.Account, req dto.CreateAssessmentRequest) (*models.Assessment, error) {
	return &models.Assessment{ID: 3, StudentID: req.AlunoID, EvaluatorID: evaluator.ID}, nil
}

func (s *assessmentServiceStub) Update(ctx context.Context, id int64, patch dto.AssessmentPatch) (*models.AssessmentDetail, error) {
	s.patch = patch
	return &models.AssessmentDetail{Assessment: models.Assessment{ID: id}}, nil
}

type exportServiceStub struct{}

func (exportServiceStub) StudentRoster(ctx context.Context, caller *models.Account, query dto.StudentQuery) (*service.ExportResult, error) {
	return &service.ExportResult{Filename: "alunos.csv", ContentType: "text/csv; charset=utf-8", Body: []byte("id;nome\n")}, nil
}

func (exportServiceStub) AssessmentReport(ctx context.Context, id int64) (*service.ExportResult, error) {
	return &service.ExportResult{Filename: "avaliacao-5.pdf", ContentType: "application/pdf", Body: []byte("%PDF-1.3")}, nil
}

type pingerStub struct{ err error }

func (p pingerStub) PingContext(ctx context.Context) error { return p.err }

type testAPI struct {
	router      *gin.Engine
	auth        *authServiceStub
	professors  *professorServiceStub
	students    *studentServiceStub
	assessments *assessmentServiceStub
}

func newTestAPI(t *testing.T, db Pinger) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cookie := auth.NewCookie("", time.Hour, false)
	api := &testAPI{
		router:      gin.New(),
		auth:        &authServiceStub{},
		professors:  &professorServiceStub{},
		students:    &studentServiceStub{},
		assessments: &assessmentServiceStub{},
	}
	exports := exportServiceStub{}
	Register(api.router, Handlers{
		Auth:       NewAuthHandler(api.auth, cookie),
		Campus:     NewCampusHandler(campusServiceStub{}),
		Professor:  NewProfessorHandler(api.professors),
		Student:    NewStudentHandler(api.students, exports),
		Assessment: NewAssessmentHandler(api.assessments, exports),
		Metrics:    NewMetricsHandler(nil, db, nil),
	}, RouteOptions{
		Prefix:   "/api",
		Resolver: tokenResolver{"admin": adminAccount, "prof": professorAccount},
		Cookie:   cookie,
	})
	return api
}

func (a *testAPI) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.DefaultCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code, body.Error.Message
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	api := newTestAPI(t, nil)

	cases := []struct {
		name   string
		token  string
		status int
		code   string
	}{
		{name: "no cookie", status: http.StatusUnauthorized, code: "UNAUTHORIZED"},
		{name: "bad token", token: "garbage", status: http.StatusForbidden, code: "INVALID_TOKEN"},
		{name: "inactive account", token: "inactive", status: http.StatusForbidden, code: "FORBIDDEN"},
		{name: "active professor", token: "prof", status: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := api.do(http.MethodGet, "/api/alunos", tc.token, "")
			require.Equal(t, tc.status, w.Code)
			if tc.code != "" {
				code, _ := errorCode(t, w)
				assert.Equal(t, tc.code, code)
			}
		})
	}
	assert.Equal(t, professorAccount, api.students.caller)
}

func TestAdminRoutesRejectProfessors(t *testing.T) {
	api := newTestAPI(t, nil)

	w := api.do(http.MethodGet, "/api/admin/professors", "prof", "")
	require.Equal(t, http.StatusForbidden, w.Code)
	code, msg := errorCode(t, w)
	assert.Equal(t, "FORBIDDEN", code)
	assert.Equal(t, "route restricted to administrators", msg)

	w = api.do(http.MethodPost, "/api/admin/professors", "", `{}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodGet, "/api/admin/professors", "admin", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodDelete, "/api/admin/professors/7", "admin", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, adminAccount.ID, api.professors.deletedBy)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	api := newTestAPI(t, nil)
	api.auth.session = &models.Session{Token: "signed-token", ExpiresAt: time.Now().Add(time.Hour), Account: professorAccount}

	w := api.do(http.MethodPost, "/api/auth/login", "", `{"email":"prof@universidade.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "signed-token")
	assert.Equal(t, "prof@universidade.com", api.auth.got.Email)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "signed-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLoginFailureSetsNoCookie(t *testing.T) {
	api := newTestAPI(t, nil)
	api.auth.err = appErrors.ErrInvalidCredentials

	w := api.do(http.MethodPost, "/api/auth/login", "", `{"email":"x@y.com","password":"nope"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())

	w = api.do(http.MethodPost, "/api/auth/login", "", `not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	api := newTestAPI(t, nil)

	w := api.do(http.MethodPost, "/api/auth/logout", "", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestMeReturnsPrincipal(t *testing.T) {
	api := newTestAPI(t, nil)

	w := api.do(http.MethodGet, "/api/auth/me", "admin", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data models.Account `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, adminAccount.ID, body.Data.ID)
	assert.Equal(t, models.RoleAdmin, body.Data.Role)
}

func TestStudentRoutes(t *testing.T) {
	api := newTestAPI(t, nil)

	w := api.do(http.MethodGet, "/api/alunos/abc", "prof", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/api/alunos/99", "prof", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodGet, "/api/alunos/12", "prof", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(12), api.students.id)

	w = api.do(http.MethodPost, "/api/alunos", "prof", `{"nome":"Ana"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = api.do(http.MethodDelete, "/api/alunos/12", "prof", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(http.MethodGet, "/api/alunos/export.csv", "prof", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "alunos.csv")
}

func TestAssessmentUpdateCoercesMeasurements(t *testing.T) {
	api := newTestAPI(t, nil)

	w := api.do(http.MethodPut, "/api/avaliacoes/5", "prof", `{"peso":"72.5","altura":"abc","dcCoxa":18}`)
	require.Equal(t, http.StatusOK, w.Code)

	patch := api.assessments.patch
	require.True(t, patch.Peso.Set)
	require.NotNil(t, patch.Peso.Value)
	assert.Equal(t, 72.5, *patch.Peso.Value)
	assert.True(t, patch.Altura.Set)
	assert.Nil(t, patch.Altura.Value)
	require.NotNil(t, patch.DcCoxa.Value)
	assert.Equal(t, 18.0, *patch.DcCoxa.Value)
	assert.False(t, patch.CircCintura.Set)
}

func TestAssessmentCreateAndReport(t *testing.T) {
	api := newTestAPI(t, nil)

	w := api.do(http.MethodPost, "/api/avaliacoes", "prof", `{"alunoId":4}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var body struct {
		Data models.Assessment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, professorAccount.ID, body.Data.EvaluatorID)

	w = api.do(http.MethodGet, "/api/avaliacoes/5/relatorio.pdf", "prof", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
}

func TestCampusListIsPublic(t *testing.T) {
	api := newTestAPI(t, nil)

	w := api.do(http.MethodGet, "/api/campus", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Chapecó")
}

func TestReadiness(t *testing.T) {
	w := newTestAPI(t, pingerStub{}).do(http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = newTestAPI(t, pingerStub{err: errors.New("down")}).do(http.MethodGet, "/api/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = newTestAPI(t, nil).do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
