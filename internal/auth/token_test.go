package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/avaliacao-fisica-api/internal/models"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCodecRoundTrip(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := NewCodec("secret", 0, WithClock(fixedClock(issued)))

	token, expiresAt, err := codec.Issue(7, "prof@uni.com", models.RoleProfessor)
	require.NoError(t, err)
	assert.Equal(t, issued.Add(24*time.Hour), expiresAt)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.AccountID)
	assert.Equal(t, "prof@uni.com", claims.Email)
	assert.Equal(t, models.RoleProfessor, claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestCodecExpiry(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	token, _, err := NewCodec("secret", time.Hour, WithClock(fixedClock(issued))).Issue(1, "a@b.com", models.RoleAdmin)
	require.NoError(t, err)

	cases := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{name: "just before expiry", at: issued.Add(time.Hour - time.Second)},
		{name: "at expiry", at: issued.Add(time.Hour), wantErr: ErrExpired},
		{name: "after expiry", at: issued.Add(2 * time.Hour), wantErr: ErrExpired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			codec := NewCodec("secret", time.Hour, WithClock(fixedClock(tc.at)))
			_, err := codec.Verify(token)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCodecRejectsForeignSignature(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	token, _, err := NewCodec("other", 0, WithClock(fixedClock(now))).Issue(1, "a@b.com", models.RoleAdmin)
	require.NoError(t, err)

	_, err = NewCodec("secret", 0, WithClock(fixedClock(now))).Verify(token)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestCodecExpiredWinsOverBadSignature(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	token, _, err := NewCodec("other", 0, WithClock(fixedClock(issued))).Issue(1, "a@b.com", models.RoleAdmin)
	require.NoError(t, err)

	_, err = NewCodec("secret", 0, WithClock(fixedClock(issued.Add(25*time.Hour)))).Verify(token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestCodecRejectsGarbage(t *testing.T) {
	codec := NewCodec("secret", 0)
	for _, token := range []string{"", "abc", "a.b.c", strings.Repeat("x", 64)} {
		_, err := codec.Verify(token)
		assert.ErrorIs(t, err, ErrMalformed, token)
	}
}

func TestCodecRejectsUnknownRole(t *testing.T) {
	_, _, err := NewCodec("secret", 0).Issue(1, "a@b.com", models.Role(0))
	assert.Error(t, err)
}

func TestCookieSetAndClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ck := NewCookie("", 0, true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	ck.Set(c, "tok")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, DefaultCookieName, cookies[0].Name)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.Equal(t, 86400, cookies[0].MaxAge)
	assert.Equal(t, "/", cookies[0].Path)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	ck.Clear(c)
	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestCookieRead(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ck := NewCookie("auth-token", 0, false)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := ck.Read(c)
	assert.False(t, ok)

	c.Request.AddCookie(&http.Cookie{Name: "auth-token", Value: "abc"})
	token, ok := ck.Read(c)
	assert.True(t, ok)
	assert.Equal(t, "abc", token)
}
