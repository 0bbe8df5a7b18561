package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleParsing(t *testing.T) {
	role, err := ParseRole("ADMIN")
	require.NoError(t, err)
	assert.True(t, role.IsAdmin())

	role, err = ParseRole("PROFESSOR")
	require.NoError(t, err)
	assert.False(t, role.IsAdmin())

	_, err = ParseRole("admin")
	assert.Error(t, err)
}

func TestRoleJSON(t *testing.T) {
	payload, err := json.Marshal(struct {
		Role Role `json:"role"`
	}{Role: RoleProfessor})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"PROFESSOR"}`, string(payload))

	var out struct {
		Role Role `json:"role"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"role":"ROOT"}`), &out))
}

func TestRoleScan(t *testing.T) {
	var r Role
	require.NoError(t, r.Scan([]byte("ADMIN")))
	assert.Equal(t, RoleAdmin, r)
	assert.Error(t, r.Scan(int64(1)))

	_, err := Role(0).Value()
	assert.Error(t, err)
}

func TestAccountJSONOmitsHash(t *testing.T) {
	payload, err := json.Marshal(Account{ID: 1, Email: "a@b.com", PasswordHash: "secret", Role: RoleAdmin, Status: AccountActive})
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "secret")
	assert.NotContains(t, string(payload), "password")
}
