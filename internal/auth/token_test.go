package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emilybakes/bakery/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	staff := &domain.Staff{ID: 3, Email: "baker@emilybakes.com", Role: domain.RoleBaker}

	token, err := m.Generate(staff)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, 3, claims.StaffID)
	assert.Equal(t, "baker@emilybakes.com", claims.Email)
	assert.Equal(t, domain.RoleBaker, claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).Generate(&domain.Staff{ID: 1})
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	token, err := NewManager("secret", -time.Minute).Generate(&domain.Staff{ID: 1})
	require.NoError(t, err)

	_, err = NewManager("secret", -time.Minute).Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewManager("secret", time.Hour).Parse("not.a.token")
	assert.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.Equal(t, "", ExtractToken(r))

	r.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", ExtractToken(r))

	r.Header.Set("Authorization", "Basic abc123")
	assert.Equal(t, "", ExtractToken(r))
}
