package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groenvak/offerte-service/internal/model"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestParserAccepteertKleineLetterRol(t *testing.T) {
	userID := uuid.New()
	orgID := uuid.New()
	token := signToken(t, jwt.MapClaims{
		"user_id": userID.String(),
		"org_id":  orgID.String(),
		"naam":    "Jan Planner",
		"role":    "planner",
	})

	principal, err := NewParser(testSecret).Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, principal.UserID)
	assert.Equal(t, orgID, principal.OrgID)
	assert.Equal(t, model.RolePlanner, principal.Role)
}

func TestParserAccepteertHoofdletterRol(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"org_id":  uuid.NewString(),
		"naam":    "Beheer",
		"role":    "ADMIN",
	})

	principal, err := NewParser(testSecret).Parse(token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, principal.Role)
}

func TestParserWeigertOnbekendeRol(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"org_id":  uuid.NewString(),
		"role":    "directeur",
	})

	_, err := NewParser(testSecret).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParserWeigertVerkeerdSecret(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"org_id":  uuid.NewString(),
		"role":    "planner",
	}).SignedString([]byte("ander-secret"))
	require.NoError(t, err)

	_, err = NewParser(testSecret).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParserWeigertOngeldigeIDs(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": "niet-een-uuid",
		"org_id":  uuid.NewString(),
		"role":    "planner",
	})

	_, err := NewParser(testSecret).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
