package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/groenvak/offerte-service/internal/model"
)

var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	UserID string `json:"user_id"`
	OrgID  string `json:"org_id"`
	Naam   string `json:"naam"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Parser verifieert HS256 access tokens die door de identity service zijn
// uitgegeven en levert de Principal op. Uitgifte van tokens gebeurt elders.
type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret)}
}

func (p *Parser) Parse(tokenString string) (model.Principal, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return model.Principal{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return model.Principal{}, ErrInvalidToken
	}
	orgID, err := uuid.Parse(c.OrgID)
	if err != nil {
		return model.Principal{}, ErrInvalidToken
	}

	// De identity service geeft rollen in kleine letters uit.
	role := model.Role(strings.ToUpper(c.Role))
	switch role {
	case model.RoleAdmin, model.RolePlanner, model.RoleMedewerker:
	default:
		return model.Principal{}, ErrInvalidToken
	}

	return model.Principal{
		UserID: userID,
		OrgID:  orgID,
		Naam:   c.Naam,
		Role:   role,
	}, nil
}
