package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer          = "useradmin"
	DefaultGrantTTL = 2 * time.Minute
)

var ErrInvalidToken = errors.New("invalid token")

type Service struct {
	jwtSecret string
	ttl       time.Duration
}

func New(jwtSecret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultGrantTTL
	}
	return &Service{jwtSecret: jwtSecret, ttl: ttl}
}

// GrantClaims authorize exactly one deletion: the attempt that passed OTP
// verification, for one target user.
type GrantClaims struct {
	AttemptID    string `json:"attempt_id"`
	TargetUserID string `json:"target_user_id"`
	AdminPhone   string `json:"admin_phone"`
	jwt.RegisteredClaims
}

func (s *Service) IssueGrant(attemptID, targetUserID, adminPhone string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.ttl)
	claims := GrantClaims{
		AttemptID:    attemptID,
		TargetUserID: targetUserID,
		AdminPhone:   adminPhone,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   targetUserID,
			ID:        attemptID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (s *Service) ValidateGrant(tokenStr string) (*GrantClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &GrantClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*GrantClaims)
	if !ok || claims.AttemptID == "" || claims.TargetUserID == "" {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}
