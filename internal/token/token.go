// Package token issues and verifies the HS256 bearer tokens that carry a
// caller's identity claims.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is the fixed validity window of an issued token. There is no refresh.
const TTL = 365 * 24 * time.Hour

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
	ErrNoSecret     = errors.New("token secret is empty")
)

// Claims is the verified identity extracted from a token.
type Claims struct {
	Email     string
	Name      string
	ExpiresAt time.Time
	// Raw holds every claim as signed, including the registered ones.
	Raw map[string]any
}

type Verifier interface {
	Verify(raw string) (Claims, error)
}

// Service signs and verifies tokens with a shared secret.
type Service struct {
	secret []byte
	now    func() time.Time
}

func NewService(secret string) (*Service, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrNoSecret
	}

	return &Service{secret: []byte(secret), now: time.Now}, nil
}

// Issue signs identity as-is. exp, iat and nbf are always set by the server.
func (s *Service) Issue(identity map[string]any) (string, error) {
	now := s.now()

	claims := jwt.MapClaims{}
	for k, v := range identity {
		claims[k] = v
	}
	delete(claims, "nbf")
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(TTL))

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Service) Verify(raw string) (Claims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}

		return Claims{}, ErrTokenInvalid
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return Claims{}, ErrTokenInvalid
	}

	email, _ := mc["email"].(string)
	if strings.TrimSpace(email) == "" {
		return Claims{}, ErrTokenInvalid
	}

	name, _ := mc["name"].(string)

	out := Claims{Email: email, Name: name, Raw: map[string]any(mc)}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}

	return out, nil
}
