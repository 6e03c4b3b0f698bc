package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims asserts the identity of a logged in user. It carries no role or permission.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// TokenIssuer signs HS256 bearer tokens with a fixed lifetime
type TokenIssuer struct {
	SignedKey    []byte
	SignedMethod jwt.SigningMethod
	ExpiresIn    time.Duration

	now func() time.Time
}

// NewTokenIssuer creates a new HS256 token issuer
func NewTokenIssuer(secret string, expiresIn time.Duration) *TokenIssuer {
	return &TokenIssuer{
		SignedKey:    []byte(secret),
		SignedMethod: jwt.SigningMethodHS256,
		ExpiresIn:    expiresIn,
		now:          time.Now,
	}
}

// Issue signs a token for the given identity
func (g *TokenIssuer) Issue(email, name string) (string, error) {
	if len(g.SignedKey) == 0 {
		return "", errors.New("cannot sign token: empty secret")
	}

	now := g.clock()
	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ExpiresIn)),
		},
	}

	token := jwt.NewWithClaims(g.SignedMethod, claims)
	signed, err := token.SignedString(g.SignedKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse validates the signature and the time based claims and returns the identity
func (g *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method to prevent algorithm confusion attacks
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v. Expected HMAC", token.Header["alg"])
		}
		return g.SignedKey, nil
	}, jwt.WithIssuedAt(), jwt.WithTimeFunc(g.clock))
	if err != nil {
		return nil, fmt.Errorf("token parsing failed: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	return claims, nil
}

func (g *TokenIssuer) clock() time.Time {
	if g.now == nil {
		return time.Now()
	}
	return g.now()
}
