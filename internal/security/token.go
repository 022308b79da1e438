package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const RolePlatformAdmin = "platform_admin"

// Claims carries the identity asserted by the external identity provider.
// The portal never mints credentials itself; it validates bearer tokens
// signed with the secret shared with the provider.
type Claims struct {
	ProfileID string   `json:"profile_id"`
	Email     string   `json:"email,omitempty"`
	Roles     []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// IsPlatformAdmin reports whether the token grants platform-wide admin rights.
func (c *Claims) IsPlatformAdmin() bool {
	for _, r := range c.Roles {
		if r == RolePlatformAdmin {
			return true
		}
	}
	return false
}

type TokenManager interface {
	GenerateToken(profileID, email string, roles []string, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type tokenManager struct {
	secret []byte
	issuer string
}

func NewTokenManager(secret string) TokenManager {
	return &tokenManager{
		secret: []byte(secret),
		issuer: "civichub-idp",
	}
}

// GenerateToken mints a token the way the identity provider does. Used by the
// dev tooling and the test suite; production tokens come from the provider.
func (m *tokenManager) GenerateToken(profileID, email string, roles []string, ttl time.Duration) (string, error) {
	claims := Claims{
		ProfileID: profileID,
		Email:     email,
		Roles:     roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profileID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    m.issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ProfileID == "" {
		claims.ProfileID = claims.Subject
	}
	return claims, nil
}
