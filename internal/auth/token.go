package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"coffee-orders/internal/config"
)

// ErrInvalidToken covers every verification failure; callers only need
// to know the request is unauthorized.
var ErrInvalidToken = errors.New("invalid token")

// Claims carried by a dev token.
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authority issues and verifies HS256 bearer tokens with a shared
// symmetric secret. Issuance is a development shortcut: there is no
// credential check, so the endpoint exposing it must stay gated.
type Authority struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	leeway   time.Duration
}

func NewAuthority(cfg config.AuthConfig) *Authority {
	ttl := time.Duration(cfg.TokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	leeway := time.Duration(cfg.SkewSeconds) * time.Second
	if leeway <= 0 {
		leeway = 5 * time.Second
	}
	return &Authority{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      ttl,
		leeway:   leeway,
	}
}

// Issue signs a token for the given identity, expiring after the
// configured TTL.
func (a *Authority) Issue(subject, name, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Name: name,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    a.issuer,
			Audience:  jwt.ClaimStrings{a.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Verify checks signature, issuer, audience, and time claims, allowing
// the configured clock-skew leeway.
func (a *Authority) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(a.issuer),
		jwt.WithAudience(a.audience),
		jwt.WithLeeway(a.leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
