package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/slangscope/slangscope/config"
)

const JwtAlg = "HS256"

// ExtensionSubject is the subject of tokens issued for the browser extension.
const ExtensionSubject = "slangscope-extension"

var ErrMissingSecret = errors.New(
	"auth secret not set. Ensure SLANGSCOPE_AUTH_SECRET is set in your environment",
)

func newTokenAuth(cfg *config.Config) (*jwtauth.JWTAuth, error) {
	secret := []byte(cfg.Auth.Secret)
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	return jwtauth.New(JwtAlg, secret, nil), nil
}

// GenerateJWT issues a token signed with the configured secret. A ttl of 0
// issues a token that never expires.
func GenerateJWT(cfg *config.Config, ttl time.Duration) (string, error) {
	tokenAuth, err := newTokenAuth(cfg)
	if err != nil {
		return "", err
	}

	claims := map[string]interface{}{"sub": ExtensionSubject}
	jwtauth.SetIssuedNow(claims)
	if ttl > 0 {
		jwtauth.SetExpiryIn(claims, ttl)
	}

	_, tokenString, err := tokenAuth.Encode(claims)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// JWTVerifier returns middleware that verifies bearer tokens and rejects
// requests without a valid one.
func JWTVerifier(cfg *config.Config) (func(http.Handler) http.Handler, error) {
	tokenAuth, err := newTokenAuth(cfg)
	if err != nil {
		return nil, err
	}

	verifier := jwtauth.Verifier(tokenAuth)
	return func(next http.Handler) http.Handler {
		return verifier(jwtauth.Authenticator(next))
	}, nil
}
