// Package auth identifies the staff member behind a request from a signed bearer token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrJamesThe3rd/till/internal/http/respond"
)

const issuer = "till"

var ErrInvalidToken = errors.New("invalid token")

type ctxKey struct{}

// Actor returns the authenticated staff name, or "" when the request carried none.
func Actor(ctx context.Context) string {
	actor, _ := ctx.Value(ctxKey{}).(string)
	return actor
}

func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, ctxKey{}, actor)
}

type Authenticator struct {
	secret []byte
	now    func() time.Time
}

// New returns an Authenticator. An empty secret disables checks and every request
// runs as the default actor.
func New(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret), now: time.Now}
}

func (a *Authenticator) Enabled() bool {
	return len(a.secret) > 0
}

// Issue signs a token naming the actor.
func (a *Authenticator) Issue(actor string, ttl time.Duration) (string, error) {
	if !a.Enabled() {
		return "", errors.New("no signing secret configured")
	}

	if strings.TrimSpace(actor) == "" {
		return "", errors.New("actor is required")
	}

	now := a.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   actor,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// Verify checks the signature and expiry and returns the actor.
func (a *Authenticator) Verify(raw string) (string, error) {
	var claims jwt.RegisteredClaims

	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims.Subject, nil
}

// Middleware rejects requests without a valid bearer token and stores the actor on the context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	if !a.Enabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			w.Header().Set("WWW-Authenticate", `Bearer realm="till"`)
			respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})

			return
		}

		actor, err := a.Verify(raw)
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="till", error="invalid_token"`)
			respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": ErrInvalidToken.Error()})

			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}
