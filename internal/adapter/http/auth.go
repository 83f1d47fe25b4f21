package httpadapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"creator-ads/internal/core/domain"
)

// Claims are the bearer token claims. The subject is the user id.
type Claims struct {
	jwt.RegisteredClaims
	Role domain.Role `json:"role"`
}

// Authenticator verifies HS256 bearer tokens issued by the account service.
type Authenticator struct {
	secret []byte
	issuer string
}

// NewAuthenticator returns an authenticator. An empty issuer disables the
// issuer check.
func NewAuthenticator(secret, issuer string) *Authenticator {
	return &Authenticator{secret: []byte(secret), issuer: issuer}
}

// Issue signs a token for the actor. It backs local tooling and tests.
func (a *Authenticator) Issue(actor domain.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.UserID.String(),
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: actor.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Verify parses a token and returns the actor it names.
func (a *Authenticator) Verify(token string) (domain.Actor, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}
	claims := &Claims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...); err != nil {
		return domain.Actor{}, fmt.Errorf("token validation failed: %w", err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("token subject: %w", err)
	}
	switch claims.Role {
	case domain.RoleSeller, domain.RoleMarketer, domain.RoleAdmin:
	default:
		return domain.Actor{}, fmt.Errorf("unknown role %q", claims.Role)
	}
	return domain.Actor{UserID: id, Role: claims.Role}, nil
}

type actorKey struct{}

// Middleware rejects requests without a valid bearer token and stores the
// caller in the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			writeMessage(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		actor, err := a.Verify(token)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey{}, actor)))
	})
}

var errNoActor = errors.New("no authenticated actor")

func actorFrom(ctx context.Context) (domain.Actor, error) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	if !ok {
		return domain.Actor{}, errNoActor
	}
	return actor, nil
}
