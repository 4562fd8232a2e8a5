package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc/metadata"
)

// Principal is the authenticated caller carried in the request context.
type Principal struct {
	Name string // login username
	Kind string // "admin" | "client" | "pilot" | "editor"
}

// Principal kinds, matching models.Role values.
const (
	KindAdmin  = "admin"
	KindClient = "client"
	KindPilot  = "pilot"
	KindEditor = "editor"
)

var knownKinds = map[string]bool{KindAdmin: true, KindClient: true, KindPilot: true, KindEditor: true}

// Claims is the HS256 token body shared by every portal.
type Claims struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

var (
	errEmptySecret   = errors.New("jwt secret is empty")
	errInvalidClaims = errors.New("invalid claims")
)

type principalKey struct{}

// WithPrincipal stores the principal in context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext retrieves the principal from context (if any).
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}

// Issue signs a token for p. A zero ttl issues a token without expiry.
func Issue(secret string, p Principal, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", errEmptySecret
	}
	kind := strings.ToLower(strings.TrimSpace(p.Kind))
	if strings.TrimSpace(p.Name) == "" || !knownKinds[kind] {
		return "", fmt.Errorf("%w: name %q kind %q", errInvalidClaims, p.Name, p.Kind)
	}
	c := Claims{Name: p.Name, Kind: kind, RegisteredClaims: jwt.RegisteredClaims{
		Subject:  p.Name,
		IssuedAt: jwt.NewNumericDate(now),
	}}
	if ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

// ParseFromMD extracts and validates a Bearer JWT from incoming gRPC metadata.
func ParseFromMD(ctx context.Context, secret string) (*Principal, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, errors.New("missing metadata")
	}
	tok, err := bearer(md.Get("authorization"))
	if err != nil {
		return nil, err
	}
	return Parse(tok, secret)
}

func bearer(vals []string) (string, error) {
	if len(vals) == 0 {
		return "", errors.New("missing authorization")
	}
	scheme, tok, ok := strings.Cut(vals[0], " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tok) == "" {
		return "", errors.New("invalid authorization header")
	}
	return strings.TrimSpace(tok), nil
}

// Parse validates an HS256 token and returns its principal. Expired tokens and unknown
// kinds are rejected.
func Parse(tokenStr, secret string) (*Principal, error) {
	if secret == "" {
		return nil, errEmptySecret
	}
	var c Claims
	_, err := jwt.ParseWithClaims(tokenStr, &c, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if c.Name == "" || c.Kind == "" {
		return nil, errInvalidClaims
	}
	kind := strings.ToLower(c.Kind)
	if !knownKinds[kind] {
		return nil, fmt.Errorf("unknown principal kind %q", c.Kind)
	}
	return &Principal{Name: c.Name, Kind: kind}, nil
}
