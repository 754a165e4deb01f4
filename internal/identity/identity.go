package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/hacklens/hacklens-go/internal/session"
)

// Role is the closed set of platform roles.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleJudge       Role = "judge"
	RoleAdmin       Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleParticipant, RoleJudge, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// Identity is what a held token asserts about the current user. It is derived
// from claims, never constructed directly; an absent, malformed or expired
// token means there is no Identity (anonymous, represented as nil).
type Identity struct {
	Subject   string
	Role      Role
	ExpiresAt time.Time // zero when the token carries no expiry
}

var (
	ErrMalformedToken = errors.New("malformed token")
	ErrTokenExpired   = errors.New("token expired")
)

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Decode extracts the identity a token asserts, without verifying its
// signature. Signature trust is the server's concern on every authenticated
// request; the client only needs the claims to gate navigation and actions.
// Pure with respect to (raw, now).
func Decode(raw string, now time.Time) (*Identity, error) {
	var c claims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if c.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject claim", ErrMalformedToken)
	}
	role, err := ParseRole(c.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	id := &Identity{Subject: c.Subject, Role: role}
	if c.ExpiresAt != nil {
		id.ExpiresAt = c.ExpiresAt.Time
		if !now.Before(id.ExpiresAt) {
			return nil, ErrTokenExpired
		}
	}
	return id, nil
}

// Resolve derives the current identity from the session store. A missing
// token resolves to anonymous (nil, nil). A token that fails to decode also
// resolves to anonymous, and the stale token is cleared so it is not retried.
func Resolve(store session.Store) (*Identity, error) {
	raw, ok := store.Token()
	if !ok {
		return nil, nil
	}
	id, err := Decode(raw, time.Now())
	if err != nil {
		zap.S().Warnf("clearing unusable session token: %v", err)
		if clearErr := store.Clear(); clearErr != nil {
			zap.S().Errorf("failed to clear session token: %v", clearErr)
		}
		return nil, err
	}
	return id, nil
}
