package identity

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hacklens/hacklens-go/internal/session"
)

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	return token
}

func TestDecodeRoundTrip(t *testing.T) {
	now := time.Now()
	exp := now.Add(time.Hour)

	tests := []struct {
		name    string
		subject string
		role    string
	}{
		{"participant", "alice", "participant"},
		{"judge", "bob", "judge"},
		{"admin", "admin_om", "admin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := mintToken(t, jwt.MapClaims{"sub": tt.subject, "role": tt.role, "exp": exp.Unix()})
			id, err := Decode(raw, now)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if id.Subject != tt.subject || id.Role != Role(tt.role) {
				t.Errorf("got %+v, want subject %q role %q", id, tt.subject, tt.role)
			}
			if id.ExpiresAt.Unix() != exp.Unix() {
				t.Errorf("ExpiresAt = %v, want %v", id.ExpiresAt, exp)
			}
		})
	}
}

func TestDecodeFailures(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"garbage", "not-a-token", ErrMalformedToken},
		{"two segments", "abc.def", ErrMalformedToken},
		{"missing role", mintToken(t, jwt.MapClaims{"sub": "alice"}), ErrMalformedToken},
		{"unknown role", mintToken(t, jwt.MapClaims{"sub": "alice", "role": "superuser"}), ErrMalformedToken},
		{"missing subject", mintToken(t, jwt.MapClaims{"role": "participant"}), ErrMalformedToken},
		{"expired", mintToken(t, jwt.MapClaims{"sub": "alice", "role": "participant", "exp": now.Add(-time.Minute).Unix()}), ErrTokenExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Decode(tt.raw, now)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode error = %v, want %v", err, tt.wantErr)
			}
			if id != nil {
				t.Errorf("Decode returned identity %+v for invalid token", id)
			}
		})
	}
}

func TestDecodeWithoutExpiry(t *testing.T) {
	raw := mintToken(t, jwt.MapClaims{"sub": "alice", "role": "participant"})
	id, err := Decode(raw, time.Now())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !id.ExpiresAt.IsZero() {
		t.Errorf("ExpiresAt = %v, want zero for token without exp", id.ExpiresAt)
	}
}

func TestDecodeIdempotent(t *testing.T) {
	now := time.Now()
	raw := mintToken(t, jwt.MapClaims{"sub": "alice", "role": "judge", "exp": now.Add(time.Hour).Unix()})
	first, err := Decode(raw, now)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	second, err := Decode(raw, now)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if *first != *second {
		t.Errorf("Decode not idempotent: %+v vs %+v", first, second)
	}
}

func TestResolve(t *testing.T) {
	t.Run("no token is anonymous", func(t *testing.T) {
		store := session.NewMemStore()
		id, err := Resolve(store)
		if id != nil || err != nil {
			t.Errorf("Resolve = (%+v, %v), want (nil, nil)", id, err)
		}
	})

	t.Run("valid token resolves", func(t *testing.T) {
		store := session.NewMemStore()
		raw := mintToken(t, jwt.MapClaims{"sub": "alice", "role": "participant", "exp": time.Now().Add(time.Hour).Unix()})
		if err := store.SetToken(raw); err != nil {
			t.Fatal(err)
		}
		id, err := Resolve(store)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if id.Subject != "alice" || id.Role != RoleParticipant {
			t.Errorf("got %+v", id)
		}
	})

	t.Run("invalid token is cleared", func(t *testing.T) {
		store := session.NewMemStore()
		if err := store.SetToken("stale-garbage"); err != nil {
			t.Fatal(err)
		}
		id, err := Resolve(store)
		if id != nil || !errors.Is(err, ErrMalformedToken) {
			t.Errorf("Resolve = (%+v, %v), want (nil, ErrMalformedToken)", id, err)
		}
		if _, ok := store.Token(); ok {
			t.Error("stale token was not cleared from the store")
		}
	})

	t.Run("expired token is cleared", func(t *testing.T) {
		store := session.NewMemStore()
		raw := mintToken(t, jwt.MapClaims{"sub": "alice", "role": "participant", "exp": time.Now().Add(-time.Hour).Unix()})
		if err := store.SetToken(raw); err != nil {
			t.Fatal(err)
		}
		if _, err := Resolve(store); !errors.Is(err, ErrTokenExpired) {
			t.Errorf("Resolve error = %v, want ErrTokenExpired", err)
		}
		if _, ok := store.Token(); ok {
			t.Error("expired token was not cleared from the store")
		}
	})
}
