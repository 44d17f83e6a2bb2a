package jwtsession

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	"github.com/riskibarqy/tournament-registration/internal/usecase"
)

func TestVerifier_RoundTrip(t *testing.T) {
	t.Parallel()

	v := NewVerifier("s3cret")
	token, err := v.Sign(user.Principal{UserID: "user-1", Email: "a@example.com", Role: "admin"}, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	p, err := v.VerifyAccessToken(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if p.UserID != "user-1" || p.Email != "a@example.com" || !p.IsAdmin() {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestVerifier_SubjectFallbackAndDefaultRole(t *testing.T) {
	t.Parallel()

	v := NewVerifier("s3cret")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "legacy-user"}).SignedString([]byte("s3cret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	p, err := v.VerifyAccessToken(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if p.UserID != "legacy-user" || p.Role != user.RoleUser {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestVerifier_Rejects(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	signer := NewVerifier("s3cret")
	signer.now = func() time.Time { return issuedAt }
	expiring, err := signer.Sign(user.Principal{UserID: "user-1"}, time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	other, err := NewVerifier("other").Sign(user.Principal{UserID: "user-1"}, 0)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	noUser, err := NewVerifier("s3cret").Sign(user.Principal{}, 0)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "user-1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	verifier := NewVerifier("s3cret")
	verifier.now = func() time.Time { return issuedAt.Add(time.Hour) }

	tests := map[string]string{
		"empty":        "  ",
		"garbage":      "not-a-token",
		"expired":      expiring,
		"wrong secret": other,
		"no user":      noUser,
		"alg none":     none,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := verifier.VerifyAccessToken(context.Background(), token); !errors.Is(err, usecase.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}
