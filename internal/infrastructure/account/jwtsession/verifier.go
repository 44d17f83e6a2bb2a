package jwtsession

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	"github.com/riskibarqy/tournament-registration/internal/usecase"
)

// Claims carry the session issued by the account service. Older tokens put the user id in sub.
type Claims struct {
	UserID string `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 session tokens signed with a shared secret.
type Verifier struct {
	secret []byte
	leeway time.Duration
	now    func() time.Time
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), leeway: 30 * time.Second, now: time.Now}
}

func (v *Verifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	parsed, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return user.Principal{}, fmt.Errorf("%w: invalid session token", usecase.ErrUnauthorized)
	}
	if err := v.validateTimes(claims); err != nil {
		return user.Principal{}, err
	}

	userID := strings.TrimSpace(claims.UserID)
	if userID == "" {
		userID = strings.TrimSpace(claims.Subject)
	}
	if userID == "" {
		return user.Principal{}, fmt.Errorf("%w: session token has no user", usecase.ErrUnauthorized)
	}

	role := strings.TrimSpace(claims.Role)
	if role == "" {
		role = user.RoleUser
	}
	return user.Principal{UserID: userID, Email: claims.Email, Role: role}, nil
}

func (v *Verifier) validateTimes(claims Claims) error {
	now := v.now()
	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Add(v.leeway)) {
		return fmt.Errorf("%w: session expired", usecase.ErrUnauthorized)
	}
	if claims.NotBefore != nil && now.Add(v.leeway).Before(claims.NotBefore.Time) {
		return fmt.Errorf("%w: session not yet valid", usecase.ErrUnauthorized)
	}
	return nil
}

// Sign issues a token for p. The account service owns issuance; this serves local development
// and tests.
func (v *Verifier) Sign(p user.Principal, ttl time.Duration) (string, error) {
	now := v.now()
	claims := Claims{
		UserID: p.UserID,
		Email:  p.Email,
		Role:   p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  p.UserID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}
