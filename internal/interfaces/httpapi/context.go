package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/riskibarqy/tournament-registration/internal/domain/user"
)

type principalKey struct{}

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// principalFromContext reports the caller set by Authenticate, if any.
func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(user.Principal)
	return p, ok && p.UserID != ""
}

// guestIDFrom prefers the id sent in the body and falls back to the X-Guest-User-Id header.
func guestIDFrom(r *http.Request, fromBody string) string {
	if id := strings.TrimSpace(fromBody); id != "" {
		return id
	}
	return strings.TrimSpace(r.Header.Get(guestUserIDHeader))
}
