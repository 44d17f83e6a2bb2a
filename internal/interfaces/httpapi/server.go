package httpapi

import (
	"net/http"

	"github.com/sourcegraph/conc/panics"

	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

type RouterOptions struct {
	Logger             *logging.Logger
	CORSAllowedOrigins []string
	// SessionCookie is read when no Authorization header is sent. Empty disables cookie sessions.
	SessionCookie string
	// Metrics is served at GET /metrics when set.
	Metrics http.Handler
}

func NewRouter(handler *Handler, verifier TokenVerifier, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, opts.Metrics)
	registerPublicRoutes(mux, handler)
	registerUserRoutes(mux, handler)
	registerAdminRoutes(mux, handler)

	authenticated := Authenticate(verifier, opts.SessionCookie, logger, mux)
	return RequestTracing(RequestLogging(logger, CORS(opts.CORSAllowedOrigins, recoverPanic(logger, authenticated))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		var pc panics.Catcher
		pc.Try(func() { next.ServeHTTP(w, r.WithContext(ctx)) })
		if rec := pc.Recovered(); rec != nil {
			logger.ErrorContext(ctx, "panic recovered", "panic", rec.Value, "stack", string(rec.Stack))
			writeInternalError(ctx, w)
		}
	})
}
