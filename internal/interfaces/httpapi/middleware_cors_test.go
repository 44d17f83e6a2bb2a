package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	const site = "https://register.example.gg"

	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		wantStatus  int
		wantOrigin  string
		wantCreds   string
		wantHeaders string
	}{
		{
			name:        "named origin gets credentials",
			allowed:     []string{site},
			method:      http.MethodGet,
			origin:      site,
			wantStatus:  http.StatusOK,
			wantOrigin:  site,
			wantCreds:   "true",
			wantHeaders: "Authorization,Content-Type,Accept,X-Guest-User-Id",
		},
		{
			name:        "wildcard preflight",
			allowed:     []string{"*"},
			method:      http.MethodOptions,
			origin:      site,
			wantStatus:  http.StatusNoContent,
			wantOrigin:  "*",
			wantHeaders: "Authorization,Content-Type,Accept,X-Guest-User-Id",
		},
		{
			name:       "unknown origin",
			allowed:    []string{"https://other.example.gg"},
			method:     http.MethodGet,
			origin:     site,
			wantStatus: http.StatusOK,
		},
		{
			name:       "no origin header",
			allowed:    []string{"*"},
			method:     http.MethodOptions,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			req := httptest.NewRequest(tt.method, "/form", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()

			CORS(tt.allowed, next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Fatalf("allow origin = %q, want %q", got, tt.wantOrigin)
			}
			if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCreds {
				t.Fatalf("allow credentials = %q, want %q", got, tt.wantCreds)
			}
			if got := rec.Header().Get("Access-Control-Allow-Headers"); got != tt.wantHeaders {
				t.Fatalf("allow headers = %q, want %q", got, tt.wantHeaders)
			}
		})
	}
}
