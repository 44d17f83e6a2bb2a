package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/usecase"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantReason  string
		wantMessage string
	}{
		{
			name:        "denied by capacity",
			err:         &registration.DeniedError{Cause: registration.CauseCapacityReached, Reason: registration.ReasonCapacityReached},
			wantStatus:  http.StatusForbidden,
			wantReason:  string(registration.CauseCapacityReached),
			wantMessage: registration.ReasonCapacityReached,
		},
		{
			name:        "duplicate user",
			err:         fmt.Errorf("admit: %w", &team.DuplicateError{}),
			wantStatus:  http.StatusBadRequest,
			wantReason:  "duplicateSubmission",
			wantMessage: team.MessageAlreadySubmitted,
		},
		{
			name:        "duplicate guest",
			err:         &team.DuplicateError{Guest: true},
			wantStatus:  http.StatusBadRequest,
			wantReason:  "duplicateSubmission",
			wantMessage: team.MessageAlreadySubmittedAsGuest,
		},
		{
			name:        "uniqueness",
			err:         &team.UniquenessError{Field: "igl_mail"},
			wantStatus:  http.StatusConflict,
			wantReason:  "uniquenessViolation",
			wantMessage: team.MessageSubmissionFailed,
		},
		{
			name:       "not found",
			err:        fmt.Errorf("%w: team=x", usecase.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantReason: "notFound",
		},
		{
			name:       "forbidden",
			err:        usecase.ErrForbidden,
			wantStatus: http.StatusForbidden,
			wantReason: "forbidden",
		},
		{
			name:       "dependency",
			err:        fmt.Errorf("%w: account service", usecase.ErrDependencyUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantReason: "dependencyUnavailable",
		},
		{
			name:        "storage failure hides detail",
			err:         errors.New("pq: connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantReason:  "internalError",
			wantMessage: internalErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(context.Background(), tt.err)
			if got.HTTPStatus != tt.wantStatus {
				t.Fatalf("status=%d want=%d", got.HTTPStatus, tt.wantStatus)
			}
			if got.Reason != tt.wantReason {
				t.Fatalf("reason=%q want=%q", got.Reason, tt.wantReason)
			}
			if tt.wantMessage != "" && got.Message != tt.wantMessage {
				t.Fatalf("message=%q want=%q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestWriteError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, &team.ValidationError{Fields: []team.FieldError{
		{Field: "teamName", Message: "Team name must be at least 2 characters"},
	}})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body errorBody
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body.Error != team.MessageValidationFailed {
		t.Fatalf("unexpected error message %q", body.Error)
	}
	if len(body.Details) != 1 || body.Details[0].Field != "teamName" {
		t.Fatalf("unexpected details %+v", body.Details)
	}
}

func TestWriteError_NoDetailsKeyWhenEmpty(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if _, ok := body["details"]; ok {
		t.Fatalf("did not expect details key, got %v", body)
	}
	if got, _ := body["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected status INVALID_ARGUMENT, got %v", body["status"])
	}
}
