package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/usecase"
)

const internalErrorMessage = "internal server error"

type errorBody struct {
	Error   string           `json:"error"`
	Reason  string           `json:"reason"`
	Status  string           `json:"status"`
	Details []fieldErrorBody `json:"details,omitempty"`
}

type fieldErrorBody struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
	Message    string
	Details    []fieldErrorBody
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	writeJSON(ctx, w, mapped.HTTPStatus, errorBody{
		Error:   mapped.Message,
		Reason:  mapped.Reason,
		Status:  mapped.Status,
		Details: mapped.Details,
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, errorBody{
		Error:  internalErrorMessage,
		Reason: "internalError",
		Status: "INTERNAL",
	})
}

// mapError picks the status and the user-facing message. Admission and duplicate messages are
// shown to end users verbatim; storage failures never leak their detail.
func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	var (
		validation *team.ValidationError
		denied     *registration.DeniedError
		duplicate  *team.DuplicateError
	)
	switch {
	case errors.As(err, &validation):
		details := make([]fieldErrorBody, 0, len(validation.Fields))
		for _, f := range validation.Fields {
			details = append(details, fieldErrorBody{Field: f.Field, Message: f.Message})
		}
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "validationFailed",
			Status:     "INVALID_ARGUMENT",
			Message:    team.MessageValidationFailed,
			Details:    details,
		}
	case errors.As(err, &denied):
		return mappedError{
			HTTPStatus: http.StatusForbidden,
			Reason:     string(denied.Cause),
			Status:     "PERMISSION_DENIED",
			Message:    denied.Reason,
		}
	case errors.As(err, &duplicate):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "duplicateSubmission",
			Status:     "ALREADY_EXISTS",
			Message:    duplicate.Message(),
		}
	case errors.Is(err, team.ErrUniquenessViolation):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "uniquenessViolation",
			Status:     "ALREADY_EXISTS",
			Message:    team.MessageSubmissionFailed,
		}
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
			Message:    err.Error(),
		}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
			Message:    err.Error(),
		}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "unauthorized",
			Status:     "UNAUTHENTICATED",
			Message:    err.Error(),
		}
	case errors.Is(err, usecase.ErrForbidden):
		return mappedError{
			HTTPStatus: http.StatusForbidden,
			Reason:     "forbidden",
			Status:     "PERMISSION_DENIED",
			Message:    err.Error(),
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
			Message:    err.Error(),
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
			Message:    internalErrorMessage,
		}
	}
}
