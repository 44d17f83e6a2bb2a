package team

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateSubmission = errors.New("duplicate submission")
	ErrUniquenessViolation = errors.New("uniqueness violation")
	ErrValidation          = errors.New("validation failed")
)

const (
	MessageAlreadySubmitted        = "You have already submitted a form"
	MessageAlreadySubmittedAsGuest = "You have already submitted a form with this session"
	MessageSubmissionFailed        = "Form submission failed. Please try again."
	MessageValidationFailed        = "Validation failed. Please check your input."
)

// DuplicateError reports that the submitter already owns a registration.
type DuplicateError struct {
	Guest bool
}

func (e *DuplicateError) Error() string {
	return e.Message()
}

func (e *DuplicateError) Message() string {
	if e.Guest {
		return MessageAlreadySubmittedAsGuest
	}
	return MessageAlreadySubmitted
}

func (e *DuplicateError) Unwrap() error {
	return ErrDuplicateSubmission
}

// UniquenessError reports a collision on a globally unique contact field.
type UniquenessError struct {
	Field string
}

func (e *UniquenessError) Error() string {
	if e.Field == "" {
		return ErrUniquenessViolation.Error()
	}
	return fmt.Sprintf("%s: %s", ErrUniquenessViolation, e.Field)
}

func (e *UniquenessError) Unwrap() error {
	return ErrUniquenessViolation
}

type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violated field in form order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// CheckDuplicate rejects a submitter that already owns existing.
func CheckDuplicate(sub Submitter, existing *Registration) error {
	if existing == nil {
		return nil
	}
	sub = sub.Normalized()
	switch {
	case sub.UserID != "" && existing.UserID == sub.UserID:
		return &DuplicateError{}
	case sub.UserID == "" && sub.GuestUserID != "" && existing.GuestUserID == sub.GuestUserID:
		return &DuplicateError{Guest: true}
	}
	return nil
}
