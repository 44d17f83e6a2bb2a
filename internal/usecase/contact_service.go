package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/contact"
	idgen "github.com/riskibarqy/tournament-registration/internal/platform/id"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

type SubmitContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type ContactService struct {
	repo   contact.Repository
	idGen  idgen.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewContactService(repo contact.Repository, idGen idgen.Generator, logger *logging.Logger) *ContactService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ContactService{repo: repo, idGen: idGen, logger: logger, now: time.Now}
}

// Submit stores a message from an authenticated user.
func (s *ContactService) Submit(ctx context.Context, userID string, input SubmitContactInput) (out contact.Submission, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContactService.Submit")
	defer finishSpan(span, &err)

	out = contact.Submission{
		UserID:  userID,
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	}.Normalize()
	if out.UserID == "" {
		return contact.Submission{}, fmt.Errorf("%w: sign in to contact the organisers", ErrUnauthorized)
	}
	if !out.Complete() {
		return contact.Submission{}, fmt.Errorf("%w: all fields are required", ErrInvalidInput)
	}
	if field := out.TooLong(); field != "" {
		return contact.Submission{}, fmt.Errorf("%w: %s is too long", ErrInvalidInput, field)
	}

	out.ID, err = s.idGen.NewID()
	if err != nil {
		return contact.Submission{}, fmt.Errorf("generate contact form id: %w", err)
	}
	out.CreatedAt = s.now().UTC()

	if err := s.repo.Create(ctx, out); err != nil {
		return contact.Submission{}, fmt.Errorf("create contact form: %w", err)
	}
	s.logger.InfoContext(ctx, "contact form submitted", "contact_id", out.ID, "user_id", out.UserID)
	return out, nil
}

func (s *ContactService) List(ctx context.Context) (out []contact.Submission, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContactService.List")
	defer finishSpan(span, &err)

	out, err = s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contact forms: %w", err)
	}
	return out, nil
}

func (s *ContactService) Delete(ctx context.Context, id string) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContactService.Delete")
	defer finishSpan(span, &err)

	id = strings.TrimSpace(id)
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete contact form: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: contact form=%s", ErrNotFound, id)
	}
	s.logger.InfoContext(ctx, "contact form deleted", "contact_id", id)
	return nil
}
