package team

import (
	"context"
	"time"
)

// Repository persists team registrations.
//
// Admit is the only insert path. It must run the lookup of the config, the team count and the
// submitter's existing record, the admission callback, the insert and the capacity reconcile
// as one serialized unit, so concurrent submitters cannot both pass the same check.
type Repository interface {
	Admit(ctx context.Context, reg Registration, admit AdmissionFunc, now time.Time) (AdmitResult, error)
	GetByID(ctx context.Context, id string) (Registration, bool, error)
	GetByUserID(ctx context.Context, userID string) (Registration, bool, error)
	ListByCreation(ctx context.Context) ([]Registration, error)
	ListRecent(ctx context.Context, limit int) ([]Registration, error)
	Count(ctx context.Context) (int, error)
	CountByDay(ctx context.Context, since time.Time) ([]DailyCount, error)
	Update(ctx context.Context, reg Registration) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	// ClaimGuest reassigns every record owned by guestUserID to userID and returns how many moved.
	ClaimGuest(ctx context.Context, guestUserID, userID string, now time.Time) (int, error)
	SetStatus(ctx context.Context, status Status) error
	ListStatuses(ctx context.Context) ([]Status, error)
}
