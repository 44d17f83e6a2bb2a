package schedule

import "context"

// Repository exposes schedule persistence operations.
type Repository interface {
	List(ctx context.Context) ([]Schedule, error)
	GetByID(ctx context.Context, id string) (Schedule, bool, error)
	Create(ctx context.Context, s Schedule) error
	Update(ctx context.Context, s Schedule) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
