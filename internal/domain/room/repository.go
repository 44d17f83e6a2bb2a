package room

import "context"

// Repository exposes room persistence operations. Create assigns the next match number.
type Repository interface {
	List(ctx context.Context) ([]Room, error)
	GetByID(ctx context.Context, id string) (Room, bool, error)
	GetByMatchNumber(ctx context.Context, matchNumber int) (Room, bool, error)
	Create(ctx context.Context, r Room) (Room, error)
	Update(ctx context.Context, r Room) (bool, error)
}
