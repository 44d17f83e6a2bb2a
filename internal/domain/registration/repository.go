package registration

import (
	"context"
	"time"
)

// Repository persists the singleton config. Implementations reconcile capacity against the
// live team count inside the same write.
type Repository interface {
	// Find returns the config without creating it.
	Find(ctx context.Context) (Config, bool, error)
	// GetOrCreate returns the config, inserting DefaultConfig when absent. The bool reports creation.
	GetOrCreate(ctx context.Context, now time.Time) (Config, bool, error)
	Update(ctx context.Context, update Update, now time.Time) (UpdateResult, error)
	// CloseIfCapacityReached flips an open, capped config to closed when the team count has
	// reached the cap. The bool reports whether this call closed it.
	CloseIfCapacityReached(ctx context.Context, now time.Time) (Config, bool, error)
}
