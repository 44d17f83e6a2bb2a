package formconfig

import (
	"context"
	"time"
)

// Repository persists the singleton field list. Save creates the row on first use.
type Repository interface {
	Find(ctx context.Context) (Config, bool, error)
	Save(ctx context.Context, fields []Field, now time.Time) (Config, error)
}
