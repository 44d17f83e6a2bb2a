package contact

import "context"

// Repository stores contact submissions. List returns newest first.
type Repository interface {
	List(ctx context.Context) ([]Submission, error)
	Create(ctx context.Context, s Submission) error
	Delete(ctx context.Context, id string) (bool, error)
}
