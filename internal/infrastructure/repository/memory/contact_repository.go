package memory

import (
	"context"
	"slices"

	"github.com/riskibarqy/tournament-registration/internal/domain/contact"
)

type ContactRepository struct {
	store *Store
}

func NewContactRepository(store *Store) *ContactRepository {
	return &ContactRepository{store: store}
}

func (r *ContactRepository) List(_ context.Context) ([]contact.Submission, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := slices.Clone(r.store.contacts)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b contact.Submission) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (r *ContactRepository) Create(_ context.Context, s contact.Submission) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.contacts = append(r.store.contacts, s)
	return nil
}

func (r *ContactRepository) Delete(_ context.Context, id string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.contacts {
		if r.store.contacts[i].ID == id {
			r.store.contacts = slices.Delete(r.store.contacts, i, i+1)
			return true, nil
		}
	}
	return false, nil
}
