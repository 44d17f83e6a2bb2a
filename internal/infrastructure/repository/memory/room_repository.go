package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/tournament-registration/internal/domain/room"
)

type RoomRepository struct {
	store *Store
}

func NewRoomRepository(store *Store) *RoomRepository {
	return &RoomRepository{store: store}
}

func (r *RoomRepository) List(_ context.Context) ([]room.Room, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]room.Room, 0, len(r.store.rooms))
	for _, item := range r.store.rooms {
		out = append(out, cloneRoom(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchNumber < out[j].MatchNumber })
	return out, nil
}

func (r *RoomRepository) GetByID(_ context.Context, id string) (room.Room, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, item := range r.store.rooms {
		if item.ID == id {
			return cloneRoom(item), true, nil
		}
	}
	return room.Room{}, false, nil
}

func (r *RoomRepository) GetByMatchNumber(_ context.Context, matchNumber int) (room.Room, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, item := range r.store.rooms {
		if item.MatchNumber == matchNumber {
			return cloneRoom(item), true, nil
		}
	}
	return room.Room{}, false, nil
}

func (r *RoomRepository) Create(_ context.Context, item room.Room) (room.Room, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	maxMatch := 0
	for _, existing := range r.store.rooms {
		if existing.RoomID == item.RoomID {
			return room.Room{}, room.ErrDuplicateRoomID
		}
		if existing.MatchNumber > maxMatch {
			maxMatch = existing.MatchNumber
		}
	}
	item.MatchNumber = maxMatch + 1
	r.store.rooms = append(r.store.rooms, cloneRoom(item))
	return cloneRoom(item), nil
}

func (r *RoomRepository) Update(_ context.Context, item room.Room) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.rooms {
		if r.store.rooms[i].ID == item.ID {
			r.store.rooms[i] = cloneRoom(item)
			return true, nil
		}
	}
	return false, nil
}

func cloneRoom(r room.Room) room.Room {
	r.PasswordShareTime = clonePtr(r.PasswordShareTime)
	return r
}
