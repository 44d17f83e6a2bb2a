package room

import (
	"errors"
	"time"
)

var ErrDuplicateRoomID = errors.New("room id already exists")

// Room holds the lobby credentials for one match.
type Room struct {
	ID                string
	MatchNumber       int
	RoomID            string
	RoomPassword      string
	MaxTeams          int
	IsLocked          bool
	VisibleToAll      bool
	PasswordShareTime *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Patch is a partial admin change. SetShareTime with a nil PasswordShareTime clears it.
type Patch struct {
	VisibleToAll *bool
	IsLocked     *bool

	SetShareTime      bool
	PasswordShareTime *time.Time
}

func (p Patch) Apply(r Room) Room {
	if p.VisibleToAll != nil {
		r.VisibleToAll = *p.VisibleToAll
	}
	if p.IsLocked != nil {
		r.IsLocked = *p.IsLocked
	}
	if p.SetShareTime {
		r.PasswordShareTime = p.PasswordShareTime
	}
	return r
}

// Credentials is what a registered team may see. Nil fields are withheld.
type Credentials struct {
	MatchNumber       int
	RoomID            *string
	RoomPassword      *string
	PasswordShareTime *time.Time
	VisibleToAll      bool
}

// Disclose reveals the credentials when the room is public, or when the caller holds a slot in
// the room's match and the share time is unset or has arrived.
func Disclose(r Room, registered bool, now time.Time) Credentials {
	out := Credentials{
		MatchNumber:       r.MatchNumber,
		PasswordShareTime: r.PasswordShareTime,
		VisibleToAll:      r.VisibleToAll,
	}
	shareOpen := r.PasswordShareTime == nil || !now.Before(*r.PasswordShareTime)
	if r.VisibleToAll || (registered && shareOpen) {
		id, password := r.RoomID, r.RoomPassword
		out.RoomID = &id
		out.RoomPassword = &password
	}
	return out
}
