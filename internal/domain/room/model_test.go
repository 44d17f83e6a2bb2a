package room

import (
	"testing"
	"time"
)

func TestDisclose(t *testing.T) {
	now := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)
	earlier := now.Add(-time.Hour)
	base := Room{MatchNumber: 2, RoomID: "R-200", RoomPassword: "secret"}

	tests := []struct {
		name       string
		room       Room
		registered bool
		disclosed  bool
	}{
		{name: "registered without share time", room: base, registered: true, disclosed: true},
		{name: "registered before share time", room: withShare(base, &later), registered: true},
		{name: "registered after share time", room: withShare(base, &earlier), registered: true, disclosed: true},
		{name: "unregistered private room", room: base},
		{name: "visible to all ignores registration", room: withVisible(withShare(base, &later)), disclosed: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Disclose(tc.room, tc.registered, now)
			if got.MatchNumber != 2 {
				t.Fatalf("unexpected match number: %d", got.MatchNumber)
			}
			if tc.disclosed {
				if got.RoomID == nil || *got.RoomID != "R-200" || got.RoomPassword == nil || *got.RoomPassword != "secret" {
					t.Fatalf("expected credentials, got %+v", got)
				}
				return
			}
			if got.RoomID != nil || got.RoomPassword != nil {
				t.Fatalf("credentials should be withheld, got %+v", got)
			}
		})
	}
}

func TestPatchApply(t *testing.T) {
	share := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	r := Room{IsLocked: true, PasswordShareTime: &share}
	visible := true

	got := Patch{VisibleToAll: &visible}.Apply(r)
	if !got.VisibleToAll || !got.IsLocked || got.PasswordShareTime == nil {
		t.Fatalf("unexpected patch result: %+v", got)
	}

	got = Patch{SetShareTime: true}.Apply(r)
	if got.PasswordShareTime != nil {
		t.Fatalf("share time should be cleared: %+v", got)
	}
}

func withShare(r Room, at *time.Time) Room {
	r.PasswordShareTime = at
	return r
}

func withVisible(r Room) Room {
	r.VisibleToAll = true
	return r
}
