package team

import "sort"

const DefaultMatchSize = 25

// SlotView is a registration with its order-derived numbering. Nothing here is persisted.
//
// MatchNumber and PositionInMatch count up from the earliest registration. Slot counts down
// from the match size within each batch when the list is read newest-first. The two schemes
// are independent and both exposed.
type SlotView struct {
	Registration
	MatchNumber     int
	PositionInMatch int
	Slot            int
}

// AssignSlots returns the teams in ascending creation order with numbering attached.
// Equal CreatedAt values keep their input order. Deleting an earlier team shifts every later one.
func AssignSlots(teams []Registration, matchSize int) []SlotView {
	if matchSize < 1 {
		matchSize = DefaultMatchSize
	}

	ordered := make([]Registration, len(teams))
	copy(ordered, teams)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	n := len(ordered)
	out := make([]SlotView, n)
	for i, reg := range ordered {
		desc := n - 1 - i
		out[i] = SlotView{
			Registration:    reg,
			MatchNumber:     i/matchSize + 1,
			PositionInMatch: i%matchSize + 1,
			Slot:            matchSize - desc%matchSize,
		}
	}
	return out
}

// NewestFirst reverses an AssignSlots result without renumbering.
func NewestFirst(views []SlotView) []SlotView {
	out := make([]SlotView, len(views))
	for i, v := range views {
		out[len(views)-1-i] = v
	}
	return out
}

// MatchCount is ceil(total/matchSize).
func MatchCount(total, matchSize int) int {
	if matchSize < 1 {
		matchSize = DefaultMatchSize
	}
	if total <= 0 {
		return 0
	}
	return (total + matchSize - 1) / matchSize
}

// MatchNumberOf returns the match number for the team with id, or 0 if absent.
func MatchNumberOf(views []SlotView, id string) int {
	for _, v := range views {
		if v.ID == id {
			return v.MatchNumber
		}
	}
	return 0
}
