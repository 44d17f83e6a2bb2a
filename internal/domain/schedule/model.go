package schedule

import (
	"strings"
	"time"
)

// Schedule is one published match day entry.
type Schedule struct {
	ID        string
	Date      string
	Time      string
	Maps      string
	Type      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Patch carries non-empty fields to overwrite.
type Patch struct {
	Date string
	Time string
	Maps string
	Type string
}

func (p Patch) Apply(s Schedule) Schedule {
	if v := strings.TrimSpace(p.Date); v != "" {
		s.Date = v
	}
	if v := strings.TrimSpace(p.Time); v != "" {
		s.Time = v
	}
	if v := strings.TrimSpace(p.Maps); v != "" {
		s.Maps = v
	}
	if v := strings.TrimSpace(p.Type); v != "" {
		s.Type = v
	}
	return s
}
