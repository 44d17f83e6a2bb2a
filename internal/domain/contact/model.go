package contact

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxNameLength    = 255
	MaxEmailLength   = 255
	MaxSubjectLength = 500
	MaxMessageLength = 5000
)

// Submission is a message a signed-in user left for the organisers.
type Submission struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

func (s Submission) Normalize() Submission {
	s.UserID = strings.TrimSpace(s.UserID)
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Subject = strings.TrimSpace(s.Subject)
	s.Message = strings.TrimSpace(s.Message)
	return s
}

// Complete reports whether every text field is set after trimming.
func (s Submission) Complete() bool {
	s = s.Normalize()
	return s.Name != "" && s.Email != "" && s.Subject != "" && s.Message != ""
}

// TooLong returns the first field over its limit, or "" when all fit.
func (s Submission) TooLong() string {
	switch {
	case utf8.RuneCountInString(s.Name) > MaxNameLength:
		return "name"
	case utf8.RuneCountInString(s.Email) > MaxEmailLength:
		return "email"
	case utf8.RuneCountInString(s.Subject) > MaxSubjectLength:
		return "subject"
	case utf8.RuneCountInString(s.Message) > MaxMessageLength:
		return "message"
	}
	return ""
}
