package formconfig

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
)

// MaxEncodedLength bounds the stored JSON field list.
const MaxEncodedLength = 2000

const EmptyFields = "[]"

const (
	TypeText     = "text"
	TypeEmail    = "email"
	TypeTel      = "tel"
	TypeNumber   = "number"
	TypeTextarea = "textarea"
	TypeSelect   = "select"
)

var (
	ErrInvalidField = errors.New("invalid form field")
	ErrTooLarge     = errors.New("form field config too large")
)

var (
	fieldNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	fieldTypes       = []string{TypeText, TypeEmail, TypeTel, TypeNumber, TypeTextarea, TypeSelect}

	// Extra fields may not shadow the fixed registration form.
	reservedNames = []string{
		"teamName", "iglName", "iglMail", "iglAlternateMail", "iglNumber", "iglAlternateNumber",
		"player1", "playerId1", "player2", "playerId2", "player3", "playerId3", "player4", "playerId4",
		"guestUserId",
	}
)

// Field is one extra input the registration form renders.
type Field struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Type     string   `json:"type,omitempty"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

// Config is the singleton list of extra form fields.
type Config struct {
	ID        string
	Fields    []Field
	UpdatedAt time.Time
}

func (c Config) Clone() Config {
	out := c
	out.Fields = make([]Field, len(c.Fields))
	for i, f := range c.Fields {
		f.Options = slices.Clone(f.Options)
		out.Fields[i] = f
	}
	return out
}

// Normalize trims every field and defaults an empty type to text.
func Normalize(fields []Field) []Field {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		f.Name = strings.TrimSpace(f.Name)
		f.Label = strings.TrimSpace(f.Label)
		f.Type = strings.ToLower(strings.TrimSpace(f.Type))
		if f.Type == "" {
			f.Type = TypeText
		}
		options := make([]string, 0, len(f.Options))
		for _, opt := range f.Options {
			if opt = strings.TrimSpace(opt); opt != "" {
				options = append(options, opt)
			}
		}
		if len(options) == 0 {
			options = nil
		}
		f.Options = options
		out = append(out, f)
	}
	return out
}

// Validate checks normalized fields and returns the first problem found.
func Validate(fields []Field) error {
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		switch {
		case !fieldNamePattern.MatchString(f.Name):
			return fmt.Errorf("%w: field %d name %q must start with a letter and use letters, digits or underscores", ErrInvalidField, i, f.Name)
		case slices.Contains(reservedNames, f.Name):
			return fmt.Errorf("%w: field name %q is already used by the registration form", ErrInvalidField, f.Name)
		case f.Label == "":
			return fmt.Errorf("%w: field %q needs a label", ErrInvalidField, f.Name)
		case !slices.Contains(fieldTypes, f.Type):
			return fmt.Errorf("%w: field %q has unknown type %q", ErrInvalidField, f.Name, f.Type)
		case f.Type == TypeSelect && len(f.Options) == 0:
			return fmt.Errorf("%w: select field %q needs options", ErrInvalidField, f.Name)
		}
		if _, ok := seen[f.Name]; ok {
			return fmt.Errorf("%w: duplicate field name %q", ErrInvalidField, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// Encode renders fields as the stored JSON array, enforcing MaxEncodedLength.
func Encode(fields []Field) (string, error) {
	if len(fields) == 0 {
		return EmptyFields, nil
	}
	raw, err := sonic.MarshalString(fields)
	if err != nil {
		return "", fmt.Errorf("encode form fields: %w", err)
	}
	if len(raw) > MaxEncodedLength {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(raw), MaxEncodedLength)
	}
	return raw, nil
}

func Decode(raw string) ([]Field, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var fields []Field
	if err := sonic.UnmarshalString(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode form fields: %w", err)
	}
	return fields, nil
}
