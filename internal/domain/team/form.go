package team

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Form is the submitted team registration before it becomes a Registration.
type Form struct {
	TeamName           string `field:"teamName" validate:"min=2"`
	IGLName            string `field:"iglName" validate:"min=2"`
	Player1            string `field:"player1" validate:"min=2"`
	PlayerID1          string `field:"playerId1" validate:"digits=11"`
	Player2            string `field:"player2" validate:"min=2"`
	PlayerID2          string `field:"playerId2" validate:"digits=11"`
	Player3            string `field:"player3"`
	PlayerID3          string `field:"playerId3" validate:"omitempty,digits=11"`
	Player4            string `field:"player4"`
	PlayerID4          string `field:"playerId4" validate:"omitempty,digits=11"`
	IGLMail            string `field:"iglMail" validate:"required,email"`
	IGLAlternateMail   string `field:"iglAlternateMail" validate:"omitempty,email"`
	IGLNumber          string `field:"iglNumber" validate:"digits=10"`
	IGLAlternateNumber string `field:"iglAlternateNumber" validate:"omitempty,digits=10"`
}

var fieldMessages = map[string]string{
	"teamName":           "Team name must be at least 2 characters",
	"iglName":            "IGL name must be at least 2 characters",
	"player1":            "Player 1 name is required",
	"playerId1":          "Player 1 ID must be exactly 11 digits",
	"player2":            "Player 2 name is required",
	"playerId2":          "Player 2 ID must be exactly 11 digits",
	"playerId3":          "Player 3 ID must be exactly 11 digits",
	"playerId4":          "Player 4 ID must be exactly 11 digits",
	"iglMail":            "Please enter a valid email address",
	"iglAlternateMail":   "Please enter a valid alternate email address",
	"iglNumber":          "Phone number must be exactly 10 digits",
	"iglAlternateNumber": "Alternate phone number must be exactly 10 digits",
}

var (
	formValidatorOnce sync.Once
	formValidator     *validator.Validate
)

func getValidator() *validator.Validate {
	formValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("field"); name != "" {
				return name
			}
			return fld.Name
		})
		// digits=N: exactly N ASCII digits.
		_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
			want, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			value := fl.Field().String()
			if len(value) != want {
				return false
			}
			for i := 0; i < len(value); i++ {
				if value[i] < '0' || value[i] > '9' {
					return false
				}
			}
			return true
		})
		formValidator = v
	})
	return formValidator
}

// FieldMessage is the user-facing error for a bad form field.
func FieldMessage(name string) string {
	if msg, ok := fieldMessages[name]; ok {
		return msg
	}
	return name + " is invalid"
}

// Normalize trims every field.
func (f Form) Normalize() Form {
	fields := []*string{
		&f.TeamName, &f.IGLName,
		&f.Player1, &f.PlayerID1, &f.Player2, &f.PlayerID2,
		&f.Player3, &f.PlayerID3, &f.Player4, &f.PlayerID4,
		&f.IGLMail, &f.IGLAlternateMail, &f.IGLNumber, &f.IGLAlternateNumber,
	}
	for _, field := range fields {
		*field = strings.TrimSpace(*field)
	}
	return f
}

// Validate checks the form as given and returns a *ValidationError naming every bad field.
func (f Form) Validate() error {
	err := getValidator().Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		name := fe.Field()
		out.Fields = append(out.Fields, FieldError{Field: name, Message: FieldMessage(name)})
	}
	return out
}

// FormFromRegistration is the inverse of NewRegistration, used to re-validate admin edits.
func FormFromRegistration(reg Registration) Form {
	return Form{
		TeamName:           reg.TeamName,
		IGLName:            reg.IGLName,
		Player1:            reg.Players[0].Name,
		PlayerID1:          reg.Players[0].PlayerID,
		Player2:            reg.Players[1].Name,
		PlayerID2:          reg.Players[1].PlayerID,
		Player3:            reg.Players[2].Name,
		PlayerID3:          reg.Players[2].PlayerID,
		Player4:            reg.Players[3].Name,
		PlayerID4:          reg.Players[3].PlayerID,
		IGLMail:            reg.IGLMail,
		IGLAlternateMail:   reg.IGLAlternateMail,
		IGLNumber:          reg.IGLNumber,
		IGLAlternateNumber: reg.IGLAlternateNumber,
	}
}

// NewRegistration builds a record from a normalized, valid form.
func NewRegistration(id string, form Form, sub Submitter, now time.Time) Registration {
	sub = sub.Normalized()
	reg := Registration{
		ID:          id,
		UserID:      sub.UserID,
		GuestUserID: sub.GuestUserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return form.ApplyTo(reg)
}

// ApplyTo copies the form fields onto reg, keeping identity and timestamps.
func (f Form) ApplyTo(reg Registration) Registration {
	reg.TeamName = f.TeamName
	reg.IGLName = f.IGLName
	reg.Players = [PlayerSlots]Player{
		{Name: f.Player1, PlayerID: f.PlayerID1},
		{Name: f.Player2, PlayerID: f.PlayerID2},
		{Name: f.Player3, PlayerID: f.PlayerID3},
		{Name: f.Player4, PlayerID: f.PlayerID4},
	}
	reg.IGLMail = f.IGLMail
	reg.IGLAlternateMail = f.IGLAlternateMail
	reg.IGLNumber = f.IGLNumber
	reg.IGLAlternateNumber = f.IGLAlternateNumber
	return reg
}
