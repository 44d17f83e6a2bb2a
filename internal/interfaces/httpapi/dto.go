package httpapi

import (
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/contact"
	"github.com/riskibarqy/tournament-registration/internal/domain/formconfig"
	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
	"github.com/riskibarqy/tournament-registration/internal/domain/room"
	"github.com/riskibarqy/tournament-registration/internal/domain/schedule"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/usecase"
)

type registrationConfigDTO struct {
	ID                 string     `json:"id"`
	RegistrationStopAt *time.Time `json:"registrationStopAt"`
	IsRegistrationOpen bool       `json:"isRegistrationOpen"`
	MaxTeams           *int       `json:"maxTeams"`
	CurrentTeams       int        `json:"currentTeams"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type registrationStatusDTO struct {
	IsOpen           bool   `json:"isOpen"`
	Message          string `json:"message"`
	CurrentTeams     int    `json:"currentTeams"`
	MaxTeams         *int   `json:"maxTeams"`
	IsMaxReached     bool   `json:"isMaxReached"`
	IsDeadlinePassed bool   `json:"isDeadlinePassed"`
	IsManualClosed   bool   `json:"isManualClosed"`
}

type teamRegistrationDTO struct {
	ID                 string    `json:"id"`
	UserID             *string   `json:"userId"`
	GuestUserID        *string   `json:"guestUserId"`
	TeamName           string    `json:"teamName"`
	IGLName            string    `json:"iglName"`
	Player1            string    `json:"player1"`
	PlayerID1          string    `json:"playerId1"`
	Player2            string    `json:"player2"`
	PlayerID2          string    `json:"playerId2"`
	Player3            *string   `json:"player3"`
	PlayerID3          *string   `json:"playerId3"`
	Player4            *string   `json:"player4"`
	PlayerID4          *string   `json:"playerId4"`
	IGLMail            string    `json:"iglMail"`
	IGLAlternateMail   *string   `json:"iglAlternateMail"`
	IGLNumber          string    `json:"iglNumber"`
	IGLAlternateNumber *string   `json:"iglAlternateNumber"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type slotViewDTO struct {
	teamRegistrationDTO
	MatchNumber     int `json:"matchNumber"`
	PositionInMatch int `json:"positionInMatch"`
	Slot            int `json:"slot"`
}

type adminTeamDTO struct {
	slotViewDTO
	IsEnabled bool `json:"isEnabled"`
}

type teamListingDTO struct {
	Teams        []slotViewDTO `json:"teams"`
	TotalTeams   int           `json:"totalTeams"`
	TotalMatches int           `json:"totalMatches"`
}

type ownFormDTO struct {
	FormData *teamRegistrationDTO `json:"formData"`
}

type teamStatusDTO struct {
	ID        string    `json:"id"`
	IsEnabled bool      `json:"isEnabled"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type dailyCountDTO struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type recentRegistrationDTO struct {
	ID        string    `json:"id"`
	TeamName  string    `json:"teamName"`
	IGLName   string    `json:"iglName"`
	CreatedAt time.Time `json:"createdAt"`
}

type registrationDashboardDTO struct {
	TotalRegistrations   int                     `json:"totalRegistrations"`
	IsRegistrationOpen   bool                    `json:"isRegistrationOpen"`
	RegistrationDeadline *time.Time              `json:"registrationDeadline"`
	MaxTeams             *int                    `json:"maxTeams"`
	RegistrationsByDate  []dailyCountDTO         `json:"registrationsByDate"`
	RecentRegistrations  []recentRegistrationDTO `json:"recentRegistrations"`
}

type scheduleDTO struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Maps      string    `json:"maps"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type roomDTO struct {
	ID                string     `json:"id"`
	MatchNumber       int        `json:"matchNumber"`
	RoomID            string     `json:"roomId"`
	RoomPassword      string     `json:"roomPassword"`
	MaxTeams          int        `json:"maxTeams"`
	IsLocked          bool       `json:"isLocked"`
	VisibleToAll      bool       `json:"visibleToAll"`
	PasswordShareTime *time.Time `json:"passwordShareTime"`
	RegisteredTeams   int        `json:"registeredTeams"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type contactFormDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// formConfigDTO carries fields as an encoded JSON string, matching what the form page parses.
type formConfigDTO struct {
	ID        *string    `json:"id"`
	Fields    string     `json:"fields"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

type roomCredentialsDTO struct {
	MatchNumber       *int       `json:"matchNumber"`
	RoomID            *string    `json:"roomId"`
	RoomPassword      *string    `json:"roomPassword"`
	PasswordShareTime *time.Time `json:"passwordShareTime"`
	VisibleToAll      bool       `json:"visibleToAll"`
}

func configToDTO(view usecase.ConfigView) registrationConfigDTO {
	return registrationConfigDTO{
		ID:                 view.Config.ID,
		RegistrationStopAt: view.Config.RegistrationStopAt,
		IsRegistrationOpen: view.Config.IsRegistrationOpen,
		MaxTeams:           view.Config.MaxTeams,
		CurrentTeams:       view.CurrentTeams,
		UpdatedAt:          view.Config.UpdatedAt,
	}
}

func statusToDTO(s registration.Status) registrationStatusDTO {
	return registrationStatusDTO{
		IsOpen:           s.IsOpen,
		Message:          s.Message,
		CurrentTeams:     s.CurrentTeams,
		MaxTeams:         s.MaxTeams,
		IsMaxReached:     s.IsMaxReached,
		IsDeadlinePassed: s.IsDeadlinePassed,
		IsManualClosed:   s.IsManualClosed,
	}
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func registrationToDTO(reg team.Registration) teamRegistrationDTO {
	return teamRegistrationDTO{
		ID:                 reg.ID,
		UserID:             optional(reg.UserID),
		GuestUserID:        optional(reg.GuestUserID),
		TeamName:           reg.TeamName,
		IGLName:            reg.IGLName,
		Player1:            reg.Players[0].Name,
		PlayerID1:          reg.Players[0].PlayerID,
		Player2:            reg.Players[1].Name,
		PlayerID2:          reg.Players[1].PlayerID,
		Player3:            optional(reg.Players[2].Name),
		PlayerID3:          optional(reg.Players[2].PlayerID),
		Player4:            optional(reg.Players[3].Name),
		PlayerID4:          optional(reg.Players[3].PlayerID),
		IGLMail:            reg.IGLMail,
		IGLAlternateMail:   optional(reg.IGLAlternateMail),
		IGLNumber:          reg.IGLNumber,
		IGLAlternateNumber: optional(reg.IGLAlternateNumber),
		CreatedAt:          reg.CreatedAt,
		UpdatedAt:          reg.UpdatedAt,
	}
}

func slotViewToDTO(v team.SlotView) slotViewDTO {
	return slotViewDTO{
		teamRegistrationDTO: registrationToDTO(v.Registration),
		MatchNumber:         v.MatchNumber,
		PositionInMatch:     v.PositionInMatch,
		Slot:                v.Slot,
	}
}

func listingToDTO(listing usecase.TeamListing) teamListingDTO {
	teams := make([]slotViewDTO, 0, len(listing.Teams))
	for _, v := range listing.Teams {
		teams = append(teams, slotViewToDTO(v))
	}
	return teamListingDTO{Teams: teams, TotalTeams: listing.TotalTeams, TotalMatches: listing.TotalMatches}
}

func adminTeamsToDTO(items []usecase.AdminTeam) []adminTeamDTO {
	out := make([]adminTeamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, adminTeamDTO{slotViewDTO: slotViewToDTO(item.SlotView), IsEnabled: item.IsEnabled})
	}
	return out
}

func dashboardToDTO(d usecase.RegistrationDashboard) registrationDashboardDTO {
	byDate := make([]dailyCountDTO, 0, len(d.RegistrationsByDate))
	for _, c := range d.RegistrationsByDate {
		byDate = append(byDate, dailyCountDTO{Date: c.Date.Format(time.DateOnly), Count: c.Count})
	}
	recent := make([]recentRegistrationDTO, 0, len(d.RecentRegistrations))
	for _, reg := range d.RecentRegistrations {
		recent = append(recent, recentRegistrationDTO{
			ID:        reg.ID,
			TeamName:  reg.TeamName,
			IGLName:   reg.IGLName,
			CreatedAt: reg.CreatedAt,
		})
	}
	return registrationDashboardDTO{
		TotalRegistrations:   d.TotalRegistrations,
		IsRegistrationOpen:   d.IsRegistrationOpen,
		RegistrationDeadline: d.RegistrationDeadline,
		MaxTeams:             d.MaxTeams,
		RegistrationsByDate:  byDate,
		RecentRegistrations:  recent,
	}
}

func scheduleToDTO(s schedule.Schedule) scheduleDTO {
	return scheduleDTO{
		ID:        s.ID,
		Date:      s.Date,
		Time:      s.Time,
		Maps:      s.Maps,
		Type:      s.Type,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func roomToDTO(r room.Room, registeredTeams int) roomDTO {
	return roomDTO{
		ID:                r.ID,
		MatchNumber:       r.MatchNumber,
		RoomID:            r.RoomID,
		RoomPassword:      r.RoomPassword,
		MaxTeams:          r.MaxTeams,
		IsLocked:          r.IsLocked,
		VisibleToAll:      r.VisibleToAll,
		PasswordShareTime: r.PasswordShareTime,
		RegisteredTeams:   registeredTeams,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func credentialsToDTO(c room.Credentials) roomCredentialsDTO {
	out := roomCredentialsDTO{
		RoomID:            c.RoomID,
		RoomPassword:      c.RoomPassword,
		PasswordShareTime: c.PasswordShareTime,
		VisibleToAll:      c.VisibleToAll,
	}
	if c.MatchNumber > 0 {
		n := c.MatchNumber
		out.MatchNumber = &n
	}
	return out
}

func contactToDTO(s contact.Submission) contactFormDTO {
	return contactFormDTO{
		ID:        s.ID,
		UserID:    s.UserID,
		Name:      s.Name,
		Email:     s.Email,
		Subject:   s.Subject,
		Message:   s.Message,
		CreatedAt: s.CreatedAt,
	}
}

func formConfigToDTO(cfg formconfig.Config, found bool) (formConfigDTO, error) {
	if !found {
		return formConfigDTO{Fields: formconfig.EmptyFields}, nil
	}
	raw, err := formconfig.Encode(cfg.Fields)
	if err != nil {
		return formConfigDTO{}, err
	}
	updatedAt := cfg.UpdatedAt
	return formConfigDTO{ID: optional(cfg.ID), Fields: raw, UpdatedAt: &updatedAt}, nil
}
