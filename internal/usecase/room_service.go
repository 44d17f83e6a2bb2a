package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/room"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	idgen "github.com/riskibarqy/tournament-registration/internal/platform/id"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

// RoomView is a room with the number of teams currently slotted into its match.
type RoomView struct {
	room.Room
	RegisteredTeams int
}

type CreateRoomInput struct {
	RoomID            string
	RoomPassword      string
	PasswordShareTime *time.Time
}

type RoomService struct {
	rooms  room.Repository
	teams  *TeamService
	idGen  idgen.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewRoomService(rooms room.Repository, teams *TeamService, idGen idgen.Generator, logger *logging.Logger) *RoomService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RoomService{
		rooms:  rooms,
		teams:  teams,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

func (s *RoomService) List(ctx context.Context) (out []RoomView, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoomService.List")
	defer finishSpan(span, &err)

	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	views, err := s.teams.slotViews(ctx)
	if err != nil {
		return nil, err
	}
	perMatch := make(map[int]int)
	for _, v := range views {
		perMatch[v.MatchNumber]++
	}

	out = make([]RoomView, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, RoomView{Room: r, RegisteredTeams: perMatch[r.MatchNumber]})
	}
	return out, nil
}

func (s *RoomService) Create(ctx context.Context, input CreateRoomInput) (out room.Room, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoomService.Create")
	defer finishSpan(span, &err)

	roomID := strings.TrimSpace(input.RoomID)
	password := strings.TrimSpace(input.RoomPassword)
	if roomID == "" || password == "" {
		return room.Room{}, fmt.Errorf("%w: roomId and roomPassword are required", ErrInvalidInput)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return room.Room{}, fmt.Errorf("generate room id: %w", err)
	}
	now := s.now().UTC()
	out, err = s.rooms.Create(ctx, room.Room{
		ID:                id,
		RoomID:            roomID,
		RoomPassword:      password,
		MaxTeams:          s.teams.MatchSize(),
		PasswordShareTime: input.PasswordShareTime,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		if errors.Is(err, room.ErrDuplicateRoomID) {
			return room.Room{}, fmt.Errorf("%w: room id %q already exists", ErrInvalidInput, roomID)
		}
		return room.Room{}, fmt.Errorf("create room: %w", err)
	}
	s.logger.InfoContext(ctx, "room created", "room", out.ID, "match_number", out.MatchNumber)
	return out, nil
}

func (s *RoomService) Update(ctx context.Context, id string, patch room.Patch) (out room.Room, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoomService.Update")
	defer finishSpan(span, &err)

	id = strings.TrimSpace(id)
	current, found, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return room.Room{}, fmt.Errorf("get room: %w", err)
	}
	if !found {
		return room.Room{}, fmt.Errorf("%w: room=%s", ErrNotFound, id)
	}

	out = patch.Apply(current)
	out.UpdatedAt = s.now().UTC()
	ok, err := s.rooms.Update(ctx, out)
	if err != nil {
		return room.Room{}, fmt.Errorf("update room: %w", err)
	}
	if !ok {
		return room.Room{}, fmt.Errorf("%w: room=%s", ErrNotFound, id)
	}
	return out, nil
}

// Credentials returns what the caller may see of their match's room. A caller without a
// registration, or whose match has no room yet, gets the zero value and found=false.
func (s *RoomService) Credentials(ctx context.Context, userID string) (out room.Credentials, found bool, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoomService.Credentials")
	defer finishSpan(span, &err)

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return room.Credentials{}, false, fmt.Errorf("%w: session is required", ErrUnauthorized)
	}
	reg, registered, err := s.teams.teams.GetByUserID(ctx, userID)
	if err != nil {
		return room.Credentials{}, false, fmt.Errorf("get registration by user: %w", err)
	}
	if !registered {
		return room.Credentials{}, false, nil
	}

	views, err := s.teams.slotViews(ctx)
	if err != nil {
		return room.Credentials{}, false, err
	}
	matchNumber := team.MatchNumberOf(views, reg.ID)
	if matchNumber == 0 {
		return room.Credentials{}, false, nil
	}

	r, ok, err := s.rooms.GetByMatchNumber(ctx, matchNumber)
	if err != nil {
		return room.Credentials{}, false, fmt.Errorf("get room by match: %w", err)
	}
	if !ok {
		return room.Credentials{MatchNumber: matchNumber}, false, nil
	}
	return room.Disclose(r, true, s.now().UTC()), true, nil
}
