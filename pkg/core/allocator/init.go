package allocator

import (
	"fmt"
	"time"

	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// Config contains everything one engine run needs. The engine reads
// external data through this snapshot only; it never touches storage.
type Config struct {
	// Month being allocated, "2006-01"
	Month string

	// Players is the full club roster for the month
	Players []model.Player

	// Sessions are the materialised monthly sessions to fill
	Sessions []model.MonthlySession

	// Availability responses for the month. Records with Available=false
	// are accepted as input but never become candidate pairings.
	Availability []model.Availability

	// Parameters is the tunable weight bundle for this run
	Parameters model.Parameters

	// Rules is the constraint set, already weighted from Parameters
	Rules Rules

	// CleanMatchThreshold is the confidence below which deviation reasons
	// are produced. Zero means DefaultCleanMatchThreshold.
	CleanMatchThreshold float64

	// MinViableFill is the minimum assignment count below which a session
	// is reported as infeasible. Zero disables the check.
	MinViableFill int
}

// initState validates the run inputs and builds the engine working state.
// All validation failures wrap model.ErrValidation and happen before any
// allocation work.
func initState(cfg Config) (*State, error) {
	if _, err := time.Parse("2006-01", cfg.Month); err != nil {
		return nil, fmt.Errorf("%w: month %q is not in 2006-01 format", model.ErrValidation, cfg.Month)
	}

	playersByID := make(map[string]model.Player, len(cfg.Players))
	for _, p := range cfg.Players {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: player with empty id", model.ErrValidation)
		}
		if _, exists := playersByID[p.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate player id %q", model.ErrValidation, p.ID)
		}
		if !p.Grade.IsValid() {
			return nil, fmt.Errorf("%w: player %q has unknown grade %q", model.ErrValidation, p.ID, p.Grade)
		}
		playersByID[p.ID] = p
	}

	sessions := make([]*SessionState, 0, len(cfg.Sessions))
	sessionsByID := make(map[string]*SessionState, len(cfg.Sessions))
	for _, s := range cfg.Sessions {
		if s.ID == "" {
			return nil, fmt.Errorf("%w: session with empty id", model.ErrValidation)
		}
		if _, exists := sessionsByID[s.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate session id %q", model.ErrValidation, s.ID)
		}
		if !s.Grade.IsValid() {
			return nil, fmt.Errorf("%w: session %q has unknown grade %q", model.ErrValidation, s.ID, s.Grade)
		}
		if s.Capacity < 1 {
			return nil, fmt.Errorf("%w: session %q has capacity %d", model.ErrValidation, s.ID, s.Capacity)
		}
		date, err := time.Parse("2006-01-02", s.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: session %q has unparseable date %q", model.ErrValidation, s.ID, s.Date)
		}
		if date.Format("2006-01") != cfg.Month {
			return nil, fmt.Errorf("%w: session %q date %s is outside month %s", model.ErrValidation, s.ID, s.Date, cfg.Month)
		}
		if s.EndMinute <= s.StartMinute {
			return nil, fmt.Errorf("%w: session %q ends before it starts", model.ErrValidation, s.ID)
		}
		state := &SessionState{Session: s, Assigned: []string{}}
		sessions = append(sessions, state)
		sessionsByID[s.ID] = state
	}

	availability := make(map[string]map[string]model.Availability)
	seen := make(map[string]bool)
	for _, a := range cfg.Availability {
		if _, ok := playersByID[a.PlayerID]; !ok {
			return nil, fmt.Errorf("%w: availability references unknown player %q", model.ErrValidation, a.PlayerID)
		}
		if _, ok := sessionsByID[a.SessionID]; !ok {
			return nil, fmt.Errorf("%w: availability references unknown session %q", model.ErrValidation, a.SessionID)
		}
		key := a.PlayerID + "/" + a.SessionID
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate availability for player %q session %q", model.ErrValidation, a.PlayerID, a.SessionID)
		}
		seen[key] = true

		if !a.Available {
			continue
		}
		if availability[a.PlayerID] == nil {
			availability[a.PlayerID] = make(map[string]model.Availability)
		}
		availability[a.PlayerID][a.SessionID] = a
	}

	return &State{
		Players:      cfg.Players,
		Sessions:     sessions,
		playersByID:  playersByID,
		sessionsByID: sessionsByID,
		availability: availability,
		committed:    make(map[string][]*SessionState),
	}, nil
}
