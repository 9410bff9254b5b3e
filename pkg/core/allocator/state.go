package allocator

import (
	"fmt"

	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// NewState rebuilds a working state from persisted records so the
// constraint model can validate moves against a run that already exists.
// Active allocations are replayed as commitments; removed ones are not.
func NewState(players []model.Player, sessions []model.MonthlySession, availability []model.Availability, allocations []model.Allocation) (*State, error) {
	playersByID := make(map[string]model.Player, len(players))
	for _, p := range players {
		playersByID[p.ID] = p
	}

	sessionStates := make([]*SessionState, 0, len(sessions))
	sessionsByID := make(map[string]*SessionState, len(sessions))
	for _, s := range sessions {
		state := &SessionState{Session: s, Assigned: []string{}}
		sessionStates = append(sessionStates, state)
		sessionsByID[s.ID] = state
	}

	availByPlayer := make(map[string]map[string]model.Availability)
	for _, a := range availability {
		if !a.Available {
			continue
		}
		if availByPlayer[a.PlayerID] == nil {
			availByPlayer[a.PlayerID] = make(map[string]model.Availability)
		}
		availByPlayer[a.PlayerID][a.SessionID] = a
	}

	state := &State{
		Players:      players,
		Sessions:     sessionStates,
		playersByID:  playersByID,
		sessionsByID: sessionsByID,
		availability: availByPlayer,
		committed:    make(map[string][]*SessionState),
	}

	for _, alloc := range allocations {
		if !alloc.Active() {
			continue
		}
		session, ok := sessionsByID[alloc.SessionID]
		if !ok {
			return nil, fmt.Errorf("%w: allocation %q references unknown session %q", model.ErrValidation, alloc.ID, alloc.SessionID)
		}
		if _, ok := playersByID[alloc.PlayerID]; !ok {
			return nil, fmt.Errorf("%w: allocation %q references unknown player %q", model.ErrValidation, alloc.ID, alloc.PlayerID)
		}
		state.commit(alloc.PlayerID, session)
	}

	return state, nil
}
