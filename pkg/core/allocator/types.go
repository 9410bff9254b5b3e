package allocator

import (
	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// State is the engine's working view of one allocation run.
// It is exclusively owned by the run invocation; nothing outside the
// engine observes it until the run completes.
type State struct {
	// Players eligible for allocation this month
	Players []model.Player

	// Sessions being filled (includes both full and open sessions)
	Sessions []*SessionState

	playersByID  map[string]model.Player
	sessionsByID map[string]*SessionState

	// availability maps playerID -> sessionID -> record (available records only)
	availability map[string]map[string]model.Availability

	// committed maps playerID -> sessions the player has been assigned so far
	committed map[string][]*SessionState
}

// SessionState wraps a monthly session with its running assignment list
type SessionState struct {
	Session model.MonthlySession

	// Assigned player IDs in commit order
	Assigned []string
}

// IsFull returns true if the session has reached its capacity
func (s *SessionState) IsFull() bool {
	return len(s.Assigned) >= s.Session.Capacity
}

// Remaining returns how many open slots the session still has
func (s *SessionState) Remaining() int {
	remaining := s.Session.Capacity - len(s.Assigned)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Player looks up a player by ID
func (st *State) Player(id string) (model.Player, bool) {
	p, ok := st.playersByID[id]
	return p, ok
}

// SessionByID looks up a session state by session ID
func (st *State) SessionByID(id string) (*SessionState, bool) {
	s, ok := st.sessionsByID[id]
	return s, ok
}

// AvailabilityFor returns the available record for a (player, session) pair, if any
func (st *State) AvailabilityFor(playerID, sessionID string) (model.Availability, bool) {
	bySession, ok := st.availability[playerID]
	if !ok {
		return model.Availability{}, false
	}
	avail, ok := bySession[sessionID]
	return avail, ok
}

// CommittedSessions returns the sessions a player has been assigned so far this run
func (st *State) CommittedSessions(playerID string) []*SessionState {
	return st.committed[playerID]
}

// AllocationCount returns a player's running total of assignments this run
func (st *State) AllocationCount(playerID string) int {
	return len(st.committed[playerID])
}

// AllocationCounts returns the running totals for every eligible player.
// Players with no available record are not eligible and are excluded, so
// they do not drag the mean down.
func (st *State) AllocationCounts() []float64 {
	counts := make([]float64, 0, len(st.Players))
	for _, p := range st.Players {
		if len(st.availability[p.ID]) == 0 {
			continue
		}
		counts = append(counts, float64(len(st.committed[p.ID])))
	}
	return counts
}

// commit records an assignment in the working state
func (st *State) commit(playerID string, session *SessionState) {
	session.Assigned = append(session.Assigned, playerID)
	st.committed[playerID] = append(st.committed[playerID], session)
}
