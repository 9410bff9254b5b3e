package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/baddersbot/pkg/core/allocator"
	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// makeState rebuilds a working state from literal fixtures
func makeState(t *testing.T, players []model.Player, sessions []model.MonthlySession, availability []model.Availability, allocations []model.Allocation) *allocator.State {
	t.Helper()
	state, err := allocator.NewState(players, sessions, availability, allocations)
	require.NoError(t, err)
	return state
}

func mustSession(t *testing.T, state *allocator.State, id string) *allocator.SessionState {
	t.Helper()
	session, ok := state.SessionByID(id)
	require.True(t, ok, "session %s not in state", id)
	return session
}
