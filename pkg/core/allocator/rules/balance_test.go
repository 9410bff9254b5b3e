package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/baddersbot/pkg/core/model"
)

func TestBalance_PlayerAboveMeanIsPenalised(t *testing.T) {
	players := []model.Player{
		{ID: "p1", Grade: model.GradeA},
		{ID: "p2", Grade: model.GradeA},
	}
	sessions := []model.MonthlySession{
		{ID: "s1", Date: "2025-03-03", StartMinute: 18 * 60, EndMinute: 20 * 60, Grade: model.GradeA, Capacity: 4},
		{ID: "s2", Date: "2025-03-10", StartMinute: 18 * 60, EndMinute: 20 * 60, Grade: model.GradeA, Capacity: 4},
	}
	availability := []model.Availability{
		{PlayerID: "p1", SessionID: "s1", Available: true},
		{PlayerID: "p1", SessionID: "s2", Available: true},
		{PlayerID: "p2", SessionID: "s2", Available: true},
	}
	// p1 already holds one session, p2 none: mean is 0.5
	allocations := []model.Allocation{
		{ID: "a1", RunID: "r1", SessionID: "s1", PlayerID: "p1", Status: model.StatusSuggested},
	}
	state := makeState(t, players, sessions, availability, allocations)

	rule := NewBalanceRule(1.0)
	assert.InDelta(t, 0.5*8.0, rule.Penalty(state, players[0], mustSession(t, state, "s2")), 1e-9)
}

func TestBalance_PlayerAtOrBelowMeanPaysNothing(t *testing.T) {
	players := []model.Player{
		{ID: "p1", Grade: model.GradeA},
		{ID: "p2", Grade: model.GradeA},
	}
	sessions := []model.MonthlySession{
		{ID: "s1", Date: "2025-03-03", StartMinute: 18 * 60, EndMinute: 20 * 60, Grade: model.GradeA, Capacity: 4},
		{ID: "s2", Date: "2025-03-10", StartMinute: 18 * 60, EndMinute: 20 * 60, Grade: model.GradeA, Capacity: 4},
	}
	availability := []model.Availability{
		{PlayerID: "p1", SessionID: "s1", Available: true},
		{PlayerID: "p2", SessionID: "s2", Available: true},
	}
	allocations := []model.Allocation{
		{ID: "a1", RunID: "r1", SessionID: "s1", PlayerID: "p1", Status: model.StatusSuggested},
	}
	state := makeState(t, players, sessions, availability, allocations)

	rule := NewBalanceRule(1.0)
	assert.Zero(t, rule.Penalty(state, players[1], mustSession(t, state, "s2")),
		"a player below the mean must not be penalised")
}

func TestBalance_UnavailablePlayersDoNotDragTheMean(t *testing.T) {
	// p3 never responded; the mean is computed over p1 and p2 only
	players := []model.Player{
		{ID: "p1", Grade: model.GradeA},
		{ID: "p2", Grade: model.GradeA},
		{ID: "p3", Grade: model.GradeA},
	}
	sessions := []model.MonthlySession{
		{ID: "s1", Date: "2025-03-03", StartMinute: 18 * 60, EndMinute: 20 * 60, Grade: model.GradeA, Capacity: 4},
		{ID: "s2", Date: "2025-03-10", StartMinute: 18 * 60, EndMinute: 20 * 60, Grade: model.GradeA, Capacity: 4},
	}
	availability := []model.Availability{
		{PlayerID: "p1", SessionID: "s1", Available: true},
		{PlayerID: "p1", SessionID: "s2", Available: true},
		{PlayerID: "p2", SessionID: "s1", Available: true},
	}
	allocations := []model.Allocation{
		{ID: "a1", RunID: "r1", SessionID: "s1", PlayerID: "p1", Status: model.StatusSuggested},
		{ID: "a2", RunID: "r1", SessionID: "s1", PlayerID: "p2", Status: model.StatusSuggested},
	}
	state := makeState(t, players, sessions, availability, allocations)

	// Mean over {p1: 1, p2: 1} is 1.0, so p1 has no excess yet
	rule := NewBalanceRule(1.0)
	assert.Zero(t, rule.Penalty(state, players[0], mustSession(t, state, "s2")))
}
