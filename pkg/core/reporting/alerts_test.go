package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/baddersbot/pkg/core/model"
)

func TestBuildDashboard(t *testing.T) {
	players := []model.Player{
		{ID: "p1", FirstName: "Asha", LastName: "Patel", Grade: model.GradeA},
		{ID: "p2", FirstName: "Ben", LastName: "Okoro", Grade: model.GradeB},
	}
	sessions := []model.MonthlySession{
		{ID: "s1", Date: "2025-03-03", Grade: model.GradeA, Capacity: 2},
		{ID: "s2", Date: "2025-03-10", Grade: model.GradeA, Capacity: 1},
	}
	allocations := []model.Allocation{
		{ID: "a1", SessionID: "s1", PlayerID: "p1", Source: model.SourceAuto, Status: model.StatusSuggested},
		// Grade B player manually forced into a grade A session
		{ID: "a2", SessionID: "s2", PlayerID: "p2", Source: model.SourceManual, Status: model.StatusOverridden},
	}
	payments := []model.PaymentStatus{
		{PlayerID: "p1", Month: "2025-03", Paid: true},
		{PlayerID: "p2", Month: "2025-03", Paid: false},
	}

	metrics, alerts := BuildDashboard(players, sessions, allocations, payments)

	assert.Equal(t, 2, metrics.TotalPlayers)
	assert.Equal(t, 2, metrics.SessionsThisMonth)
	assert.Equal(t, 1, metrics.PendingPayments)
	assert.Equal(t, 1, metrics.UnfilledSessions, "s1 has an open slot, s2 is full")

	categories := make(map[string]int)
	for _, alert := range alerts {
		categories[alert.Category]++
	}
	assert.Equal(t, 1, categories["grade"], "manual cross-grade placement must be flagged")
	assert.Equal(t, 1, categories["payment"], "allocated but unpaid player must be flagged")
	assert.Equal(t, 1, categories["fill"])
}

func TestBuildDashboard_AutoAllocationsNeverTriggerGradeAlert(t *testing.T) {
	players := []model.Player{{ID: "p1", Grade: model.GradeA}}
	sessions := []model.MonthlySession{{ID: "s1", Date: "2025-03-03", Grade: model.GradeA, Capacity: 1}}
	allocations := []model.Allocation{
		{ID: "a1", SessionID: "s1", PlayerID: "p1", Source: model.SourceAuto, Status: model.StatusSuggested},
	}
	payments := []model.PaymentStatus{{PlayerID: "p1", Month: "2025-03", Paid: true}}

	_, alerts := BuildDashboard(players, sessions, allocations, payments)
	assert.Empty(t, alerts)
}
