package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// 2025-03-01 is a Saturday, 2025-03-03 a Monday

func TestDayPreference_WeekendPlayerOnWeekday(t *testing.T) {
	player := model.Player{ID: "p1", Grade: model.GradeA, PrefersWeekend: true}
	state := makeState(t,
		[]model.Player{player},
		[]model.MonthlySession{{ID: "s1", Date: "2025-03-03", StartMinute: 18 * 60, EndMinute: 20 * 60, Grade: model.GradeA, Capacity: 4}},
		nil, nil)

	rule := NewDayPreferenceRule(2.0)
	assert.Equal(t, 10.0, rule.Penalty(state, player, mustSession(t, state, "s1")))
	assert.Equal(t, 2.0, rule.Weight())
}

func TestDayPreference_WeekendPlayerOnWeekend(t *testing.T) {
	player := model.Player{ID: "p1", Grade: model.GradeA, PrefersWeekend: true}
	state := makeState(t,
		[]model.Player{player},
		[]model.MonthlySession{{ID: "s1", Date: "2025-03-01", StartMinute: 10 * 60, EndMinute: 12 * 60, Grade: model.GradeA, Capacity: 4}},
		nil, nil)

	rule := NewDayPreferenceRule(2.0)
	assert.Zero(t, rule.Penalty(state, player, mustSession(t, state, "s1")))
}

func TestTimePreference_EarlyPlayerOnLateSession(t *testing.T) {
	player := model.Player{ID: "p1", Grade: model.GradeA, PrefersEarly: true}
	state := makeState(t,
		[]model.Player{player},
		[]model.MonthlySession{{ID: "s1", Date: "2025-03-03", StartMinute: 19 * 60, EndMinute: 21 * 60, Grade: model.GradeA, Capacity: 4}},
		nil, nil)

	rule := NewTimePreferenceRule(1.5)
	assert.Equal(t, 10.0, rule.Penalty(state, player, mustSession(t, state, "s1")))
	assert.Equal(t, 1.5, rule.Weight())
}

func TestTimePreference_BoundaryStartCountsAsLate(t *testing.T) {
	// 17:00 exactly is a late session
	player := model.Player{ID: "p1", Grade: model.GradeA, PrefersEarly: false}
	state := makeState(t,
		[]model.Player{player},
		[]model.MonthlySession{{ID: "s1", Date: "2025-03-03", StartMinute: 17 * 60, EndMinute: 19 * 60, Grade: model.GradeA, Capacity: 4}},
		nil, nil)

	rule := NewTimePreferenceRule(1.0)
	assert.Zero(t, rule.Penalty(state, player, mustSession(t, state, "s1")))
}
