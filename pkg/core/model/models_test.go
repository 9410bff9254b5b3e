package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeIsValid(t *testing.T) {
	assert.True(t, GradeA.IsValid())
	assert.True(t, GradeB.IsValid())
	assert.True(t, GradeC.IsValid())
	assert.False(t, Grade("D").IsValid())
	assert.False(t, Grade("").IsValid())
	assert.False(t, Grade("a").IsValid(), "grades are upper case only")
}

func TestMonthlySessionDayAndTime(t *testing.T) {
	saturday := MonthlySession{Date: "2025-03-01", StartMinute: 10 * 60, EndMinute: 12 * 60}
	assert.True(t, saturday.IsWeekend())
	assert.True(t, saturday.IsEarly())

	mondayEvening := MonthlySession{Date: "2025-03-03", StartMinute: 18 * 60, EndMinute: 20 * 60}
	assert.False(t, mondayEvening.IsWeekend())
	assert.False(t, mondayEvening.IsEarly())

	// 17:00 is the early/late boundary and counts as late
	boundary := MonthlySession{Date: "2025-03-03", StartMinute: 17 * 60, EndMinute: 19 * 60}
	assert.False(t, boundary.IsEarly())
}

func TestMonthlySessionOverlaps(t *testing.T) {
	base := MonthlySession{Date: "2025-03-03", StartMinute: 18 * 60, EndMinute: 20 * 60}

	assert.True(t, base.Overlaps(MonthlySession{Date: "2025-03-03", StartMinute: 19 * 60, EndMinute: 21 * 60}))
	assert.True(t, base.Overlaps(MonthlySession{Date: "2025-03-03", StartMinute: 17 * 60, EndMinute: 21 * 60}),
		"containment is an overlap")
	assert.False(t, base.Overlaps(MonthlySession{Date: "2025-03-03", StartMinute: 20 * 60, EndMinute: 22 * 60}),
		"back to back sessions do not collide")
	assert.False(t, base.Overlaps(MonthlySession{Date: "2025-03-10", StartMinute: 18 * 60, EndMinute: 20 * 60}))
}

func TestAllocationActive(t *testing.T) {
	assert.True(t, Allocation{Status: StatusSuggested}.Active())
	assert.True(t, Allocation{Status: StatusConfirmed}.Active())
	assert.True(t, Allocation{Status: StatusOverridden}.Active())
	assert.False(t, Allocation{Status: StatusRemoved}.Active())
}
