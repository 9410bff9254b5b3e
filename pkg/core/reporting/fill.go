package reporting

import (
	"sort"

	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// SessionFill reports one session's occupancy
type SessionFill struct {
	Session     model.MonthlySession
	Assigned    int
	Remaining   int
	FillPercent int
}

// FillSummary aggregates occupancy across a month's sessions
type FillSummary struct {
	TotalSessions int
	FullyBooked   int
	OpenSlots     int
}

// BuildFillReport aggregates session fill rates from active allocations,
// ordered by date then start time
func BuildFillReport(sessions []model.MonthlySession, allocations []model.Allocation) ([]SessionFill, FillSummary) {
	assigned := make(map[string]int)
	for _, a := range allocations {
		if a.Active() {
			assigned[a.SessionID]++
		}
	}

	fills := make([]SessionFill, 0, len(sessions))
	summary := FillSummary{TotalSessions: len(sessions)}

	for _, session := range sessions {
		count := assigned[session.ID]
		remaining := session.Capacity - count
		if remaining < 0 {
			remaining = 0
		}

		percent := 0
		if session.Capacity > 0 {
			percent = count * 100 / session.Capacity
		}

		if remaining == 0 {
			summary.FullyBooked++
		}
		summary.OpenSlots += remaining

		fills = append(fills, SessionFill{
			Session:     session,
			Assigned:    count,
			Remaining:   remaining,
			FillPercent: percent,
		})
	}

	sort.Slice(fills, func(i, j int) bool {
		if fills[i].Session.Date != fills[j].Session.Date {
			return fills[i].Session.Date < fills[j].Session.Date
		}
		return fills[i].Session.StartMinute < fills[j].Session.StartMinute
	})

	return fills, summary
}
