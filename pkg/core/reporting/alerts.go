package reporting

import (
	"fmt"

	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// Metrics is the month-at-a-glance digest for the organiser dashboard
type Metrics struct {
	TotalPlayers      int
	SessionsThisMonth int
	PendingPayments   int
	UnfilledSessions  int
}

// Alert flags something the organiser should look at
type Alert struct {
	Category string
	Message  string
}

// BuildDashboard derives the metrics and alert list any outer surface can
// render. Alerts cover unfilled sessions, unpaid players with allocations,
// and manual overrides that crossed a grade boundary.
func BuildDashboard(players []model.Player, sessions []model.MonthlySession, allocations []model.Allocation, payments []model.PaymentStatus) (Metrics, []Alert) {
	metrics := Metrics{
		TotalPlayers:      len(players),
		SessionsThisMonth: len(sessions),
	}

	paidPlayers := make(map[string]bool)
	for _, p := range payments {
		if p.Paid {
			paidPlayers[p.PlayerID] = true
		}
	}
	for _, p := range payments {
		if !p.Paid {
			metrics.PendingPayments++
		}
	}

	playersByID := make(map[string]model.Player, len(players))
	for _, p := range players {
		playersByID[p.ID] = p
	}
	sessionsByID := make(map[string]model.MonthlySession, len(sessions))
	for _, s := range sessions {
		sessionsByID[s.ID] = s
	}

	assigned := make(map[string]int)
	var alerts []Alert
	allocatedUnpaid := make(map[string]bool)

	for _, a := range allocations {
		if !a.Active() {
			continue
		}
		assigned[a.SessionID]++

		player, okPlayer := playersByID[a.PlayerID]
		session, okSession := sessionsByID[a.SessionID]
		if !okPlayer || !okSession {
			continue
		}

		if player.Grade != session.Grade && a.Source == model.SourceManual {
			alerts = append(alerts, Alert{
				Category: "grade",
				Message:  fmt.Sprintf("%s (grade %s) is manually placed in a grade %s session on %s", player.FullName(), player.Grade, session.Grade, session.Date),
			})
		}

		if !paidPlayers[player.ID] && !allocatedUnpaid[player.ID] {
			allocatedUnpaid[player.ID] = true
			alerts = append(alerts, Alert{
				Category: "payment",
				Message:  fmt.Sprintf("%s has allocations but has not paid this month", player.FullName()),
			})
		}
	}

	for _, session := range sessions {
		if assigned[session.ID] < session.Capacity {
			metrics.UnfilledSessions++
		}
	}
	if metrics.UnfilledSessions > 0 {
		alerts = append(alerts, Alert{
			Category: "fill",
			Message:  fmt.Sprintf("%d sessions still have open slots", metrics.UnfilledSessions),
		})
	}

	return metrics, alerts
}
