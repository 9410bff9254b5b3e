package reporting

import (
	"sort"

	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// ScheduleEntry is one session on a player's monthly schedule
type ScheduleEntry struct {
	Session    model.MonthlySession
	Status     model.AllocationStatus
	Confidence float64
}

// PlayerSchedule joins a player's allocated sessions with their payment
// status for the month
type PlayerSchedule struct {
	Player        model.Player
	Entries       []ScheduleEntry
	PaymentStatus string // "Paid", "Pending" or "Unknown"
}

// BuildPlayerSchedules produces the per-player schedule + payment join.
// Players with no active allocation are included with an empty schedule
// so the organiser can spot them. Output is ordered by player name.
func BuildPlayerSchedules(players []model.Player, sessions []model.MonthlySession, allocations []model.Allocation, payments []model.PaymentStatus) []PlayerSchedule {
	sessionsByID := make(map[string]model.MonthlySession, len(sessions))
	for _, s := range sessions {
		sessionsByID[s.ID] = s
	}

	paymentByPlayer := make(map[string]model.PaymentStatus, len(payments))
	for _, p := range payments {
		paymentByPlayer[p.PlayerID] = p
	}

	entriesByPlayer := make(map[string][]ScheduleEntry)
	for _, a := range allocations {
		if !a.Active() {
			continue
		}
		session, ok := sessionsByID[a.SessionID]
		if !ok {
			continue
		}
		entriesByPlayer[a.PlayerID] = append(entriesByPlayer[a.PlayerID], ScheduleEntry{
			Session:    session,
			Status:     a.Status,
			Confidence: a.Confidence,
		})
	}

	schedules := make([]PlayerSchedule, 0, len(players))
	for _, player := range players {
		entries := entriesByPlayer[player.ID]
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Session.Date != entries[j].Session.Date {
				return entries[i].Session.Date < entries[j].Session.Date
			}
			return entries[i].Session.StartMinute < entries[j].Session.StartMinute
		})

		status := "Unknown"
		if payment, ok := paymentByPlayer[player.ID]; ok {
			if payment.Paid {
				status = "Paid"
			} else {
				status = "Pending"
			}
		}

		schedules = append(schedules, PlayerSchedule{
			Player:        player,
			Entries:       entries,
			PaymentStatus: status,
		})
	}

	sort.Slice(schedules, func(i, j int) bool {
		return schedules[i].Player.FullName() < schedules[j].Player.FullName()
	})

	return schedules
}
