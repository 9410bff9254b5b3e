package reporting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// SessionMessage is a ready-to-send group message for one session
type SessionMessage struct {
	Session   model.MonthlySession
	Confirmed []string
	Waitlist  []string
	Message   string
}

// BuildSessionMessages composes a group-chat announcement per session
// from active allocations and the run's waitlist, ordered by date
func BuildSessionMessages(sessions []model.MonthlySession, allocations []model.Allocation, players []model.Player, waitlist []model.WaitlistEntry) []SessionMessage {
	playersByID := make(map[string]model.Player, len(players))
	for _, p := range players {
		playersByID[p.ID] = p
	}

	confirmedBySession := make(map[string][]string)
	for _, a := range allocations {
		if !a.Active() {
			continue
		}
		player, ok := playersByID[a.PlayerID]
		if !ok {
			continue
		}
		confirmedBySession[a.SessionID] = append(confirmedBySession[a.SessionID], player.FullName())
	}

	waitlistBySession := make(map[string][]string)
	for _, e := range waitlist {
		player, ok := playersByID[e.PlayerID]
		if !ok {
			continue
		}
		waitlistBySession[e.SessionID] = append(waitlistBySession[e.SessionID], player.FullName())
	}

	messages := make([]SessionMessage, 0, len(sessions))
	for _, session := range sessions {
		confirmed := confirmedBySession[session.ID]
		sort.Strings(confirmed)
		waitlisted := waitlistBySession[session.ID]
		sort.Strings(waitlisted)
		messages = append(messages, SessionMessage{
			Session:   session,
			Confirmed: confirmed,
			Waitlist:  waitlisted,
			Message:   ComposeSessionMessage(session, confirmed, waitlisted),
		})
	}

	sort.Slice(messages, func(i, j int) bool {
		return messages[i].Session.Date < messages[j].Session.Date
	})

	return messages
}

// ComposeSessionMessage renders the group-chat text for one session.
// The shape follows the club's long-standing announcement format.
func ComposeSessionMessage(session model.MonthlySession, confirmed, waitlist []string) string {
	date, _ := time.Parse("2006-01-02", session.Date)
	weekday := date.Weekday().String()
	dateLabel := date.Format("02 Jan")

	var lines []string

	locationFragment := ""
	if session.Venue != "" {
		locationFragment = fmt.Sprintf(" at %s", session.Venue)
	}
	lines = append(lines, fmt.Sprintf("%s's players%s (%s)", weekday, locationFragment, dateLabel))

	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("%s-%s:", clockLabel(session.StartMinute), clockLabel(session.EndMinute)))

	if len(confirmed) > 0 {
		lines = append(lines, joinNames(confirmed))
	} else {
		lines = append(lines, "No confirmed players listed yet.")
	}

	if len(waitlist) > 0 {
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("Waitlist: %s", joinNames(waitlist)))
	}

	if session.Notes != "" {
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("Notes: %s", session.Notes))
	}

	lines = append(lines, "")
	lines = append(lines, "Any cancellations, let me know ASAP! 🏸😊")
	lines = append(lines, "The key will need collecting and returning – volunteer sooner rather than later!")

	return strings.Join(lines, "\n")
}

// joinNames renders "A", "A, & B" or "A, B, & C"
func joinNames(names []string) string {
	trimmed := make([]string, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) != "" {
			trimmed = append(trimmed, strings.TrimSpace(name))
		}
	}
	if len(trimmed) == 0 {
		return ""
	}
	if len(trimmed) == 1 {
		return trimmed[0]
	}
	return strings.Join(trimmed[:len(trimmed)-1], ", ") + fmt.Sprintf(", & %s", trimmed[len(trimmed)-1])
}

// clockLabel renders minutes since midnight as "15:04"
func clockLabel(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
