package reporting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/baddersbot/pkg/core/model"
)

func TestComposeSessionMessage_FullHouse(t *testing.T) {
	session := model.MonthlySession{
		ID:          "s1",
		Date:        "2025-03-03", // Monday
		StartMinute: 18 * 60,
		EndMinute:   20 * 60,
		Grade:       model.GradeA,
		Capacity:    3,
		Venue:       "Dunford Hall",
	}

	message := ComposeSessionMessage(session,
		[]string{"Asha Patel", "Ben Okoro", "Carla Reyes"},
		[]string{"Dev Shah"})

	expected := strings.Join([]string{
		"Monday's players at Dunford Hall (03 Mar)",
		"",
		"18:00-20:00:",
		"Asha Patel, Ben Okoro, & Carla Reyes",
		"",
		"Waitlist: Dev Shah",
		"",
		"Any cancellations, let me know ASAP! 🏸😊",
		"The key will need collecting and returning – volunteer sooner rather than later!",
	}, "\n")

	assert.Equal(t, expected, message)
}

func TestComposeSessionMessage_NoVenueNoPlayers(t *testing.T) {
	session := model.MonthlySession{
		ID:          "s1",
		Date:        "2025-03-01", // Saturday
		StartMinute: 10 * 60,
		EndMinute:   12 * 60,
	}

	message := ComposeSessionMessage(session, nil, nil)

	assert.True(t, strings.HasPrefix(message, "Saturday's players (01 Mar)"))
	assert.Contains(t, message, "No confirmed players listed yet.")
	assert.NotContains(t, message, "Waitlist:")
}

func TestJoinNames(t *testing.T) {
	assert.Equal(t, "", joinNames(nil))
	assert.Equal(t, "Asha", joinNames([]string{"Asha"}))
	assert.Equal(t, "Asha, & Ben", joinNames([]string{"Asha", "Ben"}))
	assert.Equal(t, "Asha, Ben, & Carla", joinNames([]string{"Asha", "Ben", "Carla"}))
	assert.Equal(t, "Asha, & Ben", joinNames([]string{" Asha ", "", "Ben"}))
}

func TestBuildSessionMessages_OrderedAndFiltered(t *testing.T) {
	players := []model.Player{
		{ID: "p1", FirstName: "Asha", LastName: "Patel"},
		{ID: "p2", FirstName: "Ben", LastName: "Okoro"},
	}
	sessions := []model.MonthlySession{
		{ID: "s2", Date: "2025-03-10", StartMinute: 18 * 60, EndMinute: 20 * 60},
		{ID: "s1", Date: "2025-03-03", StartMinute: 18 * 60, EndMinute: 20 * 60},
	}
	allocations := []model.Allocation{
		{ID: "a1", SessionID: "s1", PlayerID: "p1", Status: model.StatusConfirmed},
		{ID: "a2", SessionID: "s1", PlayerID: "p2", Status: model.StatusRemoved},
		{ID: "a3", SessionID: "s2", PlayerID: "p2", Status: model.StatusSuggested},
	}

	messages := BuildSessionMessages(sessions, allocations, players, nil)
	require.Len(t, messages, 2)

	assert.Equal(t, "s1", messages[0].Session.ID, "messages are ordered by date")
	assert.Equal(t, []string{"Asha Patel"}, messages[0].Confirmed,
		"removed allocations must not appear in the roster")
	assert.Equal(t, []string{"Ben Okoro"}, messages[1].Confirmed)
}

func TestBuildSessionMessages_WaitlistNamesInMessage(t *testing.T) {
	players := []model.Player{
		{ID: "p1", FirstName: "Asha", LastName: "Patel"},
		{ID: "p2", FirstName: "Ben", LastName: "Okoro"},
		{ID: "p3", FirstName: "Carla", LastName: "Reyes"},
	}
	sessions := []model.MonthlySession{
		{ID: "s1", Date: "2025-03-03", StartMinute: 18 * 60, EndMinute: 20 * 60},
	}
	allocations := []model.Allocation{
		{ID: "a1", SessionID: "s1", PlayerID: "p1", Status: model.StatusConfirmed},
	}
	waitlist := []model.WaitlistEntry{
		{PlayerID: "p3", SessionID: "s1", Reason: model.ReasonCapacityExhausted},
		{PlayerID: "p2", SessionID: "s1", Reason: model.ReasonCapacityExhausted},
		{PlayerID: "ghost", SessionID: "s1", Reason: model.ReasonCapacityExhausted},
	}

	messages := BuildSessionMessages(sessions, allocations, players, waitlist)
	require.Len(t, messages, 1)

	assert.Equal(t, []string{"Ben Okoro", "Carla Reyes"}, messages[0].Waitlist,
		"waitlisted names are sorted and unknown players are skipped")
	assert.Contains(t, messages[0].Message, "Waitlist: Ben Okoro, & Carla Reyes")
}

func TestComposeSessionMessage_NotesAfterWaitlist(t *testing.T) {
	session := model.MonthlySession{
		ID:          "s1",
		Date:        "2025-03-03", // Monday
		StartMinute: 18 * 60,
		EndMinute:   20 * 60,
		Venue:       "Dunford Hall",
		Notes:       "Bring spare shuttles.",
	}

	message := ComposeSessionMessage(session, []string{"Asha Patel"}, []string{"Ben Okoro"})

	expected := strings.Join([]string{
		"Monday's players at Dunford Hall (03 Mar)",
		"",
		"18:00-20:00:",
		"Asha Patel",
		"",
		"Waitlist: Ben Okoro",
		"",
		"Notes: Bring spare shuttles.",
		"",
		"Any cancellations, let me know ASAP! 🏸😊",
		"The key will need collecting and returning – volunteer sooner rather than later!",
	}, "\n")

	assert.Equal(t, expected, message)
}
