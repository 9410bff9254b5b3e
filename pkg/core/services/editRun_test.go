package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/baddersbot/pkg/core/model"
	"github.com/jakechorley/baddersbot/pkg/core/overrides"
	"github.com/jakechorley/baddersbot/pkg/db"
)

// mockEditRunStore implements EditRunStore for testing
type mockEditRunStore struct {
	run          *db.AllocationRun
	players      []db.Player
	sessions     []db.MonthlySession
	availability []db.Availability
	allocations  []db.Allocation

	savedAllocations []db.Allocation
	savedLogs        []db.OverrideLog
	saveErr          error
}

func (m *mockEditRunStore) GetRun(ctx context.Context, runID string) (*db.AllocationRun, error) {
	if m.run == nil || m.run.ID != runID {
		return nil, nil
	}
	return m.run, nil
}

func (m *mockEditRunStore) GetPlayers(ctx context.Context) ([]db.Player, error) {
	return m.players, nil
}

func (m *mockEditRunStore) GetMonthlySessions(ctx context.Context, month string) ([]db.MonthlySession, error) {
	return m.sessions, nil
}

func (m *mockEditRunStore) GetAvailability(ctx context.Context, month string) ([]db.Availability, error) {
	return m.availability, nil
}

func (m *mockEditRunStore) GetAllocations(ctx context.Context, runID string) ([]db.Allocation, error) {
	return m.allocations, nil
}

func (m *mockEditRunStore) SaveRunEdits(ctx context.Context, allocations []db.Allocation, entries []db.OverrideLog) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.savedAllocations = append(m.savedAllocations, allocations...)
	m.savedLogs = append(m.savedLogs, entries...)
	return nil
}

func editRunFixture() *mockEditRunStore {
	return &mockEditRunStore{
		run: &db.AllocationRun{ID: "run-1", Month: "2025-03", PreferenceWeight: 1, BalancingWeight: 1},
		players: []db.Player{
			{ID: "p1", FirstName: "Asha", LastName: "Patel", Grade: "A"},
			{ID: "p2", FirstName: "Ben", LastName: "Okoro", Grade: "A"},
		},
		sessions: []db.MonthlySession{
			{ID: "s1", Date: "2025-03-03", StartMinute: 18 * 60, EndMinute: 20 * 60, Grade: "A", Capacity: 2},
		},
		availability: []db.Availability{
			{PlayerID: "p1", SessionID: "s1", Available: true},
			{PlayerID: "p2", SessionID: "s1", Available: true},
		},
		allocations: []db.Allocation{
			{ID: "a1", RunID: "run-1", SessionID: "s1", PlayerID: "p1", Source: "auto", Confidence: 100, Status: "suggested"},
		},
	}
}

func TestOpenEditingSession_UnknownRun(t *testing.T) {
	store := editRunFixture()

	session, err := OpenEditingSession(context.Background(), store, "missing", zap.NewNop())
	assert.Nil(t, session)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestSaveEdits_PersistsTouchedAllocationsAndLog(t *testing.T) {
	store := editRunFixture()

	session, err := OpenEditingSession(context.Background(), store, "run-1", zap.NewNop())
	require.NoError(t, err)

	_, err = session.Apply(overrides.Action{
		Kind:         model.OverrideRemove,
		AllocationID: "a1",
		Actor:        "organiser",
		Reason:       "holiday",
	})
	require.NoError(t, err)

	require.NoError(t, SaveEdits(context.Background(), store, session, zap.NewNop()))

	require.Len(t, store.savedAllocations, 1)
	assert.Equal(t, "a1", store.savedAllocations[0].ID)
	assert.Equal(t, string(model.StatusRemoved), store.savedAllocations[0].Status)
	assert.Equal(t, string(model.SourceManual), store.savedAllocations[0].Source)

	require.Len(t, store.savedLogs, 1)
	entry := store.savedLogs[0]
	assert.Equal(t, "run-1", entry.RunID)
	assert.Equal(t, string(model.OverrideRemove), entry.Kind)
	assert.Equal(t, "organiser", entry.Actor)
	assert.Equal(t, "holiday", entry.Reason)
}

func TestSaveEdits_NoEditsIsANoop(t *testing.T) {
	store := editRunFixture()

	session, err := OpenEditingSession(context.Background(), store, "run-1", zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, SaveEdits(context.Background(), store, session, zap.NewNop()))
	assert.Empty(t, store.savedAllocations)
	assert.Empty(t, store.savedLogs)
}

func TestSaveEdits_UndoneEditStillWritesBothEntries(t *testing.T) {
	store := editRunFixture()

	session, err := OpenEditingSession(context.Background(), store, "run-1", zap.NewNop())
	require.NoError(t, err)

	_, err = session.Apply(overrides.Action{Kind: model.OverrideRemove, AllocationID: "a1", Actor: "organiser"})
	require.NoError(t, err)
	_, err = session.Undo()
	require.NoError(t, err)

	require.NoError(t, SaveEdits(context.Background(), store, session, zap.NewNop()))

	// The allocation ends where it started but both audit entries persist
	require.Len(t, store.savedAllocations, 1)
	assert.Equal(t, string(model.StatusSuggested), store.savedAllocations[0].Status)
	require.Len(t, store.savedLogs, 2)
	assert.Equal(t, string(model.OverrideUndo), store.savedLogs[1].Kind)
}

func TestSaveEdits_FailedSaveLeavesNothingPersisted(t *testing.T) {
	store := editRunFixture()
	store.saveErr = errors.New("connection reset")

	session, err := OpenEditingSession(context.Background(), store, "run-1", zap.NewNop())
	require.NoError(t, err)

	_, err = session.Apply(overrides.Action{
		Kind:         model.OverrideRemove,
		AllocationID: "a1",
		Actor:        "organiser",
	})
	require.NoError(t, err)

	err = SaveEdits(context.Background(), store, session, zap.NewNop())
	require.Error(t, err)

	// A failed save must not leave a manual allocation behind without
	// its audit entries
	assert.Empty(t, store.savedAllocations)
	assert.Empty(t, store.savedLogs)
}
