package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/baddersbot/pkg/core/model"
	"github.com/jakechorley/baddersbot/pkg/db"
)

// mockMaterialiseStore implements db.SessionStore for testing
type mockMaterialiseStore struct {
	templates        []db.SessionTemplate
	existingSessions []db.MonthlySession
	inserted         []db.MonthlySession
}

func (m *mockMaterialiseStore) GetSessionTemplates(ctx context.Context) ([]db.SessionTemplate, error) {
	return m.templates, nil
}

func (m *mockMaterialiseStore) GetMonthlySessions(ctx context.Context, month string) ([]db.MonthlySession, error) {
	return m.existingSessions, nil
}

func (m *mockMaterialiseStore) InsertMonthlySessions(ctx context.Context, sessions []db.MonthlySession) error {
	m.inserted = append(m.inserted, sessions...)
	return nil
}

func weeklyTuesdayTemplate() db.SessionTemplate {
	return db.SessionTemplate{
		ID:        "t1",
		RRule:     "FREQ=WEEKLY;BYDAY=TU",
		StartTime: "18:00",
		EndTime:   "20:00",
		Grade:     "A",
		Capacity:  4,
		Venue:     "Dunford Hall",
	}
}

func TestMaterialiseMonth_ExpandsRecurrenceSkippingHolidaysAndExisting(t *testing.T) {
	// March 2025 Tuesdays: 4th, 11th, 18th, 25th
	store := &mockMaterialiseStore{
		templates: []db.SessionTemplate{weeklyTuesdayTemplate()},
		existingSessions: []db.MonthlySession{
			{ID: "existing", TemplateID: "t1", Date: "2025-03-04"},
		},
	}

	result, err := MaterialiseMonth(context.Background(), store, "2025-03",
		[]string{"2025-03-18"}, zap.NewNop(), false)
	require.NoError(t, err)

	dates := make([]string, len(result.Created))
	for i, s := range result.Created {
		dates[i] = s.Date
	}
	assert.Equal(t, []string{"2025-03-11", "2025-03-25"}, dates)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Existing)

	require.Len(t, store.inserted, 2)
	created := store.inserted[0]
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "t1", created.TemplateID)
	assert.Equal(t, 18*60, created.StartMinute)
	assert.Equal(t, 20*60, created.EndMinute)
	assert.Equal(t, "A", created.Grade)
	assert.Equal(t, 4, created.Capacity)
	assert.Equal(t, "Dunford Hall", created.Venue)
}

func TestMaterialiseMonth_DryRunSavesNothing(t *testing.T) {
	store := &mockMaterialiseStore{
		templates: []db.SessionTemplate{weeklyTuesdayTemplate()},
	}

	result, err := MaterialiseMonth(context.Background(), store, "2025-03", nil, zap.NewNop(), true)
	require.NoError(t, err)

	assert.Len(t, result.Created, 4)
	assert.Empty(t, store.inserted)
}

func TestMaterialiseMonth_RerunIsIdempotent(t *testing.T) {
	store := &mockMaterialiseStore{
		templates: []db.SessionTemplate{weeklyTuesdayTemplate()},
	}

	first, err := MaterialiseMonth(context.Background(), store, "2025-03", nil, zap.NewNop(), false)
	require.NoError(t, err)
	require.Len(t, first.Created, 4)

	// Feed the created sessions back as already existing
	store.existingSessions = store.inserted

	second, err := MaterialiseMonth(context.Background(), store, "2025-03", nil, zap.NewNop(), false)
	require.NoError(t, err)
	assert.Empty(t, second.Created, "already materialised dates must survive a rerun untouched")
	assert.Equal(t, 4, second.Existing)
}

func TestMaterialiseMonth_InvalidInputs(t *testing.T) {
	store := &mockMaterialiseStore{
		templates: []db.SessionTemplate{weeklyTuesdayTemplate()},
	}

	_, err := MaterialiseMonth(context.Background(), store, "March", nil, zap.NewNop(), false)
	assert.ErrorIs(t, err, model.ErrValidation)

	store.templates[0].RRule = "not an rrule"
	_, err = MaterialiseMonth(context.Background(), store, "2025-03", nil, zap.NewNop(), false)
	assert.ErrorIs(t, err, model.ErrValidation)

	store.templates[0].RRule = "FREQ=WEEKLY;BYDAY=TU"
	store.templates[0].StartTime = "quarter past six"
	_, err = MaterialiseMonth(context.Background(), store, "2025-03", nil, zap.NewNop(), false)
	assert.ErrorIs(t, err, model.ErrValidation)
}
