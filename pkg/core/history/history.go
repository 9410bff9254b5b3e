package history

import (
	"fmt"
	"sort"

	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// RunRecord is one immutable allocation run snapshot: its parameters,
// summary, and the full allocation set it produced.
type RunRecord struct {
	Run         model.AllocationRun
	Allocations []model.Allocation
}

// Store keeps run records keyed by month, ordered by execution time.
// Append-only: a record is never replaced or mutated once added.
type Store struct {
	byID    map[string]RunRecord
	byMonth map[string][]string
}

// NewStore creates an empty run history store
func NewStore() *Store {
	return &Store{
		byID:    make(map[string]RunRecord),
		byMonth: make(map[string][]string),
	}
}

// Add appends a run record. Re-adding an existing run id is rejected so a
// rerun can never overwrite a prior run's stored outcome.
func (s *Store) Add(record RunRecord) error {
	if record.Run.ID == "" {
		return fmt.Errorf("%w: run record with empty id", model.ErrValidation)
	}
	if _, exists := s.byID[record.Run.ID]; exists {
		return fmt.Errorf("%w: run %q already recorded", model.ErrValidation, record.Run.ID)
	}
	s.byID[record.Run.ID] = record
	s.byMonth[record.Run.Month] = append(s.byMonth[record.Run.Month], record.Run.ID)
	return nil
}

// Get returns a run record by id
func (s *Store) Get(id string) (RunRecord, bool) {
	record, ok := s.byID[id]
	return record, ok
}

// RunsForMonth returns the month's records ordered by execution time
func (s *Store) RunsForMonth(month string) []RunRecord {
	ids := s.byMonth[month]
	records := make([]RunRecord, 0, len(ids))
	for _, id := range ids {
		records = append(records, s.byID[id])
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Run.ExecutedAt.Before(records[j].Run.ExecutedAt)
	})
	return records
}
