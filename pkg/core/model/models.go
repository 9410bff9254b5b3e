package model

import "time"

type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
)

func (g Grade) IsValid() bool {
	return g == GradeA || g == GradeB || g == GradeC
}

// Player represents a club member eligible for session allocation.
// Grade is fixed for the season; preference flags are soft hints only.
type Player struct {
	ID             string
	FirstName      string
	LastName       string
	Grade          Grade
	PrefersWeekend bool // false = prefers weekday sessions
	PrefersEarly   bool // false = prefers late sessions
	Notes          string
}

// FullName returns the player's display name
func (p Player) FullName() string {
	return p.FirstName + " " + p.LastName
}

// SessionTemplate describes the recurring shape of a club session.
// Templates are never scheduled directly; they are materialised into
// MonthlySessions for a target month.
type SessionTemplate struct {
	ID        string
	RRule     string // recurrence rule, e.g. "FREQ=WEEKLY;BYDAY=TU"
	StartTime string // "HH:MM", 24h
	EndTime   string // "HH:MM", 24h
	Grade     Grade
	Capacity  int
	Venue     string
	Notes     string // carried onto materialised sessions and announcements
}

// MonthlySession is a concrete dated instance of a template.
// Capacity and grade may diverge from the template after organiser edits,
// but grade is fixed once the session is materialised.
type MonthlySession struct {
	ID          string
	TemplateID  string
	Date        string // "2006-01-02"
	StartMinute int    // minutes since midnight
	EndMinute   int
	Grade       Grade
	Capacity    int
	Venue       string
	Notes       string
}

// Weekday returns the day of week for the session date.
// Returns time.Sunday for unparseable dates; callers validate dates upstream.
func (s MonthlySession) Weekday() time.Weekday {
	d, err := time.Parse("2006-01-02", s.Date)
	if err != nil {
		return time.Sunday
	}
	return d.Weekday()
}

// IsWeekend reports whether the session falls on Saturday or Sunday
func (s MonthlySession) IsWeekend() bool {
	wd := s.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsEarly reports whether the session starts before the early/late split (17:00)
func (s MonthlySession) IsEarly() bool {
	return s.StartMinute < 17*60
}

// Overlaps reports whether two sessions collide in time on the same date
func (s MonthlySession) Overlaps(other MonthlySession) bool {
	if s.Date != other.Date {
		return false
	}
	return s.StartMinute < other.EndMinute && other.StartMinute < s.EndMinute
}

// Availability is one player's response for one monthly session.
// Only Available records are eligible inputs to allocation.
type Availability struct {
	PlayerID  string
	SessionID string
	Available bool
	Strength  int // optional preference hint, 0 (none) to 3 (keen)
}

type AllocationSource string

const (
	SourceAuto   AllocationSource = "auto"
	SourceManual AllocationSource = "manual"
)

type AllocationStatus string

const (
	StatusSuggested  AllocationStatus = "suggested"
	StatusConfirmed  AllocationStatus = "confirmed"
	StatusOverridden AllocationStatus = "overridden"
	StatusRemoved    AllocationStatus = "removed"
)

// Allocation assigns one player to one monthly session.
// Engine-produced allocations start as Suggested; only the override
// manager may transition them afterwards.
type Allocation struct {
	ID         string
	RunID      string
	SessionID  string
	PlayerID   string
	Source     AllocationSource
	Confidence float64
	Status     AllocationStatus
	Overfull   bool // set when a manual override pushed the session past capacity
}

// Active reports whether the allocation still occupies a session slot
func (a Allocation) Active() bool {
	return a.Status != StatusRemoved
}

// WaitlistReason explains why demand went unmet
type WaitlistReason string

const (
	ReasonNoAvailability    WaitlistReason = "no_availability"
	ReasonCapacityExhausted WaitlistReason = "capacity_exhausted"
	ReasonGradeExclusive    WaitlistReason = "grade_exclusive"
)

// WaitlistEntry records one available (player, session) demand a run
// could not satisfy. Entries are persisted with their run so reporting
// can reconstruct per-session waitlists later.
type WaitlistEntry struct {
	PlayerID  string
	SessionID string
	Reason    WaitlistReason
}

type OverrideKind string

const (
	OverrideReassign OverrideKind = "reassign"
	OverrideSwap     OverrideKind = "swap"
	OverrideRemove   OverrideKind = "remove"
	OverrideUndo     OverrideKind = "undo"
	OverrideRedo     OverrideKind = "redo"
)

// OverrideLog is one append-only audit entry for a manual edit.
// Entries are created once and never updated or deleted; undoing an
// action appends a compensating entry instead of erasing history.
type OverrideLog struct {
	ID                  string
	RunID               string
	Actor               string
	At                  time.Time
	Kind                OverrideKind
	AllocationIDs       []string
	PriorSessionID      string
	NewSessionID        string
	ConstraintViolation bool
	Reason              string
}

// PaymentStatus records whether a player has paid for a month.
// Reporting input only; the engine never reads it.
type PaymentStatus struct {
	PlayerID    string
	Month       string // "2006-01"
	Paid        bool
	PaidAt      time.Time
	AmountPence int
}

// Parameters is the tunable weight bundle for one allocation run
type Parameters struct {
	PreferenceWeight float64
	BalancingWeight  float64
	TieBreakSeed     int64
}

// RunSummary is the outcome digest stored with each run
type RunSummary struct {
	Filled        int
	Unfilled      int
	UnmetDemand   int
	FillPercent   float64
	AvgConfidence float64
}

// AllocationRun is one immutable execution of the engine.
// A new run never mutates a prior run's stored outcome.
type AllocationRun struct {
	ID         string
	Month      string // "2006-01"
	Parameters Parameters
	ExecutedAt time.Time
	Summary    RunSummary
}
