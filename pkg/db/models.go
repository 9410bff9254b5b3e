package db

import "time"

// Player represents a database player record
type Player struct {
	ID             string
	FirstName      string
	LastName       string
	Grade          string
	PrefersWeekend bool
	PrefersEarly   bool
	Notes          string
}

// SessionTemplate represents a database session template record
type SessionTemplate struct {
	ID        string
	RRule     string
	StartTime string
	EndTime   string
	Grade     string
	Capacity  int
	Venue     string
	Notes     string
}

// MonthlySession represents a database monthly session record
type MonthlySession struct {
	ID          string
	TemplateID  string
	Date        string
	StartMinute int
	EndMinute   int
	Grade       string
	Capacity    int
	Venue       string
	Notes       string
}

// Availability represents a database availability record
type Availability struct {
	PlayerID  string
	SessionID string
	Available bool
	Strength  int
}

// Allocation represents a database allocation record
type Allocation struct {
	ID         string
	RunID      string
	SessionID  string
	PlayerID   string
	Source     string
	Confidence float64
	Status     string
	Overfull   bool
}

// AllocationRun represents a database allocation run record.
// Rows are insert-only; the summary of a committed run is never updated.
type AllocationRun struct {
	ID               string
	Month            string
	PreferenceWeight float64
	BalancingWeight  float64
	TieBreakSeed     int64
	ExecutedAt       time.Time
	Filled           int
	Unfilled         int
	UnmetDemand      int
	FillPercent      float64
	AvgConfidence    float64
}

// WaitlistEntry represents a database run waitlist record. Entries are
// written once with their run and never changed afterwards.
type WaitlistEntry struct {
	RunID     string
	PlayerID  string
	SessionID string
	Reason    string
}

// OverrideLog represents a database override log record. Insert-only.
type OverrideLog struct {
	ID                  string
	RunID               string
	Actor               string
	At                  time.Time
	Kind                string
	AllocationIDs       []string
	PriorSessionID      string
	NewSessionID        string
	ConstraintViolation bool
	Reason              string
}

// PaymentStatus represents a database payment status record
type PaymentStatus struct {
	PlayerID    string
	Month       string
	Paid        bool
	PaidAt      time.Time
	AmountPence int
}
