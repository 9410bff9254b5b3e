package db

import "github.com/jakechorley/baddersbot/pkg/core/model"

// Conversions between storage records and core model types. The core
// packages only ever see model types; these helpers keep the mapping in
// one place for the services layer.

func (p Player) ToModel() model.Player {
	return model.Player{
		ID:             p.ID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Grade:          model.Grade(p.Grade),
		PrefersWeekend: p.PrefersWeekend,
		PrefersEarly:   p.PrefersEarly,
		Notes:          p.Notes,
	}
}

func (s MonthlySession) ToModel() model.MonthlySession {
	return model.MonthlySession{
		ID:          s.ID,
		TemplateID:  s.TemplateID,
		Date:        s.Date,
		StartMinute: s.StartMinute,
		EndMinute:   s.EndMinute,
		Grade:       model.Grade(s.Grade),
		Capacity:    s.Capacity,
		Venue:       s.Venue,
		Notes:       s.Notes,
	}
}

func (a Availability) ToModel() model.Availability {
	return model.Availability{
		PlayerID:  a.PlayerID,
		SessionID: a.SessionID,
		Available: a.Available,
		Strength:  a.Strength,
	}
}

func (a Allocation) ToModel() model.Allocation {
	return model.Allocation{
		ID:         a.ID,
		RunID:      a.RunID,
		SessionID:  a.SessionID,
		PlayerID:   a.PlayerID,
		Source:     model.AllocationSource(a.Source),
		Confidence: a.Confidence,
		Status:     model.AllocationStatus(a.Status),
		Overfull:   a.Overfull,
	}
}

func (r AllocationRun) ToModel() model.AllocationRun {
	return model.AllocationRun{
		ID:    r.ID,
		Month: r.Month,
		Parameters: model.Parameters{
			PreferenceWeight: r.PreferenceWeight,
			BalancingWeight:  r.BalancingWeight,
			TieBreakSeed:     r.TieBreakSeed,
		},
		ExecutedAt: r.ExecutedAt,
		Summary: model.RunSummary{
			Filled:        r.Filled,
			Unfilled:      r.Unfilled,
			UnmetDemand:   r.UnmetDemand,
			FillPercent:   r.FillPercent,
			AvgConfidence: r.AvgConfidence,
		},
	}
}

func (l OverrideLog) ToModel() model.OverrideLog {
	return model.OverrideLog{
		ID:                  l.ID,
		RunID:               l.RunID,
		Actor:               l.Actor,
		At:                  l.At,
		Kind:                model.OverrideKind(l.Kind),
		AllocationIDs:       l.AllocationIDs,
		PriorSessionID:      l.PriorSessionID,
		NewSessionID:        l.NewSessionID,
		ConstraintViolation: l.ConstraintViolation,
		Reason:              l.Reason,
	}
}

func (p PaymentStatus) ToModel() model.PaymentStatus {
	return model.PaymentStatus{
		PlayerID:    p.PlayerID,
		Month:       p.Month,
		Paid:        p.Paid,
		PaidAt:      p.PaidAt,
		AmountPence: p.AmountPence,
	}
}

// FromModelSession converts a materialised session for insertion
func FromModelSession(s model.MonthlySession) MonthlySession {
	return MonthlySession{
		ID:          s.ID,
		TemplateID:  s.TemplateID,
		Date:        s.Date,
		StartMinute: s.StartMinute,
		EndMinute:   s.EndMinute,
		Grade:       string(s.Grade),
		Capacity:    s.Capacity,
		Venue:       s.Venue,
		Notes:       s.Notes,
	}
}

// FromModelAllocation converts an allocation for insertion or update
func FromModelAllocation(a model.Allocation) Allocation {
	return Allocation{
		ID:         a.ID,
		RunID:      a.RunID,
		SessionID:  a.SessionID,
		PlayerID:   a.PlayerID,
		Source:     string(a.Source),
		Confidence: a.Confidence,
		Status:     string(a.Status),
		Overfull:   a.Overfull,
	}
}

// FromModelRun converts a run record for insertion
func FromModelRun(r model.AllocationRun) AllocationRun {
	return AllocationRun{
		ID:               r.ID,
		Month:            r.Month,
		PreferenceWeight: r.Parameters.PreferenceWeight,
		BalancingWeight:  r.Parameters.BalancingWeight,
		TieBreakSeed:     r.Parameters.TieBreakSeed,
		ExecutedAt:       r.ExecutedAt,
		Filled:           r.Summary.Filled,
		Unfilled:         r.Summary.Unfilled,
		UnmetDemand:      r.Summary.UnmetDemand,
		FillPercent:      r.Summary.FillPercent,
		AvgConfidence:    r.Summary.AvgConfidence,
	}
}

func (w WaitlistEntry) ToModel() model.WaitlistEntry {
	return model.WaitlistEntry{
		PlayerID:  w.PlayerID,
		SessionID: w.SessionID,
		Reason:    model.WaitlistReason(w.Reason),
	}
}

// FromModelWaitlist converts an unmet-demand entry for insertion with its run
func FromModelWaitlist(runID string, e model.WaitlistEntry) WaitlistEntry {
	return WaitlistEntry{
		RunID:     runID,
		PlayerID:  e.PlayerID,
		SessionID: e.SessionID,
		Reason:    string(e.Reason),
	}
}

// FromModelOverrideLog converts an audit entry for insertion
func FromModelOverrideLog(l model.OverrideLog) OverrideLog {
	return OverrideLog{
		ID:                  l.ID,
		RunID:               l.RunID,
		Actor:               l.Actor,
		At:                  l.At,
		Kind:                string(l.Kind),
		AllocationIDs:       l.AllocationIDs,
		PriorSessionID:      l.PriorSessionID,
		NewSessionID:        l.NewSessionID,
		ConstraintViolation: l.ConstraintViolation,
		Reason:              l.Reason,
	}
}
