package allocator

// Rule names shared between the rule implementations, the waitlist
// classifier, and deviation reasons.
const (
	RuleGradeExclusive = "GradeExclusive"
	RuleAvailability   = "Availability"
	RuleCapacity       = "Capacity"
	RuleNoOverlap      = "NoOverlap"

	RuleDayPreference  = "DayPreference"
	RuleTimePreference = "TimePreference"
	RuleBalance        = "Balance"
)
