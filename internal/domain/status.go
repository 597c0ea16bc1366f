package domain

// Status represents the lifecycle state of an incident.
type Status string

const (
	StatusPending    Status = "pending"     // Created, awaiting assignment
	StatusInProgress Status = "in_progress" // Operator working
	StatusResolved   Status = "resolved"    // Closed; no further transitions
	StatusEscalated  Status = "escalated"   // Forced up, awaiting re-engagement
)

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusInProgress,
		StatusResolved,
		StatusEscalated,
	}
}

// transitions defines the allowed status transitions.
// Flow: pending → in_progress → resolved
//
//	↓           ↓↑
//	└──────→ escalated ──→ resolved
var transitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusEscalated},
	StatusInProgress: {StatusResolved, StatusEscalated},
	StatusEscalated:  {StatusInProgress, StatusResolved},
	StatusResolved:   {},
}

// CanTransitionTo returns true if the status can transition to the target status.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, ok := transitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if the status is a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusResolved
}

// IsActive returns true if the incident still needs operator attention
// and is subject to automatic escalation.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusInProgress
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusResolved:
		return "Resolved"
	case StatusEscalated:
		return "Escalated"
	default:
		return string(s)
	}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusEscalated:
		return true
	default:
		return false
	}
}
