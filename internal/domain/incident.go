// Package domain contains core business entities and interfaces.
package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// IncidentType classifies the affected area of an incident.
type IncidentType string

const (
	TypeInfrastructure IncidentType = "infrastructure"
	TypeSecurity       IncidentType = "security"
	TypeApplication    IncidentType = "application"
)

// AllIncidentTypes returns all valid incident types.
func AllIncidentTypes() []IncidentType {
	return []IncidentType{TypeInfrastructure, TypeSecurity, TypeApplication}
}

// IsValid returns true if the incident type is a known valid value.
func (t IncidentType) IsValid() bool {
	switch t {
	case TypeInfrastructure, TypeSecurity, TypeApplication:
		return true
	default:
		return false
	}
}

// Priority is the ordered urgency of an incident.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// AllPriorities returns all valid priorities, lowest first.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// Rank returns the ordering of the priority; higher is more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// Actor values recorded in history entries.
const (
	ActorSystem = "system"
)

// Description length bounds enforced at creation.
const (
	MinDescriptionLen = 5
	MaxDescriptionLen = 500
)

// HistoryEntry records a single status change of an incident.
// Fields are ordered to minimize memory padding.
type HistoryEntry struct {
	Time  time.Time `json:"time"`
	From  Status    `json:"from,omitempty"` // Empty on the creation entry
	To    Status    `json:"to"`
	Actor string    `json:"actor"`
}

// Incident represents a tracked unit of operational work.
// Fields are ordered to minimize memory padding.
type Incident struct {
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	Type            IncidentType   `json:"type"`
	Priority        Priority       `json:"priority"`
	Description     string         `json:"description"`
	Status          Status         `json:"status"`
	AssignedTo      string         `json:"assigned_to,omitempty"` // Operator ID, empty while unassigned
	History         []HistoryEntry `json:"history"`
	ID              int            `json:"id"`
	EscalationCount int            `json:"escalation_count"`
}

// NewIncident creates a pending incident with its creation history entry.
// Input validation is the caller's responsibility (see ValidateNewIncident).
func NewIncident(id int, typ IncidentType, priority Priority, description string, now time.Time) *Incident {
	return &Incident{
		ID:          id,
		Type:        typ,
		Priority:    priority,
		Description: strings.TrimSpace(description),
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		History: []HistoryEntry{
			{Time: now, To: StatusPending, Actor: ActorSystem},
		},
	}
}

// ValidateNewIncident checks creation input. Returns an error wrapping
// ErrValidation describing every problem found.
func ValidateNewIncident(typ IncidentType, priority Priority, description string) error {
	var problems []string
	if !typ.IsValid() {
		problems = append(problems, fmt.Sprintf("type must be one of: %s", joinTypes()))
	}
	if !priority.IsValid() {
		problems = append(problems, fmt.Sprintf("priority must be one of: %s", joinPriorities()))
	}
	trimmed := strings.TrimSpace(description)
	if len(trimmed) < MinDescriptionLen || len(trimmed) > MaxDescriptionLen {
		problems = append(problems, fmt.Sprintf("description must be %d-%d characters", MinDescriptionLen, MaxDescriptionLen))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

func joinTypes() string {
	parts := make([]string, 0, len(AllIncidentTypes()))
	for _, t := range AllIncidentTypes() {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ", ")
}

func joinPriorities() string {
	parts := make([]string, 0, len(AllPriorities()))
	for _, p := range AllPriorities() {
		parts = append(parts, string(p))
	}
	return strings.Join(parts, ", ")
}

// Clone returns a deep copy of the incident, including its history.
func (i *Incident) Clone() *Incident {
	c := *i
	c.History = slices.Clone(i.History)
	return &c
}

// ApplyTransition mutates the incident to the target status, stamping
// updated_at, appending a history entry and bumping the escalation count
// when the target is escalated. Returns an error wrapping
// ErrInvalidTransition if the state machine forbids the move.
func (i *Incident) ApplyTransition(target Status, actor string, now time.Time) error {
	if !target.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, target)
	}
	if !i.Status.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, i.Status, target)
	}
	i.History = append(i.History, HistoryEntry{
		Time:  now,
		From:  i.Status,
		To:    target,
		Actor: actor,
	})
	i.Status = target
	i.UpdatedAt = now
	if target == StatusEscalated {
		i.EscalationCount++
	}
	return nil
}

// CheckInvariants validates the structural invariants of a persisted
// incident record: valid enum values, non-empty description, history
// consistent with status and escalation count.
func (i *Incident) CheckInvariants() error {
	if i.ID <= 0 {
		return fmt.Errorf("incident id must be positive: %d", i.ID)
	}
	if !i.Type.IsValid() {
		return fmt.Errorf("incident %d: invalid type %q", i.ID, i.Type)
	}
	if !i.Priority.IsValid() {
		return fmt.Errorf("incident %d: invalid priority %q", i.ID, i.Priority)
	}
	if !i.Status.IsValid() {
		return fmt.Errorf("incident %d: invalid status %q", i.ID, i.Status)
	}
	if strings.TrimSpace(i.Description) == "" {
		return fmt.Errorf("incident %d: empty description", i.ID)
	}
	if len(i.History) == 0 {
		return fmt.Errorf("incident %d: empty history", i.ID)
	}
	last := i.History[len(i.History)-1]
	if last.To != i.Status {
		return fmt.Errorf("incident %d: history tail %q does not match status %q", i.ID, last.To, i.Status)
	}
	escalations := 0
	for _, e := range i.History {
		if !e.To.IsValid() {
			return fmt.Errorf("incident %d: invalid history status %q", i.ID, e.To)
		}
		if e.To == StatusEscalated {
			escalations++
		}
	}
	if escalations != i.EscalationCount {
		return fmt.Errorf("incident %d: escalation_count %d does not match history (%d)", i.ID, i.EscalationCount, escalations)
	}
	return nil
}

// Operator represents an assignable human resource.
// Fields are ordered to minimize memory padding.
type Operator struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Roles     []string `json:"roles,omitempty"`
	Available bool     `json:"available"`
}

// CanHandle returns true if the operator holds at least one of the roles
// the dispatch rules require for the incident type.
func (o *Operator) CanHandle(typ IncidentType) bool {
	for _, required := range RolesFor(typ) {
		if slices.Contains(o.Roles, required) {
			return true
		}
	}
	return false
}

// CheckInvariants validates a persisted operator record.
func (o *Operator) CheckInvariants() error {
	if strings.TrimSpace(o.ID) == "" {
		return fmt.Errorf("operator with empty id")
	}
	if strings.TrimSpace(o.Name) == "" {
		return fmt.Errorf("operator %s: empty name", o.ID)
	}
	return nil
}
