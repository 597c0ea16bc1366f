// Package escalation decides which incidents must be escalated
// automatically and issues the transitions through the lifecycle engine.
package escalation

import (
	"fmt"
	"time"

	"github.com/tbuendia/incidentctl/internal/domain"
	"github.com/tbuendia/incidentctl/internal/repo"
)

// Rule decides whether a single incident should be escalated at the given
// time. Rules only see pending and in_progress incidents.
type Rule interface {
	ShouldEscalate(inc *domain.Incident, now time.Time) bool
}

// AgeRule escalates incidents whose time since last update exceeds a
// priority-dependent threshold.
type AgeRule struct {
	thresholds map[domain.Priority]time.Duration
}

// NewAgeRule builds an AgeRule from the escalation configuration.
func NewAgeRule(cfg domain.EscalationConfig) AgeRule {
	thresholds := make(map[domain.Priority]time.Duration, 4)
	for _, p := range domain.AllPriorities() {
		thresholds[p] = cfg.Threshold(p)
	}
	return AgeRule{thresholds: thresholds}
}

// ShouldEscalate reports whether the incident has aged past its threshold.
func (r AgeRule) ShouldEscalate(inc *domain.Incident, now time.Time) bool {
	threshold := r.thresholds[inc.Priority]
	if threshold <= 0 {
		return false
	}
	return now.Sub(inc.UpdatedAt) > threshold
}

// CriticalUnassignedRule is the fast path for critical incidents: a
// critical incident that was never assigned is escalated as soon as it
// outlives a minimal grace period.
type CriticalUnassignedRule struct {
	grace time.Duration
}

// NewCriticalUnassignedRule builds the fast-path rule with the configured
// grace period.
func NewCriticalUnassignedRule(cfg domain.EscalationConfig) CriticalUnassignedRule {
	return CriticalUnassignedRule{grace: time.Duration(cfg.CriticalGrace)}
}

// ShouldEscalate reports whether the unassigned-critical fast path applies.
func (r CriticalUnassignedRule) ShouldEscalate(inc *domain.Incident, now time.Time) bool {
	if inc.Priority != domain.PriorityCritical {
		return false
	}
	if inc.Status != domain.StatusPending || inc.AssignedTo != "" {
		return false
	}
	return now.Sub(inc.CreatedAt) > r.grace
}

// AnyRule escalates when any of its rules does.
type AnyRule []Rule

// ShouldEscalate reports whether any rule matches.
func (rules AnyRule) ShouldEscalate(inc *domain.Incident, now time.Time) bool {
	for _, r := range rules {
		if r.ShouldEscalate(inc, now) {
			return true
		}
	}
	return false
}

// Policy is the configured automatic escalation policy.
type Policy struct {
	rule   Rule
	logger domain.Logger
}

// NewPolicy builds the default policy: age thresholds plus the
// unassigned-critical fast path.
func NewPolicy(cfg domain.EscalationConfig, logger domain.Logger) *Policy {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Policy{
		rule: AnyRule{
			NewAgeRule(cfg),
			NewCriticalUnassignedRule(cfg),
		},
		logger: logger,
	}
}

// NewPolicyWithRule builds a policy around a custom rule.
func NewPolicyWithRule(rule Rule, logger domain.Logger) *Policy {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Policy{rule: rule, logger: logger}
}

// EvaluateAll scans all pending and in_progress incidents in creation
// order and escalates the matching ones through the lifecycle engine with
// the system actor. Returns the ids escalated; on a persistence failure
// the ids escalated so far are returned alongside the error.
func (p *Policy) EvaluateAll(r *repo.Repository, now time.Time) ([]int, error) {
	var due []int
	for inc := range r.Filter(domain.Filter{}) {
		if !inc.Status.IsActive() {
			continue
		}
		if p.rule.ShouldEscalate(inc, now) {
			due = append(due, inc.ID)
		}
	}

	escalated := make([]int, 0, len(due))
	for _, id := range due {
		if _, err := r.Transition(id, domain.StatusEscalated, domain.ActorSystem); err != nil {
			return escalated, fmt.Errorf("escalate incident %d: %w", id, err)
		}
		p.logger.Warn(id, "escalation", "escalated automatically by policy")
		escalated = append(escalated, id)
	}
	return escalated, nil
}
