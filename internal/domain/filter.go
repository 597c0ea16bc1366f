package domain

import (
	"regexp"
	"strings"
	"time"
)

// Filter specifies criteria for listing incidents. Zero values mean "any".
// Fields are ordered to minimize memory padding.
type Filter struct {
	Since      time.Time    // Created at or after
	Until      time.Time    // Created at or before
	Text       string       // Description pattern (regexp; literal fallback on bad syntax)
	AssignedTo string       // Operator ID
	Status     Status       // Exact status
	Priority   Priority     // Exact priority
	Type       IncidentType // Exact type
}

// Predicate compiles the filter into a matching function. The text pattern
// is compiled once; an invalid regexp degrades to a case-insensitive
// literal substring match.
func (f Filter) Predicate() func(*Incident) bool {
	var re *regexp.Regexp
	var literal string
	if f.Text != "" {
		compiled, err := regexp.Compile("(?i)" + f.Text)
		if err != nil {
			literal = strings.ToLower(f.Text)
		} else {
			re = compiled
		}
	}

	return func(inc *Incident) bool {
		if f.Status != "" && inc.Status != f.Status {
			return false
		}
		if f.Priority != "" && inc.Priority != f.Priority {
			return false
		}
		if f.Type != "" && inc.Type != f.Type {
			return false
		}
		if f.AssignedTo != "" && inc.AssignedTo != f.AssignedTo {
			return false
		}
		if !f.Since.IsZero() && inc.CreatedAt.Before(f.Since) {
			return false
		}
		if !f.Until.IsZero() && inc.CreatedAt.After(f.Until) {
			return false
		}
		if re != nil && !re.MatchString(inc.Description) {
			return false
		}
		if literal != "" && !strings.Contains(strings.ToLower(inc.Description), literal) {
			return false
		}
		return true
	}
}

// Statistics aggregates the current repository contents. Recomputed on
// demand, never cached across mutations.
type Statistics struct {
	ByStatus           map[Status]int       `json:"by_status"`
	ByPriority         map[Priority]int     `json:"by_priority"`
	ByType             map[IncidentType]int `json:"by_type"`
	Total              int                  `json:"total"`
	OperatorsTotal     int                  `json:"operators_total"`
	OperatorsAvailable int                  `json:"operators_available"`
}
