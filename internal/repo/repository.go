// Package repo holds the in-memory incident repository backed by the
// durable store, and the lifecycle engine governing status transitions.
// Every mutating operation writes through to the store before returning;
// a failed save rolls the in-memory state back so memory and disk never
// diverge silently.
package repo

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"strings"

	"github.com/tbuendia/incidentctl/internal/domain"
)

var operatorNamePattern = regexp.MustCompile(`^[a-zA-Z0-9\s]{2,50}$`)

// Repository is the in-memory view of all incidents and operators.
// Fields are ordered to minimize memory padding.
type Repository struct {
	store  domain.Store
	clock  domain.Clock
	logger domain.Logger
	col    *domain.Collection
}

// RecoveryReport describes what happened while opening the repository when
// the primary file could not be loaded cleanly.
type RecoveryReport struct {
	LoadErr      error  // The corruption error from the primary file
	BackupID     string // Backup the collection was recovered from
	Recovered    bool   // True when a backup was restored
	StartedEmpty bool   // True when no backup was valid and the collection starts empty
}

// Open loads the collection from the store and constructs the repository.
// On corrupt data it walks the backups most-recent-first and recovers the
// first valid one; if none is valid it starts empty. Either way the data
// loss is reported, never silent. An empty store is seeded with the
// default operator roster.
func Open(store domain.Store, clock domain.Clock, logger domain.Logger) (*Repository, *RecoveryReport, error) {
	if clock == nil {
		clock = domain.RealClock{}
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}

	report := &RecoveryReport{}
	col, err := store.Load()
	if err != nil {
		if !errors.Is(err, domain.ErrCorruptData) {
			return nil, nil, err
		}
		report.LoadErr = err
		logger.Error(0, "store", fmt.Sprintf("primary file corrupt: %v", err))
		col = recoverFromBackups(store, logger, report)
	}

	if len(col.Operators()) == 0 {
		for _, op := range domain.DefaultOperators() {
			col.PutOperator(op)
		}
	}

	return &Repository{store: store, clock: clock, logger: logger, col: col}, report, nil
}

func recoverFromBackups(store domain.Store, logger domain.Logger, report *RecoveryReport) *domain.Collection {
	backups, err := store.ListBackups()
	if err != nil {
		logger.Error(0, "store", fmt.Sprintf("list backups: %v", err))
	}
	for _, b := range backups {
		col, err := store.Restore(b.ID)
		if err != nil {
			logger.Warn(0, "store", fmt.Sprintf("backup %s invalid: %v", b.ID, err))
			continue
		}
		report.Recovered = true
		report.BackupID = b.ID
		logger.Warn(0, "store", fmt.Sprintf("recovered collection from backup %s", b.ID))
		return col
	}
	report.StartedEmpty = true
	logger.Warn(0, "store", "no valid backup found, starting with an empty collection")
	return domain.NewCollection()
}

// Create registers a new pending incident and persists the collection.
func (r *Repository) Create(typ domain.IncidentType, priority domain.Priority, description string) (*domain.Incident, error) {
	if err := domain.ValidateNewIncident(typ, priority, description); err != nil {
		return nil, err
	}

	id := r.col.NextID()
	inc := domain.NewIncident(id, typ, priority, description, r.clock.Now())
	r.col.Put(inc)

	if err := r.store.Save(r.col); err != nil {
		r.col.Remove(id)
		r.col.SetNextID(id)
		return nil, fmt.Errorf("save new incident: %w", err)
	}

	r.logger.Info(id, "lifecycle", fmt.Sprintf("created: %s/%s %q", typ, priority, inc.Description))
	return inc.Clone(), nil
}

// Get retrieves an incident by id. The returned value is a copy; mutation
// flows only through repository operations.
func (r *Repository) Get(id int) (*domain.Incident, error) {
	inc, ok := r.col.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrNotFound, id)
	}
	return inc.Clone(), nil
}

// Filter returns a lazy, restartable sequence of incidents matching the
// filter, in insertion (creation) order. Each yielded incident is a copy.
func (r *Repository) Filter(f domain.Filter) iter.Seq[*domain.Incident] {
	return func(yield func(*domain.Incident) bool) {
		match := f.Predicate()
		for inc := range r.col.Incidents() {
			if !match(inc) {
				continue
			}
			if !yield(inc.Clone()) {
				return
			}
		}
	}
}

// List collects the matching incidents into a slice.
func (r *Repository) List(f domain.Filter) []*domain.Incident {
	var out []*domain.Incident
	for inc := range r.Filter(f) {
		out = append(out, inc)
	}
	return out
}

// Statistics aggregates the current repository contents. Always recomputed.
func (r *Repository) Statistics() domain.Statistics {
	stats := domain.Statistics{
		ByStatus:   make(map[domain.Status]int),
		ByPriority: make(map[domain.Priority]int),
		ByType:     make(map[domain.IncidentType]int),
	}
	for inc := range r.col.Incidents() {
		stats.Total++
		stats.ByStatus[inc.Status]++
		stats.ByPriority[inc.Priority]++
		stats.ByType[inc.Type]++
	}
	stats.OperatorsTotal, stats.OperatorsAvailable = r.col.OperatorCount()
	return stats
}

// AssignOperator assigns an incident to an operator. Assignment moves a
// pending incident to in_progress and re-engages an escalated one; an
// in_progress incident is reassigned in place. Resolved incidents are
// immutable.
func (r *Repository) AssignOperator(incidentID int, operatorID string) (*domain.Incident, error) {
	inc, ok := r.col.Get(incidentID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrNotFound, incidentID)
	}
	op, ok := r.col.Operator(operatorID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrOperatorNotFound, operatorID)
	}
	if inc.Status == domain.StatusResolved {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, inc.Status, domain.StatusInProgress)
	}
	if !op.Available {
		return nil, fmt.Errorf("%w: %s", domain.ErrOperatorUnavailable, operatorID)
	}
	if !op.CanHandle(inc.Type) {
		return nil, fmt.Errorf("%w: %s cannot handle %s", domain.ErrOperatorRoleMismatch, operatorID, inc.Type)
	}

	updated := inc.Clone()
	updated.AssignedTo = operatorID
	now := r.clock.Now()
	if inc.Status == domain.StatusInProgress {
		// Reassignment: no status transition, still a mutation.
		updated.UpdatedAt = now
	} else {
		if err := updated.ApplyTransition(domain.StatusInProgress, operatorID, now); err != nil {
			return nil, err
		}
	}

	if err := r.commit(updated, inc); err != nil {
		return nil, err
	}
	r.logger.Info(incidentID, "assignment", fmt.Sprintf("assigned to %s", operatorID))
	return updated.Clone(), nil
}

// Operators returns the known operators in insertion order, as copies.
func (r *Repository) Operators() []*domain.Operator {
	ops := r.col.Operators()
	out := make([]*domain.Operator, 0, len(ops))
	for _, op := range ops {
		c := *op
		c.Roles = append([]string(nil), op.Roles...)
		out = append(out, &c)
	}
	return out
}

// AddOperator registers a new operator and persists the collection.
func (r *Repository) AddOperator(id, name string, roles []string) error {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, " \t") {
		return fmt.Errorf("%w: operator id must be a non-empty handle without spaces", domain.ErrValidation)
	}
	if !operatorNamePattern.MatchString(strings.TrimSpace(name)) {
		return fmt.Errorf("%w: operator name must be 2-50 letters, digits or spaces", domain.ErrValidation)
	}
	if _, ok := r.col.Operator(id); ok {
		return fmt.Errorf("%w: %s", domain.ErrOperatorExists, id)
	}

	r.col.PutOperator(&domain.Operator{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Roles:     append([]string(nil), roles...),
		Available: true,
	})
	if err := r.store.Save(r.col); err != nil {
		return fmt.Errorf("save operator: %w", err)
	}
	r.logger.Info(0, "operators", fmt.Sprintf("added operator %s (%s)", id, strings.Join(roles, ", ")))
	return nil
}

// SetOperatorAvailable flips an operator's availability and persists.
func (r *Repository) SetOperatorAvailable(id string, available bool) error {
	op, ok := r.col.Operator(id)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrOperatorNotFound, id)
	}
	prev := op.Available
	op.Available = available
	if err := r.store.Save(r.col); err != nil {
		op.Available = prev
		return fmt.Errorf("save operator: %w", err)
	}
	r.logger.Info(0, "operators", fmt.Sprintf("operator %s available=%t", id, available))
	return nil
}

// RestoreBackup replaces the in-memory collection with a backup snapshot
// and persists it as the new primary (rotating the current primary into a
// backup first, like any save).
func (r *Repository) RestoreBackup(id string) error {
	col, err := r.store.Restore(id)
	if err != nil {
		return err
	}
	prev := r.col
	r.col = col
	if err := r.store.Save(r.col); err != nil {
		r.col = prev
		return fmt.Errorf("save restored collection: %w", err)
	}
	r.logger.Warn(0, "store", fmt.Sprintf("collection restored from backup %s", id))
	return nil
}

// ListBackups returns the retained backups, most recent first.
func (r *Repository) ListBackups() ([]domain.BackupInfo, error) {
	return r.store.ListBackups()
}

// Len returns the number of incidents.
func (r *Repository) Len() int {
	return r.col.Len()
}

// commit swaps the updated incident into the collection and writes
// through; on persistence failure the previous record is restored.
func (r *Repository) commit(updated, prev *domain.Incident) error {
	r.col.Put(updated)
	if err := r.store.Save(r.col); err != nil {
		r.col.Put(prev)
		return fmt.Errorf("save incident %d: %w", updated.ID, err)
	}
	return nil
}
