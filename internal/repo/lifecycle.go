package repo

import (
	"fmt"

	"github.com/tbuendia/incidentctl/internal/domain"
)

// Transition moves an incident to the target status through the state
// machine: the change is validated and applied to a copy, the history
// entry appended and the escalation count bumped when entering escalated,
// then the whole collection is written through. On persistence failure the
// in-memory record is rolled back and the error surfaced.
func (r *Repository) Transition(id int, target domain.Status, actor string) (*domain.Incident, error) {
	inc, ok := r.col.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrNotFound, id)
	}

	updated := inc.Clone()
	if err := updated.ApplyTransition(target, actor, r.clock.Now()); err != nil {
		return nil, err
	}

	if err := r.commit(updated, inc); err != nil {
		return nil, err
	}

	r.logger.Info(id, "lifecycle", fmt.Sprintf("%s -> %s by %s", inc.Status, target, actor))
	return updated.Clone(), nil
}
