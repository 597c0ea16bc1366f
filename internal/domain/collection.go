package domain

import (
	"fmt"
	"iter"
)

// Collection is the in-memory repository state: all incidents in creation
// order, the known operators and the id counter. It is owned by a single
// process for its lifetime and mutated only through repository operations.
type Collection struct {
	incidents map[int]*Incident
	operators map[string]*Operator
	order     []int    // Incident insertion order
	opOrder   []string // Operator insertion order
	nextID    int
}

// NewCollection returns an empty collection with the id counter at 1.
func NewCollection() *Collection {
	return &Collection{
		incidents: make(map[int]*Incident),
		operators: make(map[string]*Operator),
		nextID:    1,
	}
}

// RebuildCollection reconstructs a collection from persisted records.
// Incidents and operators keep the given order. The id counter is repaired
// upward when it trails the highest stored id. Duplicate ids are an error.
func RebuildCollection(nextID int, incidents []*Incident, operators []*Operator) (*Collection, error) {
	c := NewCollection()
	if nextID > 1 {
		c.nextID = nextID
	}
	for _, inc := range incidents {
		if _, ok := c.incidents[inc.ID]; ok {
			return nil, fmt.Errorf("duplicate incident id %d", inc.ID)
		}
		c.Put(inc)
	}
	for _, op := range operators {
		if _, ok := c.operators[op.ID]; ok {
			return nil, fmt.Errorf("duplicate operator id %s", op.ID)
		}
		c.PutOperator(op)
	}
	return c, nil
}

// Snapshot returns the id counter and the incidents and operators in
// insertion order, for persistence.
func (c *Collection) Snapshot() (nextID int, incidents []*Incident, operators []*Operator) {
	incidents = make([]*Incident, 0, len(c.order))
	for _, id := range c.order {
		incidents = append(incidents, c.incidents[id])
	}
	operators = make([]*Operator, 0, len(c.opOrder))
	for _, id := range c.opOrder {
		operators = append(operators, c.operators[id])
	}
	return c.nextID, incidents, operators
}

// NextID returns the next incident id and advances the counter.
func (c *Collection) NextID() int {
	id := c.nextID
	c.nextID++
	return id
}

// SetNextID resets the id counter. Used to roll back a failed creation.
func (c *Collection) SetNextID(id int) {
	c.nextID = id
}

// Get retrieves an incident by id.
func (c *Collection) Get(id int) (*Incident, bool) {
	inc, ok := c.incidents[id]
	return inc, ok
}

// Put inserts or replaces an incident, preserving insertion order.
func (c *Collection) Put(inc *Incident) {
	if _, ok := c.incidents[inc.ID]; !ok {
		c.order = append(c.order, inc.ID)
		if inc.ID >= c.nextID {
			c.nextID = inc.ID + 1
		}
	}
	c.incidents[inc.ID] = inc
}

// Remove deletes an incident. Used to roll back a failed creation.
func (c *Collection) Remove(id int) {
	if _, ok := c.incidents[id]; !ok {
		return
	}
	delete(c.incidents, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of incidents.
func (c *Collection) Len() int {
	return len(c.order)
}

// Incidents iterates incidents in insertion (creation) order.
// The sequence is restartable: each range re-walks the collection.
func (c *Collection) Incidents() iter.Seq[*Incident] {
	return func(yield func(*Incident) bool) {
		for _, id := range c.order {
			if !yield(c.incidents[id]) {
				return
			}
		}
	}
}

// Operator retrieves an operator by id.
func (c *Collection) Operator(id string) (*Operator, bool) {
	op, ok := c.operators[id]
	return op, ok
}

// PutOperator inserts or replaces an operator, preserving insertion order.
func (c *Collection) PutOperator(op *Operator) {
	if _, ok := c.operators[op.ID]; !ok {
		c.opOrder = append(c.opOrder, op.ID)
	}
	c.operators[op.ID] = op
}

// Operators returns the operators in insertion order.
func (c *Collection) Operators() []*Operator {
	ops := make([]*Operator, 0, len(c.opOrder))
	for _, id := range c.opOrder {
		ops = append(ops, c.operators[id])
	}
	return ops
}

// OperatorCount returns total and available operator counts.
func (c *Collection) OperatorCount() (total, available int) {
	total = len(c.opOrder)
	for _, op := range c.operators {
		if op.Available {
			available++
		}
	}
	return total, available
}
