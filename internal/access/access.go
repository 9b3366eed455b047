// Package access decides whether a principal may act on a resource.
// It is a pure decision layer: nothing here loads or mutates state
// beyond the narrow Store lookups, and every mutating handler must
// consult it before writing.
package access

type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
)

// Safe reports whether the action is read-only.
func (a Action) Safe() bool {
	return a == ActionRead
}

// Owned is a resource with a direct owner, i.e. the trip aggregate root.
type Owned interface {
	GetOwnerID() uint
}

// TripScoped is a resource that belongs to a trip, directly or via
// being the trip itself.
type TripScoped interface {
	GetTripID() uint
}

// Store answers membership questions for the evaluator. The database
// manager implements it.
type Store interface {
	TripOwner(tripID uint) (uint, bool)
	IsMember(tripID uint, userID uint) bool
}

type Evaluator struct {
	store Store
}

func NewEvaluator(store Store) *Evaluator {
	return &Evaluator{store: store}
}

// Allowed evaluates the rule chain in order: unauthenticated deny,
// direct owner, owning trip's owner, membership, safe-action fallback.
// Deleting a directly-owned aggregate is reserved for its owner, so
// membership never grants trip deletion.
func (e *Evaluator) Allowed(userID uint, res any, action Action) bool {
	if userID == 0 {
		return false
	}

	if o, ok := res.(Owned); ok {
		if o.GetOwnerID() == userID {
			return true
		}

		if action == ActionDelete {
			return false
		}
	}

	if s, ok := res.(TripScoped); ok {
		owner, found := e.store.TripOwner(s.GetTripID())

		if !found {
			return false
		}

		if owner == userID {
			return true
		}

		return e.store.IsMember(s.GetTripID(), userID)
	}

	return action.Safe()
}
