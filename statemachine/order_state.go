package statemachine

import (
	"reelbites-api/apperr"
	"reelbites-api/models"
)

// transitions is the authoritative adjacency map of the fulfillment
// lifecycle. PENDING is the unique initial state; DELIVERED and
// CANCELLED are terminal (no outgoing edges).
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPending:        {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed:      {models.StatusPreparing, models.StatusCancelled},
	models.StatusPreparing:      {models.StatusOutForDelivery},
	models.StatusOutForDelivery: {models.StatusDelivered},
	models.StatusDelivered:      {},
	models.StatusCancelled:      {},
}

// ValidTransitionsFrom returns all legal next states from a given state.
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	return transitions[status]
}

// IsTerminal reports whether no transition leads out of status.
func IsTerminal(status models.OrderStatus) bool {
	return len(transitions[status]) == 0
}

// CanTransition checks whether the requested edge exists. Skipping
// states and moving out of a terminal state both fail.
func CanTransition(from, to models.OrderStatus) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return apperr.New(apperr.InvalidTransition,
		string(from)+" -> "+string(to)+" is not a valid transition. Valid next states: "+describeValidFrom(from))
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := transitions[status]
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// AllTransitions returns the full edge set for documentation endpoints.
func AllTransitions() map[models.OrderStatus][]models.OrderStatus {
	out := make(map[models.OrderStatus][]models.OrderStatus, len(transitions))
	for from, tos := range transitions {
		out[from] = append([]models.OrderStatus(nil), tos...)
	}
	return out
}
