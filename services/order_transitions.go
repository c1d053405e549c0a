package services

import "tableserve/entity"

// Forward-only status machine. CANCELLED is reachable from every
// non-terminal state; COMPLETED and CANCELLED accept nothing further.
var orderTransitions = map[string][]string{
	entity.OrderPending:   {entity.OrderPreparing, entity.OrderCancelled},
	entity.OrderPreparing: {entity.OrderReady, entity.OrderCancelled},
	entity.OrderReady:     {entity.OrderServed, entity.OrderCancelled},
	entity.OrderServed:    {entity.OrderCompleted, entity.OrderCancelled},
	entity.OrderCompleted: {},
	entity.OrderCancelled: {},
}

func IsValidStatus(status string) bool {
	_, ok := orderTransitions[status]
	return ok
}

func IsTerminalStatus(status string) bool {
	return status == entity.OrderCompleted || status == entity.OrderCancelled
}

func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
