package statemachine

import (
	"errors"

	"table-order-api/models"
)

// Actors that drive lifecycle transitions
const (
	ActorCashier = "cashier"
	ActorKitchen = "kitchen"
	ActorSystem  = "system"
)

// OrderTransition defines a valid check state change and who can perform it
type OrderTransition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// validOrderTransitions is the authoritative check lifecycle definition
var validOrderTransitions = []OrderTransition{
	// Cashier closes the check at checkout
	{From: models.OrderOpen, To: models.OrderClosed, Actor: ActorCashier},
	// Reset force-closes a stuck check
	{From: models.OrderOpen, To: models.OrderClosed, Actor: ActorSystem},
}

// ItemTransition defines a valid line-item state change and who can perform it
type ItemTransition struct {
	From  models.ItemStatus
	To    models.ItemStatus
	Actor string
}

// validItemTransitions is the authoritative kitchen lifecycle definition
var validItemTransitions = []ItemTransition{
	// Kitchen picks up a pending dish
	{From: models.ItemPending, To: models.ItemPreparing, Actor: ActorKitchen},
	// Kitchen serves a dish, with or without an explicit preparing step
	{From: models.ItemPending, To: models.ItemServed, Actor: ActorKitchen},
	{From: models.ItemPreparing, To: models.ItemServed, Actor: ActorKitchen},
	// Soft-cancel of a not-yet-prepared dish
	{From: models.ItemPending, To: models.ItemCancelled, Actor: ActorSystem},
}

type orderKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

type itemKey struct {
	From  models.ItemStatus
	To    models.ItemStatus
	Actor string
}

// Build lookup maps for O(1) validation
var orderTransitionMap = func() map[orderKey]bool {
	m := make(map[orderKey]bool)
	for _, t := range validOrderTransitions {
		m[orderKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

var itemTransitionMap = func() map[itemKey]bool {
	m := make(map[itemKey]bool)
	for _, t := range validItemTransitions {
		m[itemKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// CanTransitionOrder checks if a given actor can move a check between states
func CanTransitionOrder(from, to models.OrderStatus, actor string) error {
	if orderTransitionMap[orderKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " → " + string(to) +
			" is not allowed for actor '" + actor + "'",
	)
}

// CanTransitionItem checks if a given actor can move a line item between states
func CanTransitionItem(from, to models.ItemStatus, actor string) error {
	if itemTransitionMap[itemKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " → " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidItemFrom(from),
	)
}

// ValidItemTransitionsFrom returns all valid next states for a line item
func ValidItemTransitionsFrom(status models.ItemStatus) []models.ItemStatus {
	var nexts []models.ItemStatus
	seen := map[models.ItemStatus]bool{}
	for _, t := range validItemTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

func describeValidItemFrom(status models.ItemStatus) string {
	nexts := ValidItemTransitionsFrom(status)
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
