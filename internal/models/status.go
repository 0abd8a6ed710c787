package models

// OrderStatus is the fulfilment lifecycle of an order. The intended flow is
// pending -> processing -> shipped -> delivered, with cancelled reachable from
// any non-terminal state. The admin update path does not enforce transition
// legality; any known status may overwrite any prior one.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var orderStatuses = map[OrderStatus]struct{}{
	OrderStatusPending:    {},
	OrderStatusProcessing: {},
	OrderStatusShipped:    {},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// Known reports whether s is a member of the status enum.
func (s OrderStatus) Known() bool {
	_, ok := orderStatuses[s]
	return ok
}

// Terminal reports whether s ends the lifecycle in intent. Not enforced on
// writes.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}
