package models

import "fmt"

// OrderStatus is the closed set of order workflow states.
type OrderStatus int

const (
	OrderPendingApproval OrderStatus = iota + 1
	OrderApproved
	OrderShipped
	OrderDelivered
	OrderCancelled
)

var orderStatusLabels = map[OrderStatus]string{
	OrderPendingApproval: "Pending Approval",
	OrderApproved:        "Approved",
	OrderShipped:         "Shipped",
	OrderDelivered:       "Delivered",
	OrderCancelled:       "Cancelled",
}

// orderTransitions lists the states reachable from each state. Forward moves
// may skip intermediate states; terminal states only accept themselves.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPendingApproval: {OrderPendingApproval, OrderApproved, OrderShipped, OrderDelivered, OrderCancelled},
	OrderApproved:        {OrderApproved, OrderShipped, OrderDelivered, OrderCancelled},
	OrderShipped:         {OrderShipped, OrderDelivered, OrderCancelled},
	OrderDelivered:       {OrderDelivered},
	OrderCancelled:       {OrderCancelled},
}

// OrderStatuses returns every state in workflow order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderPendingApproval, OrderApproved, OrderShipped, OrderDelivered, OrderCancelled}
}

func (s OrderStatus) String() string {
	if label, ok := orderStatusLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("OrderStatus(%d)", int(s))
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseOrderStatus matches a label exactly.
func ParseOrderStatus(label string) (OrderStatus, bool) {
	for status, l := range orderStatusLabels {
		if l == label {
			return status, true
		}
	}
	return 0, false
}

func (s OrderStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid order status %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *OrderStatus) UnmarshalText(text []byte) error {
	status, ok := ParseOrderStatus(string(text))
	if !ok {
		return fmt.Errorf("unknown order status %q", string(text))
	}
	*s = status
	return nil
}
