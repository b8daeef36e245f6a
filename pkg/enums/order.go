package enums

import (
	"fmt"
	"strings"
)

// OrderStatus tracks fulfilment progress. Transitions between statuses are not
// restricted; any status may be written over any other.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusPicking    OrderStatus = "PICKING"
	OrderStatusPicked     OrderStatus = "PICKED"
	OrderStatusPacking    OrderStatus = "PACKING"
	OrderStatusPacked     OrderStatus = "PACKED"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusPicking,
	OrderStatusPicked,
	OrderStatusPacking,
	OrderStatusPacked,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

func ParseOrderStatus(value string) (OrderStatus, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validOrderStatuses {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

// OrderStatuses lists the statuses in their nominal fulfilment order.
func OrderStatuses() []OrderStatus {
	return append([]OrderStatus(nil), validOrderStatuses...)
}

type OrderPriority string

const (
	OrderPriorityLow    OrderPriority = "LOW"
	OrderPriorityNormal OrderPriority = "NORMAL"
	OrderPriorityHigh   OrderPriority = "HIGH"
	OrderPriorityUrgent OrderPriority = "URGENT"
)

var validOrderPriorities = []OrderPriority{
	OrderPriorityLow,
	OrderPriorityNormal,
	OrderPriorityHigh,
	OrderPriorityUrgent,
}

func (p OrderPriority) String() string {
	return string(p)
}

func (p OrderPriority) IsValid() bool {
	for _, candidate := range validOrderPriorities {
		if candidate == p {
			return true
		}
	}
	return false
}

func ParseOrderPriority(value string) (OrderPriority, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validOrderPriorities {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order priority %q", value)
}

func OrderPriorities() []OrderPriority {
	return append([]OrderPriority(nil), validOrderPriorities...)
}

// OrderType distinguishes stock movements.
type OrderType string

const (
	OrderTypeInbound    OrderType = "INBOUND"
	OrderTypeOutbound   OrderType = "OUTBOUND"
	OrderTypeTransfer   OrderType = "TRANSFER"
	OrderTypeAdjustment OrderType = "ADJUSTMENT"
)

var validOrderTypes = []OrderType{
	OrderTypeInbound,
	OrderTypeOutbound,
	OrderTypeTransfer,
	OrderTypeAdjustment,
}

func (t OrderType) String() string {
	return string(t)
}

func (t OrderType) IsValid() bool {
	for _, candidate := range validOrderTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

func ParseOrderType(value string) (OrderType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validOrderTypes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order type %q", value)
}

func OrderTypes() []OrderType {
	return append([]OrderType(nil), validOrderTypes...)
}
