package services

import (
	"strings"

	"schoolstore/internal/core/domain/model/order"
)

// statusRule maps any carrier phrase containing one of its fragments to a
// canonical order status. Rules are evaluated in order; the first match wins.
type statusRule struct {
	fragments []string
	status    order.Status
}

// CourierStatusMapper normalizes the free-text status strings carriers send
// in tracking webhooks into canonical order statuses. Matching is
// case-insensitive substring matching against a fixed ordered rule set;
// carrier phrasing varies wildly ("Pickup Scheduled", "In Transit",
// "RTO Initiated") but the fragments below cover the families seen in
// practice. Unrecognized text maps to nothing so the caller can log and
// skip without touching the order.
type CourierStatusMapper struct {
	rules []statusRule
}

// NewCourierStatusMapper creates a mapper with the standard rule set.
func NewCourierStatusMapper() CourierStatusMapper {
	return CourierStatusMapper{
		rules: []statusRule{
			{fragments: []string{"pickup"}, status: order.StatusProcessing},
			{fragments: []string{"transit", "dispatch", "out for delivery", "out-for-delivery"},
				status: order.StatusOutForDelivery},
			{fragments: []string{"delivered"}, status: order.StatusDelivered},
			{fragments: []string{"cancel", "return", "rto"}, status: order.StatusCancelled},
		},
	}
}

// Map normalizes a carrier status string. The second return value is false
// when no rule matches, in which case the status must be ignored.
func (m CourierStatusMapper) Map(carrierStatus string) (order.Status, bool) {
	normalized := strings.ToLower(strings.TrimSpace(carrierStatus))
	if normalized == "" {
		return order.StatusUnknown, false
	}

	for _, rule := range m.rules {
		for _, fragment := range rule.fragments {
			if strings.Contains(normalized, fragment) {
				return rule.status, true
			}
		}
	}
	return order.StatusUnknown, false
}
