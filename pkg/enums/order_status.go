package enums

import (
	"fmt"
	"strings"
)

// OrderStatus tracks the lifecycle of a rental order.
type OrderStatus string

const (
	OrderStatusDraft         OrderStatus = "draft"
	OrderStatusQuotation     OrderStatus = "quotation"
	OrderStatusQuotationSent OrderStatus = "quotation_sent"
	OrderStatusConfirmed     OrderStatus = "confirmed"
	OrderStatusInvoiced      OrderStatus = "invoiced"
	OrderStatusCancelled     OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusDraft,
	OrderStatusQuotation,
	OrderStatusQuotationSent,
	OrderStatusConfirmed,
	OrderStatusInvoiced,
	OrderStatusCancelled,
}

// legacyOrderStatuses maps historical spellings found in imported data onto the
// canonical set. Lookups happen after lowercasing and space-to-underscore folding.
var legacyOrderStatuses = map[string]OrderStatus{
	"sale_order": OrderStatusConfirmed,
	"canceled":   OrderStatusCancelled,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from the status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusInvoiced || s == OrderStatusCancelled
}

// MatchesFilter reports whether the status matches a dashboard filter key. The
// match is deliberately loose: the key is folded like a status ("Quotation
// Sent" becomes quotation_sent) and compared as a substring so that
// "quotation" selects both quotation and quotation_sent columns.
func (s OrderStatus) MatchesFilter(key string) bool {
	key = foldStatus(key)
	if key == "" || key == "all" {
		return true
	}
	return strings.Contains(string(s), key)
}

// OrderStatusesMatching returns the canonical statuses selected by a dashboard
// filter key. An unrecognized key selects nothing.
func OrderStatusesMatching(key string) []OrderStatus {
	matched := make([]OrderStatus, 0, len(validOrderStatuses))
	for _, status := range validOrderStatuses {
		if status.MatchesFilter(key) {
			matched = append(matched, status)
		}
	}
	return matched
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

// NormalizeOrderStatus folds the differently cased and punctuated status strings
// that exist in historical records ("Quotation Sent", "Sale Order", "sale_order")
// into the canonical enum. Unrecognized values are rejected, never defaulted.
func NormalizeOrderStatus(raw string) (OrderStatus, error) {
	folded := foldStatus(raw)
	if folded == "" {
		return "", fmt.Errorf("order status is empty")
	}
	if status, err := ParseOrderStatus(folded); err == nil {
		return status, nil
	}
	if status, ok := legacyOrderStatuses[folded]; ok {
		return status, nil
	}
	return "", fmt.Errorf("unrecognized order status %q", raw)
}

func foldStatus(raw string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "_")
}
