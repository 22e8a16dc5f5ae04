package orders

import (
	"fmt"

	"github.com/rentkart/rentkart-backend/pkg/enums"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
)

// transitions is the single source of truth for legal order status moves.
// Every entry point (portal confirm, admin confirm, send-quotation, invoice
// creation, cancel) goes through CanTransition before writing a status.
var transitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusDraft: {
		enums.OrderStatusQuotation,
		enums.OrderStatusQuotationSent,
		enums.OrderStatusCancelled,
	},
	enums.OrderStatusQuotation: {
		enums.OrderStatusQuotationSent,
		enums.OrderStatusCancelled,
	},
	enums.OrderStatusQuotationSent: {
		enums.OrderStatusConfirmed,
		enums.OrderStatusCancelled,
	},
	enums.OrderStatusConfirmed: {
		enums.OrderStatusInvoiced,
		enums.OrderStatusCancelled,
	},
	enums.OrderStatusInvoiced:  {},
	enums.OrderStatusCancelled: {},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to enums.OrderStatus) bool {
	for _, candidate := range transitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns a coded error when the move is not allowed.
func ValidateTransition(from, to enums.OrderStatus) error {
	if !from.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", from))
	}
	if !to.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", to))
	}
	if !CanTransition(from, to) {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order cannot move from %s to %s", from, to))
	}
	return nil
}
