package orders

import (
	"testing"

	"github.com/rentkart/rentkart-backend/pkg/enums"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from enums.OrderStatus
		to   enums.OrderStatus
		want bool
	}{
		{"draft to quotation", enums.OrderStatusDraft, enums.OrderStatusQuotation, true},
		{"draft to quotation_sent", enums.OrderStatusDraft, enums.OrderStatusQuotationSent, true},
		{"quotation to quotation_sent", enums.OrderStatusQuotation, enums.OrderStatusQuotationSent, true},
		{"quotation_sent to confirmed", enums.OrderStatusQuotationSent, enums.OrderStatusConfirmed, true},
		{"confirmed to invoiced", enums.OrderStatusConfirmed, enums.OrderStatusInvoiced, true},
		{"draft to confirmed skips quotation", enums.OrderStatusDraft, enums.OrderStatusConfirmed, false},
		{"quotation to invoiced", enums.OrderStatusQuotation, enums.OrderStatusInvoiced, false},
		{"confirmed back to draft", enums.OrderStatusConfirmed, enums.OrderStatusDraft, false},
		{"invoiced is terminal", enums.OrderStatusInvoiced, enums.OrderStatusCancelled, false},
		{"cancelled is terminal", enums.OrderStatusCancelled, enums.OrderStatusDraft, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanTransition(tc.from, tc.to); got != tc.want {
				t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestCancellableFromEveryNonTerminalState(t *testing.T) {
	nonTerminal := []enums.OrderStatus{
		enums.OrderStatusDraft,
		enums.OrderStatusQuotation,
		enums.OrderStatusQuotationSent,
		enums.OrderStatusConfirmed,
	}
	for _, from := range nonTerminal {
		if !CanTransition(from, enums.OrderStatusCancelled) {
			t.Fatalf("expected %s to be cancellable", from)
		}
	}
}

func TestValidateTransitionErrors(t *testing.T) {
	err := ValidateTransition(enums.OrderStatusInvoiced, enums.OrderStatusConfirmed)
	if err == nil {
		t.Fatal("expected error")
	}
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	err = ValidateTransition(enums.OrderStatus("sale_order"), enums.OrderStatusConfirmed)
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
