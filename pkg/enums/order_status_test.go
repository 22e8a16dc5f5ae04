package enums

import "testing"

func TestNormalizeOrderStatusFoldsLegacySpellings(t *testing.T) {
	tests := []struct {
		raw  string
		want OrderStatus
	}{
		{"draft", OrderStatusDraft},
		{"Quotation Sent", OrderStatusQuotationSent},
		{"  confirmed  ", OrderStatusConfirmed},
		{"Sale Order", OrderStatusConfirmed},
		{"sale_order", OrderStatusConfirmed},
		{"CANCELLED", OrderStatusCancelled},
		{"canceled", OrderStatusCancelled},
	}
	for _, tt := range tests {
		got, err := NormalizeOrderStatus(tt.raw)
		if err != nil {
			t.Fatalf("NormalizeOrderStatus(%q): %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("NormalizeOrderStatus(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeOrderStatusRejectsUnknownValues(t *testing.T) {
	for _, raw := range []string{"", "shipped", "Quotation Maybe"} {
		if _, err := NormalizeOrderStatus(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestOrderStatusMatchesFilter(t *testing.T) {
	if !OrderStatusQuotationSent.MatchesFilter("quotation") {
		t.Fatal("quotation_sent should match the quotation filter key")
	}
	if !OrderStatusQuotationSent.MatchesFilter("QUOTATION") {
		t.Fatal("filter matching should be case-insensitive")
	}
	if !OrderStatusDraft.MatchesFilter("all") {
		t.Fatal("the all key should match every status")
	}
	if OrderStatusDraft.MatchesFilter("confirmed") {
		t.Fatal("draft should not match the confirmed filter key")
	}
	if !OrderStatusQuotationSent.MatchesFilter("Quotation Sent") {
		t.Fatal("filter keys should fold spaces like status spellings")
	}
}

func TestOrderStatusesMatching(t *testing.T) {
	matched := OrderStatusesMatching("quotation")
	if len(matched) != 2 {
		t.Fatalf("expected quotation and quotation_sent, got %v", matched)
	}
	if matched[0] != OrderStatusQuotation || matched[1] != OrderStatusQuotationSent {
		t.Fatalf("unexpected statuses: %v", matched)
	}
	if got := OrderStatusesMatching("all"); len(got) != len(validOrderStatuses) {
		t.Fatalf("the all key should select every status, got %v", got)
	}
	if got := OrderStatusesMatching("shipped"); len(got) != 0 {
		t.Fatalf("unrecognized key should select nothing, got %v", got)
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	if OrderStatusConfirmed.IsTerminal() {
		t.Fatal("confirmed is not terminal; invoicing is still allowed")
	}
	if !OrderStatusInvoiced.IsTerminal() || !OrderStatusCancelled.IsTerminal() {
		t.Fatal("invoiced and cancelled are terminal")
	}
}
