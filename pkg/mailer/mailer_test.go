package mailer

import (
	"context"
	"errors"
	"testing"

	gomail "gopkg.in/gomail.v2"

	"github.com/rentkart/rentkart-backend/pkg/config"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(config.SMTPConfig{From: "orders@rentkart.example"}, nil); err == nil {
		t.Fatal("expected error for missing host")
	}
	if _, err := New(config.SMTPConfig{Host: "smtp.example.test"}, nil); err == nil {
		t.Fatal("expected error for missing from address")
	}
	m, err := New(config.SMTPConfig{Host: "smtp.example.test", Port: 465, From: "orders@rentkart.example"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil {
		t.Fatal("expected mailer")
	}
}

func TestSend(t *testing.T) {
	d := &fakeDialer{}
	m := &Mailer{dialer: d, from: "orders@rentkart.example"}

	err := m.Send(context.Background(), Message{
		To:       "asha@example.test",
		Subject:  "Quotation for order #1042",
		HTMLBody: "<p>Total: Rs 2500.00</p>",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(d.sent))
	}
	if got := d.sent[0].GetHeader("To"); len(got) != 1 || got[0] != "asha@example.test" {
		t.Fatalf("unexpected recipient %v", got)
	}
}

func TestSend_MissingFields(t *testing.T) {
	m := &Mailer{dialer: &fakeDialer{}, from: "orders@rentkart.example"}
	if err := m.Send(context.Background(), Message{Subject: "x"}); err == nil {
		t.Fatal("expected error for missing recipient")
	}
	if err := m.Send(context.Background(), Message{To: "a@b.test"}); err == nil {
		t.Fatal("expected error for missing subject")
	}
}

func TestSend_DialerFailure(t *testing.T) {
	m := &Mailer{dialer: &fakeDialer{err: errors.New("connection refused")}, from: "orders@rentkart.example"}
	err := m.Send(context.Background(), Message{To: "a@b.test", Subject: "x", HTMLBody: "y"})
	if err == nil {
		t.Fatal("expected delivery error")
	}
}
