package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/rentkart/rentkart-backend/pkg/config"
	"github.com/rentkart/rentkart-backend/pkg/mailer"
	"github.com/rentkart/rentkart-backend/pkg/outbox/payloads"
	"github.com/rentkart/rentkart-backend/pkg/types"
)

var emailFuncs = template.FuncMap{
	"inr": func(cents int) string {
		return types.Paise(cents).DisplayINR()
	},
	"date": func(t *time.Time) string {
		if t == nil {
			return "TBD"
		}
		return t.Format("2 Jan 2006")
	},
}

var quotationTemplate = template.Must(template.New("quotation").Funcs(emailFuncs).Parse(`
<p>Hi {{.CustomerName}},</p>
<p>Your rental quotation <strong>#{{.OrderNumber}}</strong> is ready.</p>
<table cellpadding="6" cellspacing="0" border="1">
  <tr><th align="left">Item</th><th align="right">Qty</th><th align="right">Daily rate</th><th align="right">Amount</th></tr>
  {{range .Items}}<tr><td>{{.ProductName}}</td><td align="right">{{.Quantity}}</td><td align="right">{{inr .UnitPriceCents}}</td><td align="right">{{inr .TotalCents}}</td></tr>
  {{end}}
</table>
<p>Rental period: {{date .RentalStart}} to {{date .RentalEnd}}</p>
<p>Total: <strong>{{inr .TotalCents}}</strong></p>
<p><a href="{{.ConfirmLink}}">Review and confirm your order</a></p>
<p>— Team RentKart</p>
`))

var confirmationTemplate = template.Must(template.New("confirmation").Funcs(emailFuncs).Parse(`
<p>Hi {{.CustomerName}},</p>
<p>Your rental order <strong>#{{.OrderNumber}}</strong> is confirmed.</p>
<table cellpadding="6" cellspacing="0" border="1">
  <tr><th align="left">Item</th><th align="right">Qty</th><th align="right">Daily rate</th><th align="right">Amount</th></tr>
  {{range .Items}}<tr><td>{{.ProductName}}</td><td align="right">{{.Quantity}}</td><td align="right">{{inr .UnitPriceCents}}</td><td align="right">{{inr .TotalCents}}</td></tr>
  {{end}}
</table>
<p>Rental period: {{date .RentalStart}} to {{date .RentalEnd}}</p>
<p>Total: <strong>{{inr .TotalCents}}</strong></p>
<p>We will be in touch before the rental starts.</p>
<p>— Team RentKart</p>
`))

var cancellationTemplate = template.Must(template.New("cancellation").Funcs(emailFuncs).Parse(`
<p>Hi {{.CustomerName}},</p>
<p>Your rental order <strong>#{{.OrderNumber}}</strong> has been cancelled.</p>
{{if .Reason}}<p>Reason: {{.Reason}}</p>{{end}}
<p>If this was unexpected, just reply to this email.</p>
<p>— Team RentKart</p>
`))

var invoiceTemplate = template.Must(template.New("invoice").Funcs(emailFuncs).Parse(`
<p>Hi {{.CustomerName}},</p>
<p>Invoice <strong>#{{.InvoiceNumber}}</strong> for your rental order has been issued.</p>
<p>Amount due: <strong>{{inr .TotalCents}}</strong></p>
<p>— Team RentKart</p>
`))

type quotationEmailData struct {
	payloads.QuotationSentEvent
	ConfirmLink string
}

func buildQuotationEmail(portal config.PortalConfig, payload payloads.QuotationSentEvent) (mailer.Message, error) {
	data := quotationEmailData{
		QuotationSentEvent: payload,
		ConfirmLink:        portal.OrderLink(payload.OrderID.String()),
	}
	body, err := renderEmail(quotationTemplate, data)
	if err != nil {
		return mailer.Message{}, err
	}
	return mailer.Message{
		To:       payload.CustomerEmail,
		Subject:  fmt.Sprintf("Your RentKart quotation #%d", payload.OrderNumber),
		HTMLBody: body,
	}, nil
}

func buildConfirmationEmail(payload payloads.OrderConfirmedEvent) (mailer.Message, error) {
	body, err := renderEmail(confirmationTemplate, payload)
	if err != nil {
		return mailer.Message{}, err
	}
	return mailer.Message{
		To:       payload.CustomerEmail,
		Subject:  fmt.Sprintf("Order #%d confirmed", payload.OrderNumber),
		HTMLBody: body,
	}, nil
}

func buildCancellationEmail(payload payloads.OrderCancelledEvent) (mailer.Message, error) {
	body, err := renderEmail(cancellationTemplate, payload)
	if err != nil {
		return mailer.Message{}, err
	}
	return mailer.Message{
		To:       payload.CustomerEmail,
		Subject:  fmt.Sprintf("Order #%d cancelled", payload.OrderNumber),
		HTMLBody: body,
	}, nil
}

func buildInvoiceEmail(payload payloads.InvoicePostedEvent) (mailer.Message, error) {
	body, err := renderEmail(invoiceTemplate, payload)
	if err != nil {
		return mailer.Message{}, err
	}
	return mailer.Message{
		To:       payload.CustomerEmail,
		Subject:  fmt.Sprintf("RentKart invoice #%d", payload.InvoiceNumber),
		HTMLBody: body,
	}, nil
}

func renderEmail(tpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s email: %w", tpl.Name(), err)
	}
	return buf.String(), nil
}
