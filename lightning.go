package luno

import (
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// LightningWithdrawal acknowledges a Lightning Network payment.
type LightningWithdrawal struct {
	InvoiceID      string `json:"invoice_id"`
	PaymentRequest string `json:"payment_request"`
}

// LightningReceiveRequest is a newly created Lightning invoice.
type LightningReceiveRequest struct {
	InvoiceID      string `json:"invoice_id"`
	PaymentRequest string `json:"payment_request"`
}

// LightningInvoiceStatus is the settlement state of a Lightning invoice.
type LightningInvoiceStatus struct {
	PaymentRequest string          `json:"payment_request"`
	SettledAmount  decimal.Decimal `json:"settled_amount"`
	Status         string          `json:"status"`
}

// LightningSendBuilder accumulates form parameters for paying a Lightning
// invoice.
type LightningSendBuilder struct {
	client *Client
	params url.Values
}

// LightningSend starts a payment of the given BOLT11 payment request.
func (c *Client) LightningSend(paymentRequest string) *LightningSendBuilder {
	return &LightningSendBuilder{
		client: c,
		params: url.Values{"payment_request": {paymentRequest}},
	}
}

// WithCurrency sets the currency to pay from.
func (b *LightningSendBuilder) WithCurrency(currency Currency) *LightningSendBuilder {
	b.params.Set("currency", currency.String())
	return b
}

// WithDescription attaches a description to the payment.
func (b *LightningSendBuilder) WithDescription(description string) *LightningSendBuilder {
	b.params.Set("description", description)
	return b
}

// WithExternalID attaches a caller-chosen id for reconciliation.
func (b *LightningSendBuilder) WithExternalID(externalID string) *LightningSendBuilder {
	b.params.Set("external_id", externalID)
	return b
}

// Send performs the payment.
func (b *LightningSendBuilder) Send() (*LightningWithdrawal, error) {
	var w LightningWithdrawal
	if err := b.client.postForm(b.client.urls.lightningSend(), b.params, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// LightningReceiveBuilder accumulates form parameters for creating a
// Lightning invoice.
type LightningReceiveBuilder struct {
	client *Client
	params url.Values
}

// LightningReceive starts an invoice for the given amount.
func (c *Client) LightningReceive(amount decimal.Decimal) *LightningReceiveBuilder {
	return &LightningReceiveBuilder{
		client: c,
		params: url.Values{"amount": {amount.String()}},
	}
}

// WithCurrency sets the currency of the invoice.
func (b *LightningReceiveBuilder) WithCurrency(currency Currency) *LightningReceiveBuilder {
	b.params.Set("currency", currency.String())
	return b
}

// WithDescription attaches a description to the invoice.
func (b *LightningReceiveBuilder) WithDescription(description string) *LightningReceiveBuilder {
	b.params.Set("description", description)
	return b
}

// WithExpiresAt sets the epoch-millisecond expiry of the invoice.
func (b *LightningReceiveBuilder) WithExpiresAt(expiresAt int64) *LightningReceiveBuilder {
	b.params.Set("expires_at", strconv.FormatInt(expiresAt, 10))
	return b
}

// Create creates the invoice.
func (b *LightningReceiveBuilder) Create() (*LightningReceiveRequest, error) {
	var r LightningReceiveRequest
	if err := b.client.postForm(b.client.urls.lightningReceive(), b.params, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetLightningReceive looks up a previously created invoice by its id.
func (c *Client) GetLightningReceive(id string) (*LightningInvoiceStatus, error) {
	var s LightningInvoiceStatus
	if err := c.get(c.urls.lightningReceiveLookup(id), &s); err != nil {
		return nil, err
	}
	return &s, nil
}
