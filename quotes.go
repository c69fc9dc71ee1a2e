package luno

import (
	"net/url"

	"github.com/shopspring/decimal"
)

// Quote is a time-bounded, price-locked offer to exchange a fixed amount.
// Its lifecycle is entirely server-side: it ends exercised, discarded or
// expired, and this struct only reflects what the last response said.
type Quote struct {
	ID            string          `json:"id"`
	Pair          TradingPair     `json:"pair"`
	Type          MarketOrderType `json:"type"`
	BaseAmount    decimal.Decimal `json:"base_amount"`
	CounterAmount decimal.Decimal `json:"counter_amount"`
	CreatedAt     int64           `json:"created_at"`
	ExpiresAt     int64           `json:"expires_at"`
	Exercised     bool            `json:"exercised"`
	Discarded     bool            `json:"discarded"`
}

// CreateQuoteBuilder accumulates form parameters for requesting a quote.
type CreateQuoteBuilder struct {
	client *Client
	params url.Values
}

// CreateQuote starts a quote request to buy or sell the given amount of
// base currency on a pair.
func (c *Client) CreateQuote(pair TradingPair, orderType MarketOrderType, baseAmount decimal.Decimal) *CreateQuoteBuilder {
	return &CreateQuoteBuilder{
		client: c,
		params: url.Values{
			"pair":        {pair.String()},
			"type":        {orderType.String()},
			"base_amount": {baseAmount.String()},
		},
	}
}

// WithBaseAccount sets the account to use for the base currency leg.
func (b *CreateQuoteBuilder) WithBaseAccount(id string) *CreateQuoteBuilder {
	b.params.Set("base_account_id", id)
	return b
}

// WithCounterAccount sets the account to use for the counter currency leg.
func (b *CreateQuoteBuilder) WithCounterAccount(id string) *CreateQuoteBuilder {
	b.params.Set("counter_account_id", id)
	return b
}

// Post requests the quote.
func (b *CreateQuoteBuilder) Post() (*Quote, error) {
	var q Quote
	if err := b.client.postForm(b.client.urls.quotes(), b.params, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// GetQuote returns a quote by its id.
func (c *Client) GetQuote(id string) (*Quote, error) {
	var q Quote
	if err := c.get(c.urls.quote(id), &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// ExerciseQuote exercises a quote before it expires, performing the locked
// exchange.
func (c *Client) ExerciseQuote(id string) (*Quote, error) {
	var q Quote
	if err := c.putForm(c.urls.quote(id), url.Values{}, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// DiscardQuote discards a quote before it expires.
func (c *Client) DiscardQuote(id string) (*Quote, error) {
	var q Quote
	if err := c.delete(c.urls.quote(id), &q); err != nil {
		return nil, err
	}
	return &q, nil
}
