package luno

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Account is a wallet for a single currency. It is created once remotely
// and referenced by id thereafter; the client keeps no local registry.
type Account struct {
	ID       string   `json:"id"`
	Currency Currency `json:"currency"`
	Name     string   `json:"name"`
}

// Balance is the funds position of one account.
type Balance struct {
	AccountID   string          `json:"account_id"`
	Asset       Currency        `json:"asset"`
	Balance     decimal.Decimal `json:"balance"`
	Reserved    decimal.Decimal `json:"reserved"`
	Unconfirmed decimal.Decimal `json:"unconfirmed"`
	Name        string          `json:"name"`
}

type listBalancesResponse struct {
	Balance []Balance `json:"balance"`
}

// UpdateAccountNameResponse reports whether a rename was accepted.
type UpdateAccountNameResponse struct {
	Success bool `json:"success"`
}

// CreateAccount creates an additional account for the given currency.
func (c *Client) CreateAccount(currency Currency, name string) (*Account, error) {
	params := url.Values{
		"currency": {currency.String()},
		"name":     {name},
	}
	var acc Account
	if err := c.postForm(c.urls.accounts(), params, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// UpdateAccountName renames an existing account.
func (c *Client) UpdateAccountName(accountID, name string) (*UpdateAccountNameResponse, error) {
	params := url.Values{"name": {name}}
	var resp UpdateAccountNameResponse
	if err := c.putForm(c.urls.accountName(accountID), params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListBalancesBuilder accumulates optional filters for listing account
// balances.
type ListBalancesBuilder struct {
	client *Client
	assets []Currency
}

// ListBalances starts a balance query across all accounts.
func (c *Client) ListBalances() *ListBalancesBuilder {
	return &ListBalancesBuilder{client: c}
}

// WithAssets restricts the result to accounts holding the given currencies.
func (b *ListBalancesBuilder) WithAssets(assets ...Currency) *ListBalancesBuilder {
	b.assets = assets
	return b
}

// List performs the query.
func (b *ListBalancesBuilder) List() ([]Balance, error) {
	u := b.client.urls.balance()
	if len(b.assets) > 0 {
		codes := make([]string, len(b.assets))
		for i, a := range b.assets {
			codes[i] = a.String()
		}
		u.RawQuery = url.Values{"assets": {strings.Join(codes, ",")}}.Encode()
	}
	var resp listBalancesResponse
	if err := b.client.get(u, &resp); err != nil {
		return nil, err
	}
	return resp.Balance, nil
}
