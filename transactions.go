package luno

import "github.com/shopspring/decimal"

// Transaction is an entry in an account's ledger. Numbered transactions
// are immutable once assigned a row index; pending transactions carry no
// stable index and may be reordered or dropped between polls, so callers
// must not assume identity across calls.
type Transaction struct {
	RowIndex       int64           `json:"row_index"`
	Timestamp      int64           `json:"timestamp"`
	Balance        decimal.Decimal `json:"balance"`
	Available      decimal.Decimal `json:"available"`
	BalanceDelta   decimal.Decimal `json:"balance_delta"`
	AvailableDelta decimal.Decimal `json:"available_delta"`
	Currency       Currency        `json:"currency"`
	Description    string          `json:"description"`
}

type listTransactionsResponse struct {
	ID           string        `json:"id"`
	Transactions []Transaction `json:"transactions"`
}

type listPendingTransactionsResponse struct {
	ID      string        `json:"id"`
	Pending []Transaction `json:"pending"`
}

// ListTransactions returns the numbered ledger entries for an account in
// the half-open row range [minRow, maxRow). Row numbering starts at 1.
func (c *Client) ListTransactions(accountID string, minRow, maxRow int64) ([]Transaction, error) {
	var resp listTransactionsResponse
	if err := c.get(c.urls.transactions(accountID, minRow, maxRow), &resp); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

// ListPendingTransactions returns the unconfirmed ledger entries for an
// account.
func (c *Client) ListPendingTransactions(accountID string) ([]Transaction, error) {
	var resp listPendingTransactionsResponse
	if err := c.get(c.urls.pendingTransactions(accountID), &resp); err != nil {
		return nil, err
	}
	return resp.Pending, nil
}
