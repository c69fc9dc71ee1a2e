package luno

import (
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// OwnTrade is one of the authenticated account's own trades. Type is the
// side of the order placed to participate in the trade; IsBuy reports
// whether the taker side was a bid.
type OwnTrade struct {
	Base       decimal.Decimal `json:"base"`
	Counter    decimal.Decimal `json:"counter"`
	FeeBase    decimal.Decimal `json:"fee_base"`
	FeeCounter decimal.Decimal `json:"fee_counter"`
	IsBuy      bool            `json:"is_buy"`
	OrderID    string          `json:"order_id"`
	Pair       TradingPair     `json:"pair"`
	Price      decimal.Decimal `json:"price"`
	Timestamp  int64           `json:"timestamp"`
	Type       LimitOrderType  `json:"type"`
	Volume     decimal.Decimal `json:"volume"`
}

type listOwnTradesResponse struct {
	Trades []OwnTrade `json:"trades"`
}

// FeeInfo is the account's fees and 30 day trading volume for one pair.
type FeeInfo struct {
	MakerFee        decimal.Decimal `json:"maker_fee"`
	TakerFee        decimal.Decimal `json:"taker_fee"`
	ThirtyDayVolume decimal.Decimal `json:"thirty_day_volume"`
}

// ListOwnTradesBuilder accumulates optional filters for listing the
// account's own trades on one pair.
type ListOwnTradesBuilder struct {
	client *Client
	pair   TradingPair
	query  url.Values
}

// ListOwnTrades starts a query for the account's trades on a pair, sorted
// oldest first.
func (c *Client) ListOwnTrades(pair TradingPair) *ListOwnTradesBuilder {
	return &ListOwnTradesBuilder{client: c, pair: pair, query: url.Values{}}
}

// Since restricts results to trades at or after the given epoch-millisecond
// timestamp.
func (b *ListOwnTradesBuilder) Since(timestamp int64) *ListOwnTradesBuilder {
	b.query.Set("since", strconv.FormatInt(timestamp, 10))
	return b
}

// Limit caps the number of returned trades.
func (b *ListOwnTradesBuilder) Limit(count int64) *ListOwnTradesBuilder {
	b.query.Set("limit", strconv.FormatInt(count, 10))
	return b
}

// List performs the query. No trades yields an empty slice.
func (b *ListOwnTradesBuilder) List() ([]OwnTrade, error) {
	var resp listOwnTradesResponse
	if err := b.client.get(b.client.urls.listTrades(b.pair, b.query), &resp); err != nil {
		return nil, err
	}
	return resp.Trades, nil
}

// GetFeeInfo returns the account's fees and 30 day volume for a pair.
func (c *Client) GetFeeInfo(pair TradingPair) (*FeeInfo, error) {
	var fi FeeInfo
	if err := c.get(c.urls.feeInfo(pair), &fi); err != nil {
		return nil, err
	}
	return &fi, nil
}
