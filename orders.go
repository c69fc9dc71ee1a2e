package luno

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// LimitOrderType is the side of a limit order: an ASK sells base currency,
// a BID buys it.
type LimitOrderType string

const (
	LimitOrderAsk LimitOrderType = "ASK"
	LimitOrderBid LimitOrderType = "BID"
)

func (t LimitOrderType) String() string {
	return string(t)
}

func (t *LimitOrderType) UnmarshalJSON(data []byte) error {
	v, err := parseEnum("limit order type", data, string(LimitOrderAsk), string(LimitOrderBid))
	if err != nil {
		return err
	}
	*t = LimitOrderType(v)
	return nil
}

// MarketOrderType is the direction of a market order.
type MarketOrderType string

const (
	MarketOrderBuy  MarketOrderType = "BUY"
	MarketOrderSell MarketOrderType = "SELL"
)

func (t MarketOrderType) String() string {
	return string(t)
}

func (t *MarketOrderType) UnmarshalJSON(data []byte) error {
	v, err := parseEnum("market order type", data, string(MarketOrderBuy), string(MarketOrderSell))
	if err != nil {
		return err
	}
	*t = MarketOrderType(v)
	return nil
}

// OrderState is the exchange-authoritative lifecycle state of an order.
// The client never infers or transitions state locally.
type OrderState string

const (
	OrderStatePending  OrderState = "PENDING"
	OrderStateComplete OrderState = "COMPLETE"
)

func (s OrderState) String() string {
	return string(s)
}

func (s *OrderState) UnmarshalJSON(data []byte) error {
	v, err := parseEnum("order state", data, string(OrderStatePending), string(OrderStateComplete))
	if err != nil {
		return err
	}
	*s = OrderState(v)
	return nil
}

// StopDirection is the price-crossing condition that triggers a stop order.
type StopDirection string

const (
	StopDirectionBelow             StopDirection = "BELOW"
	StopDirectionAbove             StopDirection = "ABOVE"
	StopDirectionRelativeLastTrade StopDirection = "RELATIVE_LAST_TRADE"
)

func (d StopDirection) String() string {
	return string(d)
}

func (d *StopDirection) UnmarshalJSON(data []byte) error {
	v, err := parseEnum("stop direction", data,
		string(StopDirectionBelow), string(StopDirectionAbove), string(StopDirectionRelativeLastTrade))
	if err != nil {
		return err
	}
	*d = StopDirection(v)
	return nil
}

func parseEnum(name string, data []byte, valid ...string) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", &Error{Kind: KindDecode, Message: name + " is not a string", Err: err}
	}
	for _, v := range valid {
		if s == v {
			return s, nil
		}
	}
	return "", &Error{Kind: KindDecode, Message: fmt.Sprintf("unknown %s %q", name, s)}
}

// Order is an order as last reported by the exchange.
type Order struct {
	Base                decimal.Decimal `json:"base"`
	Counter             decimal.Decimal `json:"counter"`
	CreationTimestamp   int64           `json:"creation_timestamp"`
	ExpirationTimestamp int64           `json:"expiration_timestamp"`
	CompletedTimestamp  int64           `json:"completed_timestamp"`
	FeeBase             decimal.Decimal `json:"fee_base"`
	FeeCounter          decimal.Decimal `json:"fee_counter"`
	LimitPrice          decimal.Decimal `json:"limit_price"`
	LimitVolume         decimal.Decimal `json:"limit_volume"`
	OrderID             string          `json:"order_id"`
	Pair                TradingPair     `json:"pair"`
	State               OrderState      `json:"state"`
	Type                LimitOrderType  `json:"type"`
}

type listOrdersResponse struct {
	Orders []Order `json:"orders"`
}

// PostOrderResponse acknowledges a newly placed order.
type PostOrderResponse struct {
	OrderID string `json:"order_id"`
}

// StopOrderResponse reports whether a cancellation request was accepted.
type StopOrderResponse struct {
	Success bool `json:"success"`
}

// ListOrdersBuilder accumulates optional filters for listing recently
// placed orders. It issues no request until List is called and may be
// re-executed; listing mutates no server state.
type ListOrdersBuilder struct {
	client *Client
	query  url.Values
}

// ListOrders starts a list-orders query with no filters applied.
func (c *Client) ListOrders() *ListOrdersBuilder {
	return &ListOrdersBuilder{client: c, query: url.Values{}}
}

// FilterPair restricts results to one trading pair.
func (b *ListOrdersBuilder) FilterPair(pair TradingPair) *ListOrdersBuilder {
	b.query.Set("pair", pair.String())
	return b
}

// FilterState restricts results to orders in the given state.
func (b *ListOrdersBuilder) FilterState(state OrderState) *ListOrdersBuilder {
	b.query.Set("state", state.String())
	return b
}

// FilterCreatedBefore restricts results to orders created before the given
// epoch-millisecond timestamp.
func (b *ListOrdersBuilder) FilterCreatedBefore(timestamp int64) *ListOrdersBuilder {
	b.query.Set("created_before", strconv.FormatInt(timestamp, 10))
	return b
}

// FilterLimit caps the number of returned orders.
func (b *ListOrdersBuilder) FilterLimit(limit int64) *ListOrdersBuilder {
	b.query.Set("limit", strconv.FormatInt(limit, 10))
	return b
}

// List performs the query. Absence of any matching orders yields an empty
// slice, not an error.
func (b *ListOrdersBuilder) List() ([]Order, error) {
	var resp listOrdersResponse
	if err := b.client.get(b.client.urls.listOrders(b.query), &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// GetOrder returns an order by its id.
func (c *Client) GetOrder(orderID string) (*Order, error) {
	var o Order
	if err := c.get(c.urls.order(orderID), &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// PostLimitOrderBuilder accumulates form parameters for placing a limit
// order. Post issues exactly one POST; the builder never retries.
type PostLimitOrderBuilder struct {
	client *Client
	params url.Values
}

// LimitOrder starts a limit order for the given pair, side, volume of base
// currency and limit price.
func (c *Client) LimitOrder(pair TradingPair, orderType LimitOrderType, volume, price decimal.Decimal) *PostLimitOrderBuilder {
	return &PostLimitOrderBuilder{
		client: c,
		params: url.Values{
			"pair":   {pair.String()},
			"type":   {orderType.String()},
			"volume": {volume.String()},
			"price":  {price.String()},
		},
	}
}

// WithBaseAccount sets the account to use for the base currency leg.
func (b *PostLimitOrderBuilder) WithBaseAccount(id string) *PostLimitOrderBuilder {
	b.params.Set("base_account_id", id)
	return b
}

// WithCounterAccount sets the account to use for the counter currency leg.
func (b *PostLimitOrderBuilder) WithCounterAccount(id string) *PostLimitOrderBuilder {
	b.params.Set("counter_account_id", id)
	return b
}

// WithStopPrice makes this a stop order triggering at the given price.
func (b *PostLimitOrderBuilder) WithStopPrice(price decimal.Decimal) *PostLimitOrderBuilder {
	b.params.Set("stop_price", price.String())
	return b
}

// WithStopDirection sets the price-crossing condition for a stop order.
func (b *PostLimitOrderBuilder) WithStopDirection(direction StopDirection) *PostLimitOrderBuilder {
	b.params.Set("stop_direction", direction.String())
	return b
}

// PostOnly asks the exchange to reject the order rather than let any part
// of it execute immediately as a taker.
func (b *PostLimitOrderBuilder) PostOnly() *PostLimitOrderBuilder {
	b.params.Set("post_only", "true")
	return b
}

// Post places the order.
func (b *PostLimitOrderBuilder) Post() (*PostOrderResponse, error) {
	var resp PostOrderResponse
	if err := b.client.postForm(b.client.urls.postOrder(), b.params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PostMarketOrderBuilder accumulates form parameters for placing a market
// order.
type PostMarketOrderBuilder struct {
	client *Client
	params url.Values
}

// MarketOrder starts a market order. For a BUY the volume is the amount of
// counter currency to spend; for a SELL it is the amount of base currency
// to sell. The two sides submit different parameter names and the exchange
// treats them differently, so the mapping is fixed here.
func (c *Client) MarketOrder(pair TradingPair, orderType MarketOrderType, volume decimal.Decimal) *PostMarketOrderBuilder {
	params := url.Values{
		"pair": {pair.String()},
		"type": {orderType.String()},
	}
	switch orderType {
	case MarketOrderBuy:
		params.Set("counter_volume", volume.String())
	case MarketOrderSell:
		params.Set("base_volume", volume.String())
	}
	return &PostMarketOrderBuilder{client: c, params: params}
}

// WithBaseAccount sets the account to use for the base currency leg.
func (b *PostMarketOrderBuilder) WithBaseAccount(id string) *PostMarketOrderBuilder {
	b.params.Set("base_account_id", id)
	return b
}

// WithCounterAccount sets the account to use for the counter currency leg.
func (b *PostMarketOrderBuilder) WithCounterAccount(id string) *PostMarketOrderBuilder {
	b.params.Set("counter_account_id", id)
	return b
}

// Post places the order.
func (b *PostMarketOrderBuilder) Post() (*PostOrderResponse, error) {
	var resp PostOrderResponse
	if err := b.client.postForm(b.client.urls.marketOrder(), b.params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StopOrder requests cancellation of the order with the given id.
func (c *Client) StopOrder(orderID string) (*StopOrderResponse, error) {
	params := url.Values{"order_id": {orderID}}
	var resp StopOrderResponse
	if err := c.postForm(c.urls.stopOrder(), params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
