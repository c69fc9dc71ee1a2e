package luno

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is an asset code supported by the exchange. The wire form is the
// exact uppercase code; parsing is case-sensitive and rejects anything
// outside the closed set.
type Currency string

const (
	AUD Currency = "AUD"
	BCH Currency = "BCH"
	BTC Currency = "BTC"
	ETH Currency = "ETH"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	IDR Currency = "IDR"
	LTC Currency = "LTC"
	MYR Currency = "MYR"
	NGN Currency = "NGN"
	UGX Currency = "UGX"
	XBT Currency = "XBT"
	XRP Currency = "XRP"
	ZAR Currency = "ZAR"
	ZMW Currency = "ZMW"
)

var currencies = map[Currency]struct{}{
	AUD: {}, BCH: {}, BTC: {}, ETH: {}, EUR: {}, GBP: {}, IDR: {}, LTC: {},
	MYR: {}, NGN: {}, UGX: {}, XBT: {}, XRP: {}, ZAR: {}, ZMW: {},
}

// ParseCurrency converts a wire string into a Currency.
func ParseCurrency(s string) (Currency, error) {
	if _, ok := currencies[Currency(s)]; !ok {
		return "", &Error{Kind: KindDecode, Message: fmt.Sprintf("unknown currency %q", s)}
	}
	return Currency(s), nil
}

func (c Currency) String() string {
	return string(c)
}

func (c *Currency) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &Error{Kind: KindDecode, Message: "currency is not a string", Err: err}
	}
	v, err := ParseCurrency(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// TradingPair is a market symbol, a base currency priced in a counter
// currency. Same closed-set wire contract as Currency.
type TradingPair string

const (
	BCHXBT TradingPair = "BCHXBT"
	ETHAUD TradingPair = "ETHAUD"
	ETHEUR TradingPair = "ETHEUR"
	ETHGBP TradingPair = "ETHGBP"
	ETHIDR TradingPair = "ETHIDR"
	ETHMYR TradingPair = "ETHMYR"
	ETHNGN TradingPair = "ETHNGN"
	ETHXBT TradingPair = "ETHXBT"
	ETHZAR TradingPair = "ETHZAR"
	LTCMYR TradingPair = "LTCMYR"
	LTCNGN TradingPair = "LTCNGN"
	LTCXBT TradingPair = "LTCXBT"
	LTCZAR TradingPair = "LTCZAR"
	XBTAUD TradingPair = "XBTAUD"
	XBTEUR TradingPair = "XBTEUR"
	XBTGBP TradingPair = "XBTGBP"
	XBTIDR TradingPair = "XBTIDR"
	XBTMYR TradingPair = "XBTMYR"
	XBTNGN TradingPair = "XBTNGN"
	XBTSGD TradingPair = "XBTSGD"
	XBTUGX TradingPair = "XBTUGX"
	XBTZAR TradingPair = "XBTZAR"
	XBTZMW TradingPair = "XBTZMW"
	XRPMYR TradingPair = "XRPMYR"
	XRPNGN TradingPair = "XRPNGN"
	XRPXBT TradingPair = "XRPXBT"
	XRPZAR TradingPair = "XRPZAR"
)

var tradingPairs = map[TradingPair]struct{}{
	BCHXBT: {}, ETHAUD: {}, ETHEUR: {}, ETHGBP: {}, ETHIDR: {}, ETHMYR: {},
	ETHNGN: {}, ETHXBT: {}, ETHZAR: {}, LTCMYR: {}, LTCNGN: {}, LTCXBT: {},
	LTCZAR: {}, XBTAUD: {}, XBTEUR: {}, XBTGBP: {}, XBTIDR: {}, XBTMYR: {},
	XBTNGN: {}, XBTSGD: {}, XBTUGX: {}, XBTZAR: {}, XBTZMW: {}, XRPMYR: {},
	XRPNGN: {}, XRPXBT: {}, XRPZAR: {},
}

// ParseTradingPair converts a wire string into a TradingPair.
func ParseTradingPair(s string) (TradingPair, error) {
	if _, ok := tradingPairs[TradingPair(s)]; !ok {
		return "", &Error{Kind: KindDecode, Message: fmt.Sprintf("unknown trading pair %q", s)}
	}
	return TradingPair(s), nil
}

func (p TradingPair) String() string {
	return string(p)
}

func (p *TradingPair) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &Error{Kind: KindDecode, Message: "trading pair is not a string", Err: err}
	}
	v, err := ParseTradingPair(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Ticker is a point-in-time market snapshot for one trading pair.
type Ticker struct {
	Ask                 decimal.Decimal `json:"ask"`
	Bid                 decimal.Decimal `json:"bid"`
	LastTrade           decimal.Decimal `json:"last_trade"`
	Pair                TradingPair     `json:"pair"`
	Rolling24HourVolume decimal.Decimal `json:"rolling_24_hour_volume"`
	Timestamp           int64           `json:"timestamp"`
}

type listTickersResponse struct {
	Tickers []Ticker `json:"tickers"`
}

// OrderbookEntry is one price level in the order book.
type OrderbookEntry struct {
	Price  decimal.Decimal `json:"price"`
	Volume decimal.Decimal `json:"volume"`
}

// Orderbook holds the bids and asks for a trading pair. The exchange sends
// asks ascending and bids descending by price; the slices preserve that
// order without re-sorting.
type Orderbook struct {
	Timestamp int64            `json:"timestamp"`
	Asks      []OrderbookEntry `json:"asks"`
	Bids      []OrderbookEntry `json:"bids"`
}

// Trade is a single market trade.
type Trade struct {
	IsBuy     bool            `json:"is_buy"`
	Price     decimal.Decimal `json:"price"`
	Timestamp int64           `json:"timestamp"`
	Volume    decimal.Decimal `json:"volume"`
}

type listTradesResponse struct {
	Trades []Trade `json:"trades"`
}

// GetTicker returns the current ticker for a trading pair.
func (c *Client) GetTicker(pair TradingPair) (*Ticker, error) {
	var t Ticker
	if err := c.get(c.urls.ticker(pair), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTickers returns tickers for all available trading pairs.
func (c *Client) GetTickers() ([]Ticker, error) {
	var resp listTickersResponse
	if err := c.get(c.urls.tickers(), &resp); err != nil {
		return nil, err
	}
	return resp.Tickers, nil
}

// GetOrderbook returns the full list of bids and asks for a trading pair.
func (c *Client) GetOrderbook(pair TradingPair) (*Orderbook, error) {
	var ob Orderbook
	if err := c.get(c.urls.orderbook(pair), &ob); err != nil {
		return nil, err
	}
	return &ob, nil
}

// GetOrderbookTop returns the top 100 bids and asks for a trading pair.
func (c *Client) GetOrderbookTop(pair TradingPair) (*Orderbook, error) {
	var ob Orderbook
	if err := c.get(c.urls.orderbookTop(pair), &ob); err != nil {
		return nil, err
	}
	return &ob, nil
}

// GetTrades returns the most recent trades for a trading pair, limited to
// 100 by the exchange. An empty market yields an empty slice.
func (c *Client) GetTrades(pair TradingPair) ([]Trade, error) {
	var resp listTradesResponse
	if err := c.get(c.urls.trades(pair), &resp); err != nil {
		return nil, err
	}
	return resp.Trades, nil
}
