package luno

import (
	"net/url"
	"strconv"
	"strings"
)

// urlBuilder maps logical operations to fully-qualified request URLs
// against a fixed API origin. Identifiers placed in the path (order ids,
// account ids, quote ids) are percent-encoded here so callers never have
// to think about escaping.
type urlBuilder struct {
	base *url.URL
}

func newURLBuilder(raw string) (*urlBuilder, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &Error{Kind: KindConfig, Message: "invalid base URL " + strconv.Quote(raw), Err: err}
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, &Error{Kind: KindConfig, Message: "base URL " + strconv.Quote(raw) + " must be absolute"}
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return &urlBuilder{base: u}, nil
}

// endpoint appends the given path segments to the API base and attaches the
// query, if any. The returned URL is a copy; the base is never mutated.
func (b *urlBuilder) endpoint(query url.Values, segments ...string) *url.URL {
	u := *b.base
	u.RawPath = u.EscapedPath()
	for _, seg := range segments {
		u.Path += "/" + seg
		u.RawPath += "/" + url.PathEscape(seg)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return &u
}

func pairQuery(pair TradingPair) url.Values {
	return url.Values{"pair": {pair.String()}}
}

func (b *urlBuilder) ticker(pair TradingPair) *url.URL {
	return b.endpoint(pairQuery(pair), "ticker")
}

func (b *urlBuilder) tickers() *url.URL {
	return b.endpoint(nil, "tickers")
}

func (b *urlBuilder) orderbook(pair TradingPair) *url.URL {
	return b.endpoint(pairQuery(pair), "orderbook")
}

func (b *urlBuilder) orderbookTop(pair TradingPair) *url.URL {
	return b.endpoint(pairQuery(pair), "orderbook_top")
}

func (b *urlBuilder) trades(pair TradingPair) *url.URL {
	return b.endpoint(pairQuery(pair), "trades")
}

func (b *urlBuilder) accounts() *url.URL {
	return b.endpoint(nil, "accounts")
}

func (b *urlBuilder) accountName(accountID string) *url.URL {
	return b.endpoint(nil, "accounts", accountID, "name")
}

func (b *urlBuilder) balance() *url.URL {
	return b.endpoint(nil, "balance")
}

func (b *urlBuilder) transactions(accountID string, minRow, maxRow int64) *url.URL {
	q := url.Values{
		"min_row": {strconv.FormatInt(minRow, 10)},
		"max_row": {strconv.FormatInt(maxRow, 10)},
	}
	return b.endpoint(q, "accounts", accountID, "transactions")
}

func (b *urlBuilder) pendingTransactions(accountID string) *url.URL {
	return b.endpoint(nil, "accounts", accountID, "pending")
}

func (b *urlBuilder) beneficiaries() *url.URL {
	return b.endpoint(nil, "beneficiaries")
}

func (b *urlBuilder) listOrders(query url.Values) *url.URL {
	return b.endpoint(query, "listorders")
}

func (b *urlBuilder) postOrder() *url.URL {
	return b.endpoint(nil, "postorder")
}

func (b *urlBuilder) marketOrder() *url.URL {
	return b.endpoint(nil, "marketorder")
}

func (b *urlBuilder) stopOrder() *url.URL {
	return b.endpoint(nil, "stoporder")
}

func (b *urlBuilder) order(orderID string) *url.URL {
	return b.endpoint(nil, "orders", orderID)
}

func (b *urlBuilder) listTrades(pair TradingPair, extra url.Values) *url.URL {
	q := pairQuery(pair)
	for k, vs := range extra {
		q[k] = vs
	}
	return b.endpoint(q, "listtrades")
}

func (b *urlBuilder) feeInfo(pair TradingPair) *url.URL {
	return b.endpoint(pairQuery(pair), "fee_info")
}

func (b *urlBuilder) quotes() *url.URL {
	return b.endpoint(nil, "quotes")
}

func (b *urlBuilder) quote(id string) *url.URL {
	return b.endpoint(nil, "quotes", id)
}

func (b *urlBuilder) lightningSend() *url.URL {
	return b.endpoint(nil, "lightning", "send")
}

func (b *urlBuilder) lightningReceive() *url.URL {
	return b.endpoint(nil, "lightning", "receive")
}

func (b *urlBuilder) lightningReceiveLookup(id string) *url.URL {
	return b.endpoint(nil, "lightning", "receive", id)
}
