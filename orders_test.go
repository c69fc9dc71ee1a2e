package luno

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestLimitOrderPostsFormFields(t *testing.T) {
	var (
		gotPath string
		gotForm url.Values
	)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm: %v", err)
		}
		gotPath = r.URL.Path
		gotForm = r.PostForm
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("content type = %q", ct)
		}
		w.Write([]byte(`{"order_id":"BXMC2CJ7HNB88U4"}`))
	})

	resp, err := client.
		LimitOrder(XBTZAR, LimitOrderAsk, dec(t, "0.0005"), dec(t, "211000")).
		WithStopPrice(dec(t, "210000")).
		WithStopDirection(StopDirectionRelativeLastTrade).
		PostOnly().
		Post()
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if resp.OrderID != "BXMC2CJ7HNB88U4" {
		t.Errorf("order id = %q", resp.OrderID)
	}
	if gotPath != "/api/1/postorder" {
		t.Errorf("path = %q", gotPath)
	}

	want := map[string]string{
		"pair":           "XBTZAR",
		"type":           "ASK",
		"volume":         "0.0005",
		"price":          "211000",
		"stop_price":     "210000",
		"stop_direction": "RELATIVE_LAST_TRADE",
		"post_only":      "true",
	}
	for k, v := range want {
		if got := gotForm.Get(k); got != v {
			t.Errorf("form[%s] = %q, want %q", k, got, v)
		}
	}
	if len(gotForm) != len(want) {
		t.Errorf("unexpected extra form fields: %v", gotForm)
	}
}

func TestMarketOrderBuySubmitsCounterVolume(t *testing.T) {
	var gotForm url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotForm = r.PostForm
		w.Write([]byte(`{"order_id":"BX1"}`))
	})

	if _, err := client.MarketOrder(XBTZAR, MarketOrderBuy, dec(t, "5000")).Post(); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if got := gotForm.Get("counter_volume"); got != "5000" {
		t.Errorf("counter_volume = %q, want 5000", got)
	}
	if gotForm.Has("base_volume") {
		t.Errorf("BUY order must not submit base_volume: %v", gotForm)
	}
}

func TestMarketOrderSellSubmitsBaseVolume(t *testing.T) {
	var gotForm url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotForm = r.PostForm
		w.Write([]byte(`{"order_id":"BX2"}`))
	})

	if _, err := client.MarketOrder(ETHZAR, MarketOrderSell, dec(t, "0.75")).Post(); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if got := gotForm.Get("base_volume"); got != "0.75" {
		t.Errorf("base_volume = %q, want 0.75", got)
	}
	if gotForm.Has("counter_volume") {
		t.Errorf("SELL order must not submit counter_volume: %v", gotForm)
	}
}

func TestListOrdersAppliesFilters(t *testing.T) {
	var gotQuery url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"orders":[{
			"order_id":"BX3","pair":"XBTZAR","state":"COMPLETE","type":"BID",
			"limit_price":"211000.00000001","limit_volume":"0.0005",
			"creation_timestamp":1390000000000
		}]}`))
	})

	orders, err := client.ListOrders().
		FilterState(OrderStateComplete).
		FilterCreatedBefore(1390168800000).
		List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if got := gotQuery.Get("state"); got != "COMPLETE" {
		t.Errorf("state = %q", got)
	}
	if got := gotQuery.Get("created_before"); got != "1390168800000" {
		t.Errorf("created_before = %q", got)
	}
	if len(gotQuery) != 2 {
		t.Errorf("unexpected extra query parameters: %v", gotQuery)
	}

	if len(orders) != 1 {
		t.Fatalf("got %d orders", len(orders))
	}
	if orders[0].State != OrderStateComplete || orders[0].Type != LimitOrderBid {
		t.Errorf("decoded order = %+v", orders[0])
	}
	if got := orders[0].LimitPrice.String(); got != "211000.00000001" {
		t.Errorf("limit price = %q, decimal fidelity lost", got)
	}
}

func TestListOrdersNoFiltersSendsNoQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if len(r.URL.Query()) != 0 {
			t.Errorf("unexpected query parameters: %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{}`))
	})
	if _, err := client.ListOrders().List(); err != nil {
		t.Fatalf("List: %v", err)
	}
}

func TestStopOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.Method != http.MethodPost || r.URL.Path != "/api/1/stoporder" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if got := r.PostForm.Get("order_id"); got != "BXBY6JS2BB2MFV2" {
			t.Errorf("order_id = %q", got)
		}
		w.Write([]byte(`{"success":true}`))
	})

	resp, err := client.StopOrder("BXBY6JS2BB2MFV2")
	if err != nil {
		t.Fatalf("StopOrder: %v", err)
	}
	if !resp.Success {
		t.Error("expected success")
	}
}

func TestGetOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/1/orders/BXMC2CJ7HNB88U4" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"order_id":"BXMC2CJ7HNB88U4","pair":"XBTZAR","state":"PENDING","type":"ASK",
			"limit_price":"211000","limit_volume":"0.0005","fee_base":"0.00000001",
			"creation_timestamp":1390000000000,"expiration_timestamp":0,"completed_timestamp":0
		}`))
	})

	order, err := client.GetOrder("BXMC2CJ7HNB88U4")
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if order.State != OrderStatePending {
		t.Errorf("state = %q", order.State)
	}
	if order.FeeBase.String() != "0.00000001" {
		t.Errorf("fee_base = %q", order.FeeBase)
	}
}
