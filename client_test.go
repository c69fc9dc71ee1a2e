package luno

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestClient returns a client pointed at a test server running the
// given handler.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test_key", "test_secret",
		WithBaseURL(server.URL+"/api/1"),
		WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClientRejectsBadBaseURL(t *testing.T) {
	_, err := NewClient("k", "s", WithBaseURL("://broken"))
	if err == nil {
		t.Fatal("expected config error at construction")
	}
	var e *Error
	if !errors.As(err, &e) || e.Kind != KindConfig {
		t.Errorf("expected KindConfig, got %v", err)
	}
}

func TestClientSendsBasicAuth(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		key, secret, ok := r.BasicAuth()
		if !ok || key != "test_key" || secret != "test_secret" {
			t.Errorf("basic auth = %q/%q (ok=%v)", key, secret, ok)
		}
		if ua := r.Header.Get("User-Agent"); ua != userAgent {
			t.Errorf("user agent = %q", ua)
		}
		w.Write([]byte(`{"ask":"1","bid":"1","last_trade":"1","pair":"XBTZAR","rolling_24_hour_volume":"0","timestamp":1}`))
	})

	if _, err := client.GetTicker(XBTZAR); err != nil {
		t.Fatalf("GetTicker: %v", err)
	}
}

func TestClientRemoteErrorOn200(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"insufficient balance","error_code":"ErrInsufficientBalance"}`))
	})

	_, err := client.MarketOrder(XBTZAR, MarketOrderBuy, dec(t, "100")).Post()
	if err == nil {
		t.Fatal("expected error for rejected order")
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("error is not *luno.Error: %v", err)
	}
	if e.Kind != KindRemote {
		t.Errorf("kind = %v, want KindRemote", e.Kind)
	}
	if e.Message != "insufficient balance" {
		t.Errorf("message = %q", e.Message)
	}
	if e.Code != "ErrInsufficientBalance" {
		t.Errorf("code = %q", e.Code)
	}
}

func TestClientRemoteErrorOnNon2xx(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid credentials"}`))
	})

	_, err := client.ListBalances().List()
	if !IsRemote(err) {
		t.Fatalf("expected remote error, got %v", err)
	}
}

func TestClientDecodeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"timestamp": "not-a-number"}`))
	})

	_, err := client.GetOrderbook(XBTZAR)
	if !IsDecode(err) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestClientTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client, err := NewClient("k", "s", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	server.Close()

	_, err = client.GetTickers()
	if !IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestMissingListFieldsDecodeToEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	orders, err := client.ListOrders().List()
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("expected empty orders, got %v", orders)
	}

	trades, err := client.GetTrades(XBTZAR)
	if err != nil {
		t.Fatalf("GetTrades: %v", err)
	}
	if len(trades) != 0 {
		t.Errorf("expected empty trades, got %v", trades)
	}

	balances, err := client.ListBalances().List()
	if err != nil {
		t.Fatalf("ListBalances: %v", err)
	}
	if len(balances) != 0 {
		t.Errorf("expected empty balances, got %v", balances)
	}

	txns, err := client.ListPendingTransactions("acc-1")
	if err != nil {
		t.Fatalf("ListPendingTransactions: %v", err)
	}
	if len(txns) != 0 {
		t.Errorf("expected empty pending transactions, got %v", txns)
	}
}
