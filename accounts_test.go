package luno

import (
	"net/http"
	"net/url"
	"testing"
)

func TestCreateAccount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.Method != http.MethodPost || r.URL.Path != "/api/1/accounts" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if r.PostForm.Get("currency") != "ZAR" || r.PostForm.Get("name") != "savings" {
			t.Errorf("form = %v", r.PostForm)
		}
		w.Write([]byte(`{"id":"acc-7","currency":"ZAR","name":"savings"}`))
	})

	acc, err := client.CreateAccount(ZAR, "savings")
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if acc.ID != "acc-7" || acc.Currency != ZAR {
		t.Errorf("account = %+v", acc)
	}
}

func TestUpdateAccountName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.Method != http.MethodPut || r.URL.Path != "/api/1/accounts/acc-7/name" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if got := r.PostForm.Get("name"); got != "spending" {
			t.Errorf("name = %q", got)
		}
		w.Write([]byte(`{"success":true}`))
	})

	resp, err := client.UpdateAccountName("acc-7", "spending")
	if err != nil {
		t.Fatalf("UpdateAccountName: %v", err)
	}
	if !resp.Success {
		t.Error("expected success")
	}
}

func TestListBalancesWithAssets(t *testing.T) {
	var gotQuery url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"balance":[{
			"account_id":"acc-7","asset":"XBT","balance":"0.05000000",
			"reserved":"0.01","unconfirmed":"0","name":"savings"
		}]}`))
	})

	balances, err := client.ListBalances().WithAssets(XBT, ZAR).List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got := gotQuery.Get("assets"); got != "XBT,ZAR" {
		t.Errorf("assets = %q", got)
	}
	if len(balances) != 1 {
		t.Fatalf("got %d balances", len(balances))
	}
	if got := balances[0].Balance.String(); got != "0.05000000" {
		t.Errorf("balance = %q, trailing zeros must survive", got)
	}
}

func TestListTransactions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/1/accounts/acc-7/transactions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("min_row") != "1" || q.Get("max_row") != "100" {
			t.Errorf("query = %v", q)
		}
		w.Write([]byte(`{"id":"acc-7","transactions":[{
			"row_index":1,"timestamp":1561996187000,
			"balance":"0.05","available":"0.04","balance_delta":"0.05",
			"available_delta":"0.04","currency":"XBT","description":"Bought BTC"
		}]}`))
	})

	txns, err := client.ListTransactions("acc-7", 1, 100)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txns) != 1 || txns[0].RowIndex != 1 || txns[0].Currency != XBT {
		t.Errorf("transactions = %+v", txns)
	}
}

func TestGetFeeInfo(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/1/fee_info" || r.URL.Query().Get("pair") != "XBTZAR" {
			t.Errorf("%s?%s", r.URL.Path, r.URL.RawQuery)
		}
		w.Write([]byte(`{"maker_fee":"0.001","taker_fee":"0.002","thirty_day_volume":"1.5"}`))
	})

	fi, err := client.GetFeeInfo(XBTZAR)
	if err != nil {
		t.Fatalf("GetFeeInfo: %v", err)
	}
	if fi.MakerFee.String() != "0.001" || fi.TakerFee.String() != "0.002" {
		t.Errorf("fee info = %+v", fi)
	}
}

func TestListOwnTradesFilters(t *testing.T) {
	var gotQuery url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"trades":[{
			"pair":"XBTZAR","price":"211000","volume":"0.0005","is_buy":false,
			"order_id":"BX9","type":"ASK","timestamp":1561996187000,
			"base":"0.0005","counter":"105.5","fee_base":"0","fee_counter":"0.1"
		}]}`))
	})

	trades, err := client.ListOwnTrades(XBTZAR).Since(1561990000000).Limit(50).List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotQuery.Get("pair") != "XBTZAR" || gotQuery.Get("since") != "1561990000000" || gotQuery.Get("limit") != "50" {
		t.Errorf("query = %v", gotQuery)
	}
	if len(trades) != 1 || trades[0].Type != LimitOrderAsk {
		t.Errorf("trades = %+v", trades)
	}
}
