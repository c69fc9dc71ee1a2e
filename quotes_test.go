package luno

import (
	"net/http"
	"testing"
)

func TestCreateQuote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.Method != http.MethodPost || r.URL.Path != "/api/1/quotes" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		form := r.PostForm
		if form.Get("pair") != "XBTZAR" || form.Get("type") != "BUY" || form.Get("base_amount") != "0.01" {
			t.Errorf("form = %v", form)
		}
		w.Write([]byte(`{
			"id":"q-1","pair":"XBTZAR","type":"BUY",
			"base_amount":"0.01","counter_amount":"2110.00",
			"created_at":1561996187000,"expires_at":1561996197000,
			"exercised":false,"discarded":false
		}`))
	})

	quote, err := client.CreateQuote(XBTZAR, MarketOrderBuy, dec(t, "0.01")).
		WithCounterAccount("acc-7").
		Post()
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if quote.ID != "q-1" || quote.Exercised || quote.Discarded {
		t.Errorf("quote = %+v", quote)
	}
	if quote.CounterAmount.String() != "2110.00" {
		t.Errorf("counter amount = %q", quote.CounterAmount)
	}
}

func TestExerciseAndDiscardQuote(t *testing.T) {
	var methods []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/1/quotes/q-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		methods = append(methods, r.Method)
		exercised := r.Method == http.MethodPut
		discarded := r.Method == http.MethodDelete
		w.Write([]byte(`{
			"id":"q-1","pair":"XBTZAR","type":"BUY",
			"base_amount":"0.01","counter_amount":"2110.00",
			"created_at":1,"expires_at":2,
			"exercised":` + boolLit(exercised) + `,"discarded":` + boolLit(discarded) + `
		}`))
	})

	exercised, err := client.ExerciseQuote("q-1")
	if err != nil {
		t.Fatalf("ExerciseQuote: %v", err)
	}
	if !exercised.Exercised {
		t.Error("expected exercised quote")
	}

	discarded, err := client.DiscardQuote("q-1")
	if err != nil {
		t.Fatalf("DiscardQuote: %v", err)
	}
	if !discarded.Discarded {
		t.Error("expected discarded quote")
	}

	if len(methods) != 2 || methods[0] != http.MethodPut || methods[1] != http.MethodDelete {
		t.Errorf("methods = %v", methods)
	}
}

func boolLit(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func TestLightningSendForm(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.URL.Path != "/api/1/lightning/send" {
			t.Errorf("path = %q", r.URL.Path)
		}
		form := r.PostForm
		if form.Get("payment_request") != "lnbc1..." || form.Get("currency") != "XBT" || form.Get("external_id") != "ext-1" {
			t.Errorf("form = %v", form)
		}
		w.Write([]byte(`{"invoice_id":"inv-1","payment_request":"lnbc1..."}`))
	})

	w, err := client.LightningSend("lnbc1...").
		WithCurrency(XBT).
		WithExternalID("ext-1").
		Send()
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if w.InvoiceID != "inv-1" {
		t.Errorf("invoice id = %q", w.InvoiceID)
	}
}

func TestLightningReceive(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.URL.Path != "/api/1/lightning/receive" {
			t.Errorf("path = %q", r.URL.Path)
		}
		form := r.PostForm
		if form.Get("amount") != "0.0001" || form.Get("description") != "hello" {
			t.Errorf("form = %v", form)
		}
		w.Write([]byte(`{"invoice_id":"inv-2","payment_request":"lnbc2..."}`))
	})

	req, err := client.LightningReceive(dec(t, "0.0001")).
		WithCurrency(XBT).
		WithDescription("hello").
		Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if req.PaymentRequest != "lnbc2..." {
		t.Errorf("payment request = %q", req.PaymentRequest)
	}
}
