package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mkazantsev/workshop-bot/internal/domain/catalog"
	"github.com/mkazantsev/workshop-bot/internal/domain/orders"
	"github.com/mkazantsev/workshop-bot/internal/domain/purchases"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(h http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(h)
	return NewClient(srv.URL, 5*time.Second, testLogger()), srv
}

func TestCategoriesList(t *testing.T) {
	var gotMethod, gotPath string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		_ = json.NewEncoder(w).Encode([]catalog.Category{{ID: 1, Name: "Крепёж"}})
	})
	defer srv.Close()

	items, err := NewCategories(c).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotMethod != http.MethodGet || gotPath != "/categories" {
		t.Errorf("request = %s %s, want GET /categories", gotMethod, gotPath)
	}
	if len(items) != 1 || items[0].Name != "Крепёж" {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestMaterialsCreateRoundTrip(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/materials" {
			t.Errorf("request = %s %s, want POST /materials", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var m catalog.Material
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		// бэкенд назначает id, остальные поля возвращает как есть
		m.ID = 42
		_ = json.NewEncoder(w).Encode(m)
	})
	defer srv.Close()

	in := catalog.Material{
		Name:          "Фанера 10мм",
		Description:   "берёзовая",
		ArticleNumber: "F-10",
		Unit:          catalog.UnitPiece,
		Remains:       12,
		MinCount:      3,
		CategoryID:    7,
	}
	out, err := NewMaterials(c).Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if out.ID != 42 {
		t.Errorf("ID = %d, want 42", out.ID)
	}
	in.ID = out.ID
	if *out != in {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", *out, in)
	}
}

func TestPurchasesDeletePath(t *testing.T) {
	var gotMethod, gotPath string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})
	defer srv.Close()

	if err := NewPurchases(c).Delete(context.Background(), 15); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/purchases/15" {
		t.Errorf("request = %s %s, want DELETE /purchases/15", gotMethod, gotPath)
	}
}

func TestPurchasesCreateSendsTotal(t *testing.T) {
	var got purchases.Purchase
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		got.ID = 1
		_ = json.NewEncoder(w).Encode(got)
	})
	defer srv.Close()

	p := purchases.Purchase{MaterialID: 3, Count: 4, UnitPrice: 250.5, PurchaseDate: "2024-03-07"}
	p.TotalPrice = purchases.TotalPrice(p.Count, p.UnitPrice)
	if _, err := NewPurchases(c).Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.TotalPrice != 1002.0 {
		t.Errorf("total_price sent = %v, want 1002", got.TotalPrice)
	}
}

func TestOrdersUpdateStatusPatch(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})
	defer srv.Close()

	if err := NewOrders(c).UpdateStatus(context.Background(), 9, orders.StatusReady); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/orders/9/status" {
		t.Errorf("request = %s %s, want PATCH /orders/9/status", gotMethod, gotPath)
	}
	if gotBody["status"] != "ready" {
		t.Errorf("body = %v, want {status: ready}", gotBody)
	}
}

func TestServerErrorTaxonomy(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	defer srv.Close()

	_, err := NewOrders(c).List(context.Background())
	var se *ServerError
	if !errors.As(err, &se) {
		t.Fatalf("want *ServerError, got %T: %v", err, err)
	}
	if se.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", se.Status)
	}
}

func TestTransportErrorTaxonomy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // соединение будет отказано

	c := NewClient(srv.URL, time.Second, testLogger())
	_, err := NewCategories(c).List(context.Background())
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("want *TransportError, got %T: %v", err, err)
	}
}

func TestTimeoutIsTransportError(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	defer srv.Close()

	c.hc.Timeout = 20 * time.Millisecond
	_, err := NewMaterials(c).List(context.Background())
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("want *TransportError on timeout, got %T: %v", err, err)
	}
}
