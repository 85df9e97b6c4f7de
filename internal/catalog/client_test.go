package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// newCatalogServer serves /product/<id>/ with canned JSON; unknown IDs get 404.
func newCatalogServer(t *testing.T, known map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/product/"), "/")
		body, ok := known[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_URL(t *testing.T) {
	c := NewClient("http://catalog.local/product/|PRODUCT_ID|/", time.Second)
	if got := c.URL("abc"); got != "http://catalog.local/product/abc/" {
		t.Fatalf("URL = %q", got)
	}
}

func TestFetch_Success(t *testing.T) {
	srv := newCatalogServer(t, map[string]string{
		"p1": `{"title":"Gamer Mouse","image":"http://img/p1.jpg","price":129.9,"reviewScore":4.5}`,
	})
	c := NewClient(srv.URL+"/product/|PRODUCT_ID|/", time.Second)

	p, err := c.Fetch(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if p.ID != "p1" || p.Title != "Gamer Mouse" || p.Price != 129.9 {
		t.Fatalf("unexpected product: %+v", p)
	}
	if p.ReviewScore == nil || *p.ReviewScore != 4.5 {
		t.Fatalf("review score not decoded: %+v", p.ReviewScore)
	}
}

func TestFetch_OptionalReviewScore(t *testing.T) {
	srv := newCatalogServer(t, map[string]string{
		"p1": `{"title":"Keyboard","image":"http://img/p1.jpg","price":59.0}`,
	})
	c := NewClient(srv.URL+"/product/|PRODUCT_ID|/", time.Second)

	p, err := c.Fetch(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if p.ReviewScore != nil {
		t.Fatalf("expected nil review score, got %v", *p.ReviewScore)
	}
}

func TestFetch_NotFound(t *testing.T) {
	srv := newCatalogServer(t, nil)
	c := NewClient(srv.URL+"/product/|PRODUCT_ID|/", time.Second)

	_, err := c.Fetch(context.Background(), "missing")
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestExists(t *testing.T) {
	srv := newCatalogServer(t, map[string]string{
		"p1": `{"title":"x","image":"","price":1}`,
	})
	c := NewClient(srv.URL+"/product/|PRODUCT_ID|/", time.Second)

	ok, err := c.Exists(context.Background(), "p1")
	if err != nil || !ok {
		t.Fatalf("Exists(p1) = %v, %v", ok, err)
	}
	ok, err = c.Exists(context.Background(), "p2")
	if err != nil || ok {
		t.Fatalf("Exists(p2) = %v, %v", ok, err)
	}
}

func TestResolveAll_PreservesOrderAndOmitsFailures(t *testing.T) {
	srv := newCatalogServer(t, map[string]string{
		"a": `{"title":"A","image":"","price":1}`,
		"c": `{"title":"C","image":"","price":3}`,
	})
	c := NewClient(srv.URL+"/product/|PRODUCT_ID|/", time.Second)

	got := c.ResolveAll(context.Background(), []string{"a", "b", "c"}, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 resolved products, got %d", len(got))
	}
	if got[0].Title != "A" || got[1].Title != "C" {
		t.Fatalf("order not preserved: %+v", got)
	}
}

func TestResolveAll_BoundsConcurrency(t *testing.T) {
	const workers = 3

	var inflight, peak int64
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := atomic.AddInt64(&inflight, 1)
		mu.Lock()
		if cur > peak {
			peak = cur
		}
		mu.Unlock()
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt64(&inflight, -1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"title":"x","image":"","price":1}`)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL+"/product/|PRODUCT_ID|/", time.Second)
	ids := []string{"1", "2", "3", "4", "5", "6", "7", "8"}
	got := c.ResolveAll(context.Background(), ids, workers)
	if len(got) != len(ids) {
		t.Fatalf("resolved %d of %d", len(got), len(ids))
	}
	mu.Lock()
	defer mu.Unlock()
	if peak > workers {
		t.Fatalf("peak concurrency %d exceeds cap %d", peak, workers)
	}
}

func TestResolveAll_EmptyInput(t *testing.T) {
	c := NewClient("http://catalog.local/product/|PRODUCT_ID|/", time.Second)
	if got := c.ResolveAll(context.Background(), nil, 4); got != nil {
		t.Fatalf("expected nil for empty input, got %#v", got)
	}
}
