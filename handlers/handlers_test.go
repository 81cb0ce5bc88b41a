package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"modaShop/entities"
	"modaShop/repository"
	"modaShop/services"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitForCount(t *testing.T, out *syncBuffer, substr string, want int) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Count(out.String(), substr) >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d occurrence(s) of %q, output:\n%s", want, substr, out.String())
}

func newTestHandler(t *testing.T) (*Handler, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	return newTestHandlerTo(t, out), out
}

func newTestHandlerTo(t *testing.T, out io.Writer) *Handler {
	t.Helper()
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"products": []map[string]any{
			{"id": "p1", "name": "Sneaker", "brand": "Runa", "price": 59.9, "stock": 4},
		}})
	}))
	t.Cleanup(backend.Close)

	store := repository.NewMemoryStore()
	cartR, _ := repository.NewCartRepository(store)
	wishR, _ := repository.NewWishlistRepository(store)
	tokenR, _ := repository.NewTokenRepository(store, "test-secret")
	cat, _ := services.NewCatalogService(backend.URL, time.Second)
	acc, _ := services.NewAccountService(backend.URL, time.Second, tokenR)

	return NewHandler(HandlerParams{
		CrtService: services.NewCartService(cartR),
		WshService: services.NewWishlistService(wishR),
		NavService: services.NewNavigationService(2 * time.Second),
		CatService: cat,
		AccService: acc,
		Out:        out,
	})
}

func TestOpenThenAddFlow(t *testing.T) {
	h, out := newTestHandler(t)

	h.Render() // Home fills the listing
	h.HandleCommand("open 1")
	if h.nav.Current().Name != services.RouteProductDetails {
		t.Fatalf("expected ProductDetails, got %s", h.nav.Current().Name)
	}
	h.HandleCommand("add 2")

	cart := h.cs.GetCart()
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("expected Sneaker x2 in cart, got %+v", cart.Items)
	}

	out.Reset()
	h.HandleCommand("back")
	if h.nav.Current().Name != services.RouteHome {
		t.Fatalf("expected back on Home, got %s", h.nav.Current().Name)
	}
	if strings.Contains(out.String(), "press back again") {
		t.Fatal("exit hint shown while history was non-empty")
	}
}

// An interrupt arriving mid-session must act as the back button and be
// handled on the command-loop goroutine, so renders never run
// concurrently with command handling.
func TestInterruptActsAsBack(t *testing.T) {
	out := &syncBuffer{}
	h := newTestHandlerTo(t, out)

	pr, pw := io.Pipe()
	defer pw.Close()
	done := make(chan struct{})
	go func() {
		h.Run(pr)
		close(done)
	}()

	waitForCount(t, out, "-- Home --", 1)
	io.WriteString(pw, "go Deals\n")
	waitForCount(t, out, "-- Deals --", 1)

	if err := syscall.Kill(os.Getpid(), syscall.SIGINT); err != nil {
		t.Fatalf("kill: %v", err)
	}
	waitForCount(t, out, "-- Home --", 2)
	if h.nav.Current().Name != services.RouteHome {
		t.Fatalf("expected interrupt to navigate back to Home, got %s", h.nav.Current().Name)
	}

	io.WriteString(pw, "quit\n")
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("shell did not quit")
	}
}

func TestUnknownScreenCommand(t *testing.T) {
	h, out := newTestHandler(t)

	h.HandleCommand("go Nowhere")
	if !strings.Contains(out.String(), "no such screen") {
		t.Fatalf("expected rejection message, got %q", out.String())
	}
	if h.nav.Current().Name != services.RouteHome {
		t.Fatal("unknown screen changed the route")
	}
}

func TestDebugEndpoints(t *testing.T) {
	h, _ := newTestHandler(t)
	h.cs.AddItem(entities.Product{Id: "p9", Name: "Belt", Price: 12, Stock: 2}, "", "", 1)
	h.nav.Navigate(services.RouteDeals, nil)

	srv := httptest.NewServer(h.DebugRouter())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/debug/cart")
	if err != nil {
		t.Fatalf("GET /debug/cart: %v", err)
	}
	defer resp.Body.Close()
	var cart entities.Cart
	if err := json.NewDecoder(resp.Body).Decode(&cart); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cart.ItemCount != 1 || cart.Total != 12 {
		t.Fatalf("unexpected cart state: %+v", cart)
	}

	resp, err = http.Get(srv.URL + "/debug/route")
	if err != nil {
		t.Fatalf("GET /debug/route: %v", err)
	}
	defer resp.Body.Close()
	var route struct {
		Current   entities.Route   `json:"current"`
		History   []entities.Route `json:"history"`
		ActiveTab string           `json:"active_tab"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&route); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if route.Current.Name != services.RouteDeals || len(route.History) != 1 {
		t.Fatalf("unexpected route state: %+v", route)
	}
}
