package services

import (
	"testing"
	"time"

	"modaShop/models"
)

func newTestNav() *NavigationService {
	return NewNavigationService(2 * time.Second)
}

func TestNavigateAndBackToHome(t *testing.T) {
	nav := newTestNav()

	if err := nav.Navigate(RouteProductDetails, map[string]any{"id": 1}); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	nav.GoBack()

	if nav.Current().Name != RouteHome {
		t.Fatalf("expected Home, got %s", nav.Current().Name)
	}
	if len(nav.History()) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(nav.History()))
	}
}

func TestBackTraversalOrder(t *testing.T) {
	nav := newTestNav()

	nav.Navigate(RouteCategories, nil)
	nav.Navigate(RouteSearch, map[string]any{"query": "x"})

	history := nav.History()
	if len(history) != 2 || history[0].Name != RouteHome || history[1].Name != RouteCategories {
		t.Fatalf("expected history [Home Categories], got %+v", history)
	}
	nav.GoBack()
	if nav.Current().Name != RouteCategories {
		t.Fatalf("expected Categories, got %s", nav.Current().Name)
	}
	if got := len(nav.History()); got != 1 {
		t.Fatalf("expected history [Home], got %d entries", got)
	}
	nav.GoBack()
	if nav.Current().Name != RouteHome || len(nav.History()) != 0 {
		t.Fatalf("expected Home with empty history, got %s / %d", nav.Current().Name, len(nav.History()))
	}
}

func TestSameNameNavigationReplacesParams(t *testing.T) {
	nav := newTestNav()

	nav.Navigate(RouteSearch, map[string]any{"query": "shoes"})
	nav.Navigate(RouteSearch, map[string]any{"query": "boots"})

	if got := len(nav.History()); got != 1 {
		t.Fatalf("same-name navigation grew history to %d", got)
	}
	if q := nav.Current().Params["query"]; q != "boots" {
		t.Fatalf("expected refreshed params, got %v", q)
	}
}

func TestUnknownRouteIsRejected(t *testing.T) {
	nav := newTestNav()

	err := nav.Navigate("Nonsense", nil)
	if err != models.ErrUnknownRoute {
		t.Fatalf("expected ErrUnknownRoute, got %v", err)
	}
	if nav.Current().Name != RouteHome || len(nav.History()) != 0 {
		t.Fatal("rejected navigation changed state")
	}
}

func TestSetActiveClearsHistory(t *testing.T) {
	nav := newTestNav()

	nav.Navigate(RouteCategories, nil)
	nav.Navigate(RouteProductDetails, nil)
	if err := nav.SetActive(RouteCart); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	if nav.Current().Name != RouteCart {
		t.Fatalf("expected Cart, got %s", nav.Current().Name)
	}
	if len(nav.History()) != 0 {
		t.Fatal("tab switch kept back-history")
	}
	if nav.ActiveTab() != RouteCart {
		t.Fatalf("expected active tab Cart, got %s", nav.ActiveTab())
	}
	if err := nav.SetActive(RouteProductDetails); err != models.ErrUnknownRoute {
		t.Fatalf("non-tab SetActive: expected ErrUnknownRoute, got %v", err)
	}
}

func TestGoBackSyncsActiveTab(t *testing.T) {
	nav := newTestNav()

	nav.SetActive(RouteCategories)
	nav.Navigate(RouteProductDetails, nil)
	nav.GoBack()

	if nav.ActiveTab() != RouteCategories {
		t.Fatalf("expected active tab Categories, got %s", nav.ActiveTab())
	}
}

func TestGoBackFromNonHomeWithEmptyHistoryResetsToHome(t *testing.T) {
	nav := newTestNav()

	nav.SetActive(RouteWishList)
	if hint := nav.GoBack(); hint {
		t.Fatal("reset to home must not show the exit hint")
	}
	if nav.Current().Name != RouteHome {
		t.Fatalf("expected Home, got %s", nav.Current().Name)
	}
}

func TestDoubleBackToExit(t *testing.T) {
	nav := newTestNav()
	clock := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	nav.now = func() time.Time { return clock }
	exited := false
	nav.exit = func() { exited = true }

	if hint := nav.GoBack(); !hint {
		t.Fatal("first back at home root must show the exit hint")
	}
	if exited {
		t.Fatal("first back terminated the app")
	}

	clock = clock.Add(1500 * time.Millisecond)
	nav.GoBack()
	if !exited {
		t.Fatal("second back within the window did not terminate")
	}
}

func TestExitWindowResets(t *testing.T) {
	nav := newTestNav()
	clock := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	nav.now = func() time.Time { return clock }
	exited := false
	nav.exit = func() { exited = true }

	nav.GoBack()
	clock = clock.Add(2100 * time.Millisecond)
	if hint := nav.GoBack(); !hint {
		t.Fatal("back after the window must restart the hint")
	}
	if exited {
		t.Fatal("back after the window terminated the app")
	}
	clock = clock.Add(500 * time.Millisecond)
	nav.GoBack()
	if !exited {
		t.Fatal("back within the restarted window did not terminate")
	}
}

func TestNavigationNotifies(t *testing.T) {
	nav := newTestNav()

	fired := 0
	cancel := nav.Subscribe(func() { fired++ })
	defer cancel()

	nav.Navigate(RouteDeals, nil)
	nav.GoBack()
	nav.SetActive(RouteCart)

	if fired != 3 {
		t.Fatalf("expected 3 notifications, got %d", fired)
	}
}
