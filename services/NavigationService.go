package services

import (
	"log"
	"os"
	"sync"
	"time"

	"modaShop/entities"
	"modaShop/models"
)

const (
	RouteHome           = "Home"
	RouteCategories     = "Categories"
	RouteProductDetails = "ProductDetails"
	RouteSearch         = "Search"
	RouteCart           = "Cart"
	RouteWishList       = "WishList"
	RouteDeals          = "Deals"
	RouteSignIn         = "SignIn"
	RouteSignUp         = "SignUp"
	RoutePaymentMethod  = "PaymentMethod"
	RouteMyOrders       = "MyOrders"
	RouteAccount        = "Account"
)

var knownRoutes = map[string]bool{
	RouteHome:           true,
	RouteCategories:     true,
	RouteProductDetails: true,
	RouteSearch:         true,
	RouteCart:           true,
	RouteWishList:       true,
	RouteDeals:          true,
	RouteSignIn:         true,
	RouteSignUp:         true,
	RoutePaymentMethod:  true,
	RouteMyOrders:       true,
	RouteAccount:        true,
}

// bottom-tab roots; switching tabs discards back-history
var tabRoots = map[string]bool{
	RouteHome:       true,
	RouteCategories: true,
	RouteCart:       true,
	RouteWishList:   true,
	RouteAccount:    true,
}

// NavigationService is the in-app router: one current route, a LIFO
// back-stack of prior routes, and the double-back-to-exit rule at the
// home root.
type NavigationService struct {
	mu         sync.Mutex
	current    entities.Route
	history    []entities.Route
	activeTab  string
	lastBack   time.Time
	exitWindow time.Duration
	now        func() time.Time
	exit       func()
	notifier   *Notifier
}

func NewNavigationService(exitWindow time.Duration) *NavigationService {
	if exitWindow <= 0 {
		exitWindow = 2 * time.Second
	}
	return &NavigationService{
		current:    entities.Route{Name: RouteHome},
		activeTab:  RouteHome,
		exitWindow: exitWindow,
		now:        time.Now,
		exit:       func() { os.Exit(0) },
		notifier:   NewNotifier(),
	}
}

// Navigate replaces the current route. The outgoing route is pushed onto
// history only when the screen name changes; a same-name navigation
// refreshes params in place without growing the back trail.
func (ns *NavigationService) Navigate(name string, params map[string]any) (err error) {
	ns.mu.Lock()
	if !knownRoutes[name] {
		ns.mu.Unlock()
		log.Printf("Navigate: unknown route %q", name)
		err = models.ErrUnknownRoute
		return
	}
	if ns.current.Name != name {
		ns.history = append(ns.history, ns.current)
	}
	ns.current = entities.Route{Name: name, Params: params}
	ns.mu.Unlock()
	ns.notifier.publish()
	return
}

// GoBack pops history, or falls back to the home root, or at the home
// root with empty history treats the event as exit intent. It returns
// true when the caller should show the "press back again to exit" hint.
func (ns *NavigationService) GoBack() (exitHint bool) {
	ns.mu.Lock()
	if len(ns.history) > 0 {
		ns.current = ns.history[len(ns.history)-1]
		ns.history = ns.history[:len(ns.history)-1]
		if tabRoots[ns.current.Name] {
			ns.activeTab = ns.current.Name
		}
		ns.mu.Unlock()
		ns.notifier.publish()
		return
	}
	if ns.current.Name != RouteHome {
		ns.current = entities.Route{Name: RouteHome}
		ns.activeTab = RouteHome
		ns.mu.Unlock()
		ns.notifier.publish()
		return
	}
	now := ns.now()
	if !ns.lastBack.IsZero() && now.Sub(ns.lastBack) < ns.exitWindow {
		exit := ns.exit
		ns.mu.Unlock()
		exit()
		return
	}
	ns.lastBack = now
	ns.mu.Unlock()
	exitHint = true
	return
}

// SetActive switches the bottom tab, discarding back-history.
func (ns *NavigationService) SetActive(tab string) (err error) {
	ns.mu.Lock()
	if !tabRoots[tab] {
		ns.mu.Unlock()
		log.Printf("SetActive: %q is not a tab root", tab)
		err = models.ErrUnknownRoute
		return
	}
	ns.history = nil
	ns.activeTab = tab
	ns.current = entities.Route{Name: tab}
	ns.mu.Unlock()
	ns.notifier.publish()
	return
}

func (ns *NavigationService) Current() (route entities.Route) {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return ns.current
}

func (ns *NavigationService) History() (routes []entities.Route) {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	routes = make([]entities.Route, len(ns.history))
	copy(routes, ns.history)
	return
}

func (ns *NavigationService) ActiveTab() (tab string) {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return ns.activeTab
}

func (ns *NavigationService) Subscribe(fn func()) (cancel func()) {
	return ns.notifier.Subscribe(fn)
}
