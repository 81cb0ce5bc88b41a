package handlers

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"modaShop/entities"
	"modaShop/models"
	"modaShop/services"
)

type Handler struct {
	cs  *services.CartService
	ws  *services.WishlistService
	nav *services.NavigationService
	cat *services.CatalogService
	acc *services.AccountService
	out io.Writer

	// products shown by the last list screen, addressed by `open <n>`
	listing []entities.Product
}

type HandlerParams struct {
	CrtService *services.CartService
	WshService *services.WishlistService
	NavService *services.NavigationService
	CatService *services.CatalogService
	AccService *services.AccountService
	Out        io.Writer
}

func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		cs:  params.CrtService,
		ws:  params.WshService,
		nav: params.NavService,
		cat: params.CatService,
		acc: params.AccService,
		out: params.Out,
	}
}

// Run drives the interactive shell until "quit" or EOF. SIGINT plays the
// hardware back button: the handler consumes it and calls GoBack instead
// of letting the process die. Signals and input lines funnel into one
// select so every render happens on this goroutine.
func (h *Handler) Run(in io.Reader) {
	cancelNav := h.nav.Subscribe(func() { h.Render() })
	defer cancelNav()
	cancelCart := h.cs.Subscribe(func() {
		cart := h.cs.GetCart()
		fmt.Fprintf(h.out, "[cart] %d item(s), total %.2f\n", cart.ItemCount, cart.Total)
	})
	defer cancelCart()
	cancelWish := h.ws.Subscribe(func() {
		list := h.ws.GetWishlist()
		fmt.Fprintf(h.out, "[wishlist] %d item(s)\n", len(list.Items))
	})
	defer cancelWish()

	backSig := make(chan os.Signal, 1)
	signal.Notify(backSig, os.Interrupt)
	defer signal.Stop(backSig)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	h.Render()
	for {
		fmt.Fprint(h.out, "> ")
		select {
		case <-backSig:
			h.back()
		case line, open := <-lines:
			if !open {
				return
			}
			if h.HandleCommand(line) {
				return
			}
		}
	}
}

// HandleCommand executes one shell command and reports whether the shell
// should quit.
func (h *Handler) HandleCommand(line string) (quit bool) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return
	}
	switch args[0] {
	case "quit":
		quit = true
	case "back":
		h.back()
	case "tab":
		if len(args) < 2 {
			fmt.Fprintln(h.out, "usage: tab <Home|Categories|Cart|WishList|Account>")
			return
		}
		if err := h.nav.SetActive(args[1]); err != nil {
			fmt.Fprintln(h.out, "no such tab:", args[1])
		}
	case "go":
		if len(args) < 2 {
			fmt.Fprintln(h.out, "usage: go <screen>")
			return
		}
		if err := h.nav.Navigate(args[1], nil); err != nil {
			fmt.Fprintln(h.out, "no such screen:", args[1])
		}
	case "open":
		h.openListing(args[1:])
	case "search":
		if len(args) < 2 {
			fmt.Fprintln(h.out, "usage: search <query>")
			return
		}
		h.nav.Navigate(services.RouteSearch, map[string]any{"query": strings.Join(args[1:], " ")})
	case "add":
		h.addToCart(args[1:])
	case "wish":
		h.addToWishlist()
	case "qty":
		if len(args) < 3 {
			fmt.Fprintln(h.out, "usage: qty <item-id> <quantity>")
			return
		}
		quantity, err := strconv.Atoi(args[2])
		if err != nil {
			fmt.Fprintln(h.out, "quantity must be a number")
			return
		}
		if _, err = h.cs.UpdateQuantity(args[1], quantity); err != nil {
			fmt.Fprintln(h.out, "could not update quantity, try again")
		}
	case "rm":
		if len(args) < 2 {
			fmt.Fprintln(h.out, "usage: rm <item-id>")
			return
		}
		if h.nav.Current().Name == services.RouteWishList {
			if _, err := h.ws.RemoveItem(args[1]); err != nil {
				fmt.Fprintln(h.out, "could not update wishlist, try again")
			}
			return
		}
		if _, err := h.cs.RemoveItem(args[1]); err != nil {
			fmt.Fprintln(h.out, "could not update cart, try again")
		}
	case "clear":
		if h.nav.Current().Name == services.RouteWishList {
			if err := h.ws.ClearWishlist(); err != nil {
				fmt.Fprintln(h.out, "could not clear wishlist, try again")
			}
			return
		}
		if err := h.cs.ClearCart(); err != nil {
			fmt.Fprintln(h.out, "could not clear cart, try again")
		}
	case "signin":
		if len(args) < 3 {
			fmt.Fprintln(h.out, "usage: signin <username> <password>")
			return
		}
		switch err := h.acc.SignIn(args[1], args[2]); err {
		case nil:
			fmt.Fprintln(h.out, "signed in")
			h.nav.SetActive(services.RouteAccount)
		case models.ErrUnautorized:
			fmt.Fprintln(h.out, "wrong username or password")
		default:
			fmt.Fprintln(h.out, "sign in failed, try again later")
		}
	case "signout":
		if err := h.acc.SignOut(); err != nil {
			fmt.Fprintln(h.out, "sign out failed, try again")
			return
		}
		fmt.Fprintln(h.out, "signed out")
	case "help":
		fmt.Fprintln(h.out, "commands: tab go open search add wish qty rm clear signin signout back quit")
	default:
		fmt.Fprintln(h.out, "unknown command, try: help")
	}
	return
}

func (h *Handler) back() {
	if h.nav.GoBack() {
		fmt.Fprintln(h.out, "press back again to exit")
	}
}

func (h *Handler) openListing(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(h.out, "usage: open <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(h.listing) {
		fmt.Fprintln(h.out, "no such entry on this screen")
		return
	}
	h.nav.Navigate(services.RouteProductDetails, map[string]any{"product": h.listing[n-1]})
}

func (h *Handler) currentProduct() (p entities.Product, ok bool) {
	route := h.nav.Current()
	if route.Name != services.RouteProductDetails {
		return
	}
	p, ok = route.Params["product"].(entities.Product)
	return
}

func (h *Handler) addToCart(args []string) {
	p, ok := h.currentProduct()
	if !ok {
		fmt.Fprintln(h.out, "open a product first")
		return
	}
	quantity := 1
	var size, color string
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			quantity = n
		}
	}
	if len(args) > 1 {
		size = args[1]
	}
	if len(args) > 2 {
		color = args[2]
	}
	if p.Stock > 0 && quantity > p.Stock {
		fmt.Fprintf(h.out, "only %d in stock, adding %d\n", p.Stock, p.Stock)
	}
	if _, err := h.cs.AddItem(p, size, color, quantity); err != nil {
		fmt.Fprintln(h.out, "could not update cart, try again")
	}
}

func (h *Handler) addToWishlist() {
	p, ok := h.currentProduct()
	if !ok {
		fmt.Fprintln(h.out, "open a product first")
		return
	}
	if h.ws.IsInWishlist(p.Id) {
		fmt.Fprintln(h.out, "already in wishlist")
		return
	}
	if _, err := h.ws.AddItem(p); err != nil {
		fmt.Fprintln(h.out, "could not update wishlist, try again")
	}
}

// Render draws the current screen. Screens switch on the route name; the
// navigation service already rejects unknown names, the default arm is
// the explicit not-found state.
func (h *Handler) Render() {
	route := h.nav.Current()
	fmt.Fprintf(h.out, "\n-- %s --\n", route.Name)
	switch route.Name {
	case services.RouteHome:
		h.renderProducts("featured", func() ([]entities.Product, error) { return h.cat.Products() })
	case services.RouteDeals:
		h.renderProducts("deals", func() ([]entities.Product, error) { return h.cat.Deals() })
	case services.RouteSearch:
		query, _ := route.Params["query"].(string)
		h.renderProducts("results for "+strconv.Quote(query), func() ([]entities.Product, error) { return h.cat.Search(query) })
	case services.RouteCategories:
		h.renderCategories(route)
	case services.RouteProductDetails:
		h.renderProductDetails(route)
	case services.RouteCart:
		h.renderCart()
	case services.RouteWishList:
		h.renderWishlist()
	case services.RouteSignIn, services.RouteSignUp:
		fmt.Fprintln(h.out, "signin <username> <password>")
	case services.RouteAccount:
		h.renderAccount()
	case services.RoutePaymentMethod, services.RouteMyOrders:
		fmt.Fprintln(h.out, "sign in to see this screen")
		if _, ok := h.acc.SignedIn(); ok {
			fmt.Fprintln(h.out, "(nothing here yet)")
		}
	default:
		fmt.Fprintln(h.out, "screen not found")
	}
}

func (h *Handler) renderProducts(title string, fetch func() ([]entities.Product, error)) {
	prods, err := fetch()
	if err != nil {
		fmt.Fprintln(h.out, "catalog unavailable, pull to retry")
		return
	}
	h.listing = prods
	fmt.Fprintln(h.out, title+":")
	for i, p := range prods {
		fmt.Fprintf(h.out, "%3d. %s (%s) %.2f\n", i+1, p.Name, p.Brand, p.Price)
	}
	if len(prods) == 0 {
		fmt.Fprintln(h.out, "(nothing here)")
	}
}

func (h *Handler) renderCategories(route entities.Route) {
	if category, ok := route.Params["category"].(string); ok && category != "" {
		h.renderProducts(category, func() ([]entities.Product, error) { return h.cat.ProductsByCategory(category) })
		return
	}
	cats, err := h.cat.Categories()
	if err != nil {
		fmt.Fprintln(h.out, "catalog unavailable, pull to retry")
		return
	}
	for _, name := range cats {
		fmt.Fprintln(h.out, " -", name)
	}
}

func (h *Handler) renderProductDetails(route entities.Route) {
	p, ok := route.Params["product"].(entities.Product)
	if !ok {
		fmt.Fprintln(h.out, "product no longer available")
		return
	}
	fmt.Fprintf(h.out, "%s by %s\n", p.Name, p.Brand)
	if p.OldPrice > 0 {
		fmt.Fprintf(h.out, "price: %.2f (was %.2f)\n", p.Price, p.OldPrice)
	} else {
		fmt.Fprintf(h.out, "price: %.2f\n", p.Price)
	}
	if len(p.Sizes) > 0 {
		fmt.Fprintln(h.out, "sizes:", strings.Join(p.Sizes, " "))
	}
	if len(p.Colors) > 0 {
		fmt.Fprintln(h.out, "colors:", strings.Join(p.Colors, " "))
	}
	fmt.Fprintln(h.out, p.Description)
	fmt.Fprintf(h.out, "in stock: %d\n", p.Stock)
	if h.ws.IsInWishlist(p.Id) {
		fmt.Fprintln(h.out, "♥ in your wishlist")
	}
	fmt.Fprintln(h.out, "add [qty] [size] [color] | wish")
}

func (h *Handler) renderCart() {
	cart := h.cs.GetCart()
	if len(cart.Items) == 0 {
		fmt.Fprintln(h.out, "your cart is empty")
		return
	}
	for _, it := range cart.Items {
		variant := ""
		if it.Size != "" || it.Color != "" {
			variant = " [" + strings.TrimLeft(it.Size+" "+it.Color, " ") + "]"
		}
		fmt.Fprintf(h.out, "%s  %s%s  x%d  %.2f\n", it.Id, it.Name, variant, it.Quantity, it.Price*float64(it.Quantity))
	}
	fmt.Fprintf(h.out, "total: %.2f (%d items)\n", cart.Total, cart.ItemCount)
	fmt.Fprintln(h.out, "qty <id> <n> | rm <id> | clear")
}

func (h *Handler) renderWishlist() {
	list := h.ws.GetWishlist()
	if len(list.Items) == 0 {
		fmt.Fprintln(h.out, "your wishlist is empty")
		return
	}
	for _, it := range list.Items {
		fmt.Fprintf(h.out, "%s  %s  %.2f  added %s\n", it.Id, it.Title, it.Price, it.AddedAt.Format("2006-01-02"))
	}
	fmt.Fprintln(h.out, "rm <id> | clear")
}

func (h *Handler) renderAccount() {
	username, ok := h.acc.SignedIn()
	if !ok {
		fmt.Fprintln(h.out, "not signed in, use: go SignIn")
		return
	}
	if username == "" {
		username = "there"
	}
	fmt.Fprintf(h.out, "hello, %s!\n", username)
	id, err := h.acc.DeviceId()
	if err != nil {
		log.Printf("renderAccount: %v", err)
		return
	}
	fmt.Fprintln(h.out, "device:", id)
}
