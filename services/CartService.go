package services

import (
	"log"
	"sync"

	"modaShop/entities"
	"modaShop/repository"
)

// CartService owns the guest cart document. Every mutation runs the full
// read-modify-write cycle under one mutex, so two overlapping calls can
// never both read the same pre-mutation snapshot and lose an update.
type CartService struct {
	mu       sync.Mutex
	cr       repository.CartRepository
	notifier *Notifier
}

func NewCartService(cartRepo repository.CartRepository) *CartService {
	return &CartService{
		cr:       cartRepo,
		notifier: NewNotifier(),
	}
}

// GetCart never fails: a store read problem degrades to the empty cart.
func (cs *CartService) GetCart() (cart entities.Cart) {
	cart, err := cs.cr.GetCart()
	if err != nil {
		log.Printf("GetCart: %v", err)
		cart = entities.Cart{Items: []entities.CartItem{}}
	}
	recalculate(&cart)
	return
}

func (cs *CartService) AddItem(p entities.Product, size, color string, quantity int) (cart entities.Cart, err error) {
	if quantity < 1 {
		quantity = 1
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cart, err = cs.cr.GetCart()
	if err != nil {
		return
	}
	id := entities.LineItemId(p.Id, size, color)
	found := false
	for i := range cart.Items {
		if cart.Items[i].Id != id {
			continue
		}
		found = true
		next := cart.Items[i].Quantity + quantity
		if cart.Items[i].MaxStock > 0 && next > cart.Items[i].MaxStock {
			// permissive clamp: add what the ceiling allows
			next = cart.Items[i].MaxStock
		}
		cart.Items[i].Quantity = next
		break
	}
	if !found {
		if p.Stock > 0 && quantity > p.Stock {
			quantity = p.Stock
		}
		cart.Items = append(cart.Items, entities.CartItem{
			Id:          id,
			ProductId:   p.Id,
			Name:        p.Name,
			Price:       p.Price,
			Quantity:    quantity,
			Image:       p.Image,
			Brand:       p.Brand,
			Description: p.Description,
			Size:        size,
			Color:       color,
			MaxStock:    p.Stock,
		})
	}
	cart, err = cs.persist(cart)
	return
}

// UpdateQuantity sets the quantity directly, clamped to the item's stock
// ceiling when one is known. quantity < 1 is a no-op; deletion goes
// through RemoveItem.
func (cs *CartService) UpdateQuantity(id string, quantity int) (cart entities.Cart, err error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cart, err = cs.cr.GetCart()
	if err != nil {
		return
	}
	recalculate(&cart)
	if quantity < 1 {
		return
	}
	changed := false
	for i := range cart.Items {
		if cart.Items[i].Id != id {
			continue
		}
		if cart.Items[i].MaxStock > 0 && quantity > cart.Items[i].MaxStock {
			quantity = cart.Items[i].MaxStock
		}
		changed = cart.Items[i].Quantity != quantity
		cart.Items[i].Quantity = quantity
		break
	}
	if !changed {
		return
	}
	cart, err = cs.persist(cart)
	return
}

func (cs *CartService) RemoveItem(id string) (cart entities.Cart, err error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cart, err = cs.cr.GetCart()
	if err != nil {
		return
	}
	kept := cart.Items[:0]
	for _, it := range cart.Items {
		if it.Id != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(cart.Items) {
		recalculate(&cart)
		return
	}
	cart.Items = kept
	cart, err = cs.persist(cart)
	return
}

func (cs *CartService) ClearCart() (err error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	err = cs.cr.ClearCart()
	if err != nil {
		return
	}
	cs.notifier.publish()
	return
}

func (cs *CartService) Subscribe(fn func()) (cancel func()) {
	return cs.notifier.Subscribe(fn)
}

func (cs *CartService) persist(cart entities.Cart) (entities.Cart, error) {
	recalculate(&cart)
	err := cs.cr.SaveCart(cart)
	if err != nil {
		return cart, err
	}
	cs.notifier.publish()
	return cart, nil
}

// itemCount is the sum of line-item quantities, uniformly.
func recalculate(cart *entities.Cart) {
	var total float64
	var count int
	for _, it := range cart.Items {
		total = total + it.Price*float64(it.Quantity)
		count = count + it.Quantity
	}
	cart.Total = total
	cart.ItemCount = count
}
