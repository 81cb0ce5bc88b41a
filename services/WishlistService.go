package services

import (
	"log"
	"sync"
	"time"

	"modaShop/entities"
	"modaShop/repository"
)

type WishlistService struct {
	mu       sync.Mutex
	wr       repository.WishlistRepository
	notifier *Notifier
	now      func() time.Time
}

func NewWishlistService(wishlistRepo repository.WishlistRepository) *WishlistService {
	return &WishlistService{
		wr:       wishlistRepo,
		notifier: NewNotifier(),
		now:      time.Now,
	}
}

func (ws *WishlistService) GetWishlist() (list entities.Wishlist) {
	list, err := ws.wr.GetWishlist()
	if err != nil {
		log.Printf("GetWishlist: %v", err)
		list = entities.Wishlist{Items: []entities.WishlistItem{}}
	}
	return
}

// AddItem is idempotent by id: re-adding a wishlisted product keeps the
// original entry and its AddedAt.
func (ws *WishlistService) AddItem(p entities.Product) (list entities.Wishlist, err error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	list, err = ws.wr.GetWishlist()
	if err != nil {
		return
	}
	for _, it := range list.Items {
		if it.Id == p.Id {
			return
		}
	}
	list.Items = append(list.Items, entities.WishlistItem{
		Id:      p.Id,
		Title:   p.Name,
		Price:   p.Price,
		Image:   p.Image,
		AddedAt: ws.now(),
	})
	err = ws.wr.SaveWishlist(list)
	if err != nil {
		return
	}
	ws.notifier.publish()
	return
}

func (ws *WishlistService) RemoveItem(id string) (list entities.Wishlist, err error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	list, err = ws.wr.GetWishlist()
	if err != nil {
		return
	}
	kept := list.Items[:0]
	for _, it := range list.Items {
		if it.Id != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(list.Items) {
		return
	}
	list.Items = kept
	err = ws.wr.SaveWishlist(list)
	if err != nil {
		return
	}
	ws.notifier.publish()
	return
}

func (ws *WishlistService) IsInWishlist(id string) (exists bool) {
	list := ws.GetWishlist()
	for _, it := range list.Items {
		if it.Id == id {
			exists = true
			return
		}
	}
	return
}

func (ws *WishlistService) ClearWishlist() (err error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	err = ws.wr.SaveWishlist(entities.Wishlist{Items: []entities.WishlistItem{}})
	if err != nil {
		return
	}
	ws.notifier.publish()
	return
}

func (ws *WishlistService) Subscribe(fn func()) (cancel func()) {
	return ws.notifier.Subscribe(fn)
}
