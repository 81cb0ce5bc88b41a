package repository

import (
	"encoding/json"
	"errors"
	"log"

	"modaShop/entities"
	"modaShop/models"
)

const wishlistKey = "wishlist"

type WishlistRepository interface {
	GetWishlist() (list entities.Wishlist, err error)
	SaveWishlist(list entities.Wishlist) (err error)
}

type WishlistRepo struct {
	store KVStore
}

func NewWishlistRepository(store KVStore) (WishlistRepository, error) {
	if store == nil {
		return nil, errors.New("store must be non-nil")
	}
	return &WishlistRepo{
		store: store,
	}, nil
}

func (w *WishlistRepo) GetWishlist() (list entities.Wishlist, err error) {
	list = entities.Wishlist{Items: []entities.WishlistItem{}}
	val, exists, e := w.store.Get(wishlistKey)
	if e != nil {
		err = e
		return
	}
	if !exists {
		return
	}
	e = json.Unmarshal([]byte(val), &list)
	if e != nil {
		log.Printf("GetWishlist: corrupt document: %v", e)
		if e2 := w.store.Set(wishlistKey+".corrupt", val); e2 != nil {
			log.Printf("GetWishlist: could not preserve corrupt document: %v", e2)
		}
		list = entities.Wishlist{Items: []entities.WishlistItem{}}
	}
	if list.Items == nil {
		list.Items = []entities.WishlistItem{}
	}
	return
}

func (w *WishlistRepo) SaveWishlist(list entities.Wishlist) (err error) {
	jsonData, err := json.Marshal(list)
	if err != nil {
		log.Printf("SaveWishlist: %v", err)
		err = models.ErrServerError
		return
	}
	err = w.store.Set(wishlistKey, string(jsonData))
	return
}
