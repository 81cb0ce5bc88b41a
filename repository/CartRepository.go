package repository

import (
	"encoding/json"
	"errors"
	"log"

	"modaShop/entities"
	"modaShop/models"
)

const cartKey = "cart"

type CartRepository interface {
	GetCart() (cart entities.Cart, err error)
	SaveCart(cart entities.Cart) (err error)
	ClearCart() (err error)
}

type CartRepo struct {
	store KVStore
}

func NewCartRepository(store KVStore) (CartRepository, error) {
	if store == nil {
		return nil, errors.New("store must be non-nil")
	}
	return &CartRepo{
		store: store,
	}, nil
}

func (c *CartRepo) GetCart() (cart entities.Cart, err error) {
	cart = entities.Cart{Items: []entities.CartItem{}}
	val, exists, e := c.store.Get(cartKey)
	if e != nil {
		err = e
		return
	}
	if !exists {
		return
	}
	e = json.Unmarshal([]byte(val), &cart)
	if e != nil {
		log.Printf("GetCart: corrupt document: %v", e)
		// keep the broken payload around for diagnostics, then start empty
		if e2 := c.store.Set(cartKey+".corrupt", val); e2 != nil {
			log.Printf("GetCart: could not preserve corrupt document: %v", e2)
		}
		cart = entities.Cart{Items: []entities.CartItem{}}
	}
	if cart.Items == nil {
		cart.Items = []entities.CartItem{}
	}
	return
}

func (c *CartRepo) SaveCart(cart entities.Cart) (err error) {
	jsonData, err := json.Marshal(cart)
	if err != nil {
		log.Printf("SaveCart: %v", err)
		err = models.ErrServerError
		return
	}
	err = c.store.Set(cartKey, string(jsonData))
	return
}

func (c *CartRepo) ClearCart() (err error) {
	err = c.store.Set(cartKey, `{"items":[],"total":0,"item_count":0}`)
	return
}
