package repository

import (
	"testing"

	"modaShop/entities"
)

func TestCartRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	repo, err := NewCartRepository(store)
	if err != nil {
		t.Fatalf("NewCartRepository: %v", err)
	}

	cart := entities.Cart{
		Items: []entities.CartItem{
			{Id: "p1:M:red", ProductId: "p1", Name: "Sneaker", Price: 59.9, Quantity: 2, Size: "M", Color: "red", MaxStock: 4},
		},
		Total:     119.8,
		ItemCount: 2,
	}
	if err := repo.SaveCart(cart); err != nil {
		t.Fatalf("SaveCart: %v", err)
	}
	got, err := repo.GetCart()
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Id != "p1:M:red" || got.Items[0].Quantity != 2 {
		t.Fatalf("round trip mangled cart: %+v", got)
	}
}

func TestMissingCartIsEmpty(t *testing.T) {
	repo, _ := NewCartRepository(NewMemoryStore())

	cart, err := repo.GetCart()
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if cart.Items == nil || len(cart.Items) != 0 {
		t.Fatalf("expected empty items slice, got %+v", cart.Items)
	}
}

func TestCorruptCartIsPreservedThenReset(t *testing.T) {
	store := NewMemoryStore()
	repo, _ := NewCartRepository(store)
	store.Set("cart", "{not json")

	cart, err := repo.GetCart()
	if err != nil {
		t.Fatalf("GetCart on corrupt document: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("corrupt document did not degrade to empty: %+v", cart)
	}
	kept, exists, _ := store.Get("cart.corrupt")
	if !exists || kept != "{not json" {
		t.Fatalf("corrupt payload not preserved, got %q exists=%v", kept, exists)
	}
}

func TestClearCartWritesEmptyAggregate(t *testing.T) {
	store := NewMemoryStore()
	repo, _ := NewCartRepository(store)
	repo.SaveCart(entities.Cart{Items: []entities.CartItem{{Id: "p1", Quantity: 1}}})

	if err := repo.ClearCart(); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}
	cart, _ := repo.GetCart()
	if len(cart.Items) != 0 || cart.Total != 0 || cart.ItemCount != 0 {
		t.Fatalf("expected empty aggregate, got %+v", cart)
	}
}
