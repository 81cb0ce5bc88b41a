package entities

import (
	"time"
)

type Product struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	OldPrice    float64  `json:"old_price,omitempty"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Stock       int      `json:"stock"`
	Sizes       []string `json:"sizes,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	Category    string   `json:"category,omitempty"`
}

type CartItem struct {
	Id          string  `json:"id"`
	ProductId   string  `json:"product_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Image       string  `json:"image"`
	Brand       string  `json:"brand"`
	Description string  `json:"description"`
	Size        string  `json:"size,omitempty"`
	Color       string  `json:"color,omitempty"`
	MaxStock    int     `json:"max_stock"`
}

// Total and ItemCount are persisted for inspection only and are
// recomputed from Items on every read.
type Cart struct {
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"item_count"`
}

type WishlistItem struct {
	Id      string    `json:"id"`
	Title   string    `json:"title"`
	Price   float64   `json:"price"`
	Image   string    `json:"image"`
	AddedAt time.Time `json:"added_at"`
}

type Wishlist struct {
	Items []WishlistItem `json:"items"`
}

type Route struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

// LineItemId builds the cart line-item key. Distinct size/color variants
// of one product are distinct line items.
func LineItemId(productId, size, color string) string {
	id := productId
	if size != "" {
		id = id + ":" + size
	}
	if color != "" {
		id = id + ":" + color
	}
	return id
}
