package services

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"modaShop/entities"
	"modaShop/models"
)

// CatalogService talks to the storefront backend; it is where stock
// ceilings and product data come from.
type CatalogService struct {
	baseURL string
	client  *http.Client
}

func NewCatalogService(baseURL string, timeout time.Duration) (*CatalogService, error) {
	if baseURL == "" {
		return nil, errors.New("baseURL must be non-empty")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CatalogService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (c *CatalogService) Products() (prods []entities.Product, err error) {
	prods, err = c.fetchList("/products")
	return
}

func (c *CatalogService) Deals() (prods []entities.Product, err error) {
	prods, err = c.fetchList("/products/deals")
	return
}

func (c *CatalogService) Search(query string) (prods []entities.Product, err error) {
	prods, err = c.fetchList("/products?q=" + url.QueryEscape(query))
	return
}

func (c *CatalogService) ProductsByCategory(category string) (prods []entities.Product, err error) {
	prods, err = c.fetchList("/products?category=" + url.QueryEscape(category))
	return
}

func (c *CatalogService) ProductById(id string) (p entities.Product, exists bool, err error) {
	resp, e := c.client.Get(c.baseURL + "/products/" + url.PathEscape(id))
	if e != nil {
		log.Printf("ProductById: %v", e)
		err = models.ErrServerError
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("ProductById: status %d", resp.StatusCode)
		err = models.ErrServerError
		return
	}
	var data models.ProductData
	e = json.NewDecoder(resp.Body).Decode(&data)
	if e != nil {
		log.Printf("ProductById: decode: %v", e)
		err = models.ErrServerError
		return
	}
	p = toProduct(data)
	exists = true
	return
}

func (c *CatalogService) Categories() (cats []string, err error) {
	resp, e := c.client.Get(c.baseURL + "/categories")
	if e != nil {
		log.Printf("Categories: %v", e)
		err = models.ErrServerError
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("Categories: status %d", resp.StatusCode)
		err = models.ErrServerError
		return
	}
	e = json.NewDecoder(resp.Body).Decode(&cats)
	if e != nil {
		log.Printf("Categories: decode: %v", e)
		err = models.ErrServerError
	}
	return
}

func (c *CatalogService) fetchList(path string) (prods []entities.Product, err error) {
	resp, e := c.client.Get(c.baseURL + path)
	if e != nil {
		log.Printf("fetchList %s: %v", path, e)
		err = models.ErrServerError
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("fetchList %s: status %d", path, resp.StatusCode)
		err = models.ErrServerError
		return
	}
	var list models.ProductList
	e = json.NewDecoder(resp.Body).Decode(&list)
	if e != nil {
		log.Printf("fetchList %s: decode: %v", path, e)
		err = models.ErrServerError
		return
	}
	prods = make([]entities.Product, 0, len(list.Products))
	for _, data := range list.Products {
		prods = append(prods, toProduct(data))
	}
	return
}

// toProduct copies the backend DTO; OldPrice is kept only when it is a
// real pre-sale price above Price.
func toProduct(data models.ProductData) entities.Product {
	oldPrice := 0.0
	if data.OldPrice > 0 && data.OldPrice > data.Price {
		oldPrice = data.OldPrice
	}
	return entities.Product{
		Id:          data.Id,
		Name:        data.Name,
		Brand:       data.Brand,
		Price:       data.Price,
		OldPrice:    oldPrice,
		Description: data.Description,
		Image:       data.Image,
		Stock:       data.Stock,
		Sizes:       data.Sizes,
		Colors:      data.Colors,
		Category:    data.Category,
	}
}
