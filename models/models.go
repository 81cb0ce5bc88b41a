package models

import (
	"errors"
)

var ErrBadRequest = errors.New("bad request")
var ErrUnautorized = errors.New("unautorized")
var ErrServerError = errors.New("server error")
var ErrNotFoundError = errors.New("not found")
var ErrNotAllowed = errors.New("not acceptable")
var ErrUnknownRoute = errors.New("unknown route")
var ErrStoreUnavailable = errors.New("store unavailable")

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SigninResponse struct {
	Token string `json:"token"`
}

type ProductList struct {
	Products []ProductData `json:"products"`
}

type ProductData struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	OldPrice    float64  `json:"old_price"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Stock       int      `json:"stock"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Category    string   `json:"category"`
}
