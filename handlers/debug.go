package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"modaShop/entities"
)

// DebugRouter exposes the live client state for inspection while
// developing. Read-only: mutations stay behind the store services.
func (h *Handler) DebugRouter() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/debug/route", h.DebugRoute).Methods("GET")
	router.HandleFunc("/debug/cart", h.DebugCart).Methods("GET")
	router.HandleFunc("/debug/wishlist", h.DebugWishlist).Methods("GET")
	return router
}

type routeDebug struct {
	Current   entities.Route   `json:"current"`
	History   []entities.Route `json:"history"`
	ActiveTab string           `json:"active_tab"`
}

func (h *Handler) DebugRoute(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, routeDebug{
		Current:   h.nav.Current(),
		History:   h.nav.History(),
		ActiveTab: h.nav.ActiveTab(),
	})
}

func (h *Handler) DebugCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.cs.GetCart())
}

func (h *Handler) DebugWishlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.ws.GetWishlist())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON: %v", err)
	}
}
