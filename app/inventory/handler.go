package inventory

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/commerceops/admin-api/models"
)

type Inventory struct {
	ID              uint       `json:"id"`
	ProductID       uint       `json:"product_id"`
	Quantity        int        `json:"quantity"`
	ReorderLevel    int        `json:"reorder_level"`
	LastRestockDate *time.Time `json:"last_restock_date,omitempty"`
	Warehouse       string     `json:"warehouse"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type InventoryProvider interface {
	List(skip, limit int, warehouse string) ([]models.Inventory, error)
	LowStock() ([]models.Inventory, error)
	Update(productID uint, upd models.InventoryUpdate) (*models.Inventory, error)
	Restock(productID uint, req models.InventoryUpdate) (*models.Inventory, error)
}

type InventoryHandler struct {
	repo InventoryProvider
}

func NewInventoryHandler(r InventoryProvider) *InventoryHandler {
	return &InventoryHandler{
		repo: r,
	}
}

func (h *InventoryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/inventory", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Get("/low-stock", h.HandleLowStock)
		r.Put("/{product_id}", h.HandleUpdate)
		r.Post("/restock", h.HandleRestock) // ?product_id=...
	})
}

func (h *InventoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)
	warehouse := r.URL.Query().Get("warehouse")

	res, err := h.repo.List(skip, limit, warehouse)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, toResponses(res))
}

func (h *InventoryHandler) HandleLowStock(w http.ResponseWriter, r *http.Request) {
	res, err := h.repo.LowStock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, toResponses(res))
}

type updateRequest struct {
	Quantity     *int    `json:"quantity"`
	ReorderLevel *int    `json:"reorder_level"`
	Warehouse    *string `json:"warehouse"`
}

func (r updateRequest) toUpdate() models.InventoryUpdate {
	return models.InventoryUpdate{
		Quantity:     r.Quantity,
		ReorderLevel: r.ReorderLevel,
		Warehouse:    r.Warehouse,
	}
}

func (h *InventoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseUint(chi.URLParam(r, "product_id"), 10, 32)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	inv, err := h.repo.Update(uint(productID), req.toUpdate())
	if err != nil {
		if errors.Is(err, models.ErrInventoryNotFound) {
			http.Error(w, "Inventory for this product not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, toResponse(inv))
}

// HandleRestock increments stock instead of replacing it. A quantity of 0 is
// accepted: the restock date is stamped either way.
func (h *InventoryHandler) HandleRestock(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseUint(r.URL.Query().Get("product_id"), 10, 32)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	inv, err := h.repo.Restock(uint(productID), req.toUpdate())
	if err != nil {
		if errors.Is(err, models.ErrInventoryNotFound) {
			http.Error(w, "Inventory for this product not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, toResponse(inv))
}

func toResponse(inv *models.Inventory) Inventory {
	return Inventory{
		ID:              inv.ID,
		ProductID:       inv.ProductID,
		Quantity:        inv.Quantity,
		ReorderLevel:    inv.ReorderLevel,
		LastRestockDate: inv.LastRestockDate,
		Warehouse:       inv.Warehouse,
		UpdatedAt:       inv.UpdatedAt,
	}
}

func toResponses(items []models.Inventory) []Inventory {
	out := make([]Inventory, len(items))
	for i := range items {
		out[i] = toResponse(&items[i])
	}
	return out
}

func parsePagination(r *http.Request) (skip, limit int) {
	skip = 0
	limit = 100

	if sStr := r.URL.Query().Get("skip"); sStr != "" {
		if s, err := strconv.Atoi(sStr); err == nil && s >= 0 {
			skip = s
		}
	}
	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > 500 {
				limit = 500
			} else {
				limit = l
			}
		}
	}
	return skip, limit
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
