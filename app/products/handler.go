package products

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/commerceops/admin-api/models"
)

type Product struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	SKU         string    `json:"sku"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductProvider interface {
	Create(p *models.Product) error
	GetByID(id uint) (*models.Product, error)
	List(skip, limit int, category string) ([]models.Product, error)
	Update(id uint, upd models.ProductUpdate) (*models.Product, error)
	Delete(id uint) error
}

type ProductsHandler struct {
	repo ProductProvider
}

func NewProductsHandler(r ProductProvider) *ProductsHandler {
	return &ProductsHandler{
		repo: r,
	}
}

func (h *ProductsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})
}

type createRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	SKU         string  `json:"sku"`
}

func (h *ProductsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.SKU == "" {
		http.Error(w, "Missing name or sku", http.StatusBadRequest)
		return
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       decimal.NewFromFloat(req.Price),
		Category:    req.Category,
		SKU:         req.SKU,
	}
	if err := h.repo.Create(product); err != nil {
		if errors.Is(err, models.ErrDuplicateSKU) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respond(w, http.StatusCreated, toResponse(product))
}

func (h *ProductsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)
	category := r.URL.Query().Get("category")

	res, err := h.repo.List(skip, limit, category)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	products := make([]Product, len(res))
	for i := range res {
		products[i] = toResponse(&res[i])
	}
	respond(w, http.StatusOK, products)
}

func (h *ProductsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	product, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, toResponse(product))
}

type updateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	SKU         *string  `json:"sku"`
}

func (h *ProductsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	upd := models.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		SKU:         req.SKU,
	}
	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		upd.Price = &price
	}

	product, err := h.repo.Update(id, upd)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrProductNotFound):
			http.Error(w, "Product not found", http.StatusNotFound)
		case errors.Is(err, models.ErrDuplicateSKU):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	respond(w, http.StatusOK, toResponse(product))
}

func (h *ProductsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(id); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toResponse(p *models.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Category:    p.Category,
		SKU:         p.SKU,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
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
