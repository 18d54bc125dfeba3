package sales

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/commerceops/admin-api/models"
)

type Sale struct {
	ID          uint      `json:"id"`
	ProductID   uint      `json:"product_id"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	TotalAmount float64   `json:"total_amount"`
	SaleDate    time.Time `json:"sale_date"`
	Channel     string    `json:"channel"`
}

// Analytics is the wire shape shared by the revenue, comparison, by-product
// and by-category endpoints. ProductID and Category are set only by the
// roll-ups that group on them.
type Analytics struct {
	ProductID     uint    `json:"product_id,omitempty"`
	Category      string  `json:"category,omitempty"`
	TotalSales    float64 `json:"total_sales"`
	TotalQuantity int64   `json:"total_quantity"`
	Period        string  `json:"period"`
}

type SalesProvider interface {
	Create(s *models.Sale) error
	List(skip, limit int, f models.SaleFilters) ([]models.Sale, error)
	RevenueAnalytics(period string, start, end time.Time, category, channel string) (models.RevenueSummary, error)
	CompareRevenue(p1Start, p1End, p2Start, p2End time.Time, category, channel string) ([]models.RevenueSummary, error)
	SalesByProduct(start, end time.Time, limit int) ([]models.ProductSales, error)
	SalesByCategory(start, end time.Time) ([]models.CategorySales, error)
}

type SalesHandler struct {
	repo SalesProvider
}

func NewSalesHandler(r SalesProvider) *SalesHandler {
	return &SalesHandler{
		repo: r,
	}
}

func (h *SalesHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/sales", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Get("/analytics/revenue", h.HandleRevenue)
		r.Get("/analytics/compare", h.HandleCompare)
		r.Get("/by-product", h.HandleByProduct)
		r.Get("/by-category", h.HandleByCategory)
	})
}

type createRequest struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Channel   string  `json:"channel"`
}

func (h *SalesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.ProductID == 0 || req.Quantity <= 0 || req.UnitPrice < 0 {
		http.Error(w, "Missing or invalid product_id, quantity, or unit_price", http.StatusBadRequest)
		return
	}

	sale := &models.Sale{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: decimal.NewFromFloat(req.UnitPrice),
		Channel:   req.Channel,
	}
	if err := h.repo.Create(sale); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusCreated, toResponse(sale))
}

func (h *SalesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)
	q := r.URL.Query()

	filters := models.SaleFilters{
		Category: q.Get("category"),
		Channel:  q.Get("channel"),
	}
	if s := q.Get("start_date"); s != "" {
		start, err := parseDate(s)
		if err != nil {
			http.Error(w, "Invalid start_date", http.StatusBadRequest)
			return
		}
		filters.StartDate = &start
	}
	if s := q.Get("end_date"); s != "" {
		end, err := parseDate(s)
		if err != nil {
			http.Error(w, "Invalid end_date", http.StatusBadRequest)
			return
		}
		filters.EndDate = &end
	}
	if s := q.Get("product_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			http.Error(w, "Invalid product_id", http.StatusBadRequest)
			return
		}
		pid := uint(id)
		filters.ProductID = &pid
	}

	res, err := h.repo.List(skip, limit, filters)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sales := make([]Sale, len(res))
	for i := range res {
		sales[i] = toResponse(&res[i])
	}
	respond(w, http.StatusOK, sales)
}

// HandleRevenue reports revenue over a date window, defaulting to the last 30
// days. The period value is an opaque label echoed back in the response; the
// aggregation is governed by the date window alone.
func (h *SalesHandler) HandleRevenue(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	period := q.Get("period")
	if period == "" {
		http.Error(w, "Missing period", http.StatusBadRequest)
		return
	}

	start, end, err := windowOrDefault(q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.repo.RevenueAnalytics(period, start, end, q.Get("category"), q.Get("channel"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respond(w, http.StatusOK, Analytics{
		TotalSales:    summary.TotalSales.InexactFloat64(),
		TotalQuantity: summary.TotalQuantity,
		Period:        summary.Period,
	})
}

func (h *SalesHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	dates := make([]time.Time, 4)
	for i, key := range []string{"period1_start", "period1_end", "period2_start", "period2_end"} {
		d, err := parseDate(q.Get(key))
		if err != nil {
			http.Error(w, "Missing or invalid "+key, http.StatusBadRequest)
			return
		}
		dates[i] = d
	}

	summaries, err := h.repo.CompareRevenue(dates[0], dates[1], dates[2], dates[3], q.Get("category"), q.Get("channel"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]Analytics, len(summaries))
	for i, s := range summaries {
		out[i] = Analytics{
			TotalSales:    s.TotalSales.InexactFloat64(),
			TotalQuantity: s.TotalQuantity,
			Period:        s.Period,
		}
	}
	respond(w, http.StatusOK, out)
}

func (h *SalesHandler) HandleByProduct(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, end, err := windowOrDefault(q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	limit := 10
	if lStr := q.Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil && l > 0 {
			limit = l
		}
	}

	results, err := h.repo.SalesByProduct(start, end, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]Analytics, len(results))
	for i, res := range results {
		out[i] = Analytics{
			ProductID:     res.ProductID,
			TotalSales:    res.TotalSales.InexactFloat64(),
			TotalQuantity: res.TotalQuantity,
			Period:        res.Period,
		}
	}
	respond(w, http.StatusOK, out)
}

func (h *SalesHandler) HandleByCategory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, end, err := windowOrDefault(q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	results, err := h.repo.SalesByCategory(start, end)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]Analytics, len(results))
	for i, res := range results {
		out[i] = Analytics{
			Category:      res.Category,
			TotalSales:    res.TotalSales.InexactFloat64(),
			TotalQuantity: res.TotalQuantity,
			Period:        res.Period,
		}
	}
	respond(w, http.StatusOK, out)
}

func toResponse(s *models.Sale) Sale {
	return Sale{
		ID:          s.ID,
		ProductID:   s.ProductID,
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice.InexactFloat64(),
		TotalAmount: s.TotalAmount.InexactFloat64(),
		SaleDate:    s.SaleDate,
		Channel:     s.Channel,
	}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// windowOrDefault parses optional start/end dates, falling back to the last
// 30 days.
func windowOrDefault(startStr, endStr string) (time.Time, time.Time, error) {
	end := startOfDay(time.Now())
	start := end.AddDate(0, 0, -30)

	if startStr != "" {
		parsed, err := parseDate(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = parsed
	}
	if endStr != "" {
		parsed, err := parseDate(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = parsed
	}
	return start, end, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
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
