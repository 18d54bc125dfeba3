package sales

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commerceops/admin-api/models"
)

// --- Mock Repo ---

type MockSalesRepo struct {
	Err error

	Summary    models.RevenueSummary
	Sales      []models.Sale
	ByProduct  []models.ProductSales
	ByCategory []models.CategorySales

	// Fields to capture call arguments
	lastPeriod   string
	lastStart    time.Time
	lastEnd      time.Time
	lastCategory string
	lastChannel  string
	lastSkip     int
	lastLimit    int
	lastFilters  models.SaleFilters
	createdSale  *models.Sale
}

func (m *MockSalesRepo) Create(s *models.Sale) error {
	if m.Err != nil {
		return m.Err
	}
	s.ID = 1
	s.TotalAmount = s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
	if s.SaleDate.IsZero() {
		s.SaleDate = time.Now()
	}
	m.createdSale = s
	return nil
}

func (m *MockSalesRepo) List(skip, limit int, f models.SaleFilters) ([]models.Sale, error) {
	m.lastSkip = skip
	m.lastLimit = limit
	m.lastFilters = f
	return m.Sales, m.Err
}

func (m *MockSalesRepo) RevenueAnalytics(period string, start, end time.Time, category, channel string) (models.RevenueSummary, error) {
	m.lastPeriod = period
	m.lastStart = start
	m.lastEnd = end
	m.lastCategory = category
	m.lastChannel = channel
	if m.Err != nil {
		return models.RevenueSummary{}, m.Err
	}
	summary := m.Summary
	summary.Period = period
	return summary, nil
}

func (m *MockSalesRepo) CompareRevenue(p1Start, p1End, p2Start, p2End time.Time, category, channel string) ([]models.RevenueSummary, error) {
	m.lastCategory = category
	m.lastChannel = channel
	if m.Err != nil {
		return nil, m.Err
	}
	first := m.Summary
	first.Period = "period1"
	second := m.Summary
	second.Period = "period2"
	return []models.RevenueSummary{first, second}, nil
}

func (m *MockSalesRepo) SalesByProduct(start, end time.Time, limit int) ([]models.ProductSales, error) {
	m.lastStart = start
	m.lastEnd = end
	m.lastLimit = limit
	return m.ByProduct, m.Err
}

func (m *MockSalesRepo) SalesByCategory(start, end time.Time) ([]models.CategorySales, error) {
	m.lastStart = start
	m.lastEnd = end
	return m.ByCategory, m.Err
}

// --- Tests ---

func TestHandleRevenue(t *testing.T) {
	testCases := []struct {
		name               string
		url                string
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCalls     func(t *testing.T, repo *MockSalesRepo)
	}{
		{
			name:               "Missing period",
			url:                "/sales/analytics/revenue",
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Explicit window and filters",
			url:                "/sales/analytics/revenue?period=monthly&start_date=2024-01-01&end_date=2024-01-31&category=Gadgets&channel=Amazon",
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Analytics
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, 150.0, resp.TotalSales)
				assert.Equal(t, int64(12), resp.TotalQuantity)
				assert.Equal(t, "monthly", resp.Period)
			},
			checkRepoCalls: func(t *testing.T, repo *MockSalesRepo) {
				assert.Equal(t, "monthly", repo.lastPeriod)
				assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), repo.lastStart)
				assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), repo.lastEnd)
				assert.Equal(t, "Gadgets", repo.lastCategory)
				assert.Equal(t, "Amazon", repo.lastChannel)
			},
		},
		{
			name:               "Dates default to the last 30 days",
			url:                "/sales/analytics/revenue?period=daily",
			expectedStatusCode: http.StatusOK,
			checkRepoCalls: func(t *testing.T, repo *MockSalesRepo) {
				assert.Equal(t, 30*24*time.Hour, repo.lastEnd.Sub(repo.lastStart))
				assert.WithinDuration(t, time.Now(), repo.lastEnd, 24*time.Hour)
			},
		},
		{
			name:               "Invalid start date",
			url:                "/sales/analytics/revenue?period=daily&start_date=not-a-date",
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockSalesRepo{
				Summary: models.RevenueSummary{
					TotalSales:    decimal.NewFromFloat(150.0),
					TotalQuantity: 12,
				},
			}
			handler := NewSalesHandler(repo)

			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			rec := httptest.NewRecorder()
			handler.HandleRevenue(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
			if tc.checkRepoCalls != nil {
				tc.checkRepoCalls(t, repo)
			}
		})
	}
}

func TestHandleCompare(t *testing.T) {
	t.Run("Success returns period1 then period2", func(t *testing.T) {
		repo := &MockSalesRepo{
			Summary: models.RevenueSummary{
				TotalSales:    decimal.NewFromFloat(99.5),
				TotalQuantity: 4,
			},
		}
		handler := NewSalesHandler(repo)

		url := "/sales/analytics/compare?period1_start=2024-01-01&period1_end=2024-01-31&period2_start=2024-02-01&period2_end=2024-02-29"
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rec := httptest.NewRecorder()
		handler.HandleCompare(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp []Analytics
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp, 2)
		assert.Equal(t, "period1", resp[0].Period)
		assert.Equal(t, "period2", resp[1].Period)
		assert.Equal(t, 99.5, resp[0].TotalSales)
	})

	t.Run("Missing date is rejected", func(t *testing.T) {
		handler := NewSalesHandler(&MockSalesRepo{})

		url := "/sales/analytics/compare?period1_start=2024-01-01&period1_end=2024-01-31&period2_start=2024-02-01"
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rec := httptest.NewRecorder()
		handler.HandleCompare(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "period2_end")
	})
}

func TestHandleByProduct(t *testing.T) {
	repo := &MockSalesRepo{
		ByProduct: []models.ProductSales{
			{ProductID: 2, TotalSales: decimal.NewFromFloat(150.0), TotalQuantity: 3, Period: "2024-03-01 to 2024-03-31"},
			{ProductID: 1, TotalSales: decimal.NewFromFloat(10.0), TotalQuantity: 1, Period: "2024-03-01 to 2024-03-31"},
		},
	}
	handler := NewSalesHandler(repo)

	url := "/sales/by-product?start_date=2024-03-01&end_date=2024-03-31&limit=3"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	handler.HandleByProduct(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, repo.lastLimit)

	var resp []Analytics
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, uint(2), resp[0].ProductID)
	assert.Equal(t, 150.0, resp[0].TotalSales)
	assert.Equal(t, "2024-03-01 to 2024-03-31", resp[0].Period)
}

func TestHandleByProductDefaultLimit(t *testing.T) {
	repo := &MockSalesRepo{}
	handler := NewSalesHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/sales/by-product", nil)
	rec := httptest.NewRecorder()
	handler.HandleByProduct(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, repo.lastLimit)
}

func TestHandleByCategory(t *testing.T) {
	repo := &MockSalesRepo{
		ByCategory: []models.CategorySales{
			{Category: "Clothing", TotalSales: decimal.NewFromFloat(200.0), TotalQuantity: 1, Period: "2024-03-01 to 2024-03-31"},
			{Category: "Gadgets", TotalSales: decimal.NewFromFloat(50.0), TotalQuantity: 3, Period: "2024-03-01 to 2024-03-31"},
		},
	}
	handler := NewSalesHandler(repo)

	url := "/sales/by-category?start_date=2024-03-01&end_date=2024-03-31"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	handler.HandleByCategory(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []Analytics
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Clothing", resp[0].Category)
	assert.Zero(t, resp[0].ProductID)
}

func TestHandleCreateSale(t *testing.T) {
	testCases := []struct {
		name               string
		body               string
		expectedStatusCode int
	}{
		{
			name:               "Success",
			body:               `{"product_id": 1, "quantity": 3, "unit_price": 9.0, "channel": "Amazon"}`,
			expectedStatusCode: http.StatusCreated,
		},
		{
			name:               "Invalid JSON body",
			body:               `{`,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Zero quantity",
			body:               `{"product_id": 1, "quantity": 0, "unit_price": 9.0}`,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Missing product",
			body:               `{"quantity": 3, "unit_price": 9.0}`,
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockSalesRepo{}
			handler := NewSalesHandler(repo)

			req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			handler.HandleCreate(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedStatusCode == http.StatusCreated {
				var resp Sale
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, 27.0, resp.TotalAmount)
				assert.Equal(t, 3, resp.Quantity)
			}
		})
	}
}

func TestHandleListSales(t *testing.T) {
	repo := &MockSalesRepo{}
	handler := NewSalesHandler(repo)

	url := "/sales?skip=5&limit=20&start_date=2024-01-01&end_date=2024-01-31&product_id=7&category=Gadgets&channel=Amazon"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	handler.HandleList(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, repo.lastSkip)
	assert.Equal(t, 20, repo.lastLimit)
	require.NotNil(t, repo.lastFilters.StartDate)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *repo.lastFilters.StartDate)
	require.NotNil(t, repo.lastFilters.EndDate)
	require.NotNil(t, repo.lastFilters.ProductID)
	assert.Equal(t, uint(7), *repo.lastFilters.ProductID)
	assert.Equal(t, "Gadgets", repo.lastFilters.Category)
	assert.Equal(t, "Amazon", repo.lastFilters.Channel)
}
