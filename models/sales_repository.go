package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleFilters narrows a sales listing. Nil or empty fields are skipped;
// Category joins through the products table.
type SaleFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	ProductID *uint
	Category  string
	Channel   string
}

// RevenueSummary is a windowed revenue/quantity aggregate. Period is the
// caller's label and is echoed back untouched.
type RevenueSummary struct {
	TotalSales    decimal.Decimal
	TotalQuantity int64
	Period        string
}

// ProductSales is a per-product roll-up over a date window.
type ProductSales struct {
	ProductID     uint
	TotalSales    decimal.Decimal
	TotalQuantity int64
	Period        string
}

// CategorySales is a per-category roll-up over a date window.
type CategorySales struct {
	Category      string
	TotalSales    decimal.Decimal
	TotalQuantity int64
	Period        string
}

type SalesRepository struct {
	db *gorm.DB
}

func NewSalesRepository(db *gorm.DB) *SalesRepository {
	return &SalesRepository{
		db: db,
	}
}

// Create records a sale. TotalAmount is computed here, once; it is never
// recomputed if the product's price changes later. SaleDate defaults to now
// when unset.
func (r *SalesRepository) Create(s *Sale) error {
	s.TotalAmount = s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
	if s.SaleDate.IsZero() {
		s.SaleDate = time.Now()
	}
	return r.db.Create(s).Error
}

// dateWindow constrains sale_date to [start, end + 1 day). Adding a day keeps
// the whole end date inside the window regardless of time-of-day precision.
func dateWindow(query *gorm.DB, start, end time.Time) *gorm.DB {
	return query.Where("sale_date >= ? AND sale_date < ?", start, end.AddDate(0, 0, 1))
}

func (r *SalesRepository) List(skip, limit int, f SaleFilters) ([]Sale, error) {
	query := r.db.Model(&Sale{})

	if f.StartDate != nil {
		query = query.Where("sale_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		// include the entire end date
		query = query.Where("sale_date < ?", f.EndDate.AddDate(0, 0, 1))
	}
	if f.ProductID != nil {
		query = query.Where("sales.product_id = ?", *f.ProductID)
	}
	if f.Channel != "" {
		query = query.Where("channel = ?", f.Channel)
	}
	if f.Category != "" {
		query = query.
			Joins("JOIN products ON products.id = sales.product_id").
			Where("products.category = ?", f.Category)
	}

	var sales []Sale
	if err := query.Order("sales.id").Offset(skip).Limit(limit).Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// RevenueAnalytics sums revenue and quantity over a date window, optionally
// narrowed by category and channel. A window with no matching sales yields
// zeros, never nulls. The period label does not affect the aggregation; it is
// carried through for the caller.
func (r *SalesRepository) RevenueAnalytics(period string, start, end time.Time, category, channel string) (RevenueSummary, error) {
	query := dateWindow(r.db.Model(&Sale{}), start, end).
		Select("COALESCE(SUM(sales.total_amount), 0) AS total_sales, COALESCE(SUM(sales.quantity), 0) AS total_quantity")

	if channel != "" {
		query = query.Where("channel = ?", channel)
	}
	if category != "" {
		query = query.
			Joins("JOIN products ON products.id = sales.product_id").
			Where("products.category = ?", category)
	}

	var summary RevenueSummary
	if err := query.Scan(&summary).Error; err != nil {
		return RevenueSummary{}, err
	}
	summary.Period = period
	return summary, nil
}

// CompareRevenue computes the same aggregate over two independent windows
// with identical filters. The windows may overlap or be given in either
// chronological order; results come back in period1-then-period2 order.
func (r *SalesRepository) CompareRevenue(p1Start, p1End, p2Start, p2End time.Time, category, channel string) ([]RevenueSummary, error) {
	period1, err := r.RevenueAnalytics("period1", p1Start, p1End, category, channel)
	if err != nil {
		return nil, err
	}
	period2, err := r.RevenueAnalytics("period2", p2Start, p2End, category, channel)
	if err != nil {
		return nil, err
	}
	return []RevenueSummary{period1, period2}, nil
}

// SalesByProduct rolls up sales in the window per product, ordered by revenue
// descending with product id as the tie-break. Products with no sales in the
// window are absent from the result.
func (r *SalesRepository) SalesByProduct(start, end time.Time, limit int) ([]ProductSales, error) {
	query := dateWindow(r.db.Model(&Sale{}), start, end).
		Select("product_id, SUM(total_amount) AS total_sales, SUM(quantity) AS total_quantity").
		Group("product_id").
		Order("total_sales DESC").
		Order("product_id").
		Limit(limit)

	var results []ProductSales
	if err := query.Scan(&results).Error; err != nil {
		return nil, err
	}

	period := windowLabel(start, end)
	for i := range results {
		results[i].Period = period
	}
	return results, nil
}

// SalesByCategory rolls up sales in the window per product category, ordered
// by revenue descending. Only categories with at least one matching sale
// appear.
func (r *SalesRepository) SalesByCategory(start, end time.Time) ([]CategorySales, error) {
	query := dateWindow(r.db.Model(&Sale{}), start, end).
		Select("products.category AS category, SUM(sales.total_amount) AS total_sales, SUM(sales.quantity) AS total_quantity").
		Joins("JOIN products ON products.id = sales.product_id").
		Group("products.category").
		Order("total_sales DESC")

	var results []CategorySales
	if err := query.Scan(&results).Error; err != nil {
		return nil, err
	}

	period := windowLabel(start, end)
	for i := range results {
		results[i].Period = period
	}
	return results, nil
}

func windowLabel(start, end time.Time) string {
	return fmt.Sprintf("%s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
}
