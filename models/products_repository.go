package models

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ErrDuplicateSKU is returned when a write collides with an existing SKU.
var ErrDuplicateSKU = errors.New("product with this SKU already exists")

// ProductUpdate carries a partial update. Nil fields are left untouched.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	SKU         *string
}

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) Create(p *Product) error {
	if err := r.db.Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateSKU
		}
		return err
	}
	return nil
}

func (r *ProductsRepository) GetByID(id uint) (*Product, error) {
	var product Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

func (r *ProductsRepository) GetBySKU(sku string) (*Product, error) {
	var product Product
	if err := r.db.Where("sku = ?", sku).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductsRepository) List(skip, limit int, category string) ([]Product, error) {
	query := r.db.Model(&Product{})

	if category != "" {
		query = query.Where("category = ?", category)
	}

	var products []Product
	if err := query.Order("id").Offset(skip).Limit(limit).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Update applies only the fields present in upd to the stored product.
func (r *ProductsRepository) Update(id uint, upd ProductUpdate) (*Product, error) {
	product, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.Price != nil {
		fields["price"] = *upd.Price
	}
	if upd.Category != nil {
		fields["category"] = *upd.Category
	}
	if upd.SKU != nil {
		fields["sku"] = *upd.SKU
	}
	if len(fields) == 0 {
		return product, nil
	}

	if err := r.db.Model(product).Updates(fields).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSKU
		}
		return nil, err
	}
	return r.GetByID(id)
}

// Delete removes a product together with its inventory row. Sales referencing
// the product are kept: they are historical records.
func (r *ProductsRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// The inventory row goes first: it carries an enforced FK to products.
		if err := tx.Where("product_id = ?", id).Delete(&Inventory{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
}
