package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrInventoryNotFound is returned when a product has no inventory row.
var ErrInventoryNotFound = errors.New("inventory for this product not found")

// InventoryUpdate carries a partial update. Nil fields are left untouched.
// On Update a present Quantity replaces the stored value; on Restock it is a
// delta added to current stock.
type InventoryUpdate struct {
	Quantity     *int
	ReorderLevel *int
	Warehouse    *string
}

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{
		db: db,
	}
}

func (r *InventoryRepository) Create(inv *Inventory) error {
	return r.db.Create(inv).Error
}

func (r *InventoryRepository) GetByProduct(productID uint) (*Inventory, error) {
	var inv Inventory
	if err := r.db.Where("product_id = ?", productID).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *InventoryRepository) List(skip, limit int, warehouse string) ([]Inventory, error) {
	query := r.db.Model(&Inventory{})

	if warehouse != "" {
		query = query.Where("warehouse = ?", warehouse)
	}

	var items []Inventory
	if err := query.Order("id").Offset(skip).Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// LowStock returns every row with quantity strictly below its reorder level.
func (r *InventoryRepository) LowStock() ([]Inventory, error) {
	var items []Inventory
	if err := r.db.Where("quantity < reorder_level").Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update applies only the fields present in upd to the stored row.
func (r *InventoryRepository) Update(productID uint, upd InventoryUpdate) (*Inventory, error) {
	inv, err := r.GetByProduct(productID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if upd.Quantity != nil {
		fields["quantity"] = *upd.Quantity
	}
	if upd.ReorderLevel != nil {
		fields["reorder_level"] = *upd.ReorderLevel
	}
	if upd.Warehouse != nil {
		fields["warehouse"] = *upd.Warehouse
	}
	if len(fields) == 0 {
		return inv, nil
	}

	if err := r.db.Model(inv).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.GetByProduct(productID)
}

// Restock adds the supplied quantity to current stock and stamps the restock
// date. The increment runs inside the database, so concurrent restocks are
// additive rather than last-writer-wins. An explicit quantity of 0 is a valid
// restock: nothing is added, but the date is still stamped. ReorderLevel and
// Warehouse, when present, are replaced, not incremented.
func (r *InventoryRepository) Restock(productID uint, req InventoryUpdate) (*Inventory, error) {
	if _, err := r.GetByProduct(productID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"last_restock_date": time.Now(),
	}
	if req.Quantity != nil {
		fields["quantity"] = gorm.Expr("quantity + ?", *req.Quantity)
	}
	if req.ReorderLevel != nil {
		fields["reorder_level"] = *req.ReorderLevel
	}
	if req.Warehouse != nil {
		fields["warehouse"] = *req.Warehouse
	}

	err := r.db.Model(&Inventory{}).Where("product_id = ?", productID).Updates(fields).Error
	if err != nil {
		return nil, err
	}
	return r.GetByProduct(productID)
}
