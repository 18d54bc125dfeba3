// Command seed populates the database with demo data: a small catalog, an
// inventory row per product, and ~90 days of randomized sales history across
// channels. It is a no-op when products already exist.
package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/commerceops/admin-api/internal/config"
	"github.com/commerceops/admin-api/models"
)

var catalog = []models.Product{
	{Name: "Wireless Earbuds", Description: "Noise-cancelling wireless earbuds with long battery life", Price: decimal.NewFromFloat(79.99), Category: "Electronics", SKU: "ELEC-001"},
	{Name: "Smart Watch", Description: "Fitness tracking smartwatch with heart rate monitor", Price: decimal.NewFromFloat(149.99), Category: "Electronics", SKU: "ELEC-002"},
	{Name: "Bluetooth Speaker", Description: "Portable waterproof bluetooth speaker", Price: decimal.NewFromFloat(59.99), Category: "Electronics", SKU: "ELEC-003"},
	{Name: "Cotton T-Shirt", Description: "Comfortable 100% cotton t-shirt", Price: decimal.NewFromFloat(19.99), Category: "Clothing", SKU: "CLTH-001"},
	{Name: "Denim Jeans", Description: "Classic straight fit denim jeans", Price: decimal.NewFromFloat(49.99), Category: "Clothing", SKU: "CLTH-002"},
	{Name: "Running Shoes", Description: "Lightweight running shoes with cushioned soles", Price: decimal.NewFromFloat(89.99), Category: "Footwear", SKU: "FOOT-001"},
	{Name: "Coffee Maker", Description: "Programmable coffee maker with timer", Price: decimal.NewFromFloat(69.99), Category: "Kitchen", SKU: "KTCH-001"},
	{Name: "Blender", Description: "High-speed blender for smoothies and soups", Price: decimal.NewFromFloat(49.99), Category: "Kitchen", SKU: "KTCH-002"},
	{Name: "Yoga Mat", Description: "Non-slip yoga mat with carrying strap", Price: decimal.NewFromFloat(29.99), Category: "Fitness", SKU: "FITN-001"},
	{Name: "Dumbbells Set", Description: "Set of adjustable dumbbells for home workouts", Price: decimal.NewFromFloat(119.99), Category: "Fitness", SKU: "FITN-002"},
}

var channels = []string{"Amazon", "Walmart", "Direct", "eBay"}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Inventory{}, &models.Sale{}); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		log.Fatalf("count products: %v", err)
	}
	if count > 0 {
		log.Println("database already contains data, skipping population")
		return
	}

	if err := seed(db); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Println("database populated successfully")
}

func seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		productsRepo := models.NewProductsRepository(tx)
		inventoryRepo := models.NewInventoryRepository(tx)
		salesRepo := models.NewSalesRepository(tx)

		for i := range catalog {
			if err := productsRepo.Create(&catalog[i]); err != nil {
				return err
			}
			inv := models.Inventory{
				ProductID:    catalog[i].ID,
				Quantity:     rand.Intn(91) + 10,
				ReorderLevel: rand.Intn(16) + 5,
				Warehouse:    "main",
			}
			if err := inventoryRepo.Create(&inv); err != nil {
				return err
			}
		}

		// Sales history over the last 90 days, a handful per day, at a
		// randomly discounted unit price.
		today := time.Now()
		for day := 0; day < 90; day++ {
			saleDate := today.AddDate(0, 0, -day)
			for n := rand.Intn(11) + 5; n > 0; n-- {
				product := catalog[rand.Intn(len(catalog))]
				discount := decimal.NewFromFloat(1 - rand.Float64()*0.2)
				sale := models.Sale{
					ProductID: product.ID,
					Quantity:  rand.Intn(5) + 1,
					UnitPrice: product.Price.Mul(discount).Round(2),
					SaleDate:  saleDate,
					Channel:   channels[rand.Intn(len(channels))],
				}
				if err := salesRepo.Create(&sale); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
