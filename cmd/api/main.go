package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/commerceops/admin-api/app/inventory"
	"github.com/commerceops/admin-api/app/products"
	"github.com/commerceops/admin-api/app/sales"
	"github.com/commerceops/admin-api/internal/config"
	"github.com/commerceops/admin-api/models"
)

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

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	products.NewProductsHandler(models.NewProductsRepository(db)).RegisterRoutes(router)
	inventory.NewInventoryHandler(models.NewInventoryRepository(db)).RegisterRoutes(router)
	sales.NewSalesHandler(models.NewSalesRepository(db)).RegisterRoutes(router)

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, router); err != nil {
		log.Fatal(err)
	}
}
