package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"

	"shopmanager/api"
	"shopmanager/internal/config"
	"shopmanager/internal/customers"
	"shopmanager/internal/inventory"
	"shopmanager/internal/receipt"
	"shopmanager/internal/repairs"
	"shopmanager/internal/sales"
)

func main() {
	cfg := config.Load()
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var (
		inventoryStorage inventory.Storage
		salesStorage     sales.Storage
		customerStorage  customers.Storage
		repairStorage    repairs.Storage
	)

	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()
		logger.Info("connected to database")

		inventoryStorage = inventory.NewPostgresStorage(pool)
		salesStorage = sales.NewPostgresStorage(pool)
		customerStorage = customers.NewPostgresStorage(pool)
		repairStorage = repairs.NewPostgresStorage(pool)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory storage")
		products := inventory.NewLocalStorage()
		inventoryStorage = products
		salesStorage = sales.NewLocalStorage(products)
		customerStorage = customers.NewLocalStorage()
		repairStorage = repairs.NewLocalStorage()
	}

	inventoryService := inventory.NewService(inventoryStorage, logger)
	salesService := sales.NewService(salesStorage, inventoryService, logger)

	r := gin.Default()
	api.InitRoutes(r, api.Dependencies{
		Inventory: inventoryService,
		Sales:     salesService,
		Customers: customers.NewService(customerStorage, logger),
		Repairs:   repairs.NewService(repairStorage, logger),
		Carts:     sales.NewCartStore(),
		Receipts:  receipt.NewGenerator(cfg.Shop),
		Logger:    logger,
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		panic(fmt.Errorf("error trying to start server: %v", err))
	}
}
