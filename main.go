package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hamzatariq-git/shopmate-api/config"
	"github.com/hamzatariq-git/shopmate-api/payment"
	"github.com/hamzatariq-git/shopmate-api/routes"
	"github.com/hamzatariq-git/shopmate-api/services"
	"github.com/hamzatariq-git/shopmate-api/storage"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	// Connect to MongoDB
	client, db, err := storage.Connect(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	// Repositories
	carts := storage.NewCartStorage(db)
	orders := storage.NewOrderStorage(db)
	products := storage.NewProductStorage(db)
	users := storage.NewUserStorage(db)
	coupons := storage.NewCouponStorage(db)
	events := storage.NewWebhookEventStorage(db)

	// Services
	checkout := payment.NewStripeClient(cfg)
	orderService := services.NewOrderService(carts, orders, products, users, checkout)
	cartService := services.NewCartService(carts, products, coupons)

	// Gin setup
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve uploaded images
	r.Static("/uploads", cfg.UploadDir)

	routes.SetupRoutes(r, routes.Deps{
		Cfg:      cfg,
		Orders:   orderService,
		Carts:    cartService,
		Users:    users,
		Products: products,
		Events:   events,
	})

	log.Printf("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
