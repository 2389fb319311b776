package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	cartControllers "github.com/techcrush-lms/storefront-api/controllers/cart"
	checkoutControllers "github.com/techcrush-lms/storefront-api/controllers/checkout"
	"github.com/techcrush-lms/storefront-api/models"
	"github.com/techcrush-lms/storefront-api/payment"
	"github.com/techcrush-lms/storefront-api/routes"
	"github.com/techcrush-lms/storefront-api/session"
	"github.com/techcrush-lms/storefront-api/store"
)

func main() {
	log.Println("✅ Starting storefront API...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.Business{},
		&models.Product{},
		&models.PriceVariant{},
		&models.TicketTier{},
		&models.SubscriptionPlan{},
		&models.ShippingOption{},
		&models.Cart{},
		&models.CartItem{},
		&models.Coupon{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.PendingPayment{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Session state lives in Redis
	sessions := session.NewStore(initRedis())

	// Payment provider from config
	provider, err := payment.FromEnv()
	if err != nil {
		log.Fatalf("❌ Payment provider setup failed: %v", err)
	}

	// Cart store: reducers + persistence + websocket fan-out
	carts := store.NewCartStore(db, sessions)
	cartHub := cartControllers.NewHub()
	carts.OnChange(func(sessionID string, c *models.Cart) {
		cartHub.Broadcast(sessionID, c)
	})

	checkout := checkoutControllers.New(db, carts, sessions, provider)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		DB:       db,
		Carts:    carts,
		Sessions: sessions,
		CartHub:  cartHub,
		Checkout: checkout,
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// initRedis sets up the Redis client for session state
func initRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
}
