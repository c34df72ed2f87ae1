package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hassaan1220/Ecommerce-Shopsy/config"
	"github.com/hassaan1220/Ecommerce-Shopsy/middleware"
	"github.com/hassaan1220/Ecommerce-Shopsy/models"
	"github.com/hassaan1220/Ecommerce-Shopsy/pkg/logger"
	"github.com/hassaan1220/Ecommerce-Shopsy/routes"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})
	log.Info().Msg("starting application")

	// Init DB
	db := initDatabase(cfg)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatal().Err(err).Msg("automigrate failed")
	}

	// Gin setup
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Bound every store round trip by the request deadline
	r.Use(middleware.RequestTimeout(5 * time.Second))

	// Setup routes
	routes.SetupRoutes(r, cfg, db)

	// Start server
	log.Info().Str("port", cfg.Port).Msg("server running")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// initDatabase sets up the GORM DB connection.
func initDatabase(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("db connection failed")
	}
	return db
}
