package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/tbalint/beamchat/internal/api/handlers"
	"github.com/tbalint/beamchat/internal/api/middleware"
	"github.com/tbalint/beamchat/internal/config"
	"github.com/tbalint/beamchat/internal/crypto"
	"github.com/tbalint/beamchat/internal/database"
	"github.com/tbalint/beamchat/internal/logger"
	"github.com/tbalint/beamchat/internal/store"
	"github.com/tbalint/beamchat/internal/websocket"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()

	cfg, err := config.Load(config.Overrides{})
	if err != nil {
		logger.Errorf("Failed to load config: %v", err)
		os.Exit(1)
	}

	if cfg.Debug {
		logger.SetDebug()
	}

	// Set Gin mode
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Open database
	logger.Infof("Opening database: %s", cfg.DatabasePath)
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		logger.Errorf("Failed to open database: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	users := store.NewUsers(db.DB)

	// Initialize JWT manager
	jwtManager, err := crypto.NewJWTManager(cfg.MasterSecret)
	if err != nil {
		logger.Errorf("Failed to create JWT manager: %v", err)
		os.Exit(1)
	}

	// Initialize Socket.IO server
	logger.Infof("Initializing Socket.IO server...")
	socketIOServer := websocket.NewSocketIOServer(users, jwtManager)
	defer socketIOServer.Close()

	// Create Gin router
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS middleware
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Logging middleware
	router.Use(middleware.LoggingMiddleware())

	// Root endpoint - plain text health response
	router.GET("/", func(c *gin.Context) {
		c.String(200, "Running")
	})

	authHandler := handlers.NewAuthHandler(users, jwtManager)

	// Public routes (no auth required)
	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.PostRegister)
		auth.POST("/login", authHandler.PostLogin)
		auth.POST("/refresh", authHandler.PostRefresh)
	}

	// Protected routes (auth required)
	auth.GET("/me", middleware.AuthMiddleware(jwtManager), authHandler.GetMe)

	// Mount Socket.IO endpoint. The handshake is accessible without HTTP
	// auth; the connection is authenticated from its handshake metadata.
	router.Any("/socket.io", socketIOServer.HandleSocketIO())
	router.Any("/socket.io/*any", socketIOServer.HandleSocketIO())

	logger.Infof("beamchat server starting on http://localhost%s", cfg.Addr)

	if err := router.Run(cfg.Addr); err != nil {
		logger.Errorf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
