package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/kwesi-koranteng/cityhub-backend/config"
	"github.com/kwesi-koranteng/cityhub-backend/handlers"
	"github.com/kwesi-koranteng/cityhub-backend/middleware"
	"github.com/kwesi-koranteng/cityhub-backend/repositories"
	"github.com/kwesi-koranteng/cityhub-backend/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// Redis is optional; the stats cache degrades to direct queries without it
	redisClient := config.InitRedis(cfg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	commentRepo := repositories.NewCommentRepository(db)

	// Initialize services
	statsCache := services.NewStatsCache(redisClient)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiration, cfg.StorageTimeout)
	projectService := services.NewProjectService(projectRepo, commentRepo, statsCache, cfg.StorageTimeout)
	uploadService, err := services.NewUploadService(cfg.UploadDir, cfg.BaseURL, cfg.MaxUploadSize)
	if err != nil {
		log.Fatal("Failed to initialize upload storage: ", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService, uploadService)

	// Setup router
	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxUploadSize

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Disk-stored uploads
	if cfg.UploadDir != "" {
		router.Static("/uploads", cfg.UploadDir)
	}

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.AuthMiddleware(cfg.JWTSecret), authHandler.Me)
		}

		users := api.Group("/users")
		users.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			users.GET("/profile", userHandler.GetProfile)
			users.PUT("/profile", userHandler.UpdateProfile)
		}

		projects := api.Group("/projects")
		{
			// Browsing is open; the visibility gate restricts anonymous
			// viewers to approved projects
			browse := projects.Group("")
			browse.Use(middleware.OptionalAuthMiddleware(cfg.JWTSecret))
			{
				browse.GET("", projectHandler.ListProjects)
				browse.GET("/:id", projectHandler.GetProject)
			}

			authed := projects.Group("")
			authed.Use(middleware.AuthMiddleware(cfg.JWTSecret))
			{
				authed.GET("/stats", projectHandler.GetStats)
				authed.POST("", projectHandler.CreateProject)
				authed.POST("/:id/comments", projectHandler.AddComment)
				authed.PUT("/:id", projectHandler.UpdateProject)
				authed.DELETE("/:id", projectHandler.DeleteProject)

				admin := authed.Group("")
				admin.Use(middleware.RequireAdmin())
				{
					admin.PATCH("/:id/status", projectHandler.UpdateStatus)
				}
			}
		}
	}

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(router.Run(":" + cfg.Port))
}
