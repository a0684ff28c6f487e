package server

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/cabindev/civicspace-sub000/internal/config"
	"github.com/cabindev/civicspace-sub000/internal/handler"
	"github.com/cabindev/civicspace-sub000/internal/middleware"
	"github.com/cabindev/civicspace-sub000/internal/repository"
	"github.com/cabindev/civicspace-sub000/internal/service"
	"github.com/cabindev/civicspace-sub000/pkg/storage"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	store, err := storage.New(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	var meiliClient meilisearch.ServiceManager
	if cfg.MeiliMasterKey != "" {
		host := cfg.MeiliSearchHost
		if !strings.HasPrefix(host, "http") {
			host = "http://" + host + ":7700"
		}
		meiliClient = meilisearch.New(host, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	}

	userRepo := repository.NewUserRepository(db)
	imageRepo := repository.NewImageRepository(db)
	traditionRepo := repository.NewTraditionRepository(db)
	policyRepo := repository.NewPublicPolicyRepository(db)
	ethnicRepo := repository.NewEthnicGroupRepository(db)
	creativeRepo := repository.NewCreativeActivityRepository(db)
	traditionCategoryRepo := repository.NewTraditionCategoryRepository(db)
	ethnicCategoryRepo := repository.NewEthnicCategoryRepository(db)
	creativeCategoryRepo := repository.NewCreativeCategoryRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	fileRefRepo := repository.NewFileReferenceRepository(db)

	cache := service.NewCacheService(redisClient)
	search := service.NewSearchService(meiliClient)
	notifier := service.NewNotificationService(notificationRepo, redisClient)

	authSvc := service.NewAuthService(userRepo, store, cfg.JWTSecret, cfg.TokenTTL)
	traditionSvc := service.NewTraditionService(traditionRepo, traditionCategoryRepo, imageRepo, userRepo, store, cache, search, notifier, redisClient, cfg.RateLimitCreate)
	policySvc := service.NewPublicPolicyService(policyRepo, imageRepo, userRepo, store, cache, search, notifier, redisClient, cfg.RateLimitCreate)
	ethnicSvc := service.NewEthnicGroupService(ethnicRepo, ethnicCategoryRepo, imageRepo, userRepo, store, cache, search, notifier, redisClient, cfg.RateLimitCreate)
	creativeSvc := service.NewCreativeActivityService(creativeRepo, creativeCategoryRepo, imageRepo, userRepo, store, cache, search, notifier, redisClient, cfg.RateLimitCreate)
	categorySvc := service.NewCategoryService(traditionCategoryRepo, ethnicCategoryRepo, creativeCategoryRepo, cache)
	dashboardSvc := service.NewDashboardService(dashboardRepo, cache)

	authHandler := handler.NewAuthHandler(authSvc)
	traditionHandler := handler.NewTraditionHandler(traditionSvc)
	policyHandler := handler.NewPublicPolicyHandler(policySvc)
	ethnicHandler := handler.NewEthnicGroupHandler(ethnicSvc)
	creativeHandler := handler.NewCreativeActivityHandler(creativeSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	notificationHandler := handler.NewNotificationHandler(notifier, redisClient)
	searchHandler := handler.NewSearchHandler(search)

	// Orphaned upload files are swept in the background; only relevant for
	// the local storage backend.
	reconciler := service.NewReconciler(fileRefRepo, cfg.UploadDir, cfg.ReconcileInterval)
	go reconciler.Run(context.Background())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	setupCORS(router, cfg.AllowedOrigins)

	router.Static("/uploads", cfg.UploadDir)

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.SignUp)
		auth.POST("/signin", authHandler.SignIn)
	}

	// Public read endpoints
	api.GET("/traditions", traditionHandler.List)
	api.GET("/traditions/:id", traditionHandler.Get)
	api.GET("/public-policies", policyHandler.List)
	api.GET("/public-policies/:id", policyHandler.Get)
	api.GET("/ethnic-groups", ethnicHandler.List)
	api.GET("/ethnic-groups/:id", ethnicHandler.Get)
	api.GET("/creative-activities", creativeHandler.List)
	api.GET("/creative-activities/:id", creativeHandler.Get)
	api.GET("/tradition-categories", categoryHandler.ListTradition)
	api.GET("/ethnic-categories", categoryHandler.ListEthnic)
	api.GET("/creative-categories", categoryHandler.ListCreative)
	api.GET("/dashboard", dashboardHandler.Overview)
	api.GET("/search/token", searchHandler.Token)

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/profile", authHandler.Profile)
		protected.PUT("/profile", authHandler.UpdateProfile)

		protected.POST("/traditions", traditionHandler.Create)
		protected.PUT("/traditions/:id", traditionHandler.Update)
		protected.DELETE("/traditions/:id", traditionHandler.Delete)

		protected.POST("/public-policies", policyHandler.Create)
		protected.PUT("/public-policies/:id", policyHandler.Update)
		protected.DELETE("/public-policies/:id", policyHandler.Delete)

		protected.POST("/ethnic-groups", ethnicHandler.Create)
		protected.PUT("/ethnic-groups/:id", ethnicHandler.Update)
		protected.DELETE("/ethnic-groups/:id", ethnicHandler.Delete)

		protected.POST("/creative-activities", creativeHandler.Create)
		protected.PUT("/creative-activities/:id", creativeHandler.Update)
		protected.DELETE("/creative-activities/:id", creativeHandler.Delete)

		protected.GET("/notifications", notificationHandler.List)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.Stream)

		// Category management requires admin
		admin := protected.Group("")
		admin.Use(authMiddleware.RequireAdmin())
		{
			admin.POST("/tradition-categories", categoryHandler.CreateTradition)
			admin.PUT("/tradition-categories/:id", categoryHandler.UpdateTradition)
			admin.DELETE("/tradition-categories/:id", categoryHandler.DeleteTradition)

			admin.POST("/ethnic-categories", categoryHandler.CreateEthnic)
			admin.PUT("/ethnic-categories/:id", categoryHandler.UpdateEthnic)
			admin.DELETE("/ethnic-categories/:id", categoryHandler.DeleteEthnic)

			admin.POST("/creative-categories", categoryHandler.CreateCreative)
			admin.PUT("/creative-categories/:id", categoryHandler.UpdateCreative)
			admin.DELETE("/creative-categories/:id", categoryHandler.DeleteCreative)
			admin.POST("/creative-sub-categories", categoryHandler.CreateCreativeSub)
			admin.DELETE("/creative-sub-categories/:id", categoryHandler.DeleteCreativeSub)
		}

		// User administration requires super admin
		superAdmin := protected.Group("/users")
		superAdmin.Use(authMiddleware.RequireSuperAdmin())
		{
			superAdmin.GET("", authHandler.ListUsers)
			superAdmin.PUT("/:id/role", authHandler.UpdateRole)
			superAdmin.DELETE("/:id", authHandler.DeleteUser)
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}, nil
}

func (s *Server) Run(addr string) error {
	log.Printf("listening on %s", addr)
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	origins := []string{"http://localhost:3000"}
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
