package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"codama/internal/config"
	"codama/internal/handlers"
	"codama/internal/logger"
	"codama/internal/middlewares"
	"codama/internal/models"
	"codama/internal/repositories"
	"codama/internal/routes"
	"codama/internal/services"
	"codama/internal/storage"
	"codama/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	log    logger.Logger
	stores *Stores
	rdb    *redis.Client
	http   *http.Server
}

func NewServer(ctx context.Context, cfg *config.Config, log logger.Logger) (*Server, error) {
	utils.SetSecrets(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret)

	stores, err := OpenStores(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Test Redis connection and fail fast with a clear message
	{
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			stores.Close()
			return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.Addr, err)
		}
		log.Info("Connected to Redis successfully")
	}

	disk, err := storage.NewLocalDisk(cfg.Storage.Root)
	if err != nil {
		stores.Close()
		_ = rdb.Close()
		return nil, err
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(middlewares.RequestLogger(log), gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))

	h, guards := wire(cfg, log, stores, rdb, disk)
	routes.RegisterRoutes(router, h, guards)

	return &Server{
		log:    log,
		stores: stores,
		rdb:    rdb,
		http: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}, nil
}

// wire builds the repositories, services and handlers.
func wire(cfg *config.Config, log logger.Logger, stores *Stores, rdb *redis.Client, disk storage.Disk) (routes.Handlers, routes.Guards) {
	// Dependency injection
	userRepo := repositories.NewUserRepository(stores.Pool)
	sessionRepo := repositories.NewSessionRepository(stores.Gorm)
	redisRepo := repositories.NewRedisRepository(rdb)
	categoryRepo := repositories.NewCategoryRepository(stores.Pool)
	colorRepo := repositories.NewColorRepository(stores.Pool)
	galleryRepo := repositories.NewGalleryRepository(stores.Pool)
	designRepo := repositories.NewDesignRepository(stores.Pool)
	transactionRepo := repositories.NewTransactionRepository(stores.Pool)
	outcomeRepo := repositories.NewOutcomeRepository(stores.Pool)
	salaryRepo := repositories.NewSalaryRepository(stores.Pool)
	dashboardRepo := repositories.NewDashboardRepository(stores.Pool)

	authService := services.NewAuthService(userRepo, sessionRepo, redisRepo)
	userService := services.NewUserService(userRepo, sessionRepo)

	h := routes.Handlers{
		Auth:        handlers.NewAuthHandler(authService),
		User:        handlers.NewUserHandler(userService),
		Category:    handlers.NewResourceHandler[models.Category, services.CategoryRequest](services.NewCategoryService(categoryRepo), "Category"),
		Color:       handlers.NewResourceHandler[models.Color, services.ColorRequest](services.NewColorService(colorRepo), "Color"),
		Gallery:     handlers.NewUploadHandler[models.Gallery, services.GalleryRequest](services.NewGalleryService(galleryRepo, disk, log), "Gallery", "image"),
		Design:      handlers.NewUploadHandler[models.Design, services.DesignRequest](services.NewDesignService(designRepo, disk, log), "Design", "file"),
		Transaction: handlers.NewTransactionHandler(services.NewTransactionService(transactionRepo, disk, log)),
		Outcome:     handlers.NewResourceHandler[models.Outcome, services.OutcomeRequest](services.NewOutcomeService(outcomeRepo), "Outcome"),
		Salary:      handlers.NewSalaryHandler(services.NewSalaryService(salaryRepo)),
		Dashboard:   handlers.NewDashboardHandler(services.NewDashboardService(dashboardRepo)),
		Download:    handlers.NewDownloadHandler(services.NewDownloadService(designRepo, disk)),
		Health: handlers.NewHealthHandler(map[string]handlers.Pinger{
			"database": dashboardRepo,
			"redis":    redisRepo,
		}),
	}

	if cfg.GoogleEnabled() {
		h.GoogleAuth = handlers.NewGoogleAuthHandler(services.NewGoogleAuthService(authService), config.OAuthConfig(cfg.Google))
	} else {
		log.Info("Google sign-in is not configured")
	}

	guards := routes.Guards{
		Authenticate: middlewares.Authenticate(redisRepo),
		RequireAdmin: middlewares.RequireAdmin(userRepo),
	}
	return h, guards
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		// Credentials cannot be combined with a literal wildcard origin.
		c.AllowOriginFunc = func(string) bool { return true }
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func (s *Server) Addr() string {
	return s.http.Addr
}

func (s *Server) ListenAndServe() error {
	return s.http.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight ones and closes
// the backing connections.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if cerr := s.rdb.Close(); cerr != nil {
		s.log.Warn(fmt.Sprintf("failed to close redis client: %v", cerr))
	}
	s.stores.Close()
	return err
}
