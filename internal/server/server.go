package server

import (
	"log"
	"strings"
	"time"

	"anoa.com/presensisekolah/internal/config"
	"anoa.com/presensisekolah/internal/middleware"
	"anoa.com/presensisekolah/internal/token"
	"anoa.com/presensisekolah/pkg/storage"

	adminHttp "anoa.com/presensisekolah/internal/modules/admin/delivery/http"
	adminService "anoa.com/presensisekolah/internal/modules/admin/service"

	presensiHttp "anoa.com/presensisekolah/internal/modules/presensi/delivery/http"
	presensiRepo "anoa.com/presensisekolah/internal/modules/presensi/repository"
	presensiService "anoa.com/presensisekolah/internal/modules/presensi/service"

	profileHttp "anoa.com/presensisekolah/internal/modules/profile/delivery/http"
	profileService "anoa.com/presensisekolah/internal/modules/profile/service"

	statHttp "anoa.com/presensisekolah/internal/modules/stat/delivery/http"
	statService "anoa.com/presensisekolah/internal/modules/stat/service"

	uploadHttp "anoa.com/presensisekolah/internal/modules/upload/delivery/http"
	uploadService "anoa.com/presensisekolah/internal/modules/upload/service"

	userHttp "anoa.com/presensisekolah/internal/modules/user/delivery/http"
	userRepo "anoa.com/presensisekolah/internal/modules/user/repository"
	userService "anoa.com/presensisekolah/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	users := userRepo.NewUserRepository(db)
	presensis := presensiRepo.NewPresensiRepository(db)

	imageStorage := newImageStorage(cfg)

	issuer := token.NewIssuer(cfg)
	authMiddleware := middleware.NewAuthMiddleware(issuer)

	authSvc := userService.NewAuthService(users, issuer)
	authHandler := userHttp.NewAuthHandler(authSvc)

	profileSvc := profileService.NewProfileService(users)
	profileHandler := profileHttp.NewProfileHandler(profileSvc)

	presensiSvc := presensiService.NewPresensiService(presensis, redisClient)
	presensiHandler := presensiHttp.NewPresensiHandler(presensiSvc)

	statSvc := statService.NewStatService(users, presensis)
	statHandler := statHttp.NewStatHandler(statSvc)

	uploadSvc := uploadService.NewUploadService(users, imageStorage)
	uploadHandler := uploadHttp.NewUploadHandler(uploadSvc)

	adminSvc := adminService.NewAdminService(users)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	router := gin.New()

	setupCORS(router, cfg)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	if cfg.CloudinaryURL == "" {
		router.Static("/uploads", cfg.UploadDir)
	}

	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/auth/send-verification", authHandler.SendVerification)

		protected.GET("/guru/me", profileHandler.GetMe)
		protected.PUT("/guru/me", profileHandler.UpdateMe)

		protected.POST("/upload", uploadHandler.UploadFoto)

		protected.POST("/presensi/scan", presensiHandler.Scan)
		protected.GET("/presensi/user/:id", presensiHandler.GetByUser)

		protected.GET("/dashboard", statHandler.GetDashboard)

		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.GET("/users", adminHandler.ListUsers)
			adminGroup.PUT("/users/:id", adminHandler.UpdateUser)
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// newImageStorage picks cloudinary when configured, local disk otherwise.
func newImageStorage(cfg *config.Config) storage.ImageStorage {
	if cfg.CloudinaryURL != "" {
		st, err := storage.NewCloudinaryStorage()
		if err != nil {
			log.Fatalf("failed to initialize cloudinary storage: %v", err)
		}
		return st
	}

	st, err := storage.NewLocalStorage(cfg.UploadDir, "/uploads")
	if err != nil {
		log.Fatalf("failed to initialize local storage: %v", err)
	}
	return st
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	var origins []string
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:5173"}
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
