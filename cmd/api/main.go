package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tutormarket/internal/config"
	"tutormarket/internal/database"
	"tutormarket/internal/middleware"
	"tutormarket/internal/modules/admin"
	"tutormarket/internal/modules/auth"
	"tutormarket/internal/modules/booking"
	"tutormarket/internal/modules/catalog"
	"tutormarket/internal/modules/chat"
	"tutormarket/internal/modules/notification"
	"tutormarket/internal/modules/review"
	jwtsvc "tutormarket/internal/pkg/jwt"
	"tutormarket/internal/pkg/logger"
	"tutormarket/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog := logger.New(cfg.Env)
	defer zlog.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("database connect failed", zap.Error(err))
	}
	if err := repository.AutoMigrate(db); err != nil {
		zlog.Fatal("migrate failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	tutorRepo := repository.NewTutorRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	hub := chat.NewHub()
	defer hub.Close()

	notificationService := notification.NewService(notificationRepo, hub, zlog)
	notificationHandler := notification.NewHandler(notificationService)

	authService := auth.NewService(userRepo, tutorRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(subjectRepo, tutorRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(bookingRepo, tutorRepo, notificationService)
	bookingHandler := booking.NewHandler(bookingService)

	reviewService := review.NewService(reviewRepo, bookingRepo, tutorRepo)
	reviewHandler := review.NewHandler(reviewService)

	chatService := chat.NewService(messageRepo, userRepo, hub)
	chatHandler := chat.NewHandler(chatService, hub, j, zlog)

	adminService := admin.NewService(userRepo, bookingRepo)
	adminHandler := admin.NewHandler(adminService)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(zlog))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)
		chatHandler.RegisterWS(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			reviewHandler.RegisterProtectedRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.StaffOnly())
			{
				adminHandler.RegisterRoutes(adminGroup)

				adminOnly := adminGroup.Group("/")
				adminOnly.Use(middleware.AdminOnly())
				catalogHandler.RegisterAdminRoutes(adminOnly)
			}
		}
	}

	zlog.Info("starting api server", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.Env))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
