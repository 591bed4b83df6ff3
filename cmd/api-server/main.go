package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"reviewhub/database"
	"reviewhub/internal/config"
	"reviewhub/internal/httpapi/handler"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/httpapi/service"
	"reviewhub/internal/mail"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	codes, err := service.NewRedisCodeStore(cfg.RedisAddr, cfg.RedisPassword, cfg.ConfirmationCodeTTL)
	if err != nil {
		log.Fatalf("could not connect to redis: %v", err)
	}

	sender := mail.NewSMTPSender(cfg)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepo(db)
	genreRepo := repository.NewGenreRepo(db)
	titleRepo := repository.NewTitleRepo(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepo(db)

	// Services
	authService := service.NewAuthService(userRepo, codes, sender, logger, cfg)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo)
	reviewService := service.NewReviewService(reviewRepo, titleRepo)
	commentService := service.NewCommentService(commentRepo, reviewRepo)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	auth := middleware.Auth(authService)
	limit := middleware.RateLimit(cfg.AuthRateLimit)

	v1 := r.Group("/api/v1")
	handler.NewAuthHandler(authService).RegisterRoutes(v1.Group("/auth"), limit)
	handler.NewCategoryHandler(categoryService).RegisterRoutes(v1.Group("/categories"), auth)
	handler.NewGenreHandler(genreService).RegisterRoutes(v1.Group("/genres"), auth)
	handler.NewTitleHandler(titleService).RegisterRoutes(v1.Group("/titles"), auth)
	handler.NewReviewHandler(reviewService).RegisterRoutes(v1.Group("/titles/:title_id/reviews"), auth)
	handler.NewCommentHandler(commentService).RegisterRoutes(v1.Group("/titles/:title_id/reviews/:review_id/comments"), auth)
	handler.NewUserHandler(userService).RegisterRoutes(v1.Group("/users"), auth)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting API server", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
