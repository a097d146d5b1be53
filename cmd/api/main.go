package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lawandcode/lawquiz-api/internal/config"
	"github.com/lawandcode/lawquiz-api/internal/handler"
	"github.com/lawandcode/lawquiz-api/internal/middleware"
	redisRepo "github.com/lawandcode/lawquiz-api/internal/repository/redis"

	"github.com/lawandcode/lawquiz-api/internal/repository/postgres"
	"github.com/lawandcode/lawquiz-api/internal/service"
	"github.com/lawandcode/lawquiz-api/pkg/auth"
	"github.com/lawandcode/lawquiz-api/pkg/database"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.MigrateDB(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Repositories.
	userRepo := postgres.NewUserRepo(db)
	attemptRepo := postgres.NewLoginAttemptRepo(db)
	resetTokenRepo := postgres.NewResetTokenRepo(db)
	folderRepo := postgres.NewFolderRepo(db)
	questionRepo := postgres.NewQuestionRepo(db)
	likeRepo := postgres.NewLikeRepo(db)
	statsRepo := postgres.NewStatsRepo(db)
	messageRepo := postgres.NewMessageRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Fatalf("Failed to create cache repository: %v", err)
	}

	// Services.
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Fatalf("Failed to create JWT service: %v", err)
	}

	throttleService, err := service.NewLoginThrottleService(attemptRepo)
	if err != nil {
		log.Fatalf("Failed to create throttle service: %v", err)
	}

	authService, err := service.NewAuthService(userRepo, resetTokenRepo, throttleService, jwtService)
	if err != nil {
		log.Fatalf("Failed to create auth service: %v", err)
	}

	var emailService service.EmailService
	if cfg.Email.ResendAPIKey != "" {
		emailService, err = service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			log.Fatalf("Failed to create email service: %v", err)
		}
	} else {
		log.Println("[Main] no Resend API key configured, using noop email sender")
		emailService = &service.NoopEmailService{}
	}

	resetService, err := service.NewPasswordResetService(userRepo, resetTokenRepo, emailService, cfg.App.BaseURL)
	if err != nil {
		log.Fatalf("Failed to create password reset service: %v", err)
	}

	quizService, err := service.NewQuizService(folderRepo, questionRepo, likeRepo, userRepo, cacheRepo)
	if err != nil {
		log.Fatalf("Failed to create quiz service: %v", err)
	}

	statsService, err := service.NewStatsService(statsRepo, folderRepo)
	if err != nil {
		log.Fatalf("Failed to create stats service: %v", err)
	}

	contactService, err := service.NewContactService(messageRepo, cfg.App.AdminUserID)
	if err != nil {
		log.Fatalf("Failed to create contact service: %v", err)
	}

	// Handlers and middleware.
	authHandler := handler.NewAuthHandler(authService, resetService)
	quizHandler := handler.NewQuizHandler(quizService)
	statsHandler := handler.NewStatsHandler(statsService)
	contactHandler := handler.NewContactHandler(contactService)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)
	strictLimit := rateLimiter.Limit(middleware.StrictAuthRateLimitConfig())

	router := gin.Default()

	if gin.Mode() == gin.ReleaseMode {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	allowedOrigins := cfg.App.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", strictLimit, authHandler.Register)
			authGroup.POST("/login", strictLimit, authHandler.Login)
			authGroup.POST("/forgot-password", strictLimit, authHandler.ForgotPassword)
			authGroup.GET("/reset-password/:token", authHandler.ValidateResetToken)
			authGroup.POST("/reset-password/:token", authHandler.ResetPassword)

			authed := authGroup.Group("/")
			authed.Use(authMiddleware.RequireAuth())
			{
				authed.GET("/me", authHandler.Me)
				authed.POST("/logout", authHandler.Logout)
				authed.POST("/email", authHandler.SetEmail)
				authed.PUT("/email", authHandler.SetEmail)
				authed.DELETE("/email", authHandler.RemoveEmail)
				authed.DELETE("/account", authHandler.DeleteAccount)
			}
		}

		quizGroup := api.Group("/quizzes")
		{
			quizGroup.GET("/public", quizHandler.PublicListing)

			authed := quizGroup.Group("/")
			authed.Use(authMiddleware.RequireAuth())
			{
				authed.POST("", quizHandler.CreateFolder)
				authed.GET("", quizHandler.ListFolders)
				authed.PUT("/title", quizHandler.RenameFolder)
				authed.PUT("/visibility", quizHandler.SetVisibility)
				authed.DELETE("", quizHandler.DeleteFolder)
				authed.GET("/play", quizHandler.PlayQuestions)
				authed.POST("/questions", quizHandler.AddQuestion)
				authed.PUT("/questions/:id", quizHandler.UpdateQuestion)
				authed.DELETE("/questions/:id", quizHandler.DeleteQuestion)
				authed.POST("/:id/like", quizHandler.Like)
				authed.POST("/import", quizHandler.ImportQuestions)
			}
		}

		statsGroup := api.Group("/stats")
		statsGroup.Use(authMiddleware.RequireAuth())
		{
			statsGroup.POST("/attempts", statsHandler.RecordAttempt)
			statsGroup.GET("", statsHandler.GetStats)
		}

		api.POST("/messages", contactHandler.Submit)
		api.GET("/messages", authMiddleware.RequireAuth(), contactHandler.List)
	}

	readTimeout := cfg.Server.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 15
	}
	writeTimeout := cfg.Server.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 15
	}
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
