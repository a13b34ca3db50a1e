package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/deechee777/lawlens/backend/internal/api/handlers"
	"github.com/deechee777/lawlens/backend/internal/auth"
	"github.com/deechee777/lawlens/backend/internal/config"
	"github.com/deechee777/lawlens/backend/internal/database"
	"github.com/deechee777/lawlens/backend/internal/decision"
	"github.com/deechee777/lawlens/backend/internal/email"
	"github.com/deechee777/lawlens/backend/internal/health"
	"github.com/deechee777/lawlens/backend/internal/middleware"
	"github.com/deechee777/lawlens/backend/internal/migration"
	"github.com/deechee777/lawlens/backend/internal/payments"
	"github.com/deechee777/lawlens/backend/internal/repository"
	"github.com/deechee777/lawlens/backend/internal/search"
	"github.com/deechee777/lawlens/backend/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug("No .env file found")
	}

	logger := utils.GetLogger()
	logger.Info("Starting LawLens backend...")

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if err := cfg.ValidateAuth(); err != nil {
		logger.WithError(err).Fatal("Auth configuration validation failed")
	}
	if err := cfg.ValidateStripe(); err != nil {
		logger.WithError(err).Warn("Stripe not configured, payment routing disabled")
	}
	if err := cfg.ValidateOpenAI(); err != nil {
		logger.WithError(err).Warn("OpenAI not configured, calculator will use fallback scoring")
	}

	dbManager, err := database.NewManager(&database.Config{
		DatabaseURL: cfg.Database.URL,
		RedisURL:    cfg.Redis.URL,
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database manager")
	}
	defer dbManager.Close()

	migrationRunner := migration.NewRunner(dbManager, logger)
	if err := migrationRunner.RunMigrations("migrations"); err != nil {
		logger.WithError(err).Fatal("Database migrations failed")
	}

	repos := repository.NewRepositoryManager(dbManager.DB)
	cache := database.NewCache(dbManager.Redis, logger)

	searchEngine := search.NewEngine(repos.Question, logger)

	authenticator := auth.New(auth.Config{
		AdminEmail:        cfg.Admin.Email,
		AdminPassword:     cfg.Admin.Password,
		AdminPasswordHash: cfg.Admin.PasswordHash,
		JWTSecret:         cfg.Auth.JWTSecret,
		SecureCookies:     cfg.IsProduction(),
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go authenticator.Janitor(ctx, time.Hour)

	mailer := email.NewSender(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.User,
		Password: cfg.SMTP.Pass,
		From:     cfg.SMTP.From,
		AdminURL: cfg.Server.BaseURL,
	}, logger)

	paymentService := payments.NewService(payments.Config{
		SecretKey:     cfg.Stripe.SecretKey,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		PriceCents:    cfg.Stripe.PriceCents,
		PublicBaseURL: cfg.Server.BaseURL,
		AdminEmail:    cfg.Admin.Email,
	}, repos.Question, repos.Payment, mailer, logger)

	decisionClient := decision.NewClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)
	analyzer := decision.NewAnalyzer(decisionClient, logger)

	healthChecker := health.NewHealthChecker(dbManager, logger, cfg.OpenAI.BaseURL)

	searchHandler := handlers.NewSearchHandler(searchEngine, cache, logger)
	loginHandler := handlers.NewLoginHandler(authenticator, logger)
	questionHandler := handlers.NewQuestionHandler(repos.Question, mailer, logger)
	statsHandler := handlers.NewStatsHandler(repos, cache, logger)
	badDecisionHandler := handlers.NewBadDecisionHandler(analyzer, repos.BadDecision, logger)
	paymentHandler := handlers.NewPaymentHandler(paymentService, logger)
	webhookHandler := handlers.NewWebhookHandler(paymentService, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())

	rateLimiter := middleware.NewRateLimiter(60)
	router.Use(rateLimiter.RateLimit())

	router.GET("/health", func(c *gin.Context) {
		overall := healthChecker.CheckAll()
		code := http.StatusOK
		if overall.Status == "unhealthy" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, overall)
	})

	api := router.Group("/api")
	{
		api.GET("/search", searchHandler.HandleSearch)
		api.POST("/bad-decision", badDecisionHandler.HandleAnalyze)
		api.GET("/bad-decision", badDecisionHandler.HandleShared)
		api.POST("/create-payment", paymentHandler.HandleCreatePayment)
		api.POST("/webhooks/stripe", webhookHandler.HandleStripeWebhook)

		admin := api.Group("/admin")
		{
			admin.POST("/login", loginHandler.HandleLogin)
			admin.DELETE("/login", loginHandler.HandleLogout)

			protected := admin.Group("", middleware.AdminAuth(authenticator))
			{
				protected.GET("/questions", questionHandler.HandleList)
				protected.POST("/questions", questionHandler.HandleCreate)
				protected.PUT("/questions", questionHandler.HandleUpdate)
				protected.DELETE("/questions", questionHandler.HandleDelete)
				protected.GET("/stats", statsHandler.HandleStats)
			}
		}
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Graceful shutdown failed")
	}

	logger.Info("Server stopped")
}
