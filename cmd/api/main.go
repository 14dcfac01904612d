package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/fintrackhq/fintrack-api/docs" // Swagger docs
	"github.com/fintrackhq/fintrack-api/internal/config"
	"github.com/fintrackhq/fintrack-api/internal/database"
	"github.com/fintrackhq/fintrack-api/internal/handlers"
	"github.com/fintrackhq/fintrack-api/internal/jobs"
	"github.com/fintrackhq/fintrack-api/internal/middleware"
	"github.com/fintrackhq/fintrack-api/internal/repository"
	"github.com/fintrackhq/fintrack-api/internal/services"
	"github.com/fintrackhq/fintrack-api/internal/storage"
	"github.com/fintrackhq/fintrack-api/pkg/logger"
)

// @title FinTrack API
// @version 1.0
// @description REST API for personal finance tracking: wallet and savings balances, income, expenses, borrow/lend obligations and repayments

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Environment)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage")

	repos := repository.NewRepositories(db)

	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	svcs := services.NewServices(repos, worker, store, cfg)

	scheduleJobs(worker, svcs)

	h := handlers.NewHandlers(svcs, worker)

	router := setupRouter(h, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Authentication (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", h.Auth.Signup)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			protected.GET("/dashboard", h.Dashboard.Show)

			income := protected.Group("/income")
			{
				income.GET("", h.Income.Index)
				income.POST("", h.Income.Create)
				income.GET("/:id", h.Income.Show)
				income.PUT("/:id", h.Income.Update)
				income.DELETE("/:id", h.Income.Destroy)
			}

			expenses := protected.Group("/expenses")
			{
				expenses.GET("", h.Expense.Index)
				expenses.POST("", h.Expense.Create)
				expenses.GET("/:id", h.Expense.Show)
				expenses.PUT("/:id", h.Expense.Update)
				expenses.DELETE("/:id", h.Expense.Destroy)
			}

			borrows := protected.Group("/borrows")
			{
				borrows.GET("", h.Borrow.Index)
				borrows.POST("", h.Borrow.Create)
				borrows.GET("/:id", h.Borrow.Show)
				borrows.PUT("/:id", h.Borrow.Update)
				borrows.DELETE("/:id", h.Borrow.Destroy)
				borrows.POST("/:id/approve", h.Borrow.Approve)
				borrows.POST("/:id/reject", h.Borrow.Reject)
				borrows.GET("/:id/repayments", h.Borrow.Repayments)
				borrows.POST("/:id/repayments", h.Borrow.Repay)
			}

			lends := protected.Group("/lends")
			{
				lends.GET("", h.Lend.Index)
				lends.POST("", h.Lend.Create)
				lends.GET("/:id", h.Lend.Show)
				lends.PUT("/:id", h.Lend.Update)
				lends.DELETE("/:id", h.Lend.Destroy)
				lends.GET("/:id/repayments", h.Lend.Repayments)
				lends.POST("/:id/repayments", h.Lend.Receive)
			}

			protected.GET("/repayments", h.Repayment.Index)

			// Static route first so "balance" is not matched as :id
			savings := protected.Group("/savings")
			{
				savings.GET("", h.Saving.Index)
				savings.GET("/balance", h.Saving.Balance)
				savings.POST("", h.Saving.Create)
				savings.GET("/:id", h.Saving.Show)
				savings.PUT("/:id", h.Saving.Update)
				savings.DELETE("/:id", h.Saving.Destroy)
			}

			notifications := protected.Group("/notifications")
			{
				notifications.GET("", h.Notification.Index)
				notifications.POST("/read-all", h.Notification.MarkAllAsRead)
				notifications.PATCH("/:id/read", h.Notification.MarkAsRead)
			}

			reports := protected.Group("/reports")
			{
				reports.GET("", h.Report.Index)
				reports.POST("", h.Report.Create)
				reports.GET("/:id/download", h.Report.Download)
				reports.DELETE("/:id", h.Report.Destroy)
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Repayment due reminders, daily (runs once at startup too)
	worker.ScheduleEveryImmediate(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Checking due repayments...")
		return svcs.Notification.CheckDueRepayments(ctx)
	})

	// Low savings warnings, daily
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Checking savings thresholds...")
		return svcs.Notification.CheckLowSavings(ctx)
	})

	logger.Info("Scheduled recurring jobs")
}
