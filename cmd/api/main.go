package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/finassist/finassist/internal/config"
	"github.com/finassist/finassist/internal/gamification"
	"github.com/finassist/finassist/internal/handler"
	"github.com/finassist/finassist/internal/integrations/rates"
	"github.com/finassist/finassist/internal/middleware"
	"github.com/finassist/finassist/internal/repository"
	"github.com/finassist/finassist/internal/service"
	"github.com/finassist/finassist/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	notifier := email.NewSender(cfg, logger)
	game := gamification.NewEngine(repo, repo, logger)
	authSvc := service.NewAuthService(repo, logger, cfg)
	expenseSvc := service.NewExpenseService(repo, logger)
	budgetSvc := service.NewBudgetService(repo, notifier, logger)
	goalSvc := service.NewSavingsGoalService(repo, game, notifier, logger)
	dashboardSvc := service.NewDashboardService(repo, game, logger)
	notificationSvc := service.NewNotificationService(repo, logger)
	ratesClient := rates.NewClient(cfg, logger)
	h := handler.NewHandler(authSvc, expenseSvc, budgetSvc, goalSvc,
		dashboardSvc, notificationSvc, game, ratesClient, logger)

	// Daily budget alert sweep
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 8 * * *", func() {
		if err := budgetSvc.AlertOverspentBudgets(); err != nil {
			logger.Errorf("Budget alert sweep failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule budget alerts: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestID(logger))
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/key-rate", h.KeyRate).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.Auth(cfg))
	authRouter.HandleFunc("/calculator", h.Calculate).Methods("POST")
	authRouter.HandleFunc("/dashboard", h.Dashboard).Methods("GET")
	authRouter.HandleFunc("/expenses", h.CreateExpense).Methods("POST")
	authRouter.HandleFunc("/expenses", h.ListExpenses).Methods("GET")
	authRouter.HandleFunc("/expenses/{id}", h.UpdateExpense).Methods("PUT")
	authRouter.HandleFunc("/expenses/{id}", h.DeleteExpense).Methods("DELETE")
	authRouter.HandleFunc("/budgets", h.CreateBudget).Methods("POST")
	authRouter.HandleFunc("/budgets", h.ListBudgets).Methods("GET")
	authRouter.HandleFunc("/budgets/{id}", h.UpdateBudget).Methods("PUT")
	authRouter.HandleFunc("/budgets/{id}", h.DeleteBudget).Methods("DELETE")
	authRouter.HandleFunc("/goals", h.CreateGoal).Methods("POST")
	authRouter.HandleFunc("/goals", h.ListGoals).Methods("GET")
	authRouter.HandleFunc("/goals/{id}", h.UpdateGoal).Methods("PUT")
	authRouter.HandleFunc("/goals/{id}", h.DeleteGoal).Methods("DELETE")
	authRouter.HandleFunc("/goals/{id}/contribute", h.Contribute).Methods("POST")
	authRouter.HandleFunc("/notifications", h.ListNotifications).Methods("GET")
	authRouter.HandleFunc("/notifications/read-all", h.MarkAllNotificationsRead).Methods("POST")
	authRouter.HandleFunc("/notifications/{id}/read", h.MarkNotificationRead).Methods("POST")
	authRouter.HandleFunc("/notifications/{id}", h.DeleteNotification).Methods("DELETE")
	authRouter.HandleFunc("/gamification/profile", h.GamificationProfile).Methods("GET")
	authRouter.HandleFunc("/gamification/points", h.AddPoints).Methods("POST")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
