package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/bancasol/core-service/internal/config"
	"github.com/bancasol/core-service/internal/handler"
	"github.com/bancasol/core-service/internal/integrations/rates"
	"github.com/bancasol/core-service/internal/middleware"
	"github.com/bancasol/core-service/internal/payments"
	"github.com/bancasol/core-service/internal/repository"
	"github.com/bancasol/core-service/internal/scoring"
	"github.com/bancasol/core-service/internal/service"
	"github.com/bancasol/core-service/internal/store"
	"github.com/bancasol/core-service/internal/utils/email"
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

	// Initialize the document store client with a short-TTL read cache
	client := store.NewClient(cfg.StoreURL, logger)
	cached := store.NewCachedClient(client, time.Duration(cfg.CacheTTLSecs)*time.Second)

	// Initialize layers
	repo := repository.NewRepository(cached)
	scores := scoring.NewEngine(repo, logger)
	settler := payments.NewSettler(repo, scores, logger)
	sender := email.NewSender(cfg, logger)
	svc := service.NewService(repo, scores, settler, sender, logger, cfg)
	h := handler.NewHandler(svc, logger)
	ratesClient := rates.NewClient(cfg, logger)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Central-bank reference rate
	r.HandleFunc("/key-rate", func(w http.ResponseWriter, r *http.Request) {
		rate, err := ratesClient.KeyRate()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get key rate: %v", err), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]float64{"key_rate": rate})
	}).Methods("GET")
	r.HandleFunc("/account-types", h.ListAccountTypes).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/accounts", h.ListAccounts).Methods("GET")
	authRouter.HandleFunc("/accounts", h.CreateAccount).Methods("POST")
	authRouter.HandleFunc("/accounts/{id}/interest", h.AccountInterest).Methods("GET")
	authRouter.HandleFunc("/account-services/quote", h.QuoteServiceFees).Methods("POST")
	authRouter.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	authRouter.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	authRouter.HandleFunc("/credits", h.ListCredits).Methods("GET")
	authRouter.HandleFunc("/credits", h.RequestCredit).Methods("POST")
	authRouter.HandleFunc("/credits/{id}/approve", h.ApproveCredit).Methods("POST")
	authRouter.HandleFunc("/credits/{id}/reject", h.RejectCredit).Methods("POST")
	authRouter.HandleFunc("/payments", h.ListPayments).Methods("GET")
	authRouter.HandleFunc("/payments/{id}/eligibility", h.EvaluateInstallment).Methods("GET")
	authRouter.HandleFunc("/payments/{id}/pay", h.PayInstallment).Methods("POST")
	authRouter.HandleFunc("/score", h.ComputeScore).Methods("GET")
	authRouter.HandleFunc("/users/{id}/score", h.UserScore).Methods("GET")

	// Schedule the daily overdue sweep and payment reminders
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@daily", func() {
		ctx := context.Background()
		if _, err := settler.SweepOverdue(ctx); err != nil {
			logger.Errorf("Overdue sweep failed: %v", err)
		}
		if err := svc.SendPaymentReminders(ctx); err != nil {
			logger.Errorf("Payment reminders failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule jobs: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

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
