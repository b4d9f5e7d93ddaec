package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/villagebank/village-bank-service/internal/config"
	"github.com/villagebank/village-bank-service/internal/handler"
	"github.com/villagebank/village-bank-service/internal/integrations/ratefeed"
	"github.com/villagebank/village-bank-service/internal/repository"
	"github.com/villagebank/village-bank-service/internal/service"
	"github.com/villagebank/village-bank-service/internal/utils/email"
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
	if err := godotenv.Load(); err != nil {
		logger.Debugf("No .env file loaded: %v", err)
	}
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
	sender := email.NewSender(cfg, logger)
	svc := service.NewService(repo, sender, logger, cfg)
	h := handler.NewHandler(svc)
	feed := ratefeed.NewClient(cfg, logger)

	// Nightly loan status refresh
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.RefreshCron, func() {
		if err := svc.RefreshLoanStatuses(); err != nil {
			logger.Errorf("Loan status refresh failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule loan status refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	r.HandleFunc("/members", h.RegisterMember).Methods("POST")
	r.HandleFunc("/cycles", h.CreateCycle).Methods("POST")
	r.HandleFunc("/cycles", h.ListCycles).Methods("GET")
	r.HandleFunc("/cycles/{id}", h.GetCycleSummary).Methods("GET")
	r.HandleFunc("/cycles/{id}/lock", h.LockCycle).Methods("POST")
	r.HandleFunc("/cycles/{id}/members", h.JoinCycle).Methods("POST")
	r.HandleFunc("/cycles/{id}/shareout", h.GetCycleShareOut).Methods("GET")
	r.HandleFunc("/cycles/{id}/loss-recovery", h.BookLossRecovery).Methods("POST")
	r.HandleFunc("/savings", h.CreateSaving).Methods("POST")
	r.HandleFunc("/loans", h.CreateLoan).Methods("POST")
	r.HandleFunc("/loans/{id}", h.GetLoan).Methods("GET")
	r.HandleFunc("/payments", h.CreatePayment).Methods("POST")
	// Reference key rate, advisory input for cycle rate configuration
	r.HandleFunc("/key-rate", func(w http.ResponseWriter, r *http.Request) {
		rate, err := feed.GetKeyRate()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get key rate: %v", err), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]float64{"key_rate": rate})
	}).Methods("GET")

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
