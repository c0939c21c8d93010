package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/segyhp/microfinance-engine/internal/config"
	"github.com/segyhp/microfinance-engine/internal/repository"
	"github.com/segyhp/microfinance-engine/internal/scheduler"
	"github.com/segyhp/microfinance-engine/internal/seed"
	"github.com/segyhp/microfinance-engine/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := cfg.NewLogger()
	logger.WithField("env", cfg.App.Env).Info("Starting portfolio scheduler...")

	store := repository.NewMemoryStore()
	portfolio := service.NewPortfolioService(store.Repositories(), cfg, logger)

	if cfg.Seed.DemoData {
		book, err := seed.Load(context.Background(), portfolio)
		if err != nil {
			logger.WithError(err).Fatal("Failed to seed demo data")
		}
		logger.WithFields(logrus.Fields{
			"loan_types":  len(book.LoanTypes),
			"borrowers":   len(book.Borrowers),
			"staff":       len(book.Staff),
			"loans":       len(book.Loans),
			"collections": len(book.Collections),
		}).Info("Demo data loaded")
	}

	sched, err := scheduler.New(cfg, portfolio, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to schedule jobs")
	}

	sched.Start()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down scheduler...")
	<-sched.Stop().Done()
}
