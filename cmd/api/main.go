package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"raphavets/internal/adapters/auth/jwtauth"
	"raphavets/internal/adapters/ml"
	pg "raphavets/internal/adapters/storage/postgres"
	"raphavets/internal/config"
	"raphavets/internal/platform/logger"
	"raphavets/internal/ports/auth"
	"raphavets/internal/reminder"
	"raphavets/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	appLog := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    "raphavets",
	})

	var verifier auth.AuthVerifier
	if cfg.JWTSecret != "" {
		v, err := jwtauth.NewVerifier(jwtauth.Config{
			Secret: cfg.JWTSecret,
			Issuer: cfg.JWTIssuer,
		})
		if err != nil {
			log.Fatalf("jwt verifier error: %v", err)
		}
		verifier = v
	} else {
		appLog.Warn("no JWT secret configured, running in dev auth mode", nil)
	}

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			log.Fatalf("postgres error: %v", err)
		}
		defer db.Close()
	}

	mlClient, err := ml.NewClient(ml.Config{BaseURL: cfg.MLBaseURL})
	if err != nil {
		log.Fatalf("ml client error: %v", err)
	}

	r, deps := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DB:           db,
		Predictor:    mlClient,
		Log:          appLog,
	})

	if cfg.ReminderCron != "" {
		sweeper := reminder.NewSweeper(
			deps.Appointments,
			reminder.LogNotifier{Log: appLog},
			appLog,
			cfg.ReminderCron,
		)
		if err := sweeper.Start(); err != nil {
			log.Fatalf("reminder cron error: %v", err)
		}
		defer sweeper.Stop()
	}

	srv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	appLog.Info("starting server", map[string]any{"addr": cfg.Listen})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
