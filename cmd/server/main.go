package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"finance-ledger-go/internal/auth"
	"finance-ledger-go/internal/config"
	"finance-ledger-go/internal/database"
	httpserver "finance-ledger-go/internal/http"
	"finance-ledger-go/internal/ledger"
	"finance-ledger-go/internal/logger"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.Load()
	log := logger.Must(cfg.IsDevelopment())
	defer func() { _ = log.Sync() }()

	devSecret := cfg.JWTSecret == ""
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	if devSecret {
		log.Warn("JWT_SECRET not set, using the development signing key")
	}
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg.DatabaseURL, database.Options{
		MaxOpenConns:    cfg.DBMaxOpen,
		MaxIdleConns:    cfg.DBMaxIdle,
		ConnMaxLifetime: cfg.DBMaxLife,
	})
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate database", zap.Error(err))
	}

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	r := httpserver.NewServer(cfg, log, httpserver.Services{
		Tokens:     tokens,
		Users:      ledger.NewUsers(db, auth.NewHasher(cfg.BcryptCost), tokens),
		Categories: ledger.NewCategories(db),
		People:     ledger.NewPeople(db),
		Ledger:     ledger.NewLedger(db, cfg.Location()),
		Seeder:     ledger.NewSeeder(db),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("serve", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	if err := database.Close(db); err != nil {
		log.Error("close database", zap.Error(err))
	}
	log.Info("stopped")
}
