package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wassitdz/wassit-api/internal/complaint"
	"github.com/wassitdz/wassit-api/internal/config"
	"github.com/wassitdz/wassit-api/internal/mailer"
	"github.com/wassitdz/wassit-api/internal/order"
	"github.com/wassitdz/wassit-api/internal/realtime"
	"github.com/wassitdz/wassit-api/internal/storage"
	"github.com/wassitdz/wassit-api/internal/user"
)

// @title Wassit DZ ordering API
// @version 1.0
// @description Buyer-proxy ordering service: orders, checkout, complaints, admin console.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		// configuration errors are terminal, there is no fallback
		log.Fatalf("configuration error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres connect: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("postgres ping: %v", err)
	}
	defer pool.Close()

	a := &app{
		cfg:        cfg,
		users:      user.NewService(user.NewPGRepo(pool), []byte(cfg.JWTSecret), cfg.JWTTTL, cfg.AdminEmail),
		orders:     order.NewPGRepo(pool),
		complaints: complaint.NewPGRepo(pool),
		store:      storage.NewClient(cfg.StorageEndpoint, cfg.StorageAPIKey, cfg.StorageBucket),
		notifier:   mailer.NewClient(cfg.ResendEndpoint, cfg.ResendAPIKey, cfg.AdminEmail, cfg.AdminConsole),
		broker:     realtime.NewBroker(),
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      newRouter(a),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("wassit-api listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
	log.Println("server stopped")
}
