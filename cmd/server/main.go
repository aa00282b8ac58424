package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"techo/backend/internal/config"
	"techo/backend/internal/httpapi"
	"techo/backend/internal/service"
	"techo/backend/internal/state"
	"techo/backend/internal/store"
	"techo/backend/internal/store/memory"
	pgstore "techo/backend/internal/store/postgres"
	redisstore "techo/backend/internal/store/redis"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snapshots, closers := buildSnapshotStore(ctx, cfg)

	st := state.New()
	svc := service.New(st, snapshots, cfg.LowStockThreshold)
	if err := svc.Load(ctx); err != nil {
		log.Fatalf("load snapshot: %v", err)
	}

	api := httpapi.New(svc, cfg.AllowedOrigin)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("techo listening on %s", cfg.Address())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Printf("close error: %v", err)
		}
	}

	log.Println("server stopped")
}

// buildSnapshotStore picks the durable backend: postgres when DATABASE_URL is
// set, else redis when REDIS_ADDR is set, else in-memory. A configured but
// unreachable backend is fatal; silently falling back would lose data.
func buildSnapshotStore(ctx context.Context, cfg config.Config) (store.SnapshotStore, []func() error) {
	closers := make([]func() error, 0, 1)

	if cfg.DatabaseURL != "" {
		pg, err := pgstore.New(ctx, cfg.DatabaseURL, cfg.StorageKey)
		if err != nil {
			log.Fatalf("postgres unavailable (%v) and DATABASE_URL is set; refusing to start with in-memory fallback", err)
		}
		closers = append(closers, pg.Close)
		log.Println("snapshot store: postgres")
		return pg, closers
	}

	if cfg.RedisAddr != "" {
		rd := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.StorageKey)
		if err := rd.Ping(ctx); err != nil {
			log.Fatalf("redis unavailable (%v) and REDIS_ADDR is set; refusing to start with in-memory fallback", err)
		}
		closers = append(closers, rd.Close)
		log.Println("snapshot store: redis")
		return rd, closers
	}

	log.Println("snapshot store: in-memory (state will not survive restarts)")
	return memory.New(), closers
}
