package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"chemcatalog/internal/config"
	"chemcatalog/internal/domain"
	"chemcatalog/internal/http/handlers"
	"chemcatalog/internal/password"
	"chemcatalog/internal/repos"
	"chemcatalog/internal/services"
)

func openStore(cfg config.Config) (repos.Store, error) {
	if cfg.StoreDriver == "memory" {
		log.Printf("[store] memory (snapshot=%q)", cfg.SnapshotFile)
		return repos.NewMemStore(cfg.SnapshotFile)
	}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	log.Printf("[store] sqlite %s", cfg.DBDSN)
	return repos.NewSQLStore(db), nil
}

// openLockout prefers Redis so lockouts are shared across instances, and
// falls back to process memory when Redis is not configured or unreachable.
func openLockout(cfg config.Config) (services.Lockout, func()) {
	policy := services.LockoutPolicy{MaxAttempts: cfg.MaxLoginAttempts, Duration: cfg.LockDuration}
	if cfg.RedisAddr == "" {
		return services.NewMemoryLockout(policy), func() {}
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[warn] redis %s unreachable (%v); login lockout kept in memory", cfg.RedisAddr, err)
		_ = rdb.Close()
		return services.NewMemoryLockout(policy), func() {}
	}
	log.Printf("[lockout] redis %s", cfg.RedisAddr)
	return services.NewRedisLockout(rdb, policy), func() { _ = rdb.Close() }
}

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}
	password.SetCost(cfg.BcryptCost)

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	err = repos.SeedUsers(store, []domain.NewUser{
		{Username: cfg.ProtectedUsername, Password: cfg.SeedAdminPassword, Role: domain.RoleSuperAdmin},
		{Username: "manager", Password: cfg.SeedManagerPassword, Role: domain.RoleManager},
	})
	if err != nil {
		log.Fatal(err)
	}

	lockout, closeLockout := openLockout(cfg)
	defer closeLockout()

	app := handlers.NewApp(cfg, handlers.NewDeps(store, cfg, lockout))

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Printf("[server] shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	log.Printf("[server] listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("[server] %v", err)
	}
}
