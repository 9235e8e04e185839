package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"dps.dev/internal/auth"
	"dps.dev/internal/config"
	"dps.dev/internal/deploy"
	"dps.dev/internal/httpapi"
	"dps.dev/internal/obs"
	"dps.dev/internal/registry"
)

var version = "0.1.0"

func main() {
	obs.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	pemData, err := cfg.SigningKeyPEM()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	signingKey, err := auth.ParseSigningKey(pemData)
	if err != nil {
		log.Fatalf("signing key: %v", err)
	}
	codec, err := auth.NewCodec(signingKey)
	if err != nil {
		log.Fatalf("token codec: %v", err)
	}

	// Without a DSN the process runs in development mode: in-memory stores
	// seeded with the fixture users.
	var (
		db            *sql.DB
		authStore     auth.Store
		registryStore registry.Store
	)
	if cfg.DatabaseDSN != "" {
		db, err = sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)

		authStore = auth.NewPGStore(db)
		registryStore = registry.NewPGStore(db)
	} else {
		log.Println("DPS_PG_DSN not set, using in-memory stores")
		mem := auth.NewMemStore()
		seedDevUsers(mem)
		authStore = mem
		registryStore = registry.NewMemStore()
	}

	authSvc, err := auth.NewService(authStore, codec)
	if err != nil {
		log.Fatalf("auth service: %v", err)
	}
	reg, err := registry.NewManager(registryStore, deploy.NewSimulator())
	if err != nil {
		log.Fatalf("registry: %v", err)
	}

	api := httpapi.New(authSvc, reg, httpapi.ReadyProbe{DB: db}, version)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting dps-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if db != nil {
		_ = db.Close()
	}
	log.Println("Stopped")
}

func seedDevUsers(store *auth.MemStore) {
	store.SeedUser(auth.User{
		ID:             "u-admin",
		Username:       "admin",
		PasswordDigest: auth.HashPassword("strongpassword"),
		Role:           auth.RoleAdmin,
		Status:         auth.UserStatusActive,
	})
	store.SeedUser(auth.User{
		ID:             "u-contributor",
		Username:       "contributor",
		PasswordDigest: auth.HashPassword("evenstrongerpassword"),
		Role:           auth.RoleContributor,
		Status:         auth.UserStatusActive,
	})
	store.SeedUser(auth.User{
		ID:             "u-guest",
		Username:       "guest",
		PasswordDigest: auth.HashPassword("password"),
		Role:           auth.RoleGuest,
		Status:         auth.UserStatusActive,
	})
}
