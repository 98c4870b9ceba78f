// @title Tripmoa Backend API
// @version 1.0
// @description Tripmoa Backend API for travel itinerary planning and sharing

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for goose
	"github.com/pressly/goose/v3"
	"github.com/rs/cors"

	_ "TRIPMOA_BACK-END/docs" // This is required for swagger
	"TRIPMOA_BACK-END/internal/config"
	"TRIPMOA_BACK-END/internal/handlers"
	"TRIPMOA_BACK-END/internal/routes"
	"TRIPMOA_BACK-END/internal/store"
	"TRIPMOA_BACK-END/internal/viewcache"
	"TRIPMOA_BACK-END/migrations"
)

func runMigrations(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	dsn := cfg.GetDSN()

	// pgxpool + simple protocol (needed when connecting through PgBouncer)
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatalf("parse dsn: %v", err)
	}
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "tripmoa-backend"
	poolCfg.ConnConfig.RuntimeParams["statement_timeout"] = "30000" // 30s
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	// Ping on boot
	{
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("ping: %v", err)
		}
	}

	if err := runMigrations(dsn); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	// --- Stores and caches ---

	planStore := store.NewPlanStore(pool)
	userStore := store.NewUserStore(pool)

	views := viewcache.New(cfg.ViewDedup.TTL, cfg.ViewDedup.SweepInterval)
	defer views.Stop()

	// --- HTTP Handlers ---

	authHandler := handlers.NewAuthHandler(userStore, cfg)
	googleAuthHandler := handlers.NewGoogleAuthHandler(userStore, cfg)
	plansHandler := handlers.NewPlansHandler(planStore, cfg)
	exploreHandler := handlers.NewExploreHandler(planStore, views, cfg)
	healthHandler := handlers.NewHealthHandler(pool)

	// Setup all routes
	routes.SetupRoutes(cfg, authHandler, googleAuthHandler, plansHandler, exploreHandler, healthHandler)

	// --- HTTP Server + Graceful Shutdown ---

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	// Wrap the default mux with CORS
	handler := c.Handler(http.DefaultServeMux)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	// Wait for SIGINT to shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped.")
}
