package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"eventhub/internal/auth"
	"eventhub/internal/config"
	"eventhub/internal/database/migrations"
	"eventhub/internal/events"
	events_db "eventhub/internal/events/db"
	"eventhub/internal/events/event_api"
	"eventhub/internal/logger"
	"eventhub/internal/users"
	users_db "eventhub/internal/users/db"
	"eventhub/internal/users/user_api"
)

func openDatabase(ctx context.Context, cfg *config.Config, log *logger.Logger) *bun.DB {
	sqldb, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to open SQLite at %s: %v", cfg.Database.Path, err))
	}
	if err := sqldb.PingContext(ctx); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to SQLite: %v", err))
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	if err := migrations.Run(ctx, bunDB); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to initialize schema: %v", err))
	}
	log.Info("DATABASE", fmt.Sprintf("SQLite ready at %s", cfg.Database.Path))

	return bunDB
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	bunDB := openDatabase(ctx, cfg, log)
	defer bunDB.Close()

	tokenService := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifetime)
	userService := users.NewUserService(&users_db.DB{Bun: bunDB})
	eventService := events.NewEventService(&events_db.DB{Bun: bunDB})

	userHandler := user_api.NewHandler(userService, tokenService, log)
	eventHandler := event_api.NewHandler(eventService, log)

	r := chi.NewRouter()
	r.Use(logger.RequestLogger(log))

	r.Route("/users", func(r chi.Router) {
		r.Post("/signup", userHandler.Signup)
		r.Post("/login", userHandler.Login)
		r.Get("/", userHandler.ListUsers)
		r.Get("/{userId}", userHandler.GetUser)
		r.Put("/{userId}", userHandler.UpdateUser)
		r.Delete("/{userId}", userHandler.DeleteUser)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(tokenService))
			r.Get("/me", userHandler.Me)
		})
	})
	log.Info("ROUTER", "User routes registered under /users")

	r.Route("/events", func(r chi.Router) {
		r.Post("/", eventHandler.CreateEvent)
		r.Get("/", eventHandler.ListEvents)
		r.Get("/{eventId}", eventHandler.GetEvent)
		r.Put("/{eventId}", eventHandler.UpdateEvent)
		r.Delete("/{eventId}", eventHandler.DeleteEvent)
	})
	log.Info("ROUTER", "Event routes registered under /events")

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("Eventhub API running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		log.Info("HTTP", "Eventhub API shutdown complete")
	}
}
