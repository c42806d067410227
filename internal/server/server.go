// Package server is the composition root: it opens the database, builds the
// services and handlers, mounts the routes and runs the HTTP server with
// graceful shutdown.
//
//	main → server.New(cfg) → sqlite.DB → services → handlers → chi routes
//
// NewRouter is exported separately so tests can drive the full route table
// against an in-memory database without binding a port.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/sakif/starwars-api/internal/auth"
	"github.com/sakif/starwars-api/internal/config"
	"github.com/sakif/starwars-api/internal/handler"
	"github.com/sakif/starwars-api/internal/metrics"
	"github.com/sakif/starwars-api/internal/middleware"
	"github.com/sakif/starwars-api/internal/model"
	sqliteRepo "github.com/sakif/starwars-api/internal/repository/sqlite"
	"github.com/sakif/starwars-api/internal/service"
)

// Deps is everything the router needs. The caller owns DB and closes it.
type Deps struct {
	DB        *sqliteRepo.DB
	Tokens    *auth.TokenService
	Passwords *auth.PasswordService
	HTTP      config.HTTPConfig
	Logger    *slog.Logger
}

// NewRouter wires services and handlers onto a chi router.
//
// Middleware order: request id and real ip first so the logger sees them,
// Recoverer before the logger so a panic is still logged as a 500, and
// StripSlashes before routing so "/planets/" and "/planets" match the same
// route.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(d.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.StripSlashes)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.HTTP.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	userService := service.NewUserService(d.DB, d.Passwords, d.Logger)
	planetService := service.NewPlanetService(d.DB, d.Logger)
	characterService := service.NewCharacterService(d.DB, d.Logger)
	vehicleService := service.NewVehicleService(d.DB, d.Logger)
	favoriteService := service.NewFavoriteService(d.DB, d.DB, d.DB, d.DB, d.DB, d.Logger)
	authService := service.NewAuthService(d.DB, d.Tokens, d.Passwords, d.Logger)

	users := handler.NewUserHandler(userService)
	planets := handler.NewPlanetHandler(planetService)
	characters := handler.NewCharacterHandler(characterService)
	vehicles := handler.NewVehicleHandler(vehicleService)
	favorites := handler.NewFavoriteHandler(favoriteService)
	login := handler.NewAuthHandler(authService)
	index := handler.NewIndexHandler(r, d.DB)

	r.Get("/", index.HandleSitemap)
	r.Get("/healthz", index.HandleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.With(httprate.LimitByIP(d.HTTP.LoginRateLimit, d.HTTP.LoginRateWindow)).
		Post("/login", login.HandleLogin)

	r.Route("/user", func(r chi.Router) {
		r.Get("/", users.HandleList)
		r.Post("/", users.HandleCreate)
		r.Get("/{id}", users.HandleGet)
		r.Put("/{id}", users.HandleUpdate)
		r.Delete("/{id}", users.HandleDelete)
	})

	r.Route("/planets", func(r chi.Router) {
		r.Get("/", planets.HandleList)
		r.Post("/", planets.HandleCreate)
		r.Get("/{id}", planets.HandleGet)
		r.Put("/{id}", planets.HandleUpdate)
		r.Delete("/{id}", planets.HandleDelete)
	})

	r.Route("/character", func(r chi.Router) {
		r.Get("/", characters.HandleList)
		r.Post("/", characters.HandleCreate)
		r.Get("/{id}", characters.HandleGet)
		r.Put("/{id}", characters.HandleUpdate)
		r.Delete("/{id}", characters.HandleDelete)
	})
	// Existing clients delete through the plural path.
	r.Delete("/characters/{id}", characters.HandleDelete)

	r.Route("/vehicles", func(r chi.Router) {
		r.Get("/", vehicles.HandleList)
		r.Post("/", vehicles.HandleCreate)
		r.Get("/{id}", vehicles.HandleGet)
		r.Put("/{id}", vehicles.HandleUpdate)
		r.Delete("/{id}", vehicles.HandleDelete)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(d.Tokens))

		r.Get("/protected", login.HandleProtected)
		r.Get("/users/favorites", favorites.HandleListAll)

		// Every favorite route answers on both the singular and plural name.
		for _, kind := range model.FavoriteKinds {
			for _, name := range []string{string(kind), string(kind) + "s"} {
				r.Post("/users/favorites/"+name, favorites.HandleAdd(kind))

				r.Get("/favorite"+name, favorites.HandleList(kind))
				r.Get("/favorite"+name+"/{id}", favorites.HandleGet(kind))
				r.Delete("/favorite"+name+"/{id}", favorites.HandleDelete(kind))
			}
		}
	})

	return r
}

// Server owns the database and the HTTP listener.
type Server struct {
	router http.Handler
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database (creating the schema if needed) and builds the
// router from cfg.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	db, err := sqliteRepo.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	router := NewRouter(Deps{
		DB:        db,
		Tokens:    tokens,
		Passwords: auth.NewPasswordService(cfg.Auth.BcryptCost),
		HTTP:      cfg.HTTP,
		Logger:    logger,
	})

	return &Server{
		router: router,
		config: cfg,
		logger: logger,
		db:     db,
	}, nil
}

// Start serves until SIGINT or SIGTERM, then drains in-flight requests for
// up to Server.ShutdownTimeout and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Server.Port),
			slog.String("database", s.config.Database.Path),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
