package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/arefin/messmate/internal/api"
	"github.com/arefin/messmate/internal/auth"
	"github.com/arefin/messmate/internal/config"
	"github.com/arefin/messmate/internal/middleware"
	"github.com/arefin/messmate/internal/service"
	"github.com/arefin/messmate/internal/storage"
	"github.com/arefin/messmate/internal/storage/mongo"
	"github.com/arefin/messmate/internal/storage/sqlite"
	"github.com/arefin/messmate/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to initialize storage", "backend", cfg.Store, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "backend", cfg.Store)

	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	a := &api.API{
		Auth:    service.NewAuthService(authenticator, tokens),
		Mess:    service.NewMessService(store),
		Ledger:  service.NewLedgerService(store),
		Board:   service.NewBoardService(store),
		Reviews: service.NewReviewService(store),
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/", a.Router(tokens))
	mux.Handle("GET /metrics", middleware.MetricsHandler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.Logging(middleware.CORS(middleware.Metrics(mux)))

	// h2c serves HTTP/2 without TLS for clients behind a terminating proxy.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	slog.Info("server starting", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h2cHandler); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Store {
	case config.StoreMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return mongo.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return sqlite.New(cfg.SQLitePath)
	}
}
