package application

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/maintenance-system/maintenance-service/internal/auth"
	"github.com/maintenance-system/maintenance-service/internal/config"
	"github.com/maintenance-system/maintenance-service/internal/database"
	"github.com/maintenance-system/maintenance-service/internal/handler"
	"github.com/maintenance-system/maintenance-service/internal/kafka"
	"github.com/maintenance-system/maintenance-service/internal/logs"
	"github.com/maintenance-system/maintenance-service/internal/notify"
	"github.com/maintenance-system/maintenance-service/internal/router"
	"github.com/maintenance-system/maintenance-service/internal/service"
)

// API is the HTTP application.
type API struct {
	cfg      *config.Config
	httpSrv  *http.Server
	producer *kafka.Producer
}

// NewAPI migrates, opens the database and wires the handlers.
func NewAPI(cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	if err := database.SeedUsers(db); err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}

	tokens := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	panel := notify.NewClient(cfg.PanelWebhookURL)

	requestSvc := service.NewRequestService(db)
	userSvc := service.NewUserService(db)

	requestHandler := handler.NewRequestHandler(requestSvc, producer, panel)
	tokenHandler := handler.NewTokenHandler(userSvc, tokens)

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.New(requestHandler, tokenHandler, tokens),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{cfg: cfg, httpSrv: httpSrv, producer: producer}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	logs.Logger.Infof("HTTP server listening on %s", a.httpSrv.Addr)
	logs.Logger.Infof("  Swagger UI:  %s/swagger", base)
	logs.Logger.Infof("  Health:      %s/health", base)
	logs.Logger.Infof("  Token:       %s/api/token/", base)
	logs.Logger.Infof("  API:         %s/api/maintenance-requests/", base)

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logs.Logger.Errorf("http: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := a.producer.Close(); err != nil {
		logs.Logger.Warnf("kafka close: %v", err)
	}
	return nil
}
