// cmd/web/main.go
//
// Feedback service – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load configuration (conf/.env → conf/global.yaml → legacy SMTP_* keys
//     → FEEDBACK_* overrides, Vault references resolved).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Build the mail transport named by mail.transport and the relay
//     service on top of it.
//
//  4. Open the optional GeoLite2 database for request enrichment.
//
//  5. Build the router:
//
//     • request id + scoped logger  – middleware.RequestID
//     • access log + metrics        – middleware.AccessLog
//     • panic → JSON 500            – middleware.Recover
//     • security headers            – middleware.Security
//     • HTTPS redirect (optional)   – middleware.ForceHTTPS
//     • UA / geo enrichment         – requestinfo.Enricher
//     • /healthz, /metrics, then every registered component.
//
//  6. Serve until SIGINT/SIGTERM, then drain.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/feedback/internal/api"
	"github.com/yanizio/feedback/internal/component"
	"github.com/yanizio/feedback/internal/config"
	"github.com/yanizio/feedback/internal/form"
	"github.com/yanizio/feedback/internal/logger"
	"github.com/yanizio/feedback/internal/mail"
	"github.com/yanizio/feedback/internal/middleware"
	"github.com/yanizio/feedback/internal/relay"
	"github.com/yanizio/feedback/internal/requestinfo"
	"github.com/yanizio/feedback/internal/server"

	_ "github.com/yanizio/feedback/components/feedback" // page + JSON API
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("feedback: %v", err)
	}
}

func run(ctx context.Context) error {
	//
	// ── 1.  Configuration ───────────────────────────────────────────────
	//
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	//
	// ── 2.  Logger ──────────────────────────────────────────────────────
	//
	logOut, err := logger.New(logger.Options{
		Dir:   cfg.Log.Dir,
		Level: cfg.Log.Level,
		Tee:   cfg.Log.Tee || runningInTTY(),
	})
	if err != nil {
		return err
	}
	defer func() { _ = logOut.Sync() }()

	//
	// ── 3.  Mail transport + relay ──────────────────────────────────────
	//
	sender, err := mail.New(mail.Config{
		Transport:    cfg.Mail.Transport,
		Host:         cfg.Mail.Host,
		Port:         cfg.Mail.Port,
		Secure:       cfg.Mail.Secure,
		Username:     cfg.Mail.Username,
		Password:     cfg.Mail.Password,
		ResendAPIKey: cfg.Mail.ResendAPIKey,
		Timeout:      cfg.Mail.Timeout,
	}, logOut)
	if err != nil {
		return err
	}

	svc, err := relay.New(relay.Config{
		FromAddress:      cfg.Mail.FromAddress,
		FromName:         cfg.Mail.FromName,
		OperatorAddress:  cfg.Mail.OperatorAddress,
		SendConfirmation: cfg.Mail.SendConfirmation,
	}, sender)
	if err != nil {
		return err
	}
	logOut.Infow("mail relay ready", "transport", sender.Name(), "confirmation", cfg.Mail.SendConfirmation)

	//
	// ── 4.  Request enrichment ──────────────────────────────────────────
	//
	enricher, err := requestinfo.NewEnricher(cfg.GeoIP.CityDB, cfg.HTTP.TrustedProxies...)
	if err != nil {
		return err
	}
	defer enricher.Close()

	guard, err := form.NewGuard(cfg.HTTP.FormKey)
	if err != nil {
		return err
	}

	//
	// ── 5.  Router ──────────────────────────────────────────────────────
	//
	r, err := newRouter(cfg, logOut, enricher, component.Deps{
		Submitter: svc,
		Guard:     guard,
		Log:       logOut,
	})
	if err != nil {
		return err
	}

	//
	// ── 6.  Serve ───────────────────────────────────────────────────────
	//
	return server.Run(ctx, server.New(cfg.HTTP.ListenAddr, r, logOut), logOut)
}

// newRouter assembles the middleware chain, operational endpoints, and
// every registered component.
func newRouter(cfg *config.Config, logOut *zap.SugaredLogger, enricher *requestinfo.Enricher, deps component.Deps) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(logOut),
		middleware.AccessLog,
		middleware.Recover,
		middleware.Security,
		middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS),
		enricher.Middleware,
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	if err := component.Mount(r, deps); err != nil {
		return nil, err
	}
	return r, nil
}
