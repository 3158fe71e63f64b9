// Command pollweb serves the browser pages for pollbox. It renders HTML on
// the server and calls the pollbox API for all data.
//
//	SESSION_SECRET=change-me API_URL=http://localhost:4000 go run ./cmd/pollweb
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/pollbox/cliparse"
	"github.com/danielhkuo/pollbox/client"
	"github.com/danielhkuo/pollbox/logger"
	"github.com/danielhkuo/pollbox/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := cliparse.ParseWebFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Env, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := client.New(cfg.APIURL, client.WithHTTPClient(&http.Client{Timeout: 15 * time.Second}))

	pages, err := web.New(api, cfg.SessionSecret)
	if err != nil {
		slog.Error("template setup failed", "error", err)
		os.Exit(1)
	}

	server := http.Server{
		Handler:           pages.Routes(),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 5 * time.Second,
	}

	idle := make(chan struct{})
	go func() {
		defer close(idle)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("Listening", "port", cfg.Port, "api", cfg.APIURL, "env", cfg.Env)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	<-idle
	slog.Info("Server closed")
}
