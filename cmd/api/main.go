package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/botforge/botforge/internal/config"
	"github.com/botforge/botforge/internal/handler"
	"github.com/botforge/botforge/internal/service/ai"
	"github.com/botforge/botforge/internal/service/chat"
	"github.com/botforge/botforge/internal/storage"
	"github.com/botforge/botforge/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	kv, err := storage.OpenSQLite(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			log.Printf("error closing storage: %v", err)
		}
	}()

	bots := store.NewBots(kv)
	transcripts := store.NewTranscripts(kv)
	settings := store.NewSettings(kv)

	var completer ai.Completer
	if cfg.Upstream.Enabled() {
		client, err := ai.NewClient(ai.ClientConfig{
			BaseURL: cfg.Upstream.BaseURL,
			APIKey:  cfg.Upstream.APIKey,
			Model:   cfg.Upstream.Model,
			Referer: cfg.Upstream.Referer,
			Title:   cfg.Upstream.Title,
			Timeout: cfg.Upstream.Timeout,
		})
		if err != nil {
			log.Fatalf("failed to initialize completion client: %v", err)
		}
		completer = client
		log.Printf("completion client initialized for model %s", cfg.Upstream.Model)
	} else {
		log.Println("upstream credentials not configured, sends and relay disabled")
	}

	chatSvc := chat.NewService(transcripts, completer)
	router := handler.NewRouter(bots, transcripts, settings, chatSvc, completer, cfg.Relay.Fallback)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("BotForge backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
