// littlecadd serves the blueprint inspection endpoint and keeps the
// blueprint catalog.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"littlecad.dev/internal/config"
	"littlecad.dev/internal/persistence/indexdb"
	"littlecad.dev/internal/transport/ws"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to littlecadd.yaml (empty: defaults)")
		addr       = flag.String("addr", "", "http listen address (overrides config)")
		disableDB  = flag.Bool("disable_db", false, "disable the blueprint catalog")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[littlecadd] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	var index *indexdb.DB
	if !*disableDB {
		index, err = indexdb.Open(cfg.IndexPath)
		if err != nil {
			logger.Fatalf("open index %s: %v", cfg.IndexPath, err)
		}
		defer index.Close()
	}

	server := ws.NewServer(logger, index, cfg.MaxUploadBytes)

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ws", server.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Printf("listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
}
