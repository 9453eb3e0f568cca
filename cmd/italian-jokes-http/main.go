// Command italian-jokes-http starts the HTTP server for the Italian
// Jokes bridge: REST endpoints, SSE stream, and the MCP-over-HTTP group.
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

	"github.com/amxkifir/italian-jokes-MCP/internal/config"
	"github.com/amxkifir/italian-jokes-MCP/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if cfg.Token == "" {
		log.Println("WARN: no token configured; /mcp endpoints will be open. Set ITALIAN_JOKES_TOKEN to secure.")
	}

	srv := server.New(server.Config{
		Token:          cfg.Token,
		BaseURL:        cfg.BaseURL,
		RequestTimeout: cfg.RequestTimeout,
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Router(),
	}

	go func() {
		log.Printf("Starting Italian Jokes HTTP server on :%s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
