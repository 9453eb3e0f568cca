// Command italian-jokes-mcp runs the stdio MCP server. Protocol traffic
// uses stdout; all logging goes to stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/amxkifir/italian-jokes-MCP/internal/config"
	"github.com/amxkifir/italian-jokes-MCP/internal/jokes"
	"github.com/amxkifir/italian-jokes-MCP/internal/mcp"
	"github.com/amxkifir/italian-jokes-MCP/internal/server"
	"github.com/amxkifir/italian-jokes-MCP/internal/tools"
)

const name = "italian-jokes-mcp"

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", name)
		fmt.Fprintf(os.Stderr, "An MCP server that serves Italian jokes from the Italian Jokes API.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment variables:\n")
		fmt.Fprintf(os.Stderr, "  ITALIAN_JOKES_BASE_URL         Override the joke API endpoint\n")
		fmt.Fprintf(os.Stderr, "  ITALIAN_JOKES_REQUEST_TIMEOUT  Fetch timeout (default 10s)\n")
	}
	flag.Parse()

	// stdout carries the MCP protocol; logging must stay on stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if *showVersion {
		fmt.Fprintf(os.Stderr, "%s v%s\n", name, server.Version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	client := jokes.New(cfg.BaseURL, &http.Client{Timeout: cfg.RequestTimeout})
	srv := mcp.NewServer(os.Stdin, os.Stdout, tools.NewDispatcher(client), name, server.Version)

	err = srv.Run(context.Background())
	if errors.Is(err, io.EOF) {
		log.Printf("Client disconnected")
		return
	}
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
