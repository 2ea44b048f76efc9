package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/twentyone/internal/config"
	tomcp "github.com/peterkuimelis/twentyone/internal/mcp"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.ParseMCP(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the protocol.
	log.SetOutput(os.Stderr)

	cat, err := cfg.OpenCatalog()
	if err != nil {
		log.Printf("Warning: %v", err)
		cat = nil
	}

	h := tomcp.NewHandler(cat, cfg.Seed)
	defer h.Close()

	s := server.NewMCPServer("twentyone", "1.0.0")
	tomcp.RegisterTools(s, h)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
