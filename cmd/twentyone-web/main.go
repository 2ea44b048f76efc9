package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterkuimelis/twentyone/internal/config"
	"github.com/peterkuimelis/twentyone/internal/web"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.ParseWeb(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cat, err := cfg.OpenCatalog()
	if err != nil {
		log.Printf("Warning: %v", err)
		cat = nil
	}

	srv := web.NewServer(cat, cfg.Seed)
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("twentyone web UI listening on http://localhost:%d", cfg.Port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
