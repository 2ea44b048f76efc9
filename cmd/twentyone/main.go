package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/peterkuimelis/twentyone/internal/config"
	"github.com/peterkuimelis/twentyone/internal/game"
	tonet "github.com/peterkuimelis/twentyone/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "play":
		err = runPlay(ctx, os.Args[2:])
	case "host":
		err = runHost(ctx, os.Args[2:])
	case "join":
		err = runJoin(ctx, os.Args[2:])
	case "cards":
		err = runCards(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  twentyone play  [--catalog FILE] [--seed N] [--name NAME]")
	fmt.Println("  twentyone host  [--catalog FILE] [--seed N] [--addr ADDR]")
	fmt.Println("  twentyone join  [--addr ADDR] [--name NAME]")
	fmt.Println("  twentyone cards [--catalog FILE] [--json]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Play a game in this terminal")
	fmt.Println("  host    Serve games to TCP clients")
	fmt.Println("  join    Connect to a host and play")
	fmt.Println("  cards   List the card catalog")
	fmt.Println()
	fmt.Println("Flags can also be set with TWENTYONE_* environment variables.")
}

// openCatalog loads the configured catalog. A broken catalog is logged and
// left nil so the game reports it as unavailable.
func openCatalog(c config.Common) *game.Catalog {
	cat, err := c.OpenCatalog()
	if err != nil {
		log.Printf("Warning: %v", err)
		return nil
	}
	return cat
}

func runPlay(ctx context.Context, args []string) error {
	cfg, err := config.ParsePlay(flag.NewFlagSet("play", flag.ExitOnError), args)
	if err != nil {
		return err
	}
	srv := &tonet.Server{Catalog: openCatalog(cfg.Common), Seed: cfg.Seed}
	return tonet.PlayLocal(ctx, srv, tonet.NewClient(cfg.Name, os.Stdin, os.Stdout))
}

func runHost(ctx context.Context, args []string) error {
	cfg, err := config.ParseHost(flag.NewFlagSet("host", flag.ExitOnError), args)
	if err != nil {
		return err
	}
	srv := &tonet.Server{Catalog: openCatalog(cfg.Common), Addr: cfg.Addr, Seed: cfg.Seed}
	return srv.Run(ctx)
}

func runJoin(ctx context.Context, args []string) error {
	cfg, err := config.ParseJoin(flag.NewFlagSet("join", flag.ExitOnError), args)
	if err != nil {
		return err
	}
	return tonet.Connect(ctx, cfg.Addr, tonet.NewClient(cfg.Name, os.Stdin, os.Stdout))
}

func runCards(args []string) error {
	cfg, err := config.ParseCards(flag.NewFlagSet("cards", flag.ExitOnError), args)
	if err != nil {
		return err
	}
	cat, err := cfg.OpenCatalog()
	if err != nil {
		return err
	}

	if cfg.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tonet.BuildCatalogView(cat))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCARD\tNAME\tRARITY\tWEIGHT")
	for _, card := range cat.Cards() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", card.ID, game.CardText(card, 0), card.Name, card.Rarity, card.Weight())
	}
	return w.Flush()
}
