// Package config loads command configuration from TWENTYONE_* environment
// variables, overridden by command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/peterkuimelis/twentyone/internal/game"
)

// Common holds settings every command shares.
type Common struct {
	Catalog string `env:"TWENTYONE_CATALOG"`
	Seed    int64  `env:"TWENTYONE_SEED"`
}

// PlayConfig configures a local terminal game.
type PlayConfig struct {
	Common
	Name string `env:"TWENTYONE_NAME" envDefault:"player"`
}

// HostConfig configures the TCP game host.
type HostConfig struct {
	Common
	Addr string `env:"TWENTYONE_LISTEN_ADDR" envDefault:":9000"`
}

// JoinConfig configures a remote terminal client.
type JoinConfig struct {
	Addr string `env:"TWENTYONE_SERVER_ADDR" envDefault:"localhost:9000"`
	Name string `env:"TWENTYONE_NAME"        envDefault:"player"`
}

// CardsConfig configures the catalog listing.
type CardsConfig struct {
	Common
	JSON bool `env:"TWENTYONE_CARDS_JSON"`
}

// WebConfig configures the web UI server.
type WebConfig struct {
	Common
	Port int `env:"TWENTYONE_HTTP_PORT" envDefault:"8080"`
}

// MCPConfig configures the MCP stdio server.
type MCPConfig struct {
	Common
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadDotEnv exports variables from the given .env files (".env" when none
// are named) without overriding ones already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

func bindCommon(fs *flag.FlagSet, c *Common) {
	fs.StringVar(&c.Catalog, "catalog", c.Catalog, "path to a card catalog (.yaml or .json); empty for the standard catalog")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 for random)")
}

// ParsePlay parses flags into a PlayConfig.
func ParsePlay(fs *flag.FlagSet, args []string) (PlayConfig, error) {
	var cfg PlayConfig
	if err := ParseEnv(&cfg); err != nil {
		return PlayConfig{}, err
	}
	bindCommon(fs, &cfg.Common)
	fs.StringVar(&cfg.Name, "name", cfg.Name, "player name")
	if err := fs.Parse(args); err != nil {
		return PlayConfig{}, err
	}
	return cfg, nil
}

// ParseHost parses flags into a HostConfig.
func ParseHost(fs *flag.FlagSet, args []string) (HostConfig, error) {
	var cfg HostConfig
	if err := ParseEnv(&cfg); err != nil {
		return HostConfig{}, err
	}
	bindCommon(fs, &cfg.Common)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "TCP address to listen on")
	if err := fs.Parse(args); err != nil {
		return HostConfig{}, err
	}
	return cfg, nil
}

// ParseJoin parses flags into a JoinConfig.
func ParseJoin(fs *flag.FlagSet, args []string) (JoinConfig, error) {
	var cfg JoinConfig
	if err := ParseEnv(&cfg); err != nil {
		return JoinConfig{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "server address to connect to")
	fs.StringVar(&cfg.Name, "name", cfg.Name, "player name")
	if err := fs.Parse(args); err != nil {
		return JoinConfig{}, err
	}
	return cfg, nil
}

// ParseCards parses flags into a CardsConfig.
func ParseCards(fs *flag.FlagSet, args []string) (CardsConfig, error) {
	var cfg CardsConfig
	if err := ParseEnv(&cfg); err != nil {
		return CardsConfig{}, err
	}
	bindCommon(fs, &cfg.Common)
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "print the catalog as JSON")
	if err := fs.Parse(args); err != nil {
		return CardsConfig{}, err
	}
	return cfg, nil
}

// ParseWeb parses flags into a WebConfig.
func ParseWeb(fs *flag.FlagSet, args []string) (WebConfig, error) {
	var cfg WebConfig
	if err := ParseEnv(&cfg); err != nil {
		return WebConfig{}, err
	}
	bindCommon(fs, &cfg.Common)
	fs.IntVar(&cfg.Port, "port", cfg.Port, "HTTP port to listen on")
	if err := fs.Parse(args); err != nil {
		return WebConfig{}, err
	}
	return cfg, nil
}

// ParseMCP parses flags into an MCPConfig.
func ParseMCP(fs *flag.FlagSet, args []string) (MCPConfig, error) {
	var cfg MCPConfig
	if err := ParseEnv(&cfg); err != nil {
		return MCPConfig{}, err
	}
	bindCommon(fs, &cfg.Common)
	if err := fs.Parse(args); err != nil {
		return MCPConfig{}, err
	}
	return cfg, nil
}

// OpenCatalog loads the configured catalog, or the standard one when none is set.
func (c Common) OpenCatalog() (*game.Catalog, error) {
	cat, err := game.OpenCatalog(c.Catalog)
	if err != nil {
		return nil, fmt.Errorf("load catalog %q: %w", c.Catalog, err)
	}
	return cat, nil
}
