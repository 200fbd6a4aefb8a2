package main

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/talgya/knowledge-island/internal/agents"
	"github.com/talgya/knowledge-island/internal/engine"
)

// Board layouts a match can be played on.
const (
	LayoutDefault   = "default"
	LayoutGenerated = "generated"
)

// Config controls a simulator run. Environment variables are read first;
// command-line flags override them.
type Config struct {
	Seed       int64    `env:"ISLAND_SEED"`                           // 0 draws a crypto seed per match
	Matches    int      `env:"ISLAND_MATCHES"     envDefault:"10"`
	DBPath     string   `env:"ISLAND_DB"          envDefault:"data/island.db"`
	LogLevel   string   `env:"ISLAND_LOG_LEVEL"   envDefault:"info"`
	Layout     string   `env:"ISLAND_LAYOUT"      envDefault:"default"`
	MaxTurns   int      `env:"ISLAND_MAX_TURNS"   envDefault:"3000"`
	Archetypes []string `env:"ISLAND_ARCHETYPES"  envSeparator:","`
	Recent     int      `env:"ISLAND_RECENT"` // Ledger entries to list after the run

	// Level is parsed from LogLevel by LoadConfig.
	Level slog.Level
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Matches:  10,
		DBPath:   "data/island.db",
		LogLevel: "info",
		Layout:   LayoutDefault,
		MaxTurns: engine.DefaultMaxTurns,
		Level:    slog.LevelInfo,
	}
}

// LoadConfig reads ISLAND_* variables, then applies flags from args.
func LoadConfig(args []string) (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("islandsim", flag.ContinueOnError)
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "base seed, 0 for a random seed per match")
	fs.IntVar(&cfg.Matches, "matches", cfg.Matches, "number of matches to play")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "match ledger path, empty to skip recording")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.Layout, "layout", cfg.Layout, "board layout: default or generated")
	fs.IntVar(&cfg.MaxTurns, "max-turns", cfg.MaxTurns, "turn limit per match")
	fs.IntVar(&cfg.Recent, "recent", cfg.Recent, "list this many recent ledger matches")
	archetypes := fs.String("archetypes", strings.Join(cfg.Archetypes, ","), "comma-separated archetypes to draw bots from")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.Archetypes = nil
	for _, a := range strings.Split(*archetypes, ",") {
		if a = strings.TrimSpace(a); a != "" {
			cfg.Archetypes = append(cfg.Archetypes, a)
		}
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return Config{}, err
	}
	cfg.Level = level
	return cfg, nil
}

func (c Config) validate() error {
	if c.Matches < 1 {
		return fmt.Errorf("matches must be positive, got %d", c.Matches)
	}
	if c.MaxTurns < 1 {
		return fmt.Errorf("max turns must be positive, got %d", c.MaxTurns)
	}
	if c.Layout != LayoutDefault && c.Layout != LayoutGenerated {
		return fmt.Errorf("unknown layout %q", c.Layout)
	}
	if c.Recent < 0 {
		return fmt.Errorf("recent must not be negative, got %d", c.Recent)
	}
	for _, a := range c.Archetypes {
		if !agents.KnownArchetype(a) {
			return fmt.Errorf("unknown archetype %q", a)
		}
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}
