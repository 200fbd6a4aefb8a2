// Command island runs an interactive Knowledge Island match on the
// console. Humans play the first universities; bots fill the rest.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/mattn/go-isatty"

	"github.com/talgya/knowledge-island/internal/agents"
	"github.com/talgya/knowledge-island/internal/engine"
	"github.com/talgya/knowledge-island/internal/entropy"
	"github.com/talgya/knowledge-island/internal/world"
)

// consoleConfig is read from the environment.
type consoleConfig struct {
	Seed         int64  `env:"ISLAND_SEED"`
	Humans       int    `env:"ISLAND_HUMANS" envDefault:"1"`
	BotArchetype string `env:"ISLAND_BOT_ARCHETYPE" envDefault:"Expansionist"`
	Debug        bool   `env:"ISLAND_DEBUG"`
}

func loadConsoleConfig() (consoleConfig, error) {
	var cfg consoleConfig
	if err := env.Parse(&cfg); err != nil {
		return consoleConfig{}, fmt.Errorf("parse env: %w", err)
	}
	if !agents.KnownArchetype(cfg.BotArchetype) {
		return consoleConfig{}, fmt.Errorf("unknown archetype %q", cfg.BotArchetype)
	}
	return cfg, nil
}

func main() {
	cfg, err := loadConsoleConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Logs stay out of the way of the prompt.
	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, opts)
	if isatty.IsTerminal(os.Stderr.Fd()) {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	winner, err := play(ctx, os.Stdin, os.Stdout, cfg.Seed, cfg.Humans, cfg.BotArchetype)
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Println("\nGame abandoned.")
	case err != nil:
		slog.Error("game failed", "error", err)
		os.Exit(1)
	case winner == world.NoOne:
		fmt.Println("Nobody won.")
	default:
		fmt.Printf("University %s won!\n", winner)
	}
}

// play runs one match with the given number of console players.
func play(ctx context.Context, in io.Reader, out io.Writer, seed int64, humans int, archetype string) (world.Uni, error) {
	if humans < 0 || humans > world.NumUnis {
		return world.NoOne, fmt.Errorf("humans must be 0..%d, got %d", world.NumUnis, humans)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dice := entropy.NewDice(seed)
	console := NewConsole(in, out)
	console.Quit = cancel

	var drivers [world.NumUnis]engine.Driver
	for i := range drivers {
		u := world.Uni(i + 1)
		if i < humans {
			drivers[i] = console
			continue
		}
		drivers[i] = agents.NewBot("bot "+u.String(), archetype, dice.Seed()+int64(i))
	}

	eng := engine.NewEngine(engine.NewGameFromLayout(world.DefaultLayout()), dice, drivers)
	eng.MaxActionsPerTurn = 1000
	eng.OnThrow = func(p engine.Production) {
		fmt.Fprintf(out, "\nRolled %d.", p.Roll)
		for u := world.UniA; u <= world.UniC; u++ {
			if n := p.Gained(u); n > 0 {
				fmt.Fprintf(out, " %s +%d.", u, n)
			}
		}
		if p.Roll == engine.RedistributionRoll {
			fmt.Fprint(out, " MTV and MMONEY students drop out to THD.")
		}
		fmt.Fprintln(out)
	}
	eng.OnAction = func(u world.Uni, a engine.Action) {
		fmt.Fprintf(out, "%s: %s\n", u, a)
	}

	fmt.Fprintf(out, "Knowledge Island, seed %d. Type \"help\" for commands.\n", dice.Seed())
	res, err := eng.Run(ctx)
	if err != nil {
		return world.NoOne, err
	}
	fmt.Fprint(out, "\n"+scoreboard(eng.Game))
	return res.Winner, nil
}
