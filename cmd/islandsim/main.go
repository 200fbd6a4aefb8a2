// Command islandsim plays automated Knowledge Island matches between bot
// universities and records the results in a SQLite ledger.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/talgya/knowledge-island/internal/agents"
	"github.com/talgya/knowledge-island/internal/engine"
	"github.com/talgya/knowledge-island/internal/entropy"
	"github.com/talgya/knowledge-island/internal/persistence"
	"github.com/talgya/knowledge-island/internal/world"
)

func main() {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "islandsim:", err)
		os.Exit(2)
	}

	slog.SetDefault(newLogger(os.Stdout, cfg.Level, isatty.IsTerminal(os.Stdout.Fd())))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

// newLogger returns a text logger for terminals and a JSON logger
// otherwise.
func newLogger(w io.Writer, level slog.Level, terminal bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if terminal {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// tally accumulates results across matches.
type tally struct {
	played   int
	timedOut int
	turns    int
	actions  int
	rejected int
	wins     map[string]int // By archetype
}

func (t *tally) add(res engine.Result, bots [world.NumUnis]*agents.Bot) {
	t.played++
	t.turns += res.Turns
	t.actions += res.Actions
	t.rejected += res.Rejected
	if res.TimedOut {
		t.timedOut++
		return
	}
	if t.wins == nil {
		t.wins = make(map[string]int)
	}
	t.wins[bots[res.Winner-1].Archetype]++
}

func run(ctx context.Context, cfg Config, out io.Writer) error {
	var db *persistence.DB
	if cfg.DBPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		var err error
		db, err = persistence.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		slog.Info("ledger opened", "path", cfg.DBPath)
	}

	slog.Info("Knowledge Island simulator starting",
		"matches", cfg.Matches,
		"layout", cfg.Layout,
		"seed", cfg.Seed,
		"max_turns", cfg.MaxTurns,
	)

	start := time.Now()
	var t tally
	for i := 0; i < cfg.Matches; i++ {
		seed := cfg.Seed
		if seed != 0 {
			seed += int64(i)
		}
		if err := playMatch(ctx, cfg, db, i+1, seed, &t); err != nil {
			return err
		}
	}

	printSummary(out, t, time.Since(start))
	if db != nil {
		total, err := db.CountMatches()
		if err != nil {
			return fmt.Errorf("count matches: %w", err)
		}
		wins, err := db.ArchetypeWins()
		if err != nil {
			return fmt.Errorf("archetype wins: %w", err)
		}
		fmt.Fprintf(out, "\nLedger now holds %s matches. All-time wins:\n", humanize.Comma(int64(total)))
		printWins(out, wins)
		if cfg.Recent > 0 {
			if err := printRecent(out, db, cfg.Recent); err != nil {
				return err
			}
		}
	}
	return nil
}

func playMatch(ctx context.Context, cfg Config, db *persistence.DB, n int, seed int64, t *tally) error {
	dice := entropy.NewDice(seed)
	seed = dice.Seed()

	layout := world.DefaultLayout()
	if cfg.Layout == LayoutGenerated {
		gc := world.DefaultGenConfig()
		gc.Seed = seed
		layout = world.GenerateLayout(gc)
	}

	spawner := agents.NewSpawner(seed)
	spawner.Archetypes = cfg.Archetypes
	bots := spawner.Spawn()

	eng := engine.NewEngine(engine.NewGameFromLayout(layout), dice, agents.Drivers(bots))
	eng.MaxTurns = cfg.MaxTurns
	eng.OnAction = func(u world.Uni, a engine.Action) {
		slog.Debug("action", "turn", eng.Game.Turn(), "uni", u, "action", a)
	}

	started := time.Now()
	res, err := eng.Run(ctx)
	if err != nil {
		return fmt.Errorf("%s match: %w", humanize.Ordinal(n), err)
	}
	t.add(res, bots)

	attrs := []any{
		"match", n,
		"seed", seed,
		"turns", res.Turns,
		"actions", res.Actions,
		"elapsed", time.Since(started).Round(time.Millisecond),
	}
	if res.TimedOut {
		slog.Info("match timed out", attrs...)
	} else {
		w := bots[res.Winner-1]
		attrs = append(attrs, "winner", w.Name, "archetype", w.Archetype, "kpi", eng.Game.KPI(res.Winner))
		slog.Info("match won", attrs...)
	}

	if db == nil {
		return nil
	}
	rec := persistence.Match{
		StartedAt: started,
		Seed:      seed,
		Layout:    layout,
		Result:    res,
	}
	for i, b := range bots {
		rec.Names[i] = b.Name
		rec.Archetypes[i] = b.Archetype
	}
	id, err := db.SaveMatch(rec)
	if err != nil {
		return fmt.Errorf("save %s match: %w", humanize.Ordinal(n), err)
	}
	slog.Debug("match recorded", "id", id)
	return nil
}

func printSummary(out io.Writer, t tally, elapsed time.Duration) {
	fmt.Fprintf(out, "\nPlayed %s matches in %s: %s turns, %s actions, %s rejected, %s timed out.\n",
		humanize.Comma(int64(t.played)),
		elapsed.Round(time.Millisecond),
		humanize.Comma(int64(t.turns)),
		humanize.Comma(int64(t.actions)),
		humanize.Comma(int64(t.rejected)),
		humanize.Comma(int64(t.timedOut)),
	)
	printWins(out, t.wins)
}

// printWins lists archetypes by wins, most first.
func printWins(out io.Writer, wins map[string]int) {
	names := make([]string, 0, len(wins))
	for a := range wins {
		names = append(names, a)
	}
	sort.Slice(names, func(i, j int) bool {
		if wins[names[i]] != wins[names[j]] {
			return wins[names[i]] > wins[names[j]]
		}
		return names[i] < names[j]
	})
	for i, a := range names {
		fmt.Fprintf(out, "  %-4s %-12s %s wins\n", humanize.Ordinal(i+1), a, humanize.Comma(int64(wins[a])))
	}
}

// printRecent lists the newest ledger matches with each board's discipline
// mix and the students every university finished with.
func printRecent(out io.Writer, db *persistence.DB, limit int) error {
	rows, err := db.RecentMatches(limit)
	if err != nil {
		return fmt.Errorf("recent matches: %w", err)
	}
	fmt.Fprintf(out, "\nLast %s matches:\n", humanize.Comma(int64(len(rows))))
	for _, r := range rows {
		m, players, err := db.GetMatch(r.ID)
		if err != nil {
			return fmt.Errorf("match %s: %w", r.ID, err)
		}
		layout, err := m.Layout()
		if err != nil {
			return fmt.Errorf("match %s layout: %w", r.ID, err)
		}

		outcome := "timed out"
		if !m.TimedOut {
			outcome = "won by " + world.Uni(m.Winner).String()
		}
		fmt.Fprintf(out, "  %s seed %d, %s turns, %s (%s)\n",
			humanize.Time(time.Unix(m.StartedAt, 0)), m.Seed, humanize.Comma(int64(m.Turns)), outcome, layoutMix(layout))
		for _, p := range players {
			students, err := p.Students()
			if err != nil {
				return fmt.Errorf("match %s uni %d students: %w", r.ID, p.Uni, err)
			}
			fmt.Fprintf(out, "    %s %-12s KPI %3d  %s\n", world.Uni(p.Uni), p.Archetype, p.KPI, students)
		}
	}
	return nil
}

// layoutMix summarises how many regions carry each discipline.
func layoutMix(l world.Layout) string {
	counts := world.DisciplineCounts(l)
	parts := make([]string, 0, world.NumDisciplines)
	for d := world.StudentTHD; d <= world.StudentMMONEY; d++ {
		parts = append(parts, fmt.Sprintf("%s %d", d, counts[d]))
	}
	return strings.Join(parts, ", ")
}
