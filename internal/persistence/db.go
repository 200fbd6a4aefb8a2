// Package persistence provides SQLite-based storage for finished match
// records.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/knowledge-island/internal/economy"
	"github.com/talgya/knowledge-island/internal/engine"
	"github.com/talgya/knowledge-island/internal/world"
)

// DB wraps a SQLite connection holding the match ledger.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS matches (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		layout_json TEXT NOT NULL,
		winner INTEGER NOT NULL,
		turns INTEGER NOT NULL,
		actions INTEGER NOT NULL,
		rejected INTEGER NOT NULL,
		timed_out INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS match_players (
		match_id TEXT NOT NULL REFERENCES matches(id),
		uni INTEGER NOT NULL,
		name TEXT NOT NULL,
		archetype TEXT NOT NULL,
		kpi INTEGER NOT NULL,
		arcs INTEGER NOT NULL,
		campuses INTEGER NOT NULL,
		go8s INTEGER NOT NULL,
		patents INTEGER NOT NULL,
		publications INTEGER NOT NULL,
		students_json TEXT NOT NULL,
		PRIMARY KEY (match_id, uni)
	);

	CREATE INDEX IF NOT EXISTS idx_matches_started ON matches(started_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Match is a finished match as handed to SaveMatch.
type Match struct {
	StartedAt  time.Time
	Seed       int64
	Layout     world.Layout
	Result     engine.Result
	Names      [world.NumUnis]string
	Archetypes [world.NumUnis]string
}

// MatchRow is one row of the matches table.
type MatchRow struct {
	ID         string `db:"id"`
	StartedAt  int64  `db:"started_at"` // Unix seconds
	Seed       int64  `db:"seed"`
	LayoutJSON string `db:"layout_json"`
	Winner     int    `db:"winner"`
	Turns      int    `db:"turns"`
	Actions    int    `db:"actions"`
	Rejected   int    `db:"rejected"`
	TimedOut   bool   `db:"timed_out"`
}

// Layout decodes the stored board layout.
func (r MatchRow) Layout() (world.Layout, error) {
	var l world.Layout
	err := json.Unmarshal([]byte(r.LayoutJSON), &l)
	return l, err
}

// PlayerRow is one university's final standing in a match.
type PlayerRow struct {
	MatchID      string `db:"match_id"`
	Uni          int    `db:"uni"`
	Name         string `db:"name"`
	Archetype    string `db:"archetype"`
	KPI          int    `db:"kpi"`
	ARCs         int    `db:"arcs"`
	Campuses     int    `db:"campuses"`
	GO8s         int    `db:"go8s"`
	Patents      int    `db:"patents"`
	Publications int    `db:"publications"`
	StudentsJSON string `db:"students_json"`
}

// Students decodes the final student counts.
func (p PlayerRow) Students() (economy.Inventory, error) {
	var inv economy.Inventory
	err := json.Unmarshal([]byte(p.StudentsJSON), &inv)
	return inv, err
}

// SaveMatch writes a finished match and its players, returning the new
// match id.
func (db *DB) SaveMatch(m Match) (string, error) {
	layoutJSON, err := json.Marshal(m.Layout)
	if err != nil {
		return "", fmt.Errorf("encode layout: %w", err)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	id := uuid.NewString()
	started := m.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	res := m.Result

	_, err = tx.Exec(`INSERT INTO matches
		(id, started_at, seed, layout_json, winner, turns, actions, rejected, timed_out)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, started.Unix(), m.Seed, string(layoutJSON),
		int(res.Winner), res.Turns, res.Actions, res.Rejected, res.TimedOut,
	)
	if err != nil {
		return "", fmt.Errorf("insert match: %w", err)
	}

	stmt, err := tx.Preparex(`INSERT INTO match_players
		(match_id, uni, name, archetype, kpi, arcs, campuses, go8s,
		 patents, publications, students_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, p := range res.Players {
		if !p.Uni.Valid() {
			continue
		}
		studentsJSON, err := json.Marshal(p.Students)
		if err != nil {
			return "", fmt.Errorf("encode students for %s: %w", p.Uni, err)
		}
		i := int(p.Uni) - 1
		_, err = stmt.Exec(
			id, int(p.Uni), m.Names[i], m.Archetypes[i],
			p.KPI, p.ARCs, p.Campuses, p.GO8s, p.Patents, p.Publications,
			string(studentsJSON),
		)
		if err != nil {
			return "", fmt.Errorf("insert player %s: %w", p.Uni, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	slog.Debug("match saved", "id", id, "winner", res.Winner, "turns", res.Turns)
	return id, nil
}

// GetMatch loads a match and its players, ordered by university.
func (db *DB) GetMatch(id string) (MatchRow, []PlayerRow, error) {
	var m MatchRow
	if err := db.conn.Get(&m, "SELECT * FROM matches WHERE id = ?", id); err != nil {
		return MatchRow{}, nil, fmt.Errorf("get match %s: %w", id, err)
	}

	var players []PlayerRow
	err := db.conn.Select(&players,
		"SELECT * FROM match_players WHERE match_id = ? ORDER BY uni", id)
	if err != nil {
		return MatchRow{}, nil, fmt.Errorf("get players for %s: %w", id, err)
	}
	return m, players, nil
}

// RecentMatches returns the most recent N matches, newest first.
func (db *DB) RecentMatches(limit int) ([]MatchRow, error) {
	var matches []MatchRow
	err := db.conn.Select(&matches,
		"SELECT * FROM matches ORDER BY started_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	return matches, err
}

// CountMatches returns the number of recorded matches.
func (db *DB) CountMatches() (int, error) {
	var n int
	err := db.conn.Get(&n, "SELECT COUNT(*) FROM matches")
	return n, err
}

// ArchetypeWins counts recorded wins per driver archetype. Timed-out
// matches have no winner and count for nobody.
func (db *DB) ArchetypeWins() (map[string]int, error) {
	var rows []struct {
		Archetype string `db:"archetype"`
		Wins      int    `db:"wins"`
	}
	err := db.conn.Select(&rows, `
		SELECT p.archetype AS archetype, COUNT(*) AS wins
		FROM matches m
		JOIN match_players p ON p.match_id = m.id AND p.uni = m.winner
		GROUP BY p.archetype`)
	if err != nil {
		return nil, err
	}

	wins := make(map[string]int, len(rows))
	for _, r := range rows {
		wins[r.Archetype] = r.Wins
	}
	return wins, nil
}
