// Package history stores per-season training results in SQLite so runs can
// be compared after the fact. Only season summaries are kept; the learned
// value table is never persisted.
package history

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/recruit-sim/recruit-sim/sim"
)

// Store wraps a SQLite connection holding run and season records.
type Store struct {
	conn *sqlx.DB
}

// Run describes one training run.
type Run struct {
	ID        string `db:"id"`
	Seed      int64  `db:"seed"`
	Seasons   int    `db:"seasons"`
	StartedAt string `db:"started_at"`
}

// TeamSeason is one team's line in one season.
type TeamSeason struct {
	Season     int    `db:"season"`
	Team       string `db:"team"`
	Standing   int    `db:"standing"` // 1-based; 0 when the season had no meet
	Score      int    `db:"score"`
	Budget     int    `db:"budget"`
	RosterSize int    `db:"roster_size"`
	Signings   int    `db:"signings"`
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	conn.SetMaxOpenConns(1)

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		seasons INTEGER NOT NULL,
		started_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS season_params (
		run_id TEXT NOT NULL REFERENCES runs(id),
		season INTEGER NOT NULL,
		alpha REAL NOT NULL,
		epsilon REAL NOT NULL,
		PRIMARY KEY (run_id, season)
	);

	CREATE TABLE IF NOT EXISTS team_seasons (
		run_id TEXT NOT NULL REFERENCES runs(id),
		season INTEGER NOT NULL,
		team TEXT NOT NULL,
		standing INTEGER NOT NULL,
		score INTEGER NOT NULL,
		budget INTEGER NOT NULL,
		roster_size INTEGER NOT NULL,
		signings INTEGER NOT NULL,
		PRIMARY KEY (run_id, season, team)
	);

	CREATE INDEX IF NOT EXISTS idx_team_seasons_team ON team_seasons(run_id, team);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// BeginRun registers a new run and returns its ID.
func (s *Store) BeginRun(ctx context.Context, seed int64, seasons int) (string, error) {
	id := uuid.NewString()
	_, err := s.conn.ExecContext(ctx,
		"INSERT INTO runs (id, seed, seasons) VALUES (?, ?, ?)",
		id, seed, seasons,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// SaveSeason writes one season summary for runID. Saving the same season
// twice replaces the earlier rows.
func (s *Store) SaveSeason(ctx context.Context, runID string, summary sim.SeasonSummary) error {
	tx, err := s.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO season_params (run_id, season, alpha, epsilon) VALUES (?, ?, ?, ?)",
		runID, summary.Season, summary.Alpha, summary.Epsilon,
	); err != nil {
		return fmt.Errorf("insert season %d params: %w", summary.Season, err)
	}

	stmt, err := tx.PreparexContext(ctx, `INSERT OR REPLACE INTO team_seasons
		(run_id, season, team, standing, score, budget, roster_size, signings)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	standing := make(map[string]int, len(summary.Standings))
	for i, name := range summary.Standings {
		standing[name] = i + 1
	}
	for team, budget := range summary.Budgets {
		_, err := stmt.ExecContext(ctx,
			runID, summary.Season, team, standing[team], summary.Scores[team],
			budget, summary.RosterSizes[team], summary.Signings[team],
		)
		if err != nil {
			return fmt.Errorf("insert season %d team %s: %w", summary.Season, team, err)
		}
	}
	return tx.Commit()
}

// SaveSeasons writes every summary in one call.
func (s *Store) SaveSeasons(ctx context.Context, runID string, summaries []sim.SeasonSummary) error {
	for _, summary := range summaries {
		if err := s.SaveSeason(ctx, runID, summary); err != nil {
			return err
		}
	}
	return nil
}

// Runs lists every recorded run, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	var runs []Run
	err := s.conn.SelectContext(ctx, &runs,
		"SELECT id, seed, seasons, started_at FROM runs ORDER BY started_at, rowid")
	return runs, err
}

// TeamSeries returns team's seasons in runID, in season order.
func (s *Store) TeamSeries(ctx context.Context, runID, team string) ([]TeamSeason, error) {
	var rows []TeamSeason
	err := s.conn.SelectContext(ctx, &rows,
		`SELECT season, team, standing, score, budget, roster_size, signings
		 FROM team_seasons WHERE run_id = ? AND team = ? ORDER BY season`,
		runID, team,
	)
	return rows, err
}

// Champions returns how many seasons each team finished first in runID.
func (s *Store) Champions(ctx context.Context, runID string) (map[string]int, error) {
	var rows []struct {
		Team   string `db:"team"`
		Titles int    `db:"titles"`
	}
	err := s.conn.SelectContext(ctx, &rows,
		`SELECT team, COUNT(*) AS titles FROM team_seasons
		 WHERE run_id = ? AND standing = 1 GROUP BY team`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Team] = r.Titles
	}
	return out, nil
}
