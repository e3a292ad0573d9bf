// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists completed pipeline runs in a SQLite database and
// makes them searchable over paper abstracts and summaries.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/yash252525/HackathonHealthTech/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "runs.db"
)

// Store manages the run history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at
// historyDir/index/runs.db. The schema is created when missing.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.HistoryDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			refined_query TEXT,
			entities TEXT,
			summary TEXT,
			timestamp TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			identifier TEXT,
			title TEXT,
			abstract TEXT,
			authors TEXT,
			date TEXT,
			source TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_run_id ON papers(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual tables with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(title, abstract, content=papers, content_rowid=rowid)`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
			`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
			END`,
			`CREATE VIRTUAL TABLE runs_fts USING fts5(query, summary, content=runs, content_rowid=id)`,
			`CREATE TRIGGER runs_ai AFTER INSERT ON runs BEGIN
				INSERT INTO runs_fts(rowid, query, summary) VALUES (new.id, new.query, new.summary);
			END`,
			`CREATE TRIGGER runs_ad AFTER DELETE ON runs BEGIN
				INSERT INTO runs_fts(runs_fts, rowid, query, summary) VALUES('delete', old.id, old.query, old.summary);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Record stores a completed run and its papers in one transaction and
// returns the new run ID.
func (s *Store) Record(ctx context.Context, run types.RunRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	entitiesJSON, _ := json.Marshal(run.Entities)
	ts := run.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (query, refined_query, entities, summary, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		run.Query, run.RefinedQuery, string(entitiesJSON), run.Summary,
		ts.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (run_id, identifier, title, abstract, authors, date, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range run.Papers {
		authorsJSON, _ := json.Marshal(p.Authors)
		dateStr := ""
		if !p.Date.IsZero() {
			dateStr = p.Date.Format(time.RFC3339)
		}
		if _, err := stmt.ExecContext(ctx,
			runID, p.Identifier, p.Title, p.Abstract,
			string(authorsJSON), dateStr, string(p.Source),
		); err != nil {
			return 0, fmt.Errorf("inserting paper %s: %w", p.Identifier, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// RunRow is one run in a listing.
type RunRow struct {
	ID           int64
	Query        string
	RefinedQuery string
	Summary      string
	PaperCount   int
	Timestamp    time.Time
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.query, r.refined_query, r.summary, r.timestamp, count(p.rowid)
		 FROM runs r LEFT JOIN papers p ON p.run_id = r.id
		 GROUP BY r.id
		 ORDER BY r.timestamp DESC, r.id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// Search returns runs whose summary, query, or paper titles and abstracts
// match the FTS5 query.
func (s *Store) Search(ctx context.Context, query string) ([]RunRow, error) {
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.query, r.refined_query, r.summary, r.timestamp, count(p.rowid)
		 FROM runs r LEFT JOIN papers p ON p.run_id = r.id
		 WHERE r.id IN (SELECT rowid FROM runs_fts WHERE runs_fts MATCH ?)
		    OR r.id IN (SELECT papers.run_id FROM papers_fts
		                JOIN papers ON papers.rowid = papers_fts.rowid
		                WHERE papers_fts MATCH ?)
		 GROUP BY r.id
		 ORDER BY r.timestamp DESC, r.id DESC
		 LIMIT ?`, query, query, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]RunRow, error) {
	var runs []RunRow
	for rows.Next() {
		var (
			r       RunRow
			refined sql.NullString
			summary sql.NullString
			tsStr   string
		)
		if err := rows.Scan(&r.ID, &r.Query, &refined, &summary, &tsStr, &r.PaperCount); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if refined.Valid {
			r.RefinedQuery = refined.String
		}
		if summary.Valid {
			r.Summary = summary.String
		}
		if ts, err := time.Parse(time.RFC3339, tsStr); err == nil {
			r.Timestamp = ts
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
