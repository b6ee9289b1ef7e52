package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pfrederiksen/toto-draws/internal/draw"
)

const schema = `
CREATE TABLE IF NOT EXISTS draw_results (
	draw_number         INTEGER PRIMARY KEY,
	draw_date           TEXT NOT NULL,
	winning_numbers     TEXT NOT NULL,
	additional_number   INTEGER NOT NULL,
	group1_winners      INTEGER NOT NULL DEFAULT 0,
	group1_prize        REAL NOT NULL DEFAULT 0,
	group2_winners      INTEGER NOT NULL DEFAULT 0,
	group2_prize        REAL NOT NULL DEFAULT 0,
	group3_winners      INTEGER NOT NULL DEFAULT 0,
	group3_prize        REAL NOT NULL DEFAULT 0,
	group4_winners      INTEGER NOT NULL DEFAULT 0,
	group4_prize        REAL NOT NULL DEFAULT 0,
	group5_winners      INTEGER NOT NULL DEFAULT 0,
	group5_prize        REAL NOT NULL DEFAULT 0,
	group6_winners      INTEGER NOT NULL DEFAULT 0,
	group6_prize        REAL NOT NULL DEFAULT 0,
	group7_winners      INTEGER NOT NULL DEFAULT 0,
	group7_prize        REAL NOT NULL DEFAULT 0,
	estimated_prize_pool REAL NOT NULL DEFAULT 0,
	expected_group1_prize REAL NOT NULL DEFAULT 0,
	estimated_sales     REAL NOT NULL DEFAULT 0,
	rollover_amount     REAL NOT NULL DEFAULT 0,
	source_locator      TEXT NOT NULL DEFAULT '',
	updated_at          TEXT NOT NULL
);`

const upsertStmt = `
INSERT INTO draw_results (
	draw_number, draw_date, winning_numbers, additional_number,
	group1_winners, group1_prize, group2_winners, group2_prize,
	group3_winners, group3_prize, group4_winners, group4_prize,
	group5_winners, group5_prize, group6_winners, group6_prize,
	group7_winners, group7_prize,
	estimated_prize_pool, expected_group1_prize, estimated_sales,
	rollover_amount, source_locator, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(draw_number) DO UPDATE SET
	draw_date = excluded.draw_date,
	winning_numbers = excluded.winning_numbers,
	additional_number = excluded.additional_number,
	group1_winners = excluded.group1_winners,
	group1_prize = excluded.group1_prize,
	group2_winners = excluded.group2_winners,
	group2_prize = excluded.group2_prize,
	group3_winners = excluded.group3_winners,
	group3_prize = excluded.group3_prize,
	group4_winners = excluded.group4_winners,
	group4_prize = excluded.group4_prize,
	group5_winners = excluded.group5_winners,
	group5_prize = excluded.group5_prize,
	group6_winners = excluded.group6_winners,
	group6_prize = excluded.group6_prize,
	group7_winners = excluded.group7_winners,
	group7_prize = excluded.group7_prize,
	estimated_prize_pool = excluded.estimated_prize_pool,
	expected_group1_prize = excluded.expected_group1_prize,
	estimated_sales = excluded.estimated_sales,
	rollover_amount = excluded.rollover_amount,
	source_locator = excluded.source_locator,
	updated_at = excluded.updated_at;`

// SQLiteStore persists draws in a local SQLite database, one row per draw.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStoreInDir opens the default database file inside dataDir,
// expanding a leading ~ and creating the directory if needed.
func NewSQLiteStoreInDir(dataDir string) (*SQLiteStore, error) {
	dataDir, err := ensureDataDir(dataDir)
	if err != nil {
		return nil, err
	}
	return NewSQLiteStore(filepath.Join(dataDir, "draws.db"))
}

// NewSQLiteStore opens (creating if needed) the database at path and ensures
// the schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load reads every stored draw into a snapshot.
func (s *SQLiteStore) Load() (*Snapshot, error) {
	rows, err := s.db.Query(`SELECT draw_number, draw_date, winning_numbers, additional_number,
		group1_winners, group1_prize, group2_winners, group2_prize,
		group3_winners, group3_prize, group4_winners, group4_prize,
		group5_winners, group5_prize, group6_winners, group6_prize,
		group7_winners, group7_prize,
		estimated_prize_pool, expected_group1_prize, estimated_sales,
		rollover_amount, source_locator
		FROM draw_results`)
	if err != nil {
		return nil, fmt.Errorf("querying draws: %w", err)
	}
	defer rows.Close()

	snapshot := NewSnapshot()
	for rows.Next() {
		var rec draw.Record
		var dateText, numbersJSON string
		dest := []any{&rec.DrawNumber, &dateText, &numbersJSON, &rec.AdditionalNumber}
		for i := range rec.Groups {
			dest = append(dest, &rec.Groups[i].Winners, &rec.Groups[i].Prize)
		}
		dest = append(dest, &rec.EstimatedPrizePool, &rec.ExpectedGroup1Prize,
			&rec.EstimatedSales, &rec.RolloverAmount, &rec.SourceLocator)

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning draw row: %w", err)
		}

		date, err := time.Parse(time.RFC3339, dateText)
		if err != nil {
			return nil, fmt.Errorf("parsing stored date %q: %w", dateText, err)
		}
		rec.DrawDate = date

		if err := json.Unmarshal([]byte(numbersJSON), &rec.WinningNumbers); err != nil {
			return nil, fmt.Errorf("parsing stored numbers %q: %w", numbersJSON, err)
		}

		snapshot.Draws[rec.DrawNumber] = &rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading draws: %w", err)
	}
	return snapshot, nil
}

// Save upserts every draw in the snapshot inside one transaction.
func (s *SQLiteStore) Save(snapshot *Snapshot) error {
	snapshot.Touch()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	stmt, err := tx.Prepare(upsertStmt)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range snapshot.Draws {
		numbersJSON, err := json.Marshal(rec.WinningNumbers)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("encoding numbers for draw %d: %w", rec.DrawNumber, err)
		}

		args := []any{rec.DrawNumber, rec.DrawDate.Format(time.RFC3339), string(numbersJSON), rec.AdditionalNumber}
		for _, g := range rec.Groups {
			args = append(args, g.Winners, g.Prize)
		}
		args = append(args, rec.EstimatedPrizePool, rec.ExpectedGroup1Prize,
			rec.EstimatedSales, rec.RolloverAmount, rec.SourceLocator, snapshot.UpdatedAt)

		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("upserting draw %d: %w", rec.DrawNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing draws: %w", err)
	}
	return nil
}

// Clear deletes every stored draw.
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM draw_results`); err != nil {
		return fmt.Errorf("clearing draws: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
