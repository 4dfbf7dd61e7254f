// Package storage persists training-run history in SQLite. History is
// advisory: training still succeeds when the store is unavailable, so the
// pipeline itself never depends on this package.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/sift-money/sift/internal/model"
)

// SQLiteStorage implements the run-history store using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath cannot be empty")
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SaveRun appends a completed training run to the history.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run model.TrainingRun) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO training_runs (data_path, model_path, raw_records, train_records, test_records, categories, accuracy)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.DataPath, run.ModelPath, run.RawRecords, run.TrainRecords, run.TestRecords, run.Categories, run.Accuracy)
	if err != nil {
		return 0, fmt.Errorf("failed to save training run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get training run id: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent training runs, newest first.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]model.TrainingRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, data_path, model_path, raw_records, train_records, test_records, categories, accuracy
		FROM training_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query training runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.TrainingRun
	for rows.Next() {
		var run model.TrainingRun
		if err := rows.Scan(&run.ID, &run.CreatedAt, &run.DataPath, &run.ModelPath,
			&run.RawRecords, &run.TrainRecords, &run.TestRecords, &run.Categories, &run.Accuracy); err != nil {
			return nil, fmt.Errorf("failed to scan training run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate training runs: %w", err)
	}

	return runs, nil
}
