package telemetry

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"codeberg.org/avhel/gpucoolctl/internal/errors"
	"codeberg.org/avhel/gpucoolctl/internal/logger"

	_ "github.com/mattn/go-sqlite3"
)

type Repository interface {
	Store(ctx context.Context, snapshot *Snapshot) error
	Close() error
}

type sqliteRepository struct {
	db *sql.DB
	mu sync.Mutex
}

func NewRepository(cfg Config) (Repository, error) {
	errFactory := errors.New()

	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	logger.Debug().Msgf("Initializing telemetry repository at: %s", cfg.DBPath)

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	return &sqliteRepository{
		db: db,
	}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS cooling_events (
            timestamp INTEGER PRIMARY KEY,
            device TEXT,
            temperature INTEGER,
            requested_state INTEGER,
            max_state INTEGER,
            level INTEGER,
            frequency INTEGER
        )
    `)

	return err
}

func (r *sqliteRepository) Store(ctx context.Context, snapshot *Snapshot) error {
	errFactory := errors.New()

	r.mu.Lock()
	defer r.mu.Unlock()

	var frequency any
	if snapshot.HasFrequency {
		frequency = snapshot.Frequency
	}

	_, err := r.db.ExecContext(ctx, `
        INSERT INTO cooling_events (
            timestamp, device, temperature,
            requested_state, max_state, level, frequency
        ) VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(timestamp) DO UPDATE SET
            device = excluded.device,
            temperature = excluded.temperature,
            requested_state = excluded.requested_state,
            max_state = excluded.max_state,
            level = excluded.level,
            frequency = excluded.frequency
    `,
		snapshot.Timestamp.Unix(),
		snapshot.Device,
		snapshot.Temperature,
		snapshot.RequestedState,
		snapshot.MaxState,
		snapshot.Level,
		frequency,
	)
	if err != nil {
		return errFactory.Wrap(ErrStorageAccess, err)
	}

	return nil
}

func (r *sqliteRepository) Close() error {
	errFactory := errors.New()

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.Close(); err != nil {
		return errFactory.Wrap(ErrStorageClose, err)
	}

	return nil
}
