package zones

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/chronik/foundation/core/error"
	mdwerrors "github.com/msto63/chronik/foundation/core/errors"
	"github.com/msto63/chronik/foundation/utils/timex"
)

// Record is a stored zone definition
type Record struct {
	UUID       string
	Definition Definition
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Store persists custom zone definitions in SQLite
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// StoreConfig holds configuration for the SQLite store
type StoreConfig struct {
	Path string
}

// OpenStore opens or creates the zone database at cfg.Path
func OpenStore(cfg StoreConfig) (*Store, error) {
	const op = "OpenStore"

	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, dbError(op, fmt.Errorf("failed to create directory: %w", err))
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on")
	if err != nil {
		return nil, dbError(op, fmt.Errorf("failed to open database: %w", err))
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, dbError(op, fmt.Errorf("failed to initialize schema: %w", err))
	}
	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS zones (
		id TEXT PRIMARY KEY,
		zone_id TEXT NOT NULL UNIQUE,
		base_offset TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS zone_rules (
		id TEXT PRIMARY KEY,
		zone_ref TEXT NOT NULL REFERENCES zones(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		from_year INTEGER NOT NULL,
		to_year INTEGER NOT NULL,
		delta_minutes INTEGER NOT NULL,
		transition_start TEXT NOT NULL,
		transition_end TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_zone_rules_zone ON zone_rules(zone_ref, position);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save inserts def or replaces the stored definition with the same id
func (s *Store) Save(ctx context.Context, def Definition) (*Record, error) {
	const op = "Save"
	if def.ID == "" {
		return nil, mdwerrors.InvalidInput(mdwerrors.ModuleZones, op, "zone id must not be empty")
	}
	if _, err := def.Build(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, dbError(op, fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	rec := &Record{UUID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}

	err = tx.QueryRowContext(ctx, `SELECT id, created_at FROM zones WHERE zone_id = ?`, def.ID).
		Scan(&rec.UUID, &rec.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, `
			INSERT INTO zones (id, zone_id, base_offset, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, rec.UUID, def.ID, timex.FormatOffset(def.BaseOffset), now, now)
	case err == nil:
		_, err = tx.ExecContext(ctx, `UPDATE zones SET base_offset = ?, updated_at = ? WHERE id = ?`,
			timex.FormatOffset(def.BaseOffset), now, rec.UUID)
		if err == nil {
			_, err = tx.ExecContext(ctx, `DELETE FROM zone_rules WHERE zone_ref = ?`, rec.UUID)
		}
	}
	if err != nil {
		return nil, dbError(op, fmt.Errorf("failed to write zone %s: %w", def.ID, err))
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO zone_rules (id, zone_ref, position, from_year, to_year, delta_minutes, transition_start, transition_end)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, dbError(op, fmt.Errorf("failed to prepare statement: %w", err))
	}
	defer stmt.Close()

	for i, r := range def.Rules {
		_, err := stmt.ExecContext(ctx, uuid.New().String(), rec.UUID, i, r.FromYear, r.ToYear,
			int64(r.DaylightDelta)/timex.TicksPerMinute, r.Start.String(), r.End.String())
		if err != nil {
			return nil, dbError(op, fmt.Errorf("failed to write rule %d of %s: %w", i, def.ID, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, dbError(op, fmt.Errorf("failed to commit: %w", err))
	}

	def.Source = SourceStore
	rec.Definition = def
	return rec, nil
}

// Get returns the stored definition of id
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec := &Record{}
	var base string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, zone_id, base_offset, created_at, updated_at FROM zones WHERE zone_id = ?
	`, id).Scan(&rec.UUID, &rec.Definition.ID, &base, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, mdwerrors.NotFound(mdwerrors.ModuleZones, "Get", id)
	}
	if err != nil {
		return nil, dbError("Get", err)
	}

	if err := s.fill(ctx, rec, base); err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns all stored definitions ordered by zone id
func (s *Store) List(ctx context.Context) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, zone_id, base_offset, created_at, updated_at FROM zones ORDER BY zone_id
	`)
	if err != nil {
		return nil, dbError("List", err)
	}

	var records []*Record
	var bases []string
	for rows.Next() {
		rec := &Record{}
		var base string
		if err := rows.Scan(&rec.UUID, &rec.Definition.ID, &base, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			rows.Close()
			return nil, dbError("List", err)
		}
		records = append(records, rec)
		bases = append(bases, base)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, dbError("List", err)
	}

	for i, rec := range records {
		if err := s.fill(ctx, rec, bases[i]); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// fill decodes the base offset and loads the rules of rec
func (s *Store) fill(ctx context.Context, rec *Record, base string) error {
	const op = "fill"

	offset, err := timex.ParseOffset(base)
	if err != nil {
		return dbError(op, fmt.Errorf("zone %s: corrupt base offset %q", rec.Definition.ID, base))
	}
	rec.Definition.BaseOffset = offset
	rec.Definition.Source = SourceStore

	rows, err := s.db.QueryContext(ctx, `
		SELECT from_year, to_year, delta_minutes, transition_start, transition_end
		FROM zone_rules WHERE zone_ref = ? ORDER BY position
	`, rec.UUID)
	if err != nil {
		return dbError(op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			r          timex.AdjustmentRule
			minutes    int64
			start, end string
		)
		if err := rows.Scan(&r.FromYear, &r.ToYear, &minutes, &start, &end); err != nil {
			return dbError(op, err)
		}
		r.DaylightDelta = timex.DurationFromTicks(minutes * timex.TicksPerMinute)
		if r.Start, err = timex.ParseTransitionTime(start); err != nil {
			return dbError(op, fmt.Errorf("zone %s: %w", rec.Definition.ID, err))
		}
		if r.End, err = timex.ParseTransitionTime(end); err != nil {
			return dbError(op, fmt.Errorf("zone %s: %w", rec.Definition.ID, err))
		}
		rec.Definition.Rules = append(rec.Definition.Rules, r)
	}
	return rows.Err()
}

// Delete removes the definition of id
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM zones WHERE zone_id = ?`, id)
	if err != nil {
		return dbError("Delete", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return mdwerrors.NotFound(mdwerrors.ModuleZones, "Delete", id)
	}
	return nil
}

// PingContext checks that the database is reachable
func (s *Store) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func dbError(op string, err error) error {
	return mdwerrors.ModuleError(mdwerrors.ModuleZones, op, mdwerror.CodeDatabaseError, err)
}
