// Package sqlite provides a SQLite-backed building repository.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/louisbranch/skyline/internal/platform/errors"
	"github.com/louisbranch/skyline/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/skyline/internal/services/buildings/domain"
	"github.com/louisbranch/skyline/internal/services/buildings/storage"
	"github.com/louisbranch/skyline/internal/services/buildings/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists buildings in SQLite.
type Store struct {
	sqlDB *sql.DB
	clock func() time.Time
}

// Open opens a SQLite building store and applies embedded migrations. The
// parent directory of path is created when missing.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyFS(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, clock: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreateBuilding inserts one building under its name exactly as given. A
// blank name fails with CodeBuildingNameEmpty; a taken name fails with
// CodeBuildingExists wrapping storage.ErrAlreadyExists.
func (s *Store) CreateBuilding(ctx context.Context, building domain.Building) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(building.Name) == "" {
		return apperrors.WithMetadata(apperrors.CodeBuildingNameEmpty, "building name is required", map[string]string{"field": "name"})
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO buildings (name, created_at) VALUES (?, ?)`,
		building.Name,
		s.now().UnixMilli(),
	)
	if err != nil {
		if isBuildingUniqueViolation(err) {
			return apperrors.Wrap(apperrors.CodeBuildingExists, fmt.Sprintf("create building %q", building.Name), storage.ErrAlreadyExists)
		}
		return fmt.Errorf("create building: %w", err)
	}
	return nil
}

// Seed inserts each name that is not stored yet, in order. Names come from
// comma-separated configuration, so surrounding space is dropped and blank
// entries are skipped.
func (s *Store) Seed(ctx context.Context, names ...string) error {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		err := s.CreateBuilding(ctx, domain.Building{Name: name})
		if err != nil && !errors.Is(err, storage.ErrAlreadyExists) {
			return fmt.Errorf("seed %q: %w", name, err)
		}
	}
	return nil
}

// FetchAll implements storage.Repository, returning buildings in insertion order.
func (s *Store) FetchAll(ctx context.Context, onComplete storage.FetchFunc) {
	buildings, err := s.listBuildings(ctx)
	if err != nil {
		onComplete(nil, err)
		return
	}
	onComplete(buildings, nil)
}

func (s *Store) listBuildings(ctx context.Context) ([]domain.Building, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT name FROM buildings ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	defer rows.Close()

	buildings := []domain.Building{}
	for rows.Next() {
		var building domain.Building
		if err := rows.Scan(&building.Name); err != nil {
			return nil, fmt.Errorf("list buildings: %w", err)
		}
		buildings = append(buildings, building)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	return buildings, nil
}

func (s *Store) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock().UTC()
}

func isBuildingUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "buildings.name")
}

var _ storage.Repository = (*Store)(nil)
