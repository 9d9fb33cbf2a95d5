package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"steamcatalog/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Row is one table row keyed by column name, as produced by Query and
// consumed by Update and BulkInsert.
type Row = map[string]any

// QueryError wraps an adapter-level failure with the table and operation
// that produced it. Callers match on it to distinguish persistence faults
// from lookup misses.
type QueryError struct {
	Table string
	Op    string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("database: %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Store is the shared handle to the relational catalog tables. It is
// constructed once and injected into every component; there is no package
// level instance.
type Store struct {
	db *gorm.DB
}

// New opens a connection for the given dialector and migrates the catalog
// tables.
func New(dialector gorm.Dialector) (*Store, error) {
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: customLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Game{}, &models.Tag{}, &models.GameTag{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

// Open connects to the production Postgres instance.
func Open(dsn string) (*Store, error) {
	return New(postgres.Open(dsn))
}

// ensureLive pings the pooled connection before each operation so a server
// side drop on the long-lived process is repaired transparently.
func (s *Store) ensureLive(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Exists reports whether at least one row matches the AND-conjunction of
// equality conditions.
func (s *Store) Exists(ctx context.Context, table string, conds Row) (bool, error) {
	if err := s.ensureLive(ctx); err != nil {
		return false, &QueryError{Table: table, Op: "ping", Err: err}
	}

	q := s.db.WithContext(ctx).Table(table)
	if len(conds) > 0 {
		q = q.Where(map[string]any(conds))
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, &QueryError{Table: table, Op: "exists", Err: err}
	}
	return count > 0, nil
}

// Query projects the given columns (all columns when empty) for every row
// matching the conditions. Empty conditions select the whole table; a miss
// yields an empty slice, not an error.
func (s *Store) Query(ctx context.Context, table string, columns []string, conds Row) ([]Row, error) {
	if err := s.ensureLive(ctx); err != nil {
		return nil, &QueryError{Table: table, Op: "ping", Err: err}
	}

	q := s.db.WithContext(ctx).Table(table)
	if len(columns) > 0 {
		q = q.Select(columns)
	}
	if len(conds) > 0 {
		q = q.Where(map[string]any(conds))
	}

	var rows []map[string]any
	if err := q.Find(&rows).Error; err != nil {
		return nil, &QueryError{Table: table, Op: "query", Err: err}
	}
	if rows == nil {
		rows = []Row{}
	}
	return rows, nil
}

// Update executes one SET/WHERE statement. Empty conditions update every
// row of the table; the sync engine relies on this for the rank reset, so
// gorm's global-update guard is lifted for that case.
func (s *Store) Update(ctx context.Context, table string, set Row, conds Row) error {
	if err := s.ensureLive(ctx); err != nil {
		return &QueryError{Table: table, Op: "ping", Err: err}
	}

	q := s.db.WithContext(ctx).Table(table)
	if len(conds) > 0 {
		q = q.Where(map[string]any(conds))
	} else {
		q = q.Session(&gorm.Session{AllowGlobalUpdate: true})
	}

	if err := q.Updates(map[string]any(set)).Error; err != nil {
		return &QueryError{Table: table, Op: "update", Err: err}
	}
	return nil
}

// BulkInsert writes uniform-shaped rows in a single multi-row INSERT.
// Empty input is a no-op success.
func (s *Store) BulkInsert(ctx context.Context, table string, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.ensureLive(ctx); err != nil {
		return &QueryError{Table: table, Op: "ping", Err: err}
	}

	if err := s.db.WithContext(ctx).Table(table).Create(rows).Error; err != nil {
		return &QueryError{Table: table, Op: "insert", Err: err}
	}
	return nil
}

// Top100 returns the app ids of every game currently inside the visible
// ranking window, ordered by rank ascending.
func (s *Store) Top100(ctx context.Context) ([]int64, error) {
	if err := s.ensureLive(ctx); err != nil {
		return nil, &QueryError{Table: models.TableGames, Op: "ping", Err: err}
	}

	var ids []int64
	err := s.db.WithContext(ctx).
		Table(models.TableGames).
		Where("ranking <= ?", 100).
		Order("ranking").
		Pluck("appid", &ids).Error
	if err != nil {
		return nil, &QueryError{Table: models.TableGames, Op: "query", Err: err}
	}
	return ids, nil
}
