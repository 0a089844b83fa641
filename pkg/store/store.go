// Package store keeps a snapshot of the built catalog in SQL so other tools
// can query it without rebuilding. SQLite and Postgres are supported.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/agentstation/utc"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver

	"github.com/agentstation/skillmap/pkg/errors"
	"github.com/agentstation/skillmap/pkg/institutions"
	"github.com/agentstation/skillmap/pkg/logging"
	"github.com/agentstation/skillmap/pkg/reconciler"
)

// Driver names as registered with database/sql.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Store persists catalog snapshots.
type Store struct {
	db      *sql.DB
	dialect dialect
	mu      sync.Mutex
}

// Open connects to databaseURL and ensures the schema exists.
// sqlite://path, file:path and bare paths use SQLite;
// postgres:// and postgresql:// use Postgres.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	driver, dsn, err := parseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite {
		if dir := filepath.Dir(strings.TrimPrefix(dsn, "file:")); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, errors.WrapIO("create", dir, err)
			}
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.NewConfigError("store", "open "+driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.NewConfigError("store", "ping "+driver, err)
	}

	s := &Store{db: db, dialect: dialectFor(driver)}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logging.FromContext(ctx).Debug().
		Str("driver", driver).
		Msg("Opened catalog store")

	return s, nil
}

func parseURL(databaseURL string) (driver, dsn string, err error) {
	if databaseURL == "" {
		return "", "", &errors.ValidationError{Field: "database_url", Message: "cannot be empty"}
	}
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return DriverPostgres, databaseURL, nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return DriverSQLite, strings.TrimPrefix(databaseURL, "sqlite://"), nil
	case strings.HasPrefix(databaseURL, "file:"):
		return DriverSQLite, databaseURL, nil
	}
	if u, perr := url.Parse(databaseURL); perr == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return "", "", errors.NewValidationError("database_url", u.Scheme, "unsupported database scheme")
	}
	return DriverSQLite, databaseURL, nil
}

func (s *Store) migrate(ctx context.Context) error {
	ddl := `CREATE TABLE IF NOT EXISTS institutions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		district TEXT NOT NULL,
		payload TEXT NOT NULL,
		run_id TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return errors.WrapResource("create", "table", "institutions", err)
	}
	return nil
}

// Save writes the catalog in one transaction. Every record is upserted and
// rows from earlier builds that are no longer in the catalog are removed.
func (s *Store) Save(ctx context.Context, result *reconciler.Result) (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.WrapResource("begin", "transaction", result.RunID, err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	upsert := s.dialect.rebind(`INSERT INTO institutions (id, name, category, district, payload, run_id, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			district = excluded.district,
			payload = excluded.payload,
			run_id = excluded.run_id,
			updated_at = excluded.updated_at`)

	now := utc.Now().Format(time.RFC3339)
	for _, inst := range result.Institutions {
		payload, err := json.Marshal(inst)
		if err != nil {
			return errors.WrapResource("encode", "institution", inst.ID, err)
		}
		if _, err := tx.ExecContext(ctx, upsert,
			inst.ID, inst.Name, string(inst.Category), inst.District(), string(payload), result.RunID, now); err != nil {
			return errors.WrapResource("upsert", "institution", inst.ID, err)
		}
	}

	res, err := tx.ExecContext(ctx, s.dialect.rebind(`DELETE FROM institutions WHERE run_id <> ?`), result.RunID)
	if err != nil {
		return errors.WrapResource("prune", "institutions", result.RunID, err)
	}
	if err := tx.Commit(); err != nil {
		return errors.WrapResource("commit", "transaction", result.RunID, err)
	}

	pruned, _ := res.RowsAffected()
	logging.FromContext(ctx).Info().
		Str("run_id", result.RunID).
		Int("saved", len(result.Institutions)).
		Int64("pruned", pruned).
		Msg("Saved catalog snapshot")

	return nil
}

// List returns every stored institution ordered by id.
func (s *Store) List(ctx context.Context) ([]institutions.Institution, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, payload FROM institutions ORDER BY id`)
	if err != nil {
		return nil, errors.WrapResource("list", "institutions", "", err)
	}
	defer func() { _ = rows.Close() }()

	var out []institutions.Institution
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, errors.WrapResource("scan", "institution", id, err)
		}
		inst, err := decode(id, payload)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapResource("list", "institutions", "", err)
	}
	return out, nil
}

// Get returns the stored institution with id.
func (s *Store) Get(ctx context.Context, id string) (institutions.Institution, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, s.dialect.rebind(`SELECT payload FROM institutions WHERE id = ?`), id).Scan(&payload)
	if err == sql.ErrNoRows {
		return institutions.Institution{}, errors.NewNotFoundError("institution", id)
	}
	if err != nil {
		return institutions.Institution{}, errors.WrapResource("get", "institution", id, err)
	}
	return decode(id, payload)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying sql.DB for tests.
func (s *Store) DB() *sql.DB { return s.db }

func decode(id, payload string) (institutions.Institution, error) {
	var inst institutions.Institution
	if err := json.Unmarshal([]byte(payload), &inst); err != nil {
		return inst, errors.NewParseError("json", id, fmt.Sprintf("decode institution %s", id), err)
	}
	return inst, nil
}
