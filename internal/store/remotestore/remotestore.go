// Package remotestore implements store.Store on the central SurrealDB
// document database. It is treated as authoritative whenever reachable.
// Documents are keyed by explicit record ids so rows copied across the
// store boundary keep their identity in both directions.
package remotestore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	smodels "github.com/surrealdb/surrealdb.go/pkg/models"
	"github.com/surrealdb/surrealdb.go/surrealcbor"

	"github.com/famsdev/fams_backend/internal/store"
)

// Table names in the remote database.
const (
	tableUsers     = "users"
	tableColleges  = "colleges"
	tableCourses   = "courses"
	tableSections  = "sections"
	tableRooms     = "rooms"
	tableSemesters = "semesters"
	tableLogs      = "attendance_logs"
	tableSchedules = "schedules"
)

// Config carries the remote connection settings.
type Config struct {
	URL       string // websocket endpoint, e.g. ws://localhost:8000/rpc
	Namespace string
	Database  string
	Username  string
	Password  string
}

// Store is the SurrealDB-backed adapter.
type Store struct {
	db *surrealdb.DB
}

var _ store.Store = (*Store)(nil)

// Connect dials the remote database over websocket using the surrealcbor
// codec (plain JSON marshaling mangles datetimes and record ids), signs in
// and selects the namespace/database.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse remote url: %w", err)
	}
	conf := connection.NewConfig(u)
	codec := surrealcbor.New()
	conf.Marshaler = codec
	conf.Unmarshaler = codec

	db, err := surrealdb.FromConnection(ctx, gorillaws.New(conf))
	if err != nil {
		return nil, fmt.Errorf("%w: connect %s: %v", store.ErrUnavailable, cfg.URL, err)
	}
	if cfg.Username != "" {
		if _, err := db.SignIn(ctx, map[string]any{"user": cfg.Username, "pass": cfg.Password}); err != nil {
			return nil, fmt.Errorf("%w: signin: %v", store.ErrUnavailable, err)
		}
	}
	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		return nil, fmt.Errorf("%w: use %s/%s: %v", store.ErrUnavailable, cfg.Namespace, cfg.Database, err)
	}
	return &Store{db: db}, nil
}

// Close releases the websocket connection.
func (s *Store) Close() error {
	return s.db.Close(context.Background())
}

// Ping verifies the connection with a trivial round trip. The sync engine
// calls this before every flow so a dead link fails fast instead of
// degrading into a batch of per-row errors.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := surrealdb.Query[any](ctx, s.db, "RETURN 1", nil); err != nil {
		return fmt.Errorf("%w: ping: %v", store.ErrUnavailable, err)
	}
	return nil
}

// isNotFound recognizes the "selected a missing record" error shapes the
// driver produces across versions.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "but got 0") ||
		strings.Contains(msg, "cannot unmarshal array")
}

func rid(table, id string) smodels.RecordID {
	return smodels.NewRecordID(table, id)
}

func ridString(r *smodels.RecordID) string {
	if r == nil {
		return ""
	}
	return fmt.Sprint(r.ID)
}

// queryRows runs a SurrealQL statement and returns the first result set.
func queryRows[T any](ctx context.Context, s *Store, sql string, vars map[string]any) ([]T, error) {
	res, err := surrealdb.Query[[]T](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("remote query: %w", err)
	}
	if res == nil || len(*res) == 0 {
		return nil, nil
	}
	return (*res)[0].Result, nil
}

// queryOne returns the first row of the first result set, or nil.
func queryOne[T any](ctx context.Context, s *Store, sql string, vars map[string]any) (*T, error) {
	rows, err := queryRows[T](ctx, s, sql, vars)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

// selectOne fetches a record by id, translating absence into nil.
func selectOne[T any](ctx context.Context, s *Store, table, id string) (*T, error) {
	doc, err := surrealdb.Select[T](ctx, s.db, rid(table, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("remote select %s:%s: %w", table, id, err)
	}
	return doc, nil
}

// deleteOne removes a record by id, reporting whether it existed.
func deleteOne[T any](ctx context.Context, s *Store, table, id string) (bool, error) {
	existing, err := selectOne[T](ctx, s, table, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	if _, err := surrealdb.Delete[T](ctx, s.db, rid(table, id)); err != nil {
		return false, fmt.Errorf("remote delete %s:%s: %w", table, id, err)
	}
	return true, nil
}
