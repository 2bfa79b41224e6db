// Package store is the host variable store: one raw state document per
// scope, kept in SQLite with zstd-compressed payloads. Writers are
// serialized and the last write wins.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a scope holds no document.
var ErrNotFound = errors.New("store: scope not found")

// Entry is one stored document. List leaves Payload nil.
type Entry struct {
	Scope     string
	Revision  string
	Payload   []byte
	Size      int // compressed size in bytes
	UpdatedAt time.Time
}

// Store persists documents in SQLite.
type Store struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
	log *slog.Logger
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for write traces.
func WithLogger(l *slog.Logger) Option { return func(s *Store) { s.log = l } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

const schema = `CREATE TABLE IF NOT EXISTS variables (
  scope      TEXT PRIMARY KEY,
  revision   TEXT NOT NULL,
  payload    BLOB NOT NULL,
  updated_at INTEGER NOT NULL
)`

// Open opens or creates the store at path.
func Open(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path is required")
	}
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		schema,
	} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init sqlite db: %w", err)
		}
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault), zstd.WithZeroFrames(true))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = enc.Close()
		_ = db.Close()
		return nil, fmt.Errorf("init zstd decoder: %w", err)
	}

	s := &Store{db: db, enc: enc, dec: dec, log: slog.New(slog.DiscardHandler), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Close releases the database and codecs.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	s.dec.Close()
	encErr := s.enc.Close()
	return errors.Join(s.db.Close(), encErr)
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Get returns the document stored under scope.
func (s *Store) Get(ctx context.Context, scope string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	return s.get(ctx, s.db, scope)
}

func (s *Store) get(ctx context.Context, q queryer, scope string) (Entry, error) {
	e := Entry{Scope: scope}
	var (
		packed []byte
		millis int64
	)
	err := q.QueryRowContext(ctx,
		`SELECT revision, payload, updated_at FROM variables WHERE scope = ?`, scope,
	).Scan(&e.Revision, &packed, &millis)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, scope)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get %s: %w", scope, err)
	}
	e.Payload, err = s.dec.DecodeAll(packed, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("decompress %s: %w", scope, err)
	}
	e.Size = len(packed)
	e.UpdatedAt = time.UnixMilli(millis).UTC()
	return e, nil
}

// Put stores payload under scope with a fresh revision.
func (s *Store) Put(ctx context.Context, scope string, payload []byte) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	if err := checkScope(scope); err != nil {
		return Entry{}, err
	}
	return s.put(ctx, s.db, scope, payload)
}

func (s *Store) put(ctx context.Context, q queryer, scope string, payload []byte) (Entry, error) {
	packed := s.enc.EncodeAll(payload, nil)
	e := Entry{
		Scope:     scope,
		Revision:  uuid.NewString(),
		Payload:   payload,
		Size:      len(packed),
		UpdatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	_, err := q.ExecContext(ctx,
		`INSERT INTO variables (scope, revision, payload, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(scope) DO UPDATE SET
		   revision = excluded.revision,
		   payload = excluded.payload,
		   updated_at = excluded.updated_at`,
		scope, e.Revision, packed, e.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("put %s: %w", scope, err)
	}
	s.log.DebugContext(ctx, "stored document", "scope", scope, "revision", e.Revision, "bytes", len(payload), "stored", e.Size)
	return e, nil
}

// Update runs a read-modify-write of scope in one transaction. fn receives
// the current payload, or nil when the scope is empty, and returns the new
// one. An error from fn aborts the update.
func (s *Store) Update(ctx context.Context, scope string, fn func(current []byte) ([]byte, error)) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	if err := checkScope(scope); err != nil {
		return Entry{}, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("begin update %s: %w", scope, err)
	}
	defer func() { _ = tx.Rollback() }()

	var current []byte
	cur, err := s.get(ctx, tx, scope)
	switch {
	case err == nil:
		current = cur.Payload
	case !errors.Is(err, ErrNotFound):
		return Entry{}, err
	}
	next, err := fn(current)
	if err != nil {
		return Entry{}, err
	}
	e, err := s.put(ctx, tx, scope, next)
	if err != nil {
		return Entry{}, err
	}
	if err := tx.Commit(); err != nil {
		return Entry{}, fmt.Errorf("commit update %s: %w", scope, err)
	}
	return e, nil
}

// Delete removes scope.
func (s *Store) Delete(ctx context.Context, scope string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM variables WHERE scope = ?`, scope)
	if err != nil {
		return fmt.Errorf("delete %s: %w", scope, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, scope)
	}
	s.log.DebugContext(ctx, "deleted document", "scope", scope)
	return nil
}

// List returns every scope in name order, without payloads.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT scope, revision, length(payload), updated_at FROM variables ORDER BY scope`)
	if err != nil {
		return nil, fmt.Errorf("list scopes: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e      Entry
			millis int64
		)
		if err := rows.Scan(&e.Scope, &e.Revision, &e.Size, &millis); err != nil {
			return nil, fmt.Errorf("scan scope: %w", err)
		}
		e.UpdatedAt = time.UnixMilli(millis).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scopes: %w", err)
	}
	return out, nil
}

func checkScope(scope string) error {
	if strings.TrimSpace(scope) == "" {
		return fmt.Errorf("scope is required")
	}
	return nil
}
