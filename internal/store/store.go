// Package store implements the generic record store backing the TACS admin
// console: five fixed tables holding JSON documents keyed by id, with
// declared secondary indexes extracted into columns so SQLite enforces
// uniqueness and serves exact-match lookups.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/tacslabs/tacs-console/internal/logger"
)

// Table names the five fixed tables
type Table string

const (
	TableAdminUsers    Table = "admin_users"
	TableAnnouncements Table = "announcements"
	TableIPRecords     Table = "ip_records"
	TableAuditLogs     Table = "audit_logs"
	TableSystemConfig  Table = "system_config"
)

// indexDef declares a secondary index: the JSON field it is extracted from
// (which is also the name callers pass to FindByIndex) and the backing column.
type indexDef struct {
	field  string
	column string
	unique bool
}

var schema = map[Table][]indexDef{
	TableAdminUsers: {
		{field: "username", column: "idx_username", unique: true},
		{field: "email", column: "idx_email"},
		{field: "role", column: "idx_role"},
	},
	TableAnnouncements: {
		{field: "type", column: "idx_type"},
		{field: "priority", column: "idx_priority"},
		{field: "publishedAt", column: "idx_published_at"},
	},
	TableIPRecords: {
		{field: "ip", column: "idx_ip", unique: true},
		{field: "status", column: "idx_status"},
		{field: "country", column: "idx_country"},
	},
	TableAuditLogs: {
		{field: "user", column: "idx_user"},
		{field: "action", column: "idx_action"},
		{field: "timestamp", column: "idx_timestamp"},
	},
	TableSystemConfig: {
		{field: "key", column: "idx_key", unique: true},
		{field: "category", column: "idx_category"},
	},
}

// Store is the persistent record store. It is constructed explicitly and
// passed to services; there is no package-level instance.
type Store struct {
	db  *sqlx.DB
	log *logger.Logger
}

// Open opens (creating if needed) the database under dataDir, applies
// pending migrations and seeds initial data. Pass empty string for
// in-memory, used by tests.
func Open(dataDir string, log *logger.Logger) (*Store, error) {
	var dsn string
	if dataDir == "" {
		dsn = ":memory:?_journal_mode=WAL"
	} else {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		dsn = filepath.Join(dataDir, "tacs.db") + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	s := &Store{db: db, log: log.WithComponent("store")}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	if err := s.seed(context.Background()); err != nil {
		// Fail soft: a seeding failure must not keep the store from opening
		s.log.Error().Err(err).Msg("failed to seed initial data")
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert adds a new record. The record must carry a non-empty "id" field.
// Returns ErrConstraintViolation when the id or any unique-indexed field
// collides with an existing record.
func (s *Store) Insert(ctx context.Context, table Table, record any) (string, error) {
	defs, ok := schema[table]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	raw, fields, err := encodeRecord(record)
	if err != nil {
		return "", err
	}
	id, _ := fields["id"].(string)
	if id == "" {
		return "", fmt.Errorf("record for %s has no id", table)
	}

	cols := []string{"id", "record"}
	placeholders := []string{"?", "?"}
	args := []any{id, string(raw)}
	for _, def := range defs {
		cols = append(cols, def.column)
		placeholders = append(placeholders, "?")
		args = append(args, indexValue(fields, def.field))
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if isConstraintError(err) {
			return "", fmt.Errorf("insert into %s: %w", table, ErrConstraintViolation)
		}
		return "", fmt.Errorf("insert into %s: %w", table, err)
	}
	return id, nil
}

// Update replaces an existing record by its id. Returns ErrNotFound when the
// id is absent; there is no upsert.
func (s *Store) Update(ctx context.Context, table Table, record any) error {
	defs, ok := schema[table]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	raw, fields, err := encodeRecord(record)
	if err != nil {
		return err
	}
	id, _ := fields["id"].(string)
	if id == "" {
		return fmt.Errorf("record for %s has no id", table)
	}

	sets := []string{"record = ?"}
	args := []any{string(raw)}
	for _, def := range defs {
		sets = append(sets, def.column+" = ?")
		args = append(args, indexValue(fields, def.field))
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", "))
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isConstraintError(err) {
			return fmt.Errorf("update %s: %w", table, ErrConstraintViolation)
		}
		return fmt.Errorf("update %s: %w", table, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a record by id. Deleting an absent id is not an error.
func (s *Store) Delete(ctx context.Context, table Table, id string) error {
	if _, ok := schema[table]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", table)
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	return nil
}

// Count returns the number of records in a table.
func (s *Store) Count(ctx context.Context, table Table) (int, error) {
	if _, ok := schema[table]; !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if err := s.db.GetContext(ctx, &n, query); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// IncrementField atomically increments an integer field inside the stored
// JSON document and returns the new value. A single UPDATE performs the
// read-modify-write so concurrent writers cannot lose increments.
func (s *Store) IncrementField(ctx context.Context, table Table, id, field string) (int, error) {
	if _, ok := schema[table]; !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	path := "$." + field
	query := fmt.Sprintf(
		`UPDATE %s
		 SET record = json_set(record, ?, COALESCE(json_extract(record, ?), 0) + 1)
		 WHERE id = ?
		 RETURNING json_extract(record, ?)`, table)

	var value int
	err := s.db.GetContext(ctx, &value, query, path, path, id, path)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("increment %s.%s: %w", table, field, err)
	}
	return value, nil
}

// getByID returns the raw record, or nil when absent. Absence is not an error.
func (s *Store) getByID(ctx context.Context, table Table, id string) (json.RawMessage, error) {
	if _, ok := schema[table]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	var raw string
	query := fmt.Sprintf("SELECT record FROM %s WHERE id = ?", table)
	err := s.db.GetContext(ctx, &raw, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get from %s: %w", table, err)
	}
	return json.RawMessage(raw), nil
}

// getAll returns every raw record in the table, order unspecified.
func (s *Store) getAll(ctx context.Context, table Table) ([]json.RawMessage, error) {
	if _, ok := schema[table]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	var rows []string
	query := fmt.Sprintf("SELECT record FROM %s", table)
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("get all from %s: %w", table, err)
	}
	out := make([]json.RawMessage, len(rows))
	for i, r := range rows {
		out[i] = json.RawMessage(r)
	}
	return out, nil
}

// findByIndex returns the first raw record matching the indexed value, or nil.
func (s *Store) findByIndex(ctx context.Context, table Table, index, value string) (json.RawMessage, error) {
	col, err := s.indexColumn(table, index)
	if err != nil {
		return nil, err
	}
	var raw string
	query := fmt.Sprintf("SELECT record FROM %s WHERE %s = ? LIMIT 1", table, col)
	err = s.db.GetContext(ctx, &raw, query, value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find in %s by %s: %w", table, index, err)
	}
	return json.RawMessage(raw), nil
}

// findAllByIndex returns every raw record matching the indexed value.
func (s *Store) findAllByIndex(ctx context.Context, table Table, index, value string) ([]json.RawMessage, error) {
	col, err := s.indexColumn(table, index)
	if err != nil {
		return nil, err
	}
	var rows []string
	query := fmt.Sprintf("SELECT record FROM %s WHERE %s = ?", table, col)
	if err := s.db.SelectContext(ctx, &rows, query, value); err != nil {
		return nil, fmt.Errorf("find all in %s by %s: %w", table, index, err)
	}
	out := make([]json.RawMessage, len(rows))
	for i, r := range rows {
		out[i] = json.RawMessage(r)
	}
	return out, nil
}

func (s *Store) indexColumn(table Table, index string) (string, error) {
	defs, ok := schema[table]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	for _, def := range defs {
		if def.field == index {
			return def.column, nil
		}
	}
	return "", fmt.Errorf("%w: %s.%s", ErrUnknownIndex, table, index)
}

// GetByID retrieves a typed record, or nil when absent.
func GetByID[T any](ctx context.Context, s *Store, table Table, id string) (*T, error) {
	raw, err := s.getByID(ctx, table, id)
	if err != nil || raw == nil {
		return nil, err
	}
	return decodeRecord[T](raw)
}

// GetAll retrieves every record in the table, order unspecified.
func GetAll[T any](ctx context.Context, s *Store, table Table) ([]T, error) {
	raws, err := s.getAll(ctx, table)
	if err != nil {
		return nil, err
	}
	return decodeRecords[T](raws)
}

// FindByIndex retrieves the record matching a declared index exactly, or nil.
// For unique indexes this is the record; for non-unique ones it is an
// arbitrary match.
func FindByIndex[T any](ctx context.Context, s *Store, table Table, index, value string) (*T, error) {
	raw, err := s.findByIndex(ctx, table, index, value)
	if err != nil || raw == nil {
		return nil, err
	}
	return decodeRecord[T](raw)
}

// FindAllByIndex retrieves every record matching a declared index exactly.
func FindAllByIndex[T any](ctx context.Context, s *Store, table Table, index, value string) ([]T, error) {
	raws, err := s.findAllByIndex(ctx, table, index, value)
	if err != nil {
		return nil, err
	}
	return decodeRecords[T](raws)
}

func decodeRecord[T any](raw json.RawMessage) (*T, error) {
	var rec T
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &rec, nil
}

func decodeRecords[T any](raws []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		rec, err := decodeRecord[T](raw)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

// encodeRecord marshals a record and re-parses it into a field map used for
// id and index extraction, so extraction follows the JSON shape rather than
// Go struct layout.
func encodeRecord(record any) (json.RawMessage, map[string]any, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, nil, fmt.Errorf("encode record: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, nil, fmt.Errorf("record is not an object: %w", err)
	}
	return raw, fields, nil
}

// indexValue extracts an indexed field as a nullable string column value.
func indexValue(fields map[string]any, field string) any {
	v, ok := fields[field]
	if !ok || v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
