package sheet

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// SQLBook stores sheets in a single table, one JSON-encoded cell array per row.
type SQLBook struct {
	DB      *sql.DB
	dialect string
}

// OpenSQLite opens (and creates when missing) a SQLite workbook file.
func OpenSQLite(ctx context.Context, path string) (*SQLBook, error) {
	if path == "" {
		path = "placement-desk.db"
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	return newSQLBook(ctx, db, DriverSQLite)
}

// OpenPostgres connects to a PostgreSQL workbook.
func OpenPostgres(ctx context.Context, dsn string) (*SQLBook, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres dsn is not configured")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return newSQLBook(ctx, db, DriverPostgres)
}

func newSQLBook(ctx context.Context, db *sql.DB, dialect string) (*SQLBook, error) {
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	b := &SQLBook{DB: db, dialect: dialect}
	if err := b.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return b, nil
}

func (b *SQLBook) migrate(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS sheets (
			name TEXT PRIMARY KEY
		)`,
		`CREATE TABLE IF NOT EXISTS sheet_rows (
			sheet TEXT NOT NULL REFERENCES sheets(name),
			position INTEGER NOT NULL,
			cells TEXT NOT NULL,
			PRIMARY KEY (sheet, position)
		)`,
	}

	for _, stmt := range schema {
		if _, err := b.DB.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// bind rewrites ? placeholders for dialects that need numbered ones.
func (b *SQLBook) bind(query string) string {
	if b.dialect != DriverPostgres {
		return query
	}

	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (b *SQLBook) exists(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}, sheet string) (bool, error) {
	var name string
	err := q.QueryRowContext(ctx, b.bind(`SELECT name FROM sheets WHERE name = ?`), sheet).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (b *SQLBook) ReadValues(ctx context.Context, sheet string) ([][]string, error) {
	ok, err := b.exists(ctx, b.DB, sheet)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", sheet, ErrSheetNotFound)
	}

	rows, err := b.DB.QueryContext(ctx, b.bind(`SELECT cells FROM sheet_rows WHERE sheet = ? ORDER BY position`), sheet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := [][]string{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var cells []string
		if err := json.Unmarshal([]byte(raw), &cells); err != nil {
			return nil, fmt.Errorf("decoding row of sheet %q: %w", sheet, err)
		}
		values = append(values, cells)
	}
	return values, rows.Err()
}

func (b *SQLBook) AppendRows(ctx context.Context, sheet string, rows [][]string) error {
	tx, err := b.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ok, err := b.exists(ctx, tx, sheet)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", sheet, ErrSheetNotFound)
	}

	if err := b.insert(ctx, tx, sheet, rows); err != nil {
		return err
	}
	return tx.Commit()
}

func (b *SQLBook) EnsureSheet(ctx context.Context, sheet string, headers []string) error {
	tx, err := b.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ok, err := b.exists(ctx, tx, sheet)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	if _, err := tx.ExecContext(ctx, b.bind(`INSERT INTO sheets (name) VALUES (?)`), sheet); err != nil {
		return err
	}
	if err := b.insert(ctx, tx, sheet, [][]string{headers}); err != nil {
		return err
	}
	return tx.Commit()
}

func (b *SQLBook) insert(ctx context.Context, tx *sql.Tx, sheet string, rows [][]string) error {
	var next int
	err := tx.QueryRowContext(ctx,
		b.bind(`SELECT COALESCE(MAX(position), -1) + 1 FROM sheet_rows WHERE sheet = ?`), sheet,
	).Scan(&next)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, b.bind(`INSERT INTO sheet_rows (sheet, position, cells) VALUES (?, ?, ?)`))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, row := range rows {
		cells, err := json.Marshal(row)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, sheet, next+i, string(cells)); err != nil {
			return err
		}
	}
	return nil
}

func (b *SQLBook) Close() error {
	if b.DB != nil {
		return b.DB.Close()
	}
	return nil
}
