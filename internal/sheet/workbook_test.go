package sheet

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func exerciseWorkbook(t *testing.T, book Workbook) {
	t.Helper()
	ctx := context.Background()

	if _, err := book.ReadValues(ctx, "Interview_Records"); !errors.Is(err, ErrSheetNotFound) {
		t.Fatalf("expected ErrSheetNotFound, got %v", err)
	}
	if err := book.AppendRows(ctx, "Interview_Records", [][]string{{"x"}}); !errors.Is(err, ErrSheetNotFound) {
		t.Fatalf("expected ErrSheetNotFound on append, got %v", err)
	}

	headers := []string{"Record ID", "Candidate ID", "Remarks"}
	if err := book.EnsureSheet(ctx, "Interview_Records", headers); err != nil {
		t.Fatalf("ensure sheet: %v", err)
	}
	// A second call must leave the sheet untouched.
	if err := book.EnsureSheet(ctx, "Interview_Records", []string{"other"}); err != nil {
		t.Fatalf("ensure sheet again: %v", err)
	}

	rows := [][]string{
		{"IR001", "C1", "said \"hello\", then left"},
		{"IR002", "C2", ""},
	}
	if err := book.AppendRows(ctx, "Interview_Records", rows); err != nil {
		t.Fatalf("append rows: %v", err)
	}
	if err := book.AppendRows(ctx, "Interview_Records", [][]string{{"IR003", "C3", "multi\nline"}}); err != nil {
		t.Fatalf("append rows: %v", err)
	}

	values, err := book.ReadValues(ctx, "Interview_Records")
	if err != nil {
		t.Fatalf("read values: %v", err)
	}

	expected := [][]string{
		headers,
		rows[0],
		rows[1],
		{"IR003", "C3", "multi\nline"},
	}
	if !reflect.DeepEqual(values, expected) {
		t.Fatalf("unexpected values:\n got %q\nwant %q", values, expected)
	}

	table, err := ReadTable(ctx, book, "Interview_Records")
	if err != nil {
		t.Fatalf("read table: %v", err)
	}
	if table.Len() != 3 || table.Rows[2].Get("Remarks") != "multi\nline" {
		t.Fatalf("unexpected table: %+v", table)
	}
}

func TestCSVBook(t *testing.T) {
	book, err := NewCSVBook(filepath.Join(t.TempDir(), "book"))
	if err != nil {
		t.Fatalf("new csv book: %v", err)
	}
	defer book.Close()

	exerciseWorkbook(t, book)
}

func TestCSVBookSpreadsheetExports(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		expect  [][]string
	}{
		{
			name:    "no trailing newline",
			content: "Record ID,Candidate ID,Remarks\nIR001,C1,first",
			expect: [][]string{
				{"Record ID", "Candidate ID", "Remarks"},
				{"IR001", "C1", "first"},
				{"IR002", "C2", ""},
			},
		},
		{
			name:    "crlf line endings",
			content: "Record ID,Candidate ID,Remarks\r\nIR001,C1,first\r\n",
			expect: [][]string{
				{"Record ID", "Candidate ID", "Remarks"},
				{"IR001", "C1", "first"},
				{"IR002", "C2", ""},
			},
		},
		{
			name:    "byte order mark",
			content: "\ufeffRecord ID,Candidate ID,Remarks\nIR001,C1,first\n",
			expect: [][]string{
				{"Record ID", "Candidate ID", "Remarks"},
				{"IR001", "C1", "first"},
				{"IR002", "C2", ""},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "Interview_Records.csv"), []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write sheet: %v", err)
			}

			book, err := NewCSVBook(dir)
			if err != nil {
				t.Fatalf("new csv book: %v", err)
			}

			if err := book.AppendRows(ctx, "Interview_Records", [][]string{{"IR002", "C2", ""}}); err != nil {
				t.Fatalf("append rows: %v", err)
			}

			values, err := book.ReadValues(ctx, "Interview_Records")
			if err != nil {
				t.Fatalf("read values: %v", err)
			}
			if !reflect.DeepEqual(values, tt.expect) {
				t.Fatalf("unexpected values:\n got %q\nwant %q", values, tt.expect)
			}

			table, err := ReadTable(ctx, book, "Interview_Records")
			if err != nil {
				t.Fatalf("read table: %v", err)
			}
			if got := table.Rows[1].Get("Record ID"); got != "IR002" {
				t.Fatalf("expected IR002 under Record ID, got %q", got)
			}
		})
	}
}

func TestSQLiteBook(t *testing.T) {
	book, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "book.db"))
	if err != nil {
		t.Fatalf("open sqlite book: %v", err)
	}
	defer book.Close()

	exerciseWorkbook(t, book)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	book, err := Open(ctx, &Config{Path: dir})
	if err != nil {
		t.Fatalf("open default driver: %v", err)
	}
	if _, ok := book.(*CSVBook); !ok {
		t.Fatalf("expected csv book by default, got %T", book)
	}

	book, err = Open(ctx, &Config{Driver: "SQLite", Path: filepath.Join(dir, "desk.db")})
	if err != nil {
		t.Fatalf("open sqlite driver: %v", err)
	}
	defer book.Close()
	if _, ok := book.(*SQLBook); !ok {
		t.Fatalf("expected sql book, got %T", book)
	}

	if _, err := Open(ctx, &Config{Driver: "excel"}); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
	if _, err := Open(ctx, &Config{Driver: DriverPostgres}); err == nil {
		t.Fatalf("expected error for postgres without dsn")
	}
	if _, err := Open(ctx, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestBindPostgresPlaceholders(t *testing.T) {
	b := &SQLBook{dialect: DriverPostgres}
	got := b.bind(`INSERT INTO sheet_rows (sheet, position, cells) VALUES (?, ?, ?)`)
	want := `INSERT INTO sheet_rows (sheet, position, cells) VALUES ($1, $2, $3)`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	sqlite := &SQLBook{dialect: DriverSQLite}
	if q := sqlite.bind(`SELECT ?`); q != `SELECT ?` {
		t.Fatalf("sqlite query must be unchanged, got %q", q)
	}
}
