package sheet

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const byteOrderMark = "\ufeff"

// CSVBook keeps every sheet as <dir>/<sheet>.csv, the format spreadsheets export to.
type CSVBook struct {
	dir string
	mu  sync.Mutex
}

func NewCSVBook(dir string) (*CSVBook, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating workbook directory: %w", err)
	}
	return &CSVBook{dir: dir}, nil
}

func (b *CSVBook) path(sheet string) string {
	return filepath.Join(b.dir, sheet+".csv")
}

func (b *CSVBook) ReadValues(_ context.Context, sheet string) ([][]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	file, err := os.Open(b.path(sheet))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", sheet, ErrSheetNotFound)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	values, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", b.path(sheet), err)
	}
	// Excel writes a byte order mark in front of "CSV UTF-8" exports.
	if len(values) > 0 && len(values[0]) > 0 {
		values[0][0] = strings.TrimPrefix(values[0][0], byteOrderMark)
	}
	return values, nil
}

func (b *CSVBook) AppendRows(_ context.Context, sheet string, rows [][]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := os.Stat(b.path(sheet)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", sheet, ErrSheetNotFound)
		}
		return err
	}

	if err := b.terminateLastLine(sheet); err != nil {
		return err
	}

	return b.write(sheet, os.O_APPEND|os.O_WRONLY, rows)
}

func (b *CSVBook) EnsureSheet(_ context.Context, sheet string, headers []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := os.Stat(b.path(sheet)); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return b.write(sheet, os.O_CREATE|os.O_EXCL|os.O_WRONLY, [][]string{headers})
}

func (b *CSVBook) Close() error { return nil }

// terminateLastLine adds the line break spreadsheet exports often leave out at the end of the file,
// so appended rows never merge into the last existing one. Callers hold b.mu.
func (b *CSVBook) terminateLastLine(sheet string) error {
	file, err := os.OpenFile(b.path(sheet), os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}
	if info.Size() == 0 {
		return file.Close()
	}

	last := make([]byte, 1)
	if _, err := file.ReadAt(last, info.Size()-1); err != nil {
		file.Close()
		return fmt.Errorf("reading %s: %w", b.path(sheet), err)
	}
	if last[0] != '\n' {
		if _, err := file.Write([]byte{'\n'}); err != nil {
			file.Close()
			return fmt.Errorf("writing %s: %w", b.path(sheet), err)
		}
	}

	return file.Close()
}

func (b *CSVBook) write(sheet string, flag int, rows [][]string) error {
	file, err := os.OpenFile(b.path(sheet), flag, 0o644)
	if err != nil {
		return err
	}

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", b.path(sheet), err)
	}

	return file.Close()
}
