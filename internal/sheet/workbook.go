package sheet

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	DriverCSV      = "csv"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var ErrSheetNotFound = errors.New("sheet not found")

// Workbook is a set of named sheets holding raw cell grids.
// The first line of every sheet is its header line.
type Workbook interface {
	ReadValues(ctx context.Context, sheet string) ([][]string, error)
	AppendRows(ctx context.Context, sheet string, rows [][]string) error
	// EnsureSheet creates the sheet with the given header line when it does not exist yet.
	EnsureSheet(ctx context.Context, sheet string, headers []string) error
	Close() error
}

// Config selects and configures a workbook backend.
type Config struct {
	Driver string `mapstructure:"driver"`
	// Path is a directory for the csv driver and a database file for sqlite.
	Path string `mapstructure:"path"`
	// DSN is the connection string for postgres.
	DSN string `mapstructure:"dsn"`
}

// Open returns the workbook backend described by cfg.
func Open(ctx context.Context, cfg *Config) (Workbook, error) {
	if cfg == nil {
		return nil, errors.New("workbook configuration is required")
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverCSV:
		return NewCSVBook(cfg.Path)
	case DriverSQLite:
		return OpenSQLite(ctx, cfg.Path)
	case DriverPostgres:
		return OpenPostgres(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported workbook driver: %s", cfg.Driver)
	}
}

// ReadTable reads a sheet and converts it into a Table.
func ReadTable(ctx context.Context, book Workbook, sheet string) (*Table, error) {
	values, err := book.ReadValues(ctx, sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return FromValues(values), nil
}
