package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	plog "github.com/spigell/placement-desk/internal/logger"
	"github.com/spigell/placement-desk/internal/matching"
	"github.com/spigell/placement-desk/internal/sheet"
)

const (
	dateLayout      = "02-Jan-2006"
	timestampLayout = "02-Jan-2006 15:04:05"

	// DefaultUpdatedBy is the actor written on rows created by an export.
	DefaultUpdatedBy = "System"

	noNewRecordsMessage = "No new records to add (all duplicates)"
)

// ErrStoreUnavailable is returned when the interview record store can not be read or appended to.
var ErrStoreUnavailable = errors.New("interview record store unavailable")

// Store is the interview record store used by the exporter.
// ReadRecords returns all rows including the header line.
type Store interface {
	ReadRecords(ctx context.Context) ([][]string, error)
	AppendRecords(ctx context.Context, rows [][]string) error
}

// SheetStore keeps interview records in one sheet of a workbook.
type SheetStore struct {
	Book  sheet.Workbook
	Sheet string
}

func NewSheetStore(book sheet.Workbook, name string) *SheetStore {
	return &SheetStore{Book: book, Sheet: name}
}

func (s *SheetStore) ReadRecords(ctx context.Context) ([][]string, error) {
	if err := s.Book.EnsureSheet(ctx, s.Sheet, Headers); err != nil {
		return nil, err
	}
	return s.Book.ReadValues(ctx, s.Sheet)
}

func (s *SheetStore) AppendRecords(ctx context.Context, rows [][]string) error {
	return s.Book.AppendRows(ctx, s.Sheet, rows)
}

// NewRow builds the interview record row for a freshly exported match.
func NewRow(m matching.Match, id string, now time.Time, updatedBy string) []string {
	return []string{
		id,
		now.Format(dateLayout),
		m.CandidateID,
		m.FullName,
		m.CompanyName,
		m.CID,
		m.JobTitle,
		fmt.Sprintf("%d%%", m.Score),
		StatusMatched,
		"", "", "",
		ResultPending,
		"", "", "",
		now.Format(timestampLayout),
		updatedBy,
	}
}

type pair struct {
	candidateID string
	cid         string
}

func newPair(candidateID, cid string) pair {
	return pair{candidateID: strings.TrimSpace(candidateID), cid: strings.TrimSpace(cid)}
}

// Batch is the outcome of planning an export.
type Batch struct {
	Rows       [][]string
	Accepted   []matching.Match
	Duplicates []matching.Match
	Skipped    int
}

// Plan decides which matches become new interview records.
// existing holds the store content with its header line first. A match whose
// (Candidate ID, CID) pair is already scheduled, either in the store or earlier in matches, is skipped.
func Plan(existing [][]string, matches []matching.Match, now time.Time, updatedBy string) Batch {
	scheduled := make(map[pair]struct{})
	ids := make([]string, 0, len(existing))

	for i, row := range existing {
		if i == 0 {
			continue
		}
		if len(row) > recordIDColumn {
			ids = append(ids, row[recordIDColumn])
		}
		if len(row) > cidColumn {
			scheduled[newPair(row[candidateIDColumn], row[cidColumn])] = struct{}{}
		}
	}

	var batch Batch
	for _, m := range matches {
		key := newPair(m.CandidateID, m.CID)
		if _, ok := scheduled[key]; ok {
			batch.Skipped++
			batch.Duplicates = append(batch.Duplicates, m)
			continue
		}

		id := NextID(ids)
		ids = append(ids, id)
		scheduled[key] = struct{}{}

		batch.Rows = append(batch.Rows, NewRow(m, id, now, updatedBy))
		batch.Accepted = append(batch.Accepted, m)
	}

	return batch
}

// Result reports the outcome of an export call.
type Result struct {
	Added   int
	Skipped int
	Rows    [][]string
	Success bool
	Message string
}

// Exporter promotes matches into the interview record store.
type Exporter struct {
	store     Store
	updatedBy string
	logger    *zap.Logger
	now       func() time.Time

	mu sync.Mutex
}

func NewExporter(store Store, updatedBy string, logger *zap.Logger) *Exporter {
	if updatedBy == "" {
		updatedBy = DefaultUpdatedBy
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		store:     store,
		updatedBy: updatedBy,
		logger:    logger,
		now:       time.Now,
	}
}

// Export appends a record for every match whose pair is not scheduled yet.
// Concurrent calls on one exporter are serialized. Existing records are never changed.
func (e *Exporter) Export(ctx context.Context, matches []matching.Match) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logger := e.logger.With(zap.String("export_id", uuid.NewString()))

	existing, err := e.store.ReadRecords(ctx)
	if err != nil {
		logger.Error("failed to read interview records", zap.Error(err))
		return failure(fmt.Errorf("%w: read records: %w", ErrStoreUnavailable, err))
	}

	batch := Plan(existing, matches, e.now(), e.updatedBy)
	for _, m := range batch.Duplicates {
		logger.Debug("skipping already scheduled pair", plog.PairFields(m.CandidateID, m.CID, m.JobTitle)...)
	}
	if len(batch.Rows) == 0 {
		logger.Info("nothing to export", zap.Int("skipped", batch.Skipped))
		return &Result{Skipped: batch.Skipped, Message: noNewRecordsMessage}, nil
	}

	if err := e.store.AppendRecords(ctx, batch.Rows); err != nil {
		logger.Error("failed to append interview records", zap.Int("rows", len(batch.Rows)), zap.Error(err))
		return failure(fmt.Errorf("%w: append records: %w", ErrStoreUnavailable, err))
	}

	message := fmt.Sprintf("Successfully added %d records!", len(batch.Rows))
	if batch.Skipped > 0 {
		message += fmt.Sprintf(" (Skipped %d duplicates)", batch.Skipped)
	}

	logger.Info("interview records exported",
		zap.Int("added", len(batch.Rows)),
		zap.Int("skipped", batch.Skipped),
		zap.String("first_id", batch.Rows[0][recordIDColumn]),
	)

	return &Result{
		Added:   len(batch.Rows),
		Skipped: batch.Skipped,
		Rows:    batch.Rows,
		Success: true,
		Message: message,
	}, nil
}

func failure(err error) (*Result, error) {
	return &Result{Message: fmt.Sprintf("Error adding records: %v", err)}, err
}
