package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/placement-desk/internal/interview"
	"github.com/spigell/placement-desk/internal/sheet"
)

const (
	ViewAll         = "all"
	ViewSchedulable = "schedulable"
	ViewUpdatable   = "updatable"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List interview records",
	Run: func(cmd *cobra.Command, _ []string) {
		records(cmd)
	},
}

func init() {
	rootCmd.AddCommand(recordsCmd)

	recordsCmd.Flags().String("view", ViewAll, "records to show: all, schedulable or updatable")
}

func records(cmd *cobra.Command) {
	ctx := context.Background()

	l, config := setup()

	view, _ := cmd.Flags().GetString("view")
	switch view {
	case ViewAll, ViewSchedulable, ViewUpdatable:
	default:
		l.Fatal("unknown view", zap.String("view", view))
	}

	book := openWorkbook(ctx, config, l)
	defer book.Close()

	all, err := readRecords(ctx, book, config.Sheets.Interviews, l)
	if err != nil {
		l.Fatal("reading interview records", zap.Error(err))
	}

	closed, err := closedVacancies(ctx, book, config.Sheets.Vacancies, l)
	if err != nil {
		l.Fatal("reading vacancies", zap.Error(err))
	}

	shown := all
	switch view {
	case ViewSchedulable:
		shown = interview.Schedulable(all, closed)
	case ViewUpdatable:
		shown = interview.Updatable(all, closed)
	}

	l.Info("interview records loaded",
		zap.String("view", view),
		zap.Int("total", len(all)),
		zap.Int("shown", len(shown)),
		zap.Int("closed_vacancies", len(closed)),
	)

	printRecords(os.Stdout, fmt.Sprintf("Interview records: %s", view), shown)
	printSummary(os.Stdout, interview.Summarize(all))
}

// readRecords parses the interview sheet without creating it. A missing sheet holds no records.
func readRecords(ctx context.Context, book sheet.Workbook, name string, l *zap.Logger) ([]interview.Record, error) {
	values, err := book.ReadValues(ctx, name)
	if err != nil {
		if errors.Is(err, sheet.ErrSheetNotFound) {
			l.Warn("interview sheet not found, no records yet", zap.String("sheet", name))
			return nil, nil
		}
		return nil, err
	}
	return interview.ParseRecords(values)
}

// closedVacancies reads the vacancy sheet. A missing sheet means no vacancy is closed.
func closedVacancies(ctx context.Context, book sheet.Workbook, name string, l *zap.Logger) (map[interview.VacancyKey]struct{}, error) {
	vacancies, err := readSheet(ctx, book, name, l)
	if err != nil {
		if errors.Is(err, sheet.ErrSheetNotFound) {
			l.Warn("vacancy sheet not found, closed vacancies are not hidden", zap.String("sheet", name))
			return map[interview.VacancyKey]struct{}{}, nil
		}
		return nil, err
	}
	return interview.ClosedVacancies(vacancies), nil
}
