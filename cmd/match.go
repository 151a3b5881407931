package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/placement-desk/internal/interview"
	"github.com/spigell/placement-desk/internal/logger"
	"github.com/spigell/placement-desk/internal/matching"
	"github.com/spigell/placement-desk/internal/sheet"
)

const (
	PromptExportAll       = "Export all matches"
	PromptQuickAdd        = "Add matches one by one"
	PromptReportByCompany = "Report by company"
	PromptMatchesToFile   = "Dump matches to file"
	PromptExit            = "Exit"
	PromptBack            = "back"

	labelLimit = 120
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptExportAll, PromptQuickAdd, PromptReportByCompany, PromptMatchesToFile, PromptExit},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match candidates with open vacancies and export the picks as interview records",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().BoolP("auto-approve", "y", false, "export all matches without asking")
	matchCmd.Flags().IntP("workers", "w", 0, "candidates scored in parallel (default is config or one per CPU)")
	matchCmd.Flags().String("csv", "", "write the matches to this csv file")
	matchCmd.Flags().String("list-values", "", "print the values of a column usable in column filters and exit")
}

// match is the main command for the cli.
func match(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	l, config := setup()
	l.Info("starting the placement-desk", zap.String("version", version))

	// The store section may hold credentials and is left out.
	pretty, _ := json.MarshalIndent(struct {
		Sheets   *SheetsConfig
		Matching *MatchingConfig
		Filters  *FiltersConfig
	}{config.Sheets, config.Matching, config.Filters}, "", "  ")
	l.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	book := openWorkbook(ctx, config, l)
	defer book.Close()

	if column, _ := cmd.Flags().GetString("list-values"); column != "" {
		listValues(ctx, book, config, column, l)
		return
	}

	matches, err := findMatches(ctx, cmd, book, config, l)
	if err != nil && !errors.Is(err, context.Canceled) {
		l.Fatal("matching failed", zap.Error(err))
	}
	if err != nil {
		l.Warn("matching interrupted, continuing with partial results", zap.Int("matches", len(matches)))
	}

	if len(matches) == 0 {
		l.Info("exiting", zap.String("reason", "no matches found"))
		return
	}

	printMatches(os.Stdout, matches)

	if path, _ := cmd.Flags().GetString("csv"); path != "" {
		if err := writeCSV(path, matches); err != nil {
			l.Fatal("writing csv", zap.String("path", path), zap.Error(err))
		}
		l.Info("matches written to csv", zap.String("path", path))
	}

	exporter := interview.NewExporter(
		interview.NewSheetStore(book, config.Sheets.Interviews),
		config.Export.UpdatedBy,
		logger.WithSheet(l, config.Sheets.Interviews),
	)

	// The interrupt only stops the matching run, the export still needs a live context.
	stop()
	ctx = context.Background()

	if autoApprove, _ := cmd.Flags().GetBool("auto-approve"); autoApprove {
		if err := exportMatches(ctx, exporter, l, matches); err != nil {
			l.Fatal("exiting", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			l.Fatal("exiting", zap.Error(err))
		}

		l.Info("current list of matches", zap.Int("count", len(matches)))

		matches, err = handleAction(ctx, action, exporter, l, matches)
		if err != nil {
			if errors.Is(err, errExit) {
				return
			}
			l.Fatal("exiting", zap.Error(err))
		}
	}
}

func findMatches(ctx context.Context, cmd *cobra.Command, book sheet.Workbook, config *Config, l *zap.Logger) ([]matching.Match, error) {
	candidates, err := readSheet(ctx, book, config.Sheets.Candidates, l)
	if err != nil {
		return nil, fmt.Errorf("candidates: %w", err)
	}
	vacancies, err := readSheet(ctx, book, config.Sheets.Vacancies, l)
	if err != nil {
		return nil, fmt.Errorf("vacancies: %w", err)
	}

	candidates, err = candidateFilters(config.Filters, l).RunFilters(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("filtering candidates: %w", err)
	}
	vacancies, err = vacancyFilters(config.Filters, l).RunFilters(ctx, vacancies)
	if err != nil {
		return nil, fmt.Errorf("filtering vacancies: %w", err)
	}

	workers := config.Matching.Workers
	if cmd.Flags().Changed("workers") {
		workers, _ = cmd.Flags().GetInt("workers")
	}

	l.Info("starting the matching",
		zap.Int("candidates", candidates.Len()),
		zap.Int("vacancies", vacancies.Len()),
		zap.Int("workers", workers),
	)

	hooks := &matching.Hooks{
		OnStatus: func(status string) {
			fmt.Fprintf(os.Stderr, "\r%s", status)
		},
	}
	matches, err := matching.NewEngine(workers, l).Run(ctx, candidates.Rows, vacancies.Rows, hooks)
	if candidates.Len() > 0 {
		fmt.Fprintln(os.Stderr)
	}

	return matches, err
}

// listValues prints the distinct values of column in the candidate and vacancy sheets.
func listValues(ctx context.Context, book sheet.Workbook, config *Config, column string, l *zap.Logger) {
	var tables []namedTable
	for _, name := range []string{config.Sheets.Candidates, config.Sheets.Vacancies} {
		table, err := readSheet(ctx, book, name, l)
		if err != nil {
			if errors.Is(err, sheet.ErrSheetNotFound) {
				l.Warn("sheet not found", zap.String("sheet", name))
				continue
			}
			l.Fatal("reading sheet", zap.String("sheet", name), zap.Error(err))
		}
		tables = append(tables, namedTable{name: name, table: table})
	}

	if printValues(os.Stdout, column, tables) == 0 {
		l.Fatal("column not found", zap.String("column", column))
	}
}

func handleAction(ctx context.Context, action string, exporter *interview.Exporter, l *zap.Logger, matches []matching.Match) ([]matching.Match, error) {
	switch action {
	case PromptExportAll:
		return matches, exportMatches(ctx, exporter, l, matches)
	case PromptQuickAdd:
		return quickAdd(ctx, exporter, l, matches)
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(matching.ReportByCompany(matches), "", "  ")
		l.Info(string(pretty), zap.Int("matches count", len(matches)))
		return matches, nil
	case PromptMatchesToFile:
		filename, err := matching.DumpToTmpFile(matches)
		if err != nil {
			return matches, fmt.Errorf("dump results to file: %w", err)
		}
		l.Info("dumping result to file", zap.String("filename", filename))
		return matches, nil
	case PromptExit:
		l.Info("exiting", zap.String("reason", "got exit from prompt"))
		return matches, errExit
	default:
		return matches, fmt.Errorf("invalid action: %s", action)
	}
}

// exportMatches exports the matches. A store failure is returned, an all duplicate batch is only reported.
func exportMatches(ctx context.Context, exporter *interview.Exporter, l *zap.Logger, matches []matching.Match) error {
	result, err := exporter.Export(ctx, matches)
	if err != nil {
		if errors.Is(err, interview.ErrStoreUnavailable) {
			return fmt.Errorf("%s: %w", result.Message, err)
		}
		return err
	}

	fmt.Println(titleStyle.Render(result.Message))
	if result.Success {
		l.Info("export finished", zap.Int("added", result.Added), zap.Int("skipped", result.Skipped))
	} else {
		l.Warn("export finished", zap.String("reason", result.Message))
	}
	return nil
}

func quickAdd(ctx context.Context, exporter *interview.Exporter, l *zap.Logger, matches []matching.Match) ([]matching.Match, error) {
	for {
		if len(matches) == 0 {
			return matches, nil
		}

		items := make([]string, 0, len(matches)+1)
		for i, m := range matches {
			items = append(items, fmt.Sprintf("%d %s", i+1, logger.TruncateForLog(m.Label(), labelLimit)))
		}

		matchPrompt := promptui.Select{
			Label: "Choose a match and press ENTER",
			Items: append(items, PromptBack),
			Size:  10,
		}

		idx, selected, err := matchPrompt.Run()
		if err != nil {
			return matches, err
		}

		if selected == PromptBack {
			return matches, nil
		}

		picked := matches[idx]
		if err := exportMatches(ctx, exporter, l, []matching.Match{picked}); err != nil {
			return matches, err
		}

		l.Info("match added", logger.PairFields(picked.CandidateID, picked.CID, picked.JobTitle)...)
		matches = append(matches[:idx:idx], matches[idx+1:]...)
	}
}

func writeCSV(path string, matches []matching.Match) error {
	file, err := os.Create(strings.TrimSpace(path))
	if err != nil {
		return err
	}

	if err := matching.WriteCSV(file, matches); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
