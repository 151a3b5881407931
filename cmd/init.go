package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/placement-desk/internal/interview"
	"github.com/spigell/placement-desk/internal/matching"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the candidate, vacancy and interview sheets when they are missing",
	Run: func(_ *cobra.Command, _ []string) {
		initSheets()
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func initSheets() {
	ctx := context.Background()

	l, config := setup()

	book := openWorkbook(ctx, config, l)
	defer book.Close()

	sheets := []struct {
		name    string
		headers []string
	}{
		{config.Sheets.Candidates, matching.CandidateHeaders},
		{config.Sheets.Vacancies, matching.VacancyHeaders},
		{config.Sheets.Interviews, interview.Headers},
	}

	for _, s := range sheets {
		if err := book.EnsureSheet(ctx, s.name, s.headers); err != nil {
			l.Fatal("creating sheet", zap.String("sheet", s.name), zap.Error(err))
		}
		l.Info("sheet is ready", zap.String("sheet", s.name), zap.Int("columns", len(s.headers)))
	}
}
