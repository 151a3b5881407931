package matching

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/placement-desk/internal/sheet"
)

// TopMatches is how many matches are kept per candidate.
const TopMatches = 5

// Hooks receive progress while a batch is running. Both callbacks are optional and
// are never invoked concurrently.
type Hooks struct {
	OnProgress func(fraction float64)
	OnStatus   func(message string)
}

func (h *Hooks) report(done, total int) {
	if h == nil {
		return
	}
	if h.OnProgress != nil {
		h.OnProgress(float64(done) / float64(total))
	}
	if h.OnStatus != nil {
		h.OnStatus(fmt.Sprintf("Processing: %d/%d candidates...", done, total))
	}
}

// Engine pairs every candidate with every vacancy.
type Engine struct {
	workers int
	logger  *zap.Logger
}

// NewEngine creates an engine scoring up to workers candidates at once.
// A non-positive value uses one worker per CPU.
func NewEngine(workers int, logger *zap.Logger) *Engine {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{workers: workers, logger: logger}
}

// MatchCandidate scores one candidate against all vacancies and returns the best TopMatches
// matches, highest score first.
func MatchCandidate(candidate sheet.Row, vacancies []sheet.Row) []Match {
	var matches []Match
	for _, vacancy := range vacancies {
		if m, ok := ScorePair(candidate, vacancy); ok {
			matches = append(matches, m)
		}
	}

	sortByScore(matches)
	if len(matches) > TopMatches {
		matches = matches[:TopMatches]
	}
	return matches
}

// Run matches all candidates against all vacancies. The result holds each candidate's top
// matches, grouped in candidate order.
//
// Cancelling ctx stops the run between candidates; the matches of the candidates finished so
// far are returned together with the context error.
func (e *Engine) Run(ctx context.Context, candidates, vacancies []sheet.Row, hooks *Hooks) ([]Match, error) {
	total := len(candidates)
	if total == 0 {
		return []Match{}, nil
	}

	var (
		mu       sync.Mutex
		done     int
		results  = make([][]Match, total)
		finished = make([]bool, total)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, candidate := range candidates {
		i, candidate := i, candidate
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			matches := MatchCandidate(candidate, vacancies)

			mu.Lock()
			defer mu.Unlock()

			results[i] = matches
			finished[i] = true
			done++

			e.logger.Debug("candidate processed",
				zap.String("candidate_id", candidate.Get(CandidateIDField)),
				zap.Int("matches", len(matches)),
			)
			hooks.report(done, total)
			return nil
		})
	}

	err := g.Wait()
	if err == nil && done < total {
		err = ctx.Err()
	}

	all := make([]Match, 0)
	for i, matches := range results {
		if finished[i] {
			all = append(all, matches...)
		}
	}

	if err != nil {
		e.logger.Warn("matching interrupted",
			zap.Int("candidates_done", done),
			zap.Int("candidates_total", total),
			zap.Error(err),
		)
		return all, err
	}

	e.logger.Info("matches found",
		zap.Int("candidates", total),
		zap.Int("vacancies", len(vacancies)),
		zap.Int("matches", len(all)),
	)

	return all, nil
}
