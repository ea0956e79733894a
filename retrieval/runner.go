package retrieval

import (
	"context"
	"log/slog"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// Runner processes a batch of questions concurrently. Questions are
// independent, so each one runs the full two-attempt protocol on a worker
// goroutine; one question's failure never aborts the rest.
type Runner struct {
	retriever  *Retriever
	mapping    NameMapping
	pool       *ants.Pool
	difficulty string
	logger     *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner) error

// WithConcurrency sets the worker pool size for batch processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithConcurrency(size int) RunnerOption {
	return func(r *Runner) error {
		if size < 1 {
			size = 1
		}

		if r.pool != nil {
			r.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithDifficulty restricts the batch to questions carrying this difficulty
// label. Empty means no restriction.
func WithDifficulty(difficulty string) RunnerOption {
	return func(r *Runner) error {
		r.difficulty = difficulty
		return nil
	}
}

// NewRunner creates a batch runner over a retriever and a name mapping.
func NewRunner(retriever *Retriever, mapping NameMapping, opts ...RunnerOption) (*Runner, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		retriever: retriever,
		mapping:   mapping,
		pool:      pool,
		logger:    slog.Default().With("component", "runner"),
	}

	for _, opt := range opts {
		if optErr := opt(r); optErr != nil {
			r.Release()
			return nil, optErr
		}
	}

	return r, nil
}

// Run answers every question and returns the output rows in input order,
// plus the pre-mapping debug entries.
func (r *Runner) Run(ctx context.Context, questions []Question) ([]Result, []DebugEntry, error) {
	if r.difficulty != "" {
		kept := make([]Question, 0, len(questions))
		for _, q := range questions {
			if strings.EqualFold(q.Difficulty, r.difficulty) {
				kept = append(kept, q)
			}
		}
		r.logger.Info("filtered questions by difficulty",
			"difficulty", r.difficulty, "total", len(questions), "kept", len(kept))
		questions = kept
	}
	if len(questions) == 0 {
		return nil, nil, ErrNoQuestions
	}

	results := make([]Result, len(questions))
	debug := make([]DebugEntry, len(questions))

	var wg sync.WaitGroup
	for i, question := range questions {
		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			names := r.retriever.Search(ctx, question.Text)
			debug[i] = DebugEntry{
				RowID:       question.RowID,
				Question:    question.Text,
				FoundDishes: names,
			}
			results[i] = Result{
				RowID:  question.RowID,
				Result: r.mapNames(question.RowID, names),
			}
		})
		if err != nil {
			wg.Done()
			return nil, nil, err
		}
	}
	wg.Wait()

	return results, debug, nil
}

// RunFile reads questions from questionsPath, answers them, and writes the
// output CSV to outputPath. When debugPath is non-empty, the pre-mapping
// debug entries are written there as JSON.
func (r *Runner) RunFile(ctx context.Context, questionsPath, outputPath, debugPath string) error {
	questions, err := ReadQuestions(questionsPath)
	if err != nil {
		return err
	}

	r.logger.Info("processing questions", "count", len(questions))
	results, debug, err := r.Run(ctx, questions)
	if err != nil {
		return err
	}

	if debugPath != "" {
		if err := WriteDebug(debugPath, debug); err != nil {
			return err
		}
		r.logger.Info("wrote debug entries", "path", debugPath)
	}

	if err := WriteResults(outputPath, results); err != nil {
		return err
	}
	r.logger.Info("wrote results", "path", outputPath, "rows", len(results))
	return nil
}

// mapNames converts verified names to the comma-joined, sorted, unique
// identifier string for one output row. Names absent from the mapping are
// logged and dropped; the remaining names still map.
func (r *Runner) mapNames(rowID int, names []string) string {
	seen := make(map[int]bool, len(names))
	ids := make([]int, 0, len(names))
	for _, name := range names {
		id, ok := r.mapping[name]
		if !ok {
			r.logger.Warn("verified dish has no identifier, dropping",
				"row_id", rowID, "name", name)
			continue
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// Release releases the worker pool.
// The runner should not be used after calling Release.
func (r *Runner) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}
