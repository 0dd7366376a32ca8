package matching

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Filter drops results that should not be shown.
type Filter interface {
	Name() string
	Apply(results Results) (Results, Step)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// RunFilters applies the filters in order and logs each step.
func RunFilters(logger *zap.Logger, results Results, filters ...Filter) Results {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, f := range filters {
		next, step := f.Apply(results)
		logger.Info("filter step",
			zap.String("name", f.Name()),
			zap.Int("initial", step.Initial),
			zap.Int("dropped", step.Dropped),
			zap.Int("left", step.Left),
		)
		results = next
	}

	return results
}

type minimumScoreFilter struct {
	minimum int
}

// NewMinimumScore keeps results scoring at least minimum.
func NewMinimumScore(minimum int) Filter {
	return &minimumScoreFilter{minimum: minimum}
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Apply(results Results) (Results, Step) {
	return keep(results, func(r Result) bool { return r.Match.Score >= f.minimum })
}

type excludeJobsFilter struct {
	ids map[string]struct{}
}

// NewExcludeJobs drops results for the listed job IDs.
func NewExcludeJobs(ids []string) Filter {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = struct{}{}
		}
	}
	return &excludeJobsFilter{ids: set}
}

func (f *excludeJobsFilter) Name() string { return "exclude_jobs" }

func (f *excludeJobsFilter) Apply(results Results) (Results, Step) {
	return keep(results, func(r Result) bool {
		_, excluded := f.ids[r.Job.ID]
		return !excluded
	})
}

func keep(results Results, pred func(Result) bool) (Results, Step) {
	out := make(Results, 0, len(results))
	for _, r := range results {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out, Step{Initial: len(results), Dropped: len(results) - len(out), Left: len(out)}
}

// ReadExcludeFile reads one job ID per line. Blank lines and lines starting
// with # are skipped.
func ReadExcludeFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening exclude file %q: %w", path, err)
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading exclude file %q: %w", path, err)
	}

	return ids, nil
}
