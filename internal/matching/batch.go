package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-matcher/internal/resume"
)

const DefaultConcurrency = 8

// Result pairs a job with its match outcome.
type Result struct {
	Job   Job         `json:"job"`
	Match MatchResult `json:"match"`
}

type Results []Result

func (r Results) Len() int { return len(r) }

func (r Results) JobIDs() []string {
	ids := make([]string, 0, len(r))
	for _, res := range r {
		ids = append(ids, res.Job.ID)
	}
	return ids
}

// ScoreAll scores the profile against every job, fanning out up to
// concurrency goroutines. Results keep job order. The only possible error is
// the context being done before every job was scored.
func ScoreAll(ctx context.Context, p *resume.ParsedResumeData, jobs []Job, concurrency int) (Results, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make(Results, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Result{Job: job, Match: Score(p, job.Requirements)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Rank sorts results by score, highest first. Ties keep their input order.
func Rank(results Results) Results {
	ranked := make(Results, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Match.Score > ranked[j].Match.Score
	})
	return ranked
}

// DumpToTmpFile writes the results as indented JSON to a new temporary file
// and returns its path.
func (r Results) DumpToTmpFile() (string, error) {
	f, err := os.CreateTemp("", "resume-matcher-results-*.json")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", fmt.Errorf("write results: %w", err)
	}

	return f.Name(), nil
}
