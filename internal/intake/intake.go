// Package intake runs the full import of one or more resume sources into a
// canonical profile.
package intake

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-matcher/internal/extract"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/resume"
	"github.com/spigell/resume-matcher/internal/source"
)

const defaultConcurrency = 4

// Normalizer is the source decoding step.
type Normalizer interface {
	Normalize(ctx context.Context, env source.Envelope) source.Result
}

// Parser is the text extraction step.
type Parser interface {
	Parse(ctx context.Context, text string) *resume.ParsedResumeData
}

type Service struct {
	normalizer  Normalizer
	parser      Parser
	logger      *zap.Logger
	concurrency int
}

func NewService(normalizer Normalizer, parser Parser, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if parser == nil {
		parser = extract.NewFallback(nil, logger)
	}
	return &Service{
		normalizer:  normalizer,
		parser:      parser,
		logger:      logger,
		concurrency: defaultConcurrency,
	}
}

// Import turns one envelope into a profile. It never fails: placeholders
// from the source step become the summary of an otherwise empty profile,
// and structured documents skip text extraction entirely.
func (s *Service) Import(ctx context.Context, env source.Envelope) *resume.ParsedResumeData {
	log := logger.WithImport(s.logger, uuid.NewString(), string(env.Type))
	log.Info("importing resume")

	res := s.normalizer.Normalize(ctx, env)

	switch {
	case res.Placeholder:
		log.Warn("source produced no usable text", zap.String("placeholder", res.Text))
		p := resume.Empty()
		p.Summary = res.Text
		return p
	case res.Profile != nil:
		log.Info("structured document mapped directly")
		return resume.Normalize(res.Profile)
	default:
		p := s.parser.Parse(ctx, res.Text)
		log.Info("resume text extracted",
			zap.Int("skills", len(p.Skills.Pooled())),
			zap.Int("experience", len(p.Experience)),
			zap.Float64("total_years", p.TotalYearsOfExperience),
		)
		return p
	}
}

// ImportAll imports every envelope concurrently and merges the results in
// input order. The only possible error is the context being done before
// every envelope was imported.
func (s *Service) ImportAll(ctx context.Context, envs []source.Envelope) (*resume.ParsedResumeData, error) {
	profiles := make([]*resume.ParsedResumeData, len(envs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, env := range envs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			profiles[i] = s.Import(ctx, env)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return resume.Merge(profiles...), nil
}
