// Package extract turns raw resume text into a canonical profile.
package extract

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/resume"
)

// Extractor produces a profile from resume text.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, text string) (*resume.ParsedResumeData, error)
}

// Fallback composes a primary extractor with a deterministic one. Parse never
// fails: any error from the primary is logged and the fallback result is
// returned instead.
type Fallback struct {
	primary  Extractor
	fallback *Regex
	logger   *zap.Logger
}

// NewFallback builds the composition. A nil primary means no model is
// configured and the deterministic extractor always runs.
func NewFallback(primary Extractor, logger *zap.Logger) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback{
		primary:  primary,
		fallback: NewRegex(),
		logger:   logger,
	}
}

// Parse extracts a profile from text, always returning a normalised result.
func (f *Fallback) Parse(ctx context.Context, text string) *resume.ParsedResumeData {
	if f.primary == nil {
		f.logger.Debug("no model configured, using deterministic extraction")
		return f.deterministic(ctx, text)
	}

	profile, err := f.tryPrimary(ctx, text)
	if err != nil {
		f.logger.Warn("model extraction failed, falling back to deterministic extraction",
			zap.String("extractor", f.primary.Name()),
			zap.Error(err),
		)
		return f.deterministic(ctx, text)
	}

	return resume.Normalize(profile)
}

func (f *Fallback) tryPrimary(ctx context.Context, text string) (profile *resume.ParsedResumeData, err error) {
	defer func() {
		if r := recover(); r != nil {
			profile, err = nil, errors.New("extractor panicked")
			f.logger.Error("recovered from extractor panic", zap.Any("panic", r))
		}
	}()

	profile, err = f.primary.Extract(ctx, text)
	if err == nil && profile == nil {
		err = errors.New("extractor returned no profile")
	}
	return profile, err
}

func (f *Fallback) deterministic(ctx context.Context, text string) *resume.ParsedResumeData {
	profile, _ := f.fallback.Extract(ctx, text)
	return profile
}
