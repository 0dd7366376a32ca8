package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/ai/gemini"
	"github.com/spigell/resume-matcher/internal/extract"
	"github.com/spigell/resume-matcher/internal/fetch"
	"github.com/spigell/resume-matcher/internal/intake"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/secrets"
	"github.com/spigell/resume-matcher/internal/source"
)

// newIntake wires the import pipeline from configuration.
func newIntake(ctx context.Context, config *Config, log *zap.Logger) *intake.Service {
	var primary extract.Extractor
	aiExtractor, err := newAIExtractor(ctx, config.AI, log)
	switch {
	case err != nil:
		log.Info("ai extraction unavailable, using deterministic extraction only", zap.Error(err))
	case aiExtractor != nil:
		primary = aiExtractor
	}

	opts := source.Options{}
	if config.Document != nil {
		opts.Timeout = config.Document.Timeout
		opts.MinTextLength = config.Document.MinTextLength
	}

	fetchTimeout, userAgent := fetch.DefaultTimeout, fetch.DefaultUserAgent
	if config.Fetch != nil {
		fetchTimeout, userAgent = config.Fetch.Timeout, config.Fetch.UserAgent
	}
	opts.Profiles = fetch.New(log, fetchTimeout, userAgent)

	return intake.NewService(source.NewNormalizer(opts, log), extract.NewFallback(primary, log), log)
}

// newAIExtractor returns nil without error when AI extraction is switched
// off. A missing credential is reported as an error so the caller can log it.
func newAIExtractor(ctx context.Context, cfg *AIConfig, log *zap.Logger) (*gemini.Extractor, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != ai.ProviderGemini {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  cfg.Gemini.APIKeyFile,
		Value: cfg.Gemini.APIKey,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key, ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	genLogger := logger.WithModel(log, ai.ProviderGemini, cfg.Gemini.Model)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewExtractor(generator, log, cfg.Timeout, cfg.Gemini.MaxLogLength), nil
}
