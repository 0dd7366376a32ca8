package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/extract"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/resume"
	"github.com/spigell/resume-matcher/internal/schema"
)

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	defaultTimeout      = 60 * time.Second
)

var ErrNoJSON = errors.New("model response contains no JSON object")

// Extractor asks a generative model to structure resume text.
type Extractor struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
	timeout   time.Duration
}

var _ extract.Extractor = (*Extractor)(nil)

func NewExtractor(generator ai.Generator, log *zap.Logger, timeout time.Duration, maxLogLength int) *Extractor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	model := ""
	if generator != nil {
		model = generator.Model()
	}

	return &Extractor{
		generator: generator,
		logger:    logger.WithModel(log, ai.ProviderGemini, model),
		maxLogLen: maxLogLength,
		timeout:   timeout,
	}
}

func (e *Extractor) Name() string { return ai.ProviderGemini }

// Extract returns an error whenever the model cannot produce a usable profile;
// the caller is expected to fall back.
func (e *Extractor) Extract(ctx context.Context, text string) (*resume.ParsedResumeData, error) {
	if e.generator == nil {
		return nil, errors.New("gemini generator is not configured")
	}

	prompt := buildPrompt(text)

	e.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, e.maxLogLen)),
	)

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, e.maxLogLen)),
	)

	return e.parseResponse(raw)
}

func (e *Extractor) parseResponse(raw string) (*resume.ParsedResumeData, error) {
	block, ok := extract.FirstObject(raw)
	if !ok {
		return nil, ErrNoJSON
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(block), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	var validationErr *schema.ValidationError
	if err := schema.ValidateProfile([]byte(block)); errors.As(err, &validationErr) {
		e.logger.Debug("gemini response deviates from profile schema, coercing",
			zap.Strings("fields", validationErr.Fields()),
		)
	}

	profile, dropped := resume.FromMap(data)
	if len(dropped) > 0 {
		e.logger.Debug("gemini response fields reset to defaults", zap.Strings("fields", dropped))
	}

	return resume.Normalize(profile), nil
}

func buildPrompt(text string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Resume text:\n{{RESUME_TEXT}}\n\nJSON Response:"
	}
	return strings.ReplaceAll(template, "{{RESUME_TEXT}}", strings.TrimSpace(text))
}
