package source

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/resume"
)

const (
	DefaultDocumentTimeout = 30 * time.Second
	DefaultMinTextLength   = 50
)

// ProfileFetcher resolves an external profile reference to plain text.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, url string) (string, error)
}

// Options tunes a Normalizer. Zero values fall back to the defaults.
type Options struct {
	PDF           DocumentExtractor
	Docx          DocumentExtractor
	Profiles      ProfileFetcher
	Timeout       time.Duration
	MinTextLength int
}

// Normalizer dispatches an Envelope to the matching decoding path.
type Normalizer struct {
	documents     map[Type]DocumentExtractor
	profiles      ProfileFetcher
	timeout       time.Duration
	minTextLength int
	logger        *zap.Logger
}

func NewNormalizer(opts Options, logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.PDF == nil {
		opts.PDF = PDFExtractor{}
	}
	if opts.Docx == nil {
		opts.Docx = DocxExtractor{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultDocumentTimeout
	}
	if opts.MinTextLength <= 0 {
		opts.MinTextLength = DefaultMinTextLength
	}

	return &Normalizer{
		documents: map[Type]DocumentExtractor{
			TypePDF:  opts.PDF,
			TypeDocx: opts.Docx,
		},
		profiles:      opts.Profiles,
		timeout:       opts.Timeout,
		minTextLength: opts.MinTextLength,
		logger:        logger,
	}
}

// Normalize never fails. Malformed input degrades to a placeholder or an
// empty profile.
func (n *Normalizer) Normalize(ctx context.Context, env Envelope) Result {
	switch env.Type {
	case TypePDF, TypeDocx:
		return n.document(ctx, env)
	case TypeJSON:
		return n.structured(env.Content)
	case TypeLinkedIn, TypeIndeed:
		return n.external(ctx, env)
	case TypeText:
		return textResult(env.Content)
	default:
		n.logger.Warn("unknown source type, treating content as text", zap.String("type", string(env.Type)))
		return textResult(env.Content)
	}
}

func (n *Normalizer) document(ctx context.Context, env Envelope) Result {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(env.Content))
	if err != nil {
		n.logger.Warn("document content is not valid base64", zap.Error(err))
		return placeholderResult(encodingPlaceholder(env.Type))
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	doc, err := n.documents[env.Type].ExtractText(ctx, data)
	if err != nil {
		n.logger.Warn("document text extraction failed",
			zap.Int("bytes", len(data)),
			zap.Error(err),
		)
		return placeholderResult(extractionPlaceholder(env.Type, err))
	}

	text := CleanText(doc.Text)
	if len(text) < n.minTextLength {
		n.logger.Warn("document yielded too little text",
			zap.Int("bytes", len(data)),
			zap.Int("pages", doc.Pages),
			zap.Int("text_length", len(text)),
		)
		return placeholderResult(imageBasedPlaceholder(env.Type, len(data), doc.Pages))
	}

	n.logger.Debug("document text extracted",
		zap.Int("bytes", len(data)),
		zap.Int("pages", doc.Pages),
		zap.Int("text_length", len(text)),
	)

	return textResult(text)
}

func (n *Normalizer) structured(content string) Result {
	var doc map[string]any
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		n.logger.Warn("structured document is not a JSON object, using empty profile", zap.Error(err))
		return profileResult(resume.Empty())
	}

	if isJSONResume(doc) {
		jr, dropped := decodeJSONResume(doc)
		if len(dropped) > 0 {
			n.logger.Warn("json resume fields with unexpected shape reset to defaults", zap.Strings("fields", dropped))
		}
		n.logger.Debug("mapping json resume document")
		return profileResult(mapJSONResume(jr))
	}

	p, dropped := resume.FromMap(doc)
	if len(dropped) > 0 {
		n.logger.Warn("profile fields with unexpected shape reset to defaults", zap.Strings("fields", dropped))
	}

	return profileResult(resume.Normalize(p))
}

func (n *Normalizer) external(ctx context.Context, env Envelope) Result {
	url := strings.TrimSpace(env.Content)
	if n.profiles == nil {
		n.logger.Warn("no profile fetcher configured", zap.String("url", url))
		return placeholderResult(fetchPlaceholder(env.Type, url, errFetchUnavailable))
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	text, err := n.profiles.FetchProfile(ctx, url)
	if err != nil {
		n.logger.Warn("profile fetch failed", zap.String("url", url), zap.Error(err))
		return placeholderResult(fetchPlaceholder(env.Type, url, err))
	}

	return textResult(text)
}
