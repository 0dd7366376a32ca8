package intake

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-matcher/internal/extract"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/resume"
	"github.com/spigell/resume-matcher/internal/source"
)

type countingParser struct {
	inner *extract.Fallback
	calls int
}

func (c *countingParser) Parse(ctx context.Context, text string) *resume.ParsedResumeData {
	c.calls++
	return c.inner.Parse(ctx, text)
}

type shortPDF struct{}

func (shortPDF) ExtractText(context.Context, []byte) (source.Document, error) {
	return source.Document{Text: "0123456789", Pages: 1}, nil
}

func newService(t *testing.T, log *zap.Logger) (*Service, *countingParser) {
	t.Helper()
	parser := &countingParser{inner: extract.NewFallback(nil, log)}
	normalizer := source.NewNormalizer(source.Options{PDF: shortPDF{}}, log)
	return NewService(normalizer, parser, log), parser
}

func TestImportPlainTextWithoutModel(t *testing.T) {
	svc, parser := newService(t, zap.NewNop())

	p := svc.Import(context.Background(), source.Envelope{
		Type:    source.TypeText,
		Content: "5+ years experience. Contact: a@b.com. Skills: React, Node.js.",
	})

	assert.Equal(t, 1, parser.calls)
	assert.Equal(t, "a@b.com", p.PersonalInfo.Email)
	assert.Equal(t, 5.0, p.TotalYearsOfExperience)
	assert.Contains(t, p.Skills.Technical, "React")
	assert.Contains(t, p.Skills.Technical, "Node.js")
}

func TestImportJSONResumeBypassesExtraction(t *testing.T) {
	svc, parser := newService(t, zap.NewNop())

	p := svc.Import(context.Background(), source.Envelope{
		Type:    source.TypeJSON,
		Content: `{"basics": {"name": "Jane Doe", "email": "jane@example.com"}}`,
	})

	assert.Equal(t, 0, parser.calls)
	assert.Equal(t, "Jane", p.PersonalInfo.FirstName)
	assert.Equal(t, "Doe", p.PersonalInfo.LastName)
	assert.Equal(t, []resume.Experience{}, p.Experience)
}

func TestImportImageBasedPDF(t *testing.T) {
	svc, parser := newService(t, zap.NewNop())
	content := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", 512)))

	p := svc.Import(context.Background(), source.Envelope{Type: source.TypePDF, Content: content})

	assert.Equal(t, 0, parser.calls)
	assert.Equal(t, "[Image-based PDF - 512 bytes, 1 pages. Consider using OCR for better results.]", p.Summary)
	assert.Equal(t, "", p.PersonalInfo.Email)
	assert.Equal(t, []string{}, p.Skills.Technical)
	assert.Equal(t, 0.0, p.TotalYearsOfExperience)
}

func TestImportTagsLogsWithImportID(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	svc, _ := newService(t, zap.New(core))

	svc.Import(context.Background(), source.Envelope{Type: source.TypeText, Content: "a@b.com"})

	entries := observed.FilterMessage("importing resume").All()
	require.Len(t, entries, 1)

	ctx := entries[0].ContextMap()
	_, err := uuid.Parse(ctx[logger.FieldImportID].(string))
	assert.NoError(t, err)
	assert.Equal(t, "text", ctx[logger.FieldSourceType])
}

func TestImportAllMergesInInputOrder(t *testing.T) {
	svc, parser := newService(t, zap.NewNop())

	p, err := svc.ImportAll(context.Background(), []source.Envelope{
		{Type: source.TypeText, Content: "Contact: first@example.com. 3 years experience with Go and Docker."},
		{Type: source.TypeJSON, Content: `{"basics": {"name": "Jane Doe", "email": "second@example.com"}, "skills": [{"keywords": ["docker", "Terraform"]}]}`},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, parser.calls)
	assert.Equal(t, "first@example.com", p.PersonalInfo.Email)
	assert.Equal(t, "Jane", p.PersonalInfo.FirstName)
	assert.Equal(t, 3.0, p.TotalYearsOfExperience)
	assert.Equal(t, []string{"Docker", "Go", "Terraform"}, p.Skills.Technical)
}

func TestImportAllStopsOnCancelledContext(t *testing.T) {
	svc, parser := newService(t, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, err := svc.ImportAll(ctx, []source.Envelope{
		{Type: source.TypeText, Content: "Contact: first@example.com."},
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, p)
	assert.Equal(t, 0, parser.calls)
}

func TestNewServiceDefaultsToDeterministicParser(t *testing.T) {
	svc := NewService(source.NewNormalizer(source.Options{}, nil), nil, nil)

	p := svc.Import(context.Background(), source.Envelope{Type: source.TypeText, Content: "mail me at x@y.io"})
	assert.Equal(t, "x@y.io", p.PersonalInfo.Email)
}
