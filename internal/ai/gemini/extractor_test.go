package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-matcher/internal/extract"
	"github.com/spigell/resume-matcher/internal/logger"
)

type stubGenerator struct {
	response    string
	err         error
	lastPrompt  string
	hadDeadline bool
	block       bool
}

func (s *stubGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	_, s.hadDeadline = ctx.Deadline()
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

const modelResponse = "Sure, here is the profile:\n```json\n" + `{
  "personalInfo": {"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com"},
  "summary": "Analytical engine programmer",
  "totalYearsOfExperience": "6",
  "experience": [
    {"company": "Babbage & Co", "position": "Engineer", "startDate": "2019-01", "endDate": "current", "isCurrent": false, "highlights": []}
  ],
  "skills": {"technical": ["Go", "Python"], "soft": ["Writing"], "languages": ["English"], "tools": []}
}` + "\n```"

func TestExtractorExtract(t *testing.T) {
	stub := &stubGenerator{response: modelResponse}
	e := NewExtractor(stub, zap.NewNop(), 0, 0)

	p, err := e.Extract(context.Background(), "  Ada Lovelace resume text  ")
	require.NoError(t, err)

	assert.True(t, stub.hadDeadline)
	assert.Contains(t, stub.lastPrompt, "Ada Lovelace resume text\n\nJSON Response:")
	assert.NotContains(t, stub.lastPrompt, "{{RESUME_TEXT}}")

	assert.Equal(t, "Ada", p.PersonalInfo.FirstName)
	assert.Equal(t, 6.0, p.TotalYearsOfExperience)
	require.Len(t, p.Experience, 1)
	assert.Equal(t, "Present", p.Experience[0].EndDate)
	assert.True(t, p.Experience[0].IsCurrent)
	assert.NotEmpty(t, p.Experience[0].Duration)
	assert.Equal(t, []string{"English"}, p.Skills.Languages)
	assert.Equal(t, []string{}, p.Skills.Tools)
	assert.NotNil(t, p.Certifications)
}

func TestExtractorName(t *testing.T) {
	var e extract.Extractor = NewExtractor(&stubGenerator{}, nil, 0, 0)
	assert.Equal(t, "gemini", e.Name())
}

func TestExtractorLogsWithModelFields(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	stub := &stubGenerator{response: `{"skills": {"technical": "Go"}}`}

	_, err := NewExtractor(stub, zap.New(core), time.Second, 10).Extract(context.Background(), "text")
	require.NoError(t, err)

	requests := observed.FilterMessage("gemini generate content request").All()
	require.Len(t, requests, 1)
	ctx := requests[0].ContextMap()
	assert.Equal(t, "gemini", ctx[logger.FieldProvider])
	assert.Equal(t, "stub-model", ctx[logger.FieldModel])
	assert.True(t, strings.HasSuffix(ctx["prompt_preview"].(string), "..."))

	assert.Equal(t, 1, observed.FilterMessage("gemini response deviates from profile schema, coercing").Len())
}

func TestExtractorErrors(t *testing.T) {
	tests := []struct {
		name   string
		stub   *stubGenerator
		target error
	}{
		{name: "generator error", stub: &stubGenerator{err: errors.New("rate limited")}},
		{name: "no json", stub: &stubGenerator{response: "I could not parse this resume."}, target: ErrNoJSON},
		{name: "truncated json", stub: &stubGenerator{response: `{"summary": "cut off`}, target: ErrNoJSON},
		{name: "malformed json", stub: &stubGenerator{response: `{"summary": }`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewExtractor(tt.stub, zap.NewNop(), time.Second, 0).Extract(context.Background(), "text")
			require.Error(t, err)
			assert.Nil(t, p)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestExtractorKeepsWellFormedFieldsOfMixedResponse(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	stub := &stubGenerator{response: `{
  "personalInfo": {"firstName": "Ann", "email": "ann@x.io", "location": {"city": "Berlin"}},
  "summary": "Platform engineer",
  "totalYearsOfExperience": "6+",
  "experience": [{"company": "Acme", "startDate": "2019-01", "endDate": "2021-01"}, "freelance"],
  "skills": ["Go", "SQL"],
  "certifications": ["AWS Solutions Architect", {"name": "CKA", "issuer": "CNCF"}],
  "projects": ["resume-matcher"],
  "awards": ["Hackathon winner"]
}`}

	p, err := NewExtractor(stub, zap.New(core), time.Second, 0).Extract(context.Background(), "text")
	require.NoError(t, err)

	assert.Equal(t, "Ann", p.PersonalInfo.FirstName)
	assert.Equal(t, "ann@x.io", p.PersonalInfo.Email)
	assert.Equal(t, "", p.PersonalInfo.Location)
	assert.Equal(t, "Platform engineer", p.Summary)
	assert.Equal(t, 6.0, p.TotalYearsOfExperience)
	require.Len(t, p.Experience, 1)
	assert.Equal(t, "Acme", p.Experience[0].Company)
	assert.Equal(t, []string{}, p.Skills.Technical)
	require.Len(t, p.Certifications, 2)
	assert.Equal(t, "AWS Solutions Architect", p.Certifications[0].Name)
	assert.Equal(t, "CNCF", p.Certifications[1].Issuer)
	require.Len(t, p.Projects, 1)
	assert.Equal(t, "resume-matcher", p.Projects[0].Name)
	assert.Equal(t, []string{}, p.Projects[0].Technologies)
	require.Len(t, p.Awards, 1)
	assert.Equal(t, "Hackathon winner", p.Awards[0].Name)

	reset := observed.FilterMessage("gemini response fields reset to defaults").All()
	require.Len(t, reset, 1)
	assert.ElementsMatch(t,
		[]any{"personalInfo.location", "experience[1]", "skills"},
		reset[0].ContextMap()["fields"],
	)
}

func TestExtractorTimeout(t *testing.T) {
	stub := &stubGenerator{block: true}

	_, err := NewExtractor(stub, zap.NewNop(), 10*time.Millisecond, 0).Extract(context.Background(), "text")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExtractorWithoutGenerator(t *testing.T) {
	_, err := NewExtractor(nil, nil, 0, 0).Extract(context.Background(), "text")
	assert.Error(t, err)
}

func TestFallbackRecoversFromModelFailure(t *testing.T) {
	stub := &stubGenerator{response: "not json"}
	fallback := extract.NewFallback(NewExtractor(stub, zap.NewNop(), time.Second, 0), zap.NewNop())

	p := fallback.Parse(context.Background(), "Contact: a@b.com. 5+ years experience with React and Node.js")

	assert.Equal(t, "a@b.com", p.PersonalInfo.Email)
	assert.Equal(t, 5.0, p.TotalYearsOfExperience)
	assert.Contains(t, p.Skills.Technical, "React")
}
