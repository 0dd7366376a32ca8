package gemini

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeModels struct {
	resp      *genai.GenerateContentResponse
	err       error
	model     string
	contents  []*genai.Content
	configMIM string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	if config != nil {
		f.configMIM = config.ResponseMIMEType
	}
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{nil, {Content: content}}}
}

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	if _, err := NewGenerator(context.Background(), "   ", "", zap.NewNop()); err == nil {
		t.Fatalf("expected error for empty api key")
	}
}

func TestGeneratorGenerateContent(t *testing.T) {
	fake := &fakeModels{resp: textResponse(" {\"a\": ", "", "1} ")}
	g := &Generator{models: fake, modelName: "test-model", logger: zap.NewNop()}

	out, err := g.GenerateContent(context.Background(), "  hello  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "{\"a\":\n1}" {
		t.Fatalf("unexpected output: %q", out)
	}

	if fake.model != "test-model" {
		t.Fatalf("expected model to be forwarded, got %q", fake.model)
	}

	if fake.configMIM != jsonMIMEType {
		t.Fatalf("expected json response mime type, got %q", fake.configMIM)
	}

	if len(fake.contents) != 1 || fake.contents[0].Parts[0].Text != "hello" {
		t.Fatalf("expected trimmed prompt to be sent")
	}

	if g.Model() != "test-model" {
		t.Fatalf("unexpected model name %q", g.Model())
	}
}

func TestGeneratorGenerateContentErrors(t *testing.T) {
	tests := []struct {
		name   string
		fake   *fakeModels
		prompt string
	}{
		{name: "empty prompt", fake: &fakeModels{resp: textResponse("x")}, prompt: " "},
		{name: "api error", fake: &fakeModels{err: errors.New("quota")}, prompt: "p"},
		{name: "nil response", fake: &fakeModels{}, prompt: "p"},
		{name: "blank parts", fake: &fakeModels{resp: textResponse("  ")}, prompt: "p"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Generator{models: tt.fake, modelName: "m", logger: zap.NewNop()}
			if _, err := g.GenerateContent(context.Background(), tt.prompt); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	var nilGen *Generator
	if _, err := nilGen.GenerateContent(context.Background(), "p"); err == nil {
		t.Fatalf("expected error for nil generator")
	}
	if nilGen.Model() != "" {
		t.Fatalf("expected empty model for nil generator")
	}
}
