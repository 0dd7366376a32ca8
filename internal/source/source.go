// Package source turns a caller-supplied input envelope into either resume
// text or an already structured profile.
package source

import (
	"fmt"
	"strings"

	"github.com/spigell/resume-matcher/internal/resume"
)

// Type identifies the kind of content carried by an Envelope.
type Type string

const (
	TypePDF      Type = "pdf"
	TypeDocx     Type = "docx"
	TypeLinkedIn Type = "linkedin"
	TypeIndeed   Type = "indeed"
	TypeJSON     Type = "json"
	TypeText     Type = "text"
)

// Types lists every supported envelope type.
func Types() []Type {
	return []Type{TypePDF, TypeDocx, TypeLinkedIn, TypeIndeed, TypeJSON, TypeText}
}

// ParseType resolves a case-insensitive type name.
func ParseType(name string) (Type, error) {
	candidate := Type(strings.ToLower(strings.TrimSpace(name)))
	for _, t := range Types() {
		if t == candidate {
			return t, nil
		}
	}
	return "", fmt.Errorf("unsupported source type %q", name)
}

// Envelope is the raw input. Content is base64 for binary documents, a URL
// for external profile references and plain text otherwise.
type Envelope struct {
	Type    Type   `json:"type" validate:"required,oneof=pdf docx linkedin indeed json text"`
	Content string `json:"content" validate:"required"`
}

// Result is the outcome of normalising an Envelope. Exactly one of Text or
// Profile is meaningful: Profile is set when the input was already
// structured. Placeholder marks Text as a diagnostic message rather than
// resume content.
type Result struct {
	Text        string
	Profile     *resume.ParsedResumeData
	Placeholder bool
}

func textResult(text string) Result {
	return Result{Text: text}
}

func placeholderResult(message string) Result {
	return Result{Text: message, Placeholder: true}
}

func profileResult(p *resume.ParsedResumeData) Result {
	return Result{Profile: p}
}
