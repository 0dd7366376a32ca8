package cmd

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spigell/resume-matcher/internal/source"
)

var validate = validator.New()

// parseInputSpec splits "[type:]location" into a source type and location.
// Without an explicit type it is inferred from the URL host or the file
// extension.
func parseInputSpec(spec string) (source.Type, string, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "", "", fmt.Errorf("empty input")
	}

	if prefix, rest, ok := strings.Cut(spec, ":"); ok {
		if t, err := source.ParseType(prefix); err == nil {
			return t, strings.TrimSpace(rest), nil
		}
	}

	if isURL(spec) {
		t, err := typeFromURL(spec)
		return t, spec, err
	}

	return typeFromPath(spec), spec, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func typeFromURL(raw string) (source.Type, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse input url: %w", err)
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com"):
		return source.TypeLinkedIn, nil
	case host == "indeed.com" || strings.HasSuffix(host, ".indeed.com"):
		return source.TypeIndeed, nil
	default:
		return "", fmt.Errorf("cannot infer profile type for %q, prefix it with linkedin: or indeed:", raw)
	}
}

func typeFromPath(path string) source.Type {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return source.TypePDF
	case ".docx":
		return source.TypeDocx
	case ".json":
		return source.TypeJSON
	default:
		return source.TypeText
	}
}

// buildEnvelope reads the input and encodes it for its source type.
func buildEnvelope(spec string) (source.Envelope, error) {
	t, location, err := parseInputSpec(spec)
	if err != nil {
		return source.Envelope{}, err
	}

	env := source.Envelope{Type: t}
	switch t {
	case source.TypeLinkedIn, source.TypeIndeed:
		env.Content = location
	default:
		data, err := os.ReadFile(location)
		if err != nil {
			return source.Envelope{}, fmt.Errorf("reading input %q: %w", location, err)
		}
		if t == source.TypePDF || t == source.TypeDocx {
			env.Content = base64.StdEncoding.EncodeToString(data)
		} else {
			env.Content = string(data)
		}
	}

	if err := validate.Struct(env); err != nil {
		return source.Envelope{}, fmt.Errorf("invalid input %q: %w", spec, err)
	}

	return env, nil
}

func buildEnvelopes(specs []string) ([]source.Envelope, error) {
	envs := make([]source.Envelope, 0, len(specs))
	for _, spec := range specs {
		env, err := buildEnvelope(spec)
		if err != nil {
			return nil, err
		}
		envs = append(envs, env)
	}
	return envs, nil
}
