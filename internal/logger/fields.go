package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Keys shared by every package that logs about a model call or an import.
const (
	FieldProvider   = "ai_provider"
	FieldModel      = "ai_model"
	FieldImportID   = "import_id"
	FieldSourceType = "source_type"
)

// WithModel scopes a logger to one model of one provider.
func WithModel(log *zap.Logger, provider, model string) *zap.Logger {
	return scoped(log, FieldProvider, provider, FieldModel, model)
}

// WithImport scopes a logger to a single import run.
func WithImport(log *zap.Logger, importID, sourceType string) *zap.Logger {
	return scoped(log, FieldImportID, importID, FieldSourceType, sourceType)
}

// scoped attaches key/value pairs, skipping blank values. A nil logger
// becomes a no-op one.
func scoped(log *zap.Logger, pairs ...string) *zap.Logger {
	if log == nil {
		log = zap.NewNop()
	}

	fields := nonEmpty(pairs...)
	if len(fields) == 0 {
		return log
	}
	return log.With(fields...)
}

func nonEmpty(pairs ...string) []zap.Field {
	fields := make([]zap.Field, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if value := strings.TrimSpace(pairs[i+1]); value != "" {
			fields = append(fields, zap.String(pairs[i], value))
		}
	}
	return fields
}
