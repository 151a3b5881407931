package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldCandidateID is the structured log field key for a candidate identifier.
	FieldCandidateID = "candidate_id"
	// FieldCID is the structured log field key for a company identifier.
	FieldCID = "cid"
	// FieldJobTitle is the structured log field key for a vacancy job title.
	FieldJobTitle = "job_title"
	// FieldSheet is the structured log field key for a workbook sheet name.
	FieldSheet = "sheet"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the provided fields to the logger.
// A nil logger is replaced with a no-op one.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// PairFields describes a candidate and vacancy pairing. Empty values are left out.
func PairFields(candidateID, cid, jobTitle string) []zap.Field {
	return StringFields(
		StringField{Key: FieldCandidateID, Value: candidateID},
		StringField{Key: FieldCID, Value: cid},
		StringField{Key: FieldJobTitle, Value: jobTitle},
	)
}

// WithSheet attaches the sheet name to the logger.
func WithSheet(logger *zap.Logger, sheet string) *zap.Logger {
	return WithFields(logger, StringFields(StringField{Key: FieldSheet, Value: sheet})...)
}
