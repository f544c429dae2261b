package logging

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// redactedPlaceholder replaces any detected secret in log output.
const redactedPlaceholder = "[REDACTED]"

// sensitiveFieldNames are logrus field keys whose values are always redacted.
var sensitiveFieldNames = []string{
	"token", "access_token", "api_key", "apikey", "password", "secret", "authorization",
}

// sensitivePatterns match secrets embedded in free-form log messages:
// GitHub token prefixes, bearer headers, and key=value pairs with sensitive names.
var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:ghp|ghs|ghr|gho)_[A-Za-z0-9]{20,}`),
	regexp.MustCompile(`github_pat_[A-Za-z0-9_]{20,}`),
	regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._\-]+`),
	regexp.MustCompile(`(?i)(token|api[_-]?key|password|secret)=\S+`),
}

// RedactionHook scrubs sensitive data from log entries before they are written.
type RedactionHook struct{}

// NewRedactionHook creates a logrus hook that redacts tokens and secrets.
func NewRedactionHook() *RedactionHook {
	return &RedactionHook{}
}

// Levels returns all log levels; redaction applies everywhere.
func (h *RedactionHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire redacts the entry message and any sensitive field values in place.
func (h *RedactionHook) Fire(entry *logrus.Entry) error {
	entry.Message = RedactSensitive(entry.Message)

	for key, value := range entry.Data {
		if isSensitiveField(key) {
			entry.Data[key] = redactedPlaceholder
			continue
		}
		if s, ok := value.(string); ok {
			entry.Data[key] = RedactSensitive(s)
		}
	}

	return nil
}

// RedactSensitive replaces any secret-looking substrings in text.
// Redaction is irreversible; partial context (the key name) is preserved.
func RedactSensitive(text string) string {
	for _, pattern := range sensitivePatterns {
		text = pattern.ReplaceAllStringFunc(text, func(match string) string {
			// Keep the key name for key=value style matches so logs stay debuggable.
			if idx := strings.Index(match, "="); idx > 0 {
				return fmt.Sprintf("%s=%s", match[:idx], redactedPlaceholder)
			}
			return redactedPlaceholder
		})
	}
	return text
}

func isSensitiveField(key string) bool {
	lower := strings.ToLower(key)
	for _, name := range sensitiveFieldNames {
		if lower == name {
			return true
		}
	}
	return false
}
