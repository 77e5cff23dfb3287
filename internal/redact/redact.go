// Package redact strips sensitive information from strings before they are
// logged or surfaced in error responses. Error messages routinely carry
// connection strings, SQL fragments, emails, or tokens that must never reach
// a client or a log aggregator.
package redact

import "regexp"

// Redaction placeholders, one per pattern class.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	PathPlaceholder       = "[REDACTED_PATH]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

var rules = []rule{
	// Database connection strings with embedded credentials.
	{regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`), CredentialPlaceholder},

	// Password-looking key/value pairs.
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`), CredentialPlaceholder},

	// JWTs: three base64url segments, the first two starting with the
	// standard {"... header prefix.
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), TokenPlaceholder},

	// Email addresses.
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), EmailPlaceholder},

	// SQL statements leaked from driver errors.
	{regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE)(?:[\s\w,*()='"$-]+)?`), SQLPlaceholder},

	// Filesystem paths.
	{regexp.MustCompile(`(/[\w.-]+){2,}`), PathPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
