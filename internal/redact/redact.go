// Package redact provides utilities for scrubbing sensitive information from
// strings before they are logged. Errors bubbling up from the store layer can
// embed connection strings, SQL fragments, or tokens; nothing from this
// package's output is ever returned to API clients, but even log lines should
// not carry raw credentials.
package redact

import "regexp"

// Redaction placeholders
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
)

var (
	// Database connection strings with embedded credentials
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// Password-style key/value fragments
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`)

	// JWT tokens: three base64url segments, first two starting with eyJ
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// SQL statement fragments leaking schema details
	sqlRegex = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE)[\s\w,*()]+(?:FROM|INTO|SET)[\s\w,*()='"$]+`,
	)
)

// String scrubs sensitive fragments from s.
func String(s string) string {
	s = dbConnRegex.ReplaceAllString(s, CredentialPlaceholder+"@")
	s = passwordRegex.ReplaceAllString(s, "$1$2"+CredentialPlaceholder)
	s = jwtTokenRegex.ReplaceAllString(s, TokenPlaceholder)
	s = sqlRegex.ReplaceAllString(s, SQLPlaceholder)
	return s
}

// Error scrubs sensitive fragments from an error's message.
// Returns the empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
