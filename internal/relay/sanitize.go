package relay

import "strings"

// sanitizeReplacer escapes the characters that would break plain-text
// rendering of envelopes on a web client.
var sanitizeReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// Sanitize escapes HTML-sensitive characters and trims surrounding
// whitespace. It is idempotent on input without special characters; raw
// untrusted input is never stored or echoed.
func Sanitize(input string) string {
	return strings.TrimSpace(sanitizeReplacer.Replace(input))
}

// NormalizeUsername trims surrounding whitespace. Usernames are matched, not
// rendered, so no escaping is applied.
func NormalizeUsername(input string) string {
	return strings.TrimSpace(input)
}
