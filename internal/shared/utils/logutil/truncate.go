package logutil

// TruncateForLog caps caller-supplied strings before they reach the log.
// It counts runes so multi-byte input is never split mid-character.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
