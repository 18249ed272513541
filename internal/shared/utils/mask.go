package utils

import "strings"

// MaskEmail hides the local part of an address for log lines, keeping the
// first rune and the domain: "ana.perez@example.mx" -> "a***@example.mx".
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(strings.TrimSpace(email), "@")
	if !ok || domain == "" {
		return "***"
	}
	for _, r := range local {
		return string(r) + "***@" + domain
	}
	return "***@" + domain
}
