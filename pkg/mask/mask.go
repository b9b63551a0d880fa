// Package mask hides credentials before they reach a log line.
package mask

import "strings"

const stars = "****"

// Username keeps the first and last two characters.
// Values of four characters or less are fully masked.
func Username(s string) string {
	if len(s) <= 4 {
		return stars
	}
	return s[:2] + stars + s[len(s)-2:]
}

// Password never reveals any character. An empty password stays empty so the
// log still shows whether one was set.
func Password(s string) string {
	if s == "" {
		return ""
	}
	return stars
}

// Email masks both the local part and the domain.
// "printer@example.com" becomes "pr****@ex****".
func Email(s string) string {
	if s == "" {
		return ""
	}

	local, domain, ok := strings.Cut(s, "@")
	if !ok {
		return Username(s)
	}

	return prefix(local) + "@" + prefix(domain)
}

func prefix(s string) string {
	if len(s) <= 2 {
		return stars
	}
	return s[:2] + stars
}
