package snapshot

import "strings"

// CleanHeader removes common export artifacts from a header cell:
//   - surrounding whitespace
//   - Excel formula wrapping (="Name")
//   - surrounding quotes
func CleanHeader(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") && len(s) >= 3 {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

// cleanHeaders applies CleanHeader to every cell of a header row.
func cleanHeaders(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = CleanHeader(h)
	}
	return out
}
