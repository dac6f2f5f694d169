package render

import "strings"

const (
	previewEllipsis    = "..."
	previewPlaceholder = "Click to view details"
	undocumentedNote   = "No README entry yet"
)

// Preview returns the first non-blank line of description that is not a
// heading, cut to limit runes. A limit of zero disables truncation.
func Preview(description string, limit int) string {
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		runes := []rune(line)
		if limit > 0 && len(runes) > limit {
			return string(runes[:limit]) + previewEllipsis
		}
		return line
	}
	return ""
}
