package config

import "strings"

// UndocumentedPolicy decides how day directories without a README entry are published.
type UndocumentedPolicy string

const (
	// UndocumentedOmit leaves the day out of the index and writes no page for it.
	UndocumentedOmit UndocumentedPolicy = "omit"
	// UndocumentedFlag publishes the day with a placeholder title and a visible flag.
	UndocumentedFlag UndocumentedPolicy = "flag"
)

// NormalizeUndocumentedPolicy returns the canonical policy or "" when unknown.
func NormalizeUndocumentedPolicy(raw string) UndocumentedPolicy {
	switch UndocumentedPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case UndocumentedOmit:
		return UndocumentedOmit
	case UndocumentedFlag:
		return UndocumentedFlag
	default:
		return ""
	}
}

// Highlighter selects how code files are highlighted.
type Highlighter string

const (
	// HighlighterPrism emits language classes for client-side Prism.js highlighting.
	HighlighterPrism Highlighter = "prism"
	// HighlighterChroma renders highlighted HTML at build time.
	HighlighterChroma Highlighter = "chroma"
)

// NormalizeHighlighter returns the canonical highlighter or "" when unknown.
func NormalizeHighlighter(raw string) Highlighter {
	switch Highlighter(strings.ToLower(strings.TrimSpace(raw))) {
	case HighlighterPrism:
		return HighlighterPrism
	case HighlighterChroma:
		return HighlighterChroma
	default:
		return ""
	}
}
