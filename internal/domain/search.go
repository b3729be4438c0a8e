package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// FilterItems returns the subsequence of items whose name, category name,
// serial number or barcode contains the query case-insensitively. A blank
// query returns the input unchanged. Pure function: items is never mutated and
// original order is preserved.
func FilterItems(items []SessionItem, query string) []SessionItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}

	needle := strings.ToLower(query)
	var matched []SessionItem
	for _, item := range items {
		if itemMatches(item, needle) {
			matched = append(matched, item)
		}
	}
	return matched
}

// itemMatches checks a single item against a pre-lowercased needle
func itemMatches(item SessionItem, needle string) bool {
	for _, field := range []string{item.Name, item.CategoryName, item.SerialNumber, item.Barcode} {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// HighlightSpan is one segment of a highlighted string. Match marks segments
// that matched the query; concatenating all spans restores the original text.
type HighlightSpan struct {
	Match bool
	Text  string
}

// Highlight splits text into spans marking case-insensitive occurrences of
// query for display. The underlying text is never altered: span boundaries are
// mapped back onto the original string, so concatenating all spans restores it
// even when lowercasing changes a rune's encoded length. A blank query yields
// a single unmatched span.
func Highlight(text, query string) []HighlightSpan {
	query = strings.TrimSpace(query)
	if text == "" {
		return nil
	}
	if query == "" {
		return []HighlightSpan{{Text: text}}
	}

	lowered, starts := foldOffsets(text)
	needle := strings.ToLower(query)

	var spans []HighlightSpan
	pos, li := 0, 0
	for {
		i := strings.Index(lowered[li:], needle)
		if i < 0 {
			break
		}
		start := starts[li+i]
		end := starts[li+i+len(needle)]
		if start > pos {
			spans = append(spans, HighlightSpan{Text: text[pos:start]})
		}
		spans = append(spans, HighlightSpan{Match: true, Text: text[start:end]})
		pos = end
		li += i + len(needle)
	}
	if pos < len(text) || len(spans) == 0 {
		spans = append(spans, HighlightSpan{Text: text[pos:]})
	}
	return spans
}

// foldOffsets lowercases text rune by rune and records, for every byte of the
// lowered form, the starting offset of the originating rune in text. A
// trailing sentinel maps the end of the lowered form to len(text).
func foldOffsets(text string) (string, []int) {
	var b strings.Builder
	b.Grow(len(text))
	starts := make([]int, 0, len(text)+1)
	for i, r := range text {
		lr := unicode.ToLower(r)
		for j := 0; j < utf8.RuneLen(lr); j++ {
			starts = append(starts, i)
		}
		b.WriteRune(lr)
	}
	starts = append(starts, len(text))
	return b.String(), starts
}
