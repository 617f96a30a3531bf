// Package textutil prepares untrusted file content for terminal display.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const DefaultTabWidth = 4

var formattingRuneLabels = map[rune]string{
	0x00AD: "⟪SHY⟫",
	0x200B: "⟪ZWSP⟫",
	0x200C: "⟪ZWNJ⟫",
	0x200D: "⟪ZWJ⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0xFEFF: "⟪BOM⟫",
}

// Sanitize replaces control characters and bidi/zero-width formatting runes
// so file content cannot inject terminal escape sequences or reorder what
// the user sees. Tabs survive; expand them separately.
func Sanitize(text string) string {
	clean := true
	for _, r := range text {
		if requiresSanitization(r) {
			clean = false
			break
		}
	}
	if clean {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\t':
			b.WriteRune(r)
		case isFormattingRune(r):
			b.WriteString(formattingRuneLabels[r])
		case r == '\n' || r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeRune is the single-rune form of Sanitize, for callers that track
// byte offsets into the original string while drawing. Tabs become a space
// since a lone cell cannot expand them.
func SanitizeRune(r rune) string {
	switch {
	case isFormattingRune(r):
		return formattingRuneLabels[r]
	case r == '\t', r == '\n', r == '\r':
		return " "
	case r < 0x20 || r == 0x7f:
		return "?"
	default:
		return string(r)
	}
}

func requiresSanitization(r rune) bool {
	if r == '\t' {
		return false
	}
	if isFormattingRune(r) {
		return true
	}
	return (r >= 0 && r < 0x20) || r == 0x7f
}

func isFormattingRune(r rune) bool {
	_, ok := formattingRuneLabels[r]
	return ok
}

// ExpandTabs replaces tab characters with spaces respecting terminal column
// width.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var b strings.Builder
	column := 0
	for _, r := range text {
		if r == '\t' {
			spaces := tabWidth - (column % tabWidth)
			for i := 0; i < spaces; i++ {
				b.WriteByte(' ')
			}
			column += spaces
			continue
		}
		b.WriteRune(r)
		column += runeCellWidth(r)
	}
	return b.String()
}

// DisplayWidth reports the printable width of text accounting for wide runes.
func DisplayWidth(text string) int {
	width := 0
	for _, r := range text {
		width += runeCellWidth(r)
	}
	return width
}

// TruncateToWidth cuts text so it fits in width terminal cells, appending an
// ellipsis when something was cut.
func TruncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(text) <= width {
		return text
	}
	var b strings.Builder
	used := 0
	for _, r := range text {
		w := runeCellWidth(r)
		if used+w > width-1 {
			break
		}
		b.WriteRune(r)
		used += w
	}
	b.WriteRune('…')
	return b.String()
}

func runeCellWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 1 {
		return 1
	}
	return w
}
