package output

import (
	"strings"

	"golang.org/x/text/width"
)

// Wrap re-flows text so that no line is wider than width display columns.
// Whitespace runs collapse to single spaces and words longer than width are
// broken. East Asian wide and fullwidth runes count as two columns.
func Wrap(text string, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0

	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		lineWidth = 0
	}

	for _, word := range words {
		ww := displayWidth(word)
		if lineWidth > 0 && lineWidth+1+ww <= width {
			line.WriteByte(' ')
			line.WriteString(word)
			lineWidth += 1 + ww
			continue
		}
		if lineWidth > 0 {
			flush()
		}
		for ww > width {
			head, rest := splitAtWidth(word, width)
			lines = append(lines, head)
			word = rest
			ww = displayWidth(word)
		}
		line.WriteString(word)
		lineWidth = ww
	}
	if lineWidth > 0 {
		flush()
	}
	return strings.Join(lines, "\n")
}

func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		n += runeWidth(r)
	}
	return n
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// splitAtWidth splits s after the longest prefix that fits in w columns.
// At least one rune is always consumed.
func splitAtWidth(s string, w int) (string, string) {
	n := 0
	for i, r := range s {
		rw := runeWidth(r)
		if n+rw > w && i > 0 {
			return s[:i], s[i:]
		}
		n += rw
	}
	return s, ""
}
