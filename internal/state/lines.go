package state

import "strings"

// meaningfulWindow is how many trailing content lines are considered for
// pattern matching. Box-drawing separators and blank lines never count
// toward the window.
const meaningfulWindow = 30

// IsSeparatorLine reports whether a line consists entirely of characters
// from the Unicode box-drawing block (U+2500..U+257F), as used by the
// Claude Code UI for horizontal rules. The empty string is a separator,
// so blank lines are always skipped by callers.
func IsSeparatorLine(line string) bool {
	for _, r := range line {
		if r < '─' || r > '╿' {
			return false
		}
	}
	return true
}

// lastMeaningfulLines returns the last n lines that carry content,
// preserving their original order. Blank and separator lines are skipped
// and do not count toward n.
func lastMeaningfulLines(lines []string, n int) []string {
	var kept []string
	for i := len(lines) - 1; i >= 0 && len(kept) < n; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || IsSeparatorLine(trimmed) {
			continue
		}
		kept = append(kept, lines[i])
	}

	// Collected tail-first; restore forward order.
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return kept
}
