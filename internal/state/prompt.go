package state

import "strings"

// isPromptLine reports whether the pane is sitting at an idle input
// prompt. Unlike the window-based rules it scans the full raw line
// sequence, because the prompt lives below the separator chrome that the
// meaningful window strips.
//
// Scanning runs from the end backwards, skipping blanks, separators, and
// known footer noise: the shortcut hint, keybinding hints, the file
// change summary, and the model/context status line. The first line that
// survives the skip decides the answer; nothing further back is
// consulted.
func isPromptLine(p *registry, lines []string) bool {
	for i := len(lines) - 1; i >= 0; i-- {
		trimmed := strings.TrimSpace(lines[i])

		if trimmed == "" || IsSeparatorLine(trimmed) {
			continue
		}
		if strings.Contains(trimmed, "? for shortcuts") ||
			strings.Contains(trimmed, "ctrl+") ||
			strings.Contains(trimmed, "shift+") ||
			p.fileChanges.MatchString(trimmed) ||
			p.contextFooter.MatchString(trimmed) {
			continue
		}

		if !strings.HasPrefix(trimmed, promptSymbol) {
			return false
		}

		// "❯ 1. Yes" is a selection menu under the cursor, and an exact
		// "❯ Yes"/"❯ No" is a confirmation dialog. Neither is an idle
		// prompt.
		if p.selectionMenu.MatchString(trimmed) {
			return false
		}
		for _, pat := range waitingPatterns {
			if strings.HasPrefix(pat, promptSymbol) && trimmed == pat {
				return false
			}
		}
		return true
	}
	return false
}
