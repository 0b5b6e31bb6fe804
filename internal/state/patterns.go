package state

import (
	"regexp"
	"strings"
	"sync"
)

// Status lines start with one of a small set of spinner glyphs. The
// middle dot doubles as a spinner frame, so it appears in the class too.
// The ❯ glyph marks the interactive input prompt.
const (
	leadSymbols  = "✢✽✶✻·"
	promptSymbol = "❯"
)

// waitingPatterns are literal substrings that identify permission and
// confirmation dialogs. Matching is case-sensitive containment against
// the joined meaningful window.
var waitingPatterns = []string{
	"Yes, allow once",
	"Yes, allow always",
	"Allow once",
	"Allow always",
	"❯ Yes",
	"❯ No",
	"Do you trust",
	"Run this command?",
	"Allow this MCP server",
	"Continue?",
	"Proceed?",
	"Do you want to proceed?",
	"(Y/n)",
	"(y/N)",
	"[Y/n]",
	"[y/N]",
}

// registry holds the compiled patterns for state detection. It is built
// once on first use and never mutated afterwards, so it is safe to share
// across goroutines without locking.
type registry struct {
	// Working: "✢ Clauding… (esc to interrupt · 1m 45s · ...)", elapsed
	// time after a middle dot inside the parentheses.
	trailingTimer *regexp.Regexp
	// Working: "✢ Reticulating… (1m 52s · ...)", elapsed time as the
	// first field of the parentheses.
	leadingTimer *regexp.Regexp
	// Working: "(esc to interrupt)" or "(ctrl+c to interrupt)" before
	// any timer has rendered.
	untimedInterrupt *regexp.Regexp
	// Working: "· esc to interrupt" at the tail of a wrapped status or
	// footer line that lost its lead glyph.
	interruptTail *regexp.Regexp
	// Working: lead glyph plus ellipsis with no parenthetical yet, e.g.
	// "✳ Thinking…". Anchored to line start so quoted or indented
	// reproductions do not match.
	genericSpinner *regexp.Regexp
	// Waiting: wizard footer "Enter to select · ↑/↓ to navigate · Esc to cancel".
	interview *regexp.Regexp
	// Waiting: "❯ 1. Yes" style numbered selection under the cursor.
	selectionMenu *regexp.Regexp
	// Idle: ❯ at the start of any line.
	idlePrompt *regexp.Regexp

	// Footer noise recognized by the prompt-line scan.
	fileChanges   *regexp.Regexp
	contextFooter *regexp.Regexp

	// rules is the classification cascade, evaluated top-down. First
	// match wins, so the order here is load-bearing: working patterns
	// outrank the prompt check, which outranks the waiting catalogue
	// (a stale "Proceed?" in scrollback must not override a live
	// prompt).
	rules []rule
}

// rule is one step of the cascade. match receives the joined meaningful
// window and the full raw line sequence; most rules only use the window.
type rule struct {
	name  string
	state SessionState
	match func(p *registry, window string, lines []string) bool
}

var (
	registryOnce sync.Once
	registryInst *registry
)

// patterns returns the process-wide pattern registry, compiling it on
// first use.
func patterns() *registry {
	registryOnce.Do(func() {
		p := &registry{
			trailingTimer:    regexp.MustCompile(`(?m)^[` + leadSymbols + `]\s+.+?…?\s*\([^)]*·\s*(?:\d+[smh]\s*)+`),
			leadingTimer:     regexp.MustCompile(`(?m)^[` + leadSymbols + `]\s+.+?…?\s*\((?:\d+[smh]\s*)+\s*·`),
			untimedInterrupt: regexp.MustCompile(`(?m)^[` + leadSymbols + `]\s+.+?…?\s*\((esc|ctrl\+c) to interrupt`),
			interruptTail:    regexp.MustCompile(`(?m)·\s*esc to interrupt(\s|·|$)`),
			genericSpinner:   regexp.MustCompile(`(?m)^[` + leadSymbols + `]\s+.+?…`),
			interview:        regexp.MustCompile(`Enter to select.*↑/↓ to navigate.*Esc to cancel`),
			selectionMenu:    regexp.MustCompile(promptSymbol + `\s+\d+\.`),
			idlePrompt:       regexp.MustCompile(`(?m)^\s*` + promptSymbol),
			fileChanges:      regexp.MustCompile(`^\s*\d+\s+files?\s+[+\-]`),
			contextFooter:    regexp.MustCompile(`^\s*\[[^\]]+\]\s+Context:`),
		}
		p.rules = []rule{
			{"working/trailing-timer", StateWorking, func(p *registry, w string, _ []string) bool {
				return p.trailingTimer.MatchString(w)
			}},
			{"working/leading-timer", StateWorking, func(p *registry, w string, _ []string) bool {
				return p.leadingTimer.MatchString(w)
			}},
			{"working/untimed-interrupt", StateWorking, func(p *registry, w string, _ []string) bool {
				return p.untimedInterrupt.MatchString(w)
			}},
			{"working/interrupt-tail", StateWorking, func(p *registry, w string, _ []string) bool {
				return p.interruptTail.MatchString(w)
			}},
			{"working/spinner", StateWorking, func(p *registry, w string, _ []string) bool {
				return p.genericSpinner.MatchString(w)
			}},
			{"idle/prompt-line", StateIdle, func(p *registry, _ string, lines []string) bool {
				return isPromptLine(p, lines)
			}},
			{"waiting/catalogue", StateWaitingForApproval, func(p *registry, w string, _ []string) bool {
				return containsWaitingPattern(w)
			}},
			{"waiting/interview", StateWaitingForApproval, func(p *registry, w string, _ []string) bool {
				return p.interview.MatchString(w)
			}},
			{"waiting/selection-menu", StateWaitingForApproval, func(p *registry, w string, _ []string) bool {
				return p.selectionMenu.MatchString(w)
			}},
			{"idle/prompt-anywhere", StateIdle, func(p *registry, w string, _ []string) bool {
				return p.idlePrompt.MatchString(w)
			}},
		}
		registryInst = p
	})
	return registryInst
}

func containsWaitingPattern(window string) bool {
	for _, pat := range waitingPatterns {
		if strings.Contains(window, pat) {
			return true
		}
	}
	return false
}
