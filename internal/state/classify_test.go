package state

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected SessionState
	}{
		{
			name: "idle with prompt only",
			content: "Some output\n" +
				"───────────────────────────────────────\n" +
				"❯\n" +
				"───────────────────────────────────────",
			expected: StateIdle,
		},
		{
			name: "idle with completion suggestion",
			content: "Some output\n" +
				"───────────────────────────────────────\n" +
				"❯ Try \"edit file.go to...\"\n" +
				"───────────────────────────────────────",
			expected: StateIdle,
		},
		{
			name:     "working with trailing timer",
			content:  "Some output\n✢ Clauding… (esc to interrupt · 1m 45s · ↓ 1.2k tokens)",
			expected: StateWorking,
		},
		{
			name:     "working with single unit timer",
			content:  "Some output\n✽ Moseying… (esc to interrupt · 30s · ↓ 500 tokens)",
			expected: StateWorking,
		},
		{
			name:     "working with thinking spinner",
			content:  "Some output\n✶ Thinking… (esc to interrupt · 2m 10s · ↓ 3k tokens)",
			expected: StateWorking,
		},
		{
			name:     "working with leading timer",
			content:  "Some output\n✢ Reticulating… (1m 52s · ↓ 11.5k tokens · thought for 7s)",
			expected: StateWorking,
		},
		{
			name: "working with interrupt hint at end of footer line",
			content: "Some output\n" +
				"✶ Proofing… (thinking)\n" +
				"───────────────────────────────────────\n" +
				"❯\n" +
				"───────────────────────────────────────\n" +
				"  4 files +20 -0 · esc to interrupt",
			expected: StateWorking,
		},
		{
			name:     "working with middle dot lead glyph",
			content:  "Some output\n· Jitterbugging… (esc to interrupt · 1m 8s · ↓ 3.6k tokens · thinking)",
			expected: StateWorking,
		},
		{
			name:     "working with ctrl+c interrupt and no timer",
			content:  "Some output\n✻ Thinking… (ctrl+c to interrupt)",
			expected: StateWorking,
		},
		{
			name:     "working with esc interrupt and no timer",
			content:  "Some output\n✻ Processing… (esc to interrupt)",
			expected: StateWorking,
		},
		{
			name:     "working with bare thinking parenthetical",
			content:  "Some output\n✻ Doing… (thinking)",
			expected: StateWorking,
		},
		{
			name:     "working with thought-for and no middle dot",
			content:  "Some output\n✻ Seasoning… (thought for 2s)",
			expected: StateWorking,
		},
		{
			name:     "quoted interrupt hint does not mean working",
			content:  "Some output about \"esc to interrupt\" in quotes\n❯ ",
			expected: StateIdle,
		},
		{
			name: "indented quoted status line does not mean working",
			content: "⏺ 現在の内容は：\n" +
				"  ✻ Galloping… (esc to interrupt · 1m 19s · ↓ 5.9k tokens · thinking)\n" +
				"\n" +
				"✻ Cooked for 1m 29s\n" +
				"\n" +
				"───────────────────────────────────────\n" +
				"❯\n" +
				"───────────────────────────────────────",
			expected: StateIdle,
		},
		{
			name:     "waiting with permission prompt",
			content:  "Some output\nYes, allow once\nYes, allow always",
			expected: StateWaitingForApproval,
		},
		{
			name:     "waiting with confirmation prompt",
			content:  "Some output\nContinue? (Y/n)",
			expected: StateWaitingForApproval,
		},
		{
			name: "idle after task completion",
			content: "Some output\n" +
				"✻ Cooked for 43s\n" +
				"───────────────────────────────────────\n" +
				"❯ ",
			expected: StateIdle,
		},
		{
			name: "idle after completion with file change summary",
			content: "⏺ Window 10 is now Idle (accept edits), Window 11 shows Running (4m 48s) correctly.\n" +
				"\n" +
				"✻ Sautéed for 2m 55s\n" +
				"\n" +
				"! make install\n" +
				"  ⎿  go install completed\n" +
				"\n" +
				"───────────────────────────────────────\n" +
				"❯\n" +
				"───────────────────────────────────────\n" +
				"  4 files +73 -3",
			expected: StateIdle,
		},
		{
			name: "idle with plan mode footer",
			content: "Some output\n" +
				"⏸ plan mode on\n" +
				"───────────────────────────────────────\n" +
				"❯\n" +
				"───────────────────────────────────────",
			expected: StateIdle,
		},
		{
			name: "idle with accept edits footer",
			content: "Some output\n" +
				"⏵⏵ accept edits on\n" +
				"───────────────────────────────────────\n" +
				"❯\n" +
				"───────────────────────────────────────",
			expected: StateIdle,
		},
		{
			name: "waiting in interview mode",
			content: "  3. ドキュメントのレビュー\n" +
				"  4. Issue の修正\n" +
				"  5. Type something.\n" +
				"  Chat about this\n" +
				"  Skip interview and plan immediately\n" +
				"Enter to select · ↑/↓ to navigate · Esc to cancel",
			expected: StateWaitingForApproval,
		},
		{
			name: "working with japanese status and todo list",
			content: "· importパスを更新中… (esc to interrupt · ctrl+t to hide todos · 1m 32s · ↑ 3.4k tokens · thinking)\n" +
				"  ⎿  ☒ go.mod のモジュール名を変更\n" +
				"     ☐ 全ファイルのimportパスを更新\n" +
				"\n" +
				"───────────────────────────────────────\n" +
				"❯\n" +
				"───────────────────────────────────────",
			expected: StateWorking,
		},
		{
			name: "idle with trust dialog scrolled into history",
			content: " /home/user/projects/myapp\n" +
				"\n" +
				" Claude Code may read, write, or execute files contained in this directory.\n" +
				"\n" +
				" ❯ 1. Yes, proceed\n" +
				"   2. No, exit\n" +
				"\n" +
				" Enter to confirm · Esc to cancel\n" +
				"\n" +
				"───────────────────────────────────────\n" +
				"❯ Try \"fix typecheck errors\"\n" +
				"───────────────────────────────────────\n" +
				"  ? for shortcuts",
			expected: StateIdle,
		},
		{
			name: "idle with quoted waiting phrase in history",
			content: "⏺ Some output about \"Do you want to proceed?\"\n" +
				"\n" +
				"✻ Churned for 3m 5s\n" +
				"\n" +
				"───────────────────────────────────────\n" +
				"❯\n" +
				"───────────────────────────────────────\n" +
				"  4 files +42 -0",
			expected: StateIdle,
		},
		{
			name: "waiting on bash command confirmation dialog",
			content: "⏺ Bash(grep --help 2>/dev/null | head -10)\n" +
				"  ⎿  Running…\n" +
				"\n" +
				"───────────────────────────────────────\n" +
				" Bash command\n" +
				"\n" +
				"   grep --help 2>/dev/null | head -10\n" +
				"\n" +
				" Do you want to proceed?\n" +
				" ❯ 1. Yes\n" +
				"   2. Yes, and don't ask again for grep commands\n" +
				"   3. No\n" +
				"\n" +
				" Esc to cancel · Tab to amend · ctrl+e to explain",
			expected: StateWaitingForApproval,
		},
		{
			name: "working with spaces in action text",
			content: "      219 + export function createUserHandler(): UserHandler<UserArgs> {\n" +
				"\n" +
				"✶ Adding handler types and functions to handlers.ts… (ctrl+c to interrupt · ctrl+t to hide todos · 3m 27s · ↑ 11.0k tokens)\n" +
				"  ⎿  ☐ Add handler types and functions to handlers.ts\n" +
				"\n" +
				"───────────────────────────────────────\n" +
				"❯\n" +
				"───────────────────────────────────────\n" +
				"  ⏵⏵ accept edits on (shift+tab to cycle)",
			expected: StateWorking,
		},
		{
			name: "working while spinning in plan mode",
			content: "⏺ Understanding the feature request.\n" +
				"\n" +
				"✻ Spinning… (ctrl+c to interrupt)\n" +
				"  ⎿  Tip: Type 'ultrathink' in your message to enable thinking for just that turn\n" +
				"\n" +
				"───────────────────────────────────────\n" +
				"❯\n" +
				"───────────────────────────────────────\n" +
				"  ⏸ plan mode on (shift+tab to cycle)",
			expected: StateWorking,
		},
		{
			name: "working with interrupt hint in running footer",
			content: "⏺ Some output here.\n" +
				"\n" +
				"✻ Cooked for 40s\n" +
				"\n" +
				"❯ Previous user input\n" +
				"\n" +
				"✳ Thinking…\n" +
				"  ⎿  ◻ Task 1\n" +
				"\n" +
				"───────────────────────────────────────\n" +
				"❯\n" +
				"───────────────────────────────────────\n" +
				"  some-command --help 2>/d… (running) · 2 files +0 -0 · esc to interrupt · ctrl+t to hide tasks",
			expected: StateWorking,
		},
		{
			name:     "unrecognized output falls back to idle",
			content:  "Some random output\nwithout any recognizable pattern",
			expected: StateIdle,
		},
		{
			name:     "empty content falls back to idle",
			content:  "",
			expected: StateIdle,
		},
		{
			name:     "cursor on No is waiting not idle",
			content:  "Do you want to proceed?\n  Yes\n❯ No",
			expected: StateWaitingForApproval,
		},
		{
			name:     "numbered menu under cursor is waiting not idle",
			content:  "Do you want to proceed?\n❯ 1. Yes\n  2. No",
			expected: StateWaitingForApproval,
		},
		{
			name: "idle with vim footer and stale waiting phrase in history",
			content: "❯ Proceed?\n" +
				"  ⎿  Interrupted · What should Claude do instead?\n" +
				"\n" +
				"──────────────────────────────────────────\n" +
				"❯ \n" +
				"──────────────────────────────────────────\n" +
				"  [Opus 4.6] Context: 0%",
			expected: StateIdle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.content); got != tt.expected {
				t.Errorf("Detect(%q) = %v, want %v", tt.content, got, tt.expected)
			}
		})
	}
}

// Detect is a pure function: same capture in, same state out.
func TestDetectIsDeterministic(t *testing.T) {
	inputs := []string{
		"",
		"✢ Clauding… (esc to interrupt · 1m 45s · ↓ 1.2k tokens)",
		"Continue? (Y/n)",
		"───\n❯\n───",
		"\x00\xff garbage \x1b[2J",
	}

	for _, in := range inputs {
		first := Detect(in)
		for i := 0; i < 3; i++ {
			if got := Detect(in); got != first {
				t.Errorf("Detect(%q) unstable: %v then %v", in, first, got)
			}
		}
	}
}

// Every input maps to one of the three producible states; the reserved
// states never surface.
func TestDetectNeverReturnsReservedStates(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"❯",
		"✻ Thinking… (ctrl+c to interrupt)",
		"Do you trust this folder?",
		"───────\n\n───────",
	}

	for _, in := range inputs {
		switch got := Detect(in); got {
		case StateWorking, StateWaitingForApproval, StateIdle:
		default:
			t.Errorf("Detect(%q) = %v, want one of working/waiting_for_approval/idle", in, got)
		}
	}
}
