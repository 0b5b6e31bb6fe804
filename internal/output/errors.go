package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// CLIError represents a structured CLI error with remediation hints.
type CLIError struct {
	Message string // What failed
	Cause   string // Why it failed (optional)
	Hint    string // Fastest command/action to fix it (optional)
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// NewCLIError creates a new CLI error with just a message.
func NewCLIError(msg string) *CLIError {
	return &CLIError{Message: msg}
}

// WithCause adds a cause to the error.
func (e *CLIError) WithCause(cause string) *CLIError {
	e.Cause = cause
	return e
}

// WithHint adds a remediation hint to the error.
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}

func isStderrTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// FormatCLIError formats a CLIError for terminal output with colors.
// Returns plain text if stderr is not a terminal or NO_COLOR is set.
func FormatCLIError(e *CLIError) string {
	useColor := isStderrTerminal() && os.Getenv("NO_COLOR") == ""

	var sb strings.Builder

	if useColor {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
		causeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

		sb.WriteString(errorStyle.Render("Error: "))
		sb.WriteString(e.Message)
		sb.WriteString("\n")
		if e.Cause != "" {
			sb.WriteString(causeStyle.Render("  Cause: " + e.Cause))
			sb.WriteString("\n")
		}
		if e.Hint != "" {
			sb.WriteString(hintStyle.Render("  Hint: " + e.Hint))
			sb.WriteString("\n")
		}
		return sb.String()
	}

	fmt.Fprintf(&sb, "Error: %s\n", e.Message)
	if e.Cause != "" {
		fmt.Fprintf(&sb, "  Cause: %s\n", e.Cause)
	}
	if e.Hint != "" {
		fmt.Fprintf(&sb, "  Hint: %s\n", e.Hint)
	}
	return sb.String()
}

// PrintError writes a formatted error to stderr.
func PrintError(err error) {
	if cliErr, ok := err.(*CLIError); ok {
		fmt.Fprint(os.Stderr, FormatCLIError(cliErr))
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
