package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	// Push state colors
	Running   = color.New(color.FgCyan)
	Succeeded = color.New(color.FgGreen)
	Rejected  = color.New(color.FgRed, color.Bold)
	Failed    = color.New(color.FgRed)

	// Message colors
	Success = color.New(color.FgGreen)
	Warning = color.New(color.FgYellow)
	Error   = color.New(color.FgRed)
	Info    = color.New(color.FgCyan)
	Dim     = color.New(color.Faint)

	// Structural colors
	Remote = color.New(color.FgBlue, color.Bold)
)

// NoColor disables color output
func NoColor() {
	color.NoColor = true
}

// StateColor returns the color for a push state name
func StateColor(state string) *color.Color {
	switch state {
	case "running":
		return Running
	case "succeeded":
		return Succeeded
	case "rejected":
		return Rejected
	case "failed":
		return Failed
	default:
		return color.New(color.Reset)
	}
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	Success.Printf("✓ "+format+"\n", args...)
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	Error.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	Warning.Printf("⚠ "+format+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	Info.Printf("→ "+format+"\n", args...)
}

// FormatState formats a push state with its color
func FormatState(state string) string {
	return StateColor(state).Sprintf("[%s]", state)
}

// PrintState writes a push state tag followed by a message
func PrintState(w io.Writer, state, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s "+format+"\n", append([]interface{}{FormatState(state)}, args...)...)
}

// FormatRemote formats a remote as "name -> url"
func FormatRemote(name, url string) string {
	return Remote.Sprint(name) + " -> " + url
}

// FormatRejected highlights a rejected ref line
func FormatRejected(line string) string {
	return Rejected.Sprint(line)
}

// StreamLine writes one informational line of git output, dimmed
func StreamLine(w io.Writer, line string) {
	fmt.Fprintln(w, Dim.Sprint(line))
}
