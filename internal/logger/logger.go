package logger

import (
	"github.com/fatih/color" // Colored console output for the different log levels
)

// Colorized printing functions for the log levels, as package-level variables
// that behave like fmt.Printf. Callers include their own level tag and newline,
// e.g. logger.Warn("[WARN] xrandr not found, skipping\n").

// Info logs informational messages in green.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn logs warning messages in bright magenta. Warnings are the normal
// outcome for best-effort tool calls that could not run; they never stop a
// mode sequence.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error logs error messages in red.
var Error = color.New(color.FgRed).PrintfFunc()

// Debug logs debug messages in cyan when enabled via Init. It defaults to a
// no-op so packages can emit debug output before the CLI has parsed --debug.
var Debug = func(format string, a ...any) {}

// Init enables or disables debug logging. Called once from the CLI's
// PersistentPreRun with the value of the --debug flag.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		Debug = func(format string, a ...any) {}
	}
}
