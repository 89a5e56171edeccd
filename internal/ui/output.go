package ui

import (
	"fmt"
	"io"
	"os"
)

// ErrOut receives error and warning lines.
var ErrOut io.Writer = os.Stderr

// RunErrorCount and RunWarningCount track errors/warnings during a run.
var RunErrorCount int
var RunWarningCount int

// PrintSuccess prints a success message.
func PrintSuccess(msg string) {
	fmt.Fprintf(Out, "%s%s%s %s\n", ColorGreen, SymbolCheck, ColorReset, msg)
}

// PrintError prints an error message to stderr and increments the error counter.
func PrintError(msg string) {
	RunErrorCount++
	fmt.Fprintf(ErrOut, "%s%s%s %s\n", ColorRed, SymbolCross, ColorReset, msg)
}

// PrintInfo prints an info message.
func PrintInfo(msg string) {
	fmt.Fprintf(Out, "%s%s%s %s\n", ColorBlue, SymbolInfo, ColorReset, msg)
}

// PrintWarning prints a warning message to stderr and increments the warning counter.
func PrintWarning(msg string) {
	RunWarningCount++
	fmt.Fprintf(ErrOut, "%s%s%s %s\n", ColorYellow, SymbolWarning, ColorReset, msg)
}
