package internal

import (
	"github.com/hashicorp/go-hclog"
)

// NewLogger creates the diagnostic logger for a command.
// Only warnings and errors are emitted unless verbose is set.
func NewLogger(name string, verbose bool) hclog.Logger {
	level := hclog.Warn
	if verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  level,
		Output: Output,
	})
}
