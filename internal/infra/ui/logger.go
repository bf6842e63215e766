// Where: cli/internal/infra/ui/logger.go
// What: Diagnostic logger for stderr.
// Why: Keep resolution details out of stdout unless --verbose is set.
package ui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/poruru-code/sls-cli/internal/meta"
)

// NewDiagnosticLogger returns a logger at warn level, or debug when verbose.
func NewDiagnosticLogger(out io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(out, log.Options{
		Level:  level,
		Prefix: meta.Slug,
	})
}
