// Where: cli/internal/command/error_helpers.go
// What: Shared CLI error output.
// Why: Keep error lines and exit codes consistent across commands.
package command

import (
	"io"
)

// exitWithError prints an error message to the output writer and returns
// exit code 1 for CLI error handling.
func exitWithError(out io.Writer, err error) int {
	consoleUI(out).Error(err)
	return 1
}
