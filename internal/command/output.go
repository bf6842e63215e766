// Where: cli/internal/command/output.go
// What: Output helpers for command adapters.
// Why: Centralize console usage for command output.
package command

import (
	"io"

	"github.com/poruru-code/sls-cli/internal/infra/ui"
)

func consoleUI(out io.Writer) *ui.Console {
	return ui.New(out)
}
