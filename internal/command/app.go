// Where: cli/internal/command/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package command

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/poruru-code/sls-cli/internal/infra/interaction"
	"github.com/poruru-code/sls-cli/internal/version"
)

// Dependencies holds all injected dependencies required for CLI command execution.
// Tests swap individual fields; nil fields fall back to real implementations
// where one exists.
type Dependencies struct {
	Out      io.Writer
	ErrOut   io.Writer
	In       *os.File
	Prompter interaction.Prompter
	Getwd    func() (string, error)
	Invoke   InvokeDeps
}

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	Config  string     `short:"c" name:"config" help:"Path to the service file (default: serverless.yml)"`
	EnvFile string     `name:"env-file" help:"Path to .env file"`
	Verbose bool       `short:"v" help:"Verbose diagnostic output on stderr"`
	Invoke  InvokeCmd  `cmd:"" help:"Invoke a deployed function"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

type VersionCmd struct{}

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	console := consoleUI(out)

	if len(args) == 0 {
		return runNoArgs(out)
	}

	cli := CLI{}
	parser, err := kong.New(&cli, kong.Name(cliName()))
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return handleParseError(err, out)
	}

	// Load environment file if provided or if .env exists in current directory
	if cli.EnvFile != "" {
		if err := godotenv.Load(cli.EnvFile); err != nil {
			console.Warn(fmt.Sprintf("Warning: failed to load env file %s: %v", cli.EnvFile, err))
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			console.Warn(fmt.Sprintf("Warning: failed to load .env: %v", err))
		}
	}

	if exitCode, handled := dispatchCommand(ctx.Command(), cli, deps, out); handled {
		return exitCode
	}

	console.Warn("unknown command")
	return 1
}

type commandHandler func(CLI, Dependencies, io.Writer) int

func dispatchCommand(command string, cli CLI, deps Dependencies, out io.Writer) (int, bool) {
	exactHandlers := map[string]commandHandler{
		"invoke":  runInvoke,
		"version": func(_ CLI, _ Dependencies, out io.Writer) int { return runVersion(out) },
	}

	if handler, ok := exactHandlers[command]; ok {
		return handler(cli, deps, out), true
	}

	return 1, false
}

// runVersion prints the version information of the CLI.
func runVersion(out io.Writer) int {
	consoleUI(out).Info(version.GetVersion())
	return 0
}

// runNoArgs prints usage when the CLI is invoked without arguments.
func runNoArgs(out io.Writer) int {
	ui := consoleUI(out)
	cmd := cliName()
	ui.Info("Usage:")
	ui.Info(fmt.Sprintf("  %s invoke -f <function> [-d <data> | -p <path>] [-s <stage>] [-r <region>]", cmd))
	ui.Info("")
	ui.Info(fmt.Sprintf("Try: %s invoke --help", cmd))
	return 0
}

// handleParseError provides user-friendly error messages for parse failures.
func handleParseError(err error, out io.Writer) int {
	msg := err.Error()
	if strings.Contains(msg, "expected string value") {
		ui := consoleUI(out)
		cmd := cliName()
		switch {
		case strings.Contains(msg, "--function"):
			ui.Warn("`-f/--function` expects a value. Provide a function name or omit the flag for interactive selection.")
			ui.Info(fmt.Sprintf("Example: %s invoke -f hello", cmd))
			return 1
		case strings.Contains(msg, "--data"):
			ui.Warn("`-d/--data` expects a value. Provide JSON or plain text.")
			ui.Info(fmt.Sprintf(`Example: %s invoke -f hello -d '{"name":"world"}'`, cmd))
			return 1
		case strings.Contains(msg, "--path"):
			ui.Warn("`-p/--path` expects a value. Provide a file path or s3://bucket/key.")
			ui.Info(fmt.Sprintf("Example: %s invoke -f hello -p event.json", cmd))
			return 1
		case strings.Contains(msg, "--env-file"):
			ui.Warn("`--env-file` expects a value. Provide a file path.")
			ui.Info(fmt.Sprintf("Example: %s --env-file .env.prod invoke -f hello", cmd))
			return 1
		}
	}
	return exitWithError(out, err)
}
