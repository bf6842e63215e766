// Where: cli/internal/command/invoke_resolve.go
// What: Stage, region, profile, and function resolution for invoke.
// Why: Keep precedence rules in one testable place.
package command

import (
	"fmt"
	"os"
	"strings"

	"github.com/poruru-code/sls-cli/internal/domain/service"
	"github.com/poruru-code/sls-cli/internal/infra/config"
	"github.com/poruru-code/sls-cli/internal/infra/interaction"
	"github.com/poruru-code/sls-cli/internal/meta"
)

type invokeOptions struct {
	Stage   string
	Region  string
	Profile string
}

// resolveInvokeOptions applies flag > service file > user config > fallback.
// Region additionally consults AWS_REGION before the built-in default.
func resolveInvokeOptions(cmd InvokeCmd, p service.Provider, defaults config.Defaults, getenv func(string) string) invokeOptions {
	envRegion := ""
	if getenv != nil {
		envRegion = getenv("AWS_REGION")
	}
	return invokeOptions{
		Stage:   firstNonEmpty(cmd.Stage, p.Stage, defaults.Stage, meta.DefaultStage),
		Region:  firstNonEmpty(cmd.Region, p.Region, defaults.Region, envRegion, meta.DefaultRegion),
		Profile: firstNonEmpty(p.Profile, defaults.Profile),
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// resolveFunction returns the requested function key, prompting on a TTY
// when none was given.
func resolveFunction(flag string, svc service.Service, deps Dependencies) (string, error) {
	if name := strings.TrimSpace(flag); name != "" {
		return name, nil
	}

	in := deps.In
	if in == nil {
		in = os.Stdin
	}
	keys := svc.FunctionKeys()
	if deps.Prompter == nil || len(keys) == 0 || !interaction.IsTerminal(in) {
		return "", ErrFunctionRequired
	}

	options := make([]interaction.SelectOption, 0, len(keys))
	for _, key := range keys {
		label := key
		if handler := svc.Functions[key].Handler; handler != "" {
			label = fmt.Sprintf("%s (%s)", key, handler)
		}
		options = append(options, interaction.SelectOption{Label: label, Value: key})
	}
	selected, err := deps.Prompter.SelectValue("Function to invoke", options)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(selected) == "" {
		return "", ErrFunctionRequired
	}
	return selected, nil
}
