// Where: cli/internal/command/invoke.go
// What: Invoke command adapter.
// Why: Resolve CLI inputs and wire infra into the invoke usecase.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/poruru-code/sls-cli/internal/domain/invocation"
	"github.com/poruru-code/sls-cli/internal/infra/config"
	"github.com/poruru-code/sls-cli/internal/infra/datasource"
	"github.com/poruru-code/sls-cli/internal/infra/provider"
	"github.com/poruru-code/sls-cli/internal/infra/servicefile"
	"github.com/poruru-code/sls-cli/internal/infra/ui"
	"github.com/poruru-code/sls-cli/internal/ports"
	"github.com/poruru-code/sls-cli/internal/usecase/invoke"
)

// ErrFunctionRequired is returned when no function was given and no prompt is possible.
var ErrFunctionRequired = errors.New("function is required (-f/--function)")

// InvokeCmd defines the invoke command flags.
type InvokeCmd struct {
	Function string `short:"f" help:"Name of the function to invoke"`
	Data     string `short:"d" help:"Input data (JSON or plain text)"`
	Path     string `short:"p" help:"Path to a file or s3://bucket/key with input data"`
	Stage    string `short:"s" help:"Stage of the service"`
	Region   string `short:"r" help:"Region of the service"`
}

// ProviderFactory builds the FunctionInvoker for a provider block.
type ProviderFactory interface {
	New(ctx context.Context, settings provider.Settings) (ports.FunctionInvoker, error)
}

// InvokeDeps holds dependencies specific to the invoke command.
type InvokeDeps struct {
	Providers      ProviderFactory
	Clients        provider.ClientFactory
	LoadUserConfig func() (config.UserConfig, error)
	Getenv         func(string) string
}

func runInvoke(cli CLI, deps Dependencies, out io.Writer) int {
	ctx := context.Background()
	cmd := cli.Invoke
	logger := ui.NewDiagnosticLogger(deps.ErrOut, cli.Verbose)
	deps.Invoke = withInvokeDefaults(deps.Invoke)

	getwd := deps.Getwd
	if getwd == nil {
		getwd = os.Getwd
	}
	dir, err := getwd()
	if err != nil {
		return exitWithError(out, fmt.Errorf("resolve working directory: %w", err))
	}

	userCfg, err := deps.Invoke.LoadUserConfig()
	if err != nil {
		consoleUI(out).Warn(fmt.Sprintf("Warning: %v", err))
		userCfg = config.DefaultUserConfig()
	}

	svc, err := servicefile.Load(servicefile.LoadOptions{
		Dir:      dir,
		Path:     cli.Config,
		Template: servicefile.TemplateData{Stage: cmd.Stage, Region: cmd.Region},
	})
	if err != nil {
		return exitWithError(out, err)
	}

	opts := resolveInvokeOptions(cmd, svc.Provider, userCfg.Defaults, deps.Invoke.Getenv)
	logger.Debug("resolved invocation",
		"service", svc.Name,
		"provider", svc.Provider.Name,
		"stage", opts.Stage,
		"region", opts.Region,
		"profile", opts.Profile,
	)

	function, err := resolveFunction(cmd.Function, svc, deps)
	if err != nil {
		return exitWithError(out, err)
	}

	settings := provider.Settings{Provider: svc.Provider, Region: opts.Region, Profile: opts.Profile}
	sink := ui.NewLogSink(out)
	reader := datasource.Reader{
		BaseDir: svc.Dir,
		NewS3: func(ctx context.Context) (datasource.S3API, error) {
			return deps.Invoke.Clients.S3(ctx, provider.ClientConfig{Region: opts.Region, Profile: opts.Profile})
		},
	}
	invoker := invoke.NewInvoker(lazyInvoker{factory: deps.Invoke.Providers, settings: settings}, sink, reader)

	err = invoker.Invoke(ctx, invoke.Request{
		Service:  svc,
		Stage:    opts.Stage,
		Function: function,
		Data:     cmd.Data,
		Path:     cmd.Path,
	})
	if err != nil {
		return exitWithError(out, err)
	}
	if sink.Errors() > 0 {
		return 1
	}
	return 0
}

func withInvokeDefaults(deps InvokeDeps) InvokeDeps {
	if deps.Providers == nil {
		deps.Providers = provider.NewFactory()
	}
	if deps.Clients == nil {
		deps.Clients = provider.NewClientFactory()
	}
	if deps.LoadUserConfig == nil {
		deps.LoadUserConfig = loadUserConfig
	}
	if deps.Getenv == nil {
		deps.Getenv = os.Getenv
	}
	return deps
}

func loadUserConfig() (config.UserConfig, error) {
	path, err := config.UserConfigPath()
	if err != nil {
		return config.UserConfig{}, err
	}
	return config.LoadUserConfig(path)
}

// lazyInvoker builds the provider on first use so a missing function never
// touches provider configuration.
type lazyInvoker struct {
	factory  ProviderFactory
	settings provider.Settings
}

func (l lazyInvoker) InvokeFunction(ctx context.Context, serviceID, functionID string, payload invocation.Payload) (any, error) {
	inv, err := l.factory.New(ctx, l.settings)
	if err != nil {
		return nil, err
	}
	return inv.InvokeFunction(ctx, serviceID, functionID, payload)
}

var _ ports.FunctionInvoker = lazyInvoker{}
