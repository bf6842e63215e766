package command

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poruru-code/sls-cli/internal/domain/invocation"
	"github.com/poruru-code/sls-cli/internal/infra/config"
	"github.com/poruru-code/sls-cli/internal/infra/interaction"
	"github.com/poruru-code/sls-cli/internal/infra/provider"
	"github.com/poruru-code/sls-cli/internal/ports"
)

const testServiceFile = `service: my-service
provider:
  name: aws
functions:
  getTest:
    handler: index.getHandler
    events:
      - http:
          path: /baz
          method: get
  create:
    handler: index.create
`

const testResponse = `{"statusCode":200,"body":"{"message":"Hello, the current time is 2017-07-22:15:20:42!"}"}`

func writeServiceDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "serverless.yml"), []byte(testServiceFile), 0o600); err != nil {
		t.Fatalf("write service file: %v", err)
	}
	return dir
}

type invokeCall struct {
	serviceID  string
	functionID string
	payload    invocation.Payload
}

func payloadJSON(t *testing.T, p invocation.Payload) string {
	t.Helper()
	data, err := p.JSON()
	if err != nil {
		t.Fatalf("payload JSON: %v", err)
	}
	return string(data)
}

type fakeFunctionInvoker struct {
	calls  *[]invokeCall
	result any
	err    error
}

func (f fakeFunctionInvoker) InvokeFunction(_ context.Context, serviceID, functionID string, payload invocation.Payload) (any, error) {
	*f.calls = append(*f.calls, invokeCall{serviceID: serviceID, functionID: functionID, payload: payload})
	return f.result, f.err
}

type fakeProviderFactory struct {
	settings []provider.Settings
	invoker  ports.FunctionInvoker
	err      error
}

func (f *fakeProviderFactory) New(_ context.Context, settings provider.Settings) (ports.FunctionInvoker, error) {
	f.settings = append(f.settings, settings)
	if f.err != nil {
		return nil, f.err
	}
	return f.invoker, nil
}

type fakePrompter struct {
	titles  []string
	options [][]interaction.SelectOption
	value   string
	err     error
}

func (p *fakePrompter) SelectValue(title string, options []interaction.SelectOption) (string, error) {
	p.titles = append(p.titles, title)
	p.options = append(p.options, options)
	return p.value, p.err
}

func staticUserConfig(defaults config.Defaults) func() (config.UserConfig, error) {
	return func() (config.UserConfig, error) {
		cfg := config.DefaultUserConfig()
		cfg.Defaults = defaults
		return cfg, nil
	}
}

func noEnv(string) string { return "" }

func stubTerminal(t *testing.T, tty bool) {
	t.Helper()
	orig := interaction.IsTerminal
	t.Cleanup(func() { interaction.IsTerminal = orig })
	interaction.IsTerminal = func(*os.File) bool { return tty }
}
