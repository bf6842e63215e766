package command

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poruru-code/sls-cli/internal/domain/service"
	"github.com/poruru-code/sls-cli/internal/infra/config"
	"github.com/poruru-code/sls-cli/internal/infra/provider"
)

type invokeHarness struct {
	dir     string
	calls   []invokeCall
	factory *fakeProviderFactory
	out     bytes.Buffer
	errOut  bytes.Buffer
}

func newInvokeHarness(t *testing.T, result any, invokeErr error) *invokeHarness {
	t.Helper()
	h := &invokeHarness{dir: writeServiceDir(t)}
	h.factory = &fakeProviderFactory{invoker: fakeFunctionInvoker{calls: &h.calls, result: result, err: invokeErr}}
	return h
}

func (h *invokeHarness) deps() Dependencies {
	return Dependencies{
		Out:    &h.out,
		ErrOut: &h.errOut,
		Getwd:  func() (string, error) { return h.dir, nil },
		Invoke: InvokeDeps{
			Providers:      h.factory,
			LoadUserConfig: staticUserConfig(config.Defaults{}),
			Getenv:         noEnv,
		},
	}
}

func TestRunInvokeWithJSONData(t *testing.T) {
	h := newInvokeHarness(t, testResponse, nil)

	code := Run([]string{"invoke", "-f", "getTest", "-d", `{"a": "b"}`}, h.deps())
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, h.out.String())
	}
	want := "Serverless: Invoking my-service-dev-getTest of my-service-dev with { a: 'b' }\n" +
		"Serverless: " + testResponse + "\n"
	if h.out.String() != want {
		t.Fatalf("output = %q, want %q", h.out.String(), want)
	}
	if len(h.calls) != 1 {
		t.Fatalf("expected one provider call, got %d", len(h.calls))
	}
	if got := payloadJSON(t, h.calls[0].payload); got != `{"a":"b"}` {
		t.Fatalf("payload = %s", got)
	}
	settings := h.factory.settings[0]
	if settings.Provider.Name != service.ProviderAWS || settings.Region != "us-east-1" {
		t.Fatalf("unexpected settings: %+v", settings)
	}
}

func TestRunInvokeWithoutData(t *testing.T) {
	h := newInvokeHarness(t, testResponse, nil)

	if code := Run([]string{"invoke", "--function", "getTest", "--stage", "prod"}, h.deps()); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, h.out.String())
	}
	if !strings.HasPrefix(h.out.String(), "Serverless: Invoking my-service-prod-getTest of my-service-prod\n") {
		t.Fatalf("unexpected output: %q", h.out.String())
	}
	if h.calls[0].payload.IsSet() {
		t.Fatalf("expected absent payload")
	}
}

func TestRunInvokeWithPath(t *testing.T) {
	h := newInvokeHarness(t, "ok", nil)
	if err := os.WriteFile(filepath.Join(h.dir, "event.json"), []byte(`{"foo":"bar"}`), 0o600); err != nil {
		t.Fatalf("write event: %v", err)
	}

	code := Run([]string{"invoke", "-f", "getTest", "-d", "ignored", "-p", "event.json"}, h.deps())
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, h.out.String())
	}
	if !strings.Contains(h.out.String(), "with { foo: 'bar' }\n") {
		t.Fatalf("unexpected output: %q", h.out.String())
	}
}

func TestRunInvokeMissingPathFile(t *testing.T) {
	h := newInvokeHarness(t, "ok", nil)

	code := Run([]string{"invoke", "-f", "getTest", "-p", "missing.json"}, h.deps())
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.HasPrefix(h.out.String(), "✗ read payload missing.json") {
		t.Fatalf("unexpected output: %q", h.out.String())
	}
	if len(h.factory.settings) != 0 {
		t.Fatalf("provider must not be built")
	}
}

func TestRunInvokeMissingFunction(t *testing.T) {
	h := newInvokeHarness(t, "ok", nil)

	code := Run([]string{"invoke", "-f", "nope"}, h.deps())
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if h.out.String() != "Serverless: function \"nope\" doesn't exist in this service\n" {
		t.Fatalf("unexpected output: %q", h.out.String())
	}
	if len(h.factory.settings) != 0 || len(h.calls) != 0 {
		t.Fatalf("provider must not be touched")
	}
}

func TestRunInvokeProviderFailure(t *testing.T) {
	h := newInvokeHarness(t, nil, errors.New("throttled"))

	code := Run([]string{"invoke", "-f", "getTest"}, h.deps())
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	lines := strings.Split(strings.TrimSpace(h.out.String()), "\n")
	if len(lines) != 2 || lines[1] != "Serverless: throttled" {
		t.Fatalf("unexpected output: %q", h.out.String())
	}
}

func TestRunInvokeProviderConstructionFailure(t *testing.T) {
	h := newInvokeHarness(t, nil, nil)
	h.factory.err = provider.ErrUnsupportedProvider

	code := Run([]string{"invoke", "-f", "getTest"}, h.deps())
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(h.out.String(), "Serverless: unsupported provider") {
		t.Fatalf("unexpected output: %q", h.out.String())
	}
}

func TestRunInvokeMissingServiceFile(t *testing.T) {
	h := newInvokeHarness(t, "ok", nil)
	h.dir = t.TempDir()

	code := Run([]string{"invoke", "-f", "getTest"}, h.deps())
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.HasPrefix(h.out.String(), "✗ service file not found") {
		t.Fatalf("unexpected output: %q", h.out.String())
	}
}

func TestRunInvokeCustomConfig(t *testing.T) {
	h := newInvokeHarness(t, "ok", nil)
	custom := strings.Replace(testServiceFile, "service: my-service", "service: other", 1)
	if err := os.WriteFile(filepath.Join(h.dir, "custom.yml"), []byte(custom), 0o600); err != nil {
		t.Fatalf("write custom: %v", err)
	}

	if code := Run([]string{"--config", "custom.yml", "invoke", "-f", "getTest"}, h.deps()); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, h.out.String())
	}
	if h.calls[0].serviceID != "other-dev" {
		t.Fatalf("serviceID = %q", h.calls[0].serviceID)
	}
}

func TestRunInvokeVerboseLogsResolution(t *testing.T) {
	h := newInvokeHarness(t, "ok", nil)

	if code := Run([]string{"--verbose", "invoke", "-f", "getTest"}, h.deps()); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(h.errOut.String(), "resolved invocation") {
		t.Fatalf("expected diagnostic output, got %q", h.errOut.String())
	}
}

func TestRunInvokeRequiresFunctionWithoutTTY(t *testing.T) {
	stubTerminal(t, false)
	h := newInvokeHarness(t, "ok", nil)
	deps := h.deps()
	deps.Prompter = &fakePrompter{value: "getTest"}

	code := Run([]string{"invoke"}, deps)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if h.out.String() != "✗ function is required (-f/--function)\n" {
		t.Fatalf("unexpected output: %q", h.out.String())
	}
}

func TestRunInvokePromptsForFunction(t *testing.T) {
	stubTerminal(t, true)
	h := newInvokeHarness(t, "ok", nil)
	prompter := &fakePrompter{value: "getTest"}
	deps := h.deps()
	deps.Prompter = prompter

	if code := Run([]string{"invoke"}, deps); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, h.out.String())
	}
	if len(prompter.options) != 1 {
		t.Fatalf("expected one prompt, got %d", len(prompter.options))
	}
	opts := prompter.options[0]
	if len(opts) != 2 || opts[0].Value != "create" || opts[1].Label != "getTest (index.getHandler)" {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if h.calls[0].functionID != "my-service-dev-getTest" {
		t.Fatalf("functionID = %q", h.calls[0].functionID)
	}
}
