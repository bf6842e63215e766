// Where: cli/internal/command/app_test.go
// What: Tests for CLI run behavior.
// Why: Ensure command routing remains stable.
package command

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poruru-code/sls-cli/internal/infra/config"
)

func TestRunNoArgsPrintsUsage(t *testing.T) {
	t.Setenv("CLI_CMD", "")
	var out bytes.Buffer
	if code := Run(nil, Dependencies{Out: &out}); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(out.String(), "sls invoke -f <function>") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	if code := Run([]string{"version"}, Dependencies{Out: &out}); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Fatalf("expected version output")
	}
}

func TestRunUnknownFlag(t *testing.T) {
	var out bytes.Buffer
	code := Run([]string{"invoke", "--bogus"}, Dependencies{Out: &out})
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.HasPrefix(out.String(), "✗ ") {
		t.Fatalf("expected error line, got %q", out.String())
	}
}

func TestRunLoadsEnvFile(t *testing.T) {
	dir := writeServiceDir(t)
	envFile := filepath.Join(dir, "custom.env")
	if err := os.WriteFile(envFile, []byte("SLS_TEST_ENV_FILE=loaded\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("SLS_TEST_ENV_FILE", "")
	if err := os.Unsetenv("SLS_TEST_ENV_FILE"); err != nil {
		t.Fatalf("unsetenv: %v", err)
	}

	var calls []invokeCall
	factory := &fakeProviderFactory{invoker: fakeFunctionInvoker{calls: &calls, result: "ok"}}
	var out, errOut bytes.Buffer
	code := Run([]string{"--env-file", envFile, "invoke", "-f", "getTest"}, Dependencies{
		Out:    &out,
		ErrOut: &errOut,
		Getwd:  func() (string, error) { return dir, nil },
		Invoke: InvokeDeps{Providers: factory, LoadUserConfig: staticUserConfig(config.Defaults{}), Getenv: noEnv},
	})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, out.String())
	}
	if got := os.Getenv("SLS_TEST_ENV_FILE"); got != "loaded" {
		t.Fatalf("env file not loaded: %q", got)
	}
}
