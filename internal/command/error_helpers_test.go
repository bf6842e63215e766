package command

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

var errTestError = errors.New("test error")

func TestExitWithError(t *testing.T) {
	var buf bytes.Buffer
	code := exitWithError(&buf, errTestError)

	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	want := "✗ test error\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestHandleParseErrorGenericError(t *testing.T) {
	var buf bytes.Buffer
	code := handleParseError(errors.New("some other error"), &buf)

	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "✗ some other error") {
		t.Errorf("expected error to be printed: %s", buf.String())
	}
}

func TestHandleParseErrorMissingFlagValue(t *testing.T) {
	var buf bytes.Buffer
	code := handleParseError(errors.New("--function: expected string value but got EOL"), &buf)

	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "`-f/--function` expects a value") {
		t.Errorf("expected hint, got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "invoke -f hello") {
		t.Errorf("expected example, got: %s", buf.String())
	}
}
