// Where: cli/internal/ports/invoke.go
// What: Port definitions consumed by the invoke usecase.
// Why: Keep the usecase independent of provider SDKs and console output.
package ports

import (
	"context"

	"github.com/poruru-code/sls-cli/internal/domain/invocation"
)

// FunctionInvoker calls a deployed function and returns its result.
type FunctionInvoker interface {
	InvokeFunction(ctx context.Context, serviceID, functionID string, payload invocation.Payload) (any, error)
}

// Logger receives user-facing log entries: strings, errors, or results.
type Logger interface {
	Log(v any)
}

// Reporter receives the outcome of a provider call.
type Reporter interface {
	PrintResult(result any)
	HandleError(err error)
}

// DataReader loads payload files.
type DataReader interface {
	ReadData(ctx context.Context, path string) ([]byte, error)
}

// LogReporter reports results and errors through a Logger.
type LogReporter struct {
	Logger Logger
}

func (r LogReporter) PrintResult(result any) {
	r.Logger.Log(result)
}

func (r LogReporter) HandleError(err error) {
	r.Logger.Log(err)
}
