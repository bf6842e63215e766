// Where: cli/internal/usecase/invoke/invoker.go
// What: Invoke workflow orchestration.
// Why: Resolve function and payload, call the provider, and report without CLI concerns.
package invoke

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/poruru-code/sls-cli/internal/domain/invocation"
	"github.com/poruru-code/sls-cli/internal/domain/service"
	"github.com/poruru-code/sls-cli/internal/ports"
)

var (
	errInvokerNotConfigured = errors.New("function invoker is not configured")
	errLoggerNotConfigured  = errors.New("logger is not configured")
	errReaderNotConfigured  = errors.New("data reader is not configured")
)

// Request captures the inputs of one invocation.
type Request struct {
	Service  service.Service
	Stage    string
	Function string
	Data     string
	Path     string
}

// Invoker runs a single function invocation.
type Invoker struct {
	Provider ports.FunctionInvoker
	Logger   ports.Logger
	Reporter ports.Reporter
	Reader   ports.DataReader
}

// NewInvoker constructs an Invoker whose reporter logs through logger.
func NewInvoker(provider ports.FunctionInvoker, logger ports.Logger, reader ports.DataReader) Invoker {
	return Invoker{
		Provider: provider,
		Logger:   logger,
		Reporter: ports.LogReporter{Logger: logger},
		Reader:   reader,
	}
}

// Invoke resolves the function and payload, calls the provider, and reports
// the outcome. A missing function is logged, not returned. Provider failures
// go to the reporter. Only payload read failures are returned.
func (i Invoker) Invoke(ctx context.Context, req Request) error {
	if i.Provider == nil {
		return errInvokerNotConfigured
	}
	if i.Logger == nil {
		return errLoggerNotConfigured
	}
	reporter := i.Reporter
	if reporter == nil {
		reporter = ports.LogReporter{Logger: i.Logger}
	}

	if _, err := req.Service.Function(req.Function); err != nil {
		i.Logger.Log(err)
		return nil
	}

	payload, err := i.resolvePayload(ctx, req)
	if err != nil {
		return err
	}

	serviceID := req.Service.ServiceID(req.Stage)
	functionID := req.Service.FunctionID(req.Stage, req.Function)

	message := fmt.Sprintf("Invoking %s of %s", functionID, serviceID)
	if payload.IsSet() {
		message += " with " + payload.String()
	}
	i.Logger.Log(message)

	result, err := i.Provider.InvokeFunction(ctx, serviceID, functionID, payload)
	if err != nil {
		reporter.HandleError(err)
		return nil
	}
	reporter.PrintResult(result)
	return nil
}

func (i Invoker) resolvePayload(ctx context.Context, req Request) (invocation.Payload, error) {
	if path := strings.TrimSpace(req.Path); path != "" {
		if i.Reader == nil {
			return invocation.NoPayload, errReaderNotConfigured
		}
		data, err := i.Reader.ReadData(ctx, path)
		if err != nil {
			return invocation.NoPayload, fmt.Errorf("read payload %s: %w", path, err)
		}
		return invocation.ParseData(string(data)), nil
	}
	if req.Data != "" {
		return invocation.ParseData(req.Data), nil
	}
	return invocation.NoPayload, nil
}
