// Where: cli/internal/infra/provider/lambda.go
// What: Lambda-backed FunctionInvoker.
// Why: Map invoke requests onto the Lambda Invoke API.
package provider

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"github.com/poruru-code/sls-cli/internal/domain/invocation"
)

// LambdaAPI is the subset of the Lambda client used here.
type LambdaAPI interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// FunctionError is returned when the function ran but reported an error.
type FunctionError struct {
	FunctionID string
	Type       string
	Payload    string
}

func (e *FunctionError) Error() string {
	if e.Payload == "" {
		return fmt.Sprintf("function %s failed (%s)", e.FunctionID, e.Type)
	}
	return fmt.Sprintf("function %s failed (%s): %s", e.FunctionID, e.Type, e.Payload)
}

type lambdaInvoker struct {
	client LambdaAPI
}

// InvokeFunction sends a synchronous invocation and returns the response
// payload as a string.
func (l lambdaInvoker) InvokeFunction(ctx context.Context, _ string, functionID string, payload invocation.Payload) (any, error) {
	if l.client == nil {
		return nil, fmt.Errorf("lambda client is nil")
	}
	body, err := payload.JSON()
	if err != nil {
		return nil, err
	}
	input := &lambda.InvokeInput{
		FunctionName:   aws.String(functionID),
		InvocationType: types.InvocationTypeRequestResponse,
	}
	if payload.IsSet() {
		input.Payload = body
	}

	out, err := l.client.Invoke(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("invoke %s: %w", functionID, err)
	}
	if out.FunctionError != nil {
		return nil, &FunctionError{
			FunctionID: functionID,
			Type:       aws.ToString(out.FunctionError),
			Payload:    string(out.Payload),
		}
	}
	return string(out.Payload), nil
}
