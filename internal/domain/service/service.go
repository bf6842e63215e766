// Where: cli/internal/domain/service/service.go
// What: Service definition model and qualified function naming.
// Why: Keep name derivation and function lookup pure for the invoke usecase.
package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrFunctionNotFound is returned when a function key is not declared.
var ErrFunctionNotFound = errors.New("function not found")

// FunctionNotFoundError names the missing key and matches ErrFunctionNotFound.
type FunctionNotFoundError struct {
	Key string
}

func (e *FunctionNotFoundError) Error() string {
	return fmt.Sprintf("function %q doesn't exist in this service", e.Key)
}

func (e *FunctionNotFoundError) Is(target error) bool {
	return target == ErrFunctionNotFound
}

const (
	ProviderAWS   = "aws"
	ProviderLocal = "local"
)

// Service is a parsed service definition.
type Service struct {
	Name      string                        `yaml:"service"`
	Dir       string                        `yaml:"-"`
	Provider  Provider                      `yaml:"provider"`
	Functions map[string]FunctionDefinition `yaml:"functions"`
}

// Provider holds the provider block of a service definition.
type Provider struct {
	Name        string          `yaml:"name"`
	Stage       string          `yaml:"stage"`
	Region      string          `yaml:"region"`
	Profile     string          `yaml:"profile"`
	Credentials *Credentials    `yaml:"credentials"`
	Endpoint    string          `yaml:"endpoint"`
	Compose     ComposeEndpoint `yaml:"compose"`
}

// Credentials are explicit static keys.
type Credentials struct {
	AccessKeyID     string `yaml:"accessKeyId"`
	SecretAccessKey string `yaml:"secretAccessKey"`
	SessionToken    string `yaml:"sessionToken"`
}

// ComposeEndpoint locates a local emulator container by compose labels.
type ComposeEndpoint struct {
	Project string `yaml:"project"`
	Service string `yaml:"service"`
	Port    int    `yaml:"port"`
}

// IsZero reports whether no compose lookup is configured.
func (c ComposeEndpoint) IsZero() bool {
	return strings.TrimSpace(c.Service) == "" && c.Port == 0
}

// FunctionDefinition is one entry under `functions`.
type FunctionDefinition struct {
	Handler string  `yaml:"handler"`
	Events  []Event `yaml:"events"`
}

// Event is a trigger descriptor, e.g. {http: {path: x, method: get}}.
type Event = map[string]any

// ServiceID returns the deployed service name for a stage.
func (s Service) ServiceID(stage string) string {
	return s.Name + "-" + stage
}

// FunctionID returns the deployed name of a function for a stage.
func (s Service) FunctionID(stage, key string) string {
	return s.ServiceID(stage) + "-" + key
}

// Function looks up a function by key.
func (s Service) Function(key string) (FunctionDefinition, error) {
	fn, ok := s.Functions[key]
	if !ok {
		return FunctionDefinition{}, &FunctionNotFoundError{Key: key}
	}
	return fn, nil
}

// FunctionKeys returns declared function keys in sorted order.
func (s Service) FunctionKeys() []string {
	keys := make([]string, 0, len(s.Functions))
	for key := range s.Functions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
