// Where: cli/internal/infra/servicefile/loader.go
// What: Service file discovery, rendering, validation, and decoding.
// Why: Produce a service.Service from serverless.yml in one place.
package servicefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/poruru-code/sls-cli/internal/domain/service"
	"github.com/poruru-code/sls-cli/internal/meta"
)

// ErrServiceFileNotFound is returned when no service file can be located.
var ErrServiceFileNotFound = errors.New("service file not found")

// LoadOptions controls where the service file is read from.
type LoadOptions struct {
	// Dir is the project directory searched for default file names.
	Dir string
	// Path overrides discovery; relative paths resolve against Dir.
	Path     string
	Template TemplateData
}

// Discover returns the service file path: explicit when given, otherwise the
// first of meta.ServiceFileNames present in dir.
func Discover(dir, explicit string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		path := explicit
		if !filepath.IsAbs(path) && dir != "" {
			path = filepath.Join(dir, path)
		}
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("%w: %s", ErrServiceFileNotFound, path)
			}
			return "", fmt.Errorf("stat service file: %w", err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%w: %s is a directory", ErrServiceFileNotFound, path)
		}
		return path, nil
	}
	for _, name := range meta.ServiceFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s (looked for %s)", ErrServiceFileNotFound, dir, strings.Join(meta.ServiceFileNames, ", "))
}

// Load discovers, renders, validates, and decodes the service file.
func Load(opts LoadOptions) (service.Service, error) {
	path, err := Discover(opts.Dir, opts.Path)
	if err != nil {
		return service.Service{}, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return service.Service{}, fmt.Errorf("read service file: %w", err)
	}
	return Parse(path, content, opts.Template)
}

// Parse renders, validates, and decodes content read from path.
func Parse(path string, content []byte, data TemplateData) (service.Service, error) {
	rendered, err := render(filepath.Base(path), content, data)
	if err != nil {
		return service.Service{}, err
	}
	if err := validateServiceFile(rendered); err != nil {
		return service.Service{}, fmt.Errorf("invalid service file %s: %w", path, err)
	}

	var svc service.Service
	if err := yaml.Unmarshal(rendered, &svc); err != nil {
		return service.Service{}, fmt.Errorf("decode service file %s: %w", path, err)
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return service.Service{}, fmt.Errorf("resolve service dir: %w", err)
	}
	svc.Dir = abs
	if svc.Functions == nil {
		svc.Functions = map[string]service.FunctionDefinition{}
	}
	return svc, nil
}
