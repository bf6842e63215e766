// Where: cli/internal/infra/servicefile/render.go
// What: Template rendering for service definitions.
// Why: Allow env/stage-dependent values in serverless.yml before decoding.
package servicefile

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// TemplateData is exposed to service file templates.
type TemplateData struct {
	Stage  string
	Region string
}

func render(name string, content []byte, data TemplateData) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
