// Where: cli/internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep brand, file names, and env prefixes in one place.
package meta

const (
	// Project Identity
	AppName     = "sls"
	Slug        = "sls"
	DisplayName = "Serverless"
	EnvPrefix   = "SLS"

	// Directory Layout
	HomeDir        = ".sls"
	UserConfigFile = "config.yaml"

	// Defaults
	DefaultStage  = "dev"
	DefaultRegion = "us-east-1"
)

// ServiceFileNames lists service definition file names in lookup order.
var ServiceFileNames = []string{"serverless.yml", "serverless.yaml"}
