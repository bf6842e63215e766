// Package envutil provides helper functions for environment variable handling.
package envutil

import (
	"os"
	"strings"

	"github.com/poruru-code/sls-cli/internal/meta"
)

// HostEnvKey constructs a host-level environment variable name
// by combining the env prefix with the given suffix.
// Example: HostEnvKey("HOME") returns "SLS_HOME".
// ENV_PREFIX overrides the built-in prefix.
func HostEnvKey(suffix string) string {
	prefix := strings.TrimSpace(os.Getenv("ENV_PREFIX"))
	if prefix == "" {
		prefix = meta.EnvPrefix
	}
	return prefix + "_" + suffix
}

// GetHostEnv retrieves a trimmed host-level environment variable.
// Example: GetHostEnv("LOCAL_ENDPOINT") returns the value of SLS_LOCAL_ENDPOINT.
func GetHostEnv(suffix string) string {
	return strings.TrimSpace(os.Getenv(HostEnvKey(suffix)))
}
