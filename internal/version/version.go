// Where: cli/internal/version/version.go
// What: Version information retrieval.
// Why: Report a release tag when linked in, otherwise the VCS revision.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Version is set at link time: -ldflags "-X .../internal/version.Version=v1.2.3".
var Version = ""

var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the linked release version, the module version of a
// `go install`ed binary, or the short VCS revision. It returns "dev" when none
// of these are known.
func GetVersion() string {
	if v := strings.TrimSpace(Version); v != "" {
		return v
	}

	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	if revision == "" {
		return "dev"
	}
	if modified {
		return fmt.Sprintf("%s (dirty)", revision)
	}
	return revision
}
