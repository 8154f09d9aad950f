package app

import "fmt"

// Build metadata, set with
// -ldflags "-X github.com/heartmarshall/temple-api/internal/app.Version=1.0.0".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion reports the version for startup logs and /health. Local
// builds without metadata report the bare version.
func BuildVersion() string {
	if Commit == "unknown" && BuildTime == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
