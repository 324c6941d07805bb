package version

import (
	"fmt"
	"runtime"
)

// Version information - set at build time via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info returns formatted version information
func Info() string {
	return fmt.Sprintf("hkpush version %s\n  commit: %s\n  built: %s\n  go: %s\n  os/arch: %s/%s",
		Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version string
func Short() string {
	return Version
}

// UserAgent identifies hkpush to the Heroku API, e.g. "hkpush/1.2.0 (linux/amd64)"
func UserAgent() string {
	return fmt.Sprintf("hkpush/%s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH)
}
