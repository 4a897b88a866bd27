// Package version provides build version information.
package version

import (
	"fmt"
	"runtime"
)

// These are set via ldflags at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info returns formatted version information.
func Info() string {
	return fmt.Sprintf(
		"fitlife %s (%s) built on %s with %s",
		Version,
		shortCommit(),
		BuildDate,
		runtime.Version(),
	)
}

// Short returns just the version number.
func Short() string {
	return Version
}

// UserAgent is sent on outbound vendor requests.
func UserAgent() string {
	return fmt.Sprintf("fitlife/%s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH)
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
