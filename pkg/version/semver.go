package version

import (
	"github.com/Masterminds/semver/v3"
)

var (
	parsedVersion  *semver.Version
	parseAttempted bool
)

// Release channels reported by Channel.
const (
	ChannelDev        = "dev"
	ChannelPrerelease = "prerelease"
	ChannelStable     = "stable"
)

// resetParsedVersion clears the cached parsed version for testing.
func resetParsedVersion() {
	parsedVersion = nil
	parseAttempted = false
}

// Parsed returns the parsed semantic version, or nil if unparseable.
// Computed lazily on first call and cached.
func Parsed() *semver.Version {
	if parsedVersion != nil || parseAttempted {
		return parsedVersion
	}
	parseAttempted = true

	v, err := semver.NewVersion(Version)
	if err != nil {
		return nil
	}
	parsedVersion = v
	return parsedVersion
}

// IsPrerelease returns true if the current version is a pre-release.
// Returns false for unparseable versions (like "dev").
func IsPrerelease() bool {
	v := Parsed()
	if v == nil {
		return false
	}
	return v.Prerelease() != ""
}

// IsDevBuild returns true if this is a development build (no valid semver).
func IsDevBuild() bool {
	return Parsed() == nil
}

// Channel classifies the running build.
func Channel() string {
	switch {
	case IsDevBuild():
		return ChannelDev
	case IsPrerelease():
		return ChannelPrerelease
	default:
		return ChannelStable
	}
}
