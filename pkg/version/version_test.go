package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo_ShortensCommit(t *testing.T) {
	origVersion, origCommit := Version, Commit
	defer func() { Version, Commit = origVersion, origCommit }()

	Version = "v0.3.0"
	Commit = "0123456789abcdef"

	info := Info()
	assert.True(t, strings.HasPrefix(info, "fitlife v0.3.0 (0123456)"), info)
	assert.Equal(t, "v0.3.0", Short())
}

func TestUserAgent(t *testing.T) {
	origVersion := Version
	defer func() { Version = origVersion }()

	Version = "v1.1.0"
	assert.True(t, strings.HasPrefix(UserAgent(), "fitlife/v1.1.0 ("))
}
