package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFull(t *testing.T) {
	assert.Equal(t, Version, Full())

	origBuildTime, origGitCommit := BuildTime, GitCommit
	defer func() { BuildTime, GitCommit = origBuildTime, origGitCommit }()

	BuildTime = "2026-01-02T15:04:05Z"
	GitCommit = "abc1234"
	assert.Contains(t, Full(), Version)
	assert.Contains(t, Full(), "abc1234")
}
