package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Without ldflags every field reads "unknown".
func TestDefaults(t *testing.T) {
	assert.NotEmpty(t, Version)
	assert.NotEmpty(t, BuildTime)
	assert.NotEmpty(t, GitCommit)
}

func TestString(t *testing.T) {
	oldVersion, oldCommit, oldTime := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = oldVersion, oldCommit, oldTime })

	Version, GitCommit, BuildTime = "v1.2.0", "abc1234", "2026-01-02"
	assert.Equal(t, "docversions v1.2.0 (commit abc1234, built 2026-01-02)", String())
}
