package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	assert.Equal(t, "kickstart", root.Use)
	for _, name := range []string{"config", "verbose", "timestamps"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"create", "packages", "config", "version"}, names)
}

func TestRoot_LoadsConfig(t *testing.T) {
	home := isolate(t)
	path := writeConfig(t, home, "packageManager: npm\nlog:\n  timestamps: false\n")

	_, err := executeRoot(t, "packages")
	require.NoError(t, err)

	assert.Equal(t, "npm", GetConfig().PackageManager)
	assert.Equal(t, path, GetConfigPath())
}

func TestRoot_BrokenConfigStillRuns(t *testing.T) {
	home := isolate(t)
	writeConfig(t, home, "packages: [ui\n")

	_, err := executeRoot(t, "packages")
	require.NoError(t, err)
	assert.Empty(t, GetConfig().PackageManager)
}
