package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineConfigTranslatesTraceModes(t *testing.T) {
	oldModes := traceModes
	defer func() { traceModes = oldModes }()

	traceModes = []string{"names", "mir"}
	cfg, err := pipelineConfig("m")
	require.NoError(t, err)
	assert.True(t, cfg.DumpNames)
	assert.True(t, cfg.DumpMIR)
	assert.False(t, cfg.DumpConstraints)
}

func TestPipelineConfigRejectsUnknownMode(t *testing.T) {
	oldModes := traceModes
	defer func() { traceModes = oldModes }()

	traceModes = []string{"bogus"}
	_, err := pipelineConfig("m")
	require.Error(t, err)
}

func TestPipelineConfigFallsBackToManifestTrace(t *testing.T) {
	oldModes, oldPath := traceModes, configPath
	defer func() { traceModes, configPath = oldModes, oldPath }()

	traceModes = nil
	configPath = ""
	cfg, err := pipelineConfig("m")
	require.NoError(t, err)
	assert.False(t, cfg.DumpNames) // config.Default() carries no trace modes
}
