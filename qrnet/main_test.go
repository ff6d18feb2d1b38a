package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/elephantatech/QR-Network-Scanner/qrnet/options"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(t.TempDir(), "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(t.TempDir(), "state"))
	t.Setenv("QRNET_LOG", "stderr")

	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetErr(&bytes.Buffer{})
	Cmd.SetArgs(args)
	err := Cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	Version = "v1.0.0"
	defer func() { Version = "" }()

	out, err := execute(t, "version")
	require.NoError(t, err)

	var v versionInfo
	require.NoError(t, yaml.Unmarshal([]byte(out), &v))
	assert.Equal(t, "v1.0.0", v.Version)
	assert.NotEmpty(t, v.Go)
	assert.NotEmpty(t, v.Platform)
}

func TestBuildVersionUnknown(t *testing.T) {
	v := buildVersion()
	assert.NotEmpty(t, v.Version)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	require.Error(t, err)
	options.Flags.Config = ""
}

func TestParseThroughRoot(t *testing.T) {
	out, err := execute(t, "parse", "WIFI:S:Cafe;T:nopass;;")
	require.NoError(t, err)
	assert.Contains(t, out, "ssid: Cafe")
	assert.Contains(t, out, "security: nopass")
}

func TestFlagsMutuallyExclusive(t *testing.T) {
	_, err := execute(t, "--verbose", "--quiet", "version")
	assert.Error(t, err)
	options.Flags.Verbose = false
	options.Flags.Quiet = false
}
