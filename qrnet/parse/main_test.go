package parse

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elephantatech/QR-Network-Scanner/qrnet/options"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	flags.ShowPassword = false
	flags.File = ""
	t.Cleanup(func() { options.Flags.Json = false })

	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetIn(strings.NewReader(""))
	Cmd.SetArgs(args)
	err := Cmd.Execute()
	return out.String(), err
}

func TestParseCommandHidesPassword(t *testing.T) {
	out, err := run(t, "WIFI:S:Home;T:WPA;P:hunter2;H:true;;")
	require.NoError(t, err)
	assert.Contains(t, out, "ssid: Home")
	assert.Contains(t, out, "security: WPA")
	assert.Contains(t, out, "hidden: true")
	assert.Contains(t, out, "source: text")
	assert.NotContains(t, out, "hunter2")
}

func TestParseCommandShowPassword(t *testing.T) {
	options.Flags.Json = true
	out, err := run(t, "--show-password", "wifi:s:Home;t:wep;p:hunter2;;")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ssid":"Home","security":"wep","hidden":false,"password":"hunter2","source":"text"}`, out)
}

func TestParseCommandInvalid(t *testing.T) {
	_, err := run(t, "WIFI:S:Home;T:WPA;;")
	require.Error(t, err)
	assert.Equal(t, options.ExitGeneralError, options.ExitCode(err))
	assert.Contains(t, err.Error(), "Password is required for security type WPA")
}
