package generate

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elephantatech/QR-Network-Scanner/pkg/qrimage"
	"github.com/elephantatech/QR-Network-Scanner/pkg/wifiqr"
	"github.com/elephantatech/QR-Network-Scanner/qrnet/options"
)

func TestPayload(t *testing.T) {
	p, err := Payload(wifiqr.Credential{SSID: "My;Net", SecurityType: "WPA", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, `WIFI:T:WPA;S:My\;Net;P:pw;;`, p)

	_, err = Payload(wifiqr.Credential{SSID: "Home", SecurityType: "WPA"})
	assert.ErrorIs(t, err, wifiqr.ErrPasswordRequired)

	_, err = Payload(wifiqr.Credential{SSID: "Home", SecurityType: "WPA3", Password: "pw"})
	assert.ErrorIs(t, err, wifiqr.ErrUnsupportedSecurity)

	_, err = Payload(wifiqr.Credential{SSID: "  "})
	assert.ErrorIs(t, err, wifiqr.ErrBlankSSID)
}

func TestGenerateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guest.png")

	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetArgs([]string{"--ssid", "Guest", "--security", "nopass", "--hidden", "--output", path, "--size", "300"})
	require.NoError(t, Cmd.Execute())

	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, "WIFI:T:nopass;S:Guest;H:true;;", lines[0])
	assert.Greater(t, len(lines), 10)

	text, err := qrimage.DecodeFile(path)
	require.NoError(t, err)
	c, err := wifiqr.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, wifiqr.Credential{SSID: "Guest", SecurityType: "nopass", Hidden: true}, c)
}

func TestGenerateCommandInvalid(t *testing.T) {
	flags.Output = ""
	flags.Hidden = false
	Cmd.SetOut(&bytes.Buffer{})
	Cmd.SetArgs([]string{"--ssid", "Home", "--security", "WPA", "--password", ""})
	err := Cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, options.ExitGeneralError, options.ExitCode(err))
}
