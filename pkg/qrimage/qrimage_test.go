package qrimage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elephantatech/QR-Network-Scanner/pkg/wifiqr"
)

const payload = `WIFI:T:WPA;S:My\;Net;P:Pa\\ss;;`

func TestEncodeDecode(t *testing.T) {
	data, err := Encode(payload, 0)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, img.Bounds().Dx())

	text, err := DecodeReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, payload, text)

	c, err := wifiqr.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, "My;Net", c.SSID)
	assert.Equal(t, `Pa\ss`, c.Password)
}

func TestWriteFileDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wifi.png")
	require.NoError(t, WriteFile("WIFI:T:nopass;S:Guest;;", 320, path))

	text, err := DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "WIFI:T:nopass;S:Guest;;", text)
}

func TestDecodeBlankImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 200, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			img.SetGray(x, y, color.Gray{Y: 0xff})
		}
	}
	_, err := Decode(img)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecodeNotAnImage(t *testing.T) {
	_, err := DecodeReader(strings.NewReader("WIFI:S:not an image;;"))
	assert.Error(t, err)

	_, err = DecodeFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestTerminal(t *testing.T) {
	art, err := Terminal(payload)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(art, "\n"), "\n")
	require.NotEmpty(t, lines)
	width := len([]rune(lines[0]))
	for _, line := range lines {
		assert.Equal(t, width, len([]rune(line)))
	}
	// two modules per line
	assert.Equal(t, (width+1)/2, len(lines))
}
