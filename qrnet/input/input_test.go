package input

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elephantatech/QR-Network-Scanner/pkg/qrimage"
	"github.com/elephantatech/QR-Network-Scanner/qrnet/options"
)

func TestPayloadFromArgument(t *testing.T) {
	text, source, err := Payload(testr.New(t), Flags{}, []string{"WIFI:S:Arg;;"}, strings.NewReader("WIFI:S:Stdin;;\n"))
	require.NoError(t, err)
	assert.Equal(t, "WIFI:S:Arg;;", text)
	assert.Equal(t, SourceText, source)
}

func TestPayloadFromStdin(t *testing.T) {
	text, source, err := Payload(testr.New(t), Flags{}, nil, strings.NewReader("WIFI:S:Stdin;P:x;;\r\nsecond line\n"))
	require.NoError(t, err)
	assert.Equal(t, "WIFI:S:Stdin;P:x;;", text)
	assert.Equal(t, SourceStdin, source)

	text, _, err = Payload(testr.New(t), Flags{}, nil, strings.NewReader("WIFI:S:NoNewline;;"))
	require.NoError(t, err)
	assert.Equal(t, "WIFI:S:NoNewline;;", text)
}

func TestPayloadMissing(t *testing.T) {
	_, _, err := Payload(testr.New(t), Flags{}, nil, strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoPayload)
	assert.Equal(t, options.ExitNoQRCode, options.ExitCode(err))
}

func TestPayloadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "code.png")
	require.NoError(t, qrimage.WriteFile("WIFI:T:WPA;S:FromFile;P:pw;;", 256, path))

	text, source, err := Payload(testr.New(t), Flags{File: path}, []string{"ignored"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "WIFI:T:WPA;S:FromFile;P:pw;;", text)
	assert.Equal(t, SourceFile, source)
}

func TestPayloadFileWithoutCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.png")
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetGray(0, 0, color.Gray{})
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	_, _, err = Payload(testr.New(t), Flags{File: path}, nil, nil)
	require.Error(t, err)
	assert.Equal(t, options.ExitNoQRCode, options.ExitCode(err))
	assert.Contains(t, err.Error(), "no QR code found in file")
}

func TestPayloadUnreadableFile(t *testing.T) {
	_, _, err := Payload(testr.New(t), Flags{File: filepath.Join(t.TempDir(), "missing.png")}, nil, nil)
	require.Error(t, err)
	assert.Equal(t, options.ExitGeneralError, options.ExitCode(err))
}
