package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/elephantatech/QR-Network-Scanner/pkg/qrimage"
	"github.com/elephantatech/QR-Network-Scanner/qrnet/options"
)

// Where a payload came from, recorded in the join history.
const (
	SourceText  = "text"
	SourceFile  = "file"
	SourceStdin = "stdin"
)

var ErrNoPayload = errors.New("no QR code payload given")

type Flags struct {
	File string
}

func AddFlags(cmd *cobra.Command, f *Flags) {
	cmd.Flags().StringVarP(&f.File, "file", "f", "", "Decode the QR code from a PNG, JPEG or GIF `image` instead of reading text")
}

// Payload returns the decoded QR code text: from the image given with --file,
// else from the first argument, else from the first line of stdin.
func Payload(log logr.Logger, f Flags, args []string, stdin io.Reader) (string, string, error) {
	if f.File != "" {
		log.Info("Decoding QR code", "file", f.File)
		text, err := qrimage.DecodeFile(f.File)
		if err != nil {
			if errors.Is(err, qrimage.ErrNotFound) {
				return "", "", options.Exit(options.ExitNoQRCode, fmt.Errorf("no QR code found in file '%s'", f.File))
			}
			return "", "", options.Exit(options.ExitGeneralError, err)
		}
		log.V(1).Info("Decoded QR code", "payload", text)
		return text, SourceFile, nil
	}

	if len(args) > 0 {
		return args[0], SourceText, nil
	}

	if stdin != nil {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", "", options.Exit(options.ExitGeneralError, fmt.Errorf("reading stdin: %w", err))
		}
		line = strings.TrimRight(line, "\r\n")
		if line != "" {
			return line, SourceStdin, nil
		}
	}

	return "", "", options.Exit(options.ExitNoQRCode, ErrNoPayload)
}
