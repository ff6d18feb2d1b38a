package generate

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/elephantatech/QR-Network-Scanner/pkg/qrimage"
	"github.com/elephantatech/QR-Network-Scanner/pkg/wifiqr"
	"github.com/elephantatech/QR-Network-Scanner/qrnet/options"
)

var flags struct {
	SSID     string
	Password string
	Security string
	Hidden   bool
	Output   string
	Size     int
	NoArt    bool
}

var Cmd = &cobra.Command{
	Use:   "generate",
	Short: "Create a WiFi QR code",
	Long: `Create a WiFi QR code that phones and qrnet can join.

The payload is printed together with a QR code drawn in the terminal. Use
--output to also write it as a PNG image.

Examples:
  qrnet generate --ssid Home --password secret
  qrnet generate --ssid Guest --security nopass --output guest.png`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logr.FromContextOrDiscard(cmd.Context())
		cfg := options.Config(cmd.Context())

		payload, err := Payload(wifiqr.Credential{
			SSID:         flags.SSID,
			SecurityType: flags.Security,
			Password:     flags.Password,
			Hidden:       flags.Hidden,
		})
		if err != nil {
			return options.Exit(options.ExitGeneralError, err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, payload)
		if !flags.NoArt {
			art, err := qrimage.Terminal(payload)
			if err != nil {
				return options.Exit(options.ExitGeneralError, err)
			}
			fmt.Fprint(out, art)
		}

		if flags.Output != "" {
			size := flags.Size
			if !cmd.Flags().Changed("size") {
				size = cfg.QR.Size
			}
			if err := qrimage.WriteFile(payload, size, flags.Output); err != nil {
				return options.Exit(options.ExitGeneralError, fmt.Errorf("writing %s: %w", flags.Output, err))
			}
			log.Info("Wrote QR code", "file", flags.Output, "size", size)
		}
		return nil
	},
}

// Payload encodes cred and checks that it reads back as the same network.
func Payload(cred wifiqr.Credential) (string, error) {
	payload := wifiqr.Format(cred)
	if _, err := wifiqr.Parse(payload); err != nil {
		return "", err
	}
	return payload, nil
}

func init() {
	Cmd.Flags().StringVarP(&flags.SSID, "ssid", "s", "", "Network name")
	Cmd.Flags().StringVarP(&flags.Password, "password", "p", "", "Network password")
	Cmd.Flags().StringVarP(&flags.Security, "security", "t", string(wifiqr.WPA), "Security type: WPA, WEP, nopass or open")
	Cmd.Flags().BoolVarP(&flags.Hidden, "hidden", "H", false, "The network does not broadcast its SSID")
	Cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Write the QR code as a PNG `file`")
	Cmd.Flags().IntVar(&flags.Size, "size", qrimage.DefaultSize, "PNG width and height in pixels")
	Cmd.Flags().BoolVar(&flags.NoArt, "no-art", false, "Do not draw the QR code in the terminal")
	Cmd.MarkFlagRequired("ssid")
}
