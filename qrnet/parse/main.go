package parse

import (
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/elephantatech/QR-Network-Scanner/pkg/wifiqr"
	"github.com/elephantatech/QR-Network-Scanner/qrnet/input"
	"github.com/elephantatech/QR-Network-Scanner/qrnet/options"
)

var flags struct {
	input.Flags
	ShowPassword bool
}

// Network is what parse prints.
type Network struct {
	SSID     string `json:"ssid" yaml:"ssid"`
	Security string `json:"security" yaml:"security"`
	Hidden   bool   `json:"hidden" yaml:"hidden"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	Source   string `json:"source" yaml:"source"`
}

var Cmd = &cobra.Command{
	Use:   "parse [payload]",
	Short: "Decode a WiFi QR code and show the network it describes",
	Long: `Decode a WiFi QR code and show the network it describes.

The payload is read from the image given with --file, from the first argument,
or from the first line of standard input.

Examples:
  qrnet parse 'WIFI:S:MyNetwork;T:WPA;P:secret;;'
  qrnet parse --file wifi.png --show-password
  pbpaste | qrnet parse --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logr.FromContextOrDiscard(cmd.Context())

		payload, source, err := input.Payload(log, flags.Flags, args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		log.V(1).Info("Raw QR data", "payload", payload)

		cred, err := wifiqr.Parse(payload)
		if err != nil {
			return options.Exit(options.ExitGeneralError, err)
		}

		return options.FprintResult(cmd.OutOrStdout(), View(cred, source, flags.ShowPassword))
	},
}

// View prepares cred for display, leaving the password out unless asked.
func View(cred wifiqr.Credential, source string, showPassword bool) Network {
	n := Network{
		SSID:     cred.SSID,
		Security: cred.SecurityType,
		Hidden:   cred.Hidden,
		Source:   source,
	}
	if showPassword {
		n.Password = cred.Password
	}
	return n
}

func init() {
	input.AddFlags(Cmd, &flags.Flags)
	Cmd.Flags().BoolVar(&flags.ShowPassword, "show-password", false, "Include the password in the output")
}
