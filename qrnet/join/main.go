package join

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/elephantatech/QR-Network-Scanner/internal/config"
	"github.com/elephantatech/QR-Network-Scanner/internal/connect"
	"github.com/elephantatech/QR-Network-Scanner/internal/history"
	"github.com/elephantatech/QR-Network-Scanner/internal/mynet"
	"github.com/elephantatech/QR-Network-Scanner/pkg/netsetup"
	"github.com/elephantatech/QR-Network-Scanner/pkg/wifiqr"
	"github.com/elephantatech/QR-Network-Scanner/qrnet/input"
	"github.com/elephantatech/QR-Network-Scanner/qrnet/options"
)

// AutoInterface makes join look up the Wi-Fi device instead of using a fixed one.
const AutoInterface = "auto"

var flags struct {
	input.Flags
	NoHistory bool
}

var Cmd = &cobra.Command{
	Use:   "join [payload]",
	Short: "Join the WiFi network described by a QR code",
	Long: `Join the WiFi network described by a QR code.

The network is added first in the preferred networks list of the Wi-Fi
interface, then joined. The payload is read from the image given with --file,
from the first argument, or from the first line of standard input.

Examples:
  qrnet join --file wifi.png
  qrnet join 'WIFI:S:Guest;T:nopass;;' --interface auto`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logr.FromContextOrDiscard(ctx)
		cfg := options.Config(ctx)

		payload, source, err := input.Payload(log, flags.Flags, args, cmd.InOrStdin())
		if err != nil {
			return err
		}

		cred, err := wifiqr.Parse(payload)
		if err != nil {
			return options.Exit(options.ExitGeneralError, fmt.Errorf("error parsing QR code: %w", err))
		}
		log.Info("Found network", "ssid", cred.SSID, "security", cred.SecurityType, "hidden", cred.Hidden)

		mgr, err := newManager(cmd, log, cfg)
		if err != nil {
			return options.Exit(options.ExitGeneralError, err)
		}

		j := &connect.Joiner{Network: mgr, Route: mynet.DefaultRoute}
		if cfg.History.Enabled && !flags.NoHistory {
			store, err := history.NewStore(log, cfg.History.Path)
			if err != nil {
				log.Error(err, "History disabled", "path", cfg.History.Path)
			} else {
				defer store.Close()
				j.History = store
			}
		}

		out, err := j.Join(ctx, cred, source)
		if perr := options.FprintResult(cmd.OutOrStdout(), out); perr != nil {
			return perr
		}
		if err != nil {
			if out.Hint != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "Note:", out.Hint)
			}
			if errors.Is(err, connect.ErrJoinFailed) {
				return options.Exit(options.ExitNetworkError, err)
			}
			return options.Exit(options.ExitGeneralError, err)
		}
		return nil
	},
}

func newManager(cmd *cobra.Command, log logr.Logger, cfg *config.Config) (*netsetup.Manager, error) {
	ncfg := netsetup.Config{Interface: cfg.Interface, Tool: cfg.NetworkSetup}
	if cfg.Interface != AutoInterface {
		return netsetup.NewManager(log, ncfg)
	}

	ncfg.Interface = netsetup.DefaultInterface
	probe, err := netsetup.NewManager(log, ncfg)
	if err != nil {
		return nil, err
	}
	iface, ok := probe.WiFiInterface(cmd.Context())
	if !ok {
		log.Info("No Wi-Fi hardware port found, using default interface", "interface", ncfg.Interface)
		return probe, nil
	}
	ncfg.Interface = iface
	return netsetup.NewManager(log, ncfg)
}

func init() {
	input.AddFlags(Cmd, &flags.Flags)
	Cmd.Flags().BoolVar(&flags.NoHistory, "no-history", false, "Do not record this attempt in the join history")
}
