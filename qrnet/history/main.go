package history

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	store "github.com/elephantatech/QR-Network-Scanner/internal/history"
	"github.com/elephantatech/QR-Network-Scanner/qrnet/options"
)

var flags struct {
	Limit int
}

var Cmd = &cobra.Command{
	Use:   "history",
	Short: "List the networks qrnet tried to join",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logr.FromContextOrDiscard(ctx)
		cfg := options.Config(ctx)

		if !cfg.History.Enabled {
			return fmt.Errorf("history is disabled in the configuration")
		}

		s, err := store.NewStore(log, cfg.History.Path)
		if err != nil {
			return err
		}
		defer s.Close()

		entries, err := s.List(ctx, flags.Limit)
		if err != nil {
			return err
		}
		return options.FprintResult(cmd.OutOrStdout(), entries)
	},
}

func init() {
	Cmd.Flags().IntVarP(&flags.Limit, "limit", "n", 20, "Number of entries to show (0 for all)")
}
