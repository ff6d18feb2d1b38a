package main

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/elephantatech/QR-Network-Scanner/hlog"
	"github.com/elephantatech/QR-Network-Scanner/internal/config"
	"github.com/elephantatech/QR-Network-Scanner/qrnet/generate"
	"github.com/elephantatech/QR-Network-Scanner/qrnet/history"
	"github.com/elephantatech/QR-Network-Scanner/qrnet/join"
	"github.com/elephantatech/QR-Network-Scanner/qrnet/options"
	"github.com/elephantatech/QR-Network-Scanner/qrnet/parse"
)

var Cmd = &cobra.Command{
	Use:           "qrnet",
	Short:         "Join WiFi networks from QR codes",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log := hlog.Init(hlog.Options{
			Verbose: options.Flags.Verbose,
			Debug:   options.Flags.Debug,
			Quiet:   options.Flags.Quiet,
		})

		if options.UnderDebugger() {
			log.Info("Running under debugger (will wait forever)")
			options.Flags.Wait = 0
		}

		cfg, err := config.Load(log, config.New(), options.Flags.Config, map[string]*pflag.Flag{
			"interface": cmd.Root().PersistentFlags().Lookup("interface"),
		})
		if err != nil {
			log.Error(err, "Failed to load configuration")
			return err
		}

		ctx := logr.NewContext(cmd.Context(), log)
		ctx = options.WithConfig(ctx, cfg)
		ctx = options.CommandLineContext(ctx, buildVersion().Version)
		cmd.SetContext(ctx)
		log.V(1).Info("Starting", "command", cmd.Name(), "version", options.Version(ctx))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		options.Cancel(cmd.Context())
		return nil
	},
}

func init() {
	Cmd.PersistentFlags().StringVarP(&options.Flags.Config, "config", "c", "", "Read configuration from `file` (default $HOME/.config/qrnet/qrnet.yaml)")
	Cmd.PersistentFlags().DurationVarP(&options.Flags.Wait, "wait", "w", options.COMMAND_DEFAULT_TIMEOUT, "Maximum time to wait for command to finish (0 = wait indefinitely)")
	Cmd.PersistentFlags().BoolVarP(&options.Flags.Verbose, "verbose", "v", false, "verbose output (info level, mutually exclusive with --debug and --quiet)")
	Cmd.PersistentFlags().BoolVarP(&options.Flags.Debug, "debug", "d", false, "debug output (debug level, shows V(1) logs, mutually exclusive with --verbose and --quiet)")
	Cmd.PersistentFlags().BoolVarP(&options.Flags.Quiet, "quiet", "q", false, "quiet output (error level only, mutually exclusive with --verbose and --debug)")
	Cmd.PersistentFlags().BoolVarP(&options.Flags.Json, "json", "j", false, "output in json format")
	Cmd.PersistentFlags().StringVarP(&options.Flags.Interface, "interface", "i", "", "Wi-Fi hardware device, e.g. en0, or 'auto' to look it up")

	Cmd.MarkFlagsMutuallyExclusive("verbose", "debug", "quiet")

	Cmd.AddCommand(parse.Cmd)
	Cmd.AddCommand(join.Cmd)
	Cmd.AddCommand(generate.Cmd)
	Cmd.AddCommand(history.Cmd)
}

func main() {
	cobra.EnableTraverseRunHooks = true
	err := Cmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(options.ExitCode(err))
}
