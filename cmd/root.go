package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"xreal-launch/internal/logger"
)

var errMissingMode = errors.New("a mode is required")

// Global flag values, bound on the root command so they may appear before or
// after the mode token.
var (
	debug       bool
	displayFlag string
	primaryFlag string
)

// rootCmd is the base command for the xreal-launch CLI.
var rootCmd = &cobra.Command{
	Use:   "xreal-launch <mode>",
	Short: "Mode-switching launcher for Linux AR glasses",
	Long: `xreal-launch switches a Linux machine between AR/VR operating modes by
driving the tools the VRStack installer puts on the PATH (xr_driver_cli,
gnome-randr/xrandr, monado-service, stardust-xr-server, steam).

Modes: desktop, sbs, vr, stardust, game <name>, reset, status`,

	// Initialize the logger before any mode runs.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},

	// Invoking the launcher without a mode is an input error, not a help
	// request: print usage but exit non-zero.
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = cmd.Usage()
		return errMissingMode
	},

	// Runtime failures (a missing service, a tool exiting non-zero) should
	// not re-print usage; invalid input paths print it explicitly.
	SilenceUsage: true,
}

// Execute parses arguments and runs the requested mode. Exit codes: 0 on
// success and on --help; 1 on invalid input or when a mode cannot proceed.
func Execute() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&displayFlag, "display", "d", "", "Override the glasses output name")
	rootCmd.PersistentFlags().StringVarP(&primaryFlag, "primary", "p", "", "Override the primary output name")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
