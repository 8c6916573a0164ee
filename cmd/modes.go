package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"xreal-launch/internal/config"
	"xreal-launch/internal/launcher"
)

// buildController loads configuration, applies flag overrides, and wires the
// mode controller. Precedence for display names: built-in defaults, then
// displays.conf, then explicit flags; auto-detection later fills only fields
// not pinned by a flag.
func buildController(cmd *cobra.Command) *launcher.Controller {
	cfg := config.LoadDisplays(config.DisplaysPath())
	if cmd.Flags().Changed("display") {
		cfg.Glasses = displayFlag
		cfg.GlassesFromFlag = true
	}
	if cmd.Flags().Changed("primary") {
		cfg.Primary = primaryFlag
		cfg.PrimaryFromFlag = true
	}
	opts := config.LoadLauncher(config.LauncherPath())
	return launcher.New(&cfg, opts)
}

var desktopCmd = &cobra.Command{
	Use:   "desktop",
	Short: "Enable the flat AR desktop (driver on, AR effect on, SBS off)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return buildController(cmd).Desktop()
	},
}

var sbsCmd = &cobra.Command{
	Use:   "sbs",
	Short: "Switch the glasses to side-by-side stereo output",
	RunE: func(cmd *cobra.Command, args []string) error {
		return buildController(cmd).SideBySide()
	},
}

var vrCmd = &cobra.Command{
	Use:   "vr",
	Short: "Start an OpenXR VR session with monado-service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return buildController(cmd).VR()
	},
}

var stardustCmd = &cobra.Command{
	Use:   "stardust",
	Short: "Start the Stardust XR 3D desktop session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return buildController(cmd).Stardust()
	},
}

var gameCmd = &cobra.Command{
	Use:   "game <name>",
	Short: "Switch to SBS mode and launch a Steam game",
	RunE: func(cmd *cobra.Command, args []string) error {
		// A missing or empty game name is an input error and must not
		// trigger any part of the SBS sequence.
		if len(args) != 1 || args[0] == "" {
			_ = cmd.Usage()
			return fmt.Errorf("game mode requires exactly one game name")
		}
		return buildController(cmd).Game(args[0])
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore both displays and driver state to the flat desktop",
	RunE: func(cmd *cobra.Command, args []string) error {
		return buildController(cmd).Reset()
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report hardware, display, and service status",
	RunE: func(cmd *cobra.Command, args []string) error {
		buildController(cmd).Status().Render()
		return nil
	},
}

// init registers one subcommand per operating mode.
func init() {
	rootCmd.AddCommand(desktopCmd)
	rootCmd.AddCommand(sbsCmd)
	rootCmd.AddCommand(vrCmd)
	rootCmd.AddCommand(stardustCmd)
	rootCmd.AddCommand(gameCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statusCmd)
}
