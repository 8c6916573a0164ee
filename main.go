package main

import (
	"xreal-launch/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// xreal-launch is the mode-switching launcher for the VRStack AR/VR setup. It
// stitches the third-party components that the VRStack installer places on the
// PATH (xr_driver_cli, monado-service, stardust-xr-server, xrandr/gnome-randr,
// steam) into a single command-line workflow for Linux AR glasses:
//   - Switches the system between operating modes: flat AR desktop, side-by-side
//     stereo output, a full OpenXR VR session, the Stardust XR 3D desktop, and
//     launching a Steam game in SBS mode
//   - Probes USB and the display server to resolve which output is the glasses
//     and which is the laptop panel, with user overrides via flags and a small
//     per-user config file
//   - Reports overall system status (hardware, running services, feature flags)
//
// Error handling strategy:
//   - The underlying driver and display tools are best-effort utilities that
//     legitimately no-op or fail when hardware is in flux, so individual tool
//     failures are logged as warnings and the mode sequence keeps going
//   - A mode only aborts when a service it cannot run without is missing
//     (monado-service for vr, stardust-xr-server for stardust), or on invalid
//     user input; those paths exit non-zero
func main() {
	cmd.Execute()
}
