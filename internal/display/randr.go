package display

import (
	"xreal-launch/internal/logger"
	"xreal-launch/internal/toolexec"
)

// Display-mutating calls. Each goes through gnome-randr when it is installed,
// else xrandr, and each attempt is independently non-fatal: the underlying
// tools refuse or no-op in plenty of legitimate situations (output already
// off, mode not advertised yet) and the mode sequence must keep going.

// SetMode switches output to the given mode string (e.g. "3840x1080") at
// 1:1 scale.
func (c Client) SetMode(output, mode string) {
	c.apply(toolexec.Invocation{
		Program: "gnome-randr",
		Args:    []string{"modify", output, "--mode", mode, "--scale", "1"},
	}, toolexec.Invocation{
		Program: "xrandr",
		Args:    []string{"--output", output, "--mode", mode, "--scale", "1x1"},
	})
}

// Off disables output.
func (c Client) Off(output string) {
	c.apply(toolexec.Invocation{
		Program: "gnome-randr",
		Args:    []string{"modify", output, "--off"},
	}, toolexec.Invocation{
		Program: "xrandr",
		Args:    []string{"--output", output, "--off"},
	})
}

// On re-enables output at the given mode and 1:1 scale.
func (c Client) On(output, mode string) {
	c.SetMode(output, mode)
}

// apply runs the gnome-randr form when that tool is present, otherwise the
// xrandr form, and logs (only) on failure.
func (c Client) apply(gnome, legacy toolexec.Invocation) {
	inv := legacy
	if c.Run.Have("gnome-randr") {
		inv = gnome
	}
	switch out := c.Run.Run(inv); out.Status {
	case toolexec.ToolMissing:
		logger.Warn("[WARN] %s not found, display change skipped\n", inv.Program)
	case toolexec.CommandFailed:
		logger.Warn("[WARN] %s exited %d (continuing)\n", inv, out.ExitCode)
	}
}
