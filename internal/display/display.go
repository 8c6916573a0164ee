// Package display queries and reconfigures display-server outputs. It prefers
// gnome-randr (which works under GNOME Wayland, where the AR desktop effect
// lives) and falls back to plain xrandr; either tool being absent is handled
// by the caller's best-effort policy, never a hard error.
package display

import (
	"regexp"
	"strings"

	"xreal-launch/internal/config"
	"xreal-launch/internal/logger"
	"xreal-launch/internal/toolexec"
)

// Output-name patterns, matched case-insensitively as substrings against
// monitor names and descriptions. Brand tokens identify the glasses' virtual
// output; panel tokens identify the laptop's built-in panel.
var (
	glassesTokens = []string{"xreal", "nreal", "rokid", "viture", "air"}
	panelTokens   = []string{"edp", "lvds"}
)

// connectorRe matches display connector names like DP-9, eDP-1, HDMI-A-1.
// The trailing segment is always numeric, which keeps gnome-randr's
// capability lines (e.g. "supports-changing-layout-mode") out.
var connectorRe = regexp.MustCompile(`^[A-Za-z]+(-[A-Za-z]+)*-[0-9]+$`)

// Client issues display queries and changes through a toolexec.Runner.
type Client struct {
	Run toolexec.Runner
}

// List returns the connector names of the outputs currently attached, in the
// order the display tool reports them. An absent tool yields an empty list.
func (c Client) List() []string {
	if c.Run.Have("gnome-randr") {
		out, err := c.Run.Output("gnome-randr", "query")
		if err == nil {
			return parseGnomeRandr(out)
		}
	}
	out, err := c.Run.Output("xrandr", "--query")
	if err != nil {
		logger.Debug("[DEBUG] No usable display query tool: %v\n", err)
		return nil
	}
	return parseXrandr(out)
}

// parseXrandr extracts connected output names from `xrandr --query` output,
// whose per-output lines look like "eDP-1 connected primary 1920x1080+0+0 ...".
func parseXrandr(out string) []string {
	var names []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == "connected" {
			names = append(names, fields[0])
		}
	}
	return names
}

// parseGnomeRandr extracts output names from `gnome-randr query` output.
// gnome-randr prints one unindented connector-name heading per output,
// followed by indented mode lines.
func parseGnomeRandr(out string) []string {
	var names []string
	for _, line := range strings.Split(out, "\n") {
		if line == "" || line[0] == ' ' || line[0] == '\t' {
			continue
		}
		name := strings.Fields(line)[0]
		if connectorRe.MatchString(name) {
			names = append(names, name)
		}
	}
	return names
}

// Resolve fills cfg's output names from what is actually attached: an output
// matching a glasses brand token overrides Glasses, one matching a laptop
// panel token overrides Primary. Fields the user pinned with an explicit flag
// are never touched. When no display tool is available, cfg is left as-is.
func (c Client) Resolve(cfg *config.Display) {
	for _, name := range c.List() {
		lower := strings.ToLower(name)
		switch {
		case !cfg.GlassesFromFlag && matchesAny(lower, glassesTokens):
			logger.Debug("[DEBUG] Auto-detected glasses output %s\n", name)
			cfg.Glasses = name
		case !cfg.PrimaryFromFlag && matchesAny(lower, panelTokens):
			logger.Debug("[DEBUG] Auto-detected primary output %s\n", name)
			cfg.Primary = name
		}
	}
}

func matchesAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
