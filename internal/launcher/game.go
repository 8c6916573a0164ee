package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"xreal-launch/internal/logger"
	"xreal-launch/internal/toolexec"
)

// Game puts the system into SBS mode and then asks Steam to launch the named
// game. The library search only affects what gets logged: whether or not a
// matching install directory is found, the same launch request goes to Steam
// with the user's name as the identifier. That is how the original launcher
// behaved (likely it was meant to pass the resolved path when found); it is
// preserved here unchanged rather than silently redesigned.
func (c *Controller) Game(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("game mode requires a game name")
	}

	if err := c.SideBySide(); err != nil {
		return err
	}

	if path, found := c.findGame(name); found {
		logger.Info("[INFO] Found %q in library at %s\n", name, path)
	} else {
		logger.Warn("[WARN] %q not found in any Steam library; asking Steam to launch it anyway\n", name)
	}

	return c.step(toolexec.Invocation{
		Program: steamBin,
		Args:    []string{"steam://rungameid/" + name},
	})
}

// findGame scans the configured Steam library roots one level deep for a
// directory whose name contains the given name, case-insensitively.
func (c *Controller) findGame(name string) (string, bool) {
	needle := strings.ToLower(name)
	for _, dir := range c.Opts.GameDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			// Library roots that don't exist on this machine are expected.
			continue
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			if strings.Contains(strings.ToLower(e.Name()), needle) {
				return filepath.Join(dir, e.Name()), true
			}
		}
	}
	return "", false
}
