package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"xreal-launch/internal/logger"
)

// DisplaysPath returns the path of the persisted display-name preferences,
// ~/.config/VRStack/displays.conf. The file is written by the VRStack
// installer and by users directly; the launcher only ever reads it.
func DisplaysPath() string {
	return filepath.Join(configDir(), "VRStack", "displays.conf")
}

// LauncherPath returns the path of the optional launcher config,
// ~/.config/VRStack/launcher.yaml.
func LauncherPath() string {
	return filepath.Join(configDir(), "VRStack", "launcher.yaml")
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		// Degenerate environment without HOME; relative path keeps us going.
		return ".config"
	}
	return dir
}

// LoadDisplays reads the KEY=VALUE display preferences file at path and
// returns a Display seeded from the built-in defaults. The file is
// shell-sourced by other VRStack tooling, so the parser accepts the shell
// subset actually found in it: blank lines, # comments, and single- or
// double-quoted values. Unknown keys and malformed lines are ignored.
//
// LoadDisplays never fails: a missing or unreadable file simply yields the
// defaults, per the launcher's policy that config input must not kill a mode.
func LoadDisplays(path string) Display {
	cfg := Display{
		Glasses: DefaultGlassesDisplay,
		Primary: DefaultPrimaryDisplay,
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Debug("[DEBUG] No displays.conf at %s, using defaults\n", path)
		return cfg
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := parseConfLine(scanner.Text())
		if !ok {
			continue
		}
		switch key {
		case "GLASSES_DISPLAY":
			cfg.Glasses = value
		case "PRIMARY_DISPLAY":
			cfg.Primary = value
		default:
			logger.Debug("[DEBUG] Ignoring unknown displays.conf key %q\n", key)
		}
	}
	if err := scanner.Err(); err != nil {
		// Partial reads fall back to whatever was parsed so far.
		logger.Warn("[WARN] Failed reading %s: %v\n", path, err)
	}
	return cfg
}

// parseConfLine splits one displays.conf line into key and value. It reports
// ok=false for comments, blank lines, and anything that is not KEY=VALUE.
func parseConfLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false
	}
	value = strings.TrimSpace(value)
	// Strip one level of shell quoting.
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
	}
	return key, value, true
}

// LoadLauncher reads the optional launcher.yaml at path. Like LoadDisplays it
// never fails; a missing or malformed file yields the defaults, and zero/empty
// fields in a valid file are filled in with defaults.
func LoadLauncher(path string) Launcher {
	opts := Launcher{
		StardustWaitSecs: DefaultStardustWaitSecs,
		RenderScale:      DefaultRenderScale,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		// launcher.yaml nests everything under a "launcher" key, matching the
		// other VRStack config files.
		var wrapper struct {
			Launcher Launcher `yaml:"launcher"`
		}
		if err := yaml.Unmarshal(raw, &wrapper); err != nil {
			logger.Warn("[WARN] Malformed %s, using defaults: %v\n", path, err)
		} else {
			if len(wrapper.Launcher.GameDirs) > 0 {
				opts.GameDirs = wrapper.Launcher.GameDirs
			}
			if wrapper.Launcher.StardustWaitSecs > 0 {
				opts.StardustWaitSecs = wrapper.Launcher.StardustWaitSecs
			}
			if wrapper.Launcher.RenderScale > 0 {
				opts.RenderScale = wrapper.Launcher.RenderScale
			}
		}
	}

	opts.GameDirs = append(steamLibraryDirs(), opts.GameDirs...)
	return opts
}

// steamLibraryDirs lists the standard per-user Steam library roots, native
// and flatpak, without checking that they exist. The game search tolerates
// absent directories.
func steamLibraryDirs() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".steam", "steam", "steamapps", "common"),
		filepath.Join(home, ".local", "share", "Steam", "steamapps", "common"),
		filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".steam", "steam", "steamapps", "common"),
	}
}
