package config

// Built-in display defaults. DP-9 is where GNOME typically lands the glasses'
// virtual output on the machines VRStack targets; eDP-1 is the usual laptop
// panel connector.
const (
	DefaultGlassesDisplay = "DP-9"
	DefaultPrimaryDisplay = "eDP-1"
)

// Launcher option defaults.
const (
	DefaultStardustWaitSecs = 2   // startup delay before Stardust companion clients
	DefaultRenderScale      = 140 // Monado compositor render scale percentage
)

// Display names the two display-server outputs the launcher reconfigures.
// Values are layered in order: built-in defaults, then displays.conf, then
// explicit CLI flags. The FromFlag markers record which fields the user pinned
// on the command line so that auto-detection never overwrites them.
type Display struct {
	Glasses string // output identifier of the AR glasses (e.g. DP-9)
	Primary string // output identifier of the laptop panel (e.g. eDP-1)

	GlassesFromFlag bool
	PrimaryFromFlag bool
}

// Launcher holds the optional launcher knobs read from launcher.yaml.
type Launcher struct {
	// GameDirs are the Steam library roots searched by the game mode. The
	// standard per-user Steam locations are always included; entries from the
	// config file are appended.
	GameDirs []string `yaml:"game_dirs"`

	// StardustWaitSecs bounds the wait for the Stardust server to come up
	// before its companion clients are started.
	StardustWaitSecs int `yaml:"stardust_wait_secs"`

	// RenderScale is exported to monado-service as
	// XRT_COMPOSITOR_SCALE_PERCENTAGE for the vr mode.
	RenderScale int `yaml:"render_scale"`
}
