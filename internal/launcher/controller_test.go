package launcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"xreal-launch/internal/config"
	"xreal-launch/internal/display"
	"xreal-launch/internal/hardware"
	"xreal-launch/internal/toolexec"
)

// fakeRunner records invocations in order and serves canned probe output.
type fakeRunner struct {
	have    map[string]bool
	outputs map[string]string
	ran     []toolexec.Invocation
}

func (f *fakeRunner) Have(prog string) bool { return f.have[prog] }

func (f *fakeRunner) Run(inv toolexec.Invocation) toolexec.Outcome {
	f.ran = append(f.ran, inv)
	if !f.have[inv.Program] {
		return toolexec.Outcome{Status: toolexec.ToolMissing}
	}
	return toolexec.Outcome{Status: toolexec.Success}
}

func (f *fakeRunner) Output(prog string, args ...string) (string, error) {
	out, ok := f.outputs[prog]
	if !ok {
		return "", errors.New("not installed")
	}
	return out, nil
}

// sequence renders recorded invocations as "prog arg arg" strings.
func (f *fakeRunner) sequence() []string {
	var s []string
	for _, inv := range f.ran {
		s = append(s, inv.String())
	}
	return s
}

type spawnRec struct {
	prog string
	args []string
	env  []string
}

type fakeChild struct {
	waited  bool
	signals []os.Signal
}

func (c *fakeChild) Wait() error                { c.waited = true; return nil }
func (c *fakeChild) Signal(sig os.Signal) error { c.signals = append(c.signals, sig); return nil }

type fakeSupervisor struct {
	spawned  []spawnRec
	children []*fakeChild
}

func (s *fakeSupervisor) Spawn(prog string, args []string, env []string) (toolexec.Process, error) {
	c := &fakeChild{}
	s.spawned = append(s.spawned, spawnRec{prog, args, env})
	s.children = append(s.children, c)
	return c, nil
}

func newTestController(t *testing.T, f *fakeRunner, sup *fakeSupervisor) *Controller {
	t.Helper()
	return &Controller{
		Run:  f,
		Sup:  sup,
		Disp: display.Client{Run: f},
		HW:   hardware.Prober{Run: f},
		Cfg: &config.Display{
			Glasses: "DP-9",
			Primary: "eDP-1",
		},
		Opts: config.Launcher{
			StardustWaitSecs: config.DefaultStardustWaitSecs,
			RenderScale:      config.DefaultRenderScale,
		},
		ConfigDir:  t.TempDir(),
		RuntimeDir: "",
		Sleep:      func(time.Duration) {},
	}
}

func assertSequence(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("invocation count = %d, want %d\n got: %q\nwant: %q", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("invocation %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDesktopSequence(t *testing.T) {
	f := &fakeRunner{have: map[string]bool{driverCLI: true}}
	c := newTestController(t, f, &fakeSupervisor{})

	if err := c.Desktop(); err != nil {
		t.Fatalf("Desktop() = %v", err)
	}
	assertSequence(t, f.sequence(), []string{
		"xr_driver_cli -e",
		"xr_driver_cli --external-mode enabled",
		"xr_driver_cli --sbs-mode disabled",
	})
}

func TestSideBySideSequence(t *testing.T) {
	f := &fakeRunner{
		have: map[string]bool{driverCLI: true, "xrandr": true},
		outputs: map[string]string{
			"xrandr": "eDP-1 connected primary 1920x1080+0+0\nDP-9 connected 3840x1080+0+0\n",
		},
	}
	c := newTestController(t, f, &fakeSupervisor{})

	if err := c.SideBySide(); err != nil {
		t.Fatalf("SideBySide() = %v", err)
	}
	assertSequence(t, f.sequence(), []string{
		"xr_driver_cli --external-mode disabled",
		"xr_driver_cli -e",
		"xr_driver_cli --sbs-mode enabled",
		"xrandr --output eDP-1 --off",
		"xrandr --output DP-9 --mode 3840x1080 --scale 1x1",
	})
}

func TestSideBySideWithToolsMissing(t *testing.T) {
	// No tool is installed at all: every step is still attempted (and
	// recorded), nothing is fatal, the mode "succeeds".
	f := &fakeRunner{}
	c := newTestController(t, f, &fakeSupervisor{})

	if err := c.SideBySide(); err != nil {
		t.Fatalf("SideBySide() with nothing installed = %v", err)
	}
	if len(f.ran) != 5 {
		t.Errorf("expected all 5 steps attempted, got %d: %q", len(f.ran), f.sequence())
	}
}

func TestResetSequence(t *testing.T) {
	f := &fakeRunner{have: map[string]bool{driverCLI: true, "xrandr": true}}
	c := newTestController(t, f, &fakeSupervisor{})

	if err := c.Reset(); err != nil {
		t.Fatalf("Reset() = %v", err)
	}
	assertSequence(t, f.sequence(), []string{
		"xr_driver_cli --sbs-mode disabled",
		"xrandr --output eDP-1 --mode 1920x1080 --scale 1x1",
		"xrandr --output DP-9 --mode 1920x1080 --scale 1x1",
		"xr_driver_cli -e",
		"xr_driver_cli --external-mode enabled",
	})
}

func TestDisplayGuard(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Display
	}{
		{"equal names", config.Display{Glasses: "eDP-1", Primary: "eDP-1", GlassesFromFlag: true, PrimaryFromFlag: true}},
		{"empty glasses", config.Display{Glasses: "", Primary: "eDP-1", GlassesFromFlag: true, PrimaryFromFlag: true}},
		{"empty primary", config.Display{Glasses: "DP-9", Primary: "", GlassesFromFlag: true, PrimaryFromFlag: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeRunner{}
			c := newTestController(t, f, &fakeSupervisor{})
			cfg := tt.cfg
			c.Cfg = &cfg

			if err := c.SideBySide(); err == nil {
				t.Error("SideBySide() should refuse unusable display names")
			}
			if len(f.ran) != 0 {
				t.Errorf("no invocation may run before the guard, got %q", f.sequence())
			}
		})
	}
}

func TestVRRequiresMonado(t *testing.T) {
	f := &fakeRunner{} // monado-service absent
	sup := &fakeSupervisor{}
	c := newTestController(t, f, sup)

	if err := c.VR(); err == nil {
		t.Fatal("VR() without monado-service should fail")
	}
	if len(sup.spawned) != 0 {
		t.Errorf("no child may be spawned, got %v", sup.spawned)
	}
	if _, err := os.Stat(filepath.Join(c.ConfigDir, "openxr")); !os.IsNotExist(err) {
		t.Error("no runtime descriptor may be written when the mode aborts")
	}
}

func TestVRSession(t *testing.T) {
	f := &fakeRunner{have: map[string]bool{monadoService: true}}
	sup := &fakeSupervisor{}
	c := newTestController(t, f, sup)

	if err := c.VR(); err != nil {
		t.Fatalf("VR() = %v", err)
	}

	if len(sup.spawned) != 1 || sup.spawned[0].prog != monadoService {
		t.Fatalf("spawned = %v, want exactly monado-service", sup.spawned)
	}
	wantEnv := []string{"XRT_COMPOSITOR_FORCE_XCB=1", "XRT_COMPOSITOR_SCALE_PERCENTAGE=140"}
	env := sup.spawned[0].env
	if len(env) != len(wantEnv) || env[0] != wantEnv[0] || env[1] != wantEnv[1] {
		t.Errorf("child env = %v, want %v", env, wantEnv)
	}
	if !sup.children[0].waited {
		t.Error("VR() must block on monado-service")
	}
	if _, err := os.Stat(filepath.Join(c.ConfigDir, "openxr", "1", "active_runtime.json")); err != nil {
		t.Errorf("runtime descriptor missing: %v", err)
	}
}

func TestStardustRequiresServer(t *testing.T) {
	f := &fakeRunner{}
	sup := &fakeSupervisor{}
	c := newTestController(t, f, sup)

	if err := c.Stardust(); err == nil {
		t.Fatal("Stardust() without the server should fail")
	}
	if len(sup.spawned) != 0 {
		t.Errorf("no child may be spawned, got %v", sup.spawned)
	}
}

func TestStardustSession(t *testing.T) {
	// Server and flatland installed, hexagon launcher not.
	f := &fakeRunner{have: map[string]bool{stardustServer: true, stardustFlatland: true}}
	sup := &fakeSupervisor{}
	c := newTestController(t, f, sup)

	if err := c.Stardust(); err != nil {
		t.Fatalf("Stardust() = %v", err)
	}

	if len(sup.spawned) != 2 {
		t.Fatalf("spawned = %v, want server + flatland", sup.spawned)
	}
	if sup.spawned[0].prog != stardustServer || sup.spawned[1].prog != stardustFlatland {
		t.Errorf("spawn order = %v, want server first", sup.spawned)
	}
	for i, child := range sup.children {
		if !child.waited {
			t.Errorf("child %d (%s) was not waited on", i, sup.spawned[i].prog)
		}
	}
}

func TestGameEmptyName(t *testing.T) {
	f := &fakeRunner{}
	sup := &fakeSupervisor{}
	c := newTestController(t, f, sup)

	if err := c.Game("  "); err == nil {
		t.Fatal("Game with an empty name should fail")
	}
	if len(f.ran) != 0 || len(sup.spawned) != 0 {
		t.Error("an empty game name must not trigger the SBS sequence")
	}
}

func TestGameLaunchesViaSteam(t *testing.T) {
	library := t.TempDir()
	if err := os.Mkdir(filepath.Join(library, "Beat Saber"), 0o755); err != nil {
		t.Fatal(err)
	}

	f := &fakeRunner{have: map[string]bool{driverCLI: true, "xrandr": true, steamBin: true}}
	c := newTestController(t, f, &fakeSupervisor{})
	c.Opts.GameDirs = []string{library}

	if err := c.Game("beat"); err != nil {
		t.Fatalf("Game() = %v", err)
	}

	last := f.ran[len(f.ran)-1]
	if last.Program != steamBin || last.Args[0] != "steam://rungameid/beat" {
		t.Errorf("last invocation = %v, want the steam launch request", last)
	}
}

func TestGameLaunchesEvenWhenNotInLibrary(t *testing.T) {
	// Found vs not found only changes the log line; the launch request is
	// issued either way.
	f := &fakeRunner{have: map[string]bool{steamBin: true}}
	c := newTestController(t, f, &fakeSupervisor{})
	c.Opts.GameDirs = []string{t.TempDir()}

	if err := c.Game("definitely-not-installed"); err != nil {
		t.Fatalf("Game() = %v", err)
	}
	last := f.ran[len(f.ran)-1]
	if last.Program != steamBin {
		t.Errorf("last invocation = %v, want steam", last)
	}
}

func TestFindGame(t *testing.T) {
	library := t.TempDir()
	for _, dir := range []string{"Beat Saber", "Half-Life Alyx"} {
		if err := os.Mkdir(filepath.Join(library, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	// Files are not games.
	if err := os.WriteFile(filepath.Join(library, "beat.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	c := newTestController(t, &fakeRunner{}, &fakeSupervisor{})
	c.Opts.GameDirs = []string{filepath.Join(library, "missing"), library}

	tests := []struct {
		needle string
		want   string
		wantOK bool
	}{
		{"beat", filepath.Join(library, "Beat Saber"), true},
		{"ALYX", filepath.Join(library, "Half-Life Alyx"), true},
		{"portal", "", false},
	}
	for _, tt := range tests {
		got, ok := c.findGame(tt.needle)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("findGame(%q) = (%q, %v), want (%q, %v)", tt.needle, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestStatusIsPure(t *testing.T) {
	f := &fakeRunner{
		have: map[string]bool{"pgrep": true},
		outputs: map[string]string{
			"lsusb":         "Bus 003 Device 012: ID 3318:0428 MRG XREAL Air 2\n",
			"lspci":         "00:02.0 VGA compatible controller: Intel Corporation Iris Xe\n",
			"xrandr":        "eDP-1 connected primary 1920x1080+0+0\nDP-9 connected 3840x1080+0+0\n",
			"xr_driver_cli": "driver: enabled\nsbs_mode: enabled\n",
		},
	}
	sup := &fakeSupervisor{}
	c := newTestController(t, f, sup)

	var first Snapshot
	for i := 0; i < 3; i++ {
		first = c.Status()
	}

	if len(sup.spawned) != 0 {
		t.Errorf("Status must not spawn processes, got %v", sup.spawned)
	}
	if entries, err := os.ReadDir(c.ConfigDir); err != nil || len(entries) != 0 {
		t.Errorf("Status must not write files, found %v (err %v)", entries, err)
	}
	for _, inv := range f.ran {
		if inv.Program != "pgrep" {
			t.Errorf("Status ran a non-probe command: %v", inv)
		}
	}

	if !first.GlassesConnected || first.GlassesModel != "XREAL Air 2" {
		t.Errorf("glasses not detected from lsusb output: %+v", first)
	}
	if !first.DriverRunning || !first.CompositorRunning || !first.DesktopShellRunning {
		t.Errorf("process liveness not reported: %+v", first)
	}
	if !first.SBSEnabled {
		t.Error("SBS flag from driver status not reported")
	}
	if len(first.Displays) != 2 {
		t.Errorf("Displays = %v, want eDP-1 and DP-9", first.Displays)
	}
}
