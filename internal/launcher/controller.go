// Package launcher is the mode controller: given a requested operating mode
// and the resolved display names, it issues the ordered sequence of external
// tool calls that realizes that mode.
//
// There is no persisted "current mode". Every invocation is a fresh,
// idempotent application of a transition recipe over whatever hardware and
// display state actually exists, and the controller always moves forward to
// the next step rather than rolling back. Best-effort convergence is the
// design, matching the flaky hardware-control utilities underneath.
package launcher

import (
	"fmt"
	"os"
	"time"

	"xreal-launch/internal/config"
	"xreal-launch/internal/display"
	"xreal-launch/internal/hardware"
	"xreal-launch/internal/logger"
	"xreal-launch/internal/toolexec"
)

// External tool and service names the controller drives. All of them are
// placed on the PATH by the VRStack installer.
const (
	driverCLI        = "xr_driver_cli"
	driverProcess    = "xrDriver"
	monadoService    = "monado-service"
	stardustServer   = "stardust-xr-server"
	stardustFlatland = "stardust-xr-flatland"
	stardustHexagon  = "stardust-xr-hexagon_launcher"
	steamBin         = "steam"
)

// Display modes. SBS packs both eye images into one wide frame; reset
// restores a sane flat resolution on both outputs.
const (
	sbsVideoMode   = "3840x1080"
	resetVideoMode = "1920x1080"
)

// Environment for the monado-service child in vr mode.
const envForceXCB = "XRT_COMPOSITOR_FORCE_XCB=1"

// Controller sequences external tool calls for one mode invocation.
type Controller struct {
	Run  toolexec.Runner
	Sup  toolexec.Supervisor
	Disp display.Client
	HW   hardware.Prober
	Cfg  *config.Display
	Opts config.Launcher

	// ConfigDir is the user config root (normally ~/.config); the OpenXR
	// runtime descriptor is written under it.
	ConfigDir string

	// RuntimeDir is the user runtime dir ($XDG_RUNTIME_DIR), where the
	// Stardust server's socket shows up.
	RuntimeDir string

	// Sleep is time.Sleep, injectable for tests.
	Sleep func(time.Duration)
}

// New wires a Controller over the real runner and supervisor.
func New(cfg *config.Display, opts config.Launcher) *Controller {
	run := toolexec.ExecRunner{}
	confDir, err := os.UserConfigDir()
	if err != nil {
		confDir = ".config"
	}
	return &Controller{
		Run:        run,
		Sup:        toolexec.ExecSupervisor{},
		Disp:       display.Client{Run: run},
		HW:         hardware.Prober{Run: run},
		Cfg:        cfg,
		Opts:       opts,
		ConfigDir:  confDir,
		RuntimeDir: os.Getenv("XDG_RUNTIME_DIR"),
		Sleep:      time.Sleep,
	}
}

// Driver feature-flag invocations. The XR driver's CLI treats all of these as
// idempotent toggles.

func enableDriver() toolexec.Invocation {
	return toolexec.Invocation{Program: driverCLI, Args: []string{"-e"}}
}

func arDesktopFlag(on bool) toolexec.Invocation {
	return toolexec.Invocation{Program: driverCLI, Args: []string{"--external-mode", onOff(on)}}
}

func sbsFlag(on bool) toolexec.Invocation {
	return toolexec.Invocation{Program: driverCLI, Args: []string{"--sbs-mode", onOff(on)}}
}

func onOff(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}

// step executes one invocation under the controller's failure policy: fatal
// steps abort the mode with an error, everything else logs a warning and the
// sequence continues.
func (c *Controller) step(inv toolexec.Invocation) error {
	switch out := c.Run.Run(inv); out.Status {
	case toolexec.ToolMissing:
		if inv.FatalIfMissing {
			return fmt.Errorf("%s is not installed; run the VRStack installer first", inv.Program)
		}
		logger.Warn("[WARN] %s not found, skipping: %s\n", inv.Program, inv)
	case toolexec.CommandFailed:
		if inv.FatalIfFailed {
			return fmt.Errorf("%s exited %d", inv, out.ExitCode)
		}
		logger.Warn("[WARN] %s exited %d (continuing)\n", inv, out.ExitCode)
	}
	return nil
}

// guardDisplays refuses to start display reconfiguration with unusable output
// names. The original launcher had no such guard and would happily turn off
// the only display; requiring two distinct non-empty names is a deliberate
// deviation.
func (c *Controller) guardDisplays() error {
	if c.Cfg.Glasses == "" || c.Cfg.Primary == "" {
		return fmt.Errorf("display names must not be empty (glasses=%q primary=%q)", c.Cfg.Glasses, c.Cfg.Primary)
	}
	if c.Cfg.Glasses == c.Cfg.Primary {
		return fmt.Errorf("glasses and primary output are both %q; use -d/-p to disambiguate", c.Cfg.Glasses)
	}
	return nil
}

// Desktop puts the glasses into the flat AR-desktop mode: driver on, AR
// desktop effect on, side-by-side off.
func (c *Controller) Desktop() error {
	logger.Info("[INFO] Enabling AR desktop mode\n")
	for _, inv := range []toolexec.Invocation{
		enableDriver(),
		arDesktopFlag(true),
		sbsFlag(false),
	} {
		if err := c.step(inv); err != nil {
			return err
		}
	}
	logger.Info("[INFO] AR desktop mode enabled\n")
	return nil
}

// SideBySide switches the glasses to 3840x1080 stereo output and turns the
// laptop panel off so the stereo frame is the only thing rendered.
func (c *Controller) SideBySide() error {
	c.Disp.Resolve(c.Cfg)
	if err := c.guardDisplays(); err != nil {
		return err
	}

	logger.Info("[INFO] Enabling SBS mode (glasses=%s primary=%s)\n", c.Cfg.Glasses, c.Cfg.Primary)
	for _, inv := range []toolexec.Invocation{
		arDesktopFlag(false),
		enableDriver(),
		sbsFlag(true),
	} {
		if err := c.step(inv); err != nil {
			return err
		}
	}

	c.Disp.Off(c.Cfg.Primary)
	c.Disp.SetMode(c.Cfg.Glasses, sbsVideoMode)

	logger.Info("[INFO] SBS mode enabled; run '%s reset' to restore the desktop\n", progName())
	return nil
}

// Reset returns the machine to a plain desktop from whatever state a previous
// mode left behind: SBS off, both outputs back on at a safe resolution,
// driver and AR desktop effect re-enabled.
func (c *Controller) Reset() error {
	c.Disp.Resolve(c.Cfg)
	if err := c.guardDisplays(); err != nil {
		return err
	}

	logger.Info("[INFO] Resetting displays and driver state\n")
	if err := c.step(sbsFlag(false)); err != nil {
		return err
	}

	c.Disp.On(c.Cfg.Primary, resetVideoMode)
	c.Disp.On(c.Cfg.Glasses, resetVideoMode)

	for _, inv := range []toolexec.Invocation{
		enableDriver(),
		arDesktopFlag(true),
	} {
		if err := c.step(inv); err != nil {
			return err
		}
	}
	logger.Info("[INFO] Reset complete\n")
	return nil
}

// VR starts an OpenXR session: write the active-runtime descriptor so OpenXR
// loaders find Monado, then run monado-service in the foreground until it
// exits. Unlike the driver-flag tools, monado-service is a hard requirement.
func (c *Controller) VR() error {
	if !c.Run.Have(monadoService) {
		return fmt.Errorf("%s is not installed; run the VRStack installer first", monadoService)
	}

	path, err := c.writeRuntimeManifest()
	if err != nil {
		return err
	}
	logger.Info("[INFO] OpenXR runtime descriptor written to %s\n", path)

	env := []string{
		envForceXCB,
		fmt.Sprintf("XRT_COMPOSITOR_SCALE_PERCENTAGE=%d", c.Opts.RenderScale),
	}
	child, err := c.Sup.Spawn(monadoService, nil, env)
	if err != nil {
		return err
	}
	stop := toolexec.RelaySignals(child)
	defer stop()

	logger.Info("[INFO] monado-service running; press Ctrl-C to stop the VR session\n")
	if err := child.Wait(); err != nil {
		// Non-zero exit after Ctrl-C is the normal way down.
		logger.Warn("[WARN] monado-service exited: %v\n", err)
	}
	return nil
}

// Stardust runs the Stardust XR 3D desktop: the server first, then the 2D
// compatibility layer and the app launcher once the server is up, blocking on
// all of them for the life of the session.
func (c *Controller) Stardust() error {
	if !c.Run.Have(stardustServer) {
		return fmt.Errorf("%s is not installed; run the VRStack installer first", stardustServer)
	}

	server, err := c.Sup.Spawn(stardustServer, nil, nil)
	if err != nil {
		return err
	}
	logger.Info("[INFO] Stardust XR server starting\n")

	c.waitStardustReady(time.Duration(c.Opts.StardustWaitSecs) * time.Second)

	procs := []toolexec.Process{server}
	for _, companion := range []string{stardustFlatland, stardustHexagon} {
		if !c.Run.Have(companion) {
			logger.Debug("[DEBUG] %s not installed, skipping\n", companion)
			continue
		}
		child, err := c.Sup.Spawn(companion, nil, nil)
		if err != nil {
			logger.Warn("[WARN] Failed to start %s: %v\n", companion, err)
			continue
		}
		procs = append(procs, child)
	}

	stop := toolexec.RelaySignals(procs...)
	defer stop()

	logger.Info("[INFO] Stardust XR session running; press Ctrl-C to end it\n")
	if err := toolexec.WaitAll(procs...); err != nil {
		logger.Warn("[WARN] Stardust session ended: %v\n", err)
	}
	return nil
}

// waitStardustReady polls for the Stardust server socket, falling back to
// waiting out the full fixed delay when it never shows. The delay alone is
// what the original launcher did; the socket poll just gets the companions
// started sooner on fast machines.
func (c *Controller) waitStardustReady(timeout time.Duration) {
	const interval = 100 * time.Millisecond
	sock := c.RuntimeDir + "/stardust-0"
	for elapsed := time.Duration(0); elapsed < timeout; elapsed += interval {
		if c.RuntimeDir != "" {
			if _, err := os.Stat(sock); err == nil {
				logger.Debug("[DEBUG] Stardust socket up after %v\n", elapsed)
				return
			}
		}
		c.Sleep(interval)
	}
}

func progName() string {
	if len(os.Args) > 0 {
		return os.Args[0]
	}
	return "xreal-launch"
}
