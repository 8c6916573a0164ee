package launcher

import (
	"strings"

	"xreal-launch/internal/logger"
)

// Snapshot aggregates hardware, display, and process state at one instant.
// It is recomputed on every status query and never cached: glasses get
// unplugged and services die between invocations.
type Snapshot struct {
	GlassesConnected bool
	GlassesModel     string
	WebcamPresent    bool
	WebcamName       string
	GPUVendor        string
	GPUName          string

	DriverRunning       bool
	CompositorRunning   bool
	DesktopShellRunning bool

	Displays   []string
	SBSEnabled bool
}

// Status is a pure query: it probes and reads but never writes a file,
// changes a flag, or spawns a service.
func (c *Controller) Status() Snapshot {
	var s Snapshot

	if g, ok := c.HW.DetectGlasses(); ok {
		s.GlassesConnected = true
		s.GlassesModel = g.Name
	}
	if w, ok := c.HW.DetectWebcam(); ok {
		s.WebcamPresent = true
		s.WebcamName = w.Name
	}
	if g, ok := c.HW.DetectGPU(); ok {
		s.GPUVendor = g.Vendor
		s.GPUName = g.Name
	}

	s.DriverRunning = c.HW.ProcessRunning(driverProcess)
	s.CompositorRunning = c.HW.ProcessRunning(monadoService)
	s.DesktopShellRunning = c.HW.ProcessRunning(stardustServer)

	s.Displays = c.Disp.List()
	s.SBSEnabled = c.driverSBSEnabled()

	return s
}

// driverSBSEnabled asks the driver CLI for its reported feature-flag state.
// A missing or unhappy driver CLI reads as SBS off.
func (c *Controller) driverSBSEnabled() bool {
	out, err := c.Run.Output(driverCLI, "--status")
	if err != nil {
		return false
	}
	for _, line := range strings.Split(strings.ToLower(out), "\n") {
		if strings.Contains(line, "sbs") &&
			(strings.Contains(line, "enabled") || strings.Contains(line, "true")) {
			return true
		}
	}
	return false
}

// Render prints the snapshot as a colorized report, in the same spirit as the
// installer's hardware summary.
func (s Snapshot) Render() {
	renderItem(s.GlassesConnected, "AR Glasses", s.GlassesModel, "not connected")
	renderItem(s.WebcamPresent, "Webcam", s.WebcamName, "not detected (needed for head tracking)")
	renderItem(s.GPUName != "", "GPU", s.GPUName+" ("+s.GPUVendor+")", "not detected")

	renderItem(s.DriverRunning, "XR driver", "running", "not running")
	renderItem(s.CompositorRunning, "OpenXR runtime", "monado-service running", "not running")
	renderItem(s.DesktopShellRunning, "Stardust XR", "server running", "not running")

	if len(s.Displays) > 0 {
		logger.Info("  Displays: %s\n", strings.Join(s.Displays, ", "))
	} else {
		logger.Warn("  Displays: none reported (display tool missing?)\n")
	}
	if s.SBSEnabled {
		logger.Info("  SBS mode: enabled\n")
	} else {
		logger.Info("  SBS mode: disabled\n")
	}
}

func renderItem(ok bool, label, okText, missingText string) {
	if ok {
		logger.Info("  %s: %s\n", label, okText)
	} else {
		logger.Warn("  %s: %s\n", label, missingText)
	}
}
