// Package hardware probes the USB bus, video devices, and the process table
// for the pieces of the VRStack setup. Every probe is best-effort: a missing
// probe tool reads as "not detected", never as an error, because the launcher
// must keep working on machines where only part of the stack is installed.
package hardware

import (
	"fmt"
	"os"
	"strings"

	"xreal-launch/internal/toolexec"
)

// Glasses identifies a supported pair of AR glasses by its USB ids.
type Glasses struct {
	Name      string
	VendorID  string
	ProductID string
}

// knownGlasses is the table of supported hardware, matched against lsusb
// output. Ids must stay lowercase; matching is case-insensitive.
var knownGlasses = []Glasses{
	{"XREAL Air", "3318", "0424"},
	{"XREAL Air 2", "3318", "0428"},
	{"XREAL Air 2 Pro", "3318", "0432"},
	{"XREAL Air 2 Ultra", "3318", "0436"},
	{"Rokid Max", "04d2", "1a60"},
	{"Viture One", "35ca", "0102"},
}

// Webcam describes a detected camera, used by head tracking.
type Webcam struct {
	Name string
	Path string
}

// GPU describes the graphics adapter.
type GPU struct {
	Vendor string // nvidia, amd, or intel
	Name   string
}

// Prober runs the hardware probes through a toolexec.Runner.
type Prober struct {
	Run toolexec.Runner
}

// DetectGlasses scans the USB bus for a known pair of AR glasses.
func (p Prober) DetectGlasses() (Glasses, bool) {
	out, err := p.Run.Output("lsusb")
	if err != nil {
		return Glasses{}, false
	}
	return matchGlasses(out)
}

func matchGlasses(lsusbOut string) (Glasses, bool) {
	for _, line := range strings.Split(strings.ToLower(lsusbOut), "\n") {
		for _, g := range knownGlasses {
			if strings.Contains(line, g.VendorID+":"+g.ProductID) {
				return g, true
			}
		}
	}
	return Glasses{}, false
}

// DetectWebcam looks for a camera on /dev/video0..9, confirming each
// candidate with v4l2-ctl. The head-tracking components need one; the
// launcher only reports its presence.
func (p Prober) DetectWebcam() (Webcam, bool) {
	for i := 0; i < 10; i++ {
		dev := fmt.Sprintf("/dev/video%d", i)
		if _, err := os.Stat(dev); err != nil {
			continue
		}
		out, err := p.Run.Output("v4l2-ctl", "-d", dev, "--info")
		if err != nil || !strings.Contains(out, "Camera") {
			continue
		}
		return Webcam{Name: parseCardType(out), Path: dev}, true
	}
	return Webcam{}, false
}

// parseCardType extracts the "Card type" field from v4l2-ctl --info output.
// Card names themselves contain colons, so the name is everything after the
// last one.
func parseCardType(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Card type") {
			return strings.TrimSpace(line[strings.LastIndex(line, ":")+1:])
		}
	}
	return ""
}

// DetectGPU classifies the graphics adapter from lspci output.
func (p Prober) DetectGPU() (GPU, bool) {
	out, err := p.Run.Output("lspci")
	if err != nil {
		return GPU{}, false
	}
	return classifyGPU(out)
}

func classifyGPU(lspciOut string) (GPU, bool) {
	for _, line := range strings.Split(lspciOut, "\n") {
		if !strings.Contains(line, "VGA") && !strings.Contains(line, "3D") {
			continue
		}
		gpu := GPU{Name: strings.TrimSpace(line[strings.LastIndex(line, ":")+1:])}
		switch lower := strings.ToLower(line); {
		case strings.Contains(lower, "nvidia"):
			gpu.Vendor = "nvidia"
		case strings.Contains(lower, "amd"), strings.Contains(lower, "radeon"):
			gpu.Vendor = "amd"
		case strings.Contains(lower, "intel"):
			gpu.Vendor = "intel"
		}
		return gpu, true
	}
	return GPU{}, false
}

// ProcessRunning reports whether a process whose command line matches
// signature is alive, via pgrep -f.
func (p Prober) ProcessRunning(signature string) bool {
	out := p.Run.Run(toolexec.Invocation{Program: "pgrep", Args: []string{"-f", signature}})
	return out.Status == toolexec.Success
}
