package launcher

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// runtimeLibrary is the Monado OpenXR runtime shared object named in the
// descriptor. The loader resolves it through the normal library search path.
const runtimeLibrary = "libopenxr_monado.so"

// runtimeManifest is the active-runtime descriptor consumed by OpenXR
// loaders. Field order mirrors the file other tooling writes; keep it stable
// so the emitted JSON stays byte-compatible.
type runtimeManifest struct {
	FileFormatVersion string `json:"file_format_version"`
	Runtime           struct {
		LibraryPath string `json:"library_path"`
	} `json:"runtime"`
}

// writeRuntimeManifest writes <ConfigDir>/openxr/1/active_runtime.json,
// creating parent directories as needed, and returns the written path.
func (c *Controller) writeRuntimeManifest() (string, error) {
	var m runtimeManifest
	m.FileFormatVersion = "1.0.0"
	m.Runtime.LibraryPath = runtimeLibrary

	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to encode OpenXR runtime descriptor: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Join(c.ConfigDir, "openxr", "1")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	path := filepath.Join(dir, "active_runtime.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
