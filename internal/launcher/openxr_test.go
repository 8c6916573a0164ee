package launcher

import (
	"os"
	"path/filepath"
	"testing"
)

// The descriptor must stay byte-compatible with what OpenXR loaders expect:
// exact key order and the fixed format version.
const wantManifest = `{
    "file_format_version": "1.0.0",
    "runtime": {
        "library_path": "libopenxr_monado.so"
    }
}
`

func TestWriteRuntimeManifest(t *testing.T) {
	c := &Controller{ConfigDir: t.TempDir()}

	path, err := c.writeRuntimeManifest()
	if err != nil {
		t.Fatalf("writeRuntimeManifest() = %v", err)
	}
	want := filepath.Join(c.ConfigDir, "openxr", "1", "active_runtime.json")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != wantManifest {
		t.Errorf("descriptor mismatch:\n got: %q\nwant: %q", data, wantManifest)
	}
}

func TestWriteRuntimeManifestOverwrites(t *testing.T) {
	c := &Controller{ConfigDir: t.TempDir()}

	dir := filepath.Join(c.ConfigDir, "openxr", "1")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(dir, "active_runtime.json")
	if err := os.WriteFile(stale, []byte(`{"runtime":{"library_path":"other.so"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := c.writeRuntimeManifest(); err != nil {
		t.Fatalf("writeRuntimeManifest() = %v", err)
	}
	data, err := os.ReadFile(stale)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != wantManifest {
		t.Error("a stale descriptor from another runtime must be replaced")
	}
}
