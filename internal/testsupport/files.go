package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Descriptor mirrors the metadata.json layout for fixtures.
type Descriptor struct {
	Author      string   `json:"author"`
	Class       string   `json:"class"`
	Fits        []string `json:"fits"`
	License     string   `json:"license"`
	Description string   `json:"description"`
}

// WriteDescriptor writes d as root/system/device/part/metadata.json and
// returns the file path.
func WriteDescriptor(t testing.TB, root, system, device, part string, d Descriptor) string {
	t.Helper()

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		t.Fatalf("marshal descriptor: %v", err)
	}
	return WriteRawDescriptor(t, root, system, device, part, string(data))
}

// WriteRawDescriptor writes content verbatim as a descriptor file, for
// malformed fixtures.
func WriteRawDescriptor(t testing.TB, root, system, device, part, content string) string {
	t.Helper()

	path := filepath.Join(root, system, device, part, "metadata.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
