package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRunManifest(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "mirdata.toml")
	data := `# test manifest
[import]
input_dir = "mirs"
output = "skl.mpk"
source_name = "bhive: skl"
scaling = 0.01
throughput_column = 3
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write mirdata.toml: %v", err)
	}

	manifest, found, err := loadRunManifest(root)
	if err != nil {
		t.Fatalf("loadRunManifest: %v", err)
	}
	if !found {
		t.Fatal("manifest not found")
	}
	mc := manifest.Config.Import
	if mc.InputDir != "mirs" {
		t.Fatalf("InputDir = %q, want mirs", mc.InputDir)
	}
	if mc.SourceName != "bhive: skl" {
		t.Fatalf("SourceName = %q, want %q", mc.SourceName, "bhive: skl")
	}
	if mc.Scaling == nil || *mc.Scaling != 0.01 {
		t.Fatalf("Scaling = %v, want 0.01", mc.Scaling)
	}
	if mc.ThroughputColumn == nil || *mc.ThroughputColumn != 3 {
		t.Fatalf("ThroughputColumn = %v, want 3", mc.ThroughputColumn)
	}
	if mc.NameColumn != nil {
		t.Fatalf("NameColumn = %v, want unset", mc.NameColumn)
	}
	if manifest.Root != root {
		t.Fatalf("Root = %q, want %q", manifest.Root, root)
	}
}

func TestLoadRunManifest_FoundInParent(t *testing.T) {
	root := t.TempDir()
	data := "[import]\nsource_name = \"uarch: znver2\"\n"
	if err := os.WriteFile(filepath.Join(root, "mirdata.toml"), []byte(data), 0o600); err != nil {
		t.Fatalf("write mirdata.toml: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	manifest, found, err := loadRunManifest(nested)
	if err != nil {
		t.Fatalf("loadRunManifest: %v", err)
	}
	if !found {
		t.Fatal("manifest in parent directory not found")
	}
	if got := manifest.Config.Import.SourceName; got != "uarch: znver2" {
		t.Fatalf("SourceName = %q, want %q", got, "uarch: znver2")
	}
}

func TestReadUIMode(t *testing.T) {
	for _, valid := range []string{"", "auto", "on", "off", "ON", " Off "} {
		if _, err := readUIMode(valid); err != nil {
			t.Fatalf("readUIMode(%q): %v", valid, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatal("readUIMode accepted invalid value")
	}
}
