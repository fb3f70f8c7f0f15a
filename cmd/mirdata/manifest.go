package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// runManifest is an optional mirdata.toml supplying defaults for import runs.
// Explicit flags always win over manifest values.
type runManifest struct {
	Path   string
	Root   string
	Config manifestConfig
}

type manifestConfig struct {
	Import importConfig `toml:"import"`
}

type importConfig struct {
	InputDir         string   `toml:"input_dir"`
	Output           string   `toml:"output"`
	SourceName       string   `toml:"source_name"`
	Scaling          *float64 `toml:"scaling"`
	Triple           string   `toml:"triple"`
	NameColumn       *int     `toml:"name_column"`
	ThroughputColumn *int     `toml:"throughput_column"`
	Delimiter        string   `toml:"delimiter"`
}

// findManifest walks up from startDir looking for mirdata.toml.
func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "mirdata.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadRunManifest loads the nearest mirdata.toml. A missing manifest is not
// an error; the second return value reports whether one was found.
func loadRunManifest(startDir string) (*runManifest, bool, error) {
	path, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, false, err
	}
	var cfg manifestConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, false, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &runManifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}
