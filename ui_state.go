package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bekirdag/bitscale-grid/internal/grid"
)

type uiConfig struct {
	Theme         string   `yaml:"theme,omitempty"`
	AutoRun       bool     `yaml:"auto_run,omitempty"`
	HiddenColumns []string `yaml:"hidden_columns,omitempty"`
	ExportDir     string   `yaml:"export_dir,omitempty"`
	ExportHook    string   `yaml:"export_hook,omitempty"`
}

func loadUIConfig(configDir string) (*uiConfig, string) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return &uiConfig{}, filepath.Join(configDir, "ui.yaml")
	}
	path := filepath.Join(configDir, "ui.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return &uiConfig{}, path
	}
	var cfg uiConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return &uiConfig{}, path
	}
	return &cfg, path
}

func saveUIConfig(cfg *uiConfig, path string) error {
	if cfg == nil {
		cfg = &uiConfig{}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode ui config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write ui config: %w", err)
	}
	return nil
}

func resolveConfigDir(override string) string {
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		return trimmed
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "bitscale-grid")
}

// visibleColumns turns the hidden list into the per-column map the grid
// uses. Unknown names are ignored.
func (c *uiConfig) visibleColumns() map[grid.Field]bool {
	visible := make(map[grid.Field]bool, len(grid.AllFields))
	for _, f := range grid.AllFields {
		visible[f] = true
	}
	if c == nil {
		return visible
	}
	for _, name := range c.HiddenColumns {
		if f, ok := grid.ParseField(name); ok {
			visible[f] = false
		}
	}
	return visible
}

func (c *uiConfig) setVisibleColumns(visible map[grid.Field]bool) {
	c.HiddenColumns = nil
	for _, f := range grid.AllFields {
		if !visible[f] {
			c.HiddenColumns = append(c.HiddenColumns, string(f))
		}
	}
}

func (c *uiConfig) resolveExportDir(configDir string) string {
	if c != nil && strings.TrimSpace(c.ExportDir) != "" {
		return expandHome(strings.TrimSpace(c.ExportDir))
	}
	return filepath.Join(configDir, "exports")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
