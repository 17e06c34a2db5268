// Package styles holds the lipgloss styles used for terminal output.
//
// Styles are defined in the embedded styles.yaml with adaptive colors that
// follow light and dark terminal themes.
package styles

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	MarginBottom int    `yaml:"marginBottom,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed styles.yaml
var embeddedStyles []byte

var registry map[string]lipgloss.Style

func init() {
	if err := LoadDefaults(); err != nil {
		registry = map[string]lipgloss.Style{}
	}
}

// LoadDefaults loads the embedded styles.
func LoadDefaults() error {
	return LoadStylesFromData(embeddedStyles)
}

// LoadStylesFromData replaces the registry with the styles in data.
func LoadStylesFromData(data []byte) error {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse styles data: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	styles := make(map[string]lipgloss.Style, len(config.Styles))
	for name, def := range config.Styles {
		style := lipgloss.NewStyle().Bold(def.Bold).Italic(def.Italic)
		if color, ok := colors[def.Foreground]; ok {
			style = style.Foreground(color)
		}
		if def.MarginBottom > 0 {
			style = style.MarginBottom(def.MarginBottom)
		}
		styles[name] = style
	}
	registry = styles
	return nil
}

// GetStyle safely retrieves a style from the registry
func GetStyle(name string) lipgloss.Style {
	if style, ok := registry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Render applies the named style to s.
func Render(name, s string) string {
	return GetStyle(name).Render(s)
}
