// Package export holds branding configuration shared by the PDF, XLSX and
// text builders.
package export

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Branding controls the header, footer and accent color of exports.
type Branding struct {
	AppName    string `yaml:"app_name"`
	Footer     string `yaml:"footer"`
	Disclaimer string `yaml:"disclaimer"`
	AccentHex  string `yaml:"accent_hex"`
}

// DefaultBranding matches the mobile app's built-in export styling.
func DefaultBranding() Branding {
	return Branding{
		AppName:    "ProFee",
		Footer:     "Prepared by ProFee",
		Disclaimer: "This statement is an estimate prepared for informational purposes and is not a closing disclosure. Verify all figures with your broker and title company.",
		AccentHex:  "#22D3EE",
	}
}

// LoadBranding loads branding from the yaml file named by EXPORT_CONFIG,
// falling back to defaults for any unset field.
func LoadBranding() (Branding, error) {
	cfg := DefaultBranding()
	path := os.Getenv("EXPORT_CONFIG")
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	var loaded Branding
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return cfg, err
	}
	if loaded.AppName != "" {
		cfg.AppName = loaded.AppName
	}
	if loaded.Footer != "" {
		cfg.Footer = loaded.Footer
	}
	if loaded.Disclaimer != "" {
		cfg.Disclaimer = loaded.Disclaimer
	}
	if loaded.AccentHex != "" {
		cfg.AccentHex = loaded.AccentHex
	}
	return cfg, nil
}

// AccentRGB parses the accent color. Malformed values fall back to the
// default accent.
func (b Branding) AccentRGB() (int, int, int) {
	r, g, bl, err := parseHexColor(b.AccentHex)
	if err != nil {
		return parseDefaultAccent()
	}
	return r, g, bl
}

func parseDefaultAccent() (int, int, int) {
	r, g, b, _ := parseHexColor(DefaultBranding().AccentHex)
	return r, g, b
}

func parseHexColor(value string) (int, int, int, error) {
	value = strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(value) != 6 {
		return 0, 0, 0, fmt.Errorf("export: bad color %q", value)
	}
	var r, g, b int
	if _, err := fmt.Sscanf(value, "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0, err
	}
	return r, g, b, nil
}
