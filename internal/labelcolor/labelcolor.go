// Package labelcolor holds the label color palette and hex validation.
package labelcolor

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// HexCodeLength is the length of a valid code including the leading '#'.
const HexCodeLength = 7

// MaxNameLength caps label names.
const MaxNameLength = 75

// DefaultHex is the color preselected for new labels.
const DefaultHex = "#326BBA"

// CustomID identifies the palette entry that switches to free hex input.
const CustomID = "custom"

// Color is a palette entry.
type Color struct {
	ID     string
	Hex    string
	Name   string
	Custom bool
}

// Presets is the palette offered by the label form, custom entry first.
var Presets = []Color{
	{ID: CustomID, Hex: "#RRRRRR", Name: "Custom Hexcode", Custom: true},
	{ID: "label-preset-sapphire", Hex: "#326BBA", Name: "Sapphire"},
	{ID: "label-preset-ocean", Hex: "#4591ED", Name: "Ocean"},
	{ID: "label-preset-pool", Hex: "#22ADF6", Name: "Pool"},
	{ID: "label-preset-laser", Hex: "#00C9FF", Name: "Laser"},
	{ID: "label-preset-hydrogen", Hex: "#6BDFFF", Name: "Hydrogen"},
	{ID: "label-preset-neutrino", Hex: "#BEF0FF", Name: "Neutrino"},
}

// PresetIndex returns the palette position whose hex matches, ignoring
// case, or 0 (custom) when the color is not a preset.
func PresetIndex(hex string) int {
	for i, c := range Presets {
		if !c.Custom && strings.EqualFold(c.Hex, hex) {
			return i
		}
	}
	return 0
}

// ValidateHexCode accepts exactly '#' followed by six hex digits. The error
// lists every rule the input breaks.
func ValidateHexCode(hex string) error {
	var problems []string
	if !validCharacters(hex) {
		problems = append(problems, "Hexcodes must begin with # and include A-F 0-9")
	}
	if len(hex) != HexCodeLength {
		problems = append(problems, fmt.Sprintf("Hexcodes must be %d characters", HexCodeLength))
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%s", strings.Join(problems, ", "))
}

func validCharacters(hex string) bool {
	if len(hex) < 2 || hex[0] != '#' {
		return false
	}
	for i := 1; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// ValidateName checks a label name: required and at most MaxNameLength
// characters.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("Label name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("Label name must be at most %d characters", MaxNameLength)
	}
	return nil
}
