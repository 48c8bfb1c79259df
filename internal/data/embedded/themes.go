// Package embedded provides access to embedded help theme files.
package embedded

import _ "embed"

// DefaultThemeData contains the embedded default theme YAML data.
//
//go:embed themes/default.yaml
var DefaultThemeData []byte

// PlainThemeData contains the embedded plain theme YAML data.
//
//go:embed themes/plain.yaml
var PlainThemeData []byte

// Themes maps each built-in theme name to its YAML data.
func Themes() map[string][]byte {
	return map[string][]byte{
		"default": DefaultThemeData,
		"plain":   PlainThemeData,
	}
}
