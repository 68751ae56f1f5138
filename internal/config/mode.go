package config

import (
	"fmt"
	"strings"
)

// Mode decides how an equation with a = 0 is treated
type Mode string

const (
	ModeGeneral   Mode = "general"   // a = 0 is solved as a linear or constant equation
	ModeQuadratic Mode = "quadratic" // a = 0 is rejected as invalid input
)

// ParseMode converts a string to Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "general", "":
		return ModeGeneral, nil
	case "quadratic":
		return ModeQuadratic, nil
	default:
		return "", fmt.Errorf("invalid mode %q (expected general|quadratic)", s)
	}
}

// RequiresQuadratic reports whether a = 0 must be rejected
func (m Mode) RequiresQuadratic() bool {
	return m == ModeQuadratic
}

// Output formats
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatMsgpack = "msgpack"
)

// ParseFormat normalizes an output format name
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case FormatText, FormatJSON, FormatYAML, FormatMsgpack:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("invalid output format %q (expected text|json|yaml|msgpack)", s)
	}
}
