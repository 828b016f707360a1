package models

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FlexTime is a start time that notes may declare either as an "HH:MM"
// string or as an integer number of minutes since midnight. Integer values
// are normalized to zero-padded "HH:MM" at decode time; string values pass
// through unchanged. The empty value means "not set".
type FlexTime string

// UnmarshalYAML accepts scalar ints, strings, and null.
func (t *FlexTime) UnmarshalYAML(node *yaml.Node) error {
	switch node.Tag {
	case "!!int":
		n, err := strconv.Atoi(node.Value)
		if err != nil {
			return fmt.Errorf("start time: %w", err)
		}
		if n <= 0 {
			// Zero is treated as unset, matching the portal's behavior.
			*t = ""
			return nil
		}
		*t = FlexTime(fmt.Sprintf("%02d:%02d", n/60, n%60))
	case "!!null":
		*t = ""
	default:
		*t = FlexTime(strings.TrimSpace(node.Value))
	}
	return nil
}

// HHMM returns the normalized value, or nil when unset.
func (t FlexTime) HHMM() *string {
	if t == "" {
		return nil
	}
	s := string(t)
	return &s
}
