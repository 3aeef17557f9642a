package gamedata

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Color is a display colour stored in the data files as "#RRGGBB".
type Color struct {
	tcell.Color
}

// UnmarshalJSON accepts a hex string; an empty string leaves the default colour.
func (c *Color) UnmarshalJSON(b []byte) error {
	var hex string
	if err := json.Unmarshal(b, &hex); err != nil {
		return fmt.Errorf("color must be a string: %w", err)
	}
	if hex == "" {
		c.Color = tcell.ColorDefault
		return nil
	}
	parsed, err := ParseHexColor(hex)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// Or returns c, or fallback when c was never set.
func (c Color) Or(fallback tcell.Color) tcell.Color {
	if c.Color == tcell.ColorDefault {
		return fallback
	}
	return c.Color
}

// ParseHexColor converts "#RRGGBB" (the # is optional) to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q: want 6 digits", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(rgb>>16&0xFF), int32(rgb>>8&0xFF), int32(rgb&0xFF)), nil
}
