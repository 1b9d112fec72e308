package dom

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// parseColor parses an SVG color value. It returns none=true for "none"
// (no paint at all) and ok=false for paint servers the model does not
// support (url() references to gradients or patterns).
func parseColor(v string) (c color.NRGBA, none, ok bool, err error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "" || v == "none":
		return color.NRGBA{}, true, false, nil

	case strings.HasPrefix(v, "url("):
		return color.NRGBA{}, false, false, nil

	case v == "currentColor":
		// No inherited color context exists for standalone icons.
		return color.NRGBA{A: 0xff}, false, true, nil

	case strings.HasPrefix(v, "#"):
		c, err = parseHexColor(v[1:])
		return c, false, err == nil, err

	case strings.HasPrefix(v, "rgba(") && strings.HasSuffix(v, ")"):
		c, err = parseRGBFunc(v[5:len(v)-1], true)
		return c, false, err == nil, err

	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		c, err = parseRGBFunc(v[4:len(v)-1], false)
		return c, false, err == nil, err
	}

	if rgba, found := colornames.Map[strings.ToLower(v)]; found {
		return color.NRGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A}, false, true, nil
	}
	return color.NRGBA{}, false, false, fmt.Errorf("dom: unknown color %q", v)
}

func parseHexColor(hex string) (color.NRGBA, error) {
	parse := func(s string) (uint8, error) {
		n, err := strconv.ParseUint(s, 16, 8)
		return uint8(n), err
	}
	parseShort := func(b byte) (uint8, error) {
		n, err := strconv.ParseUint(string(b), 16, 8)
		return uint8(n * 17), err
	}

	c := color.NRGBA{A: 0xff}
	var err error
	switch len(hex) {
	case 3, 4:
		if c.R, err = parseShort(hex[0]); err != nil {
			break
		}
		if c.G, err = parseShort(hex[1]); err != nil {
			break
		}
		if c.B, err = parseShort(hex[2]); err != nil {
			break
		}
		if len(hex) == 4 {
			c.A, err = parseShort(hex[3])
		}
	case 6, 8:
		if c.R, err = parse(hex[0:2]); err != nil {
			break
		}
		if c.G, err = parse(hex[2:4]); err != nil {
			break
		}
		if c.B, err = parse(hex[4:6]); err != nil {
			break
		}
		if len(hex) == 8 {
			c.A, err = parse(hex[6:8])
		}
	default:
		err = fmt.Errorf("dom: bad hex color length %d", len(hex))
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("dom: bad hex color %q: %w", hex, err)
	}
	return c, nil
}

// parseRGBFunc parses the argument list of rgb() or rgba(). Components
// may be integers 0-255 or percentages.
func parseRGBFunc(args string, hasAlpha bool) (color.NRGBA, error) {
	parts := strings.FieldsFunc(args, func(r rune) bool {
		return r == ',' || r == ' '
	})
	want := 3
	if hasAlpha {
		want = 4
	}
	if len(parts) != want {
		return color.NRGBA{}, fmt.Errorf("dom: rgb() expects %d components, got %d", want, len(parts))
	}

	component := func(s string) (uint8, error) {
		s = strings.TrimSpace(s)
		if strings.HasSuffix(s, "%") {
			f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
			if err != nil {
				return 0, err
			}
			return clampByte(f * 255 / 100), nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		return clampByte(f), nil
	}

	c := color.NRGBA{A: 0xff}
	var err error
	if c.R, err = component(parts[0]); err != nil {
		return color.NRGBA{}, fmt.Errorf("dom: bad rgb() component: %w", err)
	}
	if c.G, err = component(parts[1]); err != nil {
		return color.NRGBA{}, fmt.Errorf("dom: bad rgb() component: %w", err)
	}
	if c.B, err = component(parts[2]); err != nil {
		return color.NRGBA{}, fmt.Errorf("dom: bad rgb() component: %w", err)
	}
	if hasAlpha {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("dom: bad rgba() alpha: %w", err)
		}
		c.A = clampByte(a * 255)
	}
	return c, nil
}

func clampByte(f float64) uint8 {
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(f + 0.5)
}
