package fireworks

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/crazy3lf/colorconv"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// ErrInvalidColor is returned by ParseColor for tokens it cannot interpret.
var ErrInvalidColor = errors.New("invalid color")

// ParseColor converts a color token into a Color. Accepted forms are
// "#RGB", "#RRGGBB", "#RRGGBBAA" and CSS color names such as "white" or
// "tomato" (case-insensitive).
func ParseColor(token string) (Color, error) {
	s := strings.TrimSpace(token)
	if s == "" {
		return Color{}, fmt.Errorf("%w: empty token", ErrInvalidColor)
	}
	if s[0] != '#' {
		rgba, ok := colornames.Map[strings.ToLower(s)]
		if !ok {
			return Color{}, fmt.Errorf("%w: unknown name %q", ErrInvalidColor, token)
		}
		return Color{
			R: float64(rgba.R) / 255,
			G: float64(rgba.G) / 255,
			B: float64(rgba.B) / 255,
			A: float64(rgba.A) / 255,
		}, nil
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, token)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, token)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// MustParseColor is like ParseColor but panics on error. Intended for
// package-level palettes.
func MustParseColor(token string) Color {
	c, err := ParseColor(token)
	if err != nil {
		panic(err)
	}
	return c
}

// UnmarshalYAML decodes a color token string.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var token string
	if err := value.Decode(&token); err != nil {
		return err
	}
	parsed, err := ParseColor(token)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Palette is an ordered list of colors a blast samples from.
type Palette []Color

// ParsePalette parses every token in order.
func ParsePalette(tokens ...string) (Palette, error) {
	p := make(Palette, 0, len(tokens))
	for i, tok := range tokens {
		c, err := ParseColor(tok)
		if err != nil {
			return nil, fmt.Errorf("palette[%d]: %w", i, err)
		}
		p = append(p, c)
	}
	return p, nil
}

// DefaultPalette is red, green, blue, yellow and magenta.
var DefaultPalette = Palette{
	MustParseColor("#FF0000"),
	MustParseColor("#00FF00"),
	MustParseColor("#0000FF"),
	MustParseColor("#FFFF00"),
	MustParseColor("#FF00FF"),
}

// RainbowPalette returns n fully saturated colors with hues evenly spaced
// around the color wheel, starting at red.
func RainbowPalette(n int) Palette {
	if n <= 0 {
		return nil
	}
	p := make(Palette, 0, n)
	for i := 0; i < n; i++ {
		hue := 360 * float64(i) / float64(n)
		r, g, b, err := colorconv.HSVToRGB(hue, 1, 1)
		if err != nil {
			continue
		}
		p = append(p, Color{
			R: float64(r) / 255,
			G: float64(g) / 255,
			B: float64(b) / 255,
			A: 1,
		})
	}
	return p
}
