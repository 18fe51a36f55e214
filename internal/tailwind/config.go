package tailwind

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/parser"
)

// Config is the theme and option set of a pipeline. Maps loaded from a
// config file merge over DefaultConfig.
type Config struct {
	// DarkMode is "media" (prefers-color-scheme) or "class" (.dark ancestor).
	DarkMode           string            `koanf:"dark-mode"`
	Screens            map[string]string `koanf:"screens"`
	Colors             map[string]any    `koanf:"colors"`
	Spacing            map[string]string `koanf:"spacing"`
	BorderRadius       map[string]string `koanf:"border-radius"`
	FontSize           map[string]string `koanf:"font-size"` // "size" or "size/line-height"
	FontWeight         map[string]string `koanf:"font-weight"`
	Opacity            map[string]string `koanf:"opacity"`
	ZIndex             map[string]string `koanf:"z-index"`
	BorderWidth        map[string]string `koanf:"border-width"`
	RingWidth          map[string]string `koanf:"ring-width"`
	RingOffsetWidth    map[string]string `koanf:"ring-offset-width"`
	BoxShadow          map[string]string `koanf:"box-shadow"`
	MaxWidth           map[string]string `koanf:"max-width"`
	TransitionDuration map[string]string `koanf:"transition-duration"`
	// Utilities maps extra static utility names to a declaration list,
	// e.g. "text-balance": "text-wrap: balance".
	Utilities map[string]string `koanf:"utilities"`
}

// DefaultConfig returns the built-in theme.
func DefaultConfig() Config {
	return Config{
		DarkMode: "media",
		Screens: map[string]string{
			"sm":  "640px",
			"md":  "768px",
			"lg":  "1024px",
			"xl":  "1280px",
			"2xl": "1536px",
		},
		Colors:  defaultColors(),
		Spacing: defaultSpacing(),
		BorderRadius: map[string]string{
			"none":    "0px",
			"sm":      "0.125rem",
			"DEFAULT": "0.25rem",
			"md":      "0.375rem",
			"lg":      "0.5rem",
			"xl":      "0.75rem",
			"2xl":     "1rem",
			"3xl":     "1.5rem",
			"full":    "9999px",
		},
		FontSize: map[string]string{
			"xs":   "0.75rem/1rem",
			"sm":   "0.875rem/1.25rem",
			"base": "1rem/1.5rem",
			"lg":   "1.125rem/1.75rem",
			"xl":   "1.25rem/1.75rem",
			"2xl":  "1.5rem/2rem",
			"3xl":  "1.875rem/2.25rem",
			"4xl":  "2.25rem/2.5rem",
			"5xl":  "3rem/1",
			"6xl":  "3.75rem/1",
			"7xl":  "4.5rem/1",
			"8xl":  "6rem/1",
			"9xl":  "8rem/1",
		},
		FontWeight: map[string]string{
			"thin":       "100",
			"extralight": "200",
			"light":      "300",
			"normal":     "400",
			"medium":     "500",
			"semibold":   "600",
			"bold":       "700",
			"extrabold":  "800",
			"black":      "900",
		},
		Opacity: map[string]string{
			"0": "0", "5": "0.05", "10": "0.1", "15": "0.15", "20": "0.2", "25": "0.25",
			"30": "0.3", "35": "0.35", "40": "0.4", "45": "0.45", "50": "0.5", "55": "0.55",
			"60": "0.6", "65": "0.65", "70": "0.7", "75": "0.75", "80": "0.8", "85": "0.85",
			"90": "0.9", "95": "0.95", "100": "1",
		},
		ZIndex: map[string]string{
			"0": "0", "10": "10", "20": "20", "30": "30", "40": "40", "50": "50", "auto": "auto",
		},
		BorderWidth:     map[string]string{"DEFAULT": "1px", "0": "0px", "2": "2px", "4": "4px", "8": "8px"},
		RingWidth:       map[string]string{"DEFAULT": "3px", "0": "0px", "1": "1px", "2": "2px", "4": "4px", "8": "8px"},
		RingOffsetWidth: map[string]string{"0": "0px", "1": "1px", "2": "2px", "4": "4px", "8": "8px"},
		BoxShadow: map[string]string{
			"sm":      "0 1px 2px 0 rgb(0 0 0 / 0.05)",
			"DEFAULT": "0 1px 3px 0 rgb(0 0 0 / 0.1), 0 1px 2px -1px rgb(0 0 0 / 0.1)",
			"md":      "0 4px 6px -1px rgb(0 0 0 / 0.1), 0 2px 4px -2px rgb(0 0 0 / 0.1)",
			"lg":      "0 10px 15px -3px rgb(0 0 0 / 0.1), 0 4px 6px -4px rgb(0 0 0 / 0.1)",
			"xl":      "0 20px 25px -5px rgb(0 0 0 / 0.1), 0 8px 10px -6px rgb(0 0 0 / 0.1)",
			"2xl":     "0 25px 50px -12px rgb(0 0 0 / 0.25)",
			"inner":   "inset 0 2px 4px 0 rgb(0 0 0 / 0.05)",
			"none":    "0 0 #0000",
		},
		MaxWidth: map[string]string{
			"none": "none", "xs": "20rem", "sm": "24rem", "md": "28rem", "lg": "32rem", "xl": "36rem",
			"2xl": "42rem", "3xl": "48rem", "4xl": "56rem", "5xl": "64rem", "6xl": "72rem", "7xl": "80rem",
			"full": "100%", "min": "min-content", "max": "max-content", "fit": "fit-content", "prose": "65ch",
		},
		TransitionDuration: map[string]string{
			"0": "0s", "75": "75ms", "100": "100ms", "150": "150ms", "200": "200ms",
			"300": "300ms", "500": "500ms", "700": "700ms", "1000": "1000ms",
		},
		Utilities: map[string]string{},
	}
}

func defaultSpacing() map[string]string {
	s := map[string]string{"0": "0px", "px": "1px"}
	steps := []float64{
		0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 5, 6, 7, 8, 9, 10, 11, 12, 14, 16, 20, 24, 28,
		32, 36, 40, 44, 48, 52, 56, 60, 64, 72, 80, 96,
	}
	for _, step := range steps {
		key := strconv.FormatFloat(step, 'f', -1, 64)
		s[key] = strconv.FormatFloat(step/4, 'f', -1, 64) + "rem"
	}
	return s
}

type screen struct {
	name  string
	min   string
	width float64
}

// sortedScreens orders screens by their numeric min-width.
func (c Config) sortedScreens() []screen {
	out := make([]screen, 0, len(c.Screens))
	for name, min := range c.Screens {
		w, _ := strconv.ParseFloat(strings.TrimRight(min, "abcdefghijklmnopqrstuvwxyz%"), 64)
		out = append(out, screen{name: name, min: min, width: w})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].width != out[j].width {
			return out[i].width < out[j].width
		}
		return out[i].name < out[j].name
	})
	return out
}

// flatColors flattens nested color maps into "red-500" style keys. A
// DEFAULT key names the parent itself.
func (c Config) flatColors() map[string]string {
	out := make(map[string]string)
	flattenColors("", c.Colors, out)
	return out
}

func flattenColors(prefix string, m map[string]any, out map[string]string) {
	for k, v := range m {
		name := k
		if k == "DEFAULT" {
			name = strings.TrimSuffix(prefix, "-")
		} else {
			name = prefix + k
		}
		switch val := v.(type) {
		case string:
			out[name] = val
		case map[string]any:
			flattenColors(name+"-", val, out)
		case map[string]string:
			nested := make(map[string]any, len(val))
			for nk, nv := range val {
				nested[nk] = nv
			}
			flattenColors(name+"-", nested, out)
		case fmt.Stringer:
			out[name] = val.String()
		default:
			out[name] = fmt.Sprint(val)
		}
	}
}

// configUtilities parses the declaration lists of Config.Utilities.
func (c Config) configUtilities() (map[string][]Decl, error) {
	out := make(map[string][]Decl, len(c.Utilities))
	for name, body := range c.Utilities {
		parsed, err := parser.ParseDeclarations(body)
		if err != nil {
			return nil, fmt.Errorf("utility %q: %w", name, err)
		}
		decls := make([]Decl, 0, len(parsed))
		for _, d := range parsed {
			value := d.Value
			if d.Important {
				value += " !important"
			}
			decls = append(decls, Decl{Property: d.Property, Value: value})
		}
		if len(decls) == 0 {
			return nil, fmt.Errorf("utility %q: no declarations", name)
		}
		out[name] = decls
	}
	return out, nil
}
