package tailwind

import (
	"fmt"
	"strconv"
	"strings"
)

// Plugin registers additional utilities.
type Plugin func(r *Registry)

type valueType int

const (
	anyType valueType = iota
	colorType
	lengthType
	imageType
)

// family is a functional utility: a prefix whose suffix is looked up in a
// theme scale or given as an arbitrary [value].
type family struct {
	prefix   string
	values   map[string]string
	typ      valueType
	negative bool
	color    bool
	suffix   string
	decls    func(v string) []Decl
}

// Utility is a resolved utility class.
type Utility struct {
	Decls []Decl
	// Suffix is appended to the class selector, e.g. " > :not([hidden]) ~ :not([hidden])".
	Suffix string
	Order  int
}

// Registry resolves utility names to declarations.
type Registry struct {
	static   map[string][]Decl
	order    map[string]int
	families []*family
	alpha    map[string]string
}

// AddStatic registers a utility with fixed declarations. Later
// registrations replace earlier ones.
func (r *Registry) AddStatic(name string, decls ...Decl) {
	if _, ok := r.static[name]; !ok {
		r.order[name] = len(r.order)
	}
	r.static[name] = decls
}

func (r *Registry) add1(name, prop, value string) {
	r.AddStatic(name, Decl{prop, value})
}

func (r *Registry) addFamily(f *family) {
	r.families = append(r.families, f)
}

func (r *Registry) clone() *Registry {
	c := &Registry{
		static:   make(map[string][]Decl, len(r.static)),
		order:    make(map[string]int, len(r.order)),
		families: append([]*family(nil), r.families...),
		alpha:    r.alpha,
	}
	for k, v := range r.static {
		c.static[k] = v
	}
	for k, v := range r.order {
		c.order[k] = v
	}
	return c
}

// Resolve looks up a utility name with variants already removed.
func (r *Registry) Resolve(name string) (Utility, bool) {
	if decls, ok := r.static[name]; ok {
		return Utility{Decls: decls, Order: r.order[name]}, true
	}

	body := name
	neg := strings.HasPrefix(body, "-")
	if neg {
		body = body[1:]
	}
	for i, f := range r.families {
		var key string
		switch {
		case body == f.prefix:
			key = "DEFAULT"
		case strings.HasPrefix(body, f.prefix+"-"):
			key = body[len(f.prefix)+1:]
		default:
			continue
		}
		if neg && !f.negative {
			continue
		}
		v, ok := f.resolve(key, r.alpha)
		if !ok {
			continue
		}
		if neg {
			if v, ok = negate(v); !ok {
				continue
			}
		}
		return Utility{Decls: f.decls(v), Suffix: f.suffix, Order: len(r.order) + i}, true
	}
	return Utility{}, false
}

func (f *family) resolve(key string, alpha map[string]string) (string, bool) {
	if v, ok := f.values[key]; ok {
		if f.color {
			v = withAlpha(v, "")
		}
		return v, true
	}

	mod, hasMod := "", false
	if parts := splitTopLevel(key, '/'); len(parts) == 2 {
		key, mod, hasMod = parts[0], parts[1], true
	} else if len(parts) > 2 {
		return "", false
	}
	if hasMod && !f.color {
		return "", false
	}

	var v string
	if isArbitrary(key) {
		raw, hint := arbitraryValue(key)
		if raw == "" || !f.accepts(raw, hint) {
			return "", false
		}
		v = raw
	} else if val, ok := f.values[key]; ok {
		v = val
	} else {
		return "", false
	}

	if f.color {
		a := ""
		if hasMod {
			var ok bool
			if a, ok = alphaValue(mod, alpha); !ok {
				return "", false
			}
		}
		v = withAlpha(v, a)
	}
	return v, true
}

func (f *family) accepts(raw, hint string) bool {
	switch f.typ {
	case colorType:
		return hint == "color" || hint == "" && looksLikeColor(raw)
	case lengthType:
		return hint == "length" || hint == "" && !looksLikeColor(raw)
	case imageType:
		return hint == "url" || hint == "image" ||
			hint == "" && (strings.HasPrefix(raw, "url(") || strings.Contains(raw, "gradient("))
	default:
		return true
	}
}

func isArbitrary(key string) bool {
	return len(key) > 2 && key[0] == '[' && key[len(key)-1] == ']'
}

var typeHints = map[string]bool{"color": true, "length": true, "url": true, "image": true, "number": true, "percentage": true}

// arbitraryValue unwraps "[...]", converting underscores to spaces and
// splitting off a "type:" hint.
func arbitraryValue(key string) (value, hint string) {
	inner := key[1 : len(key)-1]
	if i := strings.IndexByte(inner, ':'); i > 0 && typeHints[inner[:i]] {
		hint, inner = inner[:i], inner[i+1:]
	}
	var sb strings.Builder
	for i := 0; i < len(inner); i++ {
		switch {
		case inner[i] == '\\' && i+1 < len(inner) && inner[i+1] == '_':
			sb.WriteByte('_')
			i++
		case inner[i] == '_':
			sb.WriteByte(' ')
		default:
			sb.WriteByte(inner[i])
		}
	}
	return sb.String(), hint
}

var namedColors = map[string]bool{
	"transparent": true, "currentcolor": true, "black": true, "white": true, "red": true, "green": true,
	"blue": true, "yellow": true, "orange": true, "purple": true, "pink": true, "gray": true, "grey": true,
}

func looksLikeColor(v string) bool {
	lv := strings.ToLower(v)
	if strings.HasPrefix(lv, "#") || namedColors[lv] {
		return true
	}
	for _, fn := range []string{"rgb(", "rgba(", "hsl(", "hsla(", "hwb(", "lab(", "lch(", "oklab(", "oklch(", "color-mix(", "color("} {
		if strings.HasPrefix(lv, fn) {
			return true
		}
	}
	return false
}

func alphaValue(mod string, scale map[string]string) (string, bool) {
	if isArbitrary(mod) {
		v, _ := arbitraryValue(mod)
		return v, v != ""
	}
	v, ok := scale[mod]
	return v, ok
}

// withAlpha applies an opacity to a color value; alpha "" means opaque.
func withAlpha(color, alpha string) string {
	if strings.Contains(color, "<alpha-value>") {
		if alpha == "" {
			alpha = "1"
		}
		return strings.ReplaceAll(color, "<alpha-value>", alpha)
	}
	if alpha == "" {
		return color
	}
	if r, g, b, ok := parseHex(color); ok {
		return fmt.Sprintf("rgb(%d %d %d / %s)", r, g, b, alpha)
	}
	pct := alpha
	if f, err := strconv.ParseFloat(alpha, 64); err == nil {
		pct = strconv.FormatFloat(f*100, 'f', -1, 64) + "%"
	}
	return fmt.Sprintf("color-mix(in srgb, %s %s, transparent)", color, pct)
}

func parseHex(s string) (r, g, b int, ok bool) {
	if !strings.HasPrefix(s, "#") {
		return 0, 0, 0, false
	}
	h := s[1:]
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

func negate(v string) (string, bool) {
	switch {
	case v == "auto" || v == "none":
		return "", false
	case strings.HasPrefix(v, "calc("):
		return "calc(" + v + " * -1)", true
	case strings.HasPrefix(v, "-"):
		return v[1:], true
	}
	return "-" + v, true
}

func props(names ...string) func(string) []Decl {
	return func(v string) []Decl {
		out := make([]Decl, len(names))
		for i, n := range names {
			out[i] = Decl{n, v}
		}
		return out
	}
}

func merge(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

var fractions = map[string]string{
	"1/2": "50%", "1/3": "33.333333%", "2/3": "66.666667%", "1/4": "25%", "2/4": "50%", "3/4": "75%",
	"1/5": "20%", "2/5": "40%", "3/5": "60%", "4/5": "80%", "1/6": "16.666667%", "5/6": "83.333333%",
	"full": "100%",
}

const transformValue = "translate(var(--tw-translate-x), var(--tw-translate-y)) rotate(var(--tw-rotate)) " +
	"skewX(var(--tw-skew-x)) skewY(var(--tw-skew-y)) scaleX(var(--tw-scale-x)) scaleY(var(--tw-scale-y))"

const defaultTimingFunction = "cubic-bezier(0.4, 0, 0.2, 1)"

func transitionDecls(property string) []Decl {
	return []Decl{
		{"transition-property", property},
		{"transition-timing-function", defaultTimingFunction},
		{"transition-duration", "150ms"},
	}
}

// newRegistry builds the core utilities from the theme.
func newRegistry(cfg Config) (*Registry, error) {
	r := &Registry{
		static: make(map[string][]Decl),
		order:  make(map[string]int),
		alpha:  cfg.Opacity,
	}
	r.addStatics()
	r.addFamilies(cfg)

	custom, err := cfg.configUtilities()
	if err != nil {
		return nil, err
	}
	for name, decls := range custom {
		r.AddStatic(name, decls...)
	}
	return r, nil
}

func (r *Registry) addStatics() {
	r.AddStatic("sr-only",
		Decl{"position", "absolute"}, Decl{"width", "1px"}, Decl{"height", "1px"}, Decl{"padding", "0"},
		Decl{"margin", "-1px"}, Decl{"overflow", "hidden"}, Decl{"clip", "rect(0, 0, 0, 0)"},
		Decl{"white-space", "nowrap"}, Decl{"border-width", "0"})
	r.AddStatic("not-sr-only",
		Decl{"position", "static"}, Decl{"width", "auto"}, Decl{"height", "auto"}, Decl{"padding", "0"},
		Decl{"margin", "0"}, Decl{"overflow", "visible"}, Decl{"clip", "auto"}, Decl{"white-space", "normal"})
	r.add1("pointer-events-none", "pointer-events", "none")
	r.add1("pointer-events-auto", "pointer-events", "auto")
	r.add1("visible", "visibility", "visible")
	r.add1("invisible", "visibility", "hidden")
	r.add1("collapse", "visibility", "collapse")
	for _, p := range []string{"static", "fixed", "absolute", "relative", "sticky"} {
		r.add1(p, "position", p)
	}
	r.add1("isolate", "isolation", "isolate")

	for _, d := range []string{"block", "inline-block", "inline", "flex", "inline-flex", "table", "table-row",
		"table-cell", "grid", "inline-grid", "contents", "list-item", "flow-root"} {
		r.add1(d, "display", d)
	}
	r.add1("hidden", "display", "none")

	r.add1("flex-row", "flex-direction", "row")
	r.add1("flex-row-reverse", "flex-direction", "row-reverse")
	r.add1("flex-col", "flex-direction", "column")
	r.add1("flex-col-reverse", "flex-direction", "column-reverse")
	r.add1("flex-wrap", "flex-wrap", "wrap")
	r.add1("flex-wrap-reverse", "flex-wrap", "wrap-reverse")
	r.add1("flex-nowrap", "flex-wrap", "nowrap")
	r.add1("flex-1", "flex", "1 1 0%")
	r.add1("flex-auto", "flex", "1 1 auto")
	r.add1("flex-initial", "flex", "0 1 auto")
	r.add1("flex-none", "flex", "none")
	r.add1("grow", "flex-grow", "1")
	r.add1("grow-0", "flex-grow", "0")
	r.add1("shrink", "flex-shrink", "1")
	r.add1("shrink-0", "flex-shrink", "0")

	for k, v := range map[string]string{"start": "flex-start", "end": "flex-end", "center": "center",
		"baseline": "baseline", "stretch": "stretch"} {
		r.add1("items-"+k, "align-items", v)
	}
	for k, v := range map[string]string{"normal": "normal", "start": "flex-start", "end": "flex-end",
		"center": "center", "between": "space-between", "around": "space-around", "evenly": "space-evenly",
		"stretch": "stretch"} {
		r.add1("justify-"+k, "justify-content", v)
	}
	for k, v := range map[string]string{"auto": "auto", "start": "flex-start", "end": "flex-end",
		"center": "center", "stretch": "stretch", "baseline": "baseline"} {
		r.add1("self-"+k, "align-self", v)
	}
	for _, v := range []string{"auto", "hidden", "clip", "visible", "scroll"} {
		r.add1("overflow-"+v, "overflow", v)
		r.add1("overflow-x-"+v, "overflow-x", v)
		r.add1("overflow-y-"+v, "overflow-y", v)
	}
	r.AddStatic("truncate", Decl{"overflow", "hidden"}, Decl{"text-overflow", "ellipsis"}, Decl{"white-space", "nowrap"})
	r.add1("text-ellipsis", "text-overflow", "ellipsis")
	r.add1("text-clip", "text-overflow", "clip")

	for _, v := range []string{"none", "text", "all", "auto"} {
		r.add1("select-"+v, "user-select", v)
	}
	for _, v := range []string{"auto", "default", "pointer", "wait", "text", "move", "help", "not-allowed",
		"none", "grab", "grabbing"} {
		r.add1("cursor-"+v, "cursor", v)
	}
	for _, v := range []string{"solid", "dashed", "dotted", "double", "hidden", "none"} {
		r.add1("border-"+v, "border-style", v)
	}
	r.AddStatic("outline-none", Decl{"outline", "2px solid transparent"}, Decl{"outline-offset", "2px"})
	r.add1("outline", "outline-style", "solid")
	r.add1("outline-dashed", "outline-style", "dashed")
	r.add1("ring-inset", "--tw-ring-inset", "inset")

	r.add1("underline", "text-decoration-line", "underline")
	r.add1("overline", "text-decoration-line", "overline")
	r.add1("line-through", "text-decoration-line", "line-through")
	r.add1("no-underline", "text-decoration-line", "none")
	r.add1("uppercase", "text-transform", "uppercase")
	r.add1("lowercase", "text-transform", "lowercase")
	r.add1("capitalize", "text-transform", "capitalize")
	r.add1("normal-case", "text-transform", "none")
	r.add1("italic", "font-style", "italic")
	r.add1("not-italic", "font-style", "normal")
	for _, v := range []string{"left", "center", "right", "justify", "start", "end"} {
		r.add1("text-"+v, "text-align", v)
	}
	for _, v := range []string{"normal", "nowrap", "pre", "pre-line", "pre-wrap", "break-spaces"} {
		r.add1("whitespace-"+v, "white-space", v)
	}
	r.add1("break-words", "overflow-wrap", "break-word")
	r.add1("break-all", "word-break", "break-all")
	r.AddStatic("antialiased",
		Decl{"-webkit-font-smoothing", "antialiased"}, Decl{"-moz-osx-font-smoothing", "grayscale"})
	r.add1("font-sans", "font-family", `ui-sans-serif, system-ui, sans-serif`)
	r.add1("font-serif", "font-family", `ui-serif, Georgia, Cambria, "Times New Roman", Times, serif`)
	r.add1("font-mono", "font-family", `ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, monospace`)
	r.add1("tabular-nums", "font-variant-numeric", "tabular-nums")

	r.AddStatic("transition", transitionDecls("color, background-color, border-color, text-decoration-color, "+
		"fill, stroke, opacity, box-shadow, transform, filter, backdrop-filter")...)
	r.AddStatic("transition-all", transitionDecls("all")...)
	r.AddStatic("transition-colors", transitionDecls("color, background-color, border-color, "+
		"text-decoration-color, fill, stroke")...)
	r.AddStatic("transition-opacity", transitionDecls("opacity")...)
	r.AddStatic("transition-shadow", transitionDecls("box-shadow")...)
	r.AddStatic("transition-transform", transitionDecls("transform")...)
	r.add1("transition-none", "transition-property", "none")
	r.add1("ease-linear", "transition-timing-function", "linear")
	r.add1("ease-in", "transition-timing-function", "cubic-bezier(0.4, 0, 1, 1)")
	r.add1("ease-out", "transition-timing-function", "cubic-bezier(0, 0, 0.2, 1)")
	r.add1("ease-in-out", "transition-timing-function", defaultTimingFunction)
	r.add1("transform", "transform", transformValue)
	r.add1("transform-none", "transform", "none")

	r.add1("resize-none", "resize", "none")
	r.add1("resize", "resize", "both")
	r.add1("appearance-none", "appearance", "none")
	r.add1("object-contain", "object-fit", "contain")
	r.add1("object-cover", "object-fit", "cover")
	r.add1("aspect-auto", "aspect-ratio", "auto")
	r.add1("aspect-square", "aspect-ratio", "1 / 1")
	r.add1("aspect-video", "aspect-ratio", "16 / 9")
	r.add1("grid-cols-none", "grid-template-columns", "none")
	r.add1("col-span-full", "grid-column", "1 / -1")
	r.add1("col-auto", "grid-column", "auto")
}

func (r *Registry) addFamilies(cfg Config) {
	spacing := cfg.Spacing
	colors := cfg.flatColors()
	autoSpacing := merge(spacing, map[string]string{"auto": "auto"})
	insetValues := merge(spacing, fractions, map[string]string{"auto": "auto"})
	sizeValues := merge(spacing, fractions, map[string]string{
		"auto": "auto", "min": "min-content", "max": "max-content", "fit": "fit-content",
	})

	for _, f := range []struct {
		prefix string
		props  []string
	}{
		{"p", []string{"padding"}},
		{"px", []string{"padding-left", "padding-right"}},
		{"py", []string{"padding-top", "padding-bottom"}},
		{"pt", []string{"padding-top"}},
		{"pr", []string{"padding-right"}},
		{"pb", []string{"padding-bottom"}},
		{"pl", []string{"padding-left"}},
		{"gap", []string{"gap"}},
		{"gap-x", []string{"column-gap"}},
		{"gap-y", []string{"row-gap"}},
	} {
		r.addFamily(&family{prefix: f.prefix, values: spacing, decls: props(f.props...)})
	}
	for _, f := range []struct {
		prefix string
		props  []string
	}{
		{"m", []string{"margin"}},
		{"mx", []string{"margin-left", "margin-right"}},
		{"my", []string{"margin-top", "margin-bottom"}},
		{"mt", []string{"margin-top"}},
		{"mr", []string{"margin-right"}},
		{"mb", []string{"margin-bottom"}},
		{"ml", []string{"margin-left"}},
	} {
		r.addFamily(&family{prefix: f.prefix, values: autoSpacing, negative: true, decls: props(f.props...)})
	}
	r.addFamily(&family{prefix: "space-x", values: spacing, negative: true,
		suffix: " > :not([hidden]) ~ :not([hidden])", decls: props("margin-left")})
	r.addFamily(&family{prefix: "space-y", values: spacing, negative: true,
		suffix: " > :not([hidden]) ~ :not([hidden])", decls: props("margin-top")})

	for _, f := range []struct {
		prefix string
		props  []string
	}{
		{"inset", []string{"inset"}},
		{"inset-x", []string{"left", "right"}},
		{"inset-y", []string{"top", "bottom"}},
		{"top", []string{"top"}},
		{"right", []string{"right"}},
		{"bottom", []string{"bottom"}},
		{"left", []string{"left"}},
	} {
		r.addFamily(&family{prefix: f.prefix, values: insetValues, negative: true, decls: props(f.props...)})
	}
	translate := func(axis string) func(string) []Decl {
		return func(v string) []Decl {
			return []Decl{{"--tw-translate-" + axis, v}, {"transform", transformValue}}
		}
	}
	r.addFamily(&family{prefix: "translate-x", values: merge(spacing, fractions), negative: true, decls: translate("x")})
	r.addFamily(&family{prefix: "translate-y", values: merge(spacing, fractions), negative: true, decls: translate("y")})
	r.addFamily(&family{prefix: "rotate", negative: true,
		values: map[string]string{"0": "0deg", "1": "1deg", "2": "2deg", "3": "3deg", "6": "6deg",
			"12": "12deg", "45": "45deg", "90": "90deg", "180": "180deg"},
		decls: func(v string) []Decl { return []Decl{{"--tw-rotate", v}, {"transform", transformValue}} }})
	r.addFamily(&family{prefix: "scale",
		values: map[string]string{"0": "0", "50": ".5", "75": ".75", "90": ".9", "95": ".95", "100": "1",
			"105": "1.05", "110": "1.1", "125": "1.25", "150": "1.5"},
		decls: func(v string) []Decl {
			return []Decl{{"--tw-scale-x", v}, {"--tw-scale-y", v}, {"transform", transformValue}}
		}})

	r.addFamily(&family{prefix: "w", values: merge(sizeValues, map[string]string{"screen": "100vw"}), decls: props("width")})
	r.addFamily(&family{prefix: "h", values: merge(sizeValues, map[string]string{"screen": "100vh"}), decls: props("height")})
	r.addFamily(&family{prefix: "size", values: sizeValues, decls: props("width", "height")})
	r.addFamily(&family{prefix: "min-w", values: merge(spacing, map[string]string{"full": "100%",
		"min": "min-content", "max": "max-content", "fit": "fit-content"}), decls: props("min-width")})
	r.addFamily(&family{prefix: "min-h", values: merge(spacing, map[string]string{"full": "100%",
		"screen": "100vh"}), decls: props("min-height")})
	maxW := merge(cfg.MaxWidth)
	for _, s := range cfg.sortedScreens() {
		maxW["screen-"+s.name] = s.min
	}
	r.addFamily(&family{prefix: "max-w", values: maxW, decls: props("max-width")})
	r.addFamily(&family{prefix: "max-h", values: merge(spacing, map[string]string{"none": "none",
		"full": "100%", "screen": "100vh"}), decls: props("max-height")})

	r.addFamily(&family{prefix: "z", values: cfg.ZIndex, negative: true, decls: props("z-index")})
	r.addFamily(&family{prefix: "opacity", values: cfg.Opacity, decls: props("opacity")})

	rounded := map[string][]string{
		"rounded":    {"border-radius"},
		"rounded-t":  {"border-top-left-radius", "border-top-right-radius"},
		"rounded-r":  {"border-top-right-radius", "border-bottom-right-radius"},
		"rounded-b":  {"border-bottom-right-radius", "border-bottom-left-radius"},
		"rounded-l":  {"border-top-left-radius", "border-bottom-left-radius"},
		"rounded-tl": {"border-top-left-radius"},
		"rounded-tr": {"border-top-right-radius"},
		"rounded-br": {"border-bottom-right-radius"},
		"rounded-bl": {"border-bottom-left-radius"},
	}
	for _, p := range []string{"rounded", "rounded-t", "rounded-r", "rounded-b", "rounded-l",
		"rounded-tl", "rounded-tr", "rounded-br", "rounded-bl"} {
		r.addFamily(&family{prefix: p, values: cfg.BorderRadius, typ: lengthType, decls: props(rounded[p]...)})
	}

	borders := []struct {
		prefix string
		props  []string
	}{
		{"border", []string{"border-width"}},
		{"border-x", []string{"border-left-width", "border-right-width"}},
		{"border-y", []string{"border-top-width", "border-bottom-width"}},
		{"border-t", []string{"border-top-width"}},
		{"border-r", []string{"border-right-width"}},
		{"border-b", []string{"border-bottom-width"}},
		{"border-l", []string{"border-left-width"}},
	}
	for _, b := range borders {
		r.addFamily(&family{prefix: b.prefix, values: cfg.BorderWidth, typ: lengthType, decls: props(b.props...)})
	}
	r.addFamily(&family{prefix: "border", values: colors, typ: colorType, color: true, decls: props("border-color")})
	r.addFamily(&family{prefix: "border-t", values: colors, typ: colorType, color: true, decls: props("border-top-color")})
	r.addFamily(&family{prefix: "border-b", values: colors, typ: colorType, color: true, decls: props("border-bottom-color")})

	r.addFamily(&family{prefix: "ring", values: cfg.RingWidth, typ: lengthType, decls: ringDecls})
	r.addFamily(&family{prefix: "ring", values: colors, typ: colorType, color: true, decls: props("--tw-ring-color")})
	r.addFamily(&family{prefix: "ring-offset", values: cfg.RingOffsetWidth, typ: lengthType,
		decls: props("--tw-ring-offset-width")})
	r.addFamily(&family{prefix: "ring-offset", values: colors, typ: colorType, color: true,
		decls: props("--tw-ring-offset-color")})

	r.addFamily(&family{prefix: "bg", typ: imageType, decls: props("background-image")})
	r.addFamily(&family{prefix: "bg", values: colors, color: true, decls: props("background-color")})
	r.addFamily(&family{prefix: "text", values: cfg.FontSize, typ: lengthType, decls: fontSizeDecls})
	r.addFamily(&family{prefix: "text", values: colors, typ: colorType, color: true, decls: props("color")})
	r.addFamily(&family{prefix: "fill", values: colors, color: true, decls: props("fill")})
	r.addFamily(&family{prefix: "stroke", values: colors, color: true, decls: props("stroke")})
	r.addFamily(&family{prefix: "outline", values: colors, typ: colorType, color: true, decls: props("outline-color")})
	r.addFamily(&family{prefix: "outline-offset", values: map[string]string{"0": "0px", "1": "1px",
		"2": "2px", "4": "4px", "8": "8px"}, decls: props("outline-offset")})

	r.addFamily(&family{prefix: "font", values: cfg.FontWeight, decls: props("font-weight")})
	r.addFamily(&family{prefix: "leading", values: map[string]string{"none": "1", "tight": "1.25",
		"snug": "1.375", "normal": "1.5", "relaxed": "1.625", "loose": "2", "3": ".75rem", "4": "1rem",
		"5": "1.25rem", "6": "1.5rem", "7": "1.75rem", "8": "2rem", "9": "2.25rem", "10": "2.5rem"},
		decls: props("line-height")})
	r.addFamily(&family{prefix: "tracking", negative: true, values: map[string]string{"tighter": "-0.05em",
		"tight": "-0.025em", "normal": "0em", "wide": "0.025em", "wider": "0.05em", "widest": "0.1em"},
		decls: props("letter-spacing")})

	shadow := func(v string) []Decl {
		return []Decl{
			{"--tw-shadow", v},
			{"box-shadow", "var(--tw-ring-offset-shadow, 0 0 #0000), var(--tw-ring-shadow, 0 0 #0000), var(--tw-shadow)"},
		}
	}
	r.addFamily(&family{prefix: "shadow", values: cfg.BoxShadow, decls: shadow})
	r.addFamily(&family{prefix: "duration", values: cfg.TransitionDuration, decls: props("transition-duration")})
	r.addFamily(&family{prefix: "delay", values: cfg.TransitionDuration, decls: props("transition-delay")})

	cols := make(map[string]string, 12)
	spans := make(map[string]string, 12)
	for i := 1; i <= 12; i++ {
		n := strconv.Itoa(i)
		cols[n] = fmt.Sprintf("repeat(%d, minmax(0, 1fr))", i)
		spans[n] = fmt.Sprintf("span %d / span %d", i, i)
	}
	r.addFamily(&family{prefix: "grid-cols", values: cols, decls: props("grid-template-columns")})
	r.addFamily(&family{prefix: "col-span", values: spans, decls: props("grid-column")})
}

func ringDecls(w string) []Decl {
	return []Decl{
		{"--tw-ring-offset-shadow", "var(--tw-ring-inset,) 0 0 0 var(--tw-ring-offset-width) var(--tw-ring-offset-color)"},
		{"--tw-ring-shadow", "var(--tw-ring-inset,) 0 0 0 calc(" + w + " + var(--tw-ring-offset-width)) var(--tw-ring-color)"},
		{"box-shadow", "var(--tw-ring-offset-shadow), var(--tw-ring-shadow), var(--tw-shadow, 0 0 #0000)"},
	}
}

func fontSizeDecls(v string) []Decl {
	if size, lh, ok := strings.Cut(v, "/"); ok && !strings.Contains(v, "(") {
		return []Decl{{"font-size", size}, {"line-height", lh}}
	}
	return []Decl{{"font-size", v}}
}
