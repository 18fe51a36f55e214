package twprefix

import (
	"sort"
	"strings"
)

// Category groups classes by what their properties affect.
type Category string

// Categories in display order.
const (
	CategoryLayout     Category = "layout"
	CategorySpacing    Category = "spacing"
	CategoryTypography Category = "typography"
	CategoryVisual     Category = "visual"
	CategoryEffects    Category = "effects"
	CategoryInternal   Category = "internal"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryLayout, CategorySpacing, CategoryTypography, CategoryVisual, CategoryEffects, CategoryInternal,
}

// propertyCategories maps properties whose name does not tell their
// category through a known prefix.
var propertyCategories = map[string]Category{
	"display":        CategoryLayout,
	"position":       CategoryLayout,
	"top":            CategoryLayout,
	"right":          CategoryLayout,
	"bottom":         CategoryLayout,
	"left":           CategoryLayout,
	"inset":          CategoryLayout,
	"width":          CategoryLayout,
	"height":         CategoryLayout,
	"overflow":       CategoryLayout,
	"z-index":        CategoryLayout,
	"visibility":     CategoryLayout,
	"isolation":      CategoryLayout,
	"clip":           CategoryLayout,
	"aspect-ratio":   CategoryLayout,
	"object-fit":     CategoryLayout,
	"resize":         CategoryLayout,
	"gap":            CategorySpacing,
	"row-gap":        CategorySpacing,
	"column-gap":     CategorySpacing,
	"color":          CategoryTypography,
	"line-height":    CategoryTypography,
	"letter-spacing": CategoryTypography,
	"white-space":    CategoryTypography,
	"word-break":     CategoryTypography,
	"overflow-wrap":  CategoryTypography,
	"opacity":        CategoryVisual,
	"fill":           CategoryVisual,
	"stroke":         CategoryVisual,
	"box-shadow":     CategoryVisual,
	"appearance":     CategoryVisual,
	"pointer-events": CategoryEffects,
	"transform":      CategoryEffects,
	"filter":         CategoryEffects,
}

// prefixCategories is consulted in order when a property is not listed.
var prefixCategories = []struct {
	prefix   string
	category Category
}{
	{"--", CategoryInternal},
	{"-webkit-", CategoryInternal},
	{"-moz-", CategoryInternal},
	{"-ms-", CategoryInternal},
	{"flex", CategoryLayout},
	{"grid", CategoryLayout},
	{"justify-", CategoryLayout},
	{"align-", CategoryLayout},
	{"min-", CategoryLayout},
	{"max-", CategoryLayout},
	{"padding", CategorySpacing},
	{"margin", CategorySpacing},
	{"font", CategoryTypography},
	{"text-", CategoryTypography},
	{"background", CategoryVisual},
	{"border", CategoryVisual},
	{"outline", CategoryVisual},
	{"transition", CategoryEffects},
	{"animation", CategoryEffects},
}

// categorizeProperty returns the category of a CSS property. Unknown
// properties count as layout.
func categorizeProperty(name string) Category {
	if cat, ok := propertyCategories[name]; ok {
		return cat
	}
	for _, p := range prefixCategories {
		if strings.HasPrefix(name, p.prefix) {
			return p.category
		}
	}
	return CategoryLayout
}

// categorizeClass picks the category most of a class's properties fall in.
// Custom and vendor properties only decide when nothing else is set; ties go
// to the category listed first.
func categorizeClass(decls map[string]string) Category {
	counts := make(map[Category]int)
	for prop := range decls {
		counts[categorizeProperty(prop)]++
	}
	best, bestCount := CategoryInternal, 0
	for _, cat := range Categories[:len(Categories)-1] {
		if counts[cat] > bestCount {
			best, bestCount = cat, counts[cat]
		}
	}
	return best
}

// GroupClasses groups classes by category given their declarations. Each
// group is sorted.
func GroupClasses(decls map[string]map[string]string) map[Category][]string {
	groups := make(map[Category][]string)
	for class, d := range decls {
		cat := categorizeClass(d)
		groups[cat] = append(groups[cat], class)
	}
	for cat := range groups {
		sort.Strings(groups[cat])
	}
	return groups
}
