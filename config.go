package twprefix

import (
	"go.uber.org/zap"

	"github.com/yacobolo/twprefix/internal/format"
	"github.com/yacobolo/twprefix/internal/prefix"
	"github.com/yacobolo/twprefix/internal/tailwind"
)

// DefaultCSSEntry is the base stylesheet used when none is configured.
const DefaultCSSEntry = "./simple.pcss"

// Config configures a Rewriter.
type Config struct {
	// Prefix is prepended to the base name of every recognized class.
	Prefix string `koanf:"prefix"`
	// CSSEntry is the path of the base stylesheet. Its relative @imports are
	// resolved from its directory.
	CSSEntry string `koanf:"css"`
	// Stylesheet, when set, is used as the base stylesheet source instead of
	// the contents of CSSEntry.
	Stylesheet string `koanf:"-"`

	Tailwind tailwind.Config `koanf:"tailwind"`
	Format   format.Options  `koanf:"format"`
	// SkipFormat leaves the output layout as produced by the rewrite.
	SkipFormat bool `koanf:"-"`

	Logger *zap.Logger `koanf:"-"`
}

// DefaultConfig returns the configuration used for the component registry.
func DefaultConfig() Config {
	return Config{
		Prefix:   prefix.Default,
		CSSEntry: DefaultCSSEntry,
		Tailwind: tailwind.DefaultConfig(),
		Format:   format.DefaultOptions(),
	}
}
