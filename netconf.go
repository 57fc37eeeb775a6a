// Package netconf is the vendor-neutral configuration analyzer core: the
// vendor schema registry, the schema-driven hierarchical parser (both the
// indentation and brace engines), the vendor auto-detector, the
// incremental parse cache, and the rule-evaluation contract.
//
// The root package holds the facade functions (Parse, Detect, Vendors,
// RunRules) and re-exports the types a caller needs without reaching into
// subpackages directly; the engines live in schema, detect, parser,
// incremental, and rules.
package netconf

import (
	"github.com/cedarpeak/netconf/confnode"
	"github.com/cedarpeak/netconf/detect"
	"github.com/cedarpeak/netconf/limits"
	"github.com/cedarpeak/netconf/parser"
	"github.com/cedarpeak/netconf/rules"
	"github.com/cedarpeak/netconf/schema"
)

// Re-exported types so callers of the facade need only import this package
// for the common path; the subpackages remain importable directly for
// callers building their own pipeline (e.g. a custom incremental cache).
type (
	ConfigNode = confnode.ConfigNode
	NodeType   = confnode.NodeType
	Loc        = confnode.Loc
	Schema     = schema.Schema
	Rule       = rules.Rule
	RuleResult = rules.RuleResult
	Limits     = limits.Limits

	SizeLimitError = limits.SizeLimitError
	ParseError     = limits.ParseError
)

const (
	CommandNode     = confnode.CommandNode
	SectionNode     = confnode.SectionNode
	VirtualRootNode = confnode.VirtualRootNode
)

// Options configures a single Parse call.
type Options struct {
	// Vendor selects the schema by id. Empty or unrecognized falls back to
	// auto-detection.
	Vendor string
	// StartLine offsets every produced Loc.
	StartLine int
	// Snippet marks the input as a sub-range rather than a full document.
	Snippet bool
	// Limits overrides the default size/depth caps.
	Limits Limits
}

// Parse runs vendor auto-detection (unless Options.Vendor names a known
// schema) followed by the schema-aware parser, and returns the top-level
// ConfigNode tree.
func Parse(text string, opts Options) ([]*ConfigNode, error) {
	sch := resolveVendor(text, opts.Vendor)
	source := confnode.SourceBase
	if opts.Snippet {
		source = confnode.SourceSnippet
	}
	return parser.Parse(text, sch, parser.Options{
		StartLine: opts.StartLine,
		Source:    source,
		Limits:    opts.Limits,
	})
}

func resolveVendor(text, vendorID string) *schema.Schema {
	if vendorID != "" {
		if s, ok := schema.Get(vendorID); ok {
			return s
		}
	}
	return detect.Detect(text)
}

// Detect runs the vendor auto-detection cascade.
func Detect(text string) *Schema {
	return detect.Detect(text)
}

// Vendors returns every registered vendor schema, in registry order.
func Vendors() []*Schema {
	return schema.Registry()
}

// VendorIDs returns every registered vendor schema id, in registry order.
func VendorIDs() []string {
	return schema.IDs()
}

// GetVendor looks up a schema by id.
func GetVendor(id string) (*Schema, bool) {
	return schema.Get(id)
}

// IsValidVendor reports whether id names a registered schema.
func IsValidVendor(id string) bool {
	return schema.IsValid(id)
}

// RunRules dispatches ruleset against ast under vendor, returning results in
// deterministic order.
func RunRules(vendor string, ast []*ConfigNode, ruleset []Rule) []RuleResult {
	ctx := rules.NewContext(vendor, ast)
	return rules.Run(ctx, ruleset)
}
