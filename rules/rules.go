// Package rules implements the rule engine: a flat list of
// independent Rule values, each inspecting the parsed tree and emitting
// RuleResult values, dispatched by matching each rule's selector token(s)
// against node IDs and run under a shared Context. The shape is a table of
// independent handlers invoked in a fixed order against one shared
// document, keyed by a node-id prefix selector rather than a token type.
package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gofrs/uuid"

	"github.com/cedarpeak/netconf/confnode"
)

// Level classifies a RuleResult's importance: error, warning, or info.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Metadata is a rule's static description, independent of any particular
// run: its severity level, human-readable description, suggested fix, and
// an optional free-form security classification (e.g. a CWE id) that
// out-of-scope collaborators like SARIF formatters can surface.
type Metadata struct {
	Level          Level
	Description    string
	Remediation    string
	SecurityTag    string
}

// Rule is one independent check. Selector is one or more node-id prefix
// tokens (a node matches if its ID starts with any of them); Vendor
// restricts the rule to specific schema IDs, or "common" (the zero value,
// nil/empty) to run against every vendor. Check runs once per matching node.
type Rule struct {
	ID       string
	Selector []string
	Vendor   []string
	Metadata Metadata
	Check    func(n *confnode.ConfigNode, ctx Context) []RuleResult
}

// matchesSelector reports whether n.ID starts with any of r's selector
// tokens. An empty selector matches every node.
func (r Rule) matchesSelector(n *confnode.ConfigNode) bool {
	if len(r.Selector) == 0 {
		return true
	}
	for _, tok := range r.Selector {
		if strings.HasPrefix(n.ID, tok) {
			return true
		}
	}
	return false
}

// matchesVendor reports whether r applies to vendor. An empty Vendor list
// means "common": every vendor.
func (r Rule) matchesVendor(vendor string) bool {
	if len(r.Vendor) == 0 {
		return true
	}
	for _, v := range r.Vendor {
		if v == vendor || v == "common" {
			return true
		}
	}
	return false
}

// RuleResult is one finding: passed, message, rule id, node id, level,
// and location. Passed=true, Level=LevelInfo is a legitimate
// "does not apply" result, not an error.
type RuleResult struct {
	Passed  bool
	Message string
	RuleID  string
	NodeID  string
	Level   Level
	Loc     confnode.Loc
}

// Context is passed to every Check call; at minimum it exposes the full
// tree so rules needing cross-section lookups (e.g. "does this vrf exist
// elsewhere") are not limited to the single node they were dispatched on.
// RunID stamps each run with a random identifier so findings from
// concurrent runs never collide.
type Context struct {
	RunID  string
	Vendor string
	Roots  []*confnode.ConfigNode
}

// NewContext builds a Context for roots parsed under vendor, stamping a
// fresh run ID.
func NewContext(vendor string, roots []*confnode.ConfigNode) Context {
	id, err := uuid.NewV4()
	runID := ""
	if err == nil {
		runID = id.String()
	}
	return Context{RunID: runID, Vendor: vendor, Roots: roots}
}

// Run dispatches every rule against every node whose id matches the rule's
// selector and whose vendor applies. Results are ordered by rule ID, then
// by node-encounter order within one rule. A rule whose
// Check panics is converted into a single info-level, failing RuleResult
// instead of aborting the run, so one broken rule cannot blind every other
// rule to the rest of the tree.
func Run(ctx Context, ruleset []Rule) []RuleResult {
	var results []RuleResult

	for i := range ruleset {
		r := ruleset[i]
		if !r.matchesVendor(ctx.Vendor) {
			continue
		}
		for _, root := range ctx.Roots {
			root.Walk(func(n *confnode.ConfigNode) {
				if !r.matchesSelector(n) {
					return
				}
				results = append(results, runOne(r, ctx, n)...)
			})
		}
	}

	// Stable: results of one rule keep the order their nodes were visited in.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RuleID < results[j].RuleID
	})

	return results
}

func runOne(r Rule, ctx Context, n *confnode.ConfigNode) (out []RuleResult) {
	defer func() {
		if p := recover(); p != nil {
			out = []RuleResult{{
				Passed:  false,
				Message: fmt.Sprintf("rule %s panicked: %v", r.ID, p),
				RuleID:  r.ID,
				NodeID:  n.ID,
				Level:   LevelInfo,
				Loc:     n.Loc,
			}}
		}
	}()
	if r.Check == nil {
		return nil
	}
	return r.Check(n, ctx)
}
