package rules

import (
	"strconv"

	"github.com/cedarpeak/netconf/confnode"
)

// EmptySection flags a section that opened but has no children: often a
// sign of a stripped-down or truncated config snippet rather than a real
// intentional empty block.
var EmptySection = Rule{
	ID:       "empty-section",
	Selector: nil,
	Metadata: Metadata{
		Level:       LevelWarning,
		Description: "a section was opened but has no children",
		Remediation: "verify the config was not truncated during capture",
	},
	Check: func(n *confnode.ConfigNode, ctx Context) []RuleResult {
		if !n.IsSection() || len(n.Children) > 0 {
			return nil
		}
		return []RuleResult{{
			Passed:  false,
			Message: "section \"" + n.ID + "\" has no children",
			RuleID:  "empty-section",
			NodeID:  n.ID,
			Level:   LevelWarning,
			Loc:     n.Loc,
		}}
	},
}

// DuplicateSiblingSection flags two sibling sections that share the exact
// same id, which usually indicates a config generation bug (the same
// interface or vrf block emitted twice) rather than an intentional repeat.
var DuplicateSiblingSection = Rule{
	ID:       "duplicate-sibling-section",
	Selector: nil,
	Metadata: Metadata{
		Level:       LevelError,
		Description: "two sibling sections share an identical id",
		Remediation: "merge the duplicate blocks or investigate the generator that produced them",
	},
	Check: func(n *confnode.ConfigNode, ctx Context) []RuleResult {
		if !n.IsSection() {
			return nil
		}
		seen := make(map[string]*confnode.ConfigNode, len(n.Children))
		var out []RuleResult
		for _, c := range n.Children {
			if !c.IsSection() {
				continue
			}
			if prior, ok := seen[c.ID]; ok {
				out = append(out, RuleResult{
					Passed:  false,
					Message: "duplicate section \"" + c.ID + "\" (first seen at line " + strconv.Itoa(prior.Loc.StartLine) + ")",
					RuleID:  "duplicate-sibling-section",
					NodeID:  c.ID,
					Level:   LevelError,
					Loc:     c.Loc,
				})
				continue
			}
			seen[c.ID] = c
		}
		return out
	},
}

// Builtin is the default, vendor-agnostic ruleset. Callers building a
// larger, externally-loaded rule pack (the out-of-scope GRX2 format)
// typically start here and append their own Rule values.
var Builtin = []Rule{EmptySection, DuplicateSiblingSection}
