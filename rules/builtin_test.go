package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarpeak/netconf/confnode"
)

func TestEmptySectionFlagsChildlessSection(t *testing.T) {
	tree := section("interface GigabitEthernet0/1")
	ctx := NewContext("cisco-ios", []*confnode.ConfigNode{tree})

	results := Run(ctx, []Rule{EmptySection})
	require.Len(t, results, 1)
	assert.Equal(t, "empty-section", results[0].RuleID)
	assert.Equal(t, LevelWarning, results[0].Level)
	assert.False(t, results[0].Passed)
	assert.Contains(t, results[0].Message, "interface GigabitEthernet0/1")
}

func TestEmptySectionIgnoresSectionsWithChildren(t *testing.T) {
	tree := section("interface GigabitEthernet0/1", command("description uplink", 1))
	ctx := NewContext("cisco-ios", []*confnode.ConfigNode{tree})

	results := Run(ctx, []Rule{EmptySection})
	assert.Empty(t, results)
}

func TestEmptySectionIgnoresCommands(t *testing.T) {
	tree := command("hostname edge-01", 0)
	ctx := NewContext("cisco-ios", []*confnode.ConfigNode{tree})

	results := Run(ctx, []Rule{EmptySection})
	assert.Empty(t, results)
}

func TestDuplicateSiblingSectionFlagsRepeatedID(t *testing.T) {
	first := &confnode.ConfigNode{ID: "vrf mgmt", Type: confnode.SectionNode, Loc: confnode.Loc{StartLine: 1, EndLine: 1}}
	second := &confnode.ConfigNode{ID: "vrf mgmt", Type: confnode.SectionNode, Loc: confnode.Loc{StartLine: 10, EndLine: 10}}
	root := section("root", first, second)

	ctx := NewContext("cisco-ios", []*confnode.ConfigNode{root})
	results := Run(ctx, []Rule{DuplicateSiblingSection})

	require.Len(t, results, 1)
	assert.Equal(t, "duplicate-sibling-section", results[0].RuleID)
	assert.Equal(t, LevelError, results[0].Level)
	assert.Equal(t, 10, results[0].Loc.StartLine)
	assert.Contains(t, results[0].Message, "first seen at line 1")
}

func TestDuplicateSiblingSectionIgnoresDistinctIDs(t *testing.T) {
	first := &confnode.ConfigNode{ID: "vrf mgmt", Type: confnode.SectionNode}
	second := &confnode.ConfigNode{ID: "vrf customer-a", Type: confnode.SectionNode}
	root := section("root", first, second)

	ctx := NewContext("cisco-ios", []*confnode.ConfigNode{root})
	results := Run(ctx, []Rule{DuplicateSiblingSection})
	assert.Empty(t, results)
}

func TestDuplicateSiblingSectionIgnoresSiblingCommands(t *testing.T) {
	root := section("root", command("set ip 1.1.1.1", 1), command("set ip 1.1.1.1", 2))
	ctx := NewContext("cisco-ios", []*confnode.ConfigNode{root})
	results := Run(ctx, []Rule{DuplicateSiblingSection})
	assert.Empty(t, results, "duplicate detection only applies to sibling sections, not commands")
}

func TestBuiltinRulesetContainsBothChecks(t *testing.T) {
	require.Len(t, Builtin, 2)
	ids := map[string]bool{}
	for _, r := range Builtin {
		ids[r.ID] = true
	}
	assert.True(t, ids["empty-section"])
	assert.True(t, ids["duplicate-sibling-section"])
}
