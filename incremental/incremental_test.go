package incremental

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarpeak/netconf/confnode"
	"github.com/cedarpeak/netconf/schema"
)

func mustSchema(t *testing.T, id string) *schema.Schema {
	t.Helper()
	s, ok := schema.Get(id)
	require.True(t, ok, "schema %q must be registered", id)
	return s
}

func findChild(n *confnode.ConfigNode, id string) *confnode.ConfigNode {
	for _, c := range n.Children {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func TestParseFirstCallIsAlwaysFull(t *testing.T) {
	p := New(Options{Vendor: mustSchema(t, "cisco-ios")})
	roots, err := p.Parse("file:///a.cfg", "hostname edge-01\n", 1)
	require.NoError(t, err)
	require.NotEmpty(t, roots)

	stats := p.GetLastStats()
	assert.True(t, stats.FullParse)
	assert.Equal(t, 1, stats.Version)
	assert.True(t, p.IsCached("file:///a.cfg"))
	assert.Equal(t, 1, p.CacheSize())
}

func TestParseSameVersionReturnsCachedTreeUnchanged(t *testing.T) {
	p := New(Options{Vendor: mustSchema(t, "cisco-ios")})
	content := "hostname edge-01\n"
	first, err := p.Parse("file:///a.cfg", content, 1)
	require.NoError(t, err)

	second, err := p.Parse("file:///a.cfg", content, 1)
	require.NoError(t, err)
	assert.Same(t, first[0], second[0], "a replayed version must return the identical cached tree, not a reparse")
}

func TestParseUnchangedContentAtNewVersionIsNoOp(t *testing.T) {
	p := New(Options{Vendor: mustSchema(t, "cisco-ios")})
	content := "hostname edge-01\n"
	_, err := p.Parse("file:///a.cfg", content, 1)
	require.NoError(t, err)

	roots, err := p.Parse("file:///a.cfg", content, 2)
	require.NoError(t, err)
	require.NotEmpty(t, roots)

	stats := p.GetLastStats()
	assert.False(t, stats.FullParse)
	assert.Equal(t, 2, stats.Version)
	assert.Equal(t, 2, p.CachedVersion("file:///a.cfg"))
}

func TestParseVendorOverrideForcesFullReparse(t *testing.T) {
	p := New(Options{})
	_, err := p.Parse("file:///a.cfg", "hostname edge-01\n", 1, mustSchema(t, "cisco-ios"))
	require.NoError(t, err)
	assert.Equal(t, "cisco-ios", p.CachedVendor("file:///a.cfg").ID)

	_, err = p.Parse("file:///a.cfg", "hostname edge-01\n", 2, mustSchema(t, "juniper-junos"))
	require.NoError(t, err)

	stats := p.GetLastStats()
	assert.True(t, stats.FullParse)
	assert.Equal(t, "vendor_changed", stats.Reason)
	assert.Equal(t, "juniper-junos", p.CachedVendor("file:///a.cfg").ID)
}

func TestParseAutoVendorReusesCachedSchemaAcrossEdits(t *testing.T) {
	p := New(Options{})
	_, err := p.Parse("file:///a.cfg", "hostname edge-01\n", 1)
	require.NoError(t, err)
	cached := p.CachedVendor("file:///a.cfg")
	require.NotNil(t, cached)

	_, err = p.Parse("file:///a.cfg", "hostname edge-02\n", 2)
	require.NoError(t, err)
	assert.Equal(t, cached.ID, p.CachedVendor("file:///a.cfg").ID)
}

// A single-line edit confined to one of two top-level sections should be
// serviced by re-parsing only that section.
func TestParseSingleLineEditReparsesOneSection(t *testing.T) {
	lines := []string{
		"interface GigabitEthernet0/1",
		" description uplink",
		" ip address 10.0.0.1 255.255.255.0",
		"!",
		"interface GigabitEthernet0/2",
		" description downlink",
		" ip address 10.0.0.2 255.255.255.0",
		"!",
	}
	original := strings.Join(lines, "\n")

	p := New(Options{Vendor: mustSchema(t, "cisco-ios")})
	firstRoots, err := p.Parse("file:///two.cfg", original, 1)
	require.NoError(t, err)
	require.Len(t, firstRoots, 2, "two interface sections must each surface as a top-level section")

	edited := make([]string, len(lines))
	copy(edited, lines)
	edited[1] = " description uplink-v2"
	modified := strings.Join(edited, "\n")

	roots, err := p.Parse("file:///two.cfg", modified, 2)
	require.NoError(t, err)
	require.Len(t, roots, 2)

	stats := p.GetLastStats()
	assert.False(t, stats.FullParse)
	assert.Equal(t, 1, stats.SectionsReparsed)
	assert.Equal(t, 1, stats.ChangedRanges)

	desc := findChild(roots[0], "description uplink-v2")
	require.NotNil(t, desc, "the re-parsed section must reflect the edited line")
	assert.Equal(t, "interface GigabitEthernet0/2", roots[1].ID, "the untouched section is carried over unchanged")
}

// A single top-level section is atomic with respect to the "more than half
// the sections changed" test; editing it must still go through the
// incremental path rather than falling back to a full parse.
func TestParseSingleSectionGuardAllowsIncrementalUpdate(t *testing.T) {
	lines := []string{
		"interface GigabitEthernet0/1",
		" description uplink",
		" ip address 10.0.0.1 255.255.255.0",
		"!",
	}
	original := strings.Join(lines, "\n")

	p := New(Options{Vendor: mustSchema(t, "cisco-ios")})
	firstRoots, err := p.Parse("file:///one.cfg", original, 1)
	require.NoError(t, err)
	require.Len(t, firstRoots, 1)

	edited := make([]string, len(lines))
	copy(edited, lines)
	edited[1] = " description uplink-renamed"
	modified := strings.Join(edited, "\n")

	_, err = p.Parse("file:///one.cfg", modified, 2)
	require.NoError(t, err)

	stats := p.GetLastStats()
	assert.False(t, stats.FullParse, "the lone-section guard must not force a full reparse")
	assert.Equal(t, 1, stats.SectionsReparsed)
}

// A large line-count swing is a structural change even when the edited
// fraction of the document stays under the too-many-changes ratio.
func TestParseLargeLineCountSwingForcesFullReparse(t *testing.T) {
	buildSection := func(name string, descLines int) []string {
		out := []string{"interface " + name}
		for i := 0; i < descLines; i++ {
			out = append(out, fmt.Sprintf(" description line-%d", i))
		}
		return append(out, "!")
	}

	original := strings.Join(append(buildSection("GigabitEthernet0/1", 30), buildSection("GigabitEthernet0/2", 30)...), "\n")
	modified := strings.Join(append(buildSection("GigabitEthernet0/1", 45), buildSection("GigabitEthernet0/2", 30)...), "\n")

	p := New(Options{Vendor: mustSchema(t, "cisco-ios")})
	_, err := p.Parse("file:///big.cfg", original, 1)
	require.NoError(t, err)

	_, err = p.Parse("file:///big.cfg", modified, 2)
	require.NoError(t, err)

	stats := p.GetLastStats()
	assert.True(t, stats.FullParse)
	assert.Equal(t, "structural_changes", stats.Reason)
}

func TestInvalidateAndClearAll(t *testing.T) {
	p := New(Options{Vendor: mustSchema(t, "cisco-ios")})
	_, err := p.Parse("file:///a.cfg", "hostname edge-01\n", 1)
	require.NoError(t, err)
	_, err = p.Parse("file:///b.cfg", "hostname edge-02\n", 1)
	require.NoError(t, err)
	require.Equal(t, 2, p.CacheSize())

	p.Invalidate("file:///a.cfg")
	assert.False(t, p.IsCached("file:///a.cfg"))
	assert.Equal(t, 1, p.CacheSize())
	assert.Equal(t, -1, p.CachedVersion("file:///a.cfg"))

	p.ClearAll()
	assert.Equal(t, 0, p.CacheSize())
}
