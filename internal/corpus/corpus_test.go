package corpus

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundledWalksEveryFixture(t *testing.T) {
	results, err := Walk(Bundled())
	require.NoError(t, err)
	require.Len(t, results, 5)

	byPath := make(map[string]Result, len(results))
	for _, r := range results {
		byPath[r.Path] = r
	}

	want := map[string]string{
		"cisco-ios.cfg":       "cisco-ios",
		"juniper-junos.cfg":   "juniper-junos",
		"fortinet-fortios.cfg": "fortinet-fortios",
		"mikrotik-routeros.cfg": "mikrotik-routeros",
		"nclu.cfg":            "nclu",
	}
	for path, vendor := range want {
		r, ok := byPath[path]
		require.Truef(t, ok, "expected %s in bundled corpus", path)
		assert.Equal(t, vendor, r.Vendor.ID, "detected vendor for %s", path)
		assert.NotEmpty(t, r.Roots, "%s must parse into at least one node", path)
	}
}

func TestWalkResultsAreSortedByPath(t *testing.T) {
	results, err := Walk(Bundled())
	require.NoError(t, err)
	for i := 1; i < len(results); i++ {
		assert.Less(t, results[i-1].Path, results[i].Path)
	}
}

func TestWalkRejectsDuplicateContent(t *testing.T) {
	fsys := fstest.MapFS{
		"a.cfg": &fstest.MapFile{Data: []byte("hostname edge-01\n")},
		"b.cfg": &fstest.MapFile{Data: []byte("hostname edge-01\n")},
	}
	_, err := Walk(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "identical contents")
}

func TestWalkSkipsHiddenPathsAndUnrecognizedExtensions(t *testing.T) {
	fsys := fstest.MapFS{
		".hidden.cfg":   &fstest.MapFile{Data: []byte("hostname hidden\n")},
		"notes.md":      &fstest.MapFile{Data: []byte("not a config")},
		"real-one.conf": &fstest.MapFile{Data: []byte("hostname edge-01\n")},
	}
	results, err := Walk(fsys)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "real-one.conf", results[0].Path)
}

func TestWalkPropagatesDistinctContentAcrossFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"a.cfg": &fstest.MapFile{Data: []byte("hostname edge-01\n")},
		"b.cfg": &fstest.MapFile{Data: []byte("hostname edge-02\n")},
	}
	results, err := Walk(fsys)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}
