package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cedarpeak/netconf/limits"
)

func TestSanitizeLineStripsControlCodepoints(t *testing.T) {
	in := "interface\x00 Gig0/1\x1F end"
	assert.Equal(t, "interface Gig0/1 end", SanitizeLine(in))
}

func TestSanitizeLineKeepsTab(t *testing.T) {
	in := "interface\tGig0/1"
	assert.Equal(t, "interface\tGig0/1", SanitizeLine(in))
}

func TestSanitizeLineFoldsUnicodeSpace(t *testing.T) {
	in := "interface Gig0/1"
	assert.Equal(t, "interface Gig0/1", SanitizeLine(in))
}

func TestSanitizeLineTrimsWhitespace(t *testing.T) {
	assert.Equal(t, "exit", SanitizeLine("   exit   "))
}

func TestSanitizeLineEmptyInput(t *testing.T) {
	assert.Equal(t, "", SanitizeLine(""))
	assert.Equal(t, "", SanitizeLine("   "))
}

func TestTokenizeParamsBasicSplit(t *testing.T) {
	assert.Equal(t, []string{"ip", "address", "10.0.0.1", "255.255.255.0"},
		TokenizeParams("ip address 10.0.0.1 255.255.255.0"))
}

func TestTokenizeParamsHonorsDoubleQuotes(t *testing.T) {
	assert.Equal(t, []string{"description", "uplink to core"},
		TokenizeParams(`description "uplink to core"`))
}

func TestTokenizeParamsHonorsSingleQuotes(t *testing.T) {
	assert.Equal(t, []string{"set", "comment", "edge router"},
		TokenizeParams(`set comment 'edge router'`))
}

func TestTokenizeParamsUnmatchedTrailingQuote(t *testing.T) {
	got := TokenizeParams(`description "unterminated`)
	assert.Equal(t, []string{"description", "unterminated"}, got)
}

func TestTokenizeParamsTruncatesOverlongLines(t *testing.T) {
	huge := strings.Repeat("a", limits.DefaultMaxLineLength+100)
	got := TokenizeParams(huge)
	assert.Len(t, got, 1)
	assert.Len(t, got[0], limits.DefaultMaxLineLength)
}

func TestIsIdentifierLike(t *testing.T) {
	assert.True(t, IsIdentifierLike("GigabitEthernet0"))
	assert.True(t, IsIdentifierLike("vrf_mgmt"))
	assert.False(t, IsIdentifierLike(""))
	assert.False(t, IsIdentifierLike("123abc"))
}
