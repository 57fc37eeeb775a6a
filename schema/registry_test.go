package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLoadsAllSixteenVendors(t *testing.T) {
	ids := IDs()
	assert.Len(t, ids, 16)

	want := []string{
		"nclu", "mikrotik-routeros", "fortinet-fortios", "paloalto-panos",
		"vyos-edgeos", "juniper-junos", "aruba-wlc", "aruba-aoscx",
		"aruba-aos-switch", "cisco-nxos", "arista-eos", "extreme-exos",
		"extreme-voss", "nokia-sros", "huawei-vrp", "cisco-ios",
	}
	for _, id := range want {
		assert.Contains(t, ids, id)
	}
}

func TestGetAndIsValid(t *testing.T) {
	s, ok := Get("cisco-ios")
	require.True(t, ok)
	assert.Equal(t, "cisco-ios", s.ID)

	assert.True(t, IsValid("juniper-junos"))
	assert.False(t, IsValid("not-a-real-vendor"))

	_, ok = Get("not-a-real-vendor")
	assert.False(t, ok)
}

func TestFallbackIsCiscoIOS(t *testing.T) {
	s := Fallback()
	assert.Equal(t, FallbackID, s.ID)
	assert.Equal(t, "cisco-ios", s.ID)
}

func TestRegistrySchemasAreCompiled(t *testing.T) {
	for _, s := range Registry() {
		// A compiled schema can answer IsComment/IsBlockEnder without
		// panicking; an uncompiled one would nil-deref its regex slices.
		assert.NotPanics(t, func() {
			s.IsComment("! test")
			s.IsBlockEnder("exit")
		})
	}
}
