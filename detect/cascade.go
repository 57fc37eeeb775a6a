package detect

import "regexp"

// Precompiled fingerprint patterns. Each is a short, anchored-or-bounded
// single-line pattern; none spans lines, so none can catastrophically
// backtrack regardless of input.
var (
	reNCLUSwp         = regexp.MustCompile(`^\s*net\s+add\s+`)
	reNCLUSwpIface    = regexp.MustCompile(`\bswp\d+\b`)
	reNCLUBridgeVlan  = regexp.MustCompile(`bridge[\s-]vlan-aware`)

	reMikrotikPath    = regexp.MustCompile(`^/[a-z][\w/-]*`)
	reMikrotikFind    = regexp.MustCompile(`\bfind\s+[\w-]+=`)

	reFortinetConfig  = regexp.MustCompile(`^config\s+\S+`)
	reFortinetEdit    = regexp.MustCompile(`^\s*edit\s+`)
	reFortinetNext    = regexp.MustCompile(`^\s*next\s*$`)
	reFortinetEnd     = regexp.MustCompile(`^end\s*$`)

	rePaloDeviceconfig     = regexp.MustCompile(`^set\s+deviceconfig\b`)
	rePaloDeviceconfigOpen = regexp.MustCompile(`^deviceconfig\s*\{`)
	rePaloSystemInner      = regexp.MustCompile(`^\s*system\s*\{`)
	reBraceOpen            = regexp.MustCompile(`\{\s*$`)

	reVyosService   = regexp.MustCompile(`^\s*service\s*\{`)
	reVyosNat       = regexp.MustCompile(`^\s*nat\s*\{`)
	reVyosFirewall  = regexp.MustCompile(`^\s*firewall\s+name\s+\S+\s*\{`)
	reVyosEthX      = regexp.MustCompile(`\beth\d+\s*\{`)

	reJunosIfaceTok = regexp.MustCompile(`\b(ge|xe|et)-\d+/\d+/\d+\b`)

	reArubaWlcProfile = regexp.MustCompile(`^(wlan|rf|ap)\s+[\w-]+-profile\b`)
	reArubaWlcEnd     = regexp.MustCompile(`^end\s*$`)

	reArubaAosCxVersion = regexp.MustCompile(`^version\s+\S+`)
	reArubaAosCxIface   = regexp.MustCompile(`^interface\s+\d+/\d+/\d+\b`)

	reArubaProcurveHeader = regexp.MustCompile(`^;\s*[\w.]+\s+Configuration\s+Editor`)
	reArubaTaggedUntagged = regexp.MustCompile(`^\s*(tagged|untagged)\s+[\w,-]+`)

	reNxosFeature  = regexp.MustCompile(`^feature\s+\S+`)
	reNxosVpc      = regexp.MustCompile(`^vpc\s+domain\s+\d+`)
	reNxosVrf      = regexp.MustCompile(`^vrf\s+context\s+\S+`)

	reEosMlag     = regexp.MustCompile(`^mlag configuration\s*$`)
	reEosApiHttp  = regexp.MustCompile(`^management api http-commands\s*$`)
	reEosVxlan    = regexp.MustCompile(`^interface\s+Vxlan\d+`)

	reExosCreateVlan = regexp.MustCompile(`^create\s+vlan\s+\S+.*\btag\b`)
	reExosSharing    = regexp.MustCompile(`^enable\s+sharing\s+\S+\s+grouping\b`)

	reVossVlanCreate = regexp.MustCompile(`^vlan\s+create\s+\S+.*\btype\s+port-mstprstp\b`)
	reVossISID       = regexp.MustCompile(`\bi-sid\b`)

	reNokiaConfigureRoot = regexp.MustCompile(`^configure\s*$`)
	reNokiaRouter        = regexp.MustCompile(`^\s*router\b`)
	reNokiaPortAdmin     = regexp.MustCompile(`^\s*port\s+\d+/\d+/\d+\b`)
	reNokiaAdminState    = regexp.MustCompile(`\badmin-state\b`)

	reHuaweiSysname = regexp.MustCompile(`^sysname\s+\S+`)
	reHuaweiIface   = regexp.MustCompile(`^interface\s+GigabitEthernet\d+/\d+/\d+\b`)
	reHuaweiUndo    = regexp.MustCompile(`^\s*undo\s+\S+`)
	reHuaweiOspf    = regexp.MustCompile(`^ospf\s+\d+\s*$`)
	reHuaweiBgp     = regexp.MustCompile(`^bgp\s+\d+\s*$`)
)

// cascade is the fixed, ordered detector precedence.
// Order encodes precedence: most distinctive syntactic fingerprints first.
var cascade = []heuristic{
	{
		schemaID: "nclu",
		match: func(lines []string) bool {
			return anyLine(lines, reNCLUSwp) &&
				(anyLine(lines, reNCLUSwpIface) || anyLine(lines, reNCLUBridgeVlan))
		},
	},
	{
		schemaID: "mikrotik-routeros",
		match: func(lines []string) bool {
			return anyLine(lines, reMikrotikPath)
		},
	},
	{
		schemaID: "fortinet-fortios",
		match: func(lines []string) bool {
			return anyLine(lines, reFortinetConfig) &&
				anyLine(lines, reFortinetEdit) &&
				(anyLine(lines, reFortinetNext) || anyLine(lines, reFortinetEnd))
		},
	},
	{
		schemaID: "paloalto-panos",
		match: func(lines []string) bool {
			return anyLine(lines, rePaloDeviceconfig) ||
				braceBlockContains(lines, rePaloDeviceconfigOpen, rePaloSystemInner)
		},
	},
	{
		schemaID: "vyos-edgeos",
		match: func(lines []string) bool {
			if !anyLine(lines, reBraceOpen) {
				return false
			}
			return anyLineAny(lines, reVyosService, reVyosNat, reVyosFirewall, reVyosEthX)
		},
	},
	{
		schemaID: "juniper-junos",
		match: func(lines []string) bool {
			return anyLine(lines, reBraceOpen) && anyLine(lines, reJunosIfaceTok)
		},
	},
	{
		schemaID: "aruba-wlc",
		match: func(lines []string) bool {
			return anyLine(lines, reArubaWlcProfile) && anyLine(lines, reArubaWlcEnd)
		},
	},
	{
		schemaID: "aruba-aoscx",
		match: func(lines []string) bool {
			return anyLine(lines, reArubaAosCxVersion) && anyLine(lines, reArubaAosCxIface)
		},
	},
	{
		schemaID: "aruba-aos-switch",
		match: func(lines []string) bool {
			return anyLine(lines, reArubaProcurveHeader) && anyLine(lines, reArubaTaggedUntagged)
		},
	},
	{
		schemaID: "cisco-nxos",
		match: func(lines []string) bool {
			return anyLine(lines, reNxosFeature) ||
				anyLine(lines, reNxosVpc) ||
				anyLine(lines, reNxosVrf)
		},
	},
	{
		schemaID: "arista-eos",
		match: func(lines []string) bool {
			return anyLine(lines, reEosMlag) ||
				anyLine(lines, reEosApiHttp) ||
				anyLine(lines, reEosVxlan)
		},
	},
	{
		schemaID: "extreme-exos",
		match: func(lines []string) bool {
			return anyLine(lines, reExosCreateVlan) || anyLine(lines, reExosSharing)
		},
	},
	{
		schemaID: "extreme-voss",
		match: func(lines []string) bool {
			return anyLine(lines, reVossVlanCreate) || anyLine(lines, reVossISID)
		},
	},
	{
		schemaID: "nokia-sros",
		match: func(lines []string) bool {
			return indentedBlockContains(lines, reNokiaConfigureRoot, reNokiaRouter) &&
				anyLine(lines, reNokiaPortAdmin) && anyLine(lines, reNokiaAdminState)
		},
	},
	{
		schemaID: "huawei-vrp",
		match: func(lines []string) bool {
			if anyLine(lines, reHuaweiSysname) || anyLine(lines, reHuaweiIface) {
				return true
			}
			return anyLine(lines, reHuaweiUndo) &&
				(anyLine(lines, reHuaweiOspf) || anyLine(lines, reHuaweiBgp))
		},
	},
}
