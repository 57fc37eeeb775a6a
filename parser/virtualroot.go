package parser

import (
	"fmt"

	"github.com/cedarpeak/netconf/confnode"
)

// collapseVirtualRoots wraps each maximal run of top-level orphan command
// nodes in a synthetic virtual_root section, so every
// produced tree has sectional roots a caller can iterate uniformly. Runs
// of length one are still wrapped: a single leading bareword command is as
// much an "orphan run" as ten of them.
func collapseVirtualRoots(roots []*confnode.ConfigNode) []*confnode.ConfigNode {
	var out []*confnode.ConfigNode
	var run []*confnode.ConfigNode

	flush := func() {
		if len(run) == 0 {
			return
		}
		start := run[0].Loc.StartLine
		end := run[0].Loc.EndLine
		for _, c := range run[1:] {
			if c.Loc.EndLine > end {
				end = c.Loc.EndLine
			}
		}
		vr := &confnode.ConfigNode{
			ID:       fmt.Sprintf("virtual_root_line_%d", start),
			Type:     confnode.VirtualRootNode,
			Children: run,
			Source:   run[0].Source,
			Loc:      confnode.Loc{StartLine: start, EndLine: end},
		}
		out = append(out, vr)
		run = nil
	}

	for _, n := range roots {
		if n.Type == confnode.CommandNode {
			run = append(run, n)
			continue
		}
		flush()
		out = append(out, n)
	}
	flush()

	return out
}
