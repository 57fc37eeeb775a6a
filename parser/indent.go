package parser

import (
	"github.com/sirupsen/logrus"

	"github.com/cedarpeak/netconf/confnode"
	"github.com/cedarpeak/netconf/limits"
	"github.com/cedarpeak/netconf/schema"
)

// parseIndentation is the indentation/keyword engine: an
// explicit stack of open sections, iterative (never recursive) so
// MAX_NESTING_DEPTH can be enforced without relying on the host call
// stack.
func parseIndentation(lines []preparedLine, sch *schema.Schema, opts Options, lim limits.Limits, log logrus.FieldLogger) []*confnode.ConfigNode {
	var roots []*confnode.ConfigNode
	var stack []*confnode.ConfigNode

	attach := func(n *confnode.ConfigNode) {
		if len(stack) == 0 {
			roots = append(roots, n)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
		}
	}

	push := func(n *confnode.ConfigNode) {
		if len(stack) >= lim.MaxNestingDepth {
			// Nesting cap: pop down below the cap before pushing.
			for len(stack) >= lim.MaxNestingDepth {
				stack = stack[:len(stack)-1]
			}
		}
		stack = append(stack, n)
	}

	for _, l := range lines {
		if sch.IsBlockEnder(l.id) {
			// A block ender closes the innermost section: drop any dangling
			// command on top first, then pop that one section.
			for len(stack) > 0 && !stack[len(stack)-1].IsSection() {
				stack = stack[:len(stack)-1]
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			extendOpenSections(stack, l.lineNo)
			continue
		}

		match := sch.MatchStarters(l.id)
		if !match.Matched {
			attachAndPushCommand(l, opts.Source, &stack, roots, attach, push)
			extendOpenSections(stack, l.lineNo)
			continue
		}

		depth, asCommand, truncateTo := decideSectionDepth(stack, match, l)
		if asCommand {
			attachAndPushCommand(l, opts.Source, &stack, roots, attach, push)
			extendOpenSections(stack, l.lineNo)
			continue
		}
		if truncateTo >= 0 && truncateTo < len(stack) {
			stack = stack[:truncateTo+1]
		}

		popForSection(&stack, depth)

		n := newNode(l, confnode.SectionNode, opts.Source)
		n.BlockDepth = depth
		attach(n)
		push(n)
		extendOpenSections(stack, l.lineNo)
		log.WithField("section", n.ID).WithField("depth", depth).Trace("opened section")
	}

	// roots is captured by value at append time above via closures writing
	// to the outer variable; re-read it here since attach() mutates it.
	return roots
}

// attachAndPushCommand implements the command branch of the popping rule:
// a single, non-looping conditional pop, then attach-and-push. Indices are
// threaded through closures so the single code path serves both the
// "line is not a block starter" and "rule 1 override -> treat as command"
// cases.
func attachAndPushCommand(l preparedLine, source confnode.Source, stack *[]*confnode.ConfigNode, roots []*confnode.ConfigNode, attach func(*confnode.ConfigNode), push func(*confnode.ConfigNode)) {
	if len(*stack) > 0 {
		top := (*stack)[len(*stack)-1]
		if !top.IsSection() && top.Indent >= l.indent {
			*stack = (*stack)[:len(*stack)-1]
		}
		// if top is a section, stop: the command becomes its child.
	}
	n := newNode(l, confnode.CommandNode, source)
	attach(n)
	push(n)
}

// popForSection pops any non-section top, then pops any section whose
// depth >= the new node's depth.
func popForSection(stack *[]*confnode.ConfigNode, newDepth int) {
	for len(*stack) > 0 {
		top := (*stack)[len(*stack)-1]
		if !top.IsSection() {
			*stack = (*stack)[:len(*stack)-1]
			continue
		}
		if top.BlockDepth >= newDepth {
			*stack = (*stack)[:len(*stack)-1]
			continue
		}
		break
	}
}

// nearestSection returns the innermost section on the stack (skipping any
// dangling command on top), or nil if the stack holds no section.
func nearestSection(stack []*confnode.ConfigNode) *confnode.ConfigNode {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].IsSection() {
			return stack[i]
		}
	}
	return nil
}

func hasIfaceOrAutoAncestor(stack []*confnode.ConfigNode) bool {
	for _, n := range stack {
		if n.IsSection() && (n.FirstToken == "iface" || n.FirstToken == "auto") {
			return true
		}
	}
	return false
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// decideSectionDepth implements parser rules 1-4. It
// returns the chosen depth, whether the line should be demoted to a plain
// command (rule 1), and a stack index to truncate to before attaching
// (rule 4's ancestor search reparents under an outer ancestor; -1 means no
// truncation).
func decideSectionDepth(stack []*confnode.ConfigNode, match schema.StarterMatch, l preparedLine) (depth int, asCommand bool, truncateTo int) {
	truncateTo = -1

	// Rule 1: context-aware override for indented depth-0 matches.
	if l.indent > 0 && containsInt(match.Depths, 0) && hasIfaceOrAutoAncestor(stack) {
		return 0, true, -1
	}

	parent := nearestSection(stack)
	parentDepth := -1
	parentIndent := -1
	if parent != nil {
		parentDepth = parent.BlockDepth
		parentIndent = parent.Indent
	}

	if len(match.Depths) <= 1 {
		// Rule 2: child-depth promotion for single-pattern matches.
		n := match.Depth
		if l.indent > parentIndent && n <= parentDepth {
			n = parentDepth + 1
		}
		return n, false, -1
	}

	// Matching pattern is registered at multiple depths.
	if l.indent == 0 {
		// Rule 4: flat-config ancestor search.
		if idx, chosen, ok := flatAncestorSearch(stack, match.Depths, l.firstToken); ok {
			return chosen, false, idx
		}
		// No valid ancestor found: fall back to rule 3's selection against
		// whatever is currently open, so the line still produces a node.
	}

	// Rule 3: multi-depth pattern selection.
	for _, d := range match.Depths {
		if d == parentDepth+1 {
			return d, false, -1
		}
	}
	best := -1
	for _, d := range match.Depths {
		if d > parentDepth && (best == -1 || d < best) {
			best = d
		}
	}
	if best == -1 {
		best = match.Depth
	}
	return best, false, -1
}

// flatAncestorSearch scans the stack from innermost outward, skipping
// sections that share the current line's first token (sibling detection),
// and returns the first ancestor for which a valid child depth exists.
// Bounded by MAX_NESTING_DEPTH iterations.
func flatAncestorSearch(stack []*confnode.ConfigNode, depths []int, firstToken string) (idx int, depth int, ok bool) {
	iterations := 0
	for i := len(stack) - 1; i >= 0 && iterations < limits.DefaultMaxNestingDepth; i-- {
		iterations++
		n := stack[i]
		if !n.IsSection() {
			continue
		}
		if n.FirstToken == firstToken {
			continue // sibling: two `address-family X` blocks should be siblings
		}
		if chosen, found := pickChildDepth(depths, n.BlockDepth); found {
			return i, chosen, true
		}
	}
	return -1, 0, false
}

func pickChildDepth(depths []int, parentDepth int) (int, bool) {
	for _, d := range depths {
		if d == parentDepth+1 {
			return d, true
		}
	}
	best := -1
	for _, d := range depths {
		if d > parentDepth && (best == -1 || d < best) {
			best = d
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}
