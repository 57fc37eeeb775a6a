package parser

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cedarpeak/netconf/confnode"
	"github.com/cedarpeak/netconf/limits"
	"github.com/cedarpeak/netconf/sanitize"
	"github.com/cedarpeak/netconf/schema"
)

// parseBrace is the brace-hierarchy engine: a running
// brace depth and an explicit parent stack, processed per-line rather than
// per-token, since real brace configs put at most one opener (and any
// number of closers) on a line. Each '}' on the line pops one section
// (bottomed out at the root, tolerating unbalanced input); the content
// before the first '{' is then either a new section header or, absent any
// brace at all, a plain command.
func parseBrace(lines []preparedLine, sch *schema.Schema, opts Options, lim limits.Limits, log logrus.FieldLogger) []*confnode.ConfigNode {
	var roots []*confnode.ConfigNode
	var stack []*confnode.ConfigNode
	braceDepth := 0

	attach := func(n *confnode.ConfigNode) {
		if len(stack) == 0 {
			roots = append(roots, n)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
		}
	}

	for _, l := range lines {
		closers := strings.Count(l.id, "}")
		for i := 0; i < closers; i++ {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if braceDepth > 0 {
				braceDepth--
			}
		}
		extendOpenSections(stack, l.lineNo)

		if isOnlyBracesAndSpace(l.id) {
			// The braces already did their job; nothing left to attach.
			continue
		}

		opens := strings.Count(l.id, "{")

		var content string
		if idx := strings.IndexByte(l.id, '{'); idx >= 0 {
			content = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(l.id[:idx]), ";"))
		} else {
			content = l.id
		}

		if content == "" {
			continue
		}

		match := sch.MatchStarters(content)
		if !match.Matched && opens == 0 {
			n := newNode(braceHeaderLine(l, content), confnode.CommandNode, opts.Source)
			attach(n)
			continue
		}

		n := newNode(braceHeaderLine(l, content), confnode.SectionNode, opts.Source)
		if match.Matched {
			n.BlockDepth = depthFor(match, braceDepth)
		} else {
			n.BlockDepth = braceDepth
		}
		attach(n)

		if opens > 0 {
			stack = append(stack, n)
			braceDepth += opens
			if len(stack) >= lim.MaxNestingDepth {
				for len(stack) >= lim.MaxNestingDepth {
					stack = stack[:len(stack)-1]
				}
			}
			log.WithField("section", n.ID).WithField("depth", n.BlockDepth).Trace("opened brace section")
		}
	}

	return roots
}

// isOnlyBracesAndSpace reports whether id contains nothing but '{', '}' and
// whitespace -- a line that exists purely to open/close scope, with no
// attachable content of its own.
func isOnlyBracesAndSpace(id string) bool {
	for _, r := range id {
		if r != '{' && r != '}' && r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}

// braceHeaderLine rebuilds a preparedLine for the section header with the
// trailing '{' stripped from its id and re-tokenized params, so the
// produced node's ID/Params never carry the brace punctuation.
func braceHeaderLine(l preparedLine, header string) preparedLine {
	params := sanitize.TokenizeParams(header)
	first := ""
	if len(params) > 0 {
		first = params[0]
	}
	out := l
	out.id = header
	out.params = params
	out.firstToken = first
	return out
}

// depthFor picks the schema-declared depth for a matched header: a header's
// registered depth is a hint, since actual nesting is whatever the braces
// say. The running brace depth (the depth about to be opened) is preferred
// when the schema registers this exact header at multiple depths; otherwise the schema's single declared depth is used.
func depthFor(match schema.StarterMatch, braceDepth int) int {
	for _, d := range match.Depths {
		if d == braceDepth {
			return d
		}
	}
	return match.Depth
}
