// Package parser implements the schema-aware parser: the
// common pre-checks and comment/empty handling, dispatching to one of two
// engines (indentation/keyword, brace) depending on the schema, and
// finally collapsing leading orphan commands into a virtual root.
//
// The two engines (indent.go, brace.go) each implement the same "walk
// lines, maintain a stack, attach nodes" loop over the shared
// confnode.ConfigNode shape.
package parser

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cedarpeak/netconf/confnode"
	"github.com/cedarpeak/netconf/limits"
	"github.com/cedarpeak/netconf/sanitize"
	"github.com/cedarpeak/netconf/schema"
)

// Options configures a single Parse call.
type Options struct {
	// Vendor is not read by Parse, which takes its schema as an explicit
	// argument (a nil schema selects schema.Fallback(); auto-detection is
	// done by the caller, e.g. the root netconf.Parse).
	Vendor *schema.Schema
	// StartLine offsets every produced Loc; used by the incremental
	// parser when re-parsing a sub-range of a larger document.
	StartLine int
	// Source marks whether nodes came from a full document or a snippet.
	Source confnode.Source
	// Limits overrides the default size/depth caps. Zero value uses
	// limits.Default().
	Limits limits.Limits
	// Log receives debug-level tracing of parser decisions. Nil is a
	// valid, silent logger.
	Log logrus.FieldLogger
}

func (o Options) resolvedLimits() limits.Limits {
	if o.Limits == (limits.Limits{}) {
		return limits.Default()
	}
	return o.Limits
}

func (o Options) resolvedLog() logrus.FieldLogger {
	if o.Log != nil {
		return o.Log
	}
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return l
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// Parse runs the schema-aware parser over text and returns the top-level
// ordered sequence of ConfigNode. It returns a limits.SizeLimitError if
// text or its line count exceed the configured caps; otherwise it never
// errors, tolerating malformed input.
func Parse(text string, sch *schema.Schema, opts Options) ([]*confnode.ConfigNode, error) {
	lim := opts.resolvedLimits()
	log := opts.resolvedLog()

	if len(text) > lim.MaxConfigSize {
		return nil, limits.SizeLimitError{Limit: "MAX_CONFIG_SIZE", Got: len(text), Max: lim.MaxConfigSize}
	}

	rawLines := strings.Split(text, "\n")
	if len(rawLines) > lim.MaxLineCount {
		return nil, limits.SizeLimitError{Limit: "MAX_LINE_COUNT", Got: len(rawLines), Max: lim.MaxLineCount}
	}

	if sch == nil {
		sch = schema.Fallback()
	}

	lines := make([]preparedLine, 0, len(rawLines))
	for i, raw := range rawLines {
		if len(raw) > lim.MaxLineLength {
			log.WithField("line", i).Debug("line exceeds MAX_LINE_LENGTH, skipped")
			continue
		}
		id := sanitize.SanitizeLine(raw)
		if id == "" {
			continue
		}
		if sch.IsComment(id) {
			continue
		}
		id = strings.TrimSuffix(id, ";")
		params := sanitize.TokenizeParams(id)
		first := ""
		if len(params) > 0 {
			first = params[0]
		}
		lines = append(lines, preparedLine{
			lineNo:     i + opts.StartLine,
			raw:        raw,
			id:         id,
			params:     params,
			firstToken: first,
			indent:     leadingWhitespace(raw),
		})
	}

	var roots []*confnode.ConfigNode
	if sch.UseBraceHierarchy {
		roots = parseBrace(lines, sch, opts, lim, log)
	} else {
		roots = parseIndentation(lines, sch, opts, lim, log)
	}

	return collapseVirtualRoots(roots), nil
}

// preparedLine is a non-comment, non-empty, size-checked line plus the
// facts computed once per line rather than re-derived on every lookup.
type preparedLine struct {
	lineNo     int
	raw        string
	id         string
	params     []string
	firstToken string
	indent     int
}

func leadingWhitespace(s string) int {
	n := 0
	for _, r := range s {
		if r == ' ' || r == '\t' {
			n++
		} else {
			break
		}
	}
	return n
}

func newNode(l preparedLine, typ confnode.NodeType, source confnode.Source) *confnode.ConfigNode {
	return &confnode.ConfigNode{
		ID:         l.id,
		Type:       typ,
		RawText:    l.raw,
		Params:     l.params,
		Source:     source,
		Loc:        confnode.Loc{StartLine: l.lineNo, EndLine: l.lineNo},
		Indent:     l.indent,
		FirstToken: l.firstToken,
	}
}

// extendOpenSections widens every open section's Loc.EndLine to cover
// lineNo. Called once per processed line in both engines so a section's
// span always covers every line attributed to it (including nested
// children), which the incremental parser's changed-range overlap test
// and virtual-root collapsing both depend on.
func extendOpenSections(stack []*confnode.ConfigNode, lineNo int) {
	for _, n := range stack {
		if n.IsSection() && n.Loc.EndLine < lineNo {
			n.Loc.EndLine = lineNo
		}
	}
}
