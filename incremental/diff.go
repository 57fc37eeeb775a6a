package incremental

import (
	"strings"

	"github.com/cedarpeak/netconf/confnode"
	"github.com/cedarpeak/netconf/parser"
	"github.com/cedarpeak/netconf/schema"
)

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

func hashAll(lines []string) []uint32 {
	out := make([]uint32, len(lines))
	for i, l := range lines {
		out[i] = lineHash(l)
	}
	return out
}

// changedWindow is one contiguous span of differing lines, expressed in
// both coordinate systems: newStart/newEnd index the new line slice (used
// to slice snippets for re-parsing), oldStart/oldEnd index the previous
// line slice (used to test overlap against cached node Loc values, which
// are still in the old coordinate system).
type changedWindow struct {
	newStart, newEnd int
	oldStart, oldEnd int
}

// diffWindows computes which line ranges changed: hash each new
// line, compare position by position against the cached hashes, and group
// consecutive differing positions into inclusive ranges. When the line
// counts match, positions align directly and multiple disjoint windows can
// be identified by a single linear pass. When they differ (an insertion or
// deletion shifted everything after it), position-by-position comparison
// past the edit point is meaningless without an alignment step, so the
// edit is bracketed by trimming the common prefix and common suffix into a
// single window -- "a single trailing unmatched tail is one range that
// extends to the end" generalized to whichever end the edit falls on.
func diffWindows(oldHashes, newHashes []uint32) []changedWindow {
	if len(oldHashes) == len(newHashes) {
		var windows []changedWindow
		start := -1
		for i := range newHashes {
			if oldHashes[i] != newHashes[i] {
				if start == -1 {
					start = i
				}
				continue
			}
			if start != -1 {
				windows = append(windows, changedWindow{start, i - 1, start, i - 1})
				start = -1
			}
		}
		if start != -1 {
			windows = append(windows, changedWindow{start, len(newHashes) - 1, start, len(oldHashes) - 1})
		}
		return windows
	}

	if len(newHashes) == 0 {
		if len(oldHashes) == 0 {
			return nil
		}
		return []changedWindow{{0, -1, 0, len(oldHashes) - 1}}
	}

	prefix := 0
	for prefix < len(oldHashes) && prefix < len(newHashes) && oldHashes[prefix] == newHashes[prefix] {
		prefix++
	}
	if prefix == len(oldHashes) && prefix == len(newHashes) {
		return nil
	}

	oldSuffix, newSuffix := 0, 0
	for oldSuffix < len(oldHashes)-prefix && newSuffix < len(newHashes)-prefix {
		oi := len(oldHashes) - 1 - oldSuffix
		ni := len(newHashes) - 1 - newSuffix
		if oldHashes[oi] != newHashes[ni] {
			break
		}
		oldSuffix++
		newSuffix++
	}

	newStart, newEnd := prefix, len(newHashes)-1-newSuffix
	oldStart, oldEnd := prefix, len(oldHashes)-1-oldSuffix
	if newEnd < newStart {
		newEnd = newStart
	}
	if oldEnd < oldStart {
		oldEnd = oldStart
	}
	return []changedWindow{{newStart, newEnd, oldStart, oldEnd}}
}

// structurallySignificant decides whether the change is too big to trust an
// incremental splice: a line-count swing bigger than 10, or a changed
// window touching more than
// half of the cached top-level sections, forces a full re-parse rather than
// risking an incremental splice that misjudges the new tree's shape.
func structurallySignificant(oldLineCount, newLineCount int, cachedRoots []*confnode.ConfigNode, windows []changedWindow) bool {
	if absInt(newLineCount-oldLineCount) > 10 {
		return true
	}
	// A single top-level section is atomic with respect to this test: "more
	// than half the sections changed" has no meaningful reading when there
	// is only one, so the only structural trigger left is the line-count
	// swing already checked above.
	if len(cachedRoots) <= 1 {
		return false
	}
	overlapping := 0
	for _, r := range cachedRoots {
		if overlapsAny(r, windows) {
			overlapping++
		}
	}
	return overlapping*2 > len(cachedRoots)
}

func overlapsAny(n *confnode.ConfigNode, windows []changedWindow) bool {
	for _, w := range windows {
		if w.oldEnd < w.oldStart {
			continue
		}
		if n.Loc.StartLine <= w.oldEnd && w.oldStart <= n.Loc.EndLine {
			return true
		}
	}
	return false
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// incrementalUpdate performs the section-level splice: walk the cached
// top-level nodes in order, maintaining a running
// line_offset; nodes untouched by any changed window are emitted with their
// Loc (and every descendant's Loc) shifted by the offset accumulated so
// far; nodes overlapping a changed window are re-parsed from a slice of the
// new content and spliced in, and the offset is updated by the section's
// size delta: the length of its slice of the new content minus the length
// of its slice of the previous content, both measured the same way (from
// the section's first line to the last non-blank line before the next
// section, or to the end of the document). Returns errNoAffectedSection if no cached top-level
// node overlaps any changed window (the edit landed in an inter-section gap
// or past EOF), signaling the caller to fall back to a full parse.
func (p *Parser) incrementalUpdate(prev *document, newLines []string, windows []changedWindow, sch *schema.Schema) ([]*confnode.ConfigNode, int, error) {
	roots := prev.roots
	n := len(roots)

	affected := make([]bool, n)
	anyAffected := false
	for i, r := range roots {
		if overlapsAny(r, windows) {
			affected[i] = true
			anyAffected = true
		}
	}
	if !anyAffected {
		return nil, 0, errNoAffectedSection
	}

	out := make([]*confnode.ConfigNode, 0, n)
	lineOffset := 0
	reparsed := 0

	for i, r := range roots {
		if !affected[i] {
			shiftInPlace(r, lineOffset)
			out = append(out, r)
			continue
		}

		oldEnd := len(prev.lines) - 1
		if i+1 < n {
			if next := roots[i+1].Loc.StartLine - 1; next < oldEnd {
				oldEnd = next
			}
			for oldEnd > r.Loc.StartLine && strings.TrimSpace(prev.lines[oldEnd]) == "" {
				oldEnd--
			}
		}
		if oldEnd < r.Loc.StartLine {
			oldEnd = r.Loc.StartLine
		}
		oldSize := oldEnd - r.Loc.StartLine + 1
		newStart := r.Loc.StartLine + lineOffset
		if newStart < 0 {
			newStart = 0
		}
		if newStart >= len(newLines) {
			newStart = len(newLines) - 1
		}

		newEnd := len(newLines) - 1
		if i+1 < n {
			nextStart := roots[i+1].Loc.StartLine + lineOffset
			cand := nextStart - 1
			for cand > newStart && strings.TrimSpace(newLines[cand]) == "" {
				cand--
			}
			if cand < newStart {
				cand = newStart
			}
			newEnd = cand
		}
		if newEnd >= len(newLines) {
			newEnd = len(newLines) - 1
		}
		if newEnd < newStart {
			newEnd = newStart
		}

		snippet := strings.Join(newLines[newStart:newEnd+1], "\n")
		replacement, err := parser.Parse(snippet, sch, parser.Options{
			StartLine: newStart,
			Source:    confnode.SourceSnippet,
			Limits:    p.lim,
		})
		if err != nil {
			return nil, 0, err
		}
		out = append(out, replacement...)
		reparsed++

		newSize := newEnd - newStart + 1
		lineOffset += newSize - oldSize
	}

	return out, reparsed, nil
}

func shiftInPlace(n *confnode.ConfigNode, offset int) {
	if offset == 0 {
		return
	}
	n.Loc.StartLine += offset
	n.Loc.EndLine += offset
	for _, c := range n.Children {
		shiftInPlace(c, offset)
	}
}

type incrementalError string

func (e incrementalError) Error() string { return string(e) }

const errNoAffectedSection = incrementalError("incremental: no cached section overlaps the changed range")
