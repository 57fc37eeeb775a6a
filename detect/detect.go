// Package detect implements the vendor auto-detection cascade: an ordered
// list of fingerprint predicates run over the first slice of a document,
// each a bounded, line-walking state machine rather than a single regex --
// a correctness requirement, not an optimization, since adversarial
// configs are an expected input class.
package detect

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cedarpeak/netconf/schema"
)

// detectWindow bounds detection to the first N characters of input, the
// bound that keeps every heuristic predicate's worst case cheap.
const detectWindow = 2000

// Detector runs the ordered heuristic cascade. The zero value is usable
// and logs nothing; New attaches optional debug logging.
type Detector struct {
	log logrus.FieldLogger
}

// New returns a ready Detector. log may be nil.
func New(log logrus.FieldLogger) *Detector {
	if log == nil {
		log = logrus.New()
		log.(*logrus.Logger).SetOutput(discardWriter{})
	}
	return &Detector{log: log}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// heuristic is one cascade entry: a schema id plus the predicate that
// decides whether the window of lines fingerprints that vendor.
type heuristic struct {
	schemaID string
	match    func(lines []string) bool
}

// Detect returns the schema that best fingerprints configText, or the
// fallback (Cisco IOS) if nothing in the cascade matches. Detection is
// idempotent and bounded to the first 2,000 characters.
func Detect(configText string) *schema.Schema {
	return New(nil).Detect(configText)
}

// Detect runs the cascade with d's logger.
func (d *Detector) Detect(configText string) *schema.Schema {
	if d.log == nil {
		d = New(nil)
	}
	window := configText
	if len(window) > detectWindow {
		window = window[:detectWindow]
	}
	lines := strings.Split(window, "\n")

	for _, h := range cascade {
		if h.match(lines) {
			d.log.WithField("schema", h.schemaID).Debug("vendor detected")
			s, ok := schema.Get(h.schemaID)
			if ok {
				return s
			}
		}
	}
	d.log.Debug("vendor detection fell through to fallback")
	return schema.Fallback()
}

// --- small, safe building blocks -------------------------------------------------

// anyLine reports whether re matches any line. This is O(lines), and safe
// regardless of pattern complexity as long as re itself has no nested
// quantifiers -- every pattern below is a short anchored-or-unanchored
// single-line match, never a "spans unknown content" pattern.
func anyLine(lines []string, re *regexp.Regexp) bool {
	for _, l := range lines {
		if re.MatchString(l) {
			return true
		}
	}
	return false
}

func anyLineAny(lines []string, res ...*regexp.Regexp) bool {
	for _, re := range res {
		if anyLine(lines, re) {
			return true
		}
	}
	return false
}

func allMatch(lines []string, res ...*regexp.Regexp) bool {
	for _, re := range res {
		if !anyLine(lines, re) {
			return false
		}
	}
	return true
}

// indent returns the count of leading whitespace runes on line.
func indent(line string) int {
	n := 0
	for _, r := range line {
		if r == ' ' || r == '\t' {
			n++
		} else {
			break
		}
	}
	return n
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// indentedBlockContains is a bounded state machine standing in for a
// multi-line "A ... B" regex: it walks lines once, tracks
// whether it is "inside" a block opened by openRe (exited when a
// non-blank line returns to an indent <= the opener's), and reports
// whether innerRe matched anywhere in that span. No backtracking, no
// unbounded lookahead: a single pass, O(lines).
func indentedBlockContains(lines []string, openRe, innerRe *regexp.Regexp) bool {
	inside := false
	openIndent := -1
	for _, l := range lines {
		if isBlank(l) {
			continue
		}
		cur := indent(l)
		if inside && cur <= openIndent {
			inside = false
		}
		if openRe.MatchString(l) {
			inside = true
			openIndent = cur
			continue
		}
		if inside && innerRe.MatchString(l) {
			return true
		}
	}
	return false
}

// braceBlockContains is indentedBlockContains's brace-hierarchy analogue:
// it tracks brace depth instead of indentation, entering "inside" when
// openRe matches a line that also opens a brace, and leaving when that
// brace closes. Also a single bounded pass.
func braceBlockContains(lines []string, openRe, innerRe *regexp.Regexp) bool {
	depth := 0
	openDepth := -1
	inside := false
	for _, l := range lines {
		opens := strings.Count(l, "{")
		closes := strings.Count(l, "}")
		if openRe.MatchString(l) && opens > 0 {
			inside = true
			openDepth = depth
		}
		depth += opens
		if inside && innerRe.MatchString(l) {
			return true
		}
		depth -= closes
		if inside && depth <= openDepth {
			inside = false
		}
	}
	return false
}
