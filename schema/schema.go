// Package schema holds the vendor schema model: pure, immutable data
// describing how a vendor dialect nests. Schemas are constructed once from
// an embedded YAML document and shared read-only -- data, not subclasses.
package schema

import (
	"fmt"
	"regexp"
)

// BlockStarter is one entry in a schema's ordered block-starter list.
// Order is the tie-breaking policy: more specific patterns are listed
// before more generic ones, and the first entry whose pattern matches a
// line wins in naive (single-result) lookup.
type BlockStarter struct {
	Pattern string `yaml:"pattern"`
	Depth   int    `yaml:"depth"`

	re *regexp.Regexp
}

// Schema is the immutable, data-only description of one vendor dialect.
type Schema struct {
	ID                string         `yaml:"id"`
	Name              string         `yaml:"name"`
	UseBraceHierarchy bool           `yaml:"use_brace_hierarchy"`
	BlockStarters     []BlockStarter `yaml:"block_starters"`
	BlockEnders       []string       `yaml:"block_enders"`
	CommentPatterns   []string       `yaml:"comment_patterns"`
	SectionDelimiter  string         `yaml:"section_delimiter"`

	blockEnderRes []*regexp.Regexp
	commentRes    []*regexp.Regexp
}

// compile compiles every regex body in s. Called once, at registry load
// time; patterns are compiled case-insensitive, and any anchoring at line
// start comes from the pattern's own leading ^.
func (s *Schema) compile() error {
	for i := range s.BlockStarters {
		re, err := regexp.Compile("(?i)" + s.BlockStarters[i].Pattern)
		if err != nil {
			return fmt.Errorf("schema %s: block_starter %q: %w", s.ID, s.BlockStarters[i].Pattern, err)
		}
		s.BlockStarters[i].re = re
	}
	s.blockEnderRes = make([]*regexp.Regexp, len(s.BlockEnders))
	for i, p := range s.BlockEnders {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return fmt.Errorf("schema %s: block_ender %q: %w", s.ID, p, err)
		}
		s.blockEnderRes[i] = re
	}
	s.commentRes = make([]*regexp.Regexp, len(s.CommentPatterns))
	for i, p := range s.CommentPatterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return fmt.Errorf("schema %s: comment_pattern %q: %w", s.ID, p, err)
		}
		s.commentRes[i] = re
	}
	return nil
}

// IsComment reports whether line matches any comment pattern.
func (s *Schema) IsComment(line string) bool {
	for _, re := range s.commentRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// IsBlockEnder reports whether line matches any block-ender pattern
// (indentation/keyword mode only; brace mode closes on '}').
func (s *Schema) IsBlockEnder(line string) bool {
	for _, re := range s.blockEnderRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// StarterMatch describes the result of matching a line against the
// schema's block-starter list.
type StarterMatch struct {
	Matched bool
	// Depth is the first matching entry's depth (naive "first match wins"
	// lookup); callers that need the full multi-depth candidate set use
	// Depths.
	Depth int
	// Depths is every depth registered under the same pattern text as the
	// first match, in list order. Len(Depths) > 1 means this token is
	// deliberately registered at multiple depths.
	Depths []int
}

// MatchStarters runs every block-starter pattern against line and reports
// the first match plus its full depth group. Patterns are consulted in
// list order; this is the single entry point both the naive "first match"
// callers and the context-aware depth-selection logic (parser rules 3/4)
// use, so there is exactly one place that defines match order.
func (s *Schema) MatchStarters(line string) StarterMatch {
	var firstIdx = -1
	for i := range s.BlockStarters {
		if s.BlockStarters[i].re.MatchString(line) {
			firstIdx = i
			break
		}
	}
	if firstIdx == -1 {
		return StarterMatch{}
	}
	pattern := s.BlockStarters[firstIdx].Pattern
	var depths []int
	for i := range s.BlockStarters {
		if s.BlockStarters[i].Pattern == pattern {
			depths = append(depths, s.BlockStarters[i].Depth)
		}
	}
	return StarterMatch{
		Matched: true,
		Depth:   s.BlockStarters[firstIdx].Depth,
		Depths:  depths,
	}
}
