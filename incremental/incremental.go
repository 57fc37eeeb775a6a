// Package incremental implements the incremental parser: a
// per-document cache keyed by URI, keeping the previous parse tree and a
// per-line hash so a small edit can be serviced by re-parsing only the
// affected top-level sections instead of the whole document.
//
// Line numbers are rebased by tracking an offset and walking it forward
// after a section-level re-parse splices new lines into the middle of a
// document. Each cache entry is a small struct owned exclusively by its
// caller, mutated under a single mutex, with no process-wide registry.
package incremental

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cedarpeak/netconf/confnode"
	"github.com/cedarpeak/netconf/detect"
	"github.com/cedarpeak/netconf/limits"
	"github.com/cedarpeak/netconf/parser"
	"github.com/cedarpeak/netconf/schema"
)

// lineHash is a DJB2-variant 32-bit hash, cheap enough to compute per line
// on every parse without dominating runtime. Collisions cause a spurious
// full-parse fallback, never an incorrect tree.
func lineHash(s string) uint32 {
	var h uint32 = 5381
	for i := 0; i < len(s); i++ {
		h = h*33 + uint32(s[i])
	}
	return h
}

// document is one cached parse: the vendor it was parsed with, the source
// split into lines, each line's hash, the resulting top-level tree, and the
// caller-supplied version last accepted.
type document struct {
	vendor  *schema.Schema
	lines   []string
	hashes  []uint32
	roots   []*confnode.ConfigNode
	version int
}

// Stats summarizes the most recent Parse call, retrieved via GetLastStats.
type Stats struct {
	FullParse        bool
	ChangedRanges    int
	SectionsReparsed int
	ParseTimeMs      float64
	Reason           string
	VendorID         string
	Version          int
}

// Options configures a Parser.
type Options struct {
	// Vendor is the constructor default: a fixed schema, or nil for "auto".
	Vendor *schema.Schema
	Limits limits.Limits
	Log    logrus.FieldLogger
}

// Parser is a cache of per-URI parsed documents plus the last call's stats.
// Intended to be owned by a single caller; the mutex here guards against
// accidental concurrent misuse, not as an invitation to share one instance
// across threads.
type Parser struct {
	mu            sync.Mutex
	docs          map[string]*document
	defaultVendor *schema.Schema
	lim           limits.Limits
	log           logrus.FieldLogger
	lastStats     Stats
}

// New returns an empty incremental Parser.
func New(opts Options) *Parser {
	lim := opts.Limits
	if lim == (limits.Limits{}) {
		lim = limits.Default()
	}
	log := opts.Log
	if log == nil {
		log = logrus.New()
		log.(*logrus.Logger).SetOutput(discardWriter{})
	}
	return &Parser{
		docs:          make(map[string]*document),
		defaultVendor: opts.Vendor,
		lim:           lim,
		log:           log,
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// Parse services uri against the full/incremental decision table below.
// vendor is optional: a non-nil override wins over the constructor default,
// which in turn wins over "auto" (reuse the cached vendor if one exists, otherwise
// run detect.Detect).
func (p *Parser) Parse(uri string, content string, version int, vendor ...*schema.Schema) ([]*confnode.ConfigNode, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	start := time.Now()
	var override *schema.Schema
	if len(vendor) > 0 {
		override = vendor[0]
	}

	prev, cached := p.docs[uri]
	effective := p.resolveVendor(content, override, prev, cached)

	if !cached {
		return p.fullParse(uri, content, effective, version, "", start)
	}
	if prev.vendor.ID != effective.ID {
		return p.fullParse(uri, content, effective, version, "vendor_changed", start)
	}
	if version <= prev.version {
		p.lastStats = Stats{Version: prev.version, VendorID: effective.ID, ParseTimeMs: elapsedMs(start)}
		return prev.roots, nil
	}

	newLines := splitLines(content)
	newHashes := hashAll(newLines)
	windows := diffWindows(prev.hashes, newHashes)

	if len(windows) == 0 {
		prev.version = version
		p.lastStats = Stats{Version: prev.version, VendorID: effective.ID, ParseTimeMs: elapsedMs(start)}
		return prev.roots, nil
	}

	changedLines := 0
	for _, w := range windows {
		changedLines += w.newEnd - w.newStart + 1
	}
	ratio := float64(changedLines) / float64(maxInt(1, len(newLines)))
	if ratio > p.lim.IncrementalParseThreshold {
		return p.fullParse(uri, content, effective, version, "too_many_changes", start)
	}
	if structurallySignificant(len(prev.lines), len(newLines), prev.roots, windows) {
		return p.fullParse(uri, content, effective, version, "structural_changes", start)
	}

	roots, reparsed, err := p.incrementalUpdate(prev, newLines, windows, effective)
	if err != nil {
		return p.fullParse(uri, content, effective, version, "no_affected_section", start)
	}

	prev.lines = newLines
	prev.hashes = newHashes
	prev.roots = roots
	prev.version = version

	p.lastStats = Stats{
		ChangedRanges:    len(windows),
		SectionsReparsed: reparsed,
		Version:          prev.version,
		VendorID:         effective.ID,
		ParseTimeMs:      elapsedMs(start),
	}
	p.log.WithField("uri", uri).WithField("ranges", len(windows)).WithField("reparsed", reparsed).Debug("incremental update")
	return roots, nil
}

// resolveVendor applies the vendor-resolution precedence: per-call
// override, else constructor default, else "auto" (reuse the cached
// vendor for consistency across edits, or detect fresh for a new document).
func (p *Parser) resolveVendor(content string, override *schema.Schema, prev *document, cached bool) *schema.Schema {
	if override != nil {
		return override
	}
	if p.defaultVendor != nil {
		return p.defaultVendor
	}
	if cached {
		return prev.vendor
	}
	return detect.Detect(content)
}

func (p *Parser) fullParse(uri, content string, sch *schema.Schema, version int, reason string, start time.Time) ([]*confnode.ConfigNode, error) {
	roots, err := parser.Parse(content, sch, parser.Options{Limits: p.lim, Log: p.log})
	if err != nil {
		p.lastStats = Stats{FullParse: true, Reason: reason, VendorID: sch.ID, ParseTimeMs: elapsedMs(start)}
		return nil, err
	}
	lines := splitLines(content)
	p.docs[uri] = &document{
		vendor:  sch,
		lines:   lines,
		hashes:  hashAll(lines),
		roots:   roots,
		version: version,
	}
	p.lastStats = Stats{
		FullParse:        true,
		Reason:           reason,
		SectionsReparsed: len(roots),
		Version:          version,
		VendorID:         sch.ID,
		ParseTimeMs:      elapsedMs(start),
	}
	p.log.WithField("uri", uri).WithField("reason", reason).Debug("full parse")
	return roots, nil
}

// GetLastStats returns the Stats from the most recent Parse call.
func (p *Parser) GetLastStats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastStats
}

// Invalidate drops uri from the cache, forcing a full parse next time.
func (p *Parser) Invalidate(uri string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.docs, uri)
}

// ClearAll drops every cached document.
func (p *Parser) ClearAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.docs = make(map[string]*document)
}

// CacheSize reports how many documents are currently cached.
func (p *Parser) CacheSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.docs)
}

// IsCached reports whether uri currently has a cached parse.
func (p *Parser) IsCached(uri string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.docs[uri]
	return ok
}

// CachedVersion returns uri's current version, or -1 if uri is not cached.
func (p *Parser) CachedVersion(uri string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, ok := p.docs[uri]
	if !ok {
		return -1
	}
	return d.version
}

// CachedVendor returns uri's cached vendor schema, or nil if uri is not
// cached.
func (p *Parser) CachedVendor(uri string) *schema.Schema {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, ok := p.docs[uri]
	if !ok {
		return nil
	}
	return d.vendor
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
