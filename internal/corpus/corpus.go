// Package corpus bundles a small set of multi-vendor sample configs as an
// in-memory fs.FS, and walks filesystems of configs: fs.WalkDir in
// lexical order, de-duplicating identical file contents by SHA-256 so the
// same fixture can't silently get ingested twice.
package corpus

import (
	"crypto/sha256"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cedarpeak/netconf/confnode"
	"github.com/cedarpeak/netconf/detect"
	"github.com/cedarpeak/netconf/parser"
	"github.com/cedarpeak/netconf/schema"
)

//go:embed testdata
var bundled embed.FS

// Bundled returns the embedded sample-config filesystem, rooted at
// "testdata", one file per dialect family (cisco-ios, juniper-junos,
// fortinet-fortios, mikrotik-routeros, nclu).
func Bundled() fs.FS {
	sub, err := fs.Sub(bundled, "testdata")
	if err != nil {
		panic(err) // embedded testdata/ is a build-time invariant, not a runtime one
	}
	return sub
}

// Result is one file's parse outcome from Walk.
type Result struct {
	Path   string
	Vendor *schema.Schema
	Roots  []*confnode.ConfigNode
}

// configExtensions bounds Walk to files that plausibly hold a device config;
// vendor configs carry no reliable shared content fingerprint across all
// sixteen dialects, so Walk sniffs by extension instead and leaves vendor
// identification to detect.Detect.
var configExtensions = []string{".cfg", ".conf", ".txt", ""}

// Walk reads every config file under fsys in lexical order, skipping hidden
// paths, de-duplicating identical contents by SHA-256 (a file seen twice
// under two different paths -- or the same bundle included twice -- returns
// an error rather than silently double-counting it), and runs each through
// detect.Detect + parser.Parse.
func Walk(fsys fs.FS) ([]Result, error) {
	hashes := make(map[[32]byte]string)
	var results []Result

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasPrefix(path, ".") || strings.Contains(path, "/.") {
			return nil
		}
		if !hasConfigExtension(path) {
			return nil
		}

		buf, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}

		hash := sha256.Sum256(buf)
		if existing, ok := hashes[hash]; ok {
			return fmt.Errorf("corpus: %s has identical contents to %s", path, existing)
		}
		hashes[hash] = path

		text := string(buf)
		sch := detect.Detect(text)
		roots, err := parser.Parse(text, sch, parser.Options{})
		if err != nil {
			return fmt.Errorf("corpus: parse %s: %w", path, err)
		}
		results = append(results, Result{Path: path, Vendor: sch, Roots: roots})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, nil
}

func hasConfigExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range configExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
