package schema

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed schemas.yaml
var schemasYAML []byte

type registryFile struct {
	Schemas []Schema `yaml:"schemas"`
}

var (
	once     sync.Once
	registry []*Schema
	byID     map[string]*Schema
	loadErr  error
)

// load parses the embedded schema document and compiles every regex
// exactly once. A panic here means the embedded YAML itself is broken,
// which is a build-time defect, not a runtime one.
func load() {
	var file registryFile
	if err := yaml.Unmarshal(schemasYAML, &file); err != nil {
		loadErr = fmt.Errorf("schema: decode embedded schemas.yaml: %w", err)
		return
	}
	byID = make(map[string]*Schema, len(file.Schemas))
	for i := range file.Schemas {
		s := &file.Schemas[i]
		if err := s.compile(); err != nil {
			loadErr = err
			return
		}
		if _, dup := byID[s.ID]; dup {
			loadErr = fmt.Errorf("schema: duplicate schema id %q", s.ID)
			return
		}
		byID[s.ID] = s
		registry = append(registry, s)
	}
}

func ensureLoaded() {
	once.Do(load)
	if loadErr != nil {
		panic(loadErr)
	}
}

// FallbackID is the schema returned by detection when nothing else
// matches: Cisco-IOS-style indentation-hierarchical.
const FallbackID = "cisco-ios"

// Registry returns every compiled vendor schema, in the fixed order they
// are declared in schemas.yaml. The slice is shared and must not be
// mutated by callers.
func Registry() []*Schema {
	ensureLoaded()
	return registry
}

// IDs returns every registered schema id, in registry order.
func IDs() []string {
	ensureLoaded()
	ids := make([]string, len(registry))
	for i, s := range registry {
		ids[i] = s.ID
	}
	return ids
}

// Get looks up a schema by id in byID; the schema set is small (sixteen
// entries) and this is not a hot path.
func Get(id string) (*Schema, bool) {
	ensureLoaded()
	s, ok := byID[id]
	return s, ok
}

// IsValid reports whether id names a registered schema.
func IsValid(id string) bool {
	_, ok := Get(id)
	return ok
}

// Fallback returns the default Cisco-IOS-style schema.
func Fallback() *Schema {
	s, ok := Get(FallbackID)
	if !ok {
		panic("schema: fallback schema " + FallbackID + " missing from registry")
	}
	return s
}
