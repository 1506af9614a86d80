package parser

import (
	"sort"
	"strings"
	"sync"
)

// Extractor builds a Definition from the text following `DEFINE <KIND>`.
// Extractors must be total: unrecognised content is ignored, never reported.
type Extractor func(rest string) Definition

// Registry maps statement keywords to extractors. It is the extension point
// for new statement kinds: register a keyword and the dispatcher routes to it
// without further changes.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]Extractor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[string]Extractor)}
}

// DefaultRegistry returns a new registry holding every built-in statement
// kind. Each call returns an independent copy, so registering on it never
// affects other parsers.
func DefaultRegistry() *Registry {
	return NewRegistry().
		Register("TABLE", extractTable).
		Register("FIELD", extractField).
		Register("EVENT", extractEvent).
		Register("PARAM", extractParam).
		Register("BUCKET", extractBucket).
		Register("MODULE", extractModule).
		Register("SEQUENCE", extractSequence).
		Register("ANALYZER", extractAnalyzer).
		Register("USER", extractUser).
		Register("ACCESS", extractAccess).
		Register("FUNCTION", extractFunction).
		Register("INDEX", extractIndex)
}

// Register adds or replaces the extractor for keyword (case-insensitive).
func (r *Registry) Register(keyword string, fn Extractor) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.extractors[strings.ToUpper(keyword)] = fn
	return r
}

// Lookup returns the extractor for keyword (case-insensitive).
func (r *Registry) Lookup(keyword string) (Extractor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.extractors[strings.ToUpper(keyword)]
	return fn, ok
}

// Keywords returns the registered keywords, sorted.
func (r *Registry) Keywords() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keywords := make([]string, 0, len(r.extractors))
	for kw := range r.extractors {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	return keywords
}
