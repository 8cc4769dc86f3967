package domain

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Named is implemented by everything that can be registered by type name.
type Named interface {
	// Name is the Go-style type name, e.g. "MailingList". The registry key
	// is its lower-cased form.
	Name() string
	// VerboseName is the human-readable singular name.
	VerboseName() string
}

// Entry is one registered type.
type Entry[K Named] struct {
	Type        string `json:"type"`
	DisplayName string `json:"display_name"`
	Kind        K      `json:"-"`
}

// Registry maps lower-cased type names to registered kinds. It is filled
// once at start-up from init functions and only read afterwards.
type Registry[K Named] struct {
	mu      sync.RWMutex
	entries map[string]*Entry[K]
}

func NewRegistry[K Named]() *Registry[K] {
	return &Registry[K]{entries: make(map[string]*Entry[K])}
}

var titleCaser = cases.Title(language.Und)

// Register adds k under its lower-cased name. Registering the same name twice panics.
func (r *Registry[K]) Register(k K) *Entry[K] {
	typ := strings.ToLower(k.Name())

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[typ]; exists {
		panic(fmt.Sprintf("domain: type %q registered twice", typ))
	}
	e := &Entry[K]{
		Type:        typ,
		DisplayName: titleCaser.String(k.VerboseName()),
		Kind:        k,
	}
	r.entries[typ] = e
	return e
}

// Lookup finds a kind by type name, case-insensitively.
func (r *Registry[K]) Lookup(typ string) (*Entry[K], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[strings.ToLower(typ)]
	return e, ok
}

// Entries returns all registered entries sorted by type.
func (r *Registry[K]) Entries() []*Entry[K] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Entry[K], 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// SearchEngine describes an external search service a resource kind can be found with.
type SearchEngine struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	URLTemplate string `json:"url_template"`
}

// URL builds the search URL for query; "{query}" in the template is replaced.
func (s SearchEngine) URL(query string) string {
	return strings.ReplaceAll(s.URLTemplate, "{query}", url.QueryEscape(query))
}

// ExternalSearcher is implemented by kinds that declare an external search engine.
type ExternalSearcher interface {
	ExternalSearch() SearchEngine
}

// SearchEngines lists the engines declared by registered resource kinds,
// named after the kind that declares them.
func SearchEngines(r *Registry[Kind]) []SearchEngine {
	var out []SearchEngine
	for _, e := range r.Entries() {
		if engine, ok := searchEngineOf(e); ok {
			out = append(out, engine)
		}
	}
	return out
}

// LookupSearchEngine returns the engine declared by the kind typ.
func LookupSearchEngine(r *Registry[Kind], typ string) (SearchEngine, bool) {
	e, ok := r.Lookup(typ)
	if !ok {
		return SearchEngine{}, false
	}
	return searchEngineOf(e)
}

func searchEngineOf(e *Entry[Kind]) (SearchEngine, bool) {
	s, ok := e.Kind.(ExternalSearcher)
	if !ok {
		return SearchEngine{}, false
	}
	engine := s.ExternalSearch()
	engine.Name = e.Type
	engine.DisplayName = e.Kind.VerboseName()
	return engine, true
}

// Resources holds every resource kind of the catalog.
var Resources = NewRegistry[Kind]()

// RegisterResource registers a resource kind with the process-wide registry.
func RegisterResource(k Kind) {
	Resources.Register(k)
}
