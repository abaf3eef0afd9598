package tokenize

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/richinput/internal/emoji"
)

// Registry is shared, process-wide vocabulary: custom recognizers and an
// emoji catalog that several pipelines draw from. It is safe for
// concurrent use.
type Registry struct {
	mu          sync.RWMutex
	catalog     *emoji.Catalog
	recognizers map[string]Recognizer
}

// NewRegistry creates a registry around catalog. A nil catalog gets the
// standard set.
func NewRegistry(catalog *emoji.Catalog) *Registry {
	if catalog == nil {
		catalog = emoji.NewStandardCatalog()
	}
	return &Registry{
		catalog:     catalog,
		recognizers: make(map[string]Recognizer),
	}
}

// Catalog returns the shared emoji catalog.
func (r *Registry) Catalog() *emoji.Catalog {
	return r.catalog
}

// Register adds a recognizer under its name.
func (r *Registry) Register(rec Recognizer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.recognizers[rec.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrRecognizerExists, rec.Name())
	}
	r.recognizers[rec.Name()] = rec
	return nil
}

// Unregister removes a recognizer.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.recognizers[name]; !exists {
		return fmt.Errorf("%w: %s", ErrRecognizerNotFound, name)
	}
	delete(r.recognizers, name)
	return nil
}

// Recognizers returns the registered recognizers ordered by priority,
// highest first, then by name.
func (r *Registry) Recognizers() []Recognizer {
	r.mu.RLock()
	out := make([]Recognizer, 0, len(r.recognizers))
	for _, rec := range r.recognizers {
		out = append(out, rec)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority() != out[j].Priority() {
			return out[i].Priority() > out[j].Priority()
		}
		return out[i].Name() < out[j].Name()
	})
	return out
}
