package pages

import (
	"context"
	"sync"
)

// Registry is the site collaborator pages are published to. Adding a page with an
// existing ID replaces it.
type Registry interface {
	AddPage(ctx context.Context, page PageDescriptor) error
}

// MemoryRegistry keeps published pages in memory, in first-publish order
type MemoryRegistry struct {
	mu    sync.RWMutex
	order []string
	pages map[string]PageDescriptor
}

// NewMemoryRegistry creates an empty registry
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{pages: make(map[string]PageDescriptor)}
}

func (r *MemoryRegistry) AddPage(_ context.Context, page PageDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pages[page.ID]; !ok {
		r.order = append(r.order, page.ID)
	}
	r.pages[page.ID] = page
	return nil
}

// Pages returns every published page
func (r *MemoryRegistry) Pages() []PageDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]PageDescriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.pages[id])
	}
	return out
}

// Page looks up a published page by id
func (r *MemoryRegistry) Page(id string) (PageDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pages[id]
	return p, ok
}
