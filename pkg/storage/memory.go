package storage

import (
	"context"
	"sync"

	"gitlab.connectwisedev.com/product-management/models"
)

// MemoryGateway keeps products in a process-local map. Used for local runs
// (STORAGE_BACKEND=memory) and in tests.
type MemoryGateway struct {
	mu sync.RWMutex
	m  map[string]models.Product
}

// NewMemoryGateway returns an empty in-memory gateway.
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{m: make(map[string]models.Product)}
}

func (g *MemoryGateway) Put(ctx context.Context, p models.Product) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.m[p.ID] = p
	return nil
}

func (g *MemoryGateway) Get(ctx context.Context, id string) (models.Product, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	p, ok := g.m[id]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	return p, nil
}

func (g *MemoryGateway) Scan(ctx context.Context) ([]models.Product, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	products := make([]models.Product, 0, len(g.m))
	for _, p := range g.m {
		products = append(products, p)
	}
	return products, nil
}

func (g *MemoryGateway) Update(ctx context.Context, p models.Product) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.m[p.ID]; !ok {
		return ErrNotFound
	}
	g.m[p.ID] = p
	return nil
}

func (g *MemoryGateway) Delete(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.m, id)
	return nil
}
