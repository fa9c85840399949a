package product

import (
	"context"
	"fmt"
	"sync"
)

type memoryRepo struct {
	mu       sync.RWMutex
	products []*Product
	ids      map[string]struct{}
}

// NewMemoryRepository returns an in-process product store.
func NewMemoryRepository() Repository {
	return &memoryRepo{ids: make(map[string]struct{})}
}

func (r *memoryRepo) Create(_ context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ids[p.ID]; exists {
		return fmt.Errorf("duplicate product id %s", p.ID)
	}
	r.ids[p.ID] = struct{}{}
	r.products = append(r.products, copyProduct(p))
	return nil
}

// ListByVendor returns products in insertion order.
func (r *memoryRepo) ListByVendor(_ context.Context, vendorID string) ([]*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Product, 0)
	for _, p := range r.products {
		if p.VendorID == vendorID {
			out = append(out, copyProduct(p))
		}
	}
	return out, nil
}

func copyProduct(p *Product) *Product {
	cp := *p
	cp.Attributes = p.Attributes.Clone()
	return &cp
}
