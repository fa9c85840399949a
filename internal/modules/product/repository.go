package product

import "context"

// Repository defines the interface for product data storage.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	ListByVendor(ctx context.Context, vendorID string) ([]*Product, error)
}
