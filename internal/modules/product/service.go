package product

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/georgemunganga/bandiwala-backend/internal/document"
)

// Service defines product business logic.
type Service interface {
	ListProducts(ctx context.Context, vendorID string) ([]*Product, error)
	CreateProduct(ctx context.Context, vendorID string, body document.Document) (*Product, error)
}

var validate = validator.New()

// productSchema is the typed view of the fields the store cares about.
type productSchema struct {
	Name  *string  `json:"name" validate:"omitnil,max=200"`
	Price *float64 `json:"price" validate:"omitnil,gte=0"`
	Stock *int64   `json:"stock" validate:"omitnil,gte=0"`
}

type service struct {
	repo    Repository
	timeout time.Duration
	now     func() time.Time
}

// NewService creates a product service. storeTimeout bounds each repository
// call; zero disables the extra deadline.
func NewService(repo Repository, storeTimeout time.Duration) Service {
	return &service{
		repo:    repo,
		timeout: storeTimeout,
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// ListProducts returns the vendor's products. An id that cannot belong to any
// vendor simply has no products.
func (s *service) ListProducts(ctx context.Context, vendorID string) ([]*Product, error) {
	parsed, err := uuid.Parse(vendorID)
	if err != nil {
		return []*Product{}, nil
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListByVendor(ctx, parsed.String())
}

// CreateProduct stores body as a new product owned by vendorID. Any vendorId
// in the body is ignored. The vendor itself is not looked up.
func (s *service) CreateProduct(ctx context.Context, vendorID string, body document.Document) (*Product, error) {
	parsed, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("%w: vendor id %q is not a valid id", ErrInvalidInput, vendorID)
	}

	attrs := body.Sanitize().Without(vendorIDField)
	if err := attrs.CheckKeys(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := checkSchema(attrs); err != nil {
		return nil, err
	}

	now := s.now()
	p := &Product{
		ID:         uuid.NewString(),
		VendorID:   parsed.String(),
		Attributes: attrs,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func checkSchema(doc document.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	var s productSchema
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
