package product

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/bandiwala-backend/internal/document"
)

func TestCreateProductOverridesVendorID(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository(), 0)
	owner := uuid.NewString()

	p, err := svc.CreateProduct(ctx, owner, document.Document{
		"name":     "Misal",
		"vendorId": uuid.NewString(),
		"_id":      "client-id",
	})
	require.NoError(t, err)

	assert.Equal(t, owner, p.VendorID)
	assert.NotEqual(t, "client-id", p.ID)
	assert.Equal(t, document.Document{"name": "Misal"}, p.Attributes)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, owner, out["vendorId"])
	assert.Equal(t, p.ID, out["_id"])
}

func TestCreateProductRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository(), 0)

	_, err := svc.CreateProduct(ctx, "not-a-vendor", document.Document{"name": "Chai"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	for _, body := range []document.Document{
		{"price": json.Number("-5")},
		{"price": "free"},
		{"stock": json.Number("2.5")},
		{"name": json.Number("7")},
		{"size.cm": json.Number("10")},
		{"$where": "1"},
	} {
		_, err := svc.CreateProduct(ctx, uuid.NewString(), body)
		assert.ErrorIs(t, err, ErrInvalidInput, body)
	}
}

func TestListProducts(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository(), 0)
	a, b := uuid.NewString(), uuid.NewString()

	for _, name := range []string{"Poha", "Chai"} {
		_, err := svc.CreateProduct(ctx, a, document.Document{"name": name})
		require.NoError(t, err)
	}
	_, err := svc.CreateProduct(ctx, b, document.Document{"name": "Dosa"})
	require.NoError(t, err)

	list, err := svc.ListProducts(ctx, a)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Poha", list[0].Attributes["name"])
	assert.Equal(t, "Chai", list[1].Attributes["name"])

	empty, err := svc.ListProducts(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	malformed, err := svc.ListProducts(ctx, "garbage")
	require.NoError(t, err)
	assert.Empty(t, malformed)
}
