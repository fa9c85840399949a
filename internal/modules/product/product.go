package product

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/georgemunganga/bandiwala-backend/internal/document"
)

var (
	// ErrInvalidInput wraps every payload the schema layer rejects.
	ErrInvalidInput = errors.New("invalid product payload")
)

// vendorIDField is overwritten with the owning vendor on every create.
const vendorIDField = "vendorId"

// Product is an item owned by exactly one vendor.
type Product struct {
	ID         string
	VendorID   string
	Attributes document.Document
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MarshalJSON flattens the attributes next to _id, vendorId and the timestamps.
func (p Product) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Attributes)+4)
	for k, v := range p.Attributes {
		out[k] = document.Normalize(v)
	}
	out["_id"] = p.ID
	out[vendorIDField] = p.VendorID
	out["createdAt"] = p.CreatedAt
	out["updatedAt"] = p.UpdatedAt
	return json.Marshal(out)
}
