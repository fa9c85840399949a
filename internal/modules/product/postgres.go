package product

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/georgemunganga/bandiwala-backend/internal/document"
)

type productRow struct {
	ID         string    `db:"id"`
	VendorID   string    `db:"vendor_id"`
	Attributes []byte    `db:"attributes"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type postgresRepo struct{ db *sqlx.DB }

func NewPostgresRepository(db *sqlx.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	attrs, err := json.Marshal(p.Attributes)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO products (id, vendor_id, attributes, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, $4, $5)`,
		p.ID, p.VendorID, string(attrs), p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *postgresRepo) ListByVendor(ctx context.Context, vendorID string) ([]*Product, error) {
	var rows []productRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, vendor_id, attributes, created_at, updated_at
		FROM products WHERE vendor_id = $1
		ORDER BY created_at`, vendorID)
	if err != nil {
		return nil, err
	}

	products := make([]*Product, 0, len(rows))
	for _, row := range rows {
		attrs, err := document.Decode(row.Attributes)
		if err != nil {
			return nil, err
		}
		products = append(products, &Product{
			ID:         row.ID,
			VendorID:   row.VendorID,
			Attributes: attrs,
			CreatedAt:  row.CreatedAt.UTC(),
			UpdatedAt:  row.UpdatedAt.UTC(),
		})
	}
	return products, nil
}
