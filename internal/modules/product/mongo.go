package product

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/georgemunganga/bandiwala-backend/internal/database"
	"github.com/georgemunganga/bandiwala-backend/internal/document"
)

type productRecord struct {
	ID         string    `bson:"_id"`
	VendorID   string    `bson:"vendorId"`
	Attributes bson.M    `bson:"attributes"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

type mongoRepo struct{ coll *mongo.Collection }

// NewMongoRepository creates a MongoDB-backed product repository.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepo{coll: db.Collection(database.ProductsCollection)}
}

func (r *mongoRepo) Create(ctx context.Context, p *Product) error {
	_, err := r.coll.InsertOne(ctx, productRecord{
		ID:         p.ID,
		VendorID:   p.VendorID,
		Attributes: bson.M(p.Attributes.Native()),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	})
	return err
}

func (r *mongoRepo) ListByVendor(ctx context.Context, vendorID string) ([]*Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"vendorId": vendorID}, opts)
	if err != nil {
		return nil, err
	}
	var recs []productRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}

	products := make([]*Product, 0, len(recs))
	for _, rec := range recs {
		attrs, _ := document.Normalize(map[string]any(rec.Attributes)).(map[string]any)
		products = append(products, &Product{
			ID:         rec.ID,
			VendorID:   rec.VendorID,
			Attributes: document.Document(attrs),
			CreatedAt:  rec.CreatedAt.UTC(),
			UpdatedAt:  rec.UpdatedAt.UTC(),
		})
	}
	return products, nil
}
