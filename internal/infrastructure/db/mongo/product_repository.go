package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/products-api/internal/core/domain"
	"github.com/99minutos/products-api/internal/core/ports"
)

const collectionProducts = "products"

type ProductRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts), now: time.Now}
}

// mongoProduct is the stored document. _id and __v never leave this package.
type mongoProduct struct {
	ObjectID  primitive.ObjectID `bson:"_id,omitempty"`
	ID        string             `bson:"id"`
	Name      string             `bson:"name"`
	Price     float64            `bson:"price"`
	Owner     primitive.ObjectID `bson:"owner"`
	Status    string             `bson:"status"`
	Validated bool               `bson:"validated"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
	Version   int64              `bson:"__v"`
}

func (m mongoProduct) toDomain() *domain.Product {
	return &domain.Product{
		ID:        m.ID,
		Name:      m.Name,
		Price:     m.Price,
		Owner:     m.Owner.Hex(),
		Status:    domain.ProductStatus(m.Status),
		Validated: m.Validated,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
		Version:   m.Version,
	}
}

// Create assigns a UUID, timestamps and the initial version, then inserts p.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	owner, err := primitive.ObjectIDFromHex(p.Owner)
	if err != nil {
		return fmt.Errorf("insert product: owner %q: %w", p.Owner, err)
	}

	now := r.now().UTC().Truncate(time.Millisecond)
	doc := mongoProduct{
		ID:        uuid.NewString(),
		Name:      p.Name,
		Price:     p.Price,
		Owner:     owner,
		Status:    string(p.Status),
		Validated: p.Validated,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if doc.Status == "" {
		doc.Status = string(domain.ProductActive)
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	*p = *doc.toDomain()
	return nil
}

// FindOne returns the first product matching filter.
func (r *ProductRepository) FindOne(ctx context.Context, filter ports.ProductFilter) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q, ok := filterDoc(filter)
	if !ok {
		return nil, domain.ErrProductNotFound
	}

	var doc mongoProduct
	if err := r.col.FindOne(ctx, q).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns the page [offset, offset+limit) of matching products in
// insertion order together with the total number of matches.
func (r *ProductRepository) List(ctx context.Context, filter ports.ProductFilter, offset, limit int) ([]*domain.Product, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q, ok := filterDoc(filter)
	if !ok {
		return []*domain.Product{}, 0, nil
	}

	total, err := r.col.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	if offset < 0 || int64(offset) >= total {
		return []*domain.Product{}, total, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find products: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoProduct
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode products: %w", err)
	}

	items := make([]*domain.Product, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toDomain())
	}
	return items, total, nil
}

// Save writes the mutable fields of p, guarded by its version.
func (r *ProductRepository) Save(ctx context.Context, p *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := r.now().UTC().Truncate(time.Millisecond)
	filter := bson.M{"id": p.ID, "__v": p.Version}
	update := bson.M{
		"$set": bson.M{
			"name":      p.Name,
			"price":     p.Price,
			"status":    string(p.Status),
			"validated": p.Validated,
			"updatedAt": now,
		},
		"$inc": bson.M{"__v": 1},
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("save product: %w", err)
	}
	if res.MatchedCount == 0 {
		n, err := r.col.CountDocuments(ctx, bson.M{"id": p.ID})
		if err != nil {
			return fmt.Errorf("save product: %w", err)
		}
		if n == 0 {
			return domain.ErrProductNotFound
		}
		return domain.ErrProductConflict
	}

	p.UpdatedAt = now
	p.Version++
	return nil
}

// EnsureIndexes creates necessary indexes on the products collection.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "status", Value: 1}, {Key: "createdAt", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// filterDoc translates filter into a query document. ok is false when the
// filter can never match, e.g. an owner that is not a valid ObjectID.
func filterDoc(f ports.ProductFilter) (bson.M, bool) {
	q := bson.M{}
	if f.ID != "" {
		q["id"] = f.ID
	}
	if f.Owner != "" {
		owner, err := primitive.ObjectIDFromHex(f.Owner)
		if err != nil {
			return nil, false
		}
		q["owner"] = owner
	}
	if f.Status != "" {
		q["status"] = string(f.Status)
	}
	return q, true
}
