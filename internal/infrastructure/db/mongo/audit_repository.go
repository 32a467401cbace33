package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/products-api/internal/core/domain"
	"github.com/99minutos/products-api/internal/core/ports"
)

const collectionValidations = "product_validations"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	db *mongo.Database
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{db: db}
}

// InsertValidation persists a creation-gate decision to the audit collection.
func (r *AuditRepository) InsertValidation(ctx context.Context, a *domain.ValidationAudit) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"name":             a.Name,
		"price":            a.Price,
		"validationResult": a.Verdict(),
		"decidedAt":        a.DecidedAt.UTC(),
		"recordedAt":       time.Now().UTC(),
	}
	if a.Owner != "" {
		doc["owner"] = a.Owner
	}

	_, err := r.db.Collection(collectionValidations).InsertOne(ctx, doc)
	return err
}
