package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/authcore/auth-service/internal/core/domain"
)

const auditCollection = "auth_audit"

// MongoAuditRepository appends authentication events. Records are never
// updated or read back by the service; the collection exists for operators.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	Email     string `bson:"email"`
	Kind      string `bson:"kind"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *MongoAuditRepository) Record(ctx context.Context, event domain.AuditEvent) error {
	doc := mongoAuditEvent{
		Email:     event.Email,
		Kind:      string(event.Kind),
		Timestamp: event.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
