package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/core/ports"
)

const activityCollection = "activity"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	col *mongo.Collection
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(activityCollection)}
}

var _ ports.ActivityRepository = (*ActivityRepository)(nil)

type activityDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Kind       string             `bson:"kind"`
	Role       string             `bson:"role,omitempty"`
	Account    string             `bson:"account,omitempty"`
	Subject    string             `bson:"subject,omitempty"`
	Succeeded  bool               `bson:"succeeded"`
	Detail     string             `bson:"detail,omitempty"`
	At         time.Time          `bson:"at"`
	RecordedAt time.Time          `bson:"recorded_at"`
}

func toActivityDocument(a domain.Activity, now time.Time) activityDocument {
	at := a.At
	if at.IsZero() {
		at = now
	}
	return activityDocument{
		Kind:       string(a.Kind),
		Role:       string(a.Role),
		Account:    a.Account,
		Subject:    a.Subject,
		Succeeded:  a.Succeeded,
		Detail:     a.Detail,
		At:         at.UTC(),
		RecordedAt: now.UTC(),
	}
}

// Record appends an entry to the activity audit collection.
func (r *ActivityRepository) Record(ctx context.Context, a domain.Activity) error {
	_, err := r.col.InsertOne(ctx, toActivityDocument(a, time.Now()))
	return err
}

// EnsureIndexes creates the indexes used to look activity up by account and kind.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "account", Value: 1}, {Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "kind", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
