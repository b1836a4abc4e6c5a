package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vinopack/models"
)

type MongoAuditRepo struct {
	DB *mongo.Client
}

func NewMongoAuditRepo(db *mongo.Client) *MongoAuditRepo {
	return &MongoAuditRepo{DB: db}
}

func (r *MongoAuditRepo) InsertEntry(entry *models.AuditEntry) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.ID == 0 {
		entry.ID = time.Now().UnixNano()
	}

	_, err := db.Collection("audit_log").InsertOne(ctx, entry)
	return err
}

func (r *MongoAuditRepo) GetEntries(limit int) ([]*models.AuditEntry, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(int64(limit))

	cur, err := db.Collection("audit_log").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.AuditEntry
	for cur.Next(ctx) {
		var e models.AuditEntry
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, cur.Err()
}
