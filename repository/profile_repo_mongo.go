package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vinopack/models"
)

type MongoProfileRepo struct {
	DB *mongo.Client
}

func NewMongoProfileRepo(db *mongo.Client) *MongoProfileRepo {
	return &MongoProfileRepo{DB: db}
}

func (r *MongoProfileRepo) SaveProfile(profile *models.WarehouseProfile) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}
	if profile.ID == 0 {
		profile.ID = time.Now().UnixNano()
	}

	_, err := db.Collection("warehouse_profile").InsertOne(ctx, profile)
	return err
}

func (r *MongoProfileRepo) GetProfile() (*models.WarehouseProfile, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	opts := options.FindOne().SetSort(bson.M{"created_at": -1})

	var profile models.WarehouseProfile
	err := db.Collection("warehouse_profile").FindOne(ctx, struct{}{}, opts).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
