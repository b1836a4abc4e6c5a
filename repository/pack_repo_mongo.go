package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"vinopack/models"
)

type MongoPackRepo struct {
	DB *mongo.Client
}

func NewMongoPackRepo(db *mongo.Client) *MongoPackRepo {
	return &MongoPackRepo{DB: db}
}

// ------------------------ Pack Models ------------------------

func (r *MongoPackRepo) CreateModel(model *models.PackModel) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	if model.CreatedAt.IsZero() {
		model.CreatedAt = time.Now().UTC()
	}

	_, err := db.Collection("pack_model").InsertOne(ctx, model)
	return err
}

func (r *MongoPackRepo) GetModels() ([]*models.PackModel, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	cur, err := db.Collection("pack_model").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.PackModel
	for cur.Next(ctx) {
		var m models.PackModel
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, cur.Err()
}

func (r *MongoPackRepo) UpdateModel(model *models.PackModel) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	res, err := db.Collection("pack_model").ReplaceOne(ctx, bson.M{"_id": model.ID}, model)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("pack model %s not found", model.ID)
	}
	return nil
}

func (r *MongoPackRepo) DeleteModel(modelID string) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	count, err := db.Collection("wine_pack").CountDocuments(ctx, bson.M{"model_id": modelID})
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("pack model %s is referenced by %d packs and cannot be deleted", modelID, count)
	}

	_, err = db.Collection("pack_model").DeleteOne(ctx, bson.M{"_id": modelID})
	return err
}

// ------------------------ Packs ------------------------

// CreatePack inserts the assembled pack. The Mongo backend has no
// cross-collection transaction to re-derive availability atomically, so the
// availability validated by the assembly workflow just before this call is
// what guards the write; drift surfaces as a negative available on the next
// aggregation read.
func (r *MongoPackRepo) CreatePack(pack *models.WinePack) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	_, err := db.Collection("wine_pack").InsertOne(ctx, pack)
	return err
}

// GetPacks fetches packs; single=true fetches one record
func (r *MongoPackRepo) GetPacks(filters map[string]interface{}, single bool) ([]*models.WinePack, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	bsonFilter := bson.M{}
	for k, v := range filters {
		if k == "id" {
			k = "_id"
		}
		bsonFilter[k] = v
	}

	if single {
		var p models.WinePack
		err := db.Collection("wine_pack").FindOne(ctx, bsonFilter).Decode(&p)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, nil
			}
			return nil, err
		}
		return []*models.WinePack{&p}, nil
	}

	cur, err := db.Collection("wine_pack").Find(ctx, bsonFilter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.WinePack
	for cur.Next(ctx) {
		var p models.WinePack
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, cur.Err()
}
