package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"vinopack/models"
)

type MongoSupplyRepo struct {
	DB *mongo.Client
}

func NewMongoSupplyRepo(db *mongo.Client) *MongoSupplyRepo {
	return &MongoSupplyRepo{DB: db}
}

// ------------------------ Supplies ------------------------

func (r *MongoSupplyRepo) CreateSupply(supply *models.Supply) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	if supply.CreatedAt.IsZero() {
		supply.CreatedAt = time.Now().UTC()
	}

	_, err := db.Collection("supply").InsertOne(ctx, supply)
	return err
}

func (r *MongoSupplyRepo) GetSupplies() ([]*models.Supply, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	cur, err := db.Collection("supply").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Supply
	for cur.Next(ctx) {
		var s models.Supply
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, cur.Err()
}

func (r *MongoSupplyRepo) UpdateSupply(supply *models.Supply) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	res, err := db.Collection("supply").ReplaceOne(ctx, bson.M{"_id": supply.ID}, supply)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("supply %s not found", supply.ID)
	}
	return nil
}

func (r *MongoSupplyRepo) DeleteSupply(supplyID string) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	// A supply referenced by received pallets must stay.
	count, err := db.Collection("receipt_pallet").CountDocuments(ctx, bson.M{
		"kind":                 string(models.PalletConsumable),
		"consumable.supply_id": supplyID,
	})
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("supply %s has %d received pallets and cannot be deleted", supplyID, count)
	}

	_, err = db.Collection("supply").DeleteOne(ctx, bson.M{"_id": supplyID})
	return err
}

// ------------------------ Mermas ------------------------

func (r *MongoSupplyRepo) CreateMerma(merma *models.MermaRecord) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	if merma.Date.IsZero() {
		merma.Date = time.Now().UTC()
	}
	if merma.Lot == "" {
		merma.Lot = models.NoLot
	}

	_, err := db.Collection("merma").InsertOne(ctx, merma)
	return err
}

func (r *MongoSupplyRepo) GetMermas() ([]*models.MermaRecord, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	cur, err := db.Collection("merma").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.MermaRecord
	for cur.Next(ctx) {
		var m models.MermaRecord
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, cur.Err()
}
