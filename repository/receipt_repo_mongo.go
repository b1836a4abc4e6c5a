package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"vinopack/models"
)

const mongoDatabase = "vinopack"

type MongoReceiptRepo struct {
	DB *mongo.Client
}

func NewMongoReceiptRepo(db *mongo.Client) *MongoReceiptRepo {
	return &MongoReceiptRepo{DB: db}
}

// mongoReceiptHeader is the receipt document without its pallets; pallets live
// in their own collection so delete ordering can be enforced.
type mongoReceiptHeader struct {
	ID              string     `bson:"_id"`
	Carrier         string     `bson:"carrier"`
	TruckPlate      string     `bson:"truck_plate"`
	Driver          string     `bson:"driver"`
	Origin          string     `bson:"origin"`
	EntryDate       time.Time  `bson:"entry_date"`
	GeneralIncident string     `bson:"general_incident,omitempty"`
	Status          string     `bson:"status"`
	CreatedBy       int64      `bson:"created_by"`
	CreatedAt       time.Time  `bson:"created_at"`
	UpdatedAt       *time.Time `bson:"updated_at,omitempty"`
}

func headerFromReceipt(receipt *models.GoodsReceipt) mongoReceiptHeader {
	return mongoReceiptHeader{
		ID:              receipt.ID,
		Carrier:         receipt.Carrier,
		TruckPlate:      receipt.TruckPlate,
		Driver:          receipt.Driver,
		Origin:          receipt.Origin,
		EntryDate:       receipt.EntryDate,
		GeneralIncident: receipt.GeneralIncident,
		Status:          receipt.Status,
		CreatedBy:       receipt.CreatedBy,
		CreatedAt:       receipt.CreatedAt,
		UpdatedAt:       receipt.UpdatedAt,
	}
}

func (h mongoReceiptHeader) toReceipt() *models.GoodsReceipt {
	return &models.GoodsReceipt{
		ID:              h.ID,
		Carrier:         h.Carrier,
		TruckPlate:      h.TruckPlate,
		Driver:          h.Driver,
		Origin:          h.Origin,
		EntryDate:       h.EntryDate,
		GeneralIncident: h.GeneralIncident,
		Status:          h.Status,
		CreatedBy:       h.CreatedBy,
		CreatedAt:       h.CreatedAt,
		UpdatedAt:       h.UpdatedAt,
	}
}

// CreateReceipt inserts the header, then the pallets. Mongo gives no
// cross-collection transaction here, so a failed pallet insert triggers
// backward recovery: already-written pallets and the header are removed again.
func (r *MongoReceiptRepo) CreateReceipt(receipt *models.GoodsReceipt) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	if receipt.CreatedAt.IsZero() {
		receipt.CreatedAt = time.Now().UTC()
	}

	if _, err := db.Collection("goods_receipt").InsertOne(ctx, headerFromReceipt(receipt)); err != nil {
		return err
	}

	if err := r.insertPallets(ctx, db, receipt); err != nil {
		_, _ = db.Collection("receipt_pallet").DeleteMany(ctx, bson.M{"receipt_id": receipt.ID})
		_, _ = db.Collection("goods_receipt").DeleteOne(ctx, bson.M{"_id": receipt.ID})
		return fmt.Errorf("pallet insert failed, receipt %s rolled back: %w", receipt.ID, err)
	}

	return nil
}

func (r *MongoReceiptRepo) insertPallets(ctx context.Context, db *mongo.Database, receipt *models.GoodsReceipt) error {
	if len(receipt.Pallets) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(receipt.Pallets))
	for i := range receipt.Pallets {
		p := receipt.Pallets[i]
		p.ReceiptID = receipt.ID
		p.ID = int64(i + 1)
		docs = append(docs, p)
	}
	_, err := db.Collection("receipt_pallet").InsertMany(ctx, docs)
	return err
}

// mergeReceiptHeader builds the replacement header for an update: editable
// fields come from the incoming receipt, creation metadata from the stored
// header.
func mergeReceiptHeader(existing mongoReceiptHeader, incoming *models.GoodsReceipt, now time.Time) mongoReceiptHeader {
	h := headerFromReceipt(incoming)
	h.CreatedBy = existing.CreatedBy
	h.CreatedAt = existing.CreatedAt
	h.UpdatedAt = &now
	return h
}

// UpdateReceipt rewrites the header and replaces the full pallet set. The
// stored created_by/created_at survive the rewrite; only the header fields the
// operator can edit come from the payload.
func (r *MongoReceiptRepo) UpdateReceipt(receipt *models.GoodsReceipt) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	var existing mongoReceiptHeader
	if err := db.Collection("goods_receipt").FindOne(ctx, bson.M{"_id": receipt.ID}).Decode(&existing); err != nil {
		if err == mongo.ErrNoDocuments {
			return fmt.Errorf("receipt %s not found", receipt.ID)
		}
		return err
	}

	res, err := db.Collection("goods_receipt").ReplaceOne(ctx,
		bson.M{"_id": receipt.ID}, mergeReceiptHeader(existing, receipt, time.Now().UTC()))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("receipt %s not found", receipt.ID)
	}

	if _, err := db.Collection("receipt_pallet").DeleteMany(ctx, bson.M{"receipt_id": receipt.ID}); err != nil {
		return err
	}
	return r.insertPallets(ctx, db, receipt)
}

// DeleteReceipt removes pallets first; the header is only deleted once the
// pallet delete succeeded.
func (r *MongoReceiptRepo) DeleteReceipt(receiptID string) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	if _, err := db.Collection("receipt_pallet").DeleteMany(ctx, bson.M{"receipt_id": receiptID}); err != nil {
		return err
	}

	res, err := db.Collection("goods_receipt").DeleteOne(ctx, bson.M{"_id": receiptID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("receipt %s not found", receiptID)
	}
	return nil
}

// GetReceipts fetches receipts; single=true fetches one record
func (r *MongoReceiptRepo) GetReceipts(filters map[string]interface{}, single bool) ([]*models.GoodsReceipt, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	bsonFilter := bson.M{}
	for k, v := range filters {
		if k == "id" {
			k = "_id"
		}
		bsonFilter[k] = v
	}

	var out []*models.GoodsReceipt
	if single {
		var h mongoReceiptHeader
		err := db.Collection("goods_receipt").FindOne(ctx, bsonFilter).Decode(&h)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, nil
			}
			return nil, err
		}
		out = append(out, h.toReceipt())
	} else {
		cur, err := db.Collection("goods_receipt").Find(ctx, bsonFilter)
		if err != nil {
			return nil, err
		}
		defer cur.Close(ctx)
		for cur.Next(ctx) {
			var h mongoReceiptHeader
			if err := cur.Decode(&h); err != nil {
				return nil, err
			}
			out = append(out, h.toReceipt())
		}
		if err := cur.Err(); err != nil {
			return nil, err
		}
	}

	for _, g := range out {
		if err := r.loadPallets(ctx, db, g); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *MongoReceiptRepo) loadPallets(ctx context.Context, db *mongo.Database, receipt *models.GoodsReceipt) error {
	cur, err := db.Collection("receipt_pallet").Find(ctx, bson.M{"receipt_id": receipt.ID})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	var pallets []models.ReceiptPallet
	for cur.Next(ctx) {
		var p models.ReceiptPallet
		if err := cur.Decode(&p); err != nil {
			return err
		}
		pallets = append(pallets, p)
	}
	receipt.Pallets = pallets
	return cur.Err()
}

// RenameConsumableLot migrates pallets of one supply from oldLot to newLot.
func (r *MongoReceiptRepo) RenameConsumableLot(supplyID, oldLot, newLot string) (int64, error) {
	if newLot == "" || newLot == models.NoLot {
		return 0, fmt.Errorf("new lot must be a real lot name")
	}

	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	filter := bson.M{
		"kind":                 string(models.PalletConsumable),
		"consumable.supply_id": supplyID,
	}
	if oldLot == models.NoLot {
		filter["$or"] = bson.A{
			bson.M{"consumable.supply_lot": ""},
			bson.M{"consumable.supply_lot": bson.M{"$exists": false}},
		}
	} else {
		filter["consumable.supply_lot"] = oldLot
	}

	res, err := db.Collection("receipt_pallet").UpdateMany(ctx, filter,
		bson.M{"$set": bson.M{"consumable.supply_lot": newLot}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
