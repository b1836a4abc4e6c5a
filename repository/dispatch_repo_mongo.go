package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"vinopack/models"
)

type MongoDispatchRepo struct {
	DB *mongo.Client
}

func NewMongoDispatchRepo(db *mongo.Client) *MongoDispatchRepo {
	return &MongoDispatchRepo{DB: db}
}

// ------------------------ Create Dispatch ------------------------

// CreateDispatch inserts the note, then bulk-transitions the referenced packs
// to Despachado. Without a cross-collection transaction the second step can
// fail after the first succeeded; backward recovery removes the note again so
// no note is left pointing at packs still marked Ensamblado.
func (r *MongoDispatchRepo) CreateDispatch(note *models.DispatchNote) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}

	// Verify every pack is still dispatchable before writing anything.
	count, err := db.Collection("wine_pack").CountDocuments(ctx, bson.M{
		"_id":    bson.M{"$in": note.PackIDs},
		"status": models.PackAssembled,
	})
	if err != nil {
		return err
	}
	if count != int64(len(note.PackIDs)) {
		return fmt.Errorf("only %d of %d packs are still Ensamblado; dispatch aborted", count, len(note.PackIDs))
	}

	if _, err := db.Collection("dispatch_note").InsertOne(ctx, note); err != nil {
		return err
	}

	res, err := db.Collection("wine_pack").UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": note.PackIDs}, "status": models.PackAssembled},
		bson.M{"$set": bson.M{"status": models.PackDispatched}},
	)
	if err != nil || res.ModifiedCount != int64(len(note.PackIDs)) {
		// Backward recovery: revert whatever moved and drop the note.
		_, _ = db.Collection("wine_pack").UpdateMany(ctx,
			bson.M{"_id": bson.M{"$in": note.PackIDs}, "status": models.PackDispatched},
			bson.M{"$set": bson.M{"status": models.PackAssembled}},
		)
		_, _ = db.Collection("dispatch_note").DeleteOne(ctx, bson.M{"_id": note.ID})
		if err != nil {
			return fmt.Errorf("pack status update failed, dispatch %s rolled back: %w", note.ID, err)
		}
		return fmt.Errorf("only %d of %d packs transitioned, dispatch %s rolled back", res.ModifiedCount, len(note.PackIDs), note.ID)
	}

	return nil
}

// ------------------------ Get Dispatches ------------------------

func (r *MongoDispatchRepo) GetDispatches(filters map[string]interface{}, single bool) ([]*models.DispatchNote, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	bsonFilter := bson.M{}
	for k, v := range filters {
		if k == "id" {
			k = "_id"
		}
		bsonFilter[k] = v
	}

	var out []*models.DispatchNote
	if single {
		var d models.DispatchNote
		err := db.Collection("dispatch_note").FindOne(ctx, bsonFilter).Decode(&d)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, nil
			}
			return nil, err
		}
		out = append(out, &d)
	} else {
		cur, err := db.Collection("dispatch_note").Find(ctx, bsonFilter)
		if err != nil {
			return nil, err
		}
		defer cur.Close(ctx)
		for cur.Next(ctx) {
			var d models.DispatchNote
			if err := cur.Decode(&d); err != nil {
				return nil, err
			}
			out = append(out, &d)
		}
		if err := cur.Err(); err != nil {
			return nil, err
		}
	}

	// Populate referenced packs for responses and PDF rendering.
	for _, d := range out {
		if len(d.PackIDs) == 0 {
			continue
		}
		cur, err := db.Collection("wine_pack").Find(ctx, bson.M{"_id": bson.M{"$in": d.PackIDs}})
		if err != nil {
			return nil, err
		}
		for cur.Next(ctx) {
			var p models.WinePack
			if err := cur.Decode(&p); err != nil {
				cur.Close(ctx)
				return nil, err
			}
			d.Packs = append(d.Packs, p)
		}
		if err := cur.Err(); err != nil {
			cur.Close(ctx)
			return nil, err
		}
		cur.Close(ctx)
	}

	return out, nil
}

// ------------------------ PDF Helpers ------------------------

func (r *MongoDispatchRepo) UpdatePDFInfo(dispatchID string, path string, createdAt time.Time) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	_, err := db.Collection("dispatch_note").UpdateOne(ctx,
		bson.M{"_id": dispatchID},
		bson.M{"$set": bson.M{"pdf_path": path, "pdf_created_at": createdAt}},
	)
	return err
}
