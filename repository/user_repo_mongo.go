package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"vinopack/models"
)

type MongoUserRepo struct {
	DB *mongo.Client
}

func NewMongoUserRepo(db *mongo.Client) *MongoUserRepo {
	return &MongoUserRepo{DB: db}
}

func (r *MongoUserRepo) CreateUser(user *models.AppUser) error {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	existing, err := r.GetUserByEmail(user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.New("email already exists")
	}

	if user.Password == "" {
		return errors.New("password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.ID == 0 {
		user.ID = time.Now().UnixNano()
	}

	_, err = db.Collection("app_user").InsertOne(ctx, bson.M{
		"_id":        user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"password":   user.Password,
		"role":       user.Role,
		"created_at": user.CreatedAt,
	})
	return err
}

func (r *MongoUserRepo) GetUserByEmail(email string) (*models.AppUser, error) {
	ctx := context.Background()
	db := r.DB.Database(mongoDatabase)

	var doc struct {
		ID        int64     `bson:"_id"`
		Name      string    `bson:"name"`
		Email     string    `bson:"email"`
		Password  string    `bson:"password"`
		Role      string    `bson:"role"`
		CreatedAt time.Time `bson:"created_at"`
	}
	err := db.Collection("app_user").FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &models.AppUser{
		ID:        doc.ID,
		Name:      doc.Name,
		Email:     doc.Email,
		Password:  doc.Password,
		Role:      doc.Role,
		CreatedAt: doc.CreatedAt,
	}, nil
}
