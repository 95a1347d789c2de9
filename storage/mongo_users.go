package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"portfolio-api/models"
)

const usersCollection = "users"

func (s *MongoStorage) GetUser(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, s.opError(err)
	}
	return &u, nil
}

// GetUserByUsername looks up a user by exact, case-sensitive username match.
// It pings the backend first so a dead connection surfaces as ErrUnavailable
// instead of being mistaken for "no such user" during login.
func (s *MongoStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if err := s.ping(ctx); err != nil {
		return nil, err
	}
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}
	search := strings.TrimSpace(username)
	var u models.User
	if err := db.Collection(usersCollection).FindOne(ctx, bson.M{"username": search}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, s.opError(err)
	}
	return &u, nil
}

func (s *MongoStorage) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" {
		return nil, &models.ValidationError{Field: "username", Message: "is required"}
	}
	if password == "" {
		return nil, &models.ValidationError{Field: "password", Message: "is required"}
	}
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}
	user := models.User{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Password:  password,
		CreatedAt: time.Now(),
	}
	if _, err := db.Collection(usersCollection).InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &models.ValidationError{Field: "username", Message: "already taken"}
		}
		return nil, s.opError(err)
	}
	return &user, nil
}
