package storage

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"portfolio-api/models"
)

const aboutCollection = "about"

// aboutDocumentID pins the singleton to one fixed id. Upserting on the _id
// makes the unique index arbitrate concurrent first writes; an upsert on the
// empty filter would let two concurrent calls both observe "absent" and both
// insert.
var aboutDocumentID = func() primitive.ObjectID {
	oid, _ := primitive.ObjectIDFromHex("000000000000000000000001")
	return oid
}()

func (s *MongoStorage) GetAbout(ctx context.Context) (*models.AboutData, error) {
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}
	var about models.AboutData
	if err := db.Collection(aboutCollection).FindOne(ctx, bson.M{}).Decode(&about); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, s.opError(err)
	}
	return &about, nil
}

// UpsertAbout writes the singleton about document atomically. Under a
// concurrent first write the loser of the insert race gets a transient
// duplicate-key error from the server; one retry then lands on the winner's
// document.
func (s *MongoStorage) UpsertAbout(ctx context.Context, in models.AboutInput) (*models.AboutData, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}

	skills := in.Skills
	if skills == nil {
		skills = []string{}
	}
	tools := in.Tools
	if tools == nil {
		tools = []string{}
	}

	update := bson.M{
		"$set": bson.M{
			"bio":        in.Bio,
			"education":  in.Education,
			"languages":  in.Languages,
			"skills":     skills,
			"tools":      tools,
			"updated_at": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	filter := bson.M{"_id": aboutDocumentID}

	var about models.AboutData
	for attempt := 0; ; attempt++ {
		err := db.Collection(aboutCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&about)
		if err == nil {
			return &about, nil
		}
		if mongo.IsDuplicateKeyError(err) && attempt == 0 {
			continue
		}
		return nil, s.opError(err)
	}
}
