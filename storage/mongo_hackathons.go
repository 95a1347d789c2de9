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

const hackathonsCollection = "hackathons"

func (s *MongoStorage) GetAllHackathons(ctx context.Context) ([]models.Hackathon, error) {
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}
	cur, err := db.Collection(hackathonsCollection).Find(ctx, bson.M{},
		options.Find().SetSort(displayOrderSort))
	if err != nil {
		return nil, s.opError(err)
	}
	out, err := decodeAll[models.Hackathon](ctx, cur)
	if err != nil {
		return nil, s.opError(err)
	}
	return out, nil
}

func (s *MongoStorage) GetHackathon(ctx context.Context, id string) (*models.Hackathon, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}
	var h models.Hackathon
	if err := db.Collection(hackathonsCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&h); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, s.opError(err)
	}
	return &h, nil
}

func (s *MongoStorage) CreateHackathon(ctx context.Context, in models.Hackathon) (*models.Hackathon, error) {
	if in.Side == "" {
		in.Side = models.SideLeft
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	in.ID = primitive.NewObjectID()
	in.CreatedAt = now
	in.UpdatedAt = now
	if _, err := db.Collection(hackathonsCollection).InsertOne(ctx, in); err != nil {
		return nil, s.opError(err)
	}
	return &in, nil
}

func (s *MongoStorage) UpdateHackathon(ctx context.Context, id string, upd models.HackathonUpdate) (*models.Hackathon, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now()}
	setIfString(set, "name", upd.Name)
	setIfString(set, "role", upd.Role)
	setIfString(set, "organizer", upd.Organizer)
	setIfString(set, "side", upd.Side)
	setIfInt(set, "delay", upd.Delay)
	setIfString(set, "certificate_url", upd.CertificateURL)
	setIfInt(set, "display_order", upd.DisplayOrder)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var h models.Hackathon
	if err := db.Collection(hackathonsCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&h); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, s.opError(err)
	}
	return &h, nil
}

func (s *MongoStorage) DeleteHackathon(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, hackathonsCollection, id)
}
