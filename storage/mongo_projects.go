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

const projectsCollection = "projects"

func (s *MongoStorage) GetAllProjects(ctx context.Context) ([]models.Project, error) {
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}
	cur, err := db.Collection(projectsCollection).Find(ctx, bson.M{},
		options.Find().SetSort(displayOrderSort))
	if err != nil {
		return nil, s.opError(err)
	}
	out, err := decodeAll[models.Project](ctx, cur)
	if err != nil {
		return nil, s.opError(err)
	}
	return out, nil
}

func (s *MongoStorage) GetProject(ctx context.Context, id string) (*models.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}
	var p models.Project
	if err := db.Collection(projectsCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, s.opError(err)
	}
	return &p, nil
}

func (s *MongoStorage) CreateProject(ctx context.Context, in models.Project) (*models.Project, error) {
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
	if in.Technologies == nil {
		in.Technologies = []models.Technology{}
	}
	if _, err := db.Collection(projectsCollection).InsertOne(ctx, in); err != nil {
		return nil, s.opError(err)
	}
	return &in, nil
}

func (s *MongoStorage) UpdateProject(ctx context.Context, id string, upd models.ProjectUpdate) (*models.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now()}
	setIfString(set, "title", upd.Title)
	setIfString(set, "description", upd.Description)
	setIfString(set, "image_url", upd.ImageURL)
	setIfString(set, "alt", upd.Alt)
	if upd.Technologies != nil {
		set["technologies"] = *upd.Technologies
	}
	setIfString(set, "live_url", upd.LiveURL)
	setIfString(set, "github_url", upd.GithubURL)
	setIfString(set, "primary_color", upd.PrimaryColor)
	setIfInt(set, "display_order", upd.DisplayOrder)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Project
	if err := db.Collection(projectsCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, s.opError(err)
	}
	return &p, nil
}

func (s *MongoStorage) DeleteProject(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, projectsCollection, id)
}
