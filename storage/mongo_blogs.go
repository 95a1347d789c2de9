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

const blogPostsCollection = "blog_posts"

// blogListSort orders listings newest first with _id as tiebreak.
var blogListSort = bson.D{
	{Key: "created_at", Value: -1},
	{Key: "_id", Value: -1},
}

func (s *MongoStorage) GetAllBlogPosts(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error) {
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}
	filter := bson.M{}
	if publishedOnly {
		filter["is_published"] = true
	}
	cur, err := db.Collection(blogPostsCollection).Find(ctx, filter,
		options.Find().SetSort(blogListSort))
	if err != nil {
		return nil, s.opError(err)
	}
	out, err := decodeAll[models.BlogPost](ctx, cur)
	if err != nil {
		return nil, s.opError(err)
	}
	return out, nil
}

func (s *MongoStorage) GetBlogPost(ctx context.Context, id string) (*models.BlogPost, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}
	var b models.BlogPost
	if err := db.Collection(blogPostsCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, s.opError(err)
	}
	return &b, nil
}

func (s *MongoStorage) GetBlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}
	var b models.BlogPost
	if err := db.Collection(blogPostsCollection).FindOne(ctx, bson.M{"slug": slug}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, s.opError(err)
	}
	return &b, nil
}

func (s *MongoStorage) CreateBlogPost(ctx context.Context, in models.BlogPost) (*models.BlogPost, error) {
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
	if in.Tags == nil {
		in.Tags = []string{}
	}
	if in.SEOKeywords == nil {
		in.SEOKeywords = []string{}
	}
	if in.IsPublished && in.PublishedAt == nil {
		in.PublishedAt = &now
	}
	if _, err := db.Collection(blogPostsCollection).InsertOne(ctx, in); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &models.ValidationError{Field: "slug", Message: "already in use"}
		}
		return nil, s.opError(err)
	}
	return &in, nil
}

func (s *MongoStorage) UpdateBlogPost(ctx context.Context, id string, upd models.BlogPostUpdate) (*models.BlogPost, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}

	// The current publish state decides whether published_at flips; read it
	// first so the merged update matches the in-memory backend exactly.
	var current models.BlogPost
	if err := db.Collection(blogPostsCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&current); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, s.opError(err)
	}

	now := time.Now()
	set := bson.M{"updated_at": now}
	setIfString(set, "title", upd.Title)
	setIfString(set, "slug", upd.Slug)
	setIfString(set, "content", upd.Content)
	setIfString(set, "excerpt", upd.Excerpt)
	setIfString(set, "cover_image", upd.CoverImage)
	setIfString(set, "author", upd.Author)
	if upd.Tags != nil {
		set["tags"] = *upd.Tags
	}
	setIfString(set, "seo_title", upd.SEOTitle)
	setIfString(set, "seo_description", upd.SEODescription)
	if upd.SEOKeywords != nil {
		set["seo_keywords"] = *upd.SEOKeywords
	}
	if upd.IsPublished != nil {
		set["is_published"] = *upd.IsPublished
		if *upd.IsPublished && !current.IsPublished && current.PublishedAt == nil {
			set["published_at"] = now
		}
		if !*upd.IsPublished && current.IsPublished {
			set["published_at"] = nil
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b models.BlogPost
	if err := db.Collection(blogPostsCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, &models.ValidationError{Field: "slug", Message: "already in use"}
		}
		return nil, s.opError(err)
	}
	return &b, nil
}

func (s *MongoStorage) DeleteBlogPost(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, blogPostsCollection, id)
}
