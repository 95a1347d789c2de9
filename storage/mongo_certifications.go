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

const certificationsCollection = "certifications"

func (s *MongoStorage) GetAllCertifications(ctx context.Context) ([]models.Certification, error) {
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}
	cur, err := db.Collection(certificationsCollection).Find(ctx, bson.M{},
		options.Find().SetSort(displayOrderSort))
	if err != nil {
		return nil, s.opError(err)
	}
	out, err := decodeAll[models.Certification](ctx, cur)
	if err != nil {
		return nil, s.opError(err)
	}
	return out, nil
}

func (s *MongoStorage) GetCertification(ctx context.Context, id string) (*models.Certification, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}
	var c models.Certification
	if err := db.Collection(certificationsCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, s.opError(err)
	}
	return &c, nil
}

func (s *MongoStorage) CreateCertification(ctx context.Context, in models.Certification) (*models.Certification, error) {
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
	if _, err := db.Collection(certificationsCollection).InsertOne(ctx, in); err != nil {
		return nil, s.opError(err)
	}
	return &in, nil
}

func (s *MongoStorage) UpdateCertification(ctx context.Context, id string, upd models.CertificationUpdate) (*models.Certification, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now()}
	setIfString(set, "company", upd.Company)
	setIfString(set, "title", upd.Title)
	setIfString(set, "issued", upd.Issued)
	setIfString(set, "platform", upd.Platform)
	setIfString(set, "icon", upd.Icon)
	setIfString(set, "card_color", upd.CardColor)
	setIfString(set, "button_color", upd.ButtonColor)
	setIfString(set, "title_color", upd.TitleColor)
	setIfString(set, "text_color", upd.TextColor)
	setIfString(set, "cert_image_url", upd.CertImageURL)
	setIfString(set, "credential_url", upd.CredentialURL)
	setIfInt(set, "display_order", upd.DisplayOrder)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c models.Certification
	if err := db.Collection(certificationsCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, s.opError(err)
	}
	return &c, nil
}

func (s *MongoStorage) DeleteCertification(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, certificationsCollection, id)
}

// deleteByID removes one document by hex id. Unknown and malformed ids both
// report "not removed" without error.
func (s *MongoStorage) deleteByID(ctx context.Context, collection, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	db, err := s.database(ctx)
	if err != nil {
		return false, err
	}
	res, err := db.Collection(collection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, s.opError(err)
	}
	return res.DeletedCount > 0, nil
}

func setIfString(set bson.M, key string, v *string) {
	if v != nil {
		set[key] = *v
	}
}

func setIfInt(set bson.M, key string, v *int) {
	if v != nil {
		set[key] = *v
	}
}
