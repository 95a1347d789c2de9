package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AboutData is the single about-me document.
// Collection: about (at most one document should ever exist)
type AboutData struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Bio       string             `bson:"bio" json:"bio"`
	Education string             `bson:"education" json:"education"`
	Languages string             `bson:"languages" json:"languages"`
	Skills    []string           `bson:"skills" json:"skills"`
	Tools     []string           `bson:"tools" json:"tools"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// AboutInput carries the full replacement payload for the about document.
type AboutInput struct {
	Bio       string   `json:"bio"`
	Education string   `json:"education"`
	Languages string   `json:"languages"`
	Skills    []string `json:"skills"`
	Tools     []string `json:"tools"`
}

func (in AboutInput) Validate() error {
	if in.Bio == "" {
		return requiredField("bio")
	}
	if in.Education == "" {
		return requiredField("education")
	}
	if in.Languages == "" {
		return requiredField("languages")
	}
	return nil
}
