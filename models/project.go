package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Technology is one {name, color} chip rendered on a project card.
type Technology struct {
	Name  string `bson:"name" json:"name"`
	Color string `bson:"color" json:"color"`
}

// Project represents a portfolio project card.
// Collection: projects
type Project struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	ImageURL     string             `bson:"image_url" json:"imageUrl"`
	Alt          string             `bson:"alt" json:"alt"`
	Technologies []Technology       `bson:"technologies" json:"technologies"`
	LiveURL      string             `bson:"live_url,omitempty" json:"liveUrl,omitempty"`
	GithubURL    string             `bson:"github_url" json:"githubUrl"`
	PrimaryColor string             `bson:"primary_color" json:"primaryColor"`
	DisplayOrder int                `bson:"display_order" json:"displayOrder"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ProjectUpdate carries a partial update; nil fields are left untouched.
type ProjectUpdate struct {
	Title        *string       `json:"title"`
	Description  *string       `json:"description"`
	ImageURL     *string       `json:"imageUrl"`
	Alt          *string       `json:"alt"`
	Technologies *[]Technology `json:"technologies"`
	LiveURL      *string       `json:"liveUrl"`
	GithubURL    *string       `json:"githubUrl"`
	PrimaryColor *string       `json:"primaryColor"`
	DisplayOrder *int          `json:"displayOrder"`
}

func (p Project) Validate() error {
	switch {
	case p.Title == "":
		return requiredField("title")
	case p.Description == "":
		return requiredField("description")
	case p.ImageURL == "":
		return requiredField("imageUrl")
	case p.Alt == "":
		return requiredField("alt")
	case p.GithubURL == "":
		return requiredField("githubUrl")
	case p.PrimaryColor == "":
		return requiredField("primaryColor")
	}
	for _, tech := range p.Technologies {
		if tech.Name == "" {
			return requiredField("technologies.name")
		}
		if tech.Color == "" {
			return requiredField("technologies.color")
		}
	}
	return nil
}

func (u ProjectUpdate) ApplyTo(p *Project) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.ImageURL != nil {
		p.ImageURL = *u.ImageURL
	}
	if u.Alt != nil {
		p.Alt = *u.Alt
	}
	if u.Technologies != nil {
		p.Technologies = *u.Technologies
	}
	if u.LiveURL != nil {
		p.LiveURL = *u.LiveURL
	}
	if u.GithubURL != nil {
		p.GithubURL = *u.GithubURL
	}
	if u.PrimaryColor != nil {
		p.PrimaryColor = *u.PrimaryColor
	}
	if u.DisplayOrder != nil {
		p.DisplayOrder = *u.DisplayOrder
	}
}
