package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlogPost represents a blog article.
// Collection: blog_posts
//
// Slug is unique across all posts and is the public lookup key; the ID is
// used for admin lookups and mutations.
type BlogPost struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title          string             `bson:"title" json:"title"`
	Slug           string             `bson:"slug" json:"slug"`
	Content        string             `bson:"content" json:"content"`
	Excerpt        string             `bson:"excerpt" json:"excerpt"`
	CoverImage     string             `bson:"cover_image" json:"coverImage"`
	Author         string             `bson:"author" json:"author"`
	Tags           []string           `bson:"tags" json:"tags"`
	IsPublished    bool               `bson:"is_published" json:"isPublished"`
	PublishedAt    *time.Time         `bson:"published_at" json:"publishedAt"`
	SEOTitle       string             `bson:"seo_title" json:"seoTitle"`
	SEODescription string             `bson:"seo_description" json:"seoDescription"`
	SEOKeywords    []string           `bson:"seo_keywords" json:"seoKeywords"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// BlogPostUpdate carries a partial update; nil fields are left untouched.
// PublishedAt is managed by the storage layer when IsPublished flips.
type BlogPostUpdate struct {
	Title          *string   `json:"title"`
	Slug           *string   `json:"slug"`
	Content        *string   `json:"content"`
	Excerpt        *string   `json:"excerpt"`
	CoverImage     *string   `json:"coverImage"`
	Author         *string   `json:"author"`
	Tags           *[]string `json:"tags"`
	IsPublished    *bool     `json:"isPublished"`
	SEOTitle       *string   `json:"seoTitle"`
	SEODescription *string   `json:"seoDescription"`
	SEOKeywords    *[]string `json:"seoKeywords"`
}

func (b BlogPost) Validate() error {
	switch {
	case b.Title == "":
		return requiredField("title")
	case b.Slug == "":
		return requiredField("slug")
	case b.Content == "":
		return requiredField("content")
	case b.Excerpt == "":
		return requiredField("excerpt")
	case b.CoverImage == "":
		return requiredField("coverImage")
	case b.Author == "":
		return requiredField("author")
	}
	return nil
}

func (u BlogPostUpdate) ApplyTo(b *BlogPost) {
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Slug != nil {
		b.Slug = *u.Slug
	}
	if u.Content != nil {
		b.Content = *u.Content
	}
	if u.Excerpt != nil {
		b.Excerpt = *u.Excerpt
	}
	if u.CoverImage != nil {
		b.CoverImage = *u.CoverImage
	}
	if u.Author != nil {
		b.Author = *u.Author
	}
	if u.Tags != nil {
		b.Tags = *u.Tags
	}
	if u.IsPublished != nil {
		b.IsPublished = *u.IsPublished
	}
	if u.SEOTitle != nil {
		b.SEOTitle = *u.SEOTitle
	}
	if u.SEODescription != nil {
		b.SEODescription = *u.SEODescription
	}
	if u.SEOKeywords != nil {
		b.SEOKeywords = *u.SEOKeywords
	}
}
