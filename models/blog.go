package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PublishStatusDraft     = "draft"
	PublishStatusPublished = "published"
)

type Blog struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title           string             `json:"title" bson:"title"`
	Slug            string             `json:"slug" bson:"slug"`
	Content         string             `json:"content" bson:"content"`
	Excerpt         string             `json:"excerpt,omitempty" bson:"excerpt,omitempty"`
	MetaDescription string             `json:"metaDescription,omitempty" bson:"metaDescription,omitempty"`
	MetaKeywords    string             `json:"metaKeywords,omitempty" bson:"metaKeywords,omitempty"`
	FeaturedImage   string             `json:"featuredImage,omitempty" bson:"featuredImage,omitempty"`
	AuthorID        primitive.ObjectID `json:"authorId" bson:"authorId"`
	AuthorName      string             `json:"authorName" bson:"authorName"`
	PublishStatus   string             `json:"publishStatus" bson:"publishStatus"`
	PublishedAt     *time.Time         `json:"publishedAt,omitempty" bson:"publishedAt,omitempty"`
	Tags            []string           `json:"tags" bson:"tags"`
	Views           int64              `json:"views" bson:"views"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// BlogRequest is the admin create/update payload.
type BlogRequest struct {
	Title           string   `json:"title" validate:"required"`
	Content         string   `json:"content" validate:"required"`
	Excerpt         string   `json:"excerpt"`
	MetaDescription string   `json:"metaDescription"`
	MetaKeywords    string   `json:"metaKeywords"`
	FeaturedImage   string   `json:"featuredImage"`
	PublishStatus   string   `json:"publishStatus" validate:"omitempty,oneof=draft published"`
	Tags            []string `json:"tags"`
}
