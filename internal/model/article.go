package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the moderation state of an Article.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDeclined Status = "declined"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDeclined:
		return true
	}

	return false
}

// Author is embedded into every Article. Ownership of an article is decided
// by Email alone.
type Author struct {
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
}

// Article data model, stored in the "articles" collection.
type Article struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	Publisher     string             `bson:"publisher,omitempty" json:"publisher,omitempty"`
	Tags          []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Author        Author             `bson:"author" json:"author"`
	Status        Status             `bson:"status" json:"status"`
	DeclineReason string             `bson:"declineReason,omitempty" json:"declineReason,omitempty"`
	IsPremium     bool               `bson:"isPremium" json:"isPremium"`
	ViewCount     int64              `bson:"viewCount" json:"viewCount"`
	Time          int64              `bson:"time" json:"time"` // unix millis
}

// ArticleContent holds the fields an author may change on their own article.
// Nil fields are left untouched.
type ArticleContent struct {
	Title       *string   `bson:"title,omitempty" json:"title,omitempty"`
	Description *string   `bson:"description,omitempty" json:"description,omitempty"`
	Image       *string   `bson:"image,omitempty" json:"image,omitempty"`
	Publisher   *string   `bson:"publisher,omitempty" json:"publisher,omitempty"`
	Tags        *[]string `bson:"tags,omitempty" json:"tags,omitempty"`
}

func (c ArticleContent) Empty() bool {
	return c.Title == nil && c.Description == nil && c.Image == nil && c.Publisher == nil && c.Tags == nil
}
