package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Publisher data model, stored in the "publishers" collection.
type Publisher struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name  string             `bson:"name" json:"name"`
	Image string             `bson:"image,omitempty" json:"image,omitempty"`
}
