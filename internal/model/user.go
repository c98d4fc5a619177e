package model

import "go.mongodb.org/mongo-driver/bson/primitive"

type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// User data model, stored in the "users" collection. Email is unique.
type User struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email   string             `bson:"email" json:"email"`
	Name    string             `bson:"name,omitempty" json:"name,omitempty"`
	Image   string             `bson:"image,omitempty" json:"image,omitempty"`
	Role    Role               `bson:"role,omitempty" json:"role,omitempty"`
	Premium bool               `bson:"premium" json:"premium,omitempty"`
	Time    int64              `bson:"time,omitempty" json:"time,omitempty"` // unix millis
}

// UserStats is the response of the user statistics endpoint.
type UserStats struct {
	AllUser     int64 `json:"allUser"`
	NormalUser  int64 `json:"normalUser"`
	PremiumUser int64 `json:"premiumUser"`
}
