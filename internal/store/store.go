// Package store is the MongoDB gateway for the articles, users and
// publishers collections.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SergeyParamoshkin/discussion/internal/model"
)

const (
	ArticlesCollection   = "articles"
	UsersCollection      = "users"
	PublishersCollection = "publishers"
)

var (
	ErrInvalidID = errors.New("invalid document id")
	ErrNotFound  = errors.New("document not found")
)

// Store groups the typed collection gateways. It does not own the client;
// whoever created the *mongo.Client disconnects it.
type Store struct {
	Articles   *ArticleStore
	Users      *UserStore
	Publishers *PublisherStore
}

// New builds the gateways on top of db. Every operation runs with timeout
// on top of the caller's context; a zero timeout disables it.
func New(db *mongo.Database, timeout time.Duration) *Store {
	b := base{timeout: timeout, now: time.Now}

	return &Store{
		Articles:   &ArticleStore{base: b, coll: db.Collection(ArticlesCollection)},
		Users:      &UserStore{base: b, coll: db.Collection(UsersCollection)},
		Publishers: &PublisherStore{base: b, coll: db.Collection(PublishersCollection)},
	}
}

// ParseID converts the 24 hex character form of an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, hex)
	}

	return id, nil
}

type base struct {
	timeout time.Duration
	now     func() time.Time
}

func (b base) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, b.timeout)
}

func (b base) millis() int64 {
	return b.now().UnixMilli()
}

func projection(fields ...string) bson.D {
	p := make(bson.D, 0, len(fields))
	for _, f := range fields {
		p = append(p, bson.E{Key: f, Value: 1})
	}

	return p
}

func insertResult(res *mongo.InsertOneResult) model.InsertResult {
	out := model.InsertResult{}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.InsertedID = id.Hex()
	}

	return out
}

func updateResult(res *mongo.UpdateResult) model.UpdateResult {
	out := model.UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if id, ok := res.UpsertedID.(primitive.ObjectID); ok {
		out.UpsertedID = id.Hex()
	}

	return out
}

func decodeAll[T any](ctx context.Context, cur *mongo.Cursor) ([]T, error) {
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}

	return out, nil
}
