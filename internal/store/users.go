package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SergeyParamoshkin/discussion/internal/model"
)

type UserStore struct {
	base
	coll *mongo.Collection
}

// InsertIfAbsent creates the user unless one with the same email exists.
// The upsert with $setOnInsert keeps concurrent submissions of one email
// down to a single document. created reports whether a document was written.
func (s *UserStore) InsertIfAbsent(ctx context.Context, u model.User) (res model.InsertResult, created bool, err error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	doc := bson.D{
		{Key: "email", Value: u.Email},
		{Key: "name", Value: u.Name},
		{Key: "image", Value: u.Image},
		{Key: "role", Value: model.RoleUser},
		{Key: "premium", Value: false},
		{Key: "time", Value: s.millis()},
	}

	up, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "email", Value: u.Email}},
		bson.D{{Key: "$setOnInsert", Value: doc}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return model.InsertResult{}, false, fmt.Errorf("upsert user %s: %w", u.Email, err)
	}

	r := updateResult(up)
	if r.UpsertedCount == 0 {
		return model.InsertResult{}, false, nil
	}

	return model.InsertResult{InsertedID: r.UpsertedID}, true, nil
}

// FindAll lists users with the admin-facing projection.
func (s *UserStore) FindAll(ctx context.Context) ([]model.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetProjection(projection("email", "name", "image", "role"))
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}

	users, err := decodeAll[model.User](ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	return users, nil
}

// FindByEmail loads one user. When fields is non-empty only those fields
// are fetched.
func (s *UserStore) FindByEmail(ctx context.Context, email string, fields ...string) (model.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	opts := options.FindOne()
	if len(fields) > 0 {
		opts.SetProjection(projection(fields...))
	}

	var u model.User
	err := s.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}, opts).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user %s: %w", email, err)
	}

	return u, nil
}

// Promote grants the Admin role. Nothing in the API demotes a user.
func (s *UserStore) Promote(ctx context.Context, id string) (model.UpdateResult, error) {
	oid, err := ParseID(id)
	if err != nil {
		return model.UpdateResult{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "role", Value: model.RoleAdmin}}}},
	)
	if err != nil {
		return model.UpdateResult{}, fmt.Errorf("promote user %s: %w", id, err)
	}

	return updateResult(res), nil
}

func (s *UserStore) Stats(ctx context.Context) (model.UserStats, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		stats model.UserStats
		err   error
	)

	if stats.AllUser, err = s.coll.CountDocuments(ctx, bson.D{}); err != nil {
		return model.UserStats{}, fmt.Errorf("count users: %w", err)
	}

	normal := bson.D{{Key: "premium", Value: bson.D{{Key: "$ne", Value: true}}}}
	if stats.NormalUser, err = s.coll.CountDocuments(ctx, normal); err != nil {
		return model.UserStats{}, fmt.Errorf("count normal users: %w", err)
	}

	if stats.PremiumUser, err = s.coll.CountDocuments(ctx, bson.D{{Key: "premium", Value: true}}); err != nil {
		return model.UserStats{}, fmt.Errorf("count premium users: %w", err)
	}

	return stats, nil
}
