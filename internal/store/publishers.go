package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SergeyParamoshkin/discussion/internal/model"
)

type PublisherStore struct {
	base
	coll *mongo.Collection
}

func (s *PublisherStore) Insert(ctx context.Context, p model.Publisher) (model.InsertResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p.ID = primitive.NilObjectID

	res, err := s.coll.InsertOne(ctx, p)
	if err != nil {
		return model.InsertResult{}, fmt.Errorf("insert publisher: %w", err)
	}

	return insertResult(res), nil
}

func (s *PublisherStore) FindAll(ctx context.Context) ([]model.Publisher, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetProjection(projection("name", "image")))
	if err != nil {
		return nil, fmt.Errorf("find publishers: %w", err)
	}

	publishers, err := decodeAll[model.Publisher](ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("decode publishers: %w", err)
	}

	return publishers, nil
}
