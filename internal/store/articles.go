package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SergeyParamoshkin/discussion/internal/model"
)

// TrendingLimit is the number of articles returned by FindTrending.
const TrendingLimit = 6

type ArticleStore struct {
	base
	coll *mongo.Collection
}

// Insert stores a new submission. Moderation and counter fields are always
// reset: the article starts pending, non-premium, with zero views.
func (s *ArticleStore) Insert(ctx context.Context, a model.Article) (model.InsertResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	a.ID = primitive.NilObjectID
	a.Status = model.StatusPending
	a.DeclineReason = ""
	a.IsPremium = false
	a.ViewCount = 0
	a.Time = s.millis()

	res, err := s.coll.InsertOne(ctx, a)
	if err != nil {
		return model.InsertResult{}, fmt.Errorf("insert article: %w", err)
	}

	return insertResult(res), nil
}

// FindAll lists every article, pending first, newest first within a status.
func (s *ArticleStore) FindAll(ctx context.Context) ([]model.Article, error) {
	opts := options.Find().SetSort(bson.D{{Key: "status", Value: -1}, {Key: "time", Value: -1}})

	return s.find(ctx, bson.D{}, opts)
}

func (s *ArticleStore) FindByStatus(ctx context.Context, status model.Status) ([]model.Article, error) {
	return s.find(ctx, bson.D{{Key: "status", Value: status}}, options.Find().SetSort(bson.D{{Key: "time", Value: -1}}))
}

func (s *ArticleStore) FindPremium(ctx context.Context) ([]model.Article, error) {
	return s.find(ctx, bson.D{{Key: "isPremium", Value: true}}, options.Find().SetSort(bson.D{{Key: "time", Value: -1}}))
}

// FindTrending returns at most TrendingLimit viewed articles, most viewed first.
func (s *ArticleStore) FindTrending(ctx context.Context) ([]model.Article, error) {
	filter := bson.D{{Key: "viewCount", Value: bson.D{{Key: "$gt", Value: 0}}}}
	opts := options.Find().
		SetSort(bson.D{{Key: "viewCount", Value: -1}}).
		SetLimit(TrendingLimit)

	return s.find(ctx, filter, opts)
}

func (s *ArticleStore) FindByAuthor(ctx context.Context, email string) ([]model.Article, error) {
	return s.find(ctx, bson.D{{Key: "author.email", Value: email}}, options.Find().SetSort(bson.D{{Key: "time", Value: -1}}))
}

func (s *ArticleStore) FindByID(ctx context.Context, id string) (model.Article, error) {
	oid, err := ParseID(id)
	if err != nil {
		return model.Article{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var a model.Article
	err = s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Article{}, fmt.Errorf("article %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Article{}, fmt.Errorf("find article %s: %w", id, err)
	}

	return a, nil
}

// Update merges the author-editable fields that are set in c.
func (s *ArticleStore) Update(ctx context.Context, id string, c model.ArticleContent) (model.UpdateResult, error) {
	return s.updateByID(ctx, id, bson.D{{Key: "$set", Value: c}})
}

func (s *ArticleStore) SetPremium(ctx context.Context, id string) (model.UpdateResult, error) {
	return s.updateByID(ctx, id, bson.D{{Key: "$set", Value: bson.D{{Key: "isPremium", Value: true}}}})
}

func (s *ArticleStore) Decline(ctx context.Context, id, reason string) (model.UpdateResult, error) {
	return s.updateByID(ctx, id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: model.StatusDeclined},
		{Key: "declineReason", Value: reason},
	}}})
}

// Approve also drops any earlier decline reason.
func (s *ArticleStore) Approve(ctx context.Context, id string) (model.UpdateResult, error) {
	return s.updateByID(ctx, id, bson.D{
		{Key: "$set", Value: bson.D{{Key: "status", Value: model.StatusApproved}}},
		{Key: "$unset", Value: bson.D{{Key: "declineReason", Value: ""}}},
	})
}

// IncrementViews adds delta to the view counter with a single $inc, so
// concurrent increments on the same article never overwrite each other.
func (s *ArticleStore) IncrementViews(ctx context.Context, id string, delta int64) (model.UpdateResult, error) {
	return s.updateByID(ctx, id, bson.D{{Key: "$inc", Value: bson.D{{Key: "viewCount", Value: delta}}}})
}

func (s *ArticleStore) Delete(ctx context.Context, id string) (model.DeleteResult, error) {
	oid, err := ParseID(id)
	if err != nil {
		return model.DeleteResult{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return model.DeleteResult{}, fmt.Errorf("delete article %s: %w", id, err)
	}

	return model.DeleteResult{DeletedCount: res.DeletedCount}, nil
}

func (s *ArticleStore) updateByID(ctx context.Context, id string, update bson.D) (model.UpdateResult, error) {
	oid, err := ParseID(id)
	if err != nil {
		return model.UpdateResult{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, update)
	if err != nil {
		return model.UpdateResult{}, fmt.Errorf("update article %s: %w", id, err)
	}

	return updateResult(res), nil
}

func (s *ArticleStore) find(ctx context.Context, filter bson.D, opts ...*options.FindOptions) ([]model.Article, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cur, err := s.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}

	articles, err := decodeAll[model.Article](ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("decode articles: %w", err)
	}

	return articles, nil
}
