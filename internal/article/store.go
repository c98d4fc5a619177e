package article

import (
	"context"

	"github.com/SergeyParamoshkin/discussion/internal/model"
)

// Store is the articles gateway as the handlers use it.
type Store interface {
	Insert(ctx context.Context, a model.Article) (model.InsertResult, error)
	FindAll(ctx context.Context) ([]model.Article, error)
	FindByStatus(ctx context.Context, status model.Status) ([]model.Article, error)
	FindPremium(ctx context.Context) ([]model.Article, error)
	FindTrending(ctx context.Context) ([]model.Article, error)
	FindByAuthor(ctx context.Context, email string) ([]model.Article, error)
	FindByID(ctx context.Context, id string) (model.Article, error)
	Update(ctx context.Context, id string, c model.ArticleContent) (model.UpdateResult, error)
	SetPremium(ctx context.Context, id string) (model.UpdateResult, error)
	Decline(ctx context.Context, id, reason string) (model.UpdateResult, error)
	Approve(ctx context.Context, id string) (model.UpdateResult, error)
	IncrementViews(ctx context.Context, id string, delta int64) (model.UpdateResult, error)
	Delete(ctx context.Context, id string) (model.DeleteResult, error)
}
