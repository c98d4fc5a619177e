package article

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SergeyParamoshkin/discussion/internal/errresponse"
	"github.com/SergeyParamoshkin/discussion/internal/model"
)

type ctxKey int8

const ctxKeyArticle ctxKey = iota

// ParamID is the URL parameter that addresses one article.
const ParamID = "articleID"

var errNoArticle = errors.New("no article on request context")

// ArticleCtx middleware is used to load an Article object from
// the URL parameters passed through as the request. In case
// the Article could not be found, we stop here and return a 404;
// a malformed id is a 400.
func ArticleCtx(articles Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			article, err := articles.FindByID(r.Context(), chi.URLParam(r, ParamID))
			if err != nil {
				errresponse.Send(w, r, errresponse.FromError(r, err))

				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyArticle, &article)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func FromContext(ctx context.Context) (*model.Article, bool) {
	a, ok := ctx.Value(ctxKeyArticle).(*model.Article)

	return a, ok
}

// AuthorEmail is a guard.OwnerFunc: the owner of the article loaded by
// ArticleCtx.
func AuthorEmail(r *http.Request) (string, error) {
	a, ok := FromContext(r.Context())
	if !ok {
		return "", errNoArticle
	}

	return a.Author.Email, nil
}
