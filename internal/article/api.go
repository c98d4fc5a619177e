package article

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/discussion/internal/ackresponse"
	"github.com/SergeyParamoshkin/discussion/internal/articlerequest"
	"github.com/SergeyParamoshkin/discussion/internal/articleresponse"
	"github.com/SergeyParamoshkin/discussion/internal/errresponse"
	"github.com/SergeyParamoshkin/discussion/internal/guard"
	"github.com/SergeyParamoshkin/discussion/internal/model"
)

type Handler struct {
	articles Store
}

func NewHandler(articles Store) *Handler {
	return &Handler{articles: articles}
}

// CreateArticle persists the posted Article as a pending submission and
// returns the insert acknowledgement.
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	data := &articlerequest.ArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		errresponse.Send(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	res, err := h.articles.Insert(r.Context(), *data.Article)
	if err != nil {
		errresponse.Send(w, r, errresponse.FromError(r, err))

		return
	}

	errresponse.Send(w, r, ackresponse.NewInsert(res))
}

// ListArticles is the moderation queue: every article, pending first.
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.FindAll(r.Context())
	h.renderList(w, r, articles, err)
}

func (h *Handler) ListApproved(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.FindByStatus(r.Context(), model.StatusApproved)
	h.renderList(w, r, articles, err)
}

func (h *Handler) ListTrending(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.FindTrending(r.Context())
	h.renderList(w, r, articles, err)
}

func (h *Handler) ListPremium(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.FindPremium(r.Context())
	h.renderList(w, r, articles, err)
}

// ListMine returns the caller's own articles. The caller is the verified
// token identity, never a client-supplied value.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	email, err := guard.CallerEmail(r)
	if err != nil {
		errresponse.Send(w, r, errresponse.ErrUnauthorized)

		return
	}

	articles, err := h.articles.FindByAuthor(r.Context(), email)
	h.renderList(w, r, articles, err)
}

// GetArticle returns the article loaded by ArticleCtx.
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, ok := FromContext(r.Context())
	if !ok {
		errresponse.Send(w, r, errresponse.ErrNotFound)

		return
	}

	errresponse.Send(w, r, articleresponse.NewArticleResponse(article))
}

// UpdateMine merges an author's edit into their own article.
func (h *Handler) UpdateMine(w http.ResponseWriter, r *http.Request) {
	data := &articlerequest.ContentRequest{}
	if err := render.Bind(r, data); err != nil {
		errresponse.Send(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	res, err := h.articles.Update(r.Context(), chi.URLParam(r, ParamID), data.ArticleContent)
	h.renderUpdate(w, r, res, err)
}

func (h *Handler) MakePremium(w http.ResponseWriter, r *http.Request) {
	res, err := h.articles.SetPremium(r.Context(), chi.URLParam(r, ParamID))
	h.renderUpdate(w, r, res, err)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	res, err := h.articles.Approve(r.Context(), chi.URLParam(r, ParamID))
	h.renderUpdate(w, r, res, err)
}

func (h *Handler) Decline(w http.ResponseWriter, r *http.Request) {
	data := &articlerequest.DeclineRequest{}
	if err := render.Bind(r, data); err != nil {
		errresponse.Send(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	res, err := h.articles.Decline(r.Context(), chi.URLParam(r, ParamID), data.Reason)
	h.renderUpdate(w, r, res, err)
}

// CountView adds the posted number of views.
func (h *Handler) CountView(w http.ResponseWriter, r *http.Request) {
	data := &articlerequest.CountRequest{}
	if err := render.Bind(r, data); err != nil {
		errresponse.Send(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	res, err := h.articles.IncrementViews(r.Context(), chi.URLParam(r, ParamID), *data.Count)
	h.renderUpdate(w, r, res, err)
}

// DeleteArticle removes an article. Admin and owner routes share it; the
// guards in front decide who may call it.
func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	res, err := h.articles.Delete(r.Context(), chi.URLParam(r, ParamID))
	if err != nil {
		errresponse.Send(w, r, errresponse.FromError(r, err))

		return
	}

	errresponse.Send(w, r, ackresponse.NewDelete(res))
}

func (h *Handler) renderList(w http.ResponseWriter, r *http.Request, articles []model.Article, err error) {
	if err != nil {
		errresponse.Send(w, r, errresponse.FromError(r, err))

		return
	}

	errresponse.SendList(w, r, articleresponse.NewArticleListResponse(articles))
}

func (h *Handler) renderUpdate(w http.ResponseWriter, r *http.Request, res model.UpdateResult, err error) {
	if err != nil {
		errresponse.Send(w, r, errresponse.FromError(r, err))

		return
	}

	errresponse.Send(w, r, ackresponse.NewUpdate(res))
}
