// Package server assembles the HTTP route table.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/discussion/internal/article"
	"github.com/SergeyParamoshkin/discussion/internal/errresponse"
	"github.com/SergeyParamoshkin/discussion/internal/guard"
	"github.com/SergeyParamoshkin/discussion/internal/logging"
	"github.com/SergeyParamoshkin/discussion/internal/metrics"
	"github.com/SergeyParamoshkin/discussion/internal/publisher"
	"github.com/SergeyParamoshkin/discussion/internal/token"
	"github.com/SergeyParamoshkin/discussion/internal/user"
)

// EmailHeader carries the identity a client claims to act for on the
// self-service routes. It must match the verified token.
const EmailHeader = "email"

const rootMessage = "Discussion server start now."

type Tokens interface {
	token.Issuer
	token.Verifier
}

type Deps struct {
	Logger      *zap.SugaredLogger
	Metrics     *metrics.Recorder
	Tokens      Tokens
	Articles    article.Store
	Users       user.Store
	Publishers  publisher.Store
	CORSOrigins []string
}

func NewRouter(d Deps) chi.Router {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	articles := article.NewHandler(d.Articles)
	users := user.NewHandler(d.Users)
	publishers := publisher.NewHandler(d.Publishers)
	tokens := token.NewHandler(d.Tokens)

	authenticate := guard.Authenticate(d.Tokens)
	admin := guard.RequireAdmin(d.Users)
	premium := guard.RequirePremium(d.Users)
	selfHeader := guard.RequireOwner(guard.HeaderEmail(EmailHeader), guard.CallerEmail)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(logging.Middleware(logger))
	r.Use(logging.AccessLog)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", EmailHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errresponse.Send(w, r, errresponse.ErrNotFound)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := w.Write([]byte(rootMessage)); err != nil {
			logging.FromContext(r.Context()).Errorw(err.Error())
		}
	})

	r.Post("/jwt", tokens.Issue)

	r.Post("/users", users.CreateUser)
	r.Get("/user-statistics", users.Statistics)
	r.With(authenticate, guard.RequireOwner(user.EmailOwner, guard.CallerEmail)).
		Get("/user/{"+user.ParamEmail+"}", users.GetRole)

	r.Route("/users-admin", func(r chi.Router) {
		r.Use(authenticate, admin)
		r.Get("/", users.ListUsers)
		r.Patch("/{"+user.ParamID+"}", users.MakeAdmin)
	})

	r.Route("/articles", func(r chi.Router) {
		r.Post("/", articles.CreateArticle)
		r.With(authenticate, admin).Get("/", articles.ListArticles)

		r.Route("/{"+article.ParamID+"}", func(r chi.Router) {
			r.With(article.ArticleCtx(d.Articles)).Get("/", articles.GetArticle)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, admin)
				r.Put("/", articles.MakePremium)
				r.Patch("/", articles.Approve)
				r.Delete("/", articles.DeleteArticle)
			})
		})
	})

	r.With(authenticate, admin).Put("/article-decline/{"+article.ParamID+"}", articles.Decline)
	r.Put("/article-count/{"+article.ParamID+"}", articles.CountView)
	r.Get("/approved-articles", articles.ListApproved)
	r.Get("/trending-articles", articles.ListTrending)
	r.With(authenticate, selfHeader, premium).Get("/premium-articles", articles.ListPremium)

	r.Route("/my-articles", func(r chi.Router) {
		r.Use(authenticate)
		r.With(selfHeader).Get("/", articles.ListMine)

		r.Route("/{"+article.ParamID+"}", func(r chi.Router) {
			r.Use(article.ArticleCtx(d.Articles))
			r.Use(guard.RequireOwner(article.AuthorEmail, guard.CallerEmail))
			r.Patch("/", articles.UpdateMine)
			r.Delete("/", articles.DeleteArticle)
		})
	})

	r.Route("/publishers", func(r chi.Router) {
		r.Post("/", publishers.CreatePublisher)
		r.Get("/", publishers.ListPublishers)
	})

	return r
}
