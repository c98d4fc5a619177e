package user

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/discussion/internal/ackresponse"
	"github.com/SergeyParamoshkin/discussion/internal/errresponse"
	"github.com/SergeyParamoshkin/discussion/internal/guard"
	"github.com/SergeyParamoshkin/discussion/internal/model"
	"github.com/SergeyParamoshkin/discussion/internal/userpayload"
)

// ParamID addresses a user document, ParamEmail a user by email.
const (
	ParamID    = "userID"
	ParamEmail = "email"
)

// ExistsMessage is returned when a sign-up repeats a known email.
const ExistsMessage = "user already exists"

// EmailOwner reads the email path parameter, for guard.RequireOwner.
var EmailOwner = guard.URLParamEmail(ParamEmail)

// Store is the users gateway as the handlers use it.
type Store interface {
	InsertIfAbsent(ctx context.Context, u model.User) (model.InsertResult, bool, error)
	FindAll(ctx context.Context) ([]model.User, error)
	FindByEmail(ctx context.Context, email string, fields ...string) (model.User, error)
	Promote(ctx context.Context, id string) (model.UpdateResult, error)
	Stats(ctx context.Context) (model.UserStats, error)
}

type Handler struct {
	users Store
}

func NewHandler(users Store) *Handler {
	return &Handler{users: users}
}

// CreateUser registers a user on first sign-in. Repeating it is harmless.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	data := &userpayload.UserPayload{}
	if err := render.Bind(r, data); err != nil {
		errresponse.Send(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	res, created, err := h.users.InsertIfAbsent(r.Context(), *data.User)
	if err != nil {
		errresponse.Send(w, r, errresponse.FromError(r, err))

		return
	}

	if !created {
		errresponse.Send(w, r, ackresponse.NewNotice(ExistsMessage))

		return
	}

	errresponse.Send(w, r, ackresponse.NewInsert(res))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.FindAll(r.Context())
	if err != nil {
		errresponse.Send(w, r, errresponse.FromError(r, err))

		return
	}

	errresponse.SendList(w, r, userpayload.NewUserListResponse(users))
}

// MakeAdmin promotes a user. There is deliberately no route back to User.
func (h *Handler) MakeAdmin(w http.ResponseWriter, r *http.Request) {
	res, err := h.users.Promote(r.Context(), chi.URLParam(r, ParamID))
	if err != nil {
		errresponse.Send(w, r, errresponse.FromError(r, err))

		return
	}

	errresponse.Send(w, r, ackresponse.NewUpdate(res))
}

// GetRole answers the caller's role and premium flag. The route is guarded
// so that the email in the path is the caller's own.
func (h *Handler) GetRole(w http.ResponseWriter, r *http.Request) {
	email, err := EmailOwner(r)
	if err != nil {
		errresponse.Send(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	u, err := h.users.FindByEmail(r.Context(), email, "role", "premium")
	if err != nil {
		errresponse.Send(w, r, errresponse.FromError(r, err))

		return
	}

	errresponse.Send(w, r, userpayload.NewRoleResponse(u))
}

func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.users.Stats(r.Context())
	if err != nil {
		errresponse.Send(w, r, errresponse.FromError(r, err))

		return
	}

	errresponse.Send(w, r, &userpayload.StatsResponse{UserStats: stats})
}
