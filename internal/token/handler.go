package token

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/discussion/internal/errresponse"
	"github.com/SergeyParamoshkin/discussion/internal/logging"
)

type Issuer interface {
	Issue(identity map[string]any) (string, error)
}

// Handler serves POST /jwt.
type Handler struct {
	issuer Issuer
}

func NewHandler(issuer Issuer) *Handler {
	return &Handler{issuer: issuer}
}

// IdentityRequest is the posted identity object; every field becomes a claim.
type IdentityRequest map[string]any

func (i IdentityRequest) Bind(r *http.Request) error {
	email, _ := i["email"].(string)
	if email == "" {
		return errors.New("email is required")
	}

	return nil
}

type Response struct {
	Token string `json:"token"`
}

func (t *Response) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (h *Handler) Issue(w http.ResponseWriter, r *http.Request) {
	data := IdentityRequest{}
	if err := render.Bind(r, &data); err != nil {
		errresponse.Send(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	signed, err := h.issuer.Issue(data)
	if err != nil {
		logging.FromContext(r.Context()).Errorw("sign token", "error", err)
		errresponse.Send(w, r, errresponse.ErrInternal)

		return
	}

	errresponse.Send(w, r, &Response{Token: signed})
}
