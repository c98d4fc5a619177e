package publisher

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/discussion/internal/ackresponse"
	"github.com/SergeyParamoshkin/discussion/internal/errresponse"
	"github.com/SergeyParamoshkin/discussion/internal/model"
)

type Store interface {
	Insert(ctx context.Context, p model.Publisher) (model.InsertResult, error)
	FindAll(ctx context.Context) ([]model.Publisher, error)
}

type Handler struct {
	publishers Store
}

func NewHandler(publishers Store) *Handler {
	return &Handler{publishers: publishers}
}

type Request struct {
	*model.Publisher

	ProtectedID string `json:"_id"`
}

func (p *Request) Bind(r *http.Request) error {
	if p.Publisher == nil {
		return errors.New("missing required Publisher fields")
	}

	p.ProtectedID = ""
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errors.New("name is required")
	}

	return nil
}

type Response struct {
	*model.Publisher
}

func (p *Response) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (h *Handler) CreatePublisher(w http.ResponseWriter, r *http.Request) {
	data := &Request{}
	if err := render.Bind(r, data); err != nil {
		errresponse.Send(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	res, err := h.publishers.Insert(r.Context(), *data.Publisher)
	if err != nil {
		errresponse.Send(w, r, errresponse.FromError(r, err))

		return
	}

	errresponse.Send(w, r, ackresponse.NewInsert(res))
}

func (h *Handler) ListPublishers(w http.ResponseWriter, r *http.Request) {
	publishers, err := h.publishers.FindAll(r.Context())
	if err != nil {
		errresponse.Send(w, r, errresponse.FromError(r, err))

		return
	}

	list := []render.Renderer{}
	for i := range publishers {
		list = append(list, &Response{Publisher: &publishers[i]})
	}

	errresponse.SendList(w, r, list)
}
