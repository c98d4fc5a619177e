// Package errresponse renders the API error taxonomy.
package errresponse

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/discussion/internal/logging"
	"github.com/SergeyParamoshkin/discussion/internal/store"
)

// ErrResponse renderer type for handling all sorts of errors.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText string `json:"status"`          // user-level status message
	AppCode    int64  `json:"code,omitempty"`  // application-specific error code
	ErrorText  string `json:"error,omitempty"` // application-level error message, for debugging
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)

	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrRender(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusUnprocessableEntity,
		StatusText:     "Error rendering response.",
		ErrorText:      err.Error(),
	}
}

var (
	ErrUnauthorized = &ErrResponse{HTTPStatusCode: http.StatusUnauthorized, StatusText: "Unauthorized access."}
	ErrForbidden    = &ErrResponse{HTTPStatusCode: http.StatusForbidden, StatusText: "Forbidden access."}
	ErrNotFound     = &ErrResponse{HTTPStatusCode: http.StatusNotFound, StatusText: "Resource not found."}
	ErrInternal     = &ErrResponse{HTTPStatusCode: http.StatusInternalServerError, StatusText: "Internal server error."}
)

// FromError maps gateway errors onto the taxonomy. Anything unknown is an
// upstream failure: it is logged and the client only sees a generic 500.
func FromError(r *http.Request, err error) render.Renderer {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		return ErrInvalidRequest(err)
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	}

	logging.FromContext(r.Context()).Errorw("upstream failure", "error", err)

	return ErrInternal
}

// Send renders v, logging the rare failure to write it.
func Send(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		logging.FromContext(r.Context()).Errorw("render response", "error", err)
	}
}

// SendList is Send for list payloads.
func SendList(w http.ResponseWriter, r *http.Request, l []render.Renderer) {
	if err := render.RenderList(w, r, l); err != nil {
		Send(w, r, ErrRender(err))
	}
}

// Respond replaces render.Respond so that a bare error value never reaches
// the client with its internal text.
func Respond(w http.ResponseWriter, r *http.Request, v interface{}) {
	if err, ok := v.(error); ok {
		if _, ok := r.Context().Value(render.StatusCtxKey).(int); !ok {
			w.WriteHeader(http.StatusInternalServerError)
		}

		logging.FromContext(r.Context()).Errorw("responding with raw error", "error", err)
		render.DefaultResponder(w, r, render.M{"status": "error"})

		return
	}

	render.DefaultResponder(w, r, v)
}
