// Package articlerequest holds the request payloads of the article routes.
package articlerequest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SergeyParamoshkin/discussion/internal/model"
)

// ArticleRequest is the request payload for Article data model.
//
// Moderation fields (status, isPremium, viewCount, declineReason) are
// accepted on the wire but the gateway resets them on insert.
type ArticleRequest struct {
	*model.Article

	ProtectedID string `json:"_id"` // override '_id' json to have more control
}

func (a *ArticleRequest) Bind(r *http.Request) error {
	// a.Article is nil if no Article fields are sent in the request. Return an
	// error to avoid a nil pointer dereference.
	if a.Article == nil {
		return errors.New("missing required Article fields")
	}

	a.ProtectedID = ""
	a.Title = strings.TrimSpace(a.Title)
	a.Author.Email = strings.TrimSpace(a.Author.Email)

	if a.Title == "" {
		return errors.New("title is required")
	}
	if a.Author.Email == "" {
		return errors.New("author email is required")
	}

	return nil
}

// ContentRequest is an author's edit of their own article.
type ContentRequest struct {
	model.ArticleContent
}

func (c *ContentRequest) Bind(r *http.Request) error {
	if c.Empty() {
		return errors.New("no editable fields in request")
	}
	if c.Title != nil && strings.TrimSpace(*c.Title) == "" {
		return errors.New("title cannot be empty")
	}

	return nil
}

type DeclineRequest struct {
	Reason string `json:"declineReason"`
}

func (d *DeclineRequest) Bind(r *http.Request) error {
	d.Reason = strings.TrimSpace(d.Reason)
	if d.Reason == "" {
		return errors.New("declineReason is required")
	}

	return nil
}

// MaxCount bounds the views one request may add.
const MaxCount = 1000

// CountRequest carries the number of views to add.
type CountRequest struct {
	Count *int64 `json:"count"`
}

func (c *CountRequest) Bind(r *http.Request) error {
	if c.Count == nil {
		return errors.New("count is required")
	}
	if *c.Count < 0 {
		return errors.New("count must not be negative")
	}
	if *c.Count > MaxCount {
		return fmt.Errorf("count must not exceed %d", MaxCount)
	}

	return nil
}
