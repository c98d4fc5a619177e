// Package ackresponse renders write acknowledgements in the shape MongoDB
// reports them.
package ackresponse

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/discussion/internal/model"
)

type InsertResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

func NewInsert(res model.InsertResult) *InsertResponse {
	return &InsertResponse{Acknowledged: true, InsertedID: res.InsertedID}
}

func (i *InsertResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusCreated)

	return nil
}

// NoticeResponse answers a write that was skipped on purpose.
type NoticeResponse struct {
	Message    string  `json:"message"`
	InsertedID *string `json:"insertedId"`
}

func NewNotice(message string) *NoticeResponse {
	return &NoticeResponse{Message: message}
}

func (n *NoticeResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type UpdateResponse struct {
	Acknowledged  bool    `json:"acknowledged"`
	MatchedCount  int64   `json:"matchedCount"`
	ModifiedCount int64   `json:"modifiedCount"`
	UpsertedCount int64   `json:"upsertedCount"`
	UpsertedID    *string `json:"upsertedId"`
}

func NewUpdate(res model.UpdateResult) *UpdateResponse {
	u := &UpdateResponse{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if res.UpsertedID != "" {
		id := res.UpsertedID
		u.UpsertedID = &id
	}

	return u
}

func (u *UpdateResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type DeleteResponse struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

func NewDelete(res model.DeleteResult) *DeleteResponse {
	return &DeleteResponse{Acknowledged: true, DeletedCount: res.DeletedCount}
}

func (d *DeleteResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
