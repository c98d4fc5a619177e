//go:build !integration

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/discussion/internal/model"
)

func TestClient(t *testing.T) {
	var gotAuth, gotEmail string

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Discussion server start now."))
	})
	mux.HandleFunc("/jwt", func(w http.ResponseWriter, r *http.Request) {
		var identity map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&identity))
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-" + identity["email"].(string)})
	})
	mux.HandleFunc("/articles", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"acknowledged":true,"insertedId":"665000000000000000000001"}`))
	})
	mux.HandleFunc("/articles/665000000000000000000001", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"_id":"665000000000000000000001","title":"A","author":{"email":"a@x.com"},"status":"pending","isPremium":false,"viewCount":0,"time":1}`))
	})
	mux.HandleFunc("/my-articles", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotEmail = r.Header.Get("email")
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":"Resource not found."}`, http.StatusNotFound)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx := context.Background()
	c := &Client{Addr: srv.URL}

	s, err := c.Root(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Discussion server start now.", s)

	tok, err := c.IssueToken(ctx, map[string]any{"email": "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "tok-a@x.com", tok)
	assert.Equal(t, tok, c.Token)

	ack, err := c.CreateArticle(ctx, model.Article{Title: "A", Author: model.Author{Email: "a@x.com"}})
	require.NoError(t, err)
	assert.Equal(t, "665000000000000000000001", ack.InsertedID)

	a, err := c.GetArticle(ctx, ack.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, a.Status)

	list, err := c.MyArticles(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, "Bearer tok-a@x.com", gotAuth)
	assert.Equal(t, "a@x.com", gotEmail)

	_, err = c.do(ctx, http.MethodGet, "/missing", nil, nil)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
}
