// Package client is a small Go client for the discussion API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/SergeyParamoshkin/discussion/internal/model"
)

type Client struct {
	http.Client
	Addr string

	// Token is sent as a bearer token when set.
	Token string
}

// StatusError is returned for any non-2xx answer.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

type InsertAck struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// Root returns the greeting served on /.
func (c *Client) Root(ctx context.Context) (string, error) {
	body, err := c.do(ctx, http.MethodGet, "/", nil, nil)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// IssueToken asks the server to sign identity and keeps the token for the
// following calls.
func (c *Client) IssueToken(ctx context.Context, identity map[string]any) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/jwt", identity, &resp, nil); err != nil {
		return "", err
	}

	c.Token = resp.Token

	return resp.Token, nil
}

func (c *Client) CreateArticle(ctx context.Context, a model.Article) (InsertAck, error) {
	var ack InsertAck
	err := c.doJSON(ctx, http.MethodPost, "/articles", a, &ack, nil)

	return ack, err
}

func (c *Client) GetArticle(ctx context.Context, id string) (model.Article, error) {
	var a model.Article
	err := c.doJSON(ctx, http.MethodGet, "/articles/"+id, nil, &a, nil)

	return a, err
}

// MyArticles lists the articles of the signed-in author.
func (c *Client) MyArticles(ctx context.Context, email string) ([]model.Article, error) {
	var list []model.Article
	err := c.doJSON(ctx, http.MethodGet, "/my-articles", nil, &list, http.Header{"email": {email}})

	return list, err
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any, h http.Header) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	raw, err := c.do(ctx, method, path, body, h)
	if err != nil {
		return err
	}

	return json.Unmarshal(raw, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, h http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.Addr+path, body)
	if err != nil {
		return nil, err
	}

	for k, v := range h {
		req.Header[k] = v
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}

	return raw, nil
}
