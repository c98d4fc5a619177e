package userpayload

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/discussion/internal/model"
)

//--
// Request and Response payloads for the user routes.
//--

// UserPayload is both the sign-up request and the admin listing entry.
type UserPayload struct {
	*model.User
}

func NewUserPayloadResponse(user *model.User) *UserPayload {
	return &UserPayload{User: user}
}

func NewUserListResponse(users []model.User) []render.Renderer {
	list := []render.Renderer{}
	for i := range users {
		list = append(list, NewUserPayloadResponse(&users[i]))
	}

	return list
}

// Bind on UserPayload will run after the unmarshalling is complete. Role and
// premium are never taken from the client; the gateway sets the defaults.
func (u *UserPayload) Bind(r *http.Request) error {
	if u.User == nil {
		return errors.New("missing required User fields")
	}

	u.Email = strings.TrimSpace(u.Email)
	if u.Email == "" {
		return errors.New("email is required")
	}

	return nil
}

func (u *UserPayload) Render(w http.ResponseWriter, r *http.Request) error {
	if u.Role == "" {
		u.Role = model.RoleUser
	}

	return nil
}

// RoleResponse is what a signed-in user learns about their own account.
type RoleResponse struct {
	Role    model.Role `json:"role"`
	Premium bool       `json:"premium"`
}

func NewRoleResponse(u model.User) *RoleResponse {
	role := u.Role
	if role == "" {
		role = model.RoleUser
	}

	return &RoleResponse{Role: role, Premium: u.Premium}
}

func (rr *RoleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type StatsResponse struct {
	model.UserStats
}

func (s *StatsResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
