// Package guard holds the middleware that authenticates callers and checks
// their role, premium flag or ownership before a handler runs. Every guard
// failure ends the request.
package guard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/SergeyParamoshkin/discussion/internal/errresponse"
	"github.com/SergeyParamoshkin/discussion/internal/logging"
	"github.com/SergeyParamoshkin/discussion/internal/model"
	"github.com/SergeyParamoshkin/discussion/internal/store"
	"github.com/SergeyParamoshkin/discussion/internal/token"
)

type ctxKey int8

const ctxKeyClaims ctxKey = iota

// ErrNoIdentity is returned by CallerEmail when Authenticate did not run.
var ErrNoIdentity = errors.New("no verified identity on request")

// ErrBadParam is returned by extractors for a path parameter that cannot be
// decoded.
var ErrBadParam = errors.New("malformed path parameter")

func WithClaims(ctx context.Context, c token.Claims) context.Context {
	return context.WithValue(ctx, ctxKeyClaims, c)
}

func ClaimsFrom(ctx context.Context) (token.Claims, bool) {
	c, ok := ctx.Value(ctxKeyClaims).(token.Claims)

	return c, ok
}

// Authenticate requires "Authorization: Bearer <token>" and stores the
// verified claims on the request context.
func Authenticate(v token.Verifier) func(http.Handler) http.Handler {
	if v == nil {
		panic("guard.Authenticate: nil verifier")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearer(r)
			if !ok {
				errresponse.Send(w, r, errresponse.ErrUnauthorized)

				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				logging.FromContext(r.Context()).Debugw("token rejected", "error", err)
				errresponse.Send(w, r, errresponse.ErrUnauthorized)

				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func bearer(r *http.Request) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(r.Header.Get("Authorization")), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	raw := strings.TrimSpace(parts[1])

	return raw, raw != ""
}

// UserLookup is the slice of the users gateway the role guards need.
type UserLookup interface {
	FindByEmail(ctx context.Context, email string, fields ...string) (model.User, error)
}

// RequireAdmin lets the request through only when the caller's stored role
// is Admin. Only the role field is fetched.
func RequireAdmin(users UserLookup) func(http.Handler) http.Handler {
	return requireUser(users, "role", func(u model.User) bool {
		return u.Role == model.RoleAdmin
	})
}

// RequirePremium lets the request through only for premium callers.
func RequirePremium(users UserLookup) func(http.Handler) http.Handler {
	return requireUser(users, "premium", func(u model.User) bool {
		return u.Premium
	})
}

func requireUser(users UserLookup, field string, allow func(model.User) bool) func(http.Handler) http.Handler {
	if users == nil {
		panic("guard: nil user lookup")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r.Context())
			if !ok {
				errresponse.Send(w, r, errresponse.ErrUnauthorized)

				return
			}

			u, err := users.FindByEmail(r.Context(), claims.Email, field)
			switch {
			case errors.Is(err, store.ErrNotFound):
				errresponse.Send(w, r, errresponse.ErrForbidden)

				return
			case err != nil:
				errresponse.Send(w, r, errresponse.FromError(r, err))

				return
			}

			if !allow(u) {
				errresponse.Send(w, r, errresponse.ErrForbidden)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// OwnerFunc extracts an email from the request: either the owner of the
// addressed resource or the identity of the caller.
type OwnerFunc func(r *http.Request) (string, error)

// RequireOwner compares the resource owner with the caller and answers 403
// on any mismatch, including an empty owner.
func RequireOwner(resourceOwner, caller OwnerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			who, err := caller(r)
			if err != nil {
				fail(w, r, err)

				return
			}

			owner, err := resourceOwner(r)
			if err != nil {
				fail(w, r, err)

				return
			}

			if owner == "" || owner != who {
				errresponse.Send(w, r, errresponse.ErrForbidden)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNoIdentity):
		errresponse.Send(w, r, errresponse.ErrUnauthorized)

		return
	case errors.Is(err, ErrBadParam):
		errresponse.Send(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	errresponse.Send(w, r, errresponse.FromError(r, err))
}

// CallerEmail is the verified email claim.
func CallerEmail(r *http.Request) (string, error) {
	c, ok := ClaimsFrom(r.Context())
	if !ok {
		return "", ErrNoIdentity
	}

	return c.Email, nil
}

// HeaderEmail reads a caller-supplied email header.
func HeaderEmail(name string) OwnerFunc {
	return func(r *http.Request) (string, error) {
		return strings.TrimSpace(r.Header.Get(name)), nil
	}
}

// URLParamEmail reads an email path parameter.
func URLParamEmail(name string) OwnerFunc {
	return func(r *http.Request) (string, error) {
		v, err := url.PathUnescape(chi.URLParam(r, name))
		if err != nil {
			return "", fmt.Errorf("%s: %w", name, ErrBadParam)
		}

		return v, nil
	}
}
