package server

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SergeyParamoshkin/discussion/internal/model"
	"github.com/SergeyParamoshkin/discussion/internal/store"
)

// memArticles mirrors the gateway semantics of store.ArticleStore in memory.
type memArticles struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]model.Article
}

func newMemArticles() *memArticles {
	return &memArticles{docs: map[primitive.ObjectID]model.Article{}}
}

func (m *memArticles) put(a model.Article) model.Article {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	m.docs[a.ID] = a

	return a
}

func (m *memArticles) get(id primitive.ObjectID) (model.Article, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.docs[id]

	return a, ok
}

func (m *memArticles) Insert(ctx context.Context, a model.Article) (model.InsertResult, error) {
	a.ID = primitive.NilObjectID
	a.Status = model.StatusPending
	a.DeclineReason = ""
	a.IsPremium = false
	a.ViewCount = 0
	a.Time = time.Now().UnixMilli()

	a = m.put(a)

	return model.InsertResult{InsertedID: a.ID.Hex()}, nil
}

func (m *memArticles) filter(keep func(model.Article) bool, less func(a, b model.Article) bool) []model.Article {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []model.Article{}
	for _, a := range m.docs {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })

	return out
}

func newestFirst(a, b model.Article) bool { return a.Time > b.Time }

func (m *memArticles) FindAll(ctx context.Context) ([]model.Article, error) {
	return m.filter(func(model.Article) bool { return true }, func(a, b model.Article) bool {
		if a.Status != b.Status {
			return a.Status > b.Status
		}

		return a.Time > b.Time
	}), nil
}

func (m *memArticles) FindByStatus(ctx context.Context, status model.Status) ([]model.Article, error) {
	return m.filter(func(a model.Article) bool { return a.Status == status }, newestFirst), nil
}

func (m *memArticles) FindPremium(ctx context.Context) ([]model.Article, error) {
	return m.filter(func(a model.Article) bool { return a.IsPremium }, newestFirst), nil
}

func (m *memArticles) FindTrending(ctx context.Context) ([]model.Article, error) {
	out := m.filter(func(a model.Article) bool { return a.ViewCount > 0 }, func(a, b model.Article) bool {
		return a.ViewCount > b.ViewCount
	})
	if len(out) > store.TrendingLimit {
		out = out[:store.TrendingLimit]
	}

	return out, nil
}

func (m *memArticles) FindByAuthor(ctx context.Context, email string) ([]model.Article, error) {
	return m.filter(func(a model.Article) bool { return a.Author.Email == email }, newestFirst), nil
}

func (m *memArticles) FindByID(ctx context.Context, id string) (model.Article, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return model.Article{}, err
	}

	a, ok := m.get(oid)
	if !ok {
		return model.Article{}, fmt.Errorf("find article %s: %w", id, store.ErrNotFound)
	}

	return a, nil
}

func (m *memArticles) mutate(id string, fn func(a *model.Article)) (model.UpdateResult, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return model.UpdateResult{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.docs[oid]
	if !ok {
		return model.UpdateResult{}, nil
	}
	fn(&a)
	m.docs[oid] = a

	return model.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *memArticles) Update(ctx context.Context, id string, c model.ArticleContent) (model.UpdateResult, error) {
	return m.mutate(id, func(a *model.Article) {
		if c.Title != nil {
			a.Title = *c.Title
		}
		if c.Description != nil {
			a.Description = *c.Description
		}
		if c.Image != nil {
			a.Image = *c.Image
		}
		if c.Publisher != nil {
			a.Publisher = *c.Publisher
		}
		if c.Tags != nil {
			a.Tags = *c.Tags
		}
	})
}

func (m *memArticles) SetPremium(ctx context.Context, id string) (model.UpdateResult, error) {
	return m.mutate(id, func(a *model.Article) { a.IsPremium = true })
}

func (m *memArticles) Decline(ctx context.Context, id, reason string) (model.UpdateResult, error) {
	return m.mutate(id, func(a *model.Article) {
		a.Status = model.StatusDeclined
		a.DeclineReason = reason
	})
}

func (m *memArticles) Approve(ctx context.Context, id string) (model.UpdateResult, error) {
	return m.mutate(id, func(a *model.Article) {
		a.Status = model.StatusApproved
		a.DeclineReason = ""
	})
}

func (m *memArticles) IncrementViews(ctx context.Context, id string, delta int64) (model.UpdateResult, error) {
	return m.mutate(id, func(a *model.Article) { a.ViewCount += delta })
}

func (m *memArticles) Delete(ctx context.Context, id string) (model.DeleteResult, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return model.DeleteResult{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[oid]; !ok {
		return model.DeleteResult{}, nil
	}
	delete(m.docs, oid)

	return model.DeleteResult{DeletedCount: 1}, nil
}

type memUsers struct {
	mu    sync.Mutex
	byID  map[primitive.ObjectID]string
	users map[string]model.User
}

func newMemUsers(users ...model.User) *memUsers {
	m := &memUsers{byID: map[primitive.ObjectID]string{}, users: map[string]model.User{}}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		m.byID[u.ID] = u.Email
		m.users[u.Email] = u
	}

	return m
}

func (m *memUsers) InsertIfAbsent(ctx context.Context, u model.User) (model.InsertResult, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[u.Email]; ok {
		return model.InsertResult{}, false, nil
	}

	u.ID = primitive.NewObjectID()
	u.Role = model.RoleUser
	u.Premium = false
	u.Time = time.Now().UnixMilli()
	m.byID[u.ID] = u.Email
	m.users[u.Email] = u

	return model.InsertResult{InsertedID: u.ID.Hex()}, true, nil
}

func (m *memUsers) FindAll(ctx context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []model.User{}
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })

	return out, nil
}

func (m *memUsers) FindByEmail(ctx context.Context, email string, fields ...string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[email]
	if !ok {
		return model.User{}, fmt.Errorf("find user %s: %w", email, store.ErrNotFound)
	}

	return u, nil
}

func (m *memUsers) Promote(ctx context.Context, id string) (model.UpdateResult, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return model.UpdateResult{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	email, ok := m.byID[oid]
	if !ok {
		return model.UpdateResult{}, nil
	}
	u := m.users[email]
	u.Role = model.RoleAdmin
	m.users[email] = u

	return model.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *memUsers) Stats(ctx context.Context) (model.UserStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var s model.UserStats
	for _, u := range m.users {
		s.AllUser++
		if u.Premium {
			s.PremiumUser++
		} else {
			s.NormalUser++
		}
	}

	return s, nil
}

type memPublishers struct {
	mu   sync.Mutex
	docs []model.Publisher
}

func (m *memPublishers) Insert(ctx context.Context, p model.Publisher) (model.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p.ID = primitive.NewObjectID()
	m.docs = append(m.docs, p)

	return model.InsertResult{InsertedID: p.ID.Hex()}, nil
}

func (m *memPublishers) FindAll(ctx context.Context) ([]model.Publisher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]model.Publisher{}, m.docs...), nil
}
