package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/sakif/gocamp/internal/apperror"
	"github.com/sakif/gocamp/internal/model"
)

// mockStore is an in-memory implementation of all three repository
// interfaces. Instead of talking to SQLite it keeps maps, which makes
// service tests fast and lets them inspect exactly what was persisted.
type mockStore struct {
	campgrounds map[string]*model.Campground
	reviews     map[string]*model.Review
	users       map[string]*model.User
	memberships map[string][]string // campgroundID → review IDs
	nextID      int
}

func newMockStore() *mockStore {
	return &mockStore{
		campgrounds: make(map[string]*model.Campground),
		reviews:     make(map[string]*model.Review),
		users:       make(map[string]*model.User),
		memberships: make(map[string][]string),
	}
}

func (m *mockStore) id() string {
	m.nextID++
	return fmt.Sprintf("mock-%d", m.nextID)
}

func (m *mockStore) Create(_ context.Context, campground *model.Campground) error {
	campground.ID = m.id()
	stored := *campground
	m.campgrounds[campground.ID] = &stored
	return nil
}

func (m *mockStore) GetByID(_ context.Context, id string) (*model.Campground, error) {
	c, ok := m.campgrounds[id]
	if !ok {
		return nil, apperror.NotFound("campground", id)
	}
	result := *c
	return &result, nil
}

func (m *mockStore) GetDetail(_ context.Context, id string) (*model.CampgroundDetail, error) {
	c, ok := m.campgrounds[id]
	if !ok {
		return nil, apperror.NotFound("campground", id)
	}
	detail := &model.CampgroundDetail{Campground: *c}
	if author, ok := m.users[c.AuthorID]; ok {
		detail.Author = *author
	}
	detail.Reviews = []model.ReviewWithAuthor{}
	for _, reviewID := range m.memberships[id] {
		if r, ok := m.reviews[reviewID]; ok {
			rv := model.ReviewWithAuthor{Review: *r}
			if author, ok := m.users[r.AuthorID]; ok {
				rv.Author = *author
			}
			detail.Reviews = append(detail.Reviews, rv)
		}
	}
	return detail, nil
}

func (m *mockStore) List(_ context.Context) ([]model.Campground, error) {
	result := make([]model.Campground, 0, len(m.campgrounds))
	for _, c := range m.campgrounds {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockStore) Update(_ context.Context, campground *model.Campground) error {
	existing, ok := m.campgrounds[campground.ID]
	if !ok {
		return apperror.NotFound("campground", campground.ID)
	}
	stored := *campground
	stored.AuthorID = existing.AuthorID // author is immutable in storage too
	m.campgrounds[campground.ID] = &stored
	return nil
}

func (m *mockStore) Delete(_ context.Context, id string) error {
	if _, ok := m.campgrounds[id]; !ok {
		return apperror.NotFound("campground", id)
	}
	delete(m.campgrounds, id)
	delete(m.memberships, id)
	return nil
}

func (m *mockStore) AttachReview(_ context.Context, campgroundID, reviewID string) error {
	m.memberships[campgroundID] = append(m.memberships[campgroundID], reviewID)
	return nil
}

func (m *mockStore) DetachReview(_ context.Context, campgroundID, reviewID string) error {
	ids := m.memberships[campgroundID]
	for i, id := range ids {
		if id == reviewID {
			m.memberships[campgroundID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockStore) CreateReview(_ context.Context, review *model.Review) error {
	review.ID = m.id()
	stored := *review
	m.reviews[review.ID] = &stored
	return nil
}

func (m *mockStore) GetReviewByID(_ context.Context, id string) (*model.Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return nil, apperror.NotFound("review", id)
	}
	result := *r
	return &result, nil
}

func (m *mockStore) DeleteReview(_ context.Context, id string) error {
	if _, ok := m.reviews[id]; !ok {
		return apperror.NotFound("review", id)
	}
	delete(m.reviews, id)
	return nil
}

func (m *mockStore) CreateUser(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return apperror.Conflict("A user with the given username is already registered")
		}
	}
	user.ID = m.id()
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *u
	return &result, nil
}

func (m *mockStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func validCampgroundForm() CampgroundForm {
	return CampgroundForm{
		Title:       "Pine Ridge",
		Location:    "Boulder, CO",
		Image:       "https://x/y.jpg",
		Price:       "25",
		Description: "d",
	}
}

func seedUser(t *testing.T, store *mockStore, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}
