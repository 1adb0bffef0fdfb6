package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sakif/gocamp/internal/apperror"
	"github.com/sakif/gocamp/internal/model"
)

// mockUserRepo is a minimal in-memory UserRepository for middleware tests.
type mockUserRepo struct {
	users map[string]*model.User
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *model.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	return user, nil
}

func (m *mockUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestCurrentUser_BindsUserFromValidSession(t *testing.T) {
	sessions := newTestSessionService(t)
	repo := &mockUserRepo{users: map[string]*model.User{
		"u1": {ID: "u1", Username: "colt"},
	}}

	token, err := sessions.Issue("u1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	var got *model.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = UserFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/campgrounds", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	CurrentUser(sessions, repo)(next).ServeHTTP(httptest.NewRecorder(), req)

	if got == nil || got.Username != "colt" {
		t.Errorf("CurrentUser did not bind the user, got %v", got)
	}
}

func TestCurrentUser_AnonymousOnInvalidToken(t *testing.T) {
	sessions := newTestSessionService(t)
	repo := &mockUserRepo{users: map[string]*model.User{}}

	var ok bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = UserFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/campgrounds", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "garbage"})

	rec := httptest.NewRecorder()
	CurrentUser(sessions, repo)(next).ServeHTTP(rec, req)

	if ok {
		t.Error("invalid session token should leave the request anonymous")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("invalid session token should not block the request, status = %d", rec.Code)
	}
}

// A session for a since-deleted account degrades to anonymous.
func TestCurrentUser_AnonymousWhenUserGone(t *testing.T) {
	sessions := newTestSessionService(t)
	repo := &mockUserRepo{users: map[string]*model.User{}}

	token, err := sessions.Issue("deleted-user")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	var ok bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = UserFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/campgrounds", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	CurrentUser(sessions, repo)(next).ServeHTTP(httptest.NewRecorder(), req)

	if ok {
		t.Error("session for a deleted user should be anonymous")
	}
}

func TestRequireLogin_RedirectsAnonymousAndRecordsReturnTo(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run for anonymous requests")
	})

	req := httptest.NewRequest(http.MethodGet, "/campgrounds/new", nil)
	rec := httptest.NewRecorder()
	RequireLogin(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect location = %q, want /login", loc)
	}

	returnTo := cookieByName(rec.Result().Cookies(), ReturnToCookieName)
	if returnTo == nil || returnTo.Value != "/campgrounds/new" {
		t.Errorf("return-to cookie = %v, want /campgrounds/new", returnTo)
	}
}

func TestRequireLogin_PassesAuthenticated(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	user := &model.User{ID: "u1", Username: "colt"}
	req := httptest.NewRequest(http.MethodGet, "/campgrounds/new", nil)
	req = req.WithContext(context.WithValue(req.Context(), currentUserKey, user))

	RequireLogin(next).ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Error("handler should run for authenticated requests")
	}
}

func TestPopReturnTo_SingleUseAndSiteRelativeOnly(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"relative path", "/campgrounds/abc/edit", "/campgrounds/abc/edit"},
		{"absolute URL rejected", "https://evil.example/phish", ""},
		{"protocol-relative rejected", "//evil.example", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/login", nil)
			req.AddCookie(&http.Cookie{Name: ReturnToCookieName, Value: tt.value})

			rec := httptest.NewRecorder()
			if got := PopReturnTo(rec, req); got != tt.want {
				t.Errorf("PopReturnTo() = %q, want %q", got, tt.want)
			}

			// The cookie is cleared either way.
			cleared := cookieByName(rec.Result().Cookies(), ReturnToCookieName)
			if cleared == nil || cleared.MaxAge != -1 {
				t.Error("PopReturnTo() should clear the cookie")
			}
		})
	}
}
