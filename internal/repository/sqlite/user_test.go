package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/gocamp/internal/apperror"
	"github.com/sakif/gocamp/internal/model"
)

func TestCreateUser(t *testing.T) {
	db := newTestDB(t)

	user := &model.User{Username: "colt", Email: "colt@example.com", PasswordHash: "$2a$04$x"}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if user.ID == "" {
		t.Error("CreateUser() did not set an ID")
	}
}

// Username uniqueness is enforced by the database; the repository surfaces
// the constraint violation as a conflict, and no second row is created.
func TestCreateUser_DuplicateUsernameConflicts(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "colt")

	dup := &model.User{Username: "colt", Email: "other@example.com", PasswordHash: "y"}
	err := db.CreateUser(context.Background(), dup)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("CreateUser() duplicate error = %v, want ErrConflict", err)
	}

	existing, err := db.GetUserByUsername(context.Background(), "colt")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if existing.Email != "colt@example.com" {
		t.Errorf("original user was modified: email = %q", existing.Email)
	}
}

func TestGetUserByUsername(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "colt")

	got, err := db.GetUserByUsername(context.Background(), "colt")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetUserByUsername() id = %q, want %q", got.ID, created.ID)
	}
}

func TestGetUserByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetUserByID(context.Background(), "nonexistent")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetUserByID() error = %v, want ErrNotFound", err)
	}
}
