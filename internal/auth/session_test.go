package auth

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-at-least-16-chars"

func newTestSessionService(t *testing.T) *SessionService {
	t.Helper()
	s, err := NewSessionService(testSecret)
	if err != nil {
		t.Fatalf("NewSessionService() error = %v", err)
	}
	return s
}

func TestNewSessionService_RejectsShortSecret(t *testing.T) {
	if _, err := NewSessionService("short"); err == nil {
		t.Error("NewSessionService() should reject secrets under 16 characters")
	}
}

func TestIssueAndValidate_RoundTrip(t *testing.T) {
	s := newTestSessionService(t)

	token, err := s.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	userID, err := s.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if userID != "user-123" {
		t.Errorf("Validate() userID = %q, want %q", userID, "user-123")
	}
}

func TestValidate_ExpiredToken(t *testing.T) {
	s := newTestSessionService(t)

	token, err := s.IssueWithDuration("user-123", -time.Minute)
	if err != nil {
		t.Fatalf("IssueWithDuration() error = %v", err)
	}

	if _, err := s.Validate(token); err == nil {
		t.Error("Validate() should reject an expired token")
	}
}

func TestValidate_TamperedToken(t *testing.T) {
	s := newTestSessionService(t)

	token, err := s.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Flip a character in the payload section.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := s.Validate(tampered); err == nil {
		t.Error("Validate() should reject a tampered token")
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	s := newTestSessionService(t)

	other, err := NewSessionService("a-completely-different-secret")
	if err != nil {
		t.Fatalf("NewSessionService() error = %v", err)
	}

	token, err := other.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := s.Validate(token); err == nil {
		t.Error("Validate() should reject a token signed with a different secret")
	}
}
