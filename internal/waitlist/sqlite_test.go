package waitlist

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "waitlist.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_SaveAssignsID(t *testing.T) {
	store := newTestStore(t)

	signup := &Signup{Email: "first@example.com"}
	if err := store.SaveSignup(context.Background(), signup); err != nil {
		t.Fatalf("SaveSignup: %v", err)
	}

	if signup.ID == 0 {
		t.Error("Expected SaveSignup to assign an ID")
	}
	if signup.CreatedAt.IsZero() {
		t.Error("Expected SaveSignup to set CreatedAt")
	}
}

func TestSQLiteStore_ListNewestFirst(t *testing.T) {
	store := newTestStore(t)

	for _, email := range []string{"first@example.com", "second@example.com", "third@example.com"} {
		if err := store.SaveSignup(context.Background(), &Signup{Email: email}); err != nil {
			t.Fatalf("SaveSignup(%s): %v", email, err)
		}
	}

	signups, err := store.ListSignups(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListSignups: %v", err)
	}

	if len(signups) != 3 {
		t.Fatalf("Expected 3 signups, got %d", len(signups))
	}
	if signups[0].Email != "third@example.com" {
		t.Errorf("Expected newest signup first, got %q", signups[0].Email)
	}
	if signups[2].Email != "first@example.com" {
		t.Errorf("Expected oldest signup last, got %q", signups[2].Email)
	}
}

func TestSQLiteStore_ListLimit(t *testing.T) {
	store := newTestStore(t)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		if err := store.SaveSignup(context.Background(), &Signup{Email: email}); err != nil {
			t.Fatalf("SaveSignup(%s): %v", email, err)
		}
	}

	signups, err := store.ListSignups(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListSignups: %v", err)
	}

	if len(signups) != 2 {
		t.Errorf("Expected limit of 2 signups, got %d", len(signups))
	}
}

func TestSQLiteStore_DuplicateEmail(t *testing.T) {
	store := newTestStore(t)

	if err := store.SaveSignup(context.Background(), &Signup{Email: "user@example.com"}); err != nil {
		t.Fatalf("first SaveSignup: %v", err)
	}

	err := store.SaveSignup(context.Background(), &Signup{Email: "user@example.com"})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("Expected ErrDuplicateEmail, got %v", err)
	}
}

func TestSQLiteStore_DuplicateEmailCaseInsensitive(t *testing.T) {
	store := newTestStore(t)

	if err := store.SaveSignup(context.Background(), &Signup{Email: "user@example.com"}); err != nil {
		t.Fatalf("first SaveSignup: %v", err)
	}

	err := store.SaveSignup(context.Background(), &Signup{Email: "User@Example.COM"})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("Expected case-insensitive duplicate detection, got %v", err)
	}
}

func TestSQLiteStore_Count(t *testing.T) {
	store := newTestStore(t)

	count, err := store.CountSignups(context.Background())
	if err != nil {
		t.Fatalf("CountSignups: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected empty store, got %d", count)
	}

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if err := store.SaveSignup(context.Background(), &Signup{Email: email}); err != nil {
			t.Fatalf("SaveSignup(%s): %v", email, err)
		}
	}

	count, err = store.CountSignups(context.Background())
	if err != nil {
		t.Fatalf("CountSignups: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 signups, got %d", count)
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waitlist.db")

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := store.SaveSignup(context.Background(), &Signup{Email: "user@example.com"}); err != nil {
		t.Fatalf("SaveSignup: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	count, err := reopened.CountSignups(context.Background())
	if err != nil {
		t.Fatalf("CountSignups: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected signup to survive reopen, got count %d", count)
	}
}
