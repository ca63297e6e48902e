package cmd

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/viper"

	"github.com/headcheck/headcheck/internal/waitlist"
)

func seedSignups(t *testing.T, dbPath string, emails ...string) {
	t.Helper()

	store, err := waitlist.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			t.Fatalf("failed to close store: %v", err)
		}
	}()

	for _, email := range emails {
		if err := store.SaveSignup(context.Background(), &waitlist.Signup{Email: email}); err != nil {
			t.Fatalf("failed to seed signup %s: %v", email, err)
		}
	}
}

func resetWaitlistCommandState(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		viper.Reset()
		cfgFile = ""
		*cliConfig = *newCLIConfig()
		resetFlagForTest(t, waitlistCmd.PersistentFlags(), "db", "")
		rootCmd.SetArgs(nil)
	})

	// Point viper at a file that does not exist so the host config is ignored.
	cfgFile = filepath.Join(t.TempDir(), "no-config.yaml")
}

func TestWaitlistCountCommand(t *testing.T) {
	resetWaitlistCommandState(t)

	dbPath := filepath.Join(t.TempDir(), "waitlist.db")
	seedSignups(t, dbPath, "a@example.com", "b@example.com")

	rootCmd.SetArgs([]string{"waitlist", "count", "--db", dbPath})
	output := captureStdout(t, func() {
		if err := rootCmd.Execute(); err != nil {
			t.Errorf("waitlist count failed: %v", err)
		}
	})

	if strings.TrimSpace(output) != "2" {
		t.Fatalf("expected count 2, got %q", output)
	}
}

func TestWaitlistListCommand(t *testing.T) {
	resetWaitlistCommandState(t)

	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = original })

	dbPath := filepath.Join(t.TempDir(), "waitlist.db")
	seedSignups(t, dbPath, "first@example.com", "second@example.com")

	rootCmd.SetArgs([]string{"waitlist", "list", "--db", dbPath})
	output := captureStdout(t, func() {
		if err := rootCmd.Execute(); err != nil {
			t.Errorf("waitlist list failed: %v", err)
		}
	})

	if !strings.Contains(output, "EMAIL") || !strings.Contains(output, "SIGNED UP") {
		t.Fatalf("expected table header, got %q", output)
	}
	if !strings.Contains(output, "first@example.com") || !strings.Contains(output, "second@example.com") {
		t.Fatalf("expected seeded signups in output, got %q", output)
	}
}

func TestWaitlistCountRequiresDatabase(t *testing.T) {
	resetWaitlistCommandState(t)

	rootCmd.SetArgs([]string{"waitlist", "count"})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected error when no database is configured")
	}
	if !strings.Contains(err.Error(), "--db is required") {
		t.Fatalf("unexpected error message: %q", err.Error())
	}
}

func TestPrintSignupTableEmpty(t *testing.T) {
	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = original })

	output := captureStdout(t, func() {
		printSignupTable(nil)
	})

	if !strings.Contains(output, "No signups collected yet.") {
		t.Fatalf("expected empty message, got %q", output)
	}
}

func TestPrintSignupTableRows(t *testing.T) {
	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = original })

	signups := []waitlist.Signup{
		{ID: 2, Email: "b@example.com", SourceURL: "https://example.com", CreatedAt: time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)},
		{ID: 1, Email: "a@example.com", CreatedAt: time.Date(2026, 8, 19, 18, 0, 0, 0, time.UTC)},
	}

	output := captureStdout(t, func() {
		printSignupTable(signups)
	})

	if !strings.Contains(output, "b@example.com") || !strings.Contains(output, "https://example.com") {
		t.Fatalf("expected signup with source URL, got %q", output)
	}
	if !strings.Contains(output, "2026-08-20 09:30") {
		t.Fatalf("expected formatted signup time, got %q", output)
	}
	// Missing source URLs render as a dash.
	if !strings.Contains(output, "-") {
		t.Fatalf("expected placeholder for missing source, got %q", output)
	}
}
