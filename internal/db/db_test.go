package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := New(filepath.Join(t.TempDir(), "credentials.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return database
}

func TestInsertAndGetLogin(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	login := Login{ID: "login-1", Email: "admin@example.com", PasswordHash: "abcd"}
	if err := database.InsertLogin(ctx, login); err != nil {
		t.Fatalf("InsertLogin failed: %v", err)
	}

	got, err := database.GetLoginByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("GetLoginByEmail failed: %v", err)
	}
	if got.ID != "login-1" || got.PasswordHash != "abcd" {
		t.Errorf("unexpected login record: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected server-assigned created_at")
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	if err := database.InsertLogin(ctx, Login{ID: "a", Email: "dup@example.com", PasswordHash: "x"}); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if err := database.InsertLogin(ctx, Login{ID: "b", Email: "dup@example.com", PasswordHash: "y"}); err == nil {
		t.Error("expected duplicate email to be rejected")
	}
}

func TestGetLoginByEmailMissing(t *testing.T) {
	database := newTestDB(t)

	_, err := database.GetLoginByEmail(context.Background(), "missing@example.com")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestSaveAndGetResellerToken(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	if err := database.InsertLogin(ctx, Login{ID: "login-1", Email: "a@example.com", PasswordHash: "x"}); err != nil {
		t.Fatalf("InsertLogin failed: %v", err)
	}
	if err := database.SaveResellerToken(ctx, "login-1", "reseller-9", "nss_token"); err != nil {
		t.Fatalf("SaveResellerToken failed: %v", err)
	}

	token, err := database.GetResellerToken(ctx, "login-1")
	if err != nil {
		t.Fatalf("GetResellerToken failed: %v", err)
	}
	if token.ResellerID != "reseller-9" || token.AccessToken != "nss_token" {
		t.Errorf("unexpected token record: %+v", token)
	}
	if token.CreatedAt.IsZero() {
		t.Error("expected server-assigned created_at")
	}

	// Re-provisioning the same login replaces the record.
	if err := database.SaveResellerToken(ctx, "login-1", "reseller-2", "nss_other"); err != nil {
		t.Fatalf("second SaveResellerToken failed: %v", err)
	}
	token, err = database.GetResellerToken(ctx, "login-1")
	if err != nil {
		t.Fatalf("GetResellerToken failed: %v", err)
	}
	if token.ResellerID != "reseller-2" || token.AccessToken != "nss_other" {
		t.Errorf("expected replaced record, got %+v", token)
	}
}
