// Package db manages the local identity and token store.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"
)

// DB wraps the SQL database connection with application-specific methods.
type DB struct {
	*sql.DB
	path string
}

// Login is a dashboard login identity created by the provisioning flow.
type Login struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// ResellerToken associates a login with a reseller and its upstream
// access token. CreatedAt is assigned by the store, not the caller.
type ResellerToken struct {
	LoginID     string
	ResellerID  string
	AccessToken string
	CreatedAt   time.Time
}

// New creates a new database connection and initializes the schema.
func New(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.PingContext(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{
		DB:   sqlDB,
		path: path,
	}

	if err := db.configure(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	if err := db.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// configure sets up database pragmas.
func (db *DB) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	return nil
}

func (db *DB) createSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS logins (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS reseller_tokens (
		login_id TEXT PRIMARY KEY REFERENCES logins(id),
		reseller_id TEXT NOT NULL,
		access_token TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_reseller_tokens_reseller
		ON reseller_tokens(reseller_id);
	`

	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// InsertLogin stores a new login identity.
func (db *DB) InsertLogin(ctx context.Context, login Login) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO logins (id, email, password_hash) VALUES (?, ?, ?)`,
		login.ID, login.Email, login.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to insert login: %w", err)
	}
	return nil
}

// GetLoginByEmail looks up a login identity by email. Returns
// sql.ErrNoRows wrapped when no such login exists.
func (db *DB) GetLoginByEmail(ctx context.Context, email string) (*Login, error) {
	row := db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM logins WHERE email = ?`, email)

	var login Login
	if err := row.Scan(&login.ID, &login.Email, &login.PasswordHash, &login.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to look up login %s: %w", email, err)
	}
	return &login, nil
}

// SaveResellerToken persists the reseller association and upstream access
// token for a login, keyed by the login identity. Re-provisioning the same
// login replaces the existing record. The creation timestamp is
// server-assigned.
func (db *DB) SaveResellerToken(ctx context.Context, loginID, resellerID, accessToken string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO reseller_tokens (login_id, reseller_id, access_token)
		 VALUES (?, ?, ?)
		 ON CONFLICT(login_id) DO UPDATE SET
			reseller_id = excluded.reseller_id,
			access_token = excluded.access_token,
			created_at = CURRENT_TIMESTAMP`,
		loginID, resellerID, accessToken)
	if err != nil {
		return fmt.Errorf("failed to save reseller token: %w", err)
	}
	return nil
}

// GetResellerToken retrieves the token record for a login.
func (db *DB) GetResellerToken(ctx context.Context, loginID string) (*ResellerToken, error) {
	row := db.QueryRowContext(ctx,
		`SELECT login_id, reseller_id, access_token, created_at
		 FROM reseller_tokens WHERE login_id = ?`, loginID)

	var token ResellerToken
	if err := row.Scan(&token.LoginID, &token.ResellerID, &token.AccessToken, &token.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to look up token for %s: %w", loginID, err)
	}
	return &token, nil
}
