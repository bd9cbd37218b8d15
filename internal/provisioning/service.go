// Package provisioning creates dashboard logins and binds them to a
// reseller with an upstream access token.
package provisioning

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yabbit-au/reseller-dashboard-tui/internal/db"
	"github.com/yabbit-au/reseller-dashboard-tui/internal/logger"
)

// Store is the slice of the credential store the service consumes.
type Store interface {
	InsertLogin(ctx context.Context, login db.Login) error
	SaveResellerToken(ctx context.Context, loginID, resellerID, accessToken string) error
}

// Service provisions reseller credentials.
type Service struct {
	store Store
}

// New creates a provisioning service backed by store.
func New(store Store) *Service {
	return &Service{store: store}
}

// Result reports a completed provisioning run.
type Result struct {
	LoginID    string
	Email      string
	ResellerID string
}

// CreateLogin registers a new login identity and returns its generated ID.
// The password is stored as a digest, never in the clear.
func (s *Service) CreateLogin(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("email is required")
	}
	if password == "" {
		return "", fmt.Errorf("password is required")
	}

	login := db.Login{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hashPassword(password),
	}
	if err := s.store.InsertLogin(ctx, login); err != nil {
		return "", fmt.Errorf("failed to create login: %w", err)
	}
	return login.ID, nil
}

// Provision runs the full credential flow: create the login, then bind it
// to the reseller with its upstream access token. The two steps run in
// order with no retry; a failure in the first step means the second is
// never attempted, and a failure in the second leaves the login in place
// for a later re-run.
func (s *Service) Provision(ctx context.Context, email, password, resellerID, accessToken string) (*Result, error) {
	resellerID = strings.TrimSpace(resellerID)
	if resellerID == "" {
		return nil, fmt.Errorf("reseller ID is required")
	}
	if accessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}

	loginID, err := s.CreateLogin(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveResellerToken(ctx, loginID, resellerID, accessToken); err != nil {
		return nil, fmt.Errorf("login %s created but token binding failed: %w", loginID, err)
	}

	logger.Info("provisioned reseller credentials",
		"login_id", loginID, "reseller", resellerID)

	return &Result{LoginID: loginID, Email: strings.TrimSpace(email), ResellerID: resellerID}, nil
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
