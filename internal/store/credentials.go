package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/feedkit/feedkit/internal/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Fixed keys of the credentials key-value table.
const (
	credAuthToken = "auth_token"
	credDeviceID  = "device_id"
)

// CredentialRepository is the durable key-value store for the bearer token
// and the installation identifier. It satisfies the adapter's
// CredentialStore contract; construct one on app start, clear it on logout.
type CredentialRepository struct {
	*DB
	logger *logger.Logger

	mu sync.Mutex
}

// NewCredentialRepository wires the credential store.
func NewCredentialRepository(db *DB, logger *logger.Logger) *CredentialRepository {
	return &CredentialRepository{DB: db, logger: logger}
}

// Token returns the stored bearer token, or "" when not authenticated.
func (r *CredentialRepository) Token() (string, error) {
	return r.get(credAuthToken)
}

// SaveToken persists the bearer token under its fixed key.
func (r *CredentialRepository) SaveToken(token string) error {
	return r.put(credAuthToken, token)
}

// ClearToken removes the stored bearer token.
func (r *CredentialRepository) ClearToken() error {
	if _, err := r.DB.ExecContext(context.Background(), delCredential, credAuthToken); err != nil {
		return fmt.Errorf("failed to clear credential %q: %w", credAuthToken, err)
	}
	return nil
}

// DeviceID returns the stable installation identifier, minting and
// persisting a fresh UUID on first use.
func (r *CredentialRepository) DeviceID() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.get(credDeviceID)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}

	id = uuid.NewString()
	if err = r.put(credDeviceID, id); err != nil {
		return "", err
	}
	r.logger.Debug().Str("device_id", id).Msg("minted installation identifier")
	return id, nil
}

// AccountID extracts the authenticated account identifier from the stored
// token's "sub" claim. The token is parsed unverified: the client holds no
// signing key, the server remains the authority.
func (r *CredentialRepository) AccountID() (int64, error) {
	token, err := r.Token()
	if err != nil {
		return 0, err
	}
	if token == "" {
		return 0, ErrNotFound
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return 0, fmt.Errorf("parse stored token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("read token subject: %w", err)
	}

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse token subject %q: %w", sub, err)
	}
	return id, nil
}

func (r *CredentialRepository) get(key string) (string, error) {
	var value string
	err := r.DB.QueryRowContext(context.Background(), getCredential, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read credential %q: %w", key, err)
	}
	return value, nil
}

func (r *CredentialRepository) put(key, value string) error {
	if _, err := r.DB.ExecContext(context.Background(), putCredential, key, value); err != nil {
		return fmt.Errorf("failed to save credential %q: %w", key, err)
	}
	return nil
}
