package store

import (
	"context"
	"fmt"

	"github.com/feedkit/feedkit/internal/config"
	"github.com/feedkit/feedkit/internal/logger"
)

// ClientStorages groups every local cache repository into a single value the
// sync layer can be handed.
type ClientStorages struct {
	Posts       PostRepository
	Accounts    AccountRepository
	Comments    CommentRepository
	Credentials *CredentialRepository
}

// NewClientStorages initialises the local cache: it opens the SQLite file
// from cfg.DB.DSN (creating it when absent), runs pending migrations, and
// wires the per-entity repositories.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("opening local cache...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Posts:       NewPostRepository(db, logger),
		Accounts:    NewAccountRepository(db, logger),
		Comments:    NewCommentRepository(db, logger),
		Credentials: NewCredentialRepository(db, logger),
	}, nil
}
