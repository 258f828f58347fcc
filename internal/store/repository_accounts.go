package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/feedkit/feedkit/internal/logger"
	"github.com/feedkit/feedkit/models"
)

type accountRepository struct {
	*DB
	logger *logger.Logger
}

// NewAccountRepository wires the SQLite-backed account cache.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	return &accountRepository{DB: db, logger: logger}
}

func (r *accountRepository) Get(ctx context.Context, id int64) (models.Account, error) {
	row := r.DB.QueryRowContext(ctx, getSingleAccount, id)
	return r.scanOne(row, fmt.Sprintf("id=%d", id))
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (models.Account, error) {
	row := r.DB.QueryRowContext(ctx, getAccountByEmail, email)
	return r.scanOne(row, "email="+email)
}

func (r *accountRepository) scanOne(row *sql.Row, ref string) (models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.AvatarURL,
		&account.Role,
		&account.Verified,
		&account.Street,
		&account.City,
		&account.State,
		&account.ZipCode,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrNotFound
		}
		r.logger.Err(err).
			Str("func", "accountRepository.scanOne").
			Str("ref", ref).
			Msg("failed to read cached account")
		return models.Account{}, fmt.Errorf("failed to read cached account (%s): %w", ref, err)
	}

	return account, nil
}

func (r *accountRepository) Upsert(ctx context.Context, accounts ...models.Account) error {
	for _, account := range accounts {
		_, err := r.DB.ExecContext(ctx, upsertAccount,
			account.ID,
			account.Name,
			account.Email,
			account.AvatarURL,
			account.Role,
			account.Verified,
			account.Street,
			account.City,
			account.State,
			account.ZipCode,
			account.CreatedAt,
			account.UpdatedAt,
		)
		if err != nil {
			r.logger.Err(err).
				Str("func", "accountRepository.Upsert").
				Int64("account_id", account.ID).
				Msg("failed to upsert cached account")
			return fmt.Errorf("failed to upsert cached account (id=%d): %w", account.ID, err)
		}
	}

	return nil
}

func (r *accountRepository) Clear(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, clearAccounts); err != nil {
		return fmt.Errorf("failed to clear account cache: %w", err)
	}
	return nil
}
