package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/feedkit/feedkit/internal/adapter"
	"github.com/feedkit/feedkit/internal/apperrors"
	"github.com/feedkit/feedkit/internal/connectivity"
	"github.com/feedkit/feedkit/internal/logger"
	"github.com/feedkit/feedkit/internal/store"
	"github.com/feedkit/feedkit/models"
	"golang.org/x/sync/singleflight"
)

type accountSyncService struct {
	storages *store.ClientStorages
	remote   adapter.RemoteRepository
	monitor  connectivity.Monitor
	logger   *logger.Logger

	group singleflight.Group
}

// NewAccountSyncService builds the account orchestrator.
func NewAccountSyncService(storages *store.ClientStorages, remote adapter.RemoteRepository, monitor connectivity.Monitor, log *logger.Logger) AccountSyncService {
	return &accountSyncService{
		storages: storages,
		remote:   remote,
		monitor:  monitor,
		logger:   log,
	}
}

func (s *accountSyncService) Profile(ctx context.Context) (ProfileResult, error) {
	v, err, _ := s.group.Do("profile", func() (any, error) {
		return s.fetchProfile(ctx)
	})
	if err != nil {
		return ProfileResult{}, err
	}
	return v.(ProfileResult), nil
}

func (s *accountSyncService) fetchProfile(ctx context.Context) (ProfileResult, error) {
	if !s.monitor.Online() {
		return s.serveCachedProfile(ctx, nil)
	}

	account, err := s.remote.Profile(ctx)
	if err != nil {
		if apperrors.Recoverable(err) {
			return s.serveCachedProfile(ctx, err)
		}
		return ProfileResult{}, err
	}

	if err = s.storages.Accounts.Upsert(ctx, account); err != nil {
		s.logger.Warn().Err(err).Int64("account_id", account.ID).Msg("failed to cache profile")
	}
	return ProfileResult{Account: account}, nil
}

func (s *accountSyncService) serveCachedProfile(ctx context.Context, remoteErr error) (ProfileResult, error) {
	accountID, err := s.storages.Credentials.AccountID()
	if err != nil {
		if remoteErr != nil {
			return ProfileResult{}, remoteErr
		}
		return ProfileResult{}, apperrors.Clientf("no authenticated account: %v", err).WithCause(err)
	}

	account, err := s.storages.Accounts.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) && remoteErr != nil {
			return ProfileResult{}, remoteErr
		}
		if errors.Is(err, store.ErrNotFound) {
			return ProfileResult{}, apperrors.Network()
		}
		s.logger.Warn().Err(err).Msg("local account cache unavailable")
		return ProfileResult{}, apperrors.Clientf("local cache unavailable: %v", err).WithCause(err)
	}

	return ProfileResult{Account: account, Stale: true}, nil
}

func (s *accountSyncService) Login(ctx context.Context, email, password string) (models.Session, error) {
	if !s.monitor.Online() {
		return models.Session{}, apperrors.Network()
	}

	session, err := s.remote.Login(ctx, email, password)
	if err != nil {
		return models.Session{}, err
	}

	if err = s.storages.Accounts.Upsert(ctx, session.Account); err != nil {
		s.logger.Warn().Err(err).Int64("account_id", session.Account.ID).Msg("failed to cache logged-in account")
	}
	return session, nil
}

func (s *accountSyncService) Register(ctx context.Context, reg models.Registration) (models.Account, error) {
	if !s.monitor.Online() {
		return models.Account{}, apperrors.Network()
	}

	account, err := s.remote.Register(ctx, reg)
	if err != nil {
		return models.Account{}, err
	}

	if err = s.storages.Accounts.Upsert(ctx, account); err != nil {
		s.logger.Warn().Err(err).Int64("account_id", account.ID).Msg("failed to cache registered account")
	}
	return account, nil
}

// Logout clears the token and every local cache. Cache faults are collected
// rather than aborting: a half-cleared cache is still better than a kept
// one, and the caller learns about every failure at once.
func (s *accountSyncService) Logout(ctx context.Context) error {
	errs := []error{
		s.remote.Logout(ctx),
		s.storages.Posts.Clear(ctx),
		s.storages.Comments.Clear(ctx),
		s.storages.Accounts.Clear(ctx),
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("logout cleanup: %w", err)
	}

	s.logger.Info().Msg("logged out, local caches cleared")
	return nil
}
