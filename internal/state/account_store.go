package state

import (
	"context"
	"sync"

	"github.com/feedkit/feedkit/internal/logger"
	"github.com/feedkit/feedkit/internal/service"
	"github.com/feedkit/feedkit/models"
)

// Reporter receives initialization-time failures that must not crash the
// host UI. Crash-reporting integrations implement it; LogReporter is the
// default.
type Reporter interface {
	Report(err error)
}

// LogReporter reports errors to the application log.
type LogReporter struct {
	Logger *logger.Logger
}

// Report implements Reporter.
func (r LogReporter) Report(err error) {
	r.Logger.Error().Err(err).Msg("account store initialization failure")
}

// AccountStore is the observable projection of the authenticated account.
// A zero-value AccountStore fails every operation with ErrNotInitialized.
type AccountStore struct {
	syncer   service.AccountSyncService
	reporter Reporter
	logger   *logger.Logger

	mu          sync.Mutex
	initialized bool
	closed      bool
	account     *models.Account
	stale       bool
}

// NewAccountStore constructs the store and attempts to load the profile
// through the orchestrator. A transport failure during this initial load is
// routed to reporter instead of being returned, so application bootstrap
// never crashes on a flaky network; the store simply starts without an
// account.
func NewAccountStore(ctx context.Context, syncer service.AccountSyncService, reporter Reporter, log *logger.Logger) *AccountStore {
	if reporter == nil {
		reporter = LogReporter{Logger: log}
	}

	s := &AccountStore{
		syncer:      syncer,
		reporter:    reporter,
		logger:      log,
		initialized: true,
	}

	res, err := syncer.Profile(ctx)
	if err != nil {
		reporter.Report(err)
		return s
	}

	s.account = &res.Account
	s.stale = res.Stale
	return s
}

func (s *AccountStore) ensureLive() error {
	if s == nil {
		return ErrNotInitialized
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return ErrNotInitialized
	}
	if s.closed {
		return ErrStoreClosed
	}
	return nil
}

// Account returns the loaded profile, or ErrNoAccount when none is present.
func (s *AccountStore) Account() (models.Account, error) {
	if err := s.ensureLive(); err != nil {
		return models.Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account == nil {
		return models.Account{}, ErrNoAccount
	}
	return *s.account, nil
}

// Stale reports whether the loaded profile came from the cache without
// remote confirmation.
func (s *AccountStore) Stale() (bool, error) {
	if err := s.ensureLive(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stale, nil
}

// Refresh re-resolves the profile through the orchestrator.
func (s *AccountStore) Refresh(ctx context.Context) error {
	if err := s.ensureLive(); err != nil {
		return err
	}

	res, err := s.syncer.Profile(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.account = &res.Account
	s.stale = res.Stale
	return nil
}

// Logout clears the credential and local caches through the orchestrator
// and drops the in-memory projection.
func (s *AccountStore) Logout(ctx context.Context) error {
	if err := s.ensureLive(); err != nil {
		return err
	}

	if err := s.syncer.Logout(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = nil
	s.stale = false
	return nil
}

// Close tears the store down; later operations fail with ErrStoreClosed.
func (s *AccountStore) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
