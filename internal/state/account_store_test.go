package state

import (
	"context"
	"testing"

	"github.com/feedkit/feedkit/internal/apperrors"
	"github.com/feedkit/feedkit/internal/logger"
	"github.com/feedkit/feedkit/internal/service"
	"github.com/feedkit/feedkit/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAccountSyncer struct {
	profile    models.Account
	stale      bool
	profileErr error
	logoutErr  error

	profileCalls int
	logoutCalls  int
}

func (s *stubAccountSyncer) Profile(context.Context) (service.ProfileResult, error) {
	s.profileCalls++
	if s.profileErr != nil {
		return service.ProfileResult{}, s.profileErr
	}
	return service.ProfileResult{Account: s.profile, Stale: s.stale}, nil
}

func (s *stubAccountSyncer) Login(context.Context, string, string) (models.Session, error) {
	return models.Session{}, nil
}

func (s *stubAccountSyncer) Register(context.Context, models.Registration) (models.Account, error) {
	return models.Account{}, nil
}

func (s *stubAccountSyncer) Logout(context.Context) error {
	s.logoutCalls++
	return s.logoutErr
}

type captureReporter struct {
	reported []error
}

func (r *captureReporter) Report(err error) {
	r.reported = append(r.reported, err)
}

func TestAccountStore_LoadsProfileOnConstruction(t *testing.T) {
	syncer := &stubAccountSyncer{profile: models.Account{ID: 42, Name: "Alice"}}

	s := NewAccountStore(context.Background(), syncer, nil, logger.Nop())
	defer s.Close()

	account, err := s.Account()
	require.NoError(t, err)
	assert.Equal(t, "Alice", account.Name)

	stale, err := s.Stale()
	require.NoError(t, err)
	assert.False(t, stale)
}

func TestAccountStore_InitialLoadFailureIsReportedNotFatal(t *testing.T) {
	syncer := &stubAccountSyncer{profileErr: apperrors.Network()}
	reporter := &captureReporter{}

	s := NewAccountStore(context.Background(), syncer, reporter, logger.Nop())
	defer s.Close()

	require.Len(t, reporter.reported, 1)
	assert.True(t, apperrors.IsNetwork(reporter.reported[0]))

	_, err := s.Account()
	assert.ErrorIs(t, err, ErrNoAccount)
}

func TestAccountStore_StaleProfileFromCache(t *testing.T) {
	syncer := &stubAccountSyncer{profile: models.Account{ID: 42}, stale: true}

	s := NewAccountStore(context.Background(), syncer, nil, logger.Nop())
	defer s.Close()

	stale, err := s.Stale()
	require.NoError(t, err)
	assert.True(t, stale)
}

func TestAccountStore_RefreshReplacesProfile(t *testing.T) {
	syncer := &stubAccountSyncer{profile: models.Account{ID: 42, Name: "Alice"}}

	s := NewAccountStore(context.Background(), syncer, nil, logger.Nop())
	defer s.Close()

	syncer.profile = models.Account{ID: 42, Name: "Alice Updated"}
	require.NoError(t, s.Refresh(context.Background()))

	account, err := s.Account()
	require.NoError(t, err)
	assert.Equal(t, "Alice Updated", account.Name)
}

func TestAccountStore_LogoutDropsProfile(t *testing.T) {
	syncer := &stubAccountSyncer{profile: models.Account{ID: 42}}

	s := NewAccountStore(context.Background(), syncer, nil, logger.Nop())
	defer s.Close()

	require.NoError(t, s.Logout(context.Background()))
	assert.Equal(t, 1, syncer.logoutCalls)

	_, err := s.Account()
	assert.ErrorIs(t, err, ErrNoAccount)
}

func TestAccountStore_LogoutFailureKeepsProfile(t *testing.T) {
	syncer := &stubAccountSyncer{
		profile:   models.Account{ID: 42},
		logoutErr: apperrors.Unknown(),
	}

	s := NewAccountStore(context.Background(), syncer, nil, logger.Nop())
	defer s.Close()

	require.Error(t, s.Logout(context.Background()))

	_, err := s.Account()
	assert.NoError(t, err, "a failed logout must not drop the loaded profile")
}

func TestAccountStore_ZeroValueFailsWithNotInitialized(t *testing.T) {
	var s AccountStore

	_, err := s.Account()
	assert.ErrorIs(t, err, ErrNotInitialized)

	assert.ErrorIs(t, s.Refresh(context.Background()), ErrNotInitialized)
	assert.ErrorIs(t, s.Logout(context.Background()), ErrNotInitialized)
}

func TestAccountStore_NilReceiverFailsWithNotInitialized(t *testing.T) {
	var s *AccountStore

	_, err := s.Account()
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestAccountStore_ClosedFailsWithStoreClosed(t *testing.T) {
	syncer := &stubAccountSyncer{profile: models.Account{ID: 42}}

	s := NewAccountStore(context.Background(), syncer, nil, logger.Nop())
	s.Close()

	_, err := s.Account()
	assert.ErrorIs(t, err, ErrStoreClosed)
}
