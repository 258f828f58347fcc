package service

import (
	"github.com/feedkit/feedkit/internal/adapter"
	"github.com/feedkit/feedkit/internal/connectivity"
	"github.com/feedkit/feedkit/internal/logger"
	"github.com/feedkit/feedkit/internal/store"
)

// ClientServices groups the sync orchestrators for the application wiring.
type ClientServices struct {
	Posts   PostSyncService
	Account AccountSyncService
}

// NewClientServices wires the orchestrators over one shared local store,
// remote gateway, and connectivity monitor.
func NewClientServices(storages *store.ClientStorages, remote adapter.RemoteRepository, monitor connectivity.Monitor, log *logger.Logger) *ClientServices {
	return &ClientServices{
		Posts:   NewPostSyncService(storages, remote, monitor, log),
		Account: NewAccountSyncService(storages, remote, monitor, log),
	}
}
