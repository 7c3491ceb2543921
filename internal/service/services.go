// Package service contains the business rules of the quickflicks server:
// account lifecycle, session issuance and validation, the per-account movie
// shelf and the catalog search facade. Handlers talk only to the interfaces
// in this package; repositories never leak past it.
package service

import (
	"github.com/quickflicks/quickflicks/internal/config"
	"github.com/quickflicks/quickflicks/internal/logger"
	"github.com/quickflicks/quickflicks/internal/store"
)

// Services aggregates every service behind its interface so the handler
// layer receives one dependency.
type Services struct {
	Auth     Auth
	Sessions Sessions
	Shelf    Shelf
	Catalog  Catalog
}

// NewServices wires the services onto the repositories. The catalog client
// is constructed elsewhere and passed in because it talks to the network,
// not to storage.
func NewServices(cfg config.App, storages *store.Storages, catalog Catalog, notifier Notifier, log *logger.Logger) *Services {
	return &Services{
		Auth: NewAuthService(
			storages.AccountRepository,
			storages.SessionRepository,
			storages.ResetTokenRepository,
			notifier,
			cfg.ResetTokenTTL,
			log,
		),
		Sessions: NewSessionService(storages.SessionRepository, cfg.SessionTTL, log),
		Shelf:    NewShelfService(storages.ShelfRepository, log),
		Catalog:  catalog,
	}
}
