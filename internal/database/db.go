// Package database builds the store bindings for one process lifetime. The
// offline flag in the configuration decides the active store exactly once;
// nothing downstream ever re-checks it.
package database

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/famsdev/fams_backend/internal/config"
	"github.com/famsdev/fams_backend/internal/store"
	"github.com/famsdev/fams_backend/internal/store/localstore"
	"github.com/famsdev/fams_backend/internal/store/remotestore"
)

// Stores holds the process-wide store handles. Active is what every entity
// service binds to. Remote is nil in offline mode; Local always exists
// because the mirror is also the sync engine's flush source.
type Stores struct {
	Active store.Store
	Local  *localstore.Store
	Remote *remotestore.Store
}

// Open connects the local mirror and, in online mode, the remote database.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Stores, error) {
	local, err := localstore.Open(cfg.SQLitePath)
	if err != nil {
		return nil, err
	}

	if cfg.Offline {
		log.Info().Str("path", cfg.SQLitePath).Msg("offline mode, bound to local store")
		return &Stores{Active: local, Local: local}, nil
	}

	remote, err := remotestore.Connect(ctx, remotestore.Config{
		URL:       cfg.SurrealURL,
		Namespace: cfg.SurrealNamespace,
		Database:  cfg.SurrealDatabase,
		Username:  cfg.SurrealUser,
		Password:  cfg.SurrealPassword,
	})
	if err != nil {
		local.Close()
		return nil, err
	}
	log.Info().Str("url", cfg.SurrealURL).Msg("online mode, bound to remote store")
	return &Stores{Active: remote, Local: local, Remote: remote}, nil
}

// Close releases both connections.
func (s *Stores) Close() {
	if s.Remote != nil {
		s.Remote.Close()
	}
	if s.Local != nil {
		s.Local.Close()
	}
}
