package commands

import (
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/gridserpent/engine/score"
	"github.com/gridserpent/engine/score/filestore"
	"github.com/gridserpent/engine/score/redis"
	"github.com/gridserpent/engine/score/sqlstore"
)

var (
	storeBackend     = "file"
	storeBackendArgs = ""
)

// openStore builds the score store named by the backend flags. The returned
// func closes the store if the backend holds resources.
func openStore() (score.Store, func()) {
	var store score.Store
	var err error
	switch storeBackend {
	case "inmem":
		store = score.InMemStore()
	case "file":
		store = filestore.NewFileStore(storeBackendArgs)
	case "redis":
		store, err = redis.NewStore(storeBackendArgs)
	case "sql":
		store, err = sqlstore.NewSQLStore(storeBackendArgs)
	default:
		log.WithField("backend", storeBackend).Fatal("invalid backend")
	}
	if err != nil {
		log.WithError(err).
			WithField("backend", storeBackend).
			Fatal("unable to open score store")
	}

	closer := func() {
		if c, ok := store.(io.Closer); ok {
			if err := c.Close(); err != nil {
				log.WithError(err).Error("unable to close store")
			}
		}
	}
	return score.InstrumentStore(store), closer
}
