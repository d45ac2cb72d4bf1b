package bootstrap

import (
	badger "github.com/dgraph-io/badger/v4"
)

// InitBadger opens the on-disk document cache. Badger's own logger is
// silenced; cache activity is reported through the application logger.
func InitBadger(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	return badger.Open(opts)
}
