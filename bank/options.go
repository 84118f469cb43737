package bank

import (
	"time"

	"github.com/flow-hydraulics/flow-bank/datastore"
	log "github.com/sirupsen/logrus"
)

type Option func(*Bank)

// WithStore replaces the default text file store built from the config.
func WithStore(store datastore.Store) Option {
	return func(b *Bank) {
		b.store = store
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(b *Bank) {
		b.logger = logger
	}
}

// WithClock sets the time source used to stamp journal entries.
func WithClock(now func() time.Time) Option {
	return func(b *Bank) {
		b.now = now
	}
}
