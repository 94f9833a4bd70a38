// Package ignite provides a log-structured key/value data store following
// the Bitcask model: an append-only log on disk backed by an in-memory
// index mapping each live key to the exact byte range of its latest
// record. It is designed for applications requiring fast read and write
// operations, such as caching, session management, and real-time data
// processing, aiming to provide a simple, efficient, and reliable solution
// for embedded storage in Go applications.
package ignite

import (
	"github.com/iamNilotpal/ignite/internal/engine"
	"github.com/iamNilotpal/ignite/pkg/logger"
	"github.com/iamNilotpal/ignite/pkg/options"
)

// Instance is the primary entry point for interacting with the Ignite
// store. It encapsulates the core engine responsible for data handling and
// the configuration options for this specific database instance.
type Instance struct {
	engine  *engine.Engine
	options *options.Options
}

// Open creates and initializes a new Ignite store for the given service,
// applying opts over the package defaults.
func Open(service string, opts ...options.OptionFunc) (*Instance, error) {
	log := logger.New(service)

	o := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	eng, err := engine.Open(&engine.Config{Logger: log, Options: &o})
	if err != nil {
		return nil, err
	}

	return &Instance{engine: eng, options: &o}, nil
}

// Put stores value under key. If key already exists, its value is
// overwritten.
func (i *Instance) Put(key []byte, value []byte) error {
	return i.engine.Put(key, value)
}

// Get retrieves the value associated with key.
func (i *Instance) Get(key []byte) ([]byte, error) {
	return i.engine.Get(key)
}

// Delete removes key from the store, appending a tombstone record to the
// log.
func (i *Instance) Delete(key []byte) error {
	return i.engine.Delete(key)
}

// Sync forces the active segment to durable storage.
func (i *Instance) Sync() error {
	return i.engine.Sync()
}

// Close gracefully shuts down the Ignite instance, releasing all file
// handles and the directory lock.
func (i *Instance) Close() error {
	return i.engine.Close()
}
