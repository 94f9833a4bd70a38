// Package options provides the configuration surface for opening an Ignite
// database: where its files live, how large a segment is allowed to grow
// before rotation, and whether every write is fsynced before it returns.
package options

import (
	"strings"

	"github.com/iamNilotpal/ignite/pkg/errors"
)

// Options defines the configuration parameters for opening an Ignite
// engine.
type Options struct {
	// DirPath is the directory holding the engine's segment files. It is
	// created on Open if it does not already exist.
	DirPath string `json:"dirPath"`

	// DataFileSize is the maximum number of bytes a segment may hold before
	// the engine rotates to a new one. Must be greater than zero.
	DataFileSize uint64 `json:"dataFileSize"`

	// SyncWrites, when true, fsyncs the active segment after every Put and
	// Delete instead of leaving durability to the operating system's page
	// cache.
	SyncWrites bool `json:"syncWrites"`
}

// OptionFunc mutates an Options value during construction.
type OptionFunc func(*Options)

// WithDefaultOptions applies the package defaults. Typically the first
// OptionFunc passed so subsequent options override individual fields.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		defaults := NewDefaultOptions()
		o.DirPath = defaults.DirPath
		o.DataFileSize = defaults.DataFileSize
		o.SyncWrites = defaults.SyncWrites
	}
}

// WithDirPath sets the directory the engine stores its segment files in.
// A blank path (after trimming whitespace) is ignored, leaving whatever
// value was set before.
func WithDirPath(path string) OptionFunc {
	return func(o *Options) {
		path = strings.TrimSpace(path)
		if path != "" {
			o.DirPath = path
		}
	}
}

// WithDataFileSize sets the rotation threshold for segment files.
func WithDataFileSize(size uint64) OptionFunc {
	return func(o *Options) {
		if size > 0 {
			o.DataFileSize = size
		}
	}
}

// WithSyncWrites toggles whether the engine fsyncs after every write.
func WithSyncWrites(sync bool) OptionFunc {
	return func(o *Options) {
		o.SyncWrites = sync
	}
}

// Validate checks that Options describes a usable engine configuration,
// returning the same error kinds spec.md assigns to DirPathEmpty and
// DataFileSizeIllegal.
func (o *Options) Validate() error {
	if strings.TrimSpace(o.DirPath) == "" {
		return errors.NewDirPathEmptyError()
	}
	if o.DataFileSize == 0 {
		return errors.NewDataFileSizeIllegalError(o.DataFileSize)
	}
	return nil
}
