package options

const (
	// DefaultDirPath is where an Ignite engine stores its files when no
	// DirPath is supplied.
	DefaultDirPath = "/var/lib/ignitedb"

	// DefaultDataFileSize is the segment rotation threshold applied when no
	// DataFileSize is supplied: 256MB.
	DefaultDataFileSize uint64 = 256 * 1024 * 1024

	// DefaultSyncWrites matches the teacher's own default of batching
	// fsyncs rather than paying one per write.
	DefaultSyncWrites = false
)

var defaultOptions = Options{
	DirPath:      DefaultDirPath,
	DataFileSize: DefaultDataFileSize,
	SyncWrites:   DefaultSyncWrites,
}

// NewDefaultOptions returns a copy of the package's default Options.
func NewDefaultOptions() Options {
	return defaultOptions
}
