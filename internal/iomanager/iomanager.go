// Package iomanager provides the capability set a single on-disk segment
// file is accessed through: positioned reads, append-only writes, and a
// durability sync. Consumers never see *os.File directly, which keeps the
// segment layer free of any assumption about what backs a given file id.
package iomanager

// IOManager is the capability set one on-disk file is accessed through.
// Read never mutates any file cursor; Write always appends to the current
// end of the file and advances it.
type IOManager interface {
	// Read fills dst starting at offset and returns the number of bytes
	// actually read.
	Read(dst []byte, offset int64) (int, error)
	// Write appends src to the end of the file and returns the number of
	// bytes actually written.
	Write(src []byte) (int, error)
	// Sync forces file data and metadata to durable storage.
	Sync() error
	// Size reports the current length of the file.
	Size() (int64, error)
	// Close releases the underlying file handle.
	Close() error
}
