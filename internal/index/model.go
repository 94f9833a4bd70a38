// Package index is the in-memory keydir: a mapping from every live key to
// the exact byte range of its most recent record. It is consulted on every
// read and kept current on every write, and it is the one piece of state
// that startup recovery exists to rebuild.
package index

// Position locates the first byte of one record's encoded form inside a
// segment. It is a value type: copyable, immutable after creation, and
// identifying a segment by id rather than by any live handle, so it never
// creates a reference cycle back into the storage layer.
type Position struct {
	FileID uint32
	Offset uint64
}

// Index is the capability set the engine needs from its keydir: last-writer-
// wins insert, lookup, and removal, all safe for concurrent use by many
// readers and the single writer the engine serializes internally.
type Index interface {
	// Put records pos as the current location of key, overwriting any prior
	// entry. Returns true on success.
	Put(key []byte, pos Position) bool
	// Get returns the current location of key, if any.
	Get(key []byte) (Position, bool)
	// Delete removes key's entry, if present, and reports whether one was
	// removed.
	Delete(key []byte) bool
	// Close releases resources held by the index.
	Close() error
}
