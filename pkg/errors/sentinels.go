package errors

import (
	stdErrors "errors"
	"fmt"
)

// Sentinels identify the thirteen error kinds the engine's public API can
// surface. Every constructor below wraps the matching sentinel as its
// cause, so callers can branch with errors.Is(err, errors.ErrKeyNotFound)
// regardless of how much structured context (StorageError/IndexError/
// ValidationError) got attached along the way.
var (
	ErrKeyIsEmpty                = stdErrors.New("key is empty")
	ErrKeyNotFound               = stdErrors.New("key not found")
	ErrDataFileNotFound          = stdErrors.New("data file not found")
	ErrFailedReadFromDataFile    = stdErrors.New("failed to read from data file")
	ErrFailedWriteToDataFile     = stdErrors.New("failed to write to data file")
	ErrFailedSyncDataFile        = stdErrors.New("failed to sync data file")
	ErrFailedToOpenDataFile      = stdErrors.New("failed to open data file")
	ErrFailedToCreateDatabaseDir = stdErrors.New("failed to create database directory")
	ErrFailedToListSegments      = stdErrors.New("failed to list segment files")
	ErrDirPathEmpty              = stdErrors.New("dir path is empty")
	ErrDataFileSizeIllegal       = stdErrors.New("data file size is illegal")
	ErrIndexUpdateFailed         = stdErrors.New("index update failed")
	ErrCorrupted                 = stdErrors.New("record corrupted")
)

// NewKeyIsEmptyError builds the ValidationError raised when a public
// operation is called with a zero-length key.
func NewKeyIsEmptyError(operation string) *ValidationError {
	return NewValidationError(ErrKeyIsEmpty, ErrorCodeInvalidInput, "key must not be empty").
		WithField("key").
		WithRule("required").
		WithDetail("operation", operation)
}

// NewFailedReadError builds the StorageError raised when the I/O manager
// fails a positioned read.
func NewFailedReadError(cause error, fileID uint32, offset int64) *StorageError {
	return NewStorageError(wrapWith(cause, ErrFailedReadFromDataFile), ErrorCodeIO, "failed to read from data file").
		WithSegmentID(int(fileID)).
		WithOffset(int(offset))
}

// NewFailedWriteError builds the StorageError raised when the I/O manager
// fails, or short-writes, an append.
func NewFailedWriteError(cause error, fileID uint32) *StorageError {
	return NewStorageError(wrapWith(cause, ErrFailedWriteToDataFile), ErrorCodeIO, "failed to write to data file").
		WithSegmentID(int(fileID))
}

// NewFailedToListSegmentsError builds the StorageError raised when the data
// directory exists but its contents cannot be enumerated during startup
// recovery. Distinct from ClassifyDirectoryCreationError: by the time this
// runs, directory creation has already succeeded.
func NewFailedToListSegmentsError(cause error, path string) *StorageError {
	return NewStorageError(wrapWith(cause, ErrFailedToListSegments), ErrorCodeIO, "failed to list segment files").
		WithPath(path)
}

// NewDirPathEmptyError builds the ValidationError raised by options
// validation when DirPath is empty.
func NewDirPathEmptyError() *ValidationError {
	return NewValidationError(ErrDirPathEmpty, ErrorCodeInvalidInput, "dir path must not be empty").
		WithField("DirPath").
		WithRule("required")
}

// NewDataFileSizeIllegalError builds the ValidationError raised by options
// validation when DataFileSize is zero.
func NewDataFileSizeIllegalError(provided uint64) *ValidationError {
	return NewValidationError(ErrDataFileSizeIllegal, ErrorCodeInvalidInput, "data file size must be greater than zero").
		WithField("DataFileSize").
		WithRule("positive").
		WithProvided(provided)
}

// NewIndexUpdateFailedError builds the IndexError raised when the index
// reports failure updating an entry after a successful append.
func NewIndexUpdateFailedError(cause error, key string, operation string) *IndexError {
	return NewIndexError(wrapWith(cause, ErrIndexUpdateFailed), ErrorCodeIndexUpdateFailed, "index update failed").
		WithKey(key).
		WithOperation(operation)
}

// NewCorruptedError builds the StorageError raised when a record's header
// or checksum fails to decode.
func NewCorruptedError(cause error, fileID uint32, offset int64) *StorageError {
	return NewStorageError(wrapWith(cause, ErrCorrupted), ErrorCodeSegmentCorrupted, "record corrupted").
		WithSegmentID(int(fileID)).
		WithOffset(int(offset))
}

// wrapWith joins a lower-level cause (which may be nil) with the sentinel
// that identifies the error kind, so errors.Is finds the sentinel no
// matter how deep the underlying cause chain goes.
func wrapWith(cause error, sentinel error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}
