// Package engine provides the core database engine implementation for the
// Ignite storage system.
//
// The engine serves as the central coordinator and entry point for all
// database operations. It orchestrates the interaction between three main
// subsystems:
//   - Index: the in-memory keydir mapping keys to their latest record
//     position
//   - Segment: the append-only log files data actually lives in
//   - Compaction: reserved for a future background maintenance pass; the
//     engine never invokes it today
//
// The engine implements a thread-safe interface with proper lifecycle
// management, ensuring resources are properly initialized and cleaned up.
package engine

import (
	stdErrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"
	"github.com/iamNilotpal/ignite/internal/codec"
	"github.com/iamNilotpal/ignite/internal/index"
	"github.com/iamNilotpal/ignite/internal/segment"
	"github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/iamNilotpal/ignite/pkg/filesys"
	"github.com/iamNilotpal/ignite/pkg/logger"
	"github.com/iamNilotpal/ignite/pkg/options"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrEngineClosed is returned by Close when the engine has already been
// closed. Put, Get, Delete and Sync do not check whether the engine is
// closed.
var ErrEngineClosed = stdErrors.New("operation failed: cannot access closed engine")

// ErrDirLocked is returned when another instance already holds the
// directory lock for the configured DirPath.
var ErrDirLocked = stdErrors.New("engine: directory is locked by another instance")

// lockFileName is the advisory lock file placed in every engine directory
// to keep a second process from opening it concurrently.
const lockFileName = ".ignite.lock"

// Engine represents the main database engine that coordinates all
// subsystems. It acts as the primary interface for database operations and
// manages the lifecycle of all internal components. The engine is designed
// to be thread-safe and supports concurrent operations while maintaining
// data consistency.
type Engine struct {
	opts *options.Options
	log  *zap.SugaredLogger

	// activeMu guards active: writers (append, rotate) take it exclusively;
	// readers targeting the active segment take it shared.
	activeMu sync.RWMutex
	active   *segment.Segment

	// frozenMu guards frozen: mutated only on rotation (exclusive), read on
	// every get that targets a frozen segment (shared).
	frozenMu sync.RWMutex
	frozen   map[uint32]*segment.Segment

	index index.Index

	dirLock *flock.Flock
	closed  atomic.Bool
}

// Config holds all the parameters needed to initialize a new Engine
// instance.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}

// Open validates options, acquires the directory lock, discovers and
// replays any existing segments, and returns a ready-to-use engine.
func Open(config *Config) (*Engine, error) {
	if config == nil || config.Options == nil {
		return nil, stdErrors.New("engine: options are required")
	}

	opts := config.Options
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	log := config.Logger
	if log == nil {
		log = logger.NewNop()
	}

	log.Infow("opening engine", "dirPath", opts.DirPath, "dataFileSize", opts.DataFileSize, "syncWrites", opts.SyncWrites)

	if err := filesys.CreateDir(opts.DirPath, 0755, true); err != nil {
		return nil, errors.ClassifyDirectoryCreationError(err, opts.DirPath)
	}

	dirLock := flock.New(filepath.Join(opts.DirPath, lockFileName))
	locked, err := dirLock.TryLock()
	if err != nil {
		return nil, errors.ClassifyFileOpenError(err, opts.DirPath, lockFileName)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrDirLocked, opts.DirPath)
	}

	ids, err := segment.ListIDs(opts.DirPath)
	if err != nil {
		_ = dirLock.Unlock()
		return nil, errors.NewFailedToListSegmentsError(err, opts.DirPath)
	}

	idx := index.New(&index.Config{Logger: log})
	frozen := make(map[uint32]*segment.Segment)
	var active *segment.Segment

	if len(ids) == 0 {
		active, err = segment.Open(opts.DirPath, 0)
		if err != nil {
			_ = dirLock.Unlock()
			return nil, err
		}
		log.Infow("no existing segments found, starting fresh", "fileID", active.FileID())
	} else {
		opened := make(map[uint32]*segment.Segment, len(ids))
		abort := func(cause error) (*Engine, error) {
			for _, seg := range opened {
				_ = seg.Close()
			}
			_ = dirLock.Unlock()
			return nil, cause
		}

		for _, id := range ids {
			seg, serr := segment.Open(opts.DirPath, id)
			if serr != nil {
				return abort(serr)
			}
			opened[id] = seg
		}

		activeID := ids[len(ids)-1]
		for _, id := range ids {
			seg := opened[id]
			isActive := id == activeID

			readUpTo, corrupted, rerr := seg.Replay(func(rec *codec.Record, offset uint64) error {
				switch rec.Type {
				case codec.RecordNormal:
					idx.Put(rec.Key, index.Position{FileID: id, Offset: offset})
				case codec.RecordDeleted:
					idx.Delete(rec.Key)
				}
				return nil
			})
			if rerr != nil {
				return abort(rerr)
			}

			if corrupted {
				if !isActive {
					return abort(errors.NewCorruptedError(codec.ErrCorrupted, id, int64(readUpTo)))
				}
				log.Warnw("truncating torn tail record found during replay", "fileID", id, "truncateTo", readUpTo)
				if terr := os.Truncate(filepath.Join(opts.DirPath, segment.FileName(id)), int64(readUpTo)); terr != nil {
					return abort(errors.NewFailedWriteError(terr, id))
				}
				seg.TruncateTo(readUpTo)
			}

			if isActive {
				active = seg
			} else {
				frozen[id] = seg
			}
		}
	}

	log.Infow("engine opened", "activeFileID", active.FileID(), "frozenSegments", len(frozen))

	return &Engine{
		opts:    opts,
		log:     log,
		active:  active,
		frozen:  frozen,
		index:   idx,
		dirLock: dirLock,
	}, nil
}

// Put stores value under key, rejecting an empty key with KeyIsEmpty.
func (e *Engine) Put(key []byte, value []byte) error {
	if len(key) == 0 {
		return errors.NewKeyIsEmptyError("Put")
	}

	pos, err := e.appendRecord(&codec.Record{Key: key, Value: value, Type: codec.RecordNormal})
	if err != nil {
		return err
	}

	if ok := e.index.Put(key, pos); !ok {
		return errors.NewIndexUpdateFailedError(nil, string(key), "Put")
	}
	return nil
}

// Get returns the value currently associated with key, or KeyNotFound if
// no live record exists for it.
func (e *Engine) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, errors.NewKeyIsEmptyError("Get")
	}

	pos, found := e.index.Get(key)
	if !found {
		return nil, errors.NewKeyNotFoundError(string(key))
	}

	rec, err := e.readAt(key, pos)
	if err != nil {
		return nil, err
	}

	if rec.Type == codec.RecordDeleted {
		return nil, errors.NewKeyNotFoundError(string(key))
	}
	return rec.Value, nil
}

// Delete removes key. If key is not present, Delete is a no-op that
// reports success, since the post-state is identical either way.
func (e *Engine) Delete(key []byte) error {
	if len(key) == 0 {
		return errors.NewKeyIsEmptyError("Delete")
	}

	if _, found := e.index.Get(key); !found {
		return nil
	}

	if _, err := e.appendRecord(&codec.Record{Key: key, Value: nil, Type: codec.RecordDeleted}); err != nil {
		return err
	}

	e.index.Delete(key)
	return nil
}

// Sync forces the active segment to durable storage.
func (e *Engine) Sync() error {
	e.activeMu.RLock()
	defer e.activeMu.RUnlock()
	return e.active.Sync()
}

// Close releases every file handle and lock the engine holds, aggregating
// any errors encountered along the way. Callers wanting a durability
// guarantee on pending writes should call Sync first.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}

	e.activeMu.Lock()
	activeErr := e.active.Close()
	e.activeMu.Unlock()

	e.frozenMu.Lock()
	var frozenErr error
	for id, seg := range e.frozen {
		if err := seg.Close(); err != nil {
			frozenErr = multierr.Append(frozenErr, fmt.Errorf("segment %d: %w", id, err))
		}
	}
	e.frozenMu.Unlock()

	idxErr := e.index.Close()
	lockErr := e.dirLock.Unlock()

	return multierr.Combine(activeErr, frozenErr, idxErr, lockErr)
}

// readAt dispatches a positioned read to the active segment or the correct
// frozen segment, per pos.FileID.
func (e *Engine) readAt(key []byte, pos index.Position) (*codec.Record, error) {
	e.activeMu.RLock()
	if pos.FileID == e.active.FileID() {
		rec, _, err := e.active.ReadRecord(pos.Offset)
		e.activeMu.RUnlock()
		return rec, err
	}
	e.activeMu.RUnlock()

	e.frozenMu.RLock()
	seg, ok := e.frozen[pos.FileID]
	e.frozenMu.RUnlock()
	if !ok {
		return nil, errors.NewSegmentIDError(pos.FileID, string(key))
	}

	rec, _, err := seg.ReadRecord(pos.Offset)
	return rec, err
}

// appendRecord implements the append protocol: encode, rotate if the
// record would overflow the active segment, append, and optionally sync.
// It runs entirely under the active segment's exclusive lock, which
// serializes writers; the frozen map's exclusive lock is only taken for
// the instant needed to register a newly sealed segment. Since this is the
// sole writer of the frozen map and it already holds the active lock for
// its whole duration, no other path ever contends for both locks in the
// opposite order, so no additional ordering discipline is needed here.
func (e *Engine) appendRecord(rec *codec.Record) (index.Position, error) {
	encoded := codec.Encode(rec)
	recordLen := len(encoded)

	e.activeMu.Lock()
	defer e.activeMu.Unlock()

	if classifyActiveState(e.active.WriteOff(), e.opts.DataFileSize, recordLen) == stateFull {
		if err := e.active.Sync(); err != nil {
			return index.Position{}, err
		}

		newID := e.active.FileID() + 1
		newSeg, err := segment.Open(e.opts.DirPath, newID)
		if err != nil {
			return index.Position{}, err
		}

		e.frozenMu.Lock()
		e.frozen[e.active.FileID()] = e.active
		e.frozenMu.Unlock()

		e.log.Infow("rotated active segment", "sealedFileID", e.active.FileID(), "newFileID", newID)
		e.active = newSeg
	}

	offset, err := e.active.Append(encoded)
	if err != nil {
		return index.Position{}, err
	}

	if e.opts.SyncWrites {
		if err := e.active.Sync(); err != nil {
			return index.Position{}, err
		}
	}

	return index.Position{FileID: e.active.FileID(), Offset: offset}, nil
}
