package index

import (
	"sync"

	"github.com/google/btree"
	"go.uber.org/zap"
)

// entry is the unit google/btree orders by Key. Storing the key alongside
// its Position (rather than indexing a bare Position by a separate map)
// keeps the ordered structure self-contained and ready for a future
// range-scan API without a second lookup structure.
type entry struct {
	Key string
	Pos Position
}

func less(a, b *entry) bool {
	return a.Key < b.Key
}

// BTreeIndex is the default Index implementation: an ordered tree keyed by
// raw key bytes, chosen over a hash table so that a future range-iteration
// API can walk keys in order without rebuilding the structure.
type BTreeIndex struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[*entry]
	log  *zap.SugaredLogger
}

// degree is the branching factor passed to google/btree; 32 is the
// library's own suggested default for in-memory workloads.
const degree = 32

// Config carries the dependencies BTreeIndex needs at construction time.
type Config struct {
	Logger *zap.SugaredLogger
}

// New builds an empty, ready-to-use BTreeIndex.
func New(config *Config) *BTreeIndex {
	var log *zap.SugaredLogger
	if config != nil {
		log = config.Logger
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &BTreeIndex{tree: btree.NewG(degree, less), log: log}
}

// Put implements Index. It is last-writer-wins: any existing entry for key
// is silently replaced.
func (idx *BTreeIndex) Put(key []byte, pos Position) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.tree.ReplaceOrInsert(&entry{Key: string(key), Pos: pos})
	return true
}

// Get implements Index.
func (idx *BTreeIndex) Get(key []byte) (Position, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	item, ok := idx.tree.Get(&entry{Key: string(key)})
	if !ok {
		return Position{}, false
	}
	return item.Pos, true
}

// Delete implements Index. It reports whether a key actually had an entry
// to remove.
func (idx *BTreeIndex) Delete(key []byte) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	_, ok := idx.tree.Delete(&entry{Key: string(key)})
	return ok
}

// Close implements Index, releasing the tree's nodes.
func (idx *BTreeIndex) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.tree.Clear(false)
	idx.log.Infow("index closed")
	return nil
}

// Len reports the number of live entries; it is used by tests.
func (idx *BTreeIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.tree.Len()
}
