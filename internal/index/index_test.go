package index

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBTreeIndexPutGetDelete(t *testing.T) {
	idx := New(nil)

	ok := idx.Put([]byte("a"), Position{FileID: 0, Offset: 10})
	assert.True(t, ok)

	pos, found := idx.Get([]byte("a"))
	assert.True(t, found)
	assert.Equal(t, Position{FileID: 0, Offset: 10}, pos)

	_, found = idx.Get([]byte("missing"))
	assert.False(t, found)

	removed := idx.Delete([]byte("a"))
	assert.True(t, removed)

	_, found = idx.Get([]byte("a"))
	assert.False(t, found)

	removed = idx.Delete([]byte("a"))
	assert.False(t, removed)
}

func TestBTreeIndexPutIsLastWriterWins(t *testing.T) {
	idx := New(nil)
	idx.Put([]byte("k"), Position{FileID: 0, Offset: 1})
	idx.Put([]byte("k"), Position{FileID: 0, Offset: 2})

	pos, found := idx.Get([]byte("k"))
	assert.True(t, found)
	assert.EqualValues(t, 2, pos.Offset)
}

func TestBTreeIndexConcurrentReadersAndWriters(t *testing.T) {
	idx := New(nil)
	const n = 200

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			idx.Put([]byte(fmt.Sprintf("key-%d", i)), Position{FileID: 0, Offset: uint64(i)})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, n, idx.Len())

	wg = sync.WaitGroup{}
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pos, found := idx.Get([]byte(fmt.Sprintf("key-%d", i)))
			assert.True(t, found)
			assert.EqualValues(t, i, pos.Offset)
		}(i)
	}
	wg.Wait()
}
