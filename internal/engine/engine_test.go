package engine

import (
	"fmt"
	"os"
	"sync"
	"testing"

	stdErrors "errors"

	"github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/iamNilotpal/ignite/pkg/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestEngine(t *testing.T, opts ...options.OptionFunc) *Engine {
	t.Helper()
	dir := t.TempDir()

	o := options.Options{}
	options.WithDefaultOptions()(&o)
	options.WithDirPath(dir)(&o)
	for _, f := range opts {
		f(&o)
	}

	e, err := Open(&Config{Options: &o})
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestRoundTrip(t *testing.T) {
	e := openTestEngine(t)
	require.NoError(t, e.Put([]byte("k"), []byte("v")))

	got, err := e.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestLastWriterWins(t *testing.T) {
	e := openTestEngine(t)
	require.NoError(t, e.Put([]byte("k"), []byte("v1")))
	require.NoError(t, e.Put([]byte("k"), []byte("v2")))

	got, err := e.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}

func TestDeleteHides(t *testing.T) {
	e := openTestEngine(t)
	require.NoError(t, e.Put([]byte("k"), []byte("v")))
	require.NoError(t, e.Delete([]byte("k")))

	_, err := e.Get([]byte("k"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrKeyNotFound)
}

func TestResurrect(t *testing.T) {
	e := openTestEngine(t)
	require.NoError(t, e.Put([]byte("k"), []byte("v1")))
	require.NoError(t, e.Delete([]byte("k")))
	require.NoError(t, e.Put([]byte("k"), []byte("v2")))

	got, err := e.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}

func TestEmptyKeyRejection(t *testing.T) {
	e := openTestEngine(t)

	err := e.Put([]byte(""), []byte("v"))
	assert.ErrorIs(t, err, errors.ErrKeyIsEmpty)

	_, err = e.Get([]byte(""))
	assert.ErrorIs(t, err, errors.ErrKeyIsEmpty)

	err = e.Delete([]byte(""))
	assert.ErrorIs(t, err, errors.ErrKeyIsEmpty)
}

func TestDurabilityWithSync(t *testing.T) {
	dir := t.TempDir()
	o := options.Options{}
	options.WithDefaultOptions()(&o)
	options.WithDirPath(dir)(&o)
	options.WithSyncWrites(true)(&o)

	e, err := Open(&Config{Options: &o})
	require.NoError(t, err)
	require.NoError(t, e.Put([]byte("k"), []byte("v")))
	require.NoError(t, e.Close())

	reopened, err := Open(&Config{Options: &o})
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestConcurrentReadersDisjointKeys(t *testing.T) {
	e := openTestEngine(t)
	const n = 100

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		require.NoError(t, e.Put([]byte(fmt.Sprintf("k-%d", i)), []byte(fmt.Sprintf("v-%d", i))))
	}

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			got, err := e.Get([]byte(fmt.Sprintf("k-%d", i)))
			assert.NoError(t, err)
			assert.Equal(t, []byte(fmt.Sprintf("v-%d", i)), got)
		}(i)
	}
	wg.Wait()
}

func TestS1Basic(t *testing.T) {
	e := openTestEngine(t, options.WithDataFileSize(1024), options.WithSyncWrites(false))

	require.NoError(t, e.Put([]byte("a"), []byte("1")))
	require.NoError(t, e.Put([]byte("b"), []byte("22")))

	got, err := e.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)

	got, err = e.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("22"), got)

	require.NoError(t, e.Delete([]byte("a")))
	_, err = e.Get([]byte("a"))
	assert.ErrorIs(t, err, errors.ErrKeyNotFound)
}

func TestS2Rotation(t *testing.T) {
	e := openTestEngine(t, options.WithDataFileSize(64))

	v1 := make([]byte, 50)
	v2 := make([]byte, 50)
	for i := range v1 {
		v1[i] = 'x'
		v2[i] = 'y'
	}

	require.NoError(t, e.Put([]byte("k1"), v1))
	assert.EqualValues(t, 0, e.active.FileID())

	require.NoError(t, e.Put([]byte("k2"), v2))
	assert.EqualValues(t, 1, e.active.FileID())
	assert.Contains(t, e.frozen, uint32(0))

	got, err := e.Get([]byte("k1"))
	require.NoError(t, err)
	assert.Equal(t, v1, got)

	got, err = e.Get([]byte("k2"))
	require.NoError(t, err)
	assert.Equal(t, v2, got)
}

func TestS3Reopen(t *testing.T) {
	dir := t.TempDir()
	o := options.Options{}
	options.WithDefaultOptions()(&o)
	options.WithDirPath(dir)(&o)
	options.WithDataFileSize(64)(&o)

	e, err := Open(&Config{Options: &o})
	require.NoError(t, err)

	v1 := make([]byte, 50)
	v2 := make([]byte, 50)
	for i := range v1 {
		v1[i] = 'x'
		v2[i] = 'y'
	}
	require.NoError(t, e.Put([]byte("k1"), v1))
	require.NoError(t, e.Put([]byte("k2"), v2))
	require.NoError(t, e.Close())

	reopened, err := Open(&Config{Options: &o})
	require.NoError(t, err)

	got, err := reopened.Get([]byte("k1"))
	require.NoError(t, err)
	assert.Equal(t, v1, got)

	got, err = reopened.Get([]byte("k2"))
	require.NoError(t, err)
	assert.Equal(t, v2, got)

	require.NoError(t, reopened.Delete([]byte("k1")))
	require.NoError(t, reopened.Close())

	again, err := Open(&Config{Options: &o})
	require.NoError(t, err)
	defer again.Close()

	_, err = again.Get([]byte("k1"))
	assert.ErrorIs(t, err, errors.ErrKeyNotFound)
}

func TestS4EmptyValue(t *testing.T) {
	e := openTestEngine(t)
	require.NoError(t, e.Put([]byte("x"), []byte("")))

	got, err := e.Get([]byte("x"))
	require.NoError(t, err)
	assert.Equal(t, []byte(""), got)
}

// TestS5Corruption corrupts a record in a frozen (non-active, non-tail)
// segment. Per spec.md §4.5.1 step 5, a CRC failure outside the active
// segment's tail is fatal to recovery: Open itself must fail with
// ErrCorrupted rather than silently truncating, since truncating a frozen
// segment would discard a live record no later write can ever supersede.
func TestS5Corruption(t *testing.T) {
	dir := t.TempDir()
	o := options.Options{}
	options.WithDefaultOptions()(&o)
	options.WithDirPath(dir)(&o)
	options.WithDataFileSize(64)(&o)

	e, err := Open(&Config{Options: &o})
	require.NoError(t, err)

	v1 := make([]byte, 50)
	v2 := make([]byte, 50)
	for i := range v1 {
		v1[i] = 'x'
		v2[i] = 'y'
	}
	require.NoError(t, e.Put([]byte("k1"), v1))
	require.NoError(t, e.Put([]byte("k2"), v2))
	require.Contains(t, e.frozen, uint32(0))
	require.NoError(t, e.Close())

	path := dir + "/000000000.data"
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[len(data)-5] ^= 0xFF
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, err = Open(&Config{Options: &o})
	require.Error(t, err)
	assert.True(t, stdErrors.Is(err, errors.ErrCorrupted))
}

func TestS6TailTruncation(t *testing.T) {
	dir := t.TempDir()
	o := options.Options{}
	options.WithDefaultOptions()(&o)
	options.WithDirPath(dir)(&o)

	e, err := Open(&Config{Options: &o})
	require.NoError(t, err)
	require.NoError(t, e.Put([]byte("k"), []byte("value")))
	require.NoError(t, e.Close())

	path := dir + "/000000000.data"
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data[:len(data)/2], 0644))

	reopened, err := Open(&Config{Options: &o})
	require.NoError(t, err)
	defer reopened.Close()

	_, err = reopened.Get([]byte("k"))
	assert.ErrorIs(t, err, errors.ErrKeyNotFound)

	require.NoError(t, reopened.Put([]byte("k2"), []byte("v2")))
	got, err := reopened.Get([]byte("k2"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}
