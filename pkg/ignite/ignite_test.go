package ignite

import (
	"testing"

	"github.com/iamNilotpal/ignite/pkg/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstancePutGetDelete(t *testing.T) {
	dir := t.TempDir()
	inst, err := Open("ignite-test", options.WithDirPath(dir))
	require.NoError(t, err)
	defer inst.Close()

	require.NoError(t, inst.Put([]byte("k"), []byte("v")))

	got, err := inst.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, inst.Delete([]byte("k")))
	_, err = inst.Get([]byte("k"))
	assert.Error(t, err)
}

func TestInstanceSync(t *testing.T) {
	dir := t.TempDir()
	inst, err := Open("ignite-test", options.WithDirPath(dir), options.WithSyncWrites(true))
	require.NoError(t, err)
	defer inst.Close()

	require.NoError(t, inst.Put([]byte("k"), []byte("v")))
	require.NoError(t, inst.Sync())
}
