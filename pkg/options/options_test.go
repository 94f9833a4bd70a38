package options

import (
	"testing"

	"github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apply(funcs ...OptionFunc) Options {
	var o Options
	for _, f := range funcs {
		f(&o)
	}
	return o
}

func TestWithDefaultOptions(t *testing.T) {
	o := apply(WithDefaultOptions())
	assert.Equal(t, DefaultDirPath, o.DirPath)
	assert.Equal(t, DefaultDataFileSize, o.DataFileSize)
	assert.Equal(t, DefaultSyncWrites, o.SyncWrites)
}

func TestWithDirPathIgnoresBlank(t *testing.T) {
	o := apply(WithDefaultOptions(), WithDirPath("  "))
	assert.Equal(t, DefaultDirPath, o.DirPath)

	o = apply(WithDefaultOptions(), WithDirPath("/data/ignite"))
	assert.Equal(t, "/data/ignite", o.DirPath)
}

func TestWithDataFileSizeIgnoresZero(t *testing.T) {
	o := apply(WithDefaultOptions(), WithDataFileSize(0))
	assert.Equal(t, DefaultDataFileSize, o.DataFileSize)

	o = apply(WithDefaultOptions(), WithDataFileSize(1024))
	assert.EqualValues(t, 1024, o.DataFileSize)
}

func TestValidateRejectsEmptyDirPath(t *testing.T) {
	o := Options{DirPath: "", DataFileSize: 1024}
	err := o.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDirPathEmpty)
}

func TestValidateRejectsZeroDataFileSize(t *testing.T) {
	o := Options{DirPath: "/tmp/ignite", DataFileSize: 0}
	err := o.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDataFileSizeIllegal)
}

func TestValidateAcceptsWellFormedOptions(t *testing.T) {
	o := apply(WithDefaultOptions())
	assert.NoError(t, o.Validate())
}
