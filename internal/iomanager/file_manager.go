package iomanager

import (
	"os"
)

// FileIOManager is the host-filesystem implementation of IOManager. It
// opens its backing file with create+read+append so that every Write lands
// at the file's current end, and serves Read through the file's positioned
// read primitive so reads never disturb the append cursor.
type FileIOManager struct {
	file *os.File
}

// NewFileIOManager opens (creating if necessary) the file at path for
// append-only writes and positioned reads.
func NewFileIOManager(path string) (*FileIOManager, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &FileIOManager{file: f}, nil
}

// Read implements IOManager.
func (m *FileIOManager) Read(dst []byte, offset int64) (int, error) {
	return m.file.ReadAt(dst, offset)
}

// Write implements IOManager. The O_APPEND flag the file was opened with
// guarantees the write lands at the current end regardless of any
// concurrent positioned read.
func (m *FileIOManager) Write(src []byte) (int, error) {
	return m.file.Write(src)
}

// Sync implements IOManager.
func (m *FileIOManager) Sync() error {
	return m.file.Sync()
}

// Size implements IOManager.
func (m *FileIOManager) Size() (int64, error) {
	info, err := m.file.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Close implements IOManager.
func (m *FileIOManager) Close() error {
	return m.file.Close()
}
