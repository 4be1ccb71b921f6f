package filesystem

import (
	"io/fs"
	"path/filepath"
	"sort"
	"sync"

	"github.com/doeshing/recspec/internal/domain"
	"github.com/doeshing/recspec/internal/ports"
)

// Memory is an in-memory ports.FileSystem used by tests.
type Memory struct {
	mu    sync.Mutex
	files map[string]memFile
	dirs  map[string]uint32
	// FailWrites makes every write fail, to exercise I/O error paths.
	FailWrites error
}

type memFile struct {
	text string
	perm uint32
}

// NewMemory returns an empty in-memory file system.
func NewMemory() *Memory {
	return &Memory{files: map[string]memFile{}, dirs: map[string]uint32{}}
}

// ReadTextFile implements ports.FileSystem.
func (m *Memory) ReadTextFile(path string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[filepath.Clean(path)]
	if !ok {
		return "", domain.NewFilesystemError("read", path, fs.ErrNotExist)
	}
	return f.text, nil
}

// WriteTextFile implements ports.FileSystem.
func (m *Memory) WriteTextFile(path, text string, perm uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return domain.NewFilesystemError("write", path, m.FailWrites)
	}
	m.files[filepath.Clean(path)] = memFile{text: text, perm: perm}
	return nil
}

// FileExists implements ports.FileSystem.
func (m *Memory) FileExists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[filepath.Clean(path)]
	return ok, nil
}

// MkdirAll implements ports.FileSystem.
func (m *Memory) MkdirAll(path string, perm uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[filepath.Clean(path)] = perm
	return nil
}

// Perm returns the mode a file was written with.
func (m *Memory) Perm(path string) (uint32, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[filepath.Clean(path)]
	return f.perm, ok
}

// DirPerm returns the mode a directory was created with.
func (m *Memory) DirPerm(path string) (uint32, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	perm, ok := m.dirs[filepath.Clean(path)]
	return perm, ok
}

// Paths lists every stored file, sorted.
func (m *Memory) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	paths := make([]string, 0, len(m.files))
	for path := range m.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

var _ ports.FileSystem = (*Memory)(nil)
