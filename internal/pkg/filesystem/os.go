// Package filesystem implements the file collaborator on top of the local disk.
package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/doeshing/recspec/internal/domain"
	"github.com/doeshing/recspec/internal/ports"
)

// OS is the disk-backed ports.FileSystem.
type OS struct{}

// NewOS returns the disk-backed file system.
func NewOS() *OS {
	return &OS{}
}

// ReadTextFile reads path as text.
func (OS) ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", domain.NewFilesystemError("read", path, err)
	}
	return string(data), nil
}

// WriteTextFile replaces path with text. The content goes to a sibling temp file that
// already carries perm and is then renamed over path, so the text is never visible under
// a wider mode and readers never see a partial file.
func (OS) WriteTextFile(path, text string, perm uint32) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return domain.NewFilesystemError("write", path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(fs.FileMode(perm)); err != nil {
		return domain.NewFilesystemError("chmod", path, err)
	}
	if _, err = tmp.WriteString(text); err != nil {
		return domain.NewFilesystemError("write", path, err)
	}
	if err = tmp.Close(); err != nil {
		return domain.NewFilesystemError("write", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return domain.NewFilesystemError("rename", path, err)
	}
	return nil
}

// FileExists reports whether path exists. Errors other than "not found" are returned.
func (OS) FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, domain.NewFilesystemError("stat", path, err)
}

// MkdirAll creates path and any missing parents.
func (OS) MkdirAll(path string, perm uint32) error {
	if err := os.MkdirAll(filepath.Clean(path), fs.FileMode(perm)); err != nil {
		return domain.NewFilesystemError("mkdir", path, err)
	}
	return nil
}

var _ ports.FileSystem = (*OS)(nil)
