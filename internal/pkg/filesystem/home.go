package filesystem

import (
	"github.com/mitchellh/go-homedir"
)

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := homedir.Dir(); err == nil {
		return home
	}
	return "."
}

// ExpandPath resolves a leading "~" to the home directory.
func ExpandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}
