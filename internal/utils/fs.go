package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir ensures the parent directory of path exists, creating it if necessary
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}

// IsWritableDir checks whether a file can be created inside dir
func IsWritableDir(dir string) bool {
	f, err := os.CreateTemp(dir, ".ado2tf_write_check_*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
