package storage

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName = "chessagent"

	// homeEnv overrides the data directory entirely.
	homeEnv = "CHESSAGENT_HOME"

	bookFile = "book.json"
	dbSubdir = "db"
)

// userDataRoot is the per-user directory applications keep their data
// under: Application Support on macOS, APPDATA on Windows and
// XDG_DATA_HOME (or ~/.local/share) elsewhere.
func userDataRoot() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "AppData", "Roaming"), nil
	}
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// GetDataDir returns the chessagent data directory, creating it if needed.
// CHESSAGENT_HOME takes precedence over the platform default.
func GetDataDir() (string, error) {
	if dir := os.Getenv(homeEnv); dir != "" {
		return ensureDir(dir)
	}
	root, err := userDataRoot()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(root, appName))
}

// GetBookPath returns the path of a user-built opening book. The file may
// not exist.
func GetBookPath() (string, error) {
	dir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, bookFile), nil
}

// GetDatabaseDir returns the badger directory inside the data directory.
func GetDatabaseDir() (string, error) {
	dir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	dbDir, err := ensureDir(filepath.Join(dir, dbSubdir))
	if err != nil {
		return "", err
	}
	log.Printf("[STORAGE] database at %s", dbDir)
	return dbDir, nil
}
