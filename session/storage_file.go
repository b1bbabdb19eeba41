package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// recordName is the fixed name the session record is stored under.
const recordName = "auth-session.json"

// FileStorage writes the session record as a JSON file in the data folder.
type FileStorage struct {
	path string
}

func NewFileStorage(folder string) *FileStorage {
	return &FileStorage{path: filepath.Join(folder, recordName)}
}

func (f *FileStorage) Load() (Session, bool, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("[FileStorage Load] read %s: %w", f.path, err)
	}

	var record Session
	if err := json.Unmarshal(data, &record); err != nil {
		return Session{}, false, fmt.Errorf("[FileStorage Load] unmarshal %s: %w", f.path, err)
	}
	return record, true, nil
}

func (f *FileStorage) Save(s Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("[FileStorage Save] mkdir: %w", err)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("[FileStorage Save] marshal: %w", err)
	}

	// Write-then-rename so a crash mid-write never corrupts the record
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("[FileStorage Save] write: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("[FileStorage Save] rename: %w", err)
	}
	return nil
}
