package textfile

import (
	"os"
	"path/filepath"

	"github.com/flow-hydraulics/flow-bank/accounts"
	"github.com/flow-hydraulics/flow-bank/datastore"
	"github.com/flow-hydraulics/flow-bank/errors"
)

const fileMode = 0644

// Store is a datastore.Store backed by a single text file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path}
}

func (s *Store) Location() string {
	return s.path
}

func (s *Store) Load() (datastore.Snapshot, error) {
	return ReadFile(s.path)
}

func (s *Store) Save(snap datastore.Snapshot) error {
	return WriteFile(s.path, snap.Accounts)
}

// ReadFile decodes the file at path.
func ReadFile(path string) (datastore.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return datastore.Snapshot{}, &errors.StorageError{Op: "load", Path: path, Err: err}
	}
	defer f.Close()

	snap, err := Decode(f)
	if err != nil {
		return datastore.Snapshot{}, &errors.StorageError{Op: "load", Path: path, Err: err}
	}

	return snap, nil
}

// WriteFile encodes aa to a temporary file next to path and renames it into
// place, so a failed write never leaves a truncated file behind.
func WriteFile(path string, aa []*accounts.Account) (err error) {
	defer func() {
		if err != nil {
			err = &errors.StorageError{Op: "save", Path: path, Err: err}
		}
	}()

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // nolint, no-op after a successful rename

	if err := Encode(tmp, aa); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
