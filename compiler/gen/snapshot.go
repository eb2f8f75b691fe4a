package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot records the files written by a round. The next round uses it to
// remove generated files whose declarations are gone.
type Snapshot struct {
	Round string   `msgpack:"round"`
	Files []string `msgpack:"files"`
}

// ReadSnapshot reads the snapshot kept in dir. A missing snapshot yields
// an empty one.
func ReadSnapshot(fsys afero.Fs, dir string) (*Snapshot, error) {
	data, err := afero.ReadFile(fsys, filepath.Join(dir, SnapshotFile))
	if errors.Is(err, fs.ErrNotExist) {
		return &Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	s := &Snapshot{}
	if err := msgpack.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}

// WriteSnapshot stores s in dir.
func WriteSnapshot(fsys afero.Fs, dir string, s *Snapshot) error {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return afero.WriteFile(fsys, filepath.Join(dir, SnapshotFile), data, 0o644)
}

// syncSnapshot removes the files of the previous snapshot that were not
// written this round and stores the new snapshot. Files no longer starting
// with header were edited by hand and are kept.
func syncSnapshot(fsys afero.Fs, dir, header, round string, written []string) ([]string, error) {
	prev, err := ReadSnapshot(fsys, dir)
	if err != nil {
		return nil, err
	}
	var removed []string
	for _, name := range prev.Files {
		if slices.Contains(written, name) {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := afero.ReadFile(fsys, path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read stale file: %w", err)
		}
		if header != "" && !bytes.HasPrefix(data, []byte(header)) {
			continue
		}
		if err := fsys.Remove(path); err != nil {
			return nil, fmt.Errorf("remove stale file: %w", err)
		}
		removed = append(removed, name)
	}
	files := slices.Clone(written)
	slices.Sort(files)
	if err := WriteSnapshot(fsys, dir, &Snapshot{Round: round, Files: files}); err != nil {
		return nil, err
	}
	return removed, nil
}
