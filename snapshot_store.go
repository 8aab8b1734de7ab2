package stylegen

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/yacobolo/stylegen/internal/styles"
)

// LoadSnapshot reads the previously exported style set. A missing file is a
// first export and yields an empty set. A corrupt file also yields an empty
// set, plus a diagnostic, so the run can continue.
func LoadSnapshot(fsys afero.Fs, path string) (styles.StyleSet, []styles.Diagnostic, error) {
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return styles.StyleSet{}, nil, nil
	}
	if err != nil {
		return styles.StyleSet{}, nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	set, err := styles.DecodeSnapshot(data)
	if err != nil {
		return styles.StyleSet{}, []styles.Diagnostic{{
			Kind:    styles.KindSnapshotDecodeFailure,
			Source:  path,
			Message: fmt.Sprintf("%v; treating previous styles as empty", err),
		}}, nil
	}

	return set, nil, nil
}

// SaveSnapshot writes set to path, creating parent directories.
func SaveSnapshot(fsys afero.Fs, path string, set styles.StyleSet) error {
	data, err := styles.EncodeSnapshot(set)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot directory: %w", err)
		}
	}
	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return nil
}
