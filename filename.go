package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// PrepareDirectory creates dir and its parents if necessary.
func PrepareDirectory(dir string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("%w: couldn't create directory(name=%s)", err, dir)
	}
	return nil
}

// fileMode is the mode of stored images, the temporary file is created with 0600.
const fileMode = 0o644

// WriteFile stores whatever fill writes under path.
//
// The data goes to a temporary file in the same directory first, which is renamed
// once fill succeeds, so a failed download never leaves a partial file behind
// that would be taken for a finished one on the next run.
func WriteFile(path string, fill func(w io.Writer) (int64, error)) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.part")
	if err != nil {
		return 0, fmt.Errorf("%w: couldn't create file(path=%s)", err, path)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	fw := bufio.NewWriter(tmp)
	n, err := fill(fw)
	if err == nil {
		err = fw.Flush()
	}
	if err == nil {
		err = tmp.Chmod(fileMode)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("%w: couldn't write file(path=%s)", err, path)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return n, fmt.Errorf("%w: couldn't move file into place(path=%s)", err, path)
	}

	log.Debug().Int64("written_bytes", n).Str("path", path).Msg("wrote to disk")

	return n, nil
}
