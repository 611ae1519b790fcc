// Package sink writes encoded buffers to a filesystem.
package sink

import (
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/spf13/afero"

	"github.com/tmpim/bitpast"
)

// Sink writes each buffer to a temporary file in the destination directory
// and renames it into place, so a reader never sees a partial file. A path
// may be written at most once per Sink.
type Sink struct {
	fs afero.Fs

	mu      sync.Mutex
	written map[string]bool
}

// New returns a sink writing to fs.
func New(fs afero.Fs) *Sink {
	return &Sink{
		fs:      fs,
		written: make(map[string]bool),
	}
}

func (s *Sink) claim(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.written[path] {
		return errors.Wrapf(bitpast.ErrIO, "%s: already written", path)
	}
	s.written[path] = true
	return nil
}

func (s *Sink) release(path string) {
	s.mu.Lock()
	delete(s.written, path)
	s.mu.Unlock()
}

// Write stores buf at path. A failed write releases the path so it can be
// retried.
func (s *Sink) Write(path string, buf *bitpast.EncodedBuffer) error {
	path = filepath.Clean(path)
	if err := s.claim(path); err != nil {
		return err
	}

	if err := s.write(path, buf); err != nil {
		s.release(path)
		return err
	}
	return nil
}

func (s *Sink) write(path string, buf *bitpast.EncodedBuffer) error {
	dir := filepath.Dir(path)
	if exists, err := afero.DirExists(s.fs, dir); err != nil {
		return errors.Wrapf(bitpast.ErrIO, "%s: %v", dir, err)
	} else if !exists {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(bitpast.ErrIO, "%s: %v", dir, err)
		}
	}

	tmp := filepath.Join(dir, "."+xid.New().String()+".tmp")
	f, err := s.fs.Create(tmp)
	if err != nil {
		return errors.Wrapf(bitpast.ErrIO, "%s: %v", tmp, err)
	}

	if _, err := buf.WriteTo(f); err != nil {
		f.Close()
		s.fs.Remove(tmp)
		return errors.Wrapf(bitpast.ErrIO, "%s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		s.fs.Remove(tmp)
		return errors.Wrapf(bitpast.ErrIO, "%s: %v", path, err)
	}

	if err := s.fs.Rename(tmp, path); err != nil {
		s.fs.Remove(tmp)
		return errors.Wrapf(bitpast.ErrIO, "%s: %v", path, err)
	}

	return nil
}
