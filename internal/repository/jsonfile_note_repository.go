package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"note-share-be/internal/entity"
	"note-share-be/internal/pkg/serverutils"
)

const tempFilePrefix = "notes-tmp-"

// jsonFileNoteRepository keeps the whole collection as a pretty-printed JSON
// array in one file. Every call re-reads the file; mu serialises calls so a
// read-modify-write cycle never loses a concurrent update.
type jsonFileNoteRepository struct {
	path string
	mu   sync.Mutex
}

// NewJSONFileNoteRepository opens the backing file at path, creating it (and
// its directory) with an empty array when it does not exist yet.
func NewJSONFileNoteRepository(path string) (INoteRepository, error) {
	r := &jsonFileNoteRepository{path: path}
	if err := r.bootstrap(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *jsonFileNoteRepository) bootstrap() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	_, err := os.Stat(r.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", r.path, err)
	}
	return r.save([]*entity.Note{})
}

func (r *jsonFileNoteRepository) load() ([]*entity.Note, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []*entity.Note{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", serverutils.ErrStoreUnavailable, r.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []*entity.Note{}, nil
	}

	var notes []*entity.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", serverutils.ErrStoreUnavailable, r.path, err)
	}
	if notes == nil {
		notes = []*entity.Note{}
	}
	return notes, nil
}

func (r *jsonFileNoteRepository) save(notes []*entity.Note) error {
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	data = append(data, '\n')

	return r.replaceFile(data)
}

func (r *jsonFileNoteRepository) GetAll(ctx context.Context) ([]*entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes, err := r.load()
	if err != nil {
		return nil, err
	}
	sortNewestFirst(notes)
	return notes, nil
}

func (r *jsonFileNoteRepository) Create(ctx context.Context, note *entity.Note) (*entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		if n.Id == note.Id {
			return nil, fmt.Errorf("%w: note %s", serverutils.ErrConflict, note.Id)
		}
	}

	stored := *note
	notes = append(notes, &stored)
	if err := r.save(notes); err != nil {
		return nil, err
	}

	out := stored
	return &out, nil
}

func (r *jsonFileNoteRepository) GetById(ctx context.Context, id string) (*entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		if n.Id == id {
			return n, nil
		}
	}
	return nil, serverutils.ErrNotFound
}

func (r *jsonFileNoteRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes, err := r.load()
	if err != nil {
		return err
	}

	kept := notes[:0]
	for _, n := range notes {
		if n.Id != id {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(notes) {
		return nil
	}
	return r.save(kept)
}

func (r *jsonFileNoteRepository) Close() error {
	return nil
}

// replaceFile swaps the backing file for data in one rename. The temp file
// lives next to the target so the rename never crosses a filesystem, and a
// failed write leaves the previous array in place.
func (r *jsonFileNoteRepository) replaceFile(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(r.path), tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("%w: stage write of %s: %v", serverutils.ErrStoreUnavailable, r.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o644); err == nil {
		_, err = tmp.Write(data)
		if err == nil {
			err = tmp.Sync()
		}
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("%w: write %s: %v", serverutils.ErrStoreUnavailable, tmpName, err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("%w: replace %s: %v", serverutils.ErrStoreUnavailable, r.path, err)
	}
	return nil
}
