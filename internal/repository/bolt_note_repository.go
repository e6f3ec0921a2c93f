package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"note-share-be/internal/entity"
	"note-share-be/internal/pkg/serverutils"

	bolt "go.etcd.io/bbolt"
)

var notesBucket = []byte("notes")

var errNoteExists = errors.New("note exists")

type boltNoteRepository struct {
	db *bolt.DB
}

func NewBoltNoteRepository(path string) (INoteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(notesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create notes bucket: %w", err)
	}

	return &boltNoteRepository{db: db}, nil
}

func (r *boltNoteRepository) GetAll(ctx context.Context) ([]*entity.Note, error) {
	notes := []*entity.Note{}
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(notesBucket).ForEach(func(k, v []byte) error {
			var n entity.Note
			if err := json.Unmarshal(v, &n); err != nil {
				return fmt.Errorf("decode note %s: %w", k, err)
			}
			notes = append(notes, &n)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", serverutils.ErrStoreUnavailable, err)
	}

	sortNewestFirst(notes)
	return notes, nil
}

func (r *boltNoteRepository) Create(ctx context.Context, note *entity.Note) (*entity.Note, error) {
	encoded, err := json.Marshal(note)
	if err != nil {
		return nil, fmt.Errorf("encode note: %w", err)
	}

	err = r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(notesBucket)
		if b.Get([]byte(note.Id)) != nil {
			return errNoteExists
		}
		return b.Put([]byte(note.Id), encoded)
	})
	if errors.Is(err, errNoteExists) {
		return nil, fmt.Errorf("%w: note %s", serverutils.ErrConflict, note.Id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: put note: %v", serverutils.ErrStoreUnavailable, err)
	}

	stored := *note
	return &stored, nil
}

func (r *boltNoteRepository) GetById(ctx context.Context, id string) (*entity.Note, error) {
	var note *entity.Note
	err := r.db.View(func(tx *bolt.Tx) error {
		encoded := tx.Bucket(notesBucket).Get([]byte(id))
		if encoded == nil {
			return nil
		}
		note = &entity.Note{}
		return json.Unmarshal(encoded, note)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get note %s: %v", serverutils.ErrStoreUnavailable, id, err)
	}
	if note == nil {
		return nil, serverutils.ErrNotFound
	}
	return note, nil
}

func (r *boltNoteRepository) Delete(ctx context.Context, id string) error {
	err := r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(notesBucket).Delete([]byte(id))
	})
	if err != nil {
		return fmt.Errorf("%w: delete note %s: %v", serverutils.ErrStoreUnavailable, id, err)
	}
	return nil
}

func (r *boltNoteRepository) Close() error {
	return r.db.Close()
}
