package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"note-share-be/internal/entity"
	"note-share-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNote(id string, createdAt time.Time) *entity.Note {
	return &entity.Note{
		Id:        id,
		Title:     "Note " + id,
		Subject:   "Math",
		Desc:      "week one",
		Type:      "note",
		FileName:  id + ".pdf",
		FileUrl:   "https://files.example.com/bucket/raw/notes/note/" + id + ".pdf",
		PublicId:  "notes/note/" + id + ".pdf",
		FileType:  "application/pdf",
		FileSize:  2048,
		CreatedAt: createdAt,
	}
}

// runRepositoryContract exercises the behaviour every INoteRepository backend
// must share.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) INoteRepository) {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("round trip", func(t *testing.T) {
		repo := newRepo(t)
		n := sampleNote("n1", base)

		stored, err := repo.Create(ctx, n)
		require.NoError(t, err)
		assert.Equal(t, n, stored)

		got, err := repo.GetById(ctx, "n1")
		require.NoError(t, err)
		assert.Equal(t, n, got)
	})

	t.Run("two notes listed once each", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Create(ctx, sampleNote("a", base))
		require.NoError(t, err)
		_, err = repo.Create(ctx, sampleNote("b", base.Add(time.Second)))
		require.NoError(t, err)

		notes, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.ElementsMatch(t, []string{"a", "b"}, []string{notes[0].Id, notes[1].Id})
	})

	t.Run("newest first", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Create(ctx, sampleNote("old", base))
		require.NoError(t, err)
		_, err = repo.Create(ctx, sampleNote("new", base.Add(time.Hour)))
		require.NoError(t, err)
		_, err = repo.Create(ctx, sampleNote("mid", base.Add(time.Minute)))
		require.NoError(t, err)

		notes, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 3)
		assert.Equal(t, "new", notes[0].Id)
		assert.Equal(t, "mid", notes[1].Id)
		assert.Equal(t, "old", notes[2].Id)
	})

	t.Run("empty store lists nothing", func(t *testing.T) {
		repo := newRepo(t)
		notes, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.GetById(ctx, "missing")
		assert.ErrorIs(t, err, serverutils.ErrNotFound)
	})

	t.Run("delete removes the note", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Create(ctx, sampleNote("a", base))
		require.NoError(t, err)
		_, err = repo.Create(ctx, sampleNote("b", base))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, "a"))

		notes, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, "b", notes[0].Id)

		_, err = repo.GetById(ctx, "a")
		assert.ErrorIs(t, err, serverutils.ErrNotFound)
	})

	t.Run("delete of absent id is a no-op", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Create(ctx, sampleNote("a", base))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, "missing"))

		notes, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, "a", notes[0].Id)
	})

	t.Run("duplicate id conflicts", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Create(ctx, sampleNote("a", base))
		require.NoError(t, err)

		_, err = repo.Create(ctx, sampleNote("a", base.Add(time.Second)))
		assert.ErrorIs(t, err, serverutils.ErrConflict)
	})

	t.Run("concurrent creates are all kept", func(t *testing.T) {
		repo := newRepo(t)
		const writers = 20

		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := repo.Create(ctx, sampleNote(fmt.Sprintf("c%02d", i), base.Add(time.Duration(i)*time.Second)))
				errs <- err
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		notes, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, notes, writers)
	})
}
