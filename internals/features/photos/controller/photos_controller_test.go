package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeDeleter struct {
	err  error
	keys []string
}

func (f *fakeDeleter) DeleteObject(_ context.Context, key string) error {
	f.keys = append(f.keys, key)
	return f.err
}

func TestDeleteObjectBestEffort(t *testing.T) {
	t.Run("failure is swallowed", func(t *testing.T) {
		store := &fakeDeleter{err: errors.New("bucket unreachable")}
		ok := deleteObjectBestEffort(context.Background(), store, "photos/t/e/shot.webp")
		assert.False(t, ok)
		assert.Equal(t, []string{"photos/t/e/shot.webp"}, store.keys)
	})

	t.Run("success", func(t *testing.T) {
		store := &fakeDeleter{}
		ok := deleteObjectBestEffort(context.Background(), store, "photos/t/e/shot.webp")
		assert.True(t, ok)
	})
}

func TestWebpFilename(t *testing.T) {
	assert.Equal(t, "group-shot.webp", webpFilename("group-shot.jpg"))
	assert.Equal(t, "stage.webp", webpFilename("stage.PNG"))
	assert.Equal(t, "photo.webp", webpFilename("photo"))
	assert.Equal(t, "a.b.webp", webpFilename("a.b.c"))
	assert.Equal(t, "file.webp", webpFilename("///"))
}
