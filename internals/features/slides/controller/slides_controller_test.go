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
		ok := deleteObjectBestEffort(context.Background(), store, "slides/t/e/deck.pdf")
		assert.False(t, ok)
		assert.Equal(t, []string{"slides/t/e/deck.pdf"}, store.keys)
	})

	t.Run("success", func(t *testing.T) {
		store := &fakeDeleter{}
		ok := deleteObjectBestEffort(context.Background(), store, "slides/t/e/deck.pdf")
		assert.True(t, ok)
	})
}
