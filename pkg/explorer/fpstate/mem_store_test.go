package fpstate

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestMemStore(t *testing.T) {
	t.Parallel()
	store := NewMemStore()

	var value string
	found, err := store.Get(KeyLastDirectory, &value)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, store.Set(KeyLastDirectory, "/srv"))
	found, err = store.Get(KeyLastDirectory, &value)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "/srv", value)
}

func TestMemStore_UnmarshalableValue(t *testing.T) {
	t.Parallel()
	store := NewMemStore()
	assert.Error(t, store.Set("bad", make(chan int)))
}

func TestMemStore_TypeMismatch(t *testing.T) {
	t.Parallel()
	store := NewMemStore()
	assert.NoError(t, store.Set(KeyLastDirectory, 42))

	var value string
	found, err := store.Get(KeyLastDirectory, &value)
	assert.Error(t, err)
	assert.False(t, found)
}
