package credstore_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lexhub/authcore/pkg/credstore"
)

func TestMemoryStore(t *testing.T) {
	t.Run("put and get", func(t *testing.T) {
		store := credstore.NewMemoryStore()

		store.Put(credstore.KeyAccessToken, "tok-1")

		v, ok := store.Get(credstore.KeyAccessToken)
		assert.True(t, ok)
		assert.Equal(t, "tok-1", v)
	})

	t.Run("get missing key", func(t *testing.T) {
		store := credstore.NewMemoryStore()

		v, ok := store.Get(credstore.KeyRefreshToken)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("put overwrites fully", func(t *testing.T) {
		store := credstore.NewMemoryStore()

		store.Put(credstore.KeyAccessToken, "old")
		store.Put(credstore.KeyAccessToken, "new")

		v, _ := store.Get(credstore.KeyAccessToken)
		assert.Equal(t, "new", v)
	})

	t.Run("remove", func(t *testing.T) {
		store := credstore.NewMemoryStore()

		store.Put(credstore.KeyAccessToken, "tok")
		store.Remove(credstore.KeyAccessToken)

		_, ok := store.Get(credstore.KeyAccessToken)
		assert.False(t, ok)
	})

	t.Run("clear removes everything", func(t *testing.T) {
		store := credstore.NewMemoryStore()

		store.Put(credstore.KeyAccessToken, "a")
		store.Put(credstore.KeyRefreshToken, "b")
		store.Put(credstore.KeyPrincipalSnapshot, "{}")
		store.Clear()

		assert.Equal(t, 0, store.Len())
		for _, key := range []string{
			credstore.KeyAccessToken,
			credstore.KeyRefreshToken,
			credstore.KeyPrincipalSnapshot,
		} {
			_, ok := store.Get(key)
			assert.False(t, ok, "key %s should be absent", key)
		}
	})

	t.Run("concurrent access", func(t *testing.T) {
		store := credstore.NewMemoryStore()

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				store.Put(credstore.KeyAccessToken, "tok")
			}()
			go func() {
				defer wg.Done()
				store.Get(credstore.KeyAccessToken)
			}()
		}
		wg.Wait()
	})
}
