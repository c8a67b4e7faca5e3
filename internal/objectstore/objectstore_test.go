package objectstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/pkg/testutil"
)

func TestMemoryListKeys(t *testing.T) {
	ctx := context.Background()
	modified := time.Date(2020, 9, 1, 12, 0, 0, 0, time.UTC)

	store := NewMemory()
	testutil.Given(t, "a bucket holding documents for two frameworks", func(t *testing.T) {
		store.Put("g-cloud-12/communications/updates.pdf", 512, modified)
		store.Put("g-cloud-12/communications/agreement.pdf", 2048, modified)
		store.Put("g-cloud-11/communications/agreement.pdf", 1024, modified)
	})

	testutil.When(t, "listing one framework's communications", func(t *testing.T) {
		objects, err := store.ListKeys(ctx, "g-cloud-12/communications/")
		require.NoError(t, err)

		testutil.Then(t, "only that framework's keys come back, sorted", func(t *testing.T) {
			require.Len(t, objects, 2)
			assert.Equal(t, "g-cloud-12/communications/agreement.pdf", objects[0].Key)
			assert.Equal(t, "g-cloud-12/communications/updates.pdf", objects[1].Key)
			assert.Equal(t, int64(2048), objects[0].Size)
			assert.Equal(t, modified, objects[0].LastModified)
		})
	})

	testutil.When(t, "listing a prefix with no objects", func(t *testing.T) {
		objects, err := store.ListKeys(ctx, "digital-outcomes-and-specialists-5/")
		require.NoError(t, err)
		assert.Empty(t, objects)
	})
}

func TestMemorySignedURL(t *testing.T) {
	ctx := context.Background()

	store := NewMemory()
	store.Put("g-cloud-12/communications/agreement.pdf", 2048, time.Now())

	url, err := store.SignedURL(ctx, "g-cloud-12/communications/agreement.pdf", 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "https://documents.local/g-cloud-12/communications/agreement.pdf", url)

	_, err = store.SignedURL(ctx, "g-cloud-12/communications/missing.pdf", 30*time.Minute)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryPutOverwrites(t *testing.T) {
	ctx := context.Background()

	store := NewMemory()
	store.Put("key.pdf", 1, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	store.Put("key.pdf", 2, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))

	objects, err := store.ListKeys(ctx, "key")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, int64(2), objects[0].Size)
	assert.Equal(t, 2021, objects[0].LastModified.Year())
}
