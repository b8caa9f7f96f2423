package memory

import (
	"context"
	"sync"
	"testing"

	"cat-adoption/internal/domain/cats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	r := NewCatRepo()

	id1, err := r.Create(ctx, cats.Cat{Name: "Milo", Images: []string{"a.jpg"}})
	require.NoError(t, err)
	id2, err := r.Create(ctx, cats.Cat{Name: "Luna"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)

	got, err := r.GetByID(ctx, id1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg"}, got.Images)

	// la copia devuelta no comparte el slice
	got.Images[0] = "mutated"
	again, _ := r.GetByID(ctx, id1)
	assert.Equal(t, "a.jpg", again.Images[0])

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Milo", list[0].Name)
	assert.Equal(t, []string{}, list[1].Images)

	files, err := r.Delete(ctx, id1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg"}, files)

	_, err = r.GetByID(ctx, id1)
	assert.ErrorIs(t, err, cats.ErrNotFound)
	_, err = r.Delete(ctx, id1)
	assert.ErrorIs(t, err, cats.ErrNotFound)

	// ids no se reutilizan
	id3, err := r.Create(ctx, cats.Cat{Name: "Tom"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), id3)
}

func TestCatRepo_RequiresName(t *testing.T) {
	_, err := NewCatRepo().Create(context.Background(), cats.Cat{Name: " "})
	assert.Error(t, err)
}

func TestCatRepo_ConcurrentCreate(t *testing.T) {
	r := NewCatRepo()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.Create(context.Background(), cats.Cat{Name: "x"})
		}()
	}
	wg.Wait()

	list, err := r.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 50)
	assert.Equal(t, int64(50), list[49].ID)
}
