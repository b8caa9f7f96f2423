package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cat-adoption/internal/domain/cats"
	"cat-adoption/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres levanta un postgres descartable. Requiere Docker.
func startPostgres(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode (requires Docker)")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       "cats",
				"POSTGRES_USER":     "cats",
				"POSTGRES_PASSWORD": "cats",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://cats:cats@%s:%s/cats?sslmode=disable", host, port.Port())
}

func TestCatsRepo_Integration(t *testing.T) {
	dsn := startPostgres(t)
	ctx := context.Background()

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db, logger.NewNop()))
	// segunda corrida: sin cambios
	require.NoError(t, Migrate(db, logger.NewNop()))

	repo := NewCatsRepo(db)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	id1, err := repo.Create(ctx, cats.Cat{
		Name:           "Milo",
		AgeDays:        365,
		Gender:         "Male",
		Sterilized:     "Yes",
		PrimaryBreed:   "Domestic Shorthair",
		PrimaryColor:   "Black",
		IntakeType:     "Stray",
		Status:         cats.StatusAvailable,
		AdoptionChance: 81.25,
		Images:         []string{"a_milo.jpg", "b_milo.jpg"},
		CreatedAt:      created,
	})
	require.NoError(t, err)

	id2, err := repo.Create(ctx, cats.Cat{Name: "Luna", AgeDays: 30, Status: cats.StatusAdopted, CreatedAt: created})
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	got, err := repo.GetByID(ctx, id1)
	require.NoError(t, err)
	assert.Equal(t, "Milo", got.Name)
	assert.Equal(t, 81.25, got.AdoptionChance)
	assert.Equal(t, []string{"a_milo.jpg", "b_milo.jpg"}, got.Images)
	assert.True(t, created.Equal(got.CreatedAt))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, id1, list[0].ID)
	assert.Equal(t, []string{}, list[1].Images)

	files, err := repo.Delete(ctx, id1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a_milo.jpg", "b_milo.jpg"}, files)

	var orphans int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT count(*) FROM cat_images WHERE cat_id = $1`, id1).Scan(&orphans))
	assert.Zero(t, orphans)

	_, err = repo.GetByID(ctx, id1)
	assert.ErrorIs(t, err, cats.ErrNotFound)
	_, err = repo.Delete(ctx, id1)
	assert.ErrorIs(t, err, cats.ErrNotFound)
}
