//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Customers-api/internal/domain"
	"github.com/jhoicas/Customers-api/internal/domain/entity"
	"github.com/jhoicas/Customers-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Customers-api/pkg/config"
)

// startPostgres levanta un contenedor efímero y aplica el esquema.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("customers_test"),
		tcpostgres.WithUsername("customers"),
		tcpostgres.WithPassword("customers_test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "no se pudo iniciar postgres")
	t.Cleanup(func() {
		if err := ctr.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, DBName: "customers_test"}, postgres.PoolOptions{Tracing: true})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	require.NoError(t, postgres.Migrate(ctx, pool), "la migración debe ser idempotente")
	return pool
}

func TestCustomerRepo_Postgres(t *testing.T) {
	pool := startPostgres(t)
	repo := postgres.NewCustomerRepository(pool)
	ctx := context.Background()

	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 123000, time.UTC)
	id, err := repo.Add(ctx, entity.NewCustomer{
		Name: "Ana", Email: "ana@x.com", Document: "123.456.789-00", Phone: "(11)99999-0000", Status: entity.StatusActive,
		CreatedAt: createdAt,
	})
	require.NoError(t, err)
	_, err = repo.Add(ctx, entity.NewCustomer{Name: "João Érico", Status: entity.StatusWaitingForActivation})
	require.NoError(t, err)

	t.Run("find all en orden de alta", func(t *testing.T) {
		list, err := repo.FindAll(ctx, entity.CustomerFilter{})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, id, list[0].ID)
		assert.Equal(t, "123.456.789-00", list[0].Document)
		assert.True(t, createdAt.Equal(list[0].CreatedAt))
		assert.Equal(t, entity.StatusWaitingForActivation, list[1].Status)
	})

	t.Run("búsqueda sin acentos", func(t *testing.T) {
		list, err := repo.FindAll(ctx, entity.CustomerFilter{Search: "joao eri"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "João Érico", list[0].Name)
	})

	t.Run("update parcial", func(t *testing.T) {
		disabled := entity.StatusDisabled
		require.NoError(t, repo.Update(ctx, id, entity.CustomerPatch{Status: &disabled}))
		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusDisabled, got.Status)
		assert.Equal(t, "Ana", got.Name)
		assert.Equal(t, "(11)99999-0000", got.Phone)
		assert.True(t, !got.UpdatedAt.Before(got.CreatedAt))
	})

	t.Run("ids desconocidos", func(t *testing.T) {
		name := "x"
		assert.ErrorIs(t, repo.Update(ctx, "00000000-0000-0000-0000-000000000000", entity.CustomerPatch{Name: &name}), domain.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, "no-es-uuid"), domain.ErrNotFound)
		_, err := repo.GetByID(ctx, "no-es-uuid")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, id))
		assert.ErrorIs(t, repo.Delete(ctx, id), domain.ErrNotFound)
		list, err := repo.FindAll(ctx, entity.CustomerFilter{})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}

func TestUserRepo_Postgres(t *testing.T) {
	pool := startPostgres(t)
	repo := postgres.NewUserRepository(pool)
	ctx := context.Background()
	now := time.Now().UTC()

	u := &entity.User{ID: "11111111-1111-1111-1111-111111111111", Email: "op@x.com", PasswordHash: "h", Name: "Op",
		Role: entity.RoleOperator, Status: entity.UserActive, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, u))

	dup := *u
	dup.ID = "22222222-2222-2222-2222-222222222222"
	dup.Email = "OP@x.com"
	assert.ErrorIs(t, repo.Create(ctx, &dup), domain.ErrEmailAlreadyExists)

	got, err := repo.GetByEmail(ctx, "Op@X.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	missing, err := repo.GetByID(ctx, "33333333-3333-3333-3333-333333333333")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
