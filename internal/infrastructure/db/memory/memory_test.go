package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/products-api/internal/core/domain"
	"github.com/99minutos/products-api/internal/core/ports"
)

func TestUserStore_DuplicateEmail(t *testing.T) {
	s := NewUserStore()
	ctx := context.Background()

	u, err := s.Create(ctx, &domain.User{Email: "a@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	_, err = s.Create(ctx, &domain.User{Email: "a@example.com"})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	_, err = s.FindByEmail(ctx, "b@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestProductStore_SaveChecksVersion(t *testing.T) {
	s := NewProductStore()
	ctx := context.Background()

	p := &domain.Product{Name: "lamp", Price: 20, Owner: "u1", Status: domain.ProductActive}
	require.NoError(t, s.Create(ctx, p))

	first, err := s.FindOne(ctx, ports.ProductFilter{ID: p.ID})
	require.NoError(t, err)
	second, err := s.FindOne(ctx, ports.ProductFilter{ID: p.ID})
	require.NoError(t, err)

	first.Name = "desk lamp"
	require.NoError(t, s.Save(ctx, first))
	assert.Equal(t, int64(1), first.Version)

	second.Name = "floor lamp"
	assert.ErrorIs(t, s.Save(ctx, second), domain.ErrProductConflict)

	stored, ok := s.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, "desk lamp", stored.Name)
}

func TestProductStore_ListPages(t *testing.T) {
	s := NewProductStore()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Create(ctx, &domain.Product{Name: "p", Price: 10, Owner: "u1", Status: domain.ProductActive}))
	}
	require.NoError(t, s.Create(ctx, &domain.Product{Name: "other", Price: 10, Owner: "u2", Status: domain.ProductActive}))

	page, total, err := s.List(ctx, ports.ProductFilter{Owner: "u1"}, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page, 1)

	page, total, err = s.List(ctx, ports.ProductFilter{Owner: "u1"}, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Empty(t, page)

	page, total, err = s.List(ctx, ports.ProductFilter{Owner: "u1"}, -100, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}
