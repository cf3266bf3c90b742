package catalog

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adriel-M-A/desktop-sales-control/internal/platform/db"
	"github.com/Adriel-M-A/desktop-sales-control/internal/platform/httpx"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	conn, err := db.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.Init(ctx, conn))
	return conn
}

func TestCreateAndGetProduct(t *testing.T) {
	svc := NewService(NewRepository(newTestDB(t)))
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProductRequest{Code: "P1", Name: "Widget", Price: 100})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "P1", created.Code)
	assert.Equal(t, "Widget", created.Name)
	assert.Equal(t, 100.0, created.Price)
	assert.True(t, created.IsActive)
	assert.NotEmpty(t, created.CreatedAt)
}

func TestDuplicateCodeRejected(t *testing.T) {
	conn := newTestDB(t)
	svc := NewService(NewRepository(conn))
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateProductRequest{Code: "P1", Name: "Widget", Price: 100})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateProductRequest{Code: "P1", Name: "Other", Price: 50})
	assert.ErrorIs(t, err, httpx.ErrDuplicate)

	var count int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM products WHERE code = 'P1'`).Scan(&count))
	assert.Equal(t, 1, count)

	got, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
}

func TestInactiveProductStillReservesCode(t *testing.T) {
	svc := NewService(NewRepository(newTestDB(t)))
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateProductRequest{Code: "P1", Name: "Widget", Price: 100})
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, p.ID))

	_, err = svc.Create(ctx, CreateProductRequest{Code: "P1", Name: "Reborn", Price: 80})
	assert.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestListFiltersAndOrder(t *testing.T) {
	svc := NewService(NewRepository(newTestDB(t)))
	ctx := context.Background()

	coffee, err := svc.Create(ctx, CreateProductRequest{Code: "CAFE01", Name: "Café Espresso", Price: 1500})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateProductRequest{Code: "AGUA01", Name: "Agua Mineral", Price: 1200})
	require.NoError(t, err)
	tea, err := svc.Create(ctx, CreateProductRequest{Code: "TE01", Name: "Té Clásico", Price: 1200})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, tea.ID))

	active, err := svc.List(ctx, "", false)
	require.NoError(t, err)
	require.Len(t, active, 2)
	// Newest first.
	assert.Equal(t, "AGUA01", active[0].Code)
	assert.Equal(t, "CAFE01", active[1].Code)

	all, err := svc.List(ctx, "", true)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Substring match against name or code.
	byName, err := svc.List(ctx, "espresso", false)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, coffee.ID, byName[0].ID)

	byCode, err := svc.List(ctx, "AGUA", false)
	require.NoError(t, err)
	require.Len(t, byCode, 1)
	assert.Equal(t, "Agua Mineral", byCode[0].Name)
}

func TestUpdateLeavesCodeAndTimestampAlone(t *testing.T) {
	svc := NewService(NewRepository(newTestDB(t)))
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateProductRequest{Code: "P1", Name: "Widget", Price: 100})
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, p.ID, UpdateProductRequest{Name: "Widget XL", Price: 150}))

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget XL", got.Name)
	assert.Equal(t, 150.0, got.Price)
	assert.Equal(t, p.Code, got.Code)
	assert.Equal(t, p.CreatedAt, got.CreatedAt)
}

func TestUpdateMissingProduct(t *testing.T) {
	svc := NewService(NewRepository(newTestDB(t)))
	err := svc.Update(context.Background(), 999, UpdateProductRequest{Name: "X", Price: 1})
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestFindByCodeOnlyMatchesActive(t *testing.T) {
	svc := NewService(NewRepository(newTestDB(t)))
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateProductRequest{Code: "SCAN01", Name: "Widget", Price: 100})
	require.NoError(t, err)

	found, err := svc.FindByCode(ctx, "SCAN01")
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)

	// Exact match only, used by the scanner flow.
	_, err = svc.FindByCode(ctx, "SCAN")
	assert.ErrorIs(t, err, httpx.ErrNotFound)

	require.NoError(t, svc.Deactivate(ctx, p.ID))
	_, err = svc.FindByCode(ctx, "SCAN01")
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestDeactivateAndReactivate(t *testing.T) {
	svc := NewService(NewRepository(newTestDB(t)))
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateProductRequest{Code: "P1", Name: "Widget", Price: 100})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, p.ID))
	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	require.NoError(t, svc.SetActive(ctx, p.ID, true))
	got, err = svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(NewRepository(newTestDB(t)))
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateProductRequest{Code: "", Name: "Widget", Price: 100})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(ctx, CreateProductRequest{Code: "P1", Name: "  ", Price: 100})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(ctx, CreateProductRequest{Code: "P1", Name: "Widget", Price: -5})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}
