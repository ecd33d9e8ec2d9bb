package suppliers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/stockroom/internal/platform/httpx"
)

type mockRepository struct {
	suppliers  map[int64]*Supplier
	nextID     int64
	referenced map[int64]bool
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		suppliers:  make(map[int64]*Supplier),
		nextID:     1,
		referenced: make(map[int64]bool),
	}
}

func (m *mockRepository) List(ctx context.Context, req ListSuppliersRequest) ([]Supplier, int, error) {
	var result []Supplier
	for _, s := range m.suppliers {
		if req.Name != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(req.Name)) {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	total := len(result)
	if req.Offset >= len(result) {
		return nil, total, nil
	}
	result = result[req.Offset:]
	if req.Limit > 0 && req.Limit < len(result) {
		result = result[:req.Limit]
	}
	return result, total, nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (Supplier, error) {
	s, ok := m.suppliers[id]
	if !ok {
		return Supplier{}, fmt.Errorf("%w: supplier %d", httpx.ErrNotFound, id)
	}
	return *s, nil
}

func (m *mockRepository) Create(ctx context.Context, supplier Supplier) (Supplier, error) {
	supplier.ID = m.nextID
	m.nextID++
	supplier.CreatedAt = time.Now().UTC()
	supplier.UpdatedAt = supplier.CreatedAt
	m.suppliers[supplier.ID] = &supplier
	return supplier, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, updates map[string]any) (Supplier, error) {
	s, ok := m.suppliers[id]
	if !ok {
		return Supplier{}, fmt.Errorf("%w: supplier %d", httpx.ErrNotFound, id)
	}
	if v, ok := updates["name"]; ok {
		s.Name = v.(string)
	}
	if v, ok := updates["email"]; ok {
		s.Email = v.(string)
	}
	if v, ok := updates["phone"]; ok {
		s.Phone = v.(string)
	}
	if v, ok := updates["address"]; ok {
		s.Address = v.(string)
	}
	s.UpdatedAt = time.Now().UTC()
	return *s, nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) (Supplier, error) {
	s, ok := m.suppliers[id]
	if !ok {
		return Supplier{}, fmt.Errorf("%w: supplier %d", httpx.ErrNotFound, id)
	}
	if m.referenced[id] {
		return Supplier{}, fmt.Errorf("%w: items_supplier_id_fkey", httpx.ErrConflict)
	}
	delete(m.suppliers, id)
	return *s, nil
}

func strptr(s string) *string { return &s }

func TestSupplierCreateAndGet(t *testing.T) {
	svc := NewService(newMockRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateSupplierRequest{
		Name:  "Acme Fasteners",
		Email: strptr("orders@acme.example"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Fasteners", got.Name)
	assert.Equal(t, "orders@acme.example", got.Email)
}

func TestSupplierUpdatePartial(t *testing.T) {
	svc := NewService(newMockRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateSupplierRequest{Name: "Acme Fasteners", Phone: strptr("555-0100")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateSupplierRequest{Phone: strptr("555-0199")})
	require.NoError(t, err)
	assert.Equal(t, "555-0199", updated.Phone)
	assert.Equal(t, "Acme Fasteners", updated.Name)
}

func TestSupplierUpdateEmptyPatch(t *testing.T) {
	svc := NewService(newMockRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateSupplierRequest{Name: "Acme Fasteners"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, UpdateSupplierRequest{})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestSupplierDeleteReferencedFails(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateSupplierRequest{Name: "Acme Fasteners"})
	require.NoError(t, err)
	repo.referenced[created.ID] = true

	_, err = svc.Delete(ctx, created.ID)
	require.ErrorIs(t, err, httpx.ErrConflict)

	// The supplier must survive the failed delete.
	_, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
}

func TestSupplierDeleteAbsentFails(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Delete(context.Background(), 77)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestSupplierListFiltersByName(t *testing.T) {
	svc := NewService(newMockRepository())
	ctx := context.Background()

	for _, name := range []string{"Acme Fasteners", "Baltic Lumber", "Acme Tools"} {
		_, err := svc.Create(ctx, CreateSupplierRequest{Name: name})
		require.NoError(t, err)
	}

	result, total, err := svc.List(ctx, ListSuppliersRequest{Name: "acme", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, result, 2)
	assert.Equal(t, "Acme Fasteners", result[0].Name)
	assert.Equal(t, "Acme Tools", result[1].Name)
}
