package cart

import (
	"context"
	"testing"

	"github.com/mercadito-store/storefront-api/internal/config"
	"github.com/mercadito-store/storefront-api/internal/models"
	"github.com/mercadito-store/storefront-api/internal/storage"
	"github.com/mercadito-store/storefront-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const device = "dev-1"

var (
	laptop = models.Product{ID: "p1", Name: "Laptop Dell XPS 13", Price: 800, Category: "Tecnología", Available: true}
	sofa   = models.Product{ID: "p2", Name: "Sofá de 3 plazas", Price: 400, Category: "Muebles", Available: true}
)

func newTestStore(t *testing.T, mode config.CartMode) *Store {
	t.Helper()
	return NewStore(storage.NewMemoryStore(), mode, logger.New("error"))
}

// checkTotals verifies the derived fields against the item list, per mode.
func checkTotals(t *testing.T, s *Store, c models.Cart) {
	t.Helper()

	var total float64
	count := 0
	for _, item := range c.Items {
		if s.Mode() == config.CartModeQuantity {
			total += item.Product.Price * float64(item.Quantity)
			count += item.Quantity
		} else {
			total += item.Product.Price
			count++
		}
	}

	assert.Equal(t, total, c.Total, "total must match the item list")
	assert.Equal(t, count, c.ItemCount, "item count must match the item list")
}

func TestGet_EmptyWhenNothingPersisted(t *testing.T) {
	s := newTestStore(t, config.CartModeQuantity)

	c := s.Get(context.Background(), device)

	assert.Empty(t, c.Items)
	assert.Zero(t, c.Total)
	assert.Zero(t, c.ItemCount)
}

func TestGet_CorruptDataTreatedAsEmpty(t *testing.T) {
	slots := storage.NewMemoryStore()
	require.NoError(t, slots.Put(context.Background(), "cart:"+device, []byte("{{{not json")))

	s := NewStore(slots, config.CartModeQuantity, logger.New("error"))
	c := s.Get(context.Background(), device)

	assert.Empty(t, c.Items)
	assert.Zero(t, c.Total)
}

func TestAdd_QuantityMode(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, config.CartModeQuantity)

	c, added, err := s.Add(ctx, device, laptop, 1)
	require.NoError(t, err)
	assert.True(t, added)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Items[0].Quantity)
	checkTotals(t, s, c)

	// Same product again: one item, quantity 2
	c, added, err = s.Add(ctx, device, laptop, 1)
	require.NoError(t, err)
	assert.True(t, added)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 1600.0, c.Total)
	assert.Equal(t, 2, c.ItemCount)

	// Mutations persist: a fresh read sees the same cart
	checkTotals(t, s, s.Get(ctx, device))
	assert.Equal(t, c, s.Get(ctx, device))
}

func TestAdd_DefaultsQuantityToOne(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, config.CartModeQuantity)

	c, _, err := s.Add(ctx, device, laptop, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Items[0].Quantity)

	c, _, err = s.Add(ctx, device, sofa, -3)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Items[1].Quantity)
}

func TestAdd_PresenceMode(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, config.CartModePresence)

	c, added, err := s.Add(ctx, device, laptop, 1)
	require.NoError(t, err)
	assert.True(t, added)
	require.Len(t, c.Items, 1)

	// Second add of the same product is a signalled no-op
	c, added, err = s.Add(ctx, device, laptop, 5)
	require.NoError(t, err)
	assert.False(t, added)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Items[0].Quantity)

	c, _, err = s.Add(ctx, device, sofa, 1)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, c.Total, "presence totals are plain price sums")
	assert.Equal(t, 2, c.ItemCount)
	checkTotals(t, s, c)
}

func TestAdd_InsertionOrderPreserved(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, config.CartModeQuantity)

	s.Add(ctx, device, sofa, 1)
	s.Add(ctx, device, laptop, 1)
	s.Add(ctx, device, sofa, 1) // bumps quantity, keeps position

	c := s.Get(ctx, device)
	require.Len(t, c.Items, 2)
	assert.Equal(t, "p2", c.Items[0].Product.ID)
	assert.Equal(t, "p1", c.Items[1].Product.ID)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, config.CartModeQuantity)

	s.Add(ctx, device, laptop, 2)
	s.Add(ctx, device, sofa, 1)

	c, err := s.Remove(ctx, device, laptop.ID)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, sofa.ID, c.Items[0].Product.ID)
	checkTotals(t, s, c)
}

func TestRemove_UnknownIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, config.CartModeQuantity)

	s.Add(ctx, device, laptop, 2)
	before := s.Get(ctx, device)

	c, err := s.Remove(ctx, device, "does-not-exist")
	require.NoError(t, err)
	assert.Equal(t, before, c, "cart must be unchanged")
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, config.CartModeQuantity)

	s.Add(ctx, device, laptop, 1)

	c, err := s.UpdateQuantity(ctx, device, laptop.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, 2400.0, c.Total)
	checkTotals(t, s, c)
}

func TestUpdateQuantity_ZeroOrLessRemoves(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, config.CartModeQuantity)

	for _, quantity := range []int{0, -1} {
		s.Add(ctx, device, laptop, 2)

		c, err := s.UpdateQuantity(ctx, device, laptop.ID, quantity)
		require.NoError(t, err)
		assert.Empty(t, c.Items, "quantity %d should remove the item", quantity)
		assert.Zero(t, c.Total)
	}
}

func TestUpdateQuantity_PresenceModeRejected(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, config.CartModePresence)

	s.Add(ctx, device, laptop, 1)

	_, err := s.UpdateQuantity(ctx, device, laptop.ID, 3)
	assert.ErrorIs(t, err, ErrQuantityUnsupported)
}

func TestContains(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, config.CartModePresence)

	s.Add(ctx, device, laptop, 1)

	assert.True(t, s.Contains(ctx, device, laptop.ID))
	assert.False(t, s.Contains(ctx, device, sofa.ID))
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, config.CartModeQuantity)

	s.Add(ctx, device, laptop, 2)
	s.Add(ctx, device, sofa, 1)

	c, err := s.Clear(ctx, device)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.Zero(t, c.Total)
	assert.Zero(t, c.ItemCount)

	// The cleared cart is what a fresh read returns
	assert.Equal(t, c, s.Get(ctx, device))
}

func TestCartsAreScopedPerDevice(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, config.CartModeQuantity)

	s.Add(ctx, "dev-a", laptop, 1)
	s.Add(ctx, "dev-b", sofa, 1)

	a := s.Get(ctx, "dev-a")
	b := s.Get(ctx, "dev-b")
	require.Len(t, a.Items, 1)
	require.Len(t, b.Items, 1)
	assert.Equal(t, laptop.ID, a.Items[0].Product.ID)
	assert.Equal(t, sofa.ID, b.Items[0].Product.ID)
}

func TestTotalsHoldAfterAnyMutationSequence(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, config.CartModeQuantity)

	s.Add(ctx, device, laptop, 2)
	s.Add(ctx, device, sofa, 1)
	s.UpdateQuantity(ctx, device, sofa.ID, 4)
	s.Remove(ctx, device, laptop.ID)
	s.Add(ctx, device, laptop, 1)

	checkTotals(t, s, s.Get(ctx, device))
}
