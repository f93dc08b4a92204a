package views

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/eslconsole/internal/client/listview"
	"github.com/dmitrijs2005/eslconsole/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// static serves a fixed list, or fails when Err is set.
type static[T any] struct {
	Items []T
	Err   error
}

func (s static[T]) List(ctx context.Context) ([]T, error) { return s.Items, s.Err }
func (s static[T]) Create(ctx context.Context, v T) (T, error) { return v, nil }
func (s static[T]) Update(ctx context.Context, id string, v T) (T, error) {
	return v, nil
}
func (s static[T]) Delete(ctx context.Context, id string) error { return nil }

func load[T any](t *testing.T, d listview.Descriptor[T], items []T) *listview.Controller[T] {
	t.Helper()
	c := listview.New(d, static[T]{Items: items})
	require.NoError(t, c.Load(context.Background()))
	return c
}

func eslIDs(items []models.ESL) []string {
	var out []string
	for _, e := range items {
		out = append(out, e.ID)
	}
	return out
}

func TestESLView_BatteryAndSignalTiers(t *testing.T) {
	c := load(t, ESLView(), models.SampleESLs())

	require.NoError(t, c.SetFilter("battery", models.TierLow))
	assert.Equal(t, []string{"ESL-002", "ESL-003"}, eslIDs(c.Filtered()))

	require.NoError(t, c.SetFilter("battery", models.TierHigh))
	assert.Equal(t, []string{"ESL-001", "ESL-004", "ESL-005"}, eslIDs(c.Filtered()))

	require.NoError(t, c.SetFilter("signal", models.TierMedium))
	assert.Empty(t, c.Filtered())
}

func TestESLView_SearchAndStore(t *testing.T) {
	c := load(t, ESLView(), models.SampleESLs())

	c.SetSearch("milk")
	assert.Equal(t, []string{"ESL-002"}, eslIDs(c.Filtered()))

	c.SetSearch("")
	require.NoError(t, c.SetFilter("store", "Store #002"))
	require.NoError(t, c.SetFilter("status", models.ESLError))
	assert.Equal(t, []string{"ESL-003"}, eslIDs(c.Filtered()))
}

func TestStoreView(t *testing.T) {
	c := load(t, StoreView(), models.SampleStores())

	c.SetSearch("sarah")
	got := c.Filtered()
	require.Len(t, got, 1)
	assert.Equal(t, "Mall Branch", got[0].Name)

	c.SetSearch("")
	require.NoError(t, c.SetFilter("status", models.StoreMaintenance))
	assert.Len(t, c.Filtered(), 1)

	require.NoError(t, c.SetFilter("status", AllStatus))
	names := []string{}
	for _, s := range c.Filtered() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Airport Terminal", "Downtown Store", "Mall Branch", "Suburban Outlet"}, names)
}

func TestProductView_CategoryFacetIsDynamic(t *testing.T) {
	c := load(t, ProductView(), models.SampleProducts())
	require.NoError(t, c.SetFilter("category", "Dairy"))
	assert.Len(t, c.Filtered(), 2)

	require.NoError(t, c.SetFilter("category", "All Categories"))
	require.NoError(t, c.SetFilter("status", models.ProductLowStock))
	assert.Len(t, c.Filtered(), 1)
}

func TestUserView_LastLoginNewestFirst(t *testing.T) {
	c := load(t, UserView(), models.SampleUsers())
	require.NoError(t, c.SetSort("lastLogin"))

	var order []string
	for _, u := range c.Filtered() {
		order = append(order, u.ID)
	}
	assert.Equal(t, []string{"1", "2", "4", "3", "6", "5"}, order)
}

func TestUserView_RoleFilter(t *testing.T) {
	c := load(t, UserView(), models.SampleUsers())
	require.NoError(t, c.SetFilter("role", models.RoleManager))
	assert.Len(t, c.Filtered(), 3)
}

func TestSyncLogView(t *testing.T) {
	c := load(t, SyncLogView(), models.SampleSyncLogs())
	first := c.Filtered()[0]
	assert.Equal(t, "1", first.ID)

	require.NoError(t, c.SetFilter("gateway", "GW-002"))
	require.NoError(t, c.SetFilter("status", models.SyncSuccess))
	assert.Len(t, c.Filtered(), 2)
}

func TestGatewayView_Search(t *testing.T) {
	c := load(t, GatewayView(), models.SampleGateways())
	c.SetSearch("192.168.3")
	got := c.Filtered()
	require.Len(t, got, 1)
	assert.Equal(t, "GW-003", got[0].ID)
}

func TestFallbacks(t *testing.T) {
	c := listview.New(GatewayView(), static[models.Gateway]{Err: errors.New("down")})
	err := c.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Failed to load gateways. Please try again.", c.Snapshot().Error)
	assert.Len(t, c.Snapshot().Items, 4)
	assert.Equal(t, listview.SourceFallback, c.Snapshot().Source)
}
