package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/eslconsole/internal/client/client"
	"github.com/dmitrijs2005/eslconsole/internal/client/export"
	"github.com/dmitrijs2005/eslconsole/internal/client/models"
	"github.com/dmitrijs2005/eslconsole/internal/client/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_ShowsSampleRowsWhenLoadFails(t *testing.T) {
	h := newHarness(t, "")
	h.stores.ListErr = errors.New("connection refused")

	require.NoError(t, h.app.List(context.Background(), nil))

	out := h.out.String()
	assert.Contains(t, out, "Failed to load stores. Please try again.")
	assert.Contains(t, out, sampleMarker)
	assert.Contains(t, out, "Downtown Store")
}

func TestList_LiveRowsAndPaging(t *testing.T) {
	h := newHarness(t, "")
	h.app.config.PageSize = 2
	ctx := context.Background()

	require.NoError(t, h.app.List(ctx, []string{"2"}))

	out := h.out.String()
	assert.Contains(t, out, "page 2/2")
	assert.Contains(t, out, "Mall Branch")
	assert.NotContains(t, out, "Airport Terminal")
	assert.NotContains(t, out, sampleMarker)

	assert.ErrorIs(t, h.app.List(ctx, []string{"zero"}), errUsage)
}

func TestUse(t *testing.T) {
	h := newHarness(t, "")
	ctx := context.Background()

	require.NoError(t, h.app.Use(ctx, []string{"ESLs"}))
	assert.Equal(t, views.ESLs, h.app.current)
	assert.Contains(t, h.out.String(), "ESL-003")

	err := h.app.Use(ctx, []string{"shelves"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown view")
	assert.Equal(t, views.ESLs, h.app.current)
}

func TestSearchFilterSort(t *testing.T) {
	h := newHarness(t, "")
	ctx := context.Background()
	require.NoError(t, h.app.Use(ctx, []string{views.Stores}))

	h.out.Reset()
	require.NoError(t, h.app.Filter(ctx, []string{"status=maintenance"}))
	assert.Contains(t, h.out.String(), "Airport Terminal")
	assert.NotContains(t, h.out.String(), "Downtown Store")
	assert.Contains(t, h.out.String(), "status=maintenance")

	require.NoError(t, h.app.Clear(ctx))
	h.out.Reset()
	require.NoError(t, h.app.Search(ctx, []string{"sarah"}))
	assert.Contains(t, h.out.String(), "Mall Branch")
	assert.NotContains(t, h.out.String(), "Suburban Outlet")

	err := h.app.Filter(ctx, []string{"color=red"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "facets: status")

	err = h.app.Sort(ctx, []string{"size"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keys: name")

	assert.ErrorIs(t, h.app.Filter(ctx, []string{"status"}), errUsage)
}

func TestSelect_UnknownIDReported(t *testing.T) {
	h := newHarness(t, "")
	ctx := context.Background()
	require.NoError(t, h.app.Use(ctx, []string{views.ESLs}))

	require.NoError(t, h.app.Select(ctx, []string{"ESL-001", "ESL-999"}, true))
	assert.Contains(t, h.out.String(), `no row with id "ESL-999"`)
	assert.Contains(t, h.out.String(), "1 selected")

	require.NoError(t, h.app.SelectAll(ctx, true))
	assert.Len(t, h.app.view().Selected(), 5)
}

func TestAdd_Store(t *testing.T) {
	h := newHarness(t, "Uptown\n5th Ave\nAnn\n\n\n\n")

	require.NoError(t, h.app.Add(context.Background()))

	require.Len(t, h.stores.Created, 1)
	got := h.stores.Created[0]
	assert.Equal(t, "Uptown", got.Name)
	assert.Equal(t, "5th Ave", got.Location)
	assert.Equal(t, models.StoreActive, got.Status)
	assert.Contains(t, h.out.String(), "Saved.")
	assert.Contains(t, h.out.String(), "Uptown", "list reloaded after create")
}

func TestAdd_ValidationFailureGivesUp(t *testing.T) {
	h := newHarness(t, "\n\n\n\n\n\nn\n")

	err := h.app.Add(context.Background())

	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Missing, "name")
	assert.Empty(t, h.stores.Created)
	assert.Contains(t, h.out.String(), models.RequiredFieldsMessage)
}

func TestAdd_RetryAfterBackendError(t *testing.T) {
	h := newHarness(t, "Uptown\n5th Ave\nAnn\n\n\n\ny\n\n\n\n\n\n\n")
	h.stores.CreateErr = []error{errors.New("503 service unavailable")}

	require.NoError(t, h.app.Add(context.Background()))

	require.Len(t, h.stores.Created, 1)
	assert.Equal(t, "Uptown", h.stores.Created[0].Name, "draft kept across the retry")
	assert.Contains(t, h.out.String(), "Failed to save store. Please try again.")
	assert.Contains(t, h.out.String(), "Name [Uptown]", "retry offers the previous answers")
}

func TestAdd_ProductRecomputesSellingPrice(t *testing.T) {
	h := newHarness(t, "Tea\n123\n100\n10\ny\nBeverages\n5\n\n")
	require.NoError(t, h.app.Use(context.Background(), []string{views.Products}))

	require.NoError(t, h.app.Add(context.Background()))

	require.Len(t, h.products.Created, 1)
	p := h.products.Created[0]
	assert.InDelta(t, 90.0, p.SellingPrice, 0.001)
	assert.Equal(t, "Beverages", p.Category)
	assert.Equal(t, 5, p.Stock)
	assert.Contains(t, h.out.String(), "selling price recalculated")
}

func TestAdd_ESLWithoutStoresIsRejected(t *testing.T) {
	h := newHarness(t, "2.9 inch\nOrganic Milk\n\n\n\nn\n")
	h.stores.items = nil
	require.NoError(t, h.app.Use(context.Background(), []string{views.ESLs}))

	err := h.app.Add(context.Background())

	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"storeName"}, ve.Missing)
	assert.Contains(t, h.out.String(), "Store: nothing to choose from")
	assert.Empty(t, h.esls.Created)
}

func TestAdd_UserAsksForPassword(t *testing.T) {
	stubPassword(t, "initial-pw")
	h := newHarness(t, "Ann\nann@example.com\ntechnician\nDowntown Store, Mall Branch\n\n")
	require.NoError(t, h.app.Use(context.Background(), []string{views.Users}))

	require.NoError(t, h.app.Add(context.Background()))

	require.Len(t, h.users.Created, 1)
	u := h.users.Created[0]
	assert.Equal(t, models.RoleTechnician, u.Role)
	assert.Equal(t, []string{"Downtown Store", "Mall Branch"}, u.AssignedStores)
	assert.Equal(t, models.UserPending, u.Status)
	assert.Equal(t, "initial-pw", u.Password)
}

func TestEdit_Store(t *testing.T) {
	h := newHarness(t, "Downtown Central\n\n\n\n\n\n")
	ctx := context.Background()
	require.NoError(t, h.app.Use(ctx, []string{views.Stores}))

	require.NoError(t, h.app.Edit(ctx, []string{"1"}))

	got, ok := h.stores.Updated["1"]
	require.True(t, ok)
	assert.Equal(t, "Downtown Central", got.Name)
	assert.Equal(t, "John Smith", got.Manager, "untouched fields keep their values")
	assert.Equal(t, 245, got.ESLCount)

	err := h.app.Edit(ctx, []string{"zzz"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no stores with id "zzz"`)
}

func TestDelete_AsksFirst(t *testing.T) {
	h := newHarness(t, "n\ny\n")
	ctx := context.Background()
	require.NoError(t, h.app.Use(ctx, []string{views.Stores}))

	require.NoError(t, h.app.Delete(ctx, []string{"1"}))
	assert.Empty(t, h.stores.Deleted)

	require.NoError(t, h.app.Delete(ctx, []string{"1"}))
	assert.Equal(t, []string{"1"}, h.stores.Deleted)
	assert.Contains(t, h.out.String(), "Deleted.")
}

func TestBulkDelete_PartialFailure(t *testing.T) {
	h := newHarness(t, "y\n")
	ctx := context.Background()
	require.NoError(t, h.app.Use(ctx, []string{views.ESLs}))

	err := h.app.BulkDelete(ctx)
	require.EqualError(t, err, "nothing selected")

	require.NoError(t, h.app.Select(ctx, []string{"ESL-001", "ESL-002"}, true))
	h.esls.DeleteErr["ESL-002"] = errors.New("label busy")

	err = h.app.BulkDelete(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed: ESL-002")
	assert.Equal(t, []string{"ESL-001"}, h.esls.Deleted)
	assert.Equal(t, []string{"ESL-002"}, h.app.view().Selected(), "failed ids stay selected")
	assert.Contains(t, h.out.String(), "Deleted 1.")
}

func TestReadOnlyView(t *testing.T) {
	h := newHarness(t, "y\n")
	ctx := context.Background()
	require.NoError(t, h.app.Use(ctx, []string{views.SyncLogs}))

	assert.ErrorIs(t, h.app.Add(ctx), errReadOnly)
	assert.ErrorIs(t, h.app.Edit(ctx, []string{"1"}), errReadOnly)
	assert.ErrorIs(t, h.app.Delete(ctx, []string{"1"}), errReadOnly)
	assert.Empty(t, h.logs.Deleted)
}

func TestExport_SelectedRows(t *testing.T) {
	h := newHarness(t, "")
	ctx := context.Background()
	require.NoError(t, h.app.Use(ctx, []string{views.ESLs}))

	require.NoError(t, h.app.Exports(ctx))
	assert.Contains(t, h.out.String(), "No exports yet.")

	require.NoError(t, h.app.Select(ctx, []string{"ESL-003"}, true))
	require.NoError(t, h.app.Export(ctx, []string{"json"}))

	require.Len(t, h.exports.Calls, 1)
	call := h.exports.Calls[0]
	assert.Equal(t, views.ESLs, call.View)
	assert.Equal(t, export.FormatJSON, call.Format)
	assert.Equal(t, 1, call.Rows)
	assert.Contains(t, call.Data, "ESL-003")
	assert.NotContains(t, call.Data, "ESL-001")
	assert.Contains(t, h.out.String(), "Exported 1 rows to exports/esls.json")

	h.out.Reset()
	require.NoError(t, h.app.Exports(ctx))
	assert.Contains(t, h.out.String(), "exports/esls.json")
}

func TestExport_FilteredViewWhenNothingSelected(t *testing.T) {
	h := newHarness(t, "")
	ctx := context.Background()
	require.NoError(t, h.app.Use(ctx, []string{views.Stores}))
	require.NoError(t, h.app.Filter(ctx, []string{"status=active"}))

	require.NoError(t, h.app.Export(ctx, nil))

	require.Len(t, h.exports.Calls, 1)
	assert.Equal(t, export.FormatCSV, h.exports.Calls[0].Format)
	assert.Equal(t, 3, h.exports.Calls[0].Rows)
	assert.NotContains(t, h.exports.Calls[0].Data, "Airport Terminal")

	require.Error(t, h.app.Export(ctx, []string{"xml"}))
}

func TestCategories(t *testing.T) {
	h := newHarness(t, "")
	ctx := context.Background()

	require.NoError(t, h.app.AddCategory(ctx, []string{"Snacks"}))
	assert.Contains(t, h.out.String(), `Category "Snacks" added.`)

	h.categories.CreateErr = errors.New("403 forbidden")
	require.NoError(t, h.app.AddCategory(ctx, []string{"Frozen", "Food"}))
	assert.Contains(t, h.out.String(), "added locally")

	err := h.app.AddCategory(ctx, []string{"dairy"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	h.out.Reset()
	require.NoError(t, h.app.Categories(ctx))
	for _, name := range []string{"Beverages", "Dairy", "Snacks", "Frozen Food"} {
		assert.Contains(t, h.out.String(), name)
	}
}

func TestDashboard(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.app.Dashboard(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "Dashboard")
	assert.Contains(t, out, "53%")
	assert.Contains(t, out, "Recent activity")
	assert.Contains(t, out, "Connection timeout - ESL not responding")
	assert.NotContains(t, out, sampleMarker)
}

func TestDashboard_FallbackMarked(t *testing.T) {
	h := newHarness(t, "")
	h.esls.ListErr = errors.New("down")

	require.NoError(t, h.app.Dashboard(context.Background()))
	assert.Contains(t, h.out.String(), sampleMarker)
}

func TestDelete_FailureMessageHidesCause(t *testing.T) {
	causes := map[string]error{
		"offline":  fmt.Errorf("%w: dial tcp 127.0.0.1:8000: connect: connection refused", client.ErrUnavailable),
		"rejected": &client.StatusError{Code: 409, Detail: "Store has ESLs"},
	}

	shown := map[string]string{}
	for name, cause := range causes {
		t.Run(name, func(t *testing.T) {
			out := capturePrint(t)
			h := newHarness(t, "y\n")
			ctx := context.Background()
			require.NoError(t, h.app.Use(ctx, []string{views.Stores}))
			h.stores.DeleteErr["1"] = cause

			err := h.app.Delete(ctx, []string{"1"})
			require.Error(t, err)
			report("delete", err)

			require.Len(t, *out, 1)
			shown[name] = (*out)[0]
			assert.Contains(t, shown[name], "Error: Failed to delete store. Please try again.")
			assert.NotContains(t, shown[name], "connection refused")
			assert.NotContains(t, shown[name], "Store has ESLs")
		})
	}
	assert.Equal(t, shown["offline"], shown["rejected"])
}

func TestAdd_FailureMessageHidesCause(t *testing.T) {
	h := newHarness(t, "Uptown\n5th Ave\nAnn\n\n\n\nn\n")
	h.stores.CreateErr = []error{&client.StatusError{Code: 500, Detail: "db locked"}}

	require.Error(t, h.app.Add(context.Background()))

	assert.Contains(t, h.out.String(), "Failed to save store. Please try again.")
	assert.NotContains(t, h.out.String(), "db locked")
}
