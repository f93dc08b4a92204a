package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/eslconsole/internal/client/forms"
	"github.com/dmitrijs2005/eslconsole/internal/client/listview"
	"github.com/dmitrijs2005/eslconsole/internal/client/models"
	"github.com/dmitrijs2005/eslconsole/internal/client/refdata"
	"github.com/dmitrijs2005/eslconsole/internal/client/views"
	"github.com/dmitrijs2005/eslconsole/internal/logging"
	"github.com/dmitrijs2005/eslconsole/internal/timex"
)

// Resources are the backend collections behind the views.
type Resources struct {
	Stores     listview.Resource[models.Store]
	Products   listview.Resource[models.Product]
	ESLs       listview.Resource[models.ESL]
	Gateways   listview.Resource[models.Gateway]
	Users      listview.Resource[models.User]
	SyncLogs   listview.Resource[models.SyncLog]
	Categories refdata.CategoryClient
}

type viewDeps struct {
	options         *refdata.Options
	log             logging.Logger
	bulkConcurrency int
	now             func() time.Time
}

func (d viewDeps) listOptions() []listview.Option {
	return []listview.Option{
		listview.WithLogger(d.log),
		listview.WithBulkConcurrency(d.bulkConcurrency),
	}
}

func (d viewDeps) formOptions() []forms.Option {
	return []forms.Option{
		forms.WithLogger(d.log),
		forms.WithClock(d.now),
		forms.WithOnSuccess(func(context.Context) { d.options.Invalidate() }),
	}
}

func newEntityView[T any](name string, desc listview.Descriptor[T], res listview.Resource[T], spec *forms.Spec[T], d viewDeps) *entityView[T] {
	v := &entityView[T]{
		name: name,
		ctrl: listview.New(desc, res, d.listOptions()...),
	}
	if spec != nil {
		v.modal = forms.New[T](v.ctrl, *spec, d.formOptions()...)
	}
	return v
}

func buildViews(res Resources, d viewDeps) map[string]viewer {
	storeForm := forms.StoreForm()
	stores := newEntityView(views.Stores, views.StoreView(), res.Stores, &storeForm, d)
	stores.columns = []string{"ID", "Name", "Location", "Manager", "ESLs", "Status", "Last Sync"}
	stores.row = func(s models.Store) []string {
		return []string{s.ID, s.Name, s.Location, s.Manager, strconv.Itoa(s.ESLCount), badge(s.Status), s.LastSync}
	}
	stores.fill = fillStore

	productForm := forms.ProductForm()
	products := newEntityView(views.Products, views.ProductView(), res.Products, &productForm, d)
	products.columns = []string{"ID", "Name", "Barcode", "MRP", "Discount", "Price", "Category", "Stock", "Status"}
	products.row = func(p models.Product) []string {
		return []string{
			p.ID, p.Name, p.Barcode, money(p.MRP), fmt.Sprintf("%g%%", p.Discount), money(p.SellingPrice),
			p.Category, strconv.Itoa(p.Stock), badge(p.Status),
		}
	}
	products.fill = fillProduct(d.options)
	products.blur = forms.BlurPricing

	eslForm := forms.ESLForm()
	esls := newEntityView(views.ESLs, views.ESLView(), res.ESLs, &eslForm, d)
	esls.columns = []string{"ID", "Size", "Product", "Store", "Battery", "Signal", "Status", "Last Sync"}
	esls.row = func(e models.ESL) []string {
		last := e.LastSync
		if e.IsRecentlySync {
			last = okStyle.Render("● ") + last
		}
		return []string{
			e.ID, e.LabelSize, e.ProductName, e.StoreName,
			fmt.Sprintf("%d%% %s", e.BatteryLevel, models.LevelTier(e.BatteryLevel)),
			signal(e.SignalStrength), badge(e.Status), last,
		}
	}
	esls.fill = fillESL(d.options)

	gatewayForm := forms.GatewayForm()
	gateways := newEntityView(views.Gateways, views.GatewayView(), res.Gateways, &gatewayForm, d)
	gateways.columns = []string{"ID", "Store", "IP Address", "Firmware", "Heartbeat", "Status", "Syncs", "Errors", "Uptime"}
	gateways.row = func(g models.Gateway) []string {
		return []string{
			g.ID, g.StoreName, g.IPAddress, g.FirmwareVersion, timex.RelativeTimestamp(d.now(), g.LastHeartbeat),
			badge(g.Status), strconv.Itoa(g.SyncCount), strconv.Itoa(g.ErrorCount), g.Uptime,
		}
	}
	gateways.fill = fillGateway(d.options)

	userForm := forms.UserForm()
	users := newEntityView(views.Users, views.UserView(), res.Users, &userForm, d)
	users.columns = []string{"ID", "Name", "Email", "Role", "Stores", "Last Login", "Status"}
	users.row = func(u models.User) []string {
		stores := strings.Join(u.AssignedStores, ", ")
		if stores == "" {
			stores = mutedStyle.Render("none")
		}
		return []string{u.ID, u.Name, u.Email, u.Role, stores, timex.RelativeTimestamp(d.now(), u.LastLogin), badge(u.Status)}
	}
	users.fill = fillUser

	logs := newEntityView[models.SyncLog](views.SyncLogs, views.SyncLogView(), res.SyncLogs, nil, d)
	logs.columns = []string{"ID", "ESL", "Product", "Gateway", "Store", "Status", "Synced", "Duration", "Error"}
	logs.row = func(l models.SyncLog) []string {
		return []string{
			l.ID, l.ESLID, l.ProductName, l.GatewayID, l.StoreName, badge(l.Status),
			timex.RelativeTimestamp(d.now(), l.SyncedAt), l.Duration, l.ErrorMessage,
		}
	}

	return map[string]viewer{
		views.Stores:   stores,
		views.Products: products,
		views.ESLs:     esls,
		views.Gateways: gateways,
		views.Users:    users,
		views.SyncLogs: logs,
	}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func fillStore(_ context.Context, f *form, s *models.Store, _ forms.Mode) {
	f.text("Name", &s.Name)
	f.text("Location", &s.Location)
	f.text("Manager", &s.Manager)
	f.text("Manager ID", &s.ManagerID)
	f.int("ESL count", &s.ESLCount)
	f.choice("Status", models.StoreStatuses, "", &s.Status)
}

func fillProduct(opts *refdata.Options) fillFunc[models.Product] {
	return func(ctx context.Context, f *form, p *models.Product, _ forms.Mode) {
		f.text("Name", &p.Name)
		f.text("Barcode", &p.Barcode)
		f.float("MRP", &p.MRP)
		f.float("Discount %", &p.Discount)
		f.bool("Auto pricing", &p.AutoPricing)
		if !p.AutoPricing {
			f.float("Selling price", &p.SellingPrice)
		}
		if f.err != nil {
			return
		}
		f.choice("Category", opts.Categories(ctx), "", &p.Category)
		f.int("Stock", &p.Stock)
		f.choice("Status", models.ProductStatuses, "", &p.Status)
	}
}

// nameChoices loads a selection list and picks the placeholder the form
// shows while the list is unavailable or empty.
func nameChoices(ctx context.Context, f *form, load func(context.Context) ([]string, error), empty string) ([]string, string) {
	if f.err != nil {
		return nil, ""
	}
	names, err := load(ctx)
	if err != nil {
		fmt.Fprintln(f.w, errorStyle.Render("could not load options: "+err.Error()))
		return nil, models.PlaceholderLoading
	}
	return names, empty
}

func fillESL(opts *refdata.Options) fillFunc[models.ESL] {
	return func(ctx context.Context, f *form, e *models.ESL, _ forms.Mode) {
		f.choice("Label size", models.LabelSizes, "", &e.LabelSize)

		stores, placeholder := nameChoices(ctx, f, opts.StoreNames, models.PlaceholderNoStores)
		f.choice("Store", stores, placeholder, &e.StoreName)

		products, placeholder := nameChoices(ctx, f, opts.ProductNames, models.PlaceholderNoProducts)
		f.choice("Product", products, placeholder, &e.ProductName)

		f.int("Battery level", &e.BatteryLevel)
		f.int("Signal strength", &e.SignalStrength)
		f.choice("Status", models.ESLStatuses, "", &e.Status)
	}
}

func fillGateway(opts *refdata.Options) fillFunc[models.Gateway] {
	return func(ctx context.Context, f *form, g *models.Gateway, _ forms.Mode) {
		stores, placeholder := nameChoices(ctx, f, opts.StoreNames, models.PlaceholderNoStores)
		f.choice("Store", stores, placeholder, &g.StoreName)
		f.text("Store ID", &g.StoreID)
		f.text("IP address", &g.IPAddress)
		f.text("Firmware version", &g.FirmwareVersion)
		f.choice("Status", models.GatewayStatuses, "", &g.Status)
	}
}

func fillUser(_ context.Context, f *form, u *models.User, mode forms.Mode) {
	f.text("Name", &u.Name)
	f.text("Email", &u.Email)
	f.choice("Role", models.UserRoles, "", &u.Role)
	f.list("Assigned stores", &u.AssignedStores)
	f.choice("Status", models.UserStatuses, "", &u.Status)
	if mode == forms.ModeCreate {
		f.secret(&u.Password)
	}
}
