// Package views describes each entity table of the console: what the search
// box looks at, which filters exist, how rows sort, and which sample rows to
// show when the backend cannot be reached.
package views

import (
	"cmp"
	"strings"
	"time"

	"github.com/dmitrijs2005/eslconsole/internal/client/listview"
	"github.com/dmitrijs2005/eslconsole/internal/client/models"
	"github.com/dmitrijs2005/eslconsole/internal/timex"
)

const (
	Stores    = "stores"
	Products  = "products"
	ESLs      = "esls"
	Gateways  = "gateways"
	Users     = "users"
	SyncLogs  = "sync-logs"
	AllStatus = "All Status"
)

// Names lists the views in menu order.
var Names = []string{Stores, Products, ESLs, Gateways, Users, SyncLogs}

func byName[T any](name func(T) string) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(strings.ToLower(name(a)), strings.ToLower(name(b)))
	}
}

// newestFirst orders by a backend timestamp, latest first. Values that do not
// parse ("Never") go last.
func newestFirst[T any](ts func(T) string) func(a, b T) int {
	parse := func(v T) (time.Time, bool) {
		t, err := timex.ParseTimestamp(ts(v))
		return t, err == nil
	}
	return func(a, b T) int {
		ta, oka := parse(a)
		tb, okb := parse(b)
		switch {
		case oka && okb:
			return tb.Compare(ta)
		case oka:
			return -1
		case okb:
			return 1
		}
		return 0
	}
}

func statusFacet[T any](options []string, status func(T) string) listview.Facet[T] {
	return listview.Facet[T]{
		Name:    "status",
		All:     AllStatus,
		Options: options,
		Match:   listview.FieldEquals(status),
	}
}

func StoreView() listview.Descriptor[models.Store] {
	return listview.Descriptor[models.Store]{
		Noun:     "stores",
		Singular: "store",
		ID:       func(s models.Store) string { return s.ID },
		SearchFields: func(s models.Store) []string {
			return []string{s.Name, s.Location, s.Manager}
		},
		Facets: []listview.Facet[models.Store]{
			statusFacet(models.StoreStatuses, func(s models.Store) string { return s.Status }),
		},
		Sorts: map[string]func(a, b models.Store) int{
			"name": byName(func(s models.Store) string { return s.Name }),
		},
		DefaultSort: "name",
		Fallback:    models.SampleStores,
	}
}

func ProductView() listview.Descriptor[models.Product] {
	return listview.Descriptor[models.Product]{
		Noun:     "products",
		Singular: "product",
		ID:       func(p models.Product) string { return p.ID },
		SearchFields: func(p models.Product) []string {
			return []string{p.Name, p.Category}
		},
		Facets: []listview.Facet[models.Product]{
			{
				Name:  "category",
				All:   "All Categories",
				Match: listview.FieldEquals(func(p models.Product) string { return p.Category }),
			},
			statusFacet(models.ProductStatuses, func(p models.Product) string { return p.Status }),
		},
		Sorts: map[string]func(a, b models.Product) int{
			"name": byName(func(p models.Product) string { return p.Name }),
		},
		DefaultSort: "name",
		Fallback:    models.SampleProducts,
	}
}

func tierFacet(name, all string, level func(models.ESL) int) listview.Facet[models.ESL] {
	return listview.Facet[models.ESL]{
		Name:    name,
		All:     all,
		Options: models.Tiers,
		Match: func(e models.ESL, v string) bool {
			return models.LevelTier(level(e)) == v
		},
	}
}

func ESLView() listview.Descriptor[models.ESL] {
	return listview.Descriptor[models.ESL]{
		Noun:     "ESLs",
		Singular: "ESL",
		ID:       func(e models.ESL) string { return e.ID },
		SearchFields: func(e models.ESL) []string {
			return []string{e.ID, e.ProductName, e.StoreName}
		},
		Facets: []listview.Facet[models.ESL]{
			{
				Name:  "store",
				All:   "All Stores",
				Match: listview.FieldEquals(func(e models.ESL) string { return e.StoreName }),
			},
			statusFacet(models.ESLStatuses, func(e models.ESL) string { return e.Status }),
			tierFacet("battery", "All Battery", func(e models.ESL) int { return e.BatteryLevel }),
			tierFacet("signal", "All Signal", func(e models.ESL) int { return e.SignalStrength }),
		},
		Sorts: map[string]func(a, b models.ESL) int{
			"id": func(a, b models.ESL) int { return cmp.Compare(a.ID, b.ID) },
		},
		DefaultSort: "id",
		Fallback:    models.SampleESLs,
	}
}

func GatewayView() listview.Descriptor[models.Gateway] {
	return listview.Descriptor[models.Gateway]{
		Noun:     "gateways",
		Singular: "gateway",
		ID:       func(g models.Gateway) string { return g.ID },
		SearchFields: func(g models.Gateway) []string {
			return []string{g.ID, g.StoreName, g.IPAddress}
		},
		Facets: []listview.Facet[models.Gateway]{
			{
				Name:  "store",
				All:   "All Stores",
				Match: listview.FieldEquals(func(g models.Gateway) string { return g.StoreName }),
			},
			statusFacet(models.GatewayStatuses, func(g models.Gateway) string { return g.Status }),
		},
		Sorts: map[string]func(a, b models.Gateway) int{
			"id": func(a, b models.Gateway) int { return cmp.Compare(a.ID, b.ID) },
		},
		DefaultSort: "id",
		Fallback:    models.SampleGateways,
	}
}

func UserView() listview.Descriptor[models.User] {
	return listview.Descriptor[models.User]{
		Noun:     "users",
		Singular: "user",
		ID:       func(u models.User) string { return u.ID },
		SearchFields: func(u models.User) []string {
			return []string{u.Name, u.Email}
		},
		Facets: []listview.Facet[models.User]{
			{
				Name:    "role",
				All:     "All Roles",
				Options: models.UserRoles,
				Match:   listview.FieldEquals(func(u models.User) string { return u.Role }),
			},
			statusFacet(models.UserStatuses, func(u models.User) string { return u.Status }),
		},
		Sorts: map[string]func(a, b models.User) int{
			"name":      byName(func(u models.User) string { return u.Name }),
			"role":      byName(func(u models.User) string { return u.Role }),
			"lastLogin": newestFirst(func(u models.User) string { return u.LastLogin }),
		},
		DefaultSort: "name",
		Fallback:    models.SampleUsers,
	}
}

func SyncLogView() listview.Descriptor[models.SyncLog] {
	field := func(f func(models.SyncLog) string) func(models.SyncLog, string) bool {
		return listview.FieldEquals(f)
	}
	return listview.Descriptor[models.SyncLog]{
		Noun:     "sync logs",
		Singular: "sync log",
		ID:       func(l models.SyncLog) string { return l.ID },
		SearchFields: func(l models.SyncLog) []string {
			return []string{l.ESLID, l.ProductName, l.GatewayID}
		},
		Facets: []listview.Facet[models.SyncLog]{
			{Name: "store", All: "All Stores", Match: field(func(l models.SyncLog) string { return l.StoreName })},
			{Name: "gateway", All: "All Gateways", Match: field(func(l models.SyncLog) string { return l.GatewayID })},
			{Name: "product", All: "All Products", Match: field(func(l models.SyncLog) string { return l.ProductName })},
			statusFacet(models.SyncStatuses, func(l models.SyncLog) string { return l.Status }),
		},
		Sorts: map[string]func(a, b models.SyncLog) int{
			"syncedAt": newestFirst(func(l models.SyncLog) string { return l.SyncedAt }),
		},
		DefaultSort: "syncedAt",
		Fallback:    models.SampleSyncLogs,
	}
}
