// Package dashboard computes the overview shown on the console's home screen.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/dmitrijs2005/eslconsole/internal/client/models"
	"github.com/dmitrijs2005/eslconsole/internal/timex"
	"golang.org/x/sync/errgroup"
)

const (
	ActivityOnline    = "online"
	ActivityOffline   = "offline"
	ActivitySyncError = "sync_error"

	recentActivityLimit = 4
)

type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

type Sources struct {
	Stores   Lister[models.Store]
	ESLs     Lister[models.ESL]
	Gateways Lister[models.Gateway]
	SyncLogs Lister[models.SyncLog]
}

// Data is the raw input of a summary. Fallback is set when at least one list
// could not be loaded and sample records were used for it.
type Data struct {
	Stores   []models.Store
	ESLs     []models.ESL
	Gateways []models.Gateway
	SyncLogs []models.SyncLog
	Fallback bool
}

// Fetch loads the four lists concurrently. A list that fails is replaced by
// its sample set; the returned error joins every failure.
func Fetch(ctx context.Context, src Sources) (Data, error) {
	var (
		d    Data
		errs [4]error
		g    errgroup.Group
	)

	g.Go(func() error { d.Stores, errs[0] = listOr(ctx, src.Stores, models.SampleStores, "stores"); return nil })
	g.Go(func() error { d.ESLs, errs[1] = listOr(ctx, src.ESLs, models.SampleESLs, "ESLs"); return nil })
	g.Go(func() error {
		d.Gateways, errs[2] = listOr(ctx, src.Gateways, models.SampleGateways, "gateways")
		return nil
	})
	g.Go(func() error {
		d.SyncLogs, errs[3] = listOr(ctx, src.SyncLogs, models.SampleSyncLogs, "sync logs")
		return nil
	})
	_ = g.Wait()

	err := errors.Join(errs[:]...)
	d.Fallback = err != nil
	return d, err
}

func listOr[T any](ctx context.Context, l Lister[T], fallback func() []T, noun string) ([]T, error) {
	items, err := l.List(ctx)
	if err != nil {
		return fallback(), fmt.Errorf("load %s: %w", noun, err)
	}
	return items, nil
}

type Activity struct {
	Store    string
	Status   string
	LastSync string
}

type Summary struct {
	TotalStores     int
	ActiveESLs      int
	OfflineESLs     int
	SyncErrors      int
	BatteryHealth   int
	LowBattery      int
	GatewaysOffline int
	RecentActivity  []Activity
}

// Summarize derives the dashboard cards from d as seen at now.
func Summarize(d Data, now time.Time) Summary {
	s := Summary{TotalStores: len(d.Stores)}

	batteryTotal := 0
	for _, e := range d.ESLs {
		switch e.Status {
		case models.ESLActive:
			s.ActiveESLs++
		case models.ESLInactive, models.ESLError:
			s.OfflineESLs++
		}
		if models.LevelTier(e.BatteryLevel) == models.TierLow {
			s.LowBattery++
		}
		batteryTotal += e.BatteryLevel
	}
	if len(d.ESLs) > 0 {
		s.BatteryHealth = int(math.Round(float64(batteryTotal) / float64(len(d.ESLs))))
	}

	failingStores := map[string]bool{}
	for _, l := range d.SyncLogs {
		if l.Status == models.SyncFailure {
			s.SyncErrors++
			failingStores[l.StoreName] = true
		}
	}

	for _, g := range d.Gateways {
		if g.Status == models.GatewayOffline {
			s.GatewaysOffline++
		}
	}

	s.RecentActivity = recentActivity(d.Gateways, failingStores, now)
	return s
}

// recentActivity reports one row per gateway, most recent heartbeat first.
func recentActivity(gateways []models.Gateway, failing map[string]bool, now time.Time) []Activity {
	gws := slices.Clone(gateways)
	slices.SortStableFunc(gws, func(a, b models.Gateway) int {
		ta, _ := timex.ParseTimestamp(a.LastHeartbeat)
		tb, _ := timex.ParseTimestamp(b.LastHeartbeat)
		return tb.Compare(ta)
	})

	out := make([]Activity, 0, min(len(gws), recentActivityLimit))
	for _, g := range gws {
		if len(out) == recentActivityLimit {
			break
		}
		status := ActivityOnline
		switch {
		case g.Status == models.GatewayOffline:
			status = ActivityOffline
		case failing[g.StoreName]:
			status = ActivitySyncError
		}
		out = append(out, Activity{
			Store:    g.StoreName,
			Status:   status,
			LastSync: timex.RelativeTimestamp(now, g.LastHeartbeat),
		})
	}
	return out
}

// RecentFailures returns up to n failed sync logs, newest first.
func RecentFailures(logs []models.SyncLog, n int) []models.SyncLog {
	var failed []models.SyncLog
	for _, l := range logs {
		if l.Status == models.SyncFailure {
			failed = append(failed, l)
		}
	}
	slices.SortStableFunc(failed, func(a, b models.SyncLog) int {
		ta, _ := timex.ParseTimestamp(a.SyncedAt)
		tb, _ := timex.ParseTimestamp(b.SyncedAt)
		return tb.Compare(ta)
	})
	if len(failed) > n {
		failed = failed[:n]
	}
	return failed
}
