package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/eslconsole/internal/client/dashboard"
	"github.com/dmitrijs2005/eslconsole/internal/client/export"
	"github.com/dmitrijs2005/eslconsole/internal/client/listview"
	"github.com/dmitrijs2005/eslconsole/internal/client/refdata"
	"github.com/dmitrijs2005/eslconsole/internal/client/views"
	"github.com/dmitrijs2005/eslconsole/internal/timex"
)

const exportHistoryShown = 10

// Use switches to another view and loads it.
func (a *App) Use(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	name := strings.ToLower(args[0])
	if _, ok := a.views[name]; !ok {
		return fmt.Errorf("unknown view %q, want one of %s", args[0], strings.Join(views.Names, ", "))
	}
	a.mu.Lock()
	a.current, a.page = name, 1
	a.mu.Unlock()
	return a.Refresh(ctx)
}

// List prints one page of the current view.
func (a *App) List(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errUsage
	}
	v := a.view()
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return errUsage
		}
		a.mu.Lock()
		a.page = n
		a.mu.Unlock()
	}
	if v.Status().Phase == listview.PhaseIdle {
		if err := a.load(ctx, v); err != nil {
			return err
		}
	}
	a.render(v)
	return nil
}

// Refresh reloads the current view from the backend.
func (a *App) Refresh(ctx context.Context) error {
	v := a.view()
	if err := a.load(ctx, v); err != nil {
		return err
	}
	a.render(v)
	return nil
}

// load treats a failed load as shown rather than failed: the view then
// carries its error message and the sample rows.
func (a *App) load(ctx context.Context, v viewer) error {
	err := v.Load(ctx)
	var le *listview.LoadError
	if err == nil || errors.As(err, &le) || errors.Is(err, listview.ErrSuperseded) {
		return nil
	}
	return err
}

func (a *App) render(v viewer) {
	a.mu.Lock()
	page := a.page
	a.mu.Unlock()

	table, pages := v.Table(page, a.config.PageSize)
	if page > pages {
		page = pages
	}
	st := v.Status()

	fmt.Fprintln(a.out, table)
	if st.Error != "" {
		fmt.Fprintln(a.out, errorStyle.Render(st.Error))
	}
	if st.Source == listview.SourceFallback {
		fmt.Fprintln(a.out, warnStyle.Render(sampleMarker))
	}

	var info []string
	info = append(info, fmt.Sprintf("page %d/%d", page, pages))
	if st.Search != "" {
		info = append(info, fmt.Sprintf("search=%q", st.Search))
	}
	for _, facet := range v.Facets() {
		if val, ok := st.Filters[facet]; ok && val != "" {
			info = append(info, facet+"="+val)
		}
	}
	info = append(info, "sort="+st.Sort)
	if len(st.Selected) > 0 {
		info = append(info, fmt.Sprintf("%d selected", len(st.Selected)))
	}
	fmt.Fprintln(a.out, mutedStyle.Render(strings.Join(info, "  ")))
}

func (a *App) Search(ctx context.Context, args []string) error {
	a.view().SetSearch(strings.Join(args, " "))
	return a.showFirstPage()
}

// Filter sets "<facet>=<value>". An empty value or the facet's "All ..."
// option removes the filter.
func (a *App) Filter(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	facet, value, ok := strings.Cut(strings.Join(args, " "), "=")
	if !ok {
		return errUsage
	}
	v := a.view()
	if err := v.SetFilter(strings.TrimSpace(facet), strings.TrimSpace(value)); err != nil {
		var unknown *listview.ErrUnknownFacet
		if errors.As(err, &unknown) {
			return fmt.Errorf("%w (facets: %s)", err, strings.Join(v.Facets(), ", "))
		}
		return err
	}
	return a.showFirstPage()
}

func (a *App) Clear(ctx context.Context) error {
	a.view().ClearFilters()
	return a.showFirstPage()
}

func (a *App) Sort(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	v := a.view()
	if err := v.SetSort(args[0]); err != nil {
		return fmt.Errorf("%w (keys: %s)", err, strings.Join(v.Sorts(), ", "))
	}
	return a.showFirstPage()
}

func (a *App) showFirstPage() error {
	a.mu.Lock()
	a.page = 1
	a.mu.Unlock()
	a.render(a.view())
	return nil
}

func (a *App) Select(ctx context.Context, args []string, included bool) error {
	if len(args) == 0 {
		return errUsage
	}
	v := a.view()
	for _, id := range args {
		if !v.Select(id, included) {
			fmt.Fprintf(a.out, "no row with id %q\n", id)
		}
	}
	fmt.Fprintf(a.out, "%d selected\n", len(v.Selected()))
	return nil
}

// SelectAll toggles every row matching the current search and filters.
func (a *App) SelectAll(ctx context.Context, included bool) error {
	v := a.view()
	v.SelectAll(included)
	fmt.Fprintf(a.out, "%d selected\n", len(v.Selected()))
	return nil
}

func (a *App) Add(ctx context.Context) error {
	v := a.view()
	if err := v.Add(ctx, newForm(a.reader, a.out)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, okStyle.Render("Saved."))
	a.render(v)
	return nil
}

func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	v := a.view()
	if err := v.Edit(ctx, args[0], newForm(a.reader, a.out)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, okStyle.Render("Saved."))
	a.render(v)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	f := newForm(a.reader, a.out)
	if !f.confirm(fmt.Sprintf("Delete %s?", args[0])) {
		return nil
	}
	v := a.view()
	if err := v.Remove(ctx, args[0]); err != nil {
		return err
	}
	a.options.Invalidate()
	fmt.Fprintln(a.out, okStyle.Render("Deleted."))
	a.render(v)
	return nil
}

// BulkDelete removes every selected row and reports the ones that failed.
func (a *App) BulkDelete(ctx context.Context) error {
	v := a.view()
	selected := v.Selected()
	if len(selected) == 0 {
		return errors.New("nothing selected")
	}
	f := newForm(a.reader, a.out)
	if !f.confirm(fmt.Sprintf("Delete %d selected?", len(selected))) {
		return nil
	}

	res, err := v.BulkRemove(ctx)
	if len(res.Succeeded) > 0 {
		a.options.Invalidate()
		fmt.Fprintf(a.out, "Deleted %d.\n", len(res.Succeeded))
	}
	var bulk *listview.BulkError
	if errors.As(err, &bulk) {
		for _, id := range bulk.Result.FailedIDs() {
			a.log.Warn(ctx, "bulk delete failed", "id", id, "error", bulk.Result.Failed[id])
		}
		a.render(v)
		return fmt.Errorf("%s (failed: %s)", bulk.Message, strings.Join(bulk.Result.FailedIDs(), ", "))
	}
	if err != nil {
		return err
	}
	a.render(v)
	return nil
}

func (a *App) Categories(ctx context.Context) error {
	names := a.options.Categories(ctx)
	rows := make([][]string, 0, len(names))
	for _, n := range names {
		rows = append(rows, []string{n})
	}
	fmt.Fprintln(a.out, renderTable([]string{"Category"}, rows))
	return nil
}

func (a *App) AddCategory(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cat, persisted, err := a.options.AddCategory(ctx, strings.Join(args, " "))
	if err != nil {
		if errors.Is(err, refdata.ErrCategoryExists) {
			return fmt.Errorf("category %q already exists", cat.Name)
		}
		return err
	}
	if !persisted {
		fmt.Fprintf(a.out, "Category %q added locally; the server did not accept it.\n", cat.Name)
		return nil
	}
	fmt.Fprintf(a.out, "Category %q added.\n", cat.Name)
	return nil
}

// Export writes the selected rows of the current view, or the whole
// filtered view when nothing is selected.
func (a *App) Export(ctx context.Context, args []string) error {
	format := export.FormatCSV
	if len(args) > 1 {
		return errUsage
	}
	if len(args) == 1 {
		f, err := export.ParseFormat(args[0])
		if err != nil {
			return err
		}
		format = f
	}

	v := a.view()
	data, rows, err := v.Encode(format)
	if err != nil {
		return err
	}
	rec, err := a.exports.Save(ctx, v.Name(), format, data, rows)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported %d rows to %s\n", rec.Rows, rec.Location)
	return nil
}

func (a *App) Exports(ctx context.Context) error {
	recs, err := a.exports.History(ctx, exportHistoryShown)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(a.out, "No exports yet.")
		return nil
	}
	now := a.now()
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			timex.RelativeTime(now, r.CreatedAt), r.View, r.Format, strconv.Itoa(r.Rows), r.Location,
		})
	}
	fmt.Fprintln(a.out, renderTable([]string{"When", "View", "Format", "Rows", "Location"}, rows))
	return nil
}

func (a *App) Dashboard(ctx context.Context) error {
	data, err := dashboard.Fetch(ctx, a.sources)
	if err != nil {
		a.log.Warn(ctx, "dashboard fetch", "error", err)
	}
	s := dashboard.Summarize(data, a.now())

	fmt.Fprintln(a.out, titleStyle.Render("Dashboard"))
	fmt.Fprintln(a.out, renderTable([]string{"Stores", "Active ESLs", "Offline ESLs", "Sync Errors", "Battery Health", "Low Battery", "Gateways Offline"},
		[][]string{{
			strconv.Itoa(s.TotalStores), strconv.Itoa(s.ActiveESLs), strconv.Itoa(s.OfflineESLs),
			strconv.Itoa(s.SyncErrors), strconv.Itoa(s.BatteryHealth) + "%", strconv.Itoa(s.LowBattery),
			strconv.Itoa(s.GatewaysOffline),
		}}))

	activity := make([][]string, 0, len(s.RecentActivity))
	for _, act := range s.RecentActivity {
		activity = append(activity, []string{act.Store, activityBadge(act.Status), act.LastSync})
	}
	fmt.Fprintln(a.out, titleStyle.Render("Recent activity"))
	fmt.Fprintln(a.out, renderTable([]string{"Store", "Status", "Last Sync"}, activity))

	failures := dashboard.RecentFailures(data.SyncLogs, 5)
	if len(failures) > 0 {
		rows := make([][]string, 0, len(failures))
		for _, l := range failures {
			rows = append(rows, []string{l.ESLID, l.StoreName, timex.RelativeTimestamp(a.now(), l.SyncedAt), l.ErrorMessage})
		}
		fmt.Fprintln(a.out, titleStyle.Render("Recent sync failures"))
		fmt.Fprintln(a.out, renderTable([]string{"ESL", "Store", "When", "Error"}, rows))
	}
	if data.Fallback {
		fmt.Fprintln(a.out, warnStyle.Render(sampleMarker))
	}
	return nil
}

func activityBadge(status string) string {
	switch status {
	case dashboard.ActivityOnline:
		return okStyle.Render(status)
	case dashboard.ActivitySyncError:
		return warnStyle.Render(status)
	}
	return errorStyle.Render(status)
}
