package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/eslconsole/internal/client/client"
	"github.com/dmitrijs2005/eslconsole/internal/client/config"
	"github.com/dmitrijs2005/eslconsole/internal/client/dashboard"
	"github.com/dmitrijs2005/eslconsole/internal/client/export"
	"github.com/dmitrijs2005/eslconsole/internal/client/migrations"
	"github.com/dmitrijs2005/eslconsole/internal/client/refdata"
	"github.com/dmitrijs2005/eslconsole/internal/client/services"
	"github.com/dmitrijs2005/eslconsole/internal/client/session"
	"github.com/dmitrijs2005/eslconsole/internal/client/views"
	"github.com/dmitrijs2005/eslconsole/internal/dbx"
	"github.com/dmitrijs2005/eslconsole/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	session *session.Store
	auth    services.AuthService
	exports services.ExportService
	options *refdata.Options
	sources dashboard.Sources
	views   map[string]viewer
	reader  *bufio.Reader
	out     io.Writer
	now     func() time.Time
	closers []func() error

	mu      sync.Mutex
	mode    Mode
	current string
	page    int
}

// Deps are the collaborators an App is assembled from.
type Deps struct {
	Config    *config.Config
	Log       logging.Logger
	Auth      services.AuthService
	Exports   services.ExportService
	Resources Resources
	In        io.Reader
	Out       io.Writer
}

// NewApp opens the local database, builds the API client and assembles the
// console around them.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := dbx.OpenSQLite(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := migrations.Up(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	// The token source is bound after the session exists.
	var sess *session.Store
	api, err := client.NewHTTPClient(c.ServerBaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithRateLimit(c.RateLimit, c.RateBurst),
		client.WithLogger(log.With("component", "http")),
		client.WithTokenSource(func() string { return sess.Token() }),
	)
	if err != nil {
		db.Close()
		return nil, err
	}

	exporter, err := newExporter(ctx, c)
	if err != nil {
		db.Close()
		return nil, err
	}

	a := New(Deps{
		Config:  c,
		Log:     log,
		Auth:    services.NewAuthService(api, db),
		Exports: services.NewExportService(exporter, db),
		Resources: Resources{
			Stores:     api.Stores(),
			Products:   api.Products(),
			ESLs:       api.ESLs(),
			Gateways:   api.Gateways(),
			Users:      api.Users(),
			SyncLogs:   api.SyncLogs(),
			Categories: api.Categories(),
		},
		In:  os.Stdin,
		Out: os.Stdout,
	})
	sess = a.session
	a.closers = append(a.closers, db.Close)
	return a, nil
}

// newExporter uploads to S3 when a bucket is configured and writes to the
// local export directory otherwise.
func newExporter(ctx context.Context, c *config.Config) (export.Exporter, error) {
	if c.S3.Enabled() {
		e, err := export.NewS3Exporter(ctx, c.S3)
		if err != nil {
			return nil, fmt.Errorf("s3 exporter: %w", err)
		}
		return e, nil
	}
	return export.NewFileExporter(c.ExportDir), nil
}

// New assembles an App from ready collaborators.
func New(d Deps) *App {
	log := d.Log
	if log == nil {
		log = logging.Discard()
	}
	a := &App{
		config:  d.Config,
		log:     log,
		auth:    d.Auth,
		exports: d.Exports,
		reader:  bufio.NewReader(d.In),
		out:     d.Out,
		now:     time.Now,
		current: views.Stores,
		page:    1,
	}
	a.session = session.New(d.Auth, log)
	a.options = refdata.New(d.Resources.Stores, d.Resources.Products, d.Resources.Categories,
		d.Config.OptionsTTL, log)
	a.sources = dashboard.Sources{
		Stores:   d.Resources.Stores,
		ESLs:     d.Resources.ESLs,
		Gateways: d.Resources.Gateways,
		SyncLogs: d.Resources.SyncLogs,
	}
	a.views = buildViews(d.Resources, viewDeps{
		options:         a.options,
		log:             log,
		bulkConcurrency: d.Config.BulkConcurrency,
		now:             func() time.Time { return a.now() },
	})
	a.session.OnLogout(a.resetViews)
	return a
}

// resetViews drops selections and filters so the next operator starts clean.
func (a *App) resetViews() {
	for _, v := range a.views {
		v.SelectAll(false)
		v.ClearFilters()
	}
	a.options.Invalidate()
	a.mu.Lock()
	a.current, a.page = views.Stores, 1
	a.mu.Unlock()
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()
	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().IsAuthenticated()
}

func (a *App) view() viewer {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.views[a.current]
}

// Run restores the saved session, starts the connectivity watcher and
// blocks in the REPL until the operator leaves.
func (a *App) Run(ctx context.Context) {
	defer a.Close(context.Background())
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, titleStyle.Render("ESL Manager console")+" (type 'help' for commands)")

	a.checkOnline(ctx)
	if err := a.session.Initialize(ctx); err != nil {
		a.log.Warn(ctx, "restore session", "error", err)
	}
	if a.isLoggedIn() {
		_ = a.WhoAmI(ctx)
	} else {
		fmt.Fprintln(a.out, "Not signed in. Use 'login'.")
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

// Close releases the controllers, the API client and the database.
func (a *App) Close(ctx context.Context) {
	for _, v := range a.views {
		v.Close()
	}
	if err := a.auth.Close(ctx); err != nil {
		a.log.Warn(ctx, "close api client", "error", err)
	}
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.log.Warn(ctx, "close", "error", err)
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := a.auth.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	s := ""
	if st := a.session.Snapshot(); st.User != nil {
		s = st.User.DisplayName() + " "
	}
	a.mu.Lock()
	s += a.current
	if a.mode != "" {
		s += " " + string(a.mode)
	}
	a.mu.Unlock()
	return fmt.Sprintf("(%s)", s)
}
