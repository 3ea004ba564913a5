// Package app holds the session controller and the bubbletea program around it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/rebeliceyang/lazylite/internal/config"
	"github.com/rebeliceyang/lazylite/internal/db"
	"github.com/rebeliceyang/lazylite/internal/history"
	"github.com/rebeliceyang/lazylite/internal/keymap"
	"github.com/rebeliceyang/lazylite/internal/logging"
	"github.com/rebeliceyang/lazylite/internal/ui/components"
)

// ErrNoTables is returned when the database has nothing to show
var ErrNoTables = errors.New("database has no tables")

// Options are the session settings taken from the config file
type Options struct {
	View         components.ViewOptions
	QueryPrefix  string
	ExecPrefix   string
	CustomTitle  string
	ExportDir    string
	ExportFormat string // "csv" or "json"

	// Target names the database in history entries
	Target string
}

// DefaultOptions returns the options matching the default config
func DefaultOptions() Options {
	return OptionsFromConfig(config.GetDefaults(), "")
}

// OptionsFromConfig extracts the session options from cfg
func OptionsFromConfig(cfg *config.Config, target string) Options {
	return Options{
		View: components.ViewOptions{
			ColumnWidth: cfg.UI.ColumnWidth,
			ZoomFields:  cfg.UI.ZoomFields,
		},
		QueryPrefix:  cfg.Input.QueryPrefix,
		ExecPrefix:   cfg.Input.ExecPrefix,
		CustomTitle:  cfg.Input.CustomTitle,
		ExportDir:    cfg.Export.Dir,
		ExportFormat: cfg.Export.Format,
		Target:       target,
	}
}

// Recorder stores submitted commands
type Recorder interface {
	Add(ctx context.Context, entry history.Entry) error
}

// Session owns all navigation state: the tabs, the active mode and the
// input line. Every mutation goes through it, from the UI loop only.
type Session struct {
	source db.Source
	tabs   *components.Tabs
	mode   keymap.Mode
	input  *components.InputLine
	keys   *keymap.Keymap
	opts   Options

	lastErr       error
	status        string
	quitting      bool
	cursorVisible bool

	clipboard func(string) error
	history   Recorder
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Session
type Option func(*Session)

// WithKeymap replaces the default keymap
func WithKeymap(km *keymap.Keymap) Option {
	return func(s *Session) { s.keys = km }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithHistory records every submitted command in r
func WithHistory(r Recorder) Option {
	return func(s *Session) { s.history = r }
}

// WithClipboard replaces the system clipboard writer
func WithClipboard(write func(string) error) Option {
	return func(s *Session) { s.clipboard = write }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New lists the tables of source, opens one tab per table and loads the first
func New(ctx context.Context, source db.Source, opts Options, options ...Option) (*Session, error) {
	s := &Session{
		source:    source,
		mode:      keymap.Main,
		keys:      keymap.Default(),
		opts:      opts,
		clipboard: clipboard.WriteAll,
		logger:    logging.Discard(),
		now:       time.Now,
	}
	for _, o := range options {
		o(s)
	}

	tables, err := source.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, ErrNoTables
	}

	tabs := make([]*components.Tab, len(tables))
	for i, name := range tables {
		tabs[i] = components.NewTab(name, db.SelectAll(name))
	}
	s.tabs, err = components.NewTabs(tabs...)
	if err != nil {
		return nil, err
	}
	s.logger.Info("session started", slog.Int("tables", len(tables)))

	if err := s.Activate(ctx, 0); err != nil {
		return nil, err
	}
	return s, nil
}

// Activate makes tab i active, fetching its rows first if it has never been
// loaded. On failure the active tab does not change.
func (s *Session) Activate(ctx context.Context, i int) error {
	if i < 0 || i >= s.tabs.Len() {
		return fmt.Errorf("tab index %d out of range [0, %d)", i, s.tabs.Len())
	}

	if err := s.materialize(ctx, s.tabs.At(i)); err != nil {
		return err
	}
	return s.tabs.SetActive(i)
}

// NextTab activates the following tab, wrapping around. It never fetches.
func (s *Session) NextTab() {
	s.tabs.Next()
}

// PrevTab activates the preceding tab, wrapping around. It never fetches.
func (s *Session) PrevTab() {
	s.tabs.Prev()
}

// ReloadActive re-runs the active tab's query and replaces its view.
// On failure the previous view stays.
func (s *Session) ReloadActive(ctx context.Context) error {
	tab := s.tabs.Active()

	view, err := s.fetch(ctx, tab.Query)
	if err != nil {
		return err
	}
	tab.Load(view)
	return nil
}

// RunQuery runs text and opens its result in a new active tab.
// On failure no tab is added.
func (s *Session) RunQuery(ctx context.Context, text string) error {
	if err := db.CheckStatement("query", text); err != nil {
		return err
	}
	view, err := s.fetch(ctx, text)
	if err != nil {
		return err
	}

	tab := components.NewTab(s.opts.CustomTitle, text)
	tab.Load(view)
	return s.Activate(ctx, s.tabs.Append(tab))
}

// Exec runs a statement that returns no rows
func (s *Session) Exec(ctx context.Context, text string) error {
	if err := db.CheckStatement("exec", text); err != nil {
		return err
	}
	start := s.now()
	err := s.source.Exec(ctx, text)

	logger := s.logger.With(slog.String("op", "exec"), slog.String("sql", text), slog.Duration("duration", s.now().Sub(start)))
	if err != nil {
		logger.Info("statement failed", slog.Any("error", err))
		return err
	}
	logger.Info("statement executed")
	return nil
}

// materialize loads tab if it has not been loaded yet
func (s *Session) materialize(ctx context.Context, tab *components.Tab) error {
	if tab.State() == components.TabLoaded {
		return nil
	}

	view, err := s.fetch(ctx, tab.Query)
	if err != nil {
		return err
	}
	tab.Load(view)
	return nil
}

// activeView returns the active tab's view, loading it on first use
func (s *Session) activeView(ctx context.Context) (*components.TableView, error) {
	tab := s.tabs.Active()
	if err := s.materialize(ctx, tab); err != nil {
		return nil, err
	}
	view, _ := tab.View()
	return view, nil
}

func (s *Session) fetch(ctx context.Context, sql string) (*components.TableView, error) {
	start := s.now()
	rs, err := s.source.Query(ctx, sql)

	logger := s.logger.With(slog.String("op", "query"), slog.String("sql", sql), slog.Duration("duration", s.now().Sub(start)))
	if err != nil {
		logger.Info("query failed", slog.Any("error", err))
		return nil, err
	}
	logger.Debug("query finished", slog.Int("rows", rs.Len()), slog.Int("columns", rs.Width()))

	return components.NewTableView(rs, s.opts.View), nil
}

// HandleKey dispatches key and records any error as the last error.
// The transient status line is cleared first.
func (s *Session) HandleKey(ctx context.Context, key keymap.Key) {
	s.status = ""
	if err := s.Dispatch(ctx, key); err != nil {
		s.SetLastError(err)
	}
}

// SetLastError records err for display
func (s *Session) SetLastError(err error) {
	s.lastErr = err
	if err != nil {
		s.logger.Warn("command failed", slog.String("mode", s.mode.String()), slog.Any("error", err))
	}
}

// SetKeymap swaps the keymap, typically after the config file changed
func (s *Session) SetKeymap(km *keymap.Keymap) {
	s.keys = km
}

// SetStatus sets the transient status line
func (s *Session) SetStatus(status string) {
	s.status = status
}

// Tabs returns the tab list
func (s *Session) Tabs() *components.Tabs { return s.tabs }

// ActiveView returns the active tab's view without fetching
func (s *Session) ActiveView() (*components.TableView, bool) {
	return s.tabs.Active().View()
}

// Mode returns the current mode
func (s *Session) Mode() keymap.Mode { return s.mode }

// Input returns the input line, nil outside Input mode
func (s *Session) Input() *components.InputLine { return s.input }

// Keymap returns the keymap in use
func (s *Session) Keymap() *keymap.Keymap { return s.keys }

// LastError returns the error of the last failed command, if any
func (s *Session) LastError() error { return s.lastErr }

// Status returns the transient status line
func (s *Session) Status() string { return s.status }

// CursorVisible reports whether the input cursor is shown
func (s *Session) CursorVisible() bool { return s.cursorVisible }

// Quitting reports whether the quit action was dispatched
func (s *Session) Quitting() bool { return s.quitting }

// oneLine joins the words of a stored query for use as input seed text
func oneLine(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
