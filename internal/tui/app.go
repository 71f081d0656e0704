package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/hy4ri/projtrack/internal/config"
	"github.com/hy4ri/projtrack/internal/store"
	"github.com/hy4ri/projtrack/internal/tui/components"
	"github.com/hy4ri/projtrack/internal/tui/styles"
)

// Options holds the dependencies of an App. Store and Config are required.
type Options struct {
	Store  *store.Store
	Config *config.Config
	Logger *zap.Logger

	// Context bounds the initial load. Defaults to context.Background.
	Context context.Context

	// Notify defaults to a desktop notification.
	Notify Notifier
	// Copy defaults to the system clipboard.
	Copy func(text string) error
	// Now defaults to time.Now.
	Now func() time.Time
}

// App is the main Bubble Tea model for the application.
type App struct {
	// Dependencies
	store  *store.Store
	config *config.Config
	logger *zap.Logger
	ctx    context.Context
	notify Notifier
	copy   func(string) error
	now    func() time.Time

	// Controllers
	tableCtl  *TableController
	detailCtl *DetailController

	// UI state
	loading   bool
	err       error
	statusMsg string
	statusErr bool
	showHelp  bool
	width     int
	height    int

	// Components
	spinner  spinner.Model
	table    table.Model
	editor   textarea.Model
	viewport viewport.Model
	markdown *markdownRenderer
	helpComp *components.HelpModel
	keyState KeyState
	keymap   Keymap
}

// NewApp creates a new App instance.
func NewApp(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	notify := opts.Notify
	if notify == nil {
		notify = desktopNotify
	}
	copyFn := opts.Copy
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	filter, err := store.ParseFilter(opts.Config.UI.DefaultFilter)
	if err != nil {
		logger.Warn("ignoring default filter", zap.Error(err))
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	t := table.New(
		table.WithColumns(TableColumns(80)),
		table.WithStyles(styles.Table()),
		table.WithFocused(true),
	)

	editor := textarea.New()
	editor.Placeholder = "Describe the project..."
	editor.ShowLineNumbers = false
	editor.CharLimit = 0

	markdownStyle := opts.Config.UI.MarkdownStyle
	if opts.Config.UI.Color == "never" {
		markdownStyle = "notty"
	}

	app := &App{
		store:     opts.Store,
		config:    opts.Config,
		logger:    logger,
		ctx:       ctx,
		notify:    notify,
		copy:      copyFn,
		now:       now,
		tableCtl:  NewTableController(opts.Store, filter, logger),
		detailCtl: NewDetailController(opts.Store, logger),
		loading:   true,
		spinner:   s,
		table:     t,
		editor:    editor,
		viewport:  viewport.New(80, 20),
		markdown:  newMarkdownRenderer(markdownStyle),
		helpComp:  components.NewHelp(),
		keymap:    DefaultKeymap(),
	}
	app.helpComp.SetItems(app.keymap.HelpItems())

	return app
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		a.loadProjects(),
	)
}

// loadProjects fills the store once. Failure is terminal for the session.
func (a *App) loadProjects() tea.Cmd {
	s, ctx := a.store, a.ctx
	return func() tea.Msg {
		if err := s.Load(ctx); err != nil {
			return errMsg{err}
		}
		return storeReadyMsg{count: s.Len(), skipped: s.Skipped()}
	}
}

// Message types
type errMsg struct{ err error }
type statusMsg struct {
	msg string
	err bool
}
type storeReadyMsg struct {
	count   int
	skipped int
}
