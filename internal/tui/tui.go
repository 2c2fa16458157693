// Package tui provides a Bubble Tea terminal user interface for inspecting
// audio items: their quality tiers, resolved assets and merged metadata.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/audioitem/internal/config"
	"github.com/handiism/audioitem/internal/library"
	"github.com/handiism/audioitem/internal/model"
	"go.uber.org/zap"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500")).
			Bold(true)
)

// maxLogs is the number of progress lines kept on screen.
const maxLogs = 8

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateLoading
	StateReady
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   library.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logger    *zap.Logger
	logs      []LogEntry
	err       error

	ctx    context.Context
	cancel context.CancelFunc

	loader  *library.Loader
	events  chan library.ProgressEvent
	tracks  []*model.Track
	results []library.Result

	// quality is the tier the table resolves; it starts at the configured
	// preference and is switched with l/m/h.
	quality  model.Quality
	selected int
	status   string
	verbose  bool

	width  int
	height int
}

// NewModel creates a new TUI model. When manifestPath is empty the user is
// asked for one.
func NewModel(manifestPath string, settings *config.Settings, logger *zap.Logger, verbose bool) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "/music/manifest.json"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.SetValue(manifestPath)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logger:    logger,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		quality:   settings.Quality(),
		verbose:   verbose,
	}
	if manifestPath != "" {
		m.state = StateLoading
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.state == StateLoading {
		return tea.Batch(m.spinner.Tick, m.startLoad())
	}
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent when load progress updates.
	ProgressMsg struct {
		Event library.ProgressEvent
	}

	// LoadStartMsg is sent once the manifest is parsed and loading begins.
	LoadStartMsg struct {
		Tracks []*model.Track
		Loader *library.Loader
		Events chan library.ProgressEvent
		Err    error
	}

	// LoadDoneMsg is sent when every track's metadata has been loaded.
	LoadDoneMsg struct {
		Results []library.Result
		Err     error
	}

	// ActionDoneMsg reports the outcome of writing tags or a playlist.
	ActionDoneMsg struct {
		Status string
		Err    error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateLoading {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
				return m, nil
			}
			return m, tea.Quit

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				m.state = StateLoading
				return m, tea.Batch(m.startLoad(), m.spinner.Tick)
			}

		case "q":
			if m.state == StateReady || m.state == StateError {
				return m, tea.Quit
			}

		case "l", "m", "h":
			if m.state == StateReady {
				q, _ := model.ParseQuality(msg.String())
				m.quality = q
				m.status = fmt.Sprintf("Requesting %s quality", q)
			}

		case "v":
			if m.state != StateInput {
				m.verbose = !m.verbose
			}

		case "up", "k":
			if m.state == StateReady && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == StateReady && m.selected < len(m.tracks)-1 {
				m.selected++
			}

		case "t":
			if m.state == StateReady && m.loader != nil {
				m.status = fmt.Sprintf("Writing tags from %s assets...", m.quality)
				cmds = append(cmds, m.writeTags())
			}

		case "p":
			if m.state == StateReady && m.loader != nil {
				m.status = fmt.Sprintf("Writing %s quality playlist...", m.quality)
				cmds = append(cmds, m.writePlaylist())
			}

		case "r":
			if m.state == StateReady || m.state == StateError {
				m.state = StateInput
				m.logs = nil
				m.err = nil
				m.tracks = nil
				m.results = nil
				m.loader = nil
				m.events = nil
				m.selected = 0
				m.status = ""
				m.quality = m.settings.Quality()
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.Focus()
				return m, textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		m.appendLog(msg.Event)

	case LoadStartMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
			break
		}
		m.tracks = msg.Tracks
		m.loader = msg.Loader
		m.events = msg.Events
		cmds = append(cmds, m.runLoad(), m.tickProgress())

	case LoadDoneMsg:
		m.drainEvents()
		m.results = msg.Results
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateReady
		}

	case ActionDoneMsg:
		m.drainEvents()
		if msg.Err != nil {
			m.status = errorStyle.Render(msg.Err.Error())
		} else {
			m.status = successStyle.Render(msg.Status)
		}

	case TickMsg:
		if m.loader != nil && m.state == StateLoading {
			m.drainEvents()
			loaded, total := m.loader.GetProgress()
			var percent float64
			if total > 0 {
				percent = float64(loaded) / float64(total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// appendLog adds event to the log view. Verbose events are hidden unless
// verbose output is on.
func (m *Model) appendLog(event library.ProgressEvent) {
	if event.Level == library.LevelVerbose && !m.verbose {
		return
	}
	m.logs = append(m.logs, LogEntry{Message: event.Message, Level: event.Level})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// drainEvents moves pending progress events into the log view.
func (m *Model) drainEvents() {
	if m.events == nil {
		return
	}
	for {
		select {
		case event := <-m.events:
			m.appendLog(event)
		default:
			return
		}
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("♪ Audio Item Inspector"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Quality tiers, resolved assets and metadata"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateLoading:
		b.WriteString(m.viewLoading())
	case StateReady:
		b.WriteString(m.viewReady())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter manifest path:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Preferred quality: %s", m.quality)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewLoading() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Reading embedded tags..."))
	b.WriteString("\n\n")

	if m.loader != nil {
		loaded, total := m.loader.GetProgress()
		var percent float64
		if total > 0 {
			percent = float64(loaded) / float64(total)
		}
		b.WriteString(m.progress.ViewAs(percent))
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(fmt.Sprintf("Tracks: %d/%d", loaded, total)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewReady() string {
	var b strings.Builder

	b.WriteString(infoStyle.Render(fmt.Sprintf("%d track(s), requesting %s quality", len(m.tracks), m.quality)))
	b.WriteString("\n\n")

	for i, track := range m.tracks {
		b.WriteString(m.renderTrackRow(i, track))
		b.WriteString("\n")
	}

	if m.selected < len(m.tracks) {
		b.WriteString("\n")
		b.WriteString(boxStyle.Render(m.renderDetail(m.tracks[m.selected])))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderTrackRow(i int, track *model.Track) string {
	resolved := track.Asset(m.quality)

	location := "online "
	if resolved.Asset.IsOffline() {
		location = "offline"
	}

	title := track.Metadata().Title.OrElse(filepath.Base(resolved.Asset.Address()))
	line := fmt.Sprintf("%2d. [%-6s] %s  %s", i+1, resolved.Quality, location, title)

	if i < len(m.results) && m.results[i].Err != nil {
		line += "  " + errorStyle.Render("✗")
	}

	if i == m.selected {
		return selectedStyle.Render("› " + line)
	}
	return "  " + line
}

func (m Model) renderDetail(track *model.Track) string {
	var b strings.Builder

	assets := track.Assets()
	for _, q := range model.Qualities {
		asset, ok := assets.Get(q)
		address := dimStyle.Render("-")
		if ok {
			address = asset.Address()
		}
		fmt.Fprintf(&b, "%-6s %s\n", q, address)
	}

	meta := track.Metadata()
	b.WriteString("\n")
	fmt.Fprintf(&b, "Title:  %s\n", meta.Title.OrElse("-"))
	fmt.Fprintf(&b, "Artist: %s\n", meta.Artist.OrElse("-"))
	fmt.Fprintf(&b, "Album:  %s\n", meta.Album.OrElse("-"))
	fmt.Fprintf(&b, "Track:  %s\n", formatPosition(meta))

	artwork := "-"
	if img, ok := meta.Artwork.Get(); ok {
		bounds := img.Bounds()
		artwork = fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy())
	}
	fmt.Fprintf(&b, "Art:    %s", artwork)

	return b.String()
}

func formatPosition(meta model.Metadata) string {
	n, ok := meta.TrackNumber.Get()
	if !ok {
		return "-"
	}
	if count, ok := meta.TrackCount.Get(); ok {
		return fmt.Sprintf("%d/%d", n, count)
	}
	return fmt.Sprintf("%d", n)
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case library.LevelError:
			style = errorStyle
			prefix = "✗"
		case library.LevelWarning:
			style = warningStyle
			prefix = "!"
		case library.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case library.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: load • esc: quit"
	case StateLoading:
		return "v: verbose • esc: cancel"
	case StateReady:
		return "l/m/h: quality • ↑/↓: select • t: write tags • p: playlist • v: verbose • r: new manifest • q: quit"
	case StateError:
		return "r: try again • q: quit"
	}
	return ""
}

// manifestPath returns the manifest path entered by the user.
func (m Model) manifestPath() string {
	return strings.TrimSpace(m.textInput.Value())
}

// startLoad parses the manifest and creates the loader.
func (m Model) startLoad() tea.Cmd {
	path := m.manifestPath()
	settings := m.settings
	logger := m.logger

	return func() tea.Msg {
		tracks, err := library.ReadManifest(path)
		if err != nil {
			return LoadStartMsg{Err: err}
		}

		events := make(chan library.ProgressEvent, 64)
		loader := library.NewLoader(settings, logger, func(event library.ProgressEvent) {
			// Drop events when the view falls behind.
			select {
			case events <- event:
			default:
			}
		})

		return LoadStartMsg{Tracks: tracks, Loader: loader, Events: events}
	}
}

// runLoad loads every track's metadata in the background.
func (m Model) runLoad() tea.Cmd {
	ctx, loader, tracks := m.ctx, m.loader, m.tracks

	return func() tea.Msg {
		results, err := loader.LoadAll(ctx, tracks)
		return LoadDoneMsg{Results: results, Err: err}
	}
}

func (m Model) writeTags() tea.Cmd {
	ctx, loader, tracks, quality := m.ctx, m.loader, m.tracks, m.quality

	return func() tea.Msg {
		if err := loader.WriteTags(ctx, quality, tracks); err != nil {
			return ActionDoneMsg{Err: err}
		}
		return ActionDoneMsg{Status: fmt.Sprintf("Tagged %d track(s)", len(tracks))}
	}
}

func (m Model) writePlaylist() tea.Cmd {
	ctx, loader, tracks, quality := m.ctx, m.loader, m.tracks, m.quality
	manifest := m.manifestPath()

	return func() tea.Msg {
		base := strings.TrimSuffix(manifest, filepath.Ext(manifest))
		title := filepath.Base(base)
		path, err := loader.WritePlaylist(ctx, quality, base, title, tracks)
		if err != nil {
			return ActionDoneMsg{Err: err}
		}
		return ActionDoneMsg{Status: fmt.Sprintf("Playlist written to %s", path)}
	}
}

// Run starts the TUI application.
func Run(manifestPath string, settings *config.Settings, logger *zap.Logger, verbose bool) error {
	p := tea.NewProgram(NewModel(manifestPath, settings, logger, verbose), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
