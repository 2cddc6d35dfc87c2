// Package voice provides the command console view for the TUI.
package voice

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui/components/history"
	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cartvoice/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cartvoice/internal/core/domain"
	"github.com/custodia-labs/cartvoice/internal/core/ports/driving"
)

// View is the command console: an input line, the history of handled
// commands and a status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.CommandInput
	history   *history.List
	statusbar *status.Bar

	voiceService driving.VoiceCommandService
	ctx          context.Context

	width      int
	height     int
	ready      bool
	err        error
	busy       bool
	focusInput bool // true = typing, false = browsing history
}

// NewView creates a new voice view.
func NewView(s *styles.Styles, km *keymap.KeyMap, voiceService driving.VoiceCommandService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:       s,
		keymap:       km,
		input:        input.NewCommandInput(s),
		history:      history.NewList(s),
		statusbar:    status.NewBar(s, km),
		voiceService: voiceService,
		ctx:          context.Background(),
		width:        80,
		height:       24,
		focusInput:   true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the voice view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.CommandHandled:
		v.handleCommandHandled(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.busy = false
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if keymap.Matches(msg.String(), v.keymap.Back) {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if keymap.Matches(msg.String(), v.keymap.Focus) {
		v.toggleFocus()
		return v, nil
	}

	if !v.focusInput {
		v.history, _ = v.history.Update(msg)
		return v, nil
	}

	if keymap.Matches(msg.String(), v.keymap.Send) {
		transcript := strings.TrimSpace(v.input.Value())
		if transcript == "" || v.busy {
			return v, nil
		}
		v.busy = true
		v.statusbar.SetState(status.StateWorking)
		return v, v.submit(transcript)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) toggleFocus() {
	v.focusInput = !v.focusInput
	if v.focusInput {
		v.input.Focus()
		v.statusbar.SetState(status.StateReady)
		return
	}
	v.input.Blur()
	v.statusbar.SetState(status.StateHistory)
}

// submit handles a transcript through the voice command service.
func (v *View) submit(transcript string) tea.Cmd {
	return func() tea.Msg {
		if v.voiceService == nil {
			return messages.ErrorOccurred{Err: ErrNoVoiceService}
		}
		report, err := v.voiceService.Handle(v.ctx, transcript)
		return messages.CommandHandled{Transcript: transcript, Report: report, Err: err}
	}
}

func (v *View) handleCommandHandled(msg messages.CommandHandled) {
	v.busy = false
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.history.Add(history.Entry{Transcript: msg.Transcript, Report: msg.Report})
	v.input.Reset()
	v.statusbar.SetReport(msg.Report)
}

// View renders the voice view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("Voice commands"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.history.View(), "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.history.SetDimensions(width, height-8) // header, input and status
	v.statusbar.SetWidth(width)
}

// Reset returns the view to input mode with an empty line.
// The history is kept.
func (v *View) Reset() {
	v.focusInput = true
	v.busy = false
	v.input.Focus()
	v.input.SetValue("")
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// Transcript returns the text in the input line.
func (v *View) Transcript() string {
	return v.input.Value()
}

// SetTranscript sets the text in the input line.
func (v *View) SetTranscript(text string) {
	v.input.SetValue(text)
}

// History returns the handled commands, newest first.
func (v *View) History() []history.Entry {
	return v.history.Entries()
}

// LastReport returns the most recent report, or nil.
func (v *View) LastReport() *domain.CommandReport {
	entries := v.history.Entries()
	if len(entries) == 0 {
		return nil
	}
	return entries[0].Report
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Busy returns true while a command is being handled.
func (v *View) Busy() bool {
	return v.busy
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}
