package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrAborted is returned when the user leaves the form with esc or ctrl+c
var ErrAborted = errors.New("prompt aborted")

// Settings are the answers collected by the form
type Settings struct {
	Path    string
	Width   int     // 0 = auto
	FPS     float64 // 0 = auto
	Colored bool
}

type field int

const (
	fieldPath field = iota
	fieldWidth
	fieldFPS
	fieldColor
	fieldCount
)

var labels = [fieldCount]string{
	fieldPath:  "Video path",
	fieldWidth: "Width (auto if empty)",
	fieldFPS:   "FPS (auto if empty)",
	fieldColor: "Enable color? (y/n)",
}

// Model is the Bubble Tea model for the playback prompt
type Model struct {
	inputs   [fieldCount]textinput.Model
	focus    field
	settings Settings
	err      error
	done     bool
	aborted  bool
}

// NewModel creates the form, pre-filled from defaults
func NewModel(defaults Settings) Model {
	var m Model
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = "› "
		in.PromptStyle = promptStyle
		m.inputs[i] = in
	}

	m.inputs[fieldPath].Placeholder = "clip.mp4"
	m.inputs[fieldPath].SetValue(defaults.Path)
	m.inputs[fieldWidth].Placeholder = "auto"
	m.inputs[fieldWidth].CharLimit = 5
	if defaults.Width > 0 {
		m.inputs[fieldWidth].SetValue(strconv.Itoa(defaults.Width))
	}
	m.inputs[fieldFPS].Placeholder = "auto"
	m.inputs[fieldFPS].CharLimit = 8
	if defaults.FPS > 0 {
		m.inputs[fieldFPS].SetValue(strconv.FormatFloat(defaults.FPS, 'f', -1, 64))
	}
	m.inputs[fieldColor].Placeholder = "n"
	m.inputs[fieldColor].CharLimit = 3
	if defaults.Colored {
		m.inputs[fieldColor].SetValue("y")
	}

	m.inputs[fieldPath].Focus()
	return m
}

// Settings returns the parsed answers; only meaningful once Done is true
func (m Model) Settings() Settings {
	return m.settings
}

// Done reports whether every field was answered
func (m Model) Done() bool {
	return m.done
}

// Aborted reports whether the user cancelled the form
func (m Model) Aborted() bool {
	return m.aborted
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit

		case "enter", "tab", "down":
			if err := m.commit(m.focus); err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			if m.focus == fieldCount-1 {
				if msg.String() != "enter" {
					return m, nil
				}
				m.done = true
				return m, tea.Quit
			}
			return m, m.setFocus(m.focus + 1)

		case "shift+tab", "up":
			if m.focus > 0 {
				m.err = nil
				return m, m.setFocus(m.focus - 1)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(f field) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = f
	return m.inputs[m.focus].Focus()
}

// commit validates field f and stores its value
func (m *Model) commit(f field) error {
	v := strings.TrimSpace(m.inputs[f].Value())

	switch f {
	case fieldPath:
		if v == "" {
			return fmt.Errorf("a video path is required")
		}
		m.settings.Path = v

	case fieldWidth:
		m.settings.Width = 0
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("width must be a positive whole number")
		}
		m.settings.Width = n

	case fieldFPS:
		m.settings.FPS = 0
		if v == "" {
			return nil
		}
		fps, err := strconv.ParseFloat(v, 64)
		if err != nil || fps <= 0 {
			return fmt.Errorf("fps must be a positive number")
		}
		m.settings.FPS = fps

	case fieldColor:
		switch strings.ToLower(v) {
		case "y", "yes":
			m.settings.Colored = true
		case "", "n", "no":
			m.settings.Colored = false
		default:
			return fmt.Errorf("answer y or n")
		}
	}
	return nil
}

// View renders the form
func (m Model) View() string {
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("asciireel") + "\n\n")

	for i := range m.inputs {
		label := labels[i]
		if field(i) == m.focus {
			label = focusedStyle.Render(label)
		} else {
			label = labelStyle.Render(label)
		}
		b.WriteString("  " + label + "\n")
		b.WriteString("  " + m.inputs[i].View() + "\n\n")
	}

	if m.err != nil {
		b.WriteString("  " + errorStyle.Render(m.err.Error()) + "\n\n")
	}

	b.WriteString("  " + navStyle.Render("enter: next  shift+tab: back  esc: cancel") + "\n")
	return b.String()
}

// Prompt runs the form on the terminal and returns the answers
func Prompt(defaults Settings, opts ...tea.ProgramOption) (Settings, error) {
	final, err := tea.NewProgram(NewModel(defaults), opts...).Run()
	if err != nil {
		return Settings{}, fmt.Errorf("prompt failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok || !m.Done() {
		return Settings{}, ErrAborted
	}
	return m.Settings(), nil
}
