// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package tui is the terminal front end of the prompt generator: the six
// form fields on the left, the live prompt on the right, copy and reset on
// control keys.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"storyprompt/internal/form"
	"storyprompt/internal/prompt"
)

const (
	title     = "Instagram Story Prompt Generator"
	tip       = "Paste this into your image generator along with your chosen image."
	wideWidth = 100 // side-by-side layout from this terminal width
)

// changedMsg reports a controller transition, including the timer revert.
type changedMsg struct{}

// control is the widget for one field. Choice fields have no widget; their
// value is read from the controller. Single-line fields switch to the
// textarea while their value holds a line break, since textinput flattens
// newlines.
type control struct {
	info  prompt.FieldInfo
	multi bool // value is edited in area
	input textinput.Model
	area  textarea.Model
}

func newControl(fi prompt.FieldInfo) control {
	c := control{info: fi, multi: fi.Multiline}
	if fi.Choice {
		return c
	}

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetHeight(3)
	ta.Prompt = ""
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	c.area = ta

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 0
	c.input = ti
	return c
}

func (c *control) value() string {
	if c.multi {
		return c.area.Value()
	}
	return c.input.Value()
}

func (c *control) setValue(v string) {
	if c.info.Choice {
		return
	}
	if multi := c.info.Multiline || strings.Contains(v, "\n"); multi != c.multi {
		focused := c.focused()
		c.blur()
		c.multi = multi
		if focused {
			c.focus()
		}
	}
	if c.multi {
		c.area.SetValue(v)
	} else {
		c.input.SetValue(v)
	}
}

func (c *control) focused() bool {
	switch {
	case c.info.Choice:
		return false
	case c.multi:
		return c.area.Focused()
	default:
		return c.input.Focused()
	}
}

func (c *control) focus() tea.Cmd {
	switch {
	case c.info.Choice:
		return nil
	case c.multi:
		return c.area.Focus()
	default:
		return c.input.Focus()
	}
}

func (c *control) blur() {
	if c.multi {
		c.area.Blur()
	} else if !c.info.Choice {
		c.input.Blur()
	}
}

func (c *control) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if c.multi {
		c.area, cmd = c.area.Update(msg)
	} else {
		c.input, cmd = c.input.Update(msg)
	}
	return cmd
}

func (c *control) setWidth(w int) {
	if c.info.Choice {
		return
	}
	c.area.SetWidth(w)
	c.input.Width = w
}

func (c *control) view() string {
	if c.multi {
		return c.area.View()
	}
	return c.input.View()
}

// Model is the bubbletea model wrapping a form.Controller.
type Model struct {
	ctrl     *form.Controller
	keys     KeyMap
	controls []control
	focus    int
	changes  chan struct{}
	width    int
}

// New builds the model and subscribes to the controller's transitions.
// The controller's change callback is replaced.
func New(ctrl *form.Controller) *Model {
	m := &Model{
		ctrl:    ctrl,
		keys:    NewKeyMap(),
		changes: make(chan struct{}, 1),
	}
	for _, fi := range prompt.Fields() {
		m.controls = append(m.controls, newControl(fi))
	}
	m.syncControls()
	m.controls[0].focus()
	m.layout(80)

	ctrl.OnChange(func() {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})
	return m
}

// Init starts listening for controller transitions.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForChange(m.changes))
}

// waitForChange blocks until the controller reports a transition.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return changedMsg{}
	}
}

// Update handles key presses, resizes and controller transitions.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changedMsg:
		return m, waitForChange(m.changes)

	case tea.WindowSizeMsg:
		m.layout(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.ctrl.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Copy):
			// A failure is kept as the controller's warning and shown in the footer.
			_ = m.ctrl.Copy()
			return m, nil
		case key.Matches(msg, m.keys.Reset):
			m.ctrl.Reset()
			m.syncControls()
			return m, nil
		case key.Matches(msg, m.keys.Next):
			return m, m.setFocus(m.focus + 1)
		case key.Matches(msg, m.keys.Prev):
			return m, m.setFocus(m.focus - 1)
		}

		c := &m.controls[m.focus]
		if c.info.Choice {
			switch {
			case key.Matches(msg, m.keys.ToneNext):
				m.cycleTone(1)
			case key.Matches(msg, m.keys.TonePrev):
				m.cycleTone(-1)
			}
			return m, nil
		}

		before := c.value()
		cmd := c.update(msg)
		// Only edits are written back; cursor moves leave the value alone.
		if v := c.value(); v != before {
			_ = m.ctrl.Update(c.info.Field, v)
		}
		return m, cmd
	}

	if c := &m.controls[m.focus]; !c.info.Choice {
		return m, c.update(msg)
	}
	return m, nil
}

// setFocus moves focus to index i, wrapping around.
func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.controls)
	m.controls[m.focus].blur()
	m.focus = ((i % n) + n) % n
	return m.controls[m.focus].focus()
}

func (m *Model) cycleTone(step int) {
	tones := prompt.Tones()
	current := m.ctrl.Inputs().Tone
	idx := 0
	for i, t := range tones {
		if t == current {
			idx = i
			break
		}
	}
	next := tones[((idx+step)%len(tones)+len(tones))%len(tones)]
	_ = m.ctrl.Update(prompt.FieldTone, string(next))
}

// syncControls copies the controller's snapshot into the widgets.
func (m *Model) syncControls() {
	in := m.ctrl.Inputs()
	for i := range m.controls {
		m.controls[i].setValue(in.Value(m.controls[i].info.Field))
	}
}

func (m *Model) layout(width int) {
	m.width = width
	for i := range m.controls {
		m.controls[i].setWidth(m.formWidth() - 2)
	}
}

func (m *Model) formWidth() int {
	if m.width >= wideWidth {
		return m.width/2 - 4
	}
	return max(m.width-4, 20)
}

// View renders the form, the prompt panel and the footer.
func (m *Model) View() string {
	snap := m.ctrl.Snapshot()

	header := titleStyle.Render(title) + badgeStyle.Render("Meme-style")

	var fields strings.Builder
	for i := range m.controls {
		c := &m.controls[i]
		label := labelStyle
		if i == m.focus {
			label = labelFocusedStyle
		}
		fields.WriteString(label.Render(c.info.Label))
		fields.WriteString("\n")
		if c.info.Choice {
			fields.WriteString(choiceStyle.Render("◀ " + snap.Inputs.Tone.Label() + " ▶"))
		} else {
			fields.WriteString(c.view())
		}
		fields.WriteString("\n\n")
	}
	formPanel := panelStyle.Width(m.formWidth()).Render(strings.TrimRight(fields.String(), "\n"))

	output := panelStyle.Width(m.formWidth()).Render(
		labelStyle.Render("Prompt") + "\n" + outputStyle.Render(snap.Prompt),
	)

	var body string
	if m.width >= wideWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top, formPanel, output)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, formPanel, output)
	}

	button := buttonStyle
	if snap.Ack == form.AckCopied {
		button = buttonCopiedStyle
	}
	buttons := button.Render(snap.Ack.ButtonLabel()) + buttonStyle.Render("Reset")

	lines := []string{header, body, buttons}
	if snap.Warning != "" {
		lines = append(lines, warningStyle.Render(snap.Warning))
	}
	lines = append(lines,
		helpStyle.Render(tip),
		helpStyle.Render(helpLine(m.keys.ShortHelp())),
	)
	return strings.Join(lines, "\n")
}

// Run starts the terminal UI for ctrl and blocks until the user quits.
func Run(ctrl *form.Controller, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(New(ctrl), opts...).Run()
	return err
}
