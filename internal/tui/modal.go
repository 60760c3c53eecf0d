package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/communitydash/internal/client"
)

// modalKind names a modal so a re-fetch can close the one that started it.
type modalKind int

const (
	kindNone modalKind = iota
	kindCreate
	kindEdit
	kindDelete
	kindScoring
)

// modal is the open dialog. A nil modal means closed; only one can be open.
type modal interface {
	kind() modalKind
}

type createStep int

const (
	stepUsecase createStep = iota
	stepForm
)

type creatingModal struct {
	step    createStep
	cursor  int
	usecase string
	draft   draft
}

type editingModal struct {
	id    string
	draft draft
}

type confirmDeleteModal struct {
	id   string
	name string
}

type scoringModal struct {
	id      string
	name    string
	loading bool
	current string
	options []client.ScorerOption
	cursor  int
}

func (*creatingModal) kind() modalKind      { return kindCreate }
func (*editingModal) kind() modalKind       { return kindEdit }
func (*confirmDeleteModal) kind() modalKind { return kindDelete }
func (*scoringModal) kind() modalKind       { return kindScoring }

// draft holds unsaved name/description input.
type draft struct {
	name        textinput.Model
	description textinput.Model
	focus       int
}

func newDraft(name, description string) draft {
	d := draft{
		name:        newInput("Community name", 64),
		description: newInput("Description", 256),
	}
	d.name.SetValue(name)
	d.description.SetValue(description)
	d.name.Focus()
	return d
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func (d *draft) values() (name, description string) {
	return strings.TrimSpace(d.name.Value()), strings.TrimSpace(d.description.Value())
}

func (d *draft) empty() bool {
	name, desc := d.values()
	return name == "" && desc == ""
}

func (d *draft) input() client.CommunityInput {
	return client.CommunityInput{Name: d.name.Value(), Description: d.description.Value()}
}

func (d *draft) reset() {
	d.name.Reset()
	d.description.Reset()
	d.toggleFocus(0)
}

func (d *draft) toggleFocus(to int) {
	d.focus = to
	if to == 0 {
		d.name.Focus()
		d.description.Blur()
		return
	}
	d.name.Blur()
	d.description.Focus()
}

func (d *draft) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if d.focus == 0 {
		d.name, cmd = d.name.Update(msg)
	} else {
		d.description, cmd = d.description.Update(msg)
	}
	return cmd
}
