package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/communitydash/internal/client"
)

// fetchErrorText is shown when the community list cannot be loaded.
const fetchErrorText = "There was an error fetching your Communities."

// Store is the community backend the panel drives. *client.Client implements it.
type Store interface {
	CreateCommunity(ctx context.Context, in client.CommunityInput) (client.Community, error)
	GetCommunities(ctx context.Context) ([]client.Community, error)
	UpdateCommunity(ctx context.Context, id string, in client.CommunityInput) (client.Community, error)
	DeleteCommunity(ctx context.Context, id string) error
	GetScorers(ctx context.Context, id string) (client.Scorers, error)
	SetScorer(ctx context.Context, id, scorerType string) error
}

type Options struct {
	// Limit disables creation once this many communities are listed.
	Limit      int
	APIKeysURL string
	Log        *zap.Logger
}

// Panel is the community manager model.
type Panel struct {
	ctx        context.Context
	store      Store
	log        *zap.Logger
	keys       keyMap
	limit      int
	apiKeysURL string

	communities []client.Community
	loaded      bool
	cursor      int
	err         string
	status      string
	modal       modal
	// pending is set from submit until the mutation's re-fetch returns.
	pending bool

	width  int
	height int
}

func New(ctx context.Context, store Store, opts Options) *Panel {
	if opts.Limit <= 0 {
		opts.Limit = 5
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &Panel{
		ctx:        ctx,
		store:      store,
		log:        opts.Log,
		keys:       defaultKeys(),
		limit:      opts.Limit,
		apiKeysURL: opts.APIKeysURL,
	}
}

func (p *Panel) Init() tea.Cmd {
	return p.fetchCmd(kindNone)
}

// messages
type communitiesMsg struct {
	list []client.Community
	err  error
	// closing is the modal that requested this fetch.
	closing modalKind
}

type createdMsg struct{ err error }

type updatedMsg struct{ err error }

type deletedMsg struct {
	id  string
	err error
}

type scorersMsg struct {
	id      string
	scorers client.Scorers
	err     error
}

type scorerSetMsg struct {
	id  string
	err error
}

// commands
func (p *Panel) fetchCmd(closing modalKind) tea.Cmd {
	return func() tea.Msg {
		list, err := p.store.GetCommunities(p.ctx)
		return communitiesMsg{list: list, err: err, closing: closing}
	}
}

func (p *Panel) createCmd(in client.CommunityInput) tea.Cmd {
	return func() tea.Msg {
		_, err := p.store.CreateCommunity(p.ctx, in)
		return createdMsg{err: err}
	}
}

func (p *Panel) updateCmd(id string, in client.CommunityInput) tea.Cmd {
	return func() tea.Msg {
		_, err := p.store.UpdateCommunity(p.ctx, id, in)
		return updatedMsg{err: err}
	}
}

func (p *Panel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{id: id, err: p.store.DeleteCommunity(p.ctx, id)}
	}
}

func (p *Panel) loadScorersCmd(id string) tea.Cmd {
	return func() tea.Msg {
		s, err := p.store.GetScorers(p.ctx, id)
		return scorersMsg{id: id, scorers: s, err: err}
	}
}

func (p *Panel) setScorerCmd(id, scorerType string) tea.Cmd {
	return func() tea.Msg {
		return scorerSetMsg{id: id, err: p.store.SetScorer(p.ctx, id, scorerType)}
	}
}

func (p *Panel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = m.Width, m.Height
		return p, nil
	case tea.KeyMsg:
		if p.modal != nil {
			return p, p.handleModalKey(m)
		}
		return p, p.handleListKey(m)
	case communitiesMsg:
		if m.err != nil {
			p.log.Warn("fetch communities", zap.Error(m.err))
			p.err = fetchErrorText
		} else {
			p.communities = m.list
			p.loaded = true
			p.err = ""
			p.clampCursor()
		}
		// A mutation stays pending until its re-fetch lands and closes the modal.
		if m.closing != kindNone {
			p.pending = false
			if p.modal != nil && p.modal.kind() == m.closing {
				p.modal = nil
			}
		}
		return p, nil
	case createdMsg:
		if m.err != nil {
			p.pending = false
			p.log.Error("create community", zap.Error(m.err))
			return p, nil
		}
		if c, ok := p.modal.(*creatingModal); ok {
			c.draft.reset()
		}
		return p, p.fetchCmd(kindCreate)
	case updatedMsg:
		if m.err != nil {
			p.pending = false
			p.log.Error("update community", zap.Error(m.err))
			return p, nil
		}
		if e, ok := p.modal.(*editingModal); ok {
			e.draft.reset()
		}
		return p, p.fetchCmd(kindEdit)
	case deletedMsg:
		if m.err != nil {
			p.log.Error("delete community", zap.String("community_id", m.id), zap.Error(m.err))
		}
		return p, p.fetchCmd(kindDelete)
	case scorersMsg:
		s, ok := p.modal.(*scoringModal)
		if !ok || s.id != m.id {
			return p, nil
		}
		if m.err != nil {
			p.log.Error("load scorers", zap.String("community_id", m.id), zap.Error(m.err))
			p.modal = nil
			p.status = "Could not load scorers for " + s.name
			return p, nil
		}
		s.loading = false
		s.current = m.scorers.Current
		s.options = m.scorers.Options
		s.cursor = 0
		for i, o := range s.options {
			if o.ID == s.current {
				s.cursor = i
			}
		}
		return p, nil
	case scorerSetMsg:
		if m.err != nil {
			p.pending = false
			p.log.Error("set scorer", zap.String("community_id", m.id), zap.Error(m.err))
			return p, nil
		}
		return p, p.fetchCmd(kindScoring)
	}
	return p, nil
}

func (p *Panel) handleListKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, p.keys.Quit):
		return tea.Quit
	case key.Matches(m, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(m, p.keys.Down):
		if p.cursor < len(p.communities)-1 {
			p.cursor++
		}
	case key.Matches(m, p.keys.Refresh):
		p.status = ""
		return p.fetchCmd(kindNone)
	case key.Matches(m, p.keys.Create):
		if !p.canCreate() {
			p.status = fmt.Sprintf("You can create at most %d communities", p.limit)
			return nil
		}
		p.status = ""
		p.modal = &creatingModal{step: stepUsecase, draft: newDraft("", "")}
	case key.Matches(m, p.keys.APIKeys):
		if len(p.communities) == 0 {
			return nil
		}
		p.status = "Configure API Keys at " + p.apiKeysURL
	case key.Matches(m, p.keys.Edit):
		if c, ok := p.selected(); ok {
			p.status = ""
			p.modal = &editingModal{id: c.ID, draft: newDraft(c.Name, c.Description)}
		}
	case key.Matches(m, p.keys.Delete):
		if c, ok := p.selected(); ok {
			p.status = ""
			p.modal = &confirmDeleteModal{id: c.ID, name: c.Name}
		}
	case key.Matches(m, p.keys.Scorer):
		if c, ok := p.selected(); ok {
			p.status = ""
			p.modal = &scoringModal{id: c.ID, name: c.Name, loading: true}
			return p.loadScorersCmd(c.ID)
		}
	}
	return nil
}

func (p *Panel) handleModalKey(m tea.KeyMsg) tea.Cmd {
	if m.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	switch md := p.modal.(type) {
	case *creatingModal:
		return p.handleCreateKey(md, m)
	case *editingModal:
		return p.handleEditKey(md, m)
	case *confirmDeleteModal:
		switch {
		case key.Matches(m, p.keys.Confirm):
			if p.pending {
				return nil
			}
			p.pending = true
			return p.deleteCmd(md.id)
		case key.Matches(m, p.keys.Cancel):
			if !p.pending {
				p.modal = nil
			}
		}
	case *scoringModal:
		switch {
		case key.Matches(m, p.keys.Close):
			if !p.pending {
				p.modal = nil
			}
		case key.Matches(m, p.keys.Up):
			if md.cursor > 0 {
				md.cursor--
			}
		case key.Matches(m, p.keys.Down):
			if md.cursor < len(md.options)-1 {
				md.cursor++
			}
		case key.Matches(m, p.keys.Submit):
			if p.pending || md.loading || len(md.options) == 0 {
				return nil
			}
			p.pending = true
			return p.setScorerCmd(md.id, md.options[md.cursor].ID)
		}
	}
	return nil
}

func (p *Panel) handleCreateKey(c *creatingModal, m tea.KeyMsg) tea.Cmd {
	if key.Matches(m, p.keys.Close) {
		if !p.pending {
			p.modal = nil
		}
		return nil
	}
	if c.step == stepUsecase {
		switch {
		case key.Matches(m, p.keys.Up):
			if c.cursor > 0 {
				c.cursor--
			}
		case key.Matches(m, p.keys.Down):
			if c.cursor < len(usecases)-1 {
				c.cursor++
			}
		case key.Matches(m, p.keys.Submit):
			c.usecase = usecases[c.cursor].Title
			c.step = stepForm
		}
		return nil
	}
	switch {
	case key.Matches(m, p.keys.NextItem):
		c.draft.toggleFocus(1 - c.draft.focus)
		return nil
	case key.Matches(m, p.keys.Submit):
		if p.pending {
			return nil
		}
		p.pending = true
		return p.createCmd(c.draft.input())
	}
	return c.draft.update(m)
}

func (p *Panel) handleEditKey(e *editingModal, m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, p.keys.Close):
		if !p.pending {
			p.modal = nil
		}
		return nil
	case key.Matches(m, p.keys.NextItem):
		e.draft.toggleFocus(1 - e.draft.focus)
		return nil
	case key.Matches(m, p.keys.Submit):
		if p.pending || e.draft.empty() {
			return nil
		}
		p.pending = true
		return p.updateCmd(e.id, e.draft.input())
	}
	return e.draft.update(m)
}

// canCreate reports whether the create control is enabled.
func (p *Panel) canCreate() bool {
	return len(p.communities) < p.limit
}

func (p *Panel) selected() (client.Community, bool) {
	if p.cursor < 0 || p.cursor >= len(p.communities) {
		return client.Community{}, false
	}
	return p.communities[p.cursor], true
}

func (p *Panel) clampCursor() {
	if p.cursor >= len(p.communities) {
		p.cursor = len(p.communities) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}
