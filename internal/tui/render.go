package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func (p *Panel) View() string {
	var body string
	if len(p.communities) == 0 {
		body = p.renderEmpty()
	} else {
		body = p.renderList()
	}
	if p.modal == nil {
		return body
	}
	if p.width > 0 && p.height > 0 {
		return renderPopup(body, p.renderModal(), p.width, p.height)
	}
	return body + "\n\n" + p.renderModal()
}

func (p *Panel) renderEmpty() string {
	var b strings.Builder
	if p.err != "" {
		b.WriteString(errorStyle.Render(p.err) + "\n\n")
	}
	if !p.loaded && p.err == "" {
		b.WriteString(mutedStyle.Render("Loading communities...") + "\n")
		return b.String()
	}
	cta := titleStyle.Render("My Communities") + "\n\n" +
		subtextStyle.Render("Manage how your dapps interact with the Gitcoin Passport by creating a key that will connect to any community.") + "\n\n" +
		actionStyle.Render("[n] + Add")
	b.WriteString(emptyStyle.Render(cta))
	b.WriteString("\n" + mutedStyle.Render("[r] refresh  [q] quit"))
	if p.status != "" {
		b.WriteString("\n" + p.status)
	}
	return b.String()
}

func (p *Panel) renderList() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Communities") + "\n")
	if p.err != "" {
		b.WriteString(errorStyle.Render(p.err) + "\n")
	}
	b.WriteString("\n")
	for i, c := range p.communities {
		style := cardStyle
		name := c.Name
		if i == p.cursor {
			style = selectedCard
			name = "▶ " + name
		}
		desc := c.Description
		if desc == "" {
			desc = "-"
		}
		b.WriteString(style.Render(lipgloss.NewStyle().Bold(true).Render(name)+"\n"+subtextStyle.Render(desc)) + "\n")
	}
	b.WriteString("\n" + p.renderControls() + "\n")
	b.WriteString(mutedStyle.Render(helpLine(p.keys.listHelp())))
	if p.status != "" {
		b.WriteString("\n" + p.status)
	}
	return b.String()
}

func (p *Panel) renderControls() string {
	create := actionStyle.Render("[n] Create a Community")
	if !p.canCreate() {
		create = disabledStyle.Render("[n] Create a Community") + " " +
			mutedStyle.Render(fmt.Sprintf("(limit of %d reached)", p.limit))
	}
	return create + "   " + actionStyle.Render("[a] Configure API Keys")
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return strings.Join(parts, "  ")
}

func (p *Panel) renderModal() string {
	switch md := p.modal.(type) {
	case *creatingModal:
		if md.step == stepUsecase {
			return p.renderUsecases(md)
		}
		out := titleStyle.Render("Create a Community") + "\n" +
			mutedStyle.Render("Use case: "+md.usecase) + "\n\n" +
			renderDraft(&md.draft) + "\n\n"
		return out + p.submitControl("Create", false) + "  [tab] Next field  [esc] Cancel"
	case *editingModal:
		out := titleStyle.Render("Update Community") + "\n\n" + renderDraft(&md.draft) + "\n\n"
		return out + p.submitControl("Save", md.draft.empty()) + "  [tab] Next field  [esc] Cancel"
	case *confirmDeleteModal:
		out := titleStyle.Render("Delete community?") + "\n" +
			fmt.Sprintf("%q will be removed.\n", md.name)
		if p.pending {
			return out + mutedStyle.Render("Deleting...")
		}
		return out + "[y] Yes  [n] No"
	case *scoringModal:
		return p.renderScorers(md)
	default:
		return ""
	}
}

func (p *Panel) renderUsecases(md *creatingModal) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Select a Use Case") + "\n")
	b.WriteString(subtextStyle.Render("Let's see what we can do.") + "\n\n")
	for i, u := range usecases {
		marker := " "
		title := u.Title
		if i == md.cursor {
			marker = "▶"
			title = actionStyle.Render(title)
		}
		fmt.Fprintf(&b, "%s %s\n  %s\n", marker, title, mutedStyle.Render(u.Description))
	}
	b.WriteString("\n[enter] Continue  [esc] Cancel")
	return b.String()
}

func (p *Panel) renderScorers(md *scoringModal) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Scorer for "+md.name) + "\n\n")
	if md.loading {
		b.WriteString(mutedStyle.Render("Loading scorers..."))
		return b.String()
	}
	for i, o := range md.options {
		marker := " "
		if i == md.cursor {
			marker = "▶"
		}
		label := o.Label
		if o.ID == md.current {
			label += " (current)"
		}
		fmt.Fprintf(&b, "%s %s\n", marker, label)
	}
	b.WriteString("\n" + p.submitControl("Select", false) + "  [esc] Close")
	return b.String()
}

func renderDraft(d *draft) string {
	nameLabel, descLabel := "Name", "Description"
	if d.focus == 0 {
		nameLabel = actionStyle.Render(nameLabel)
	} else {
		descLabel = actionStyle.Render(descLabel)
	}
	return nameLabel + "\n" + d.name.View() + "\n\n" + descLabel + "\n" + d.description.View()
}

// submitControl renders the enter action, dimmed while a request is in flight or when disabled.
func (p *Panel) submitControl(label string, disabled bool) string {
	switch {
	case p.pending:
		return mutedStyle.Render("[enter] " + label + " (pending...)")
	case disabled:
		return disabledStyle.Render("[enter] " + label)
	default:
		return "[enter] " + label
	}
}
