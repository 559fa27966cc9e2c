package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/deskmate/internal/client/config"
	"github.com/dmitrijs2005/deskmate/internal/client/models"
	"github.com/dmitrijs2005/deskmate/internal/client/session"
)

// threadLoadedMsg delivers the conversation thread, generation-tagged.
type threadLoadedMsg struct {
	gen     int
	entries []models.CommentEntry
	err     error
}

// commentPostedMsg delivers the thread refetched after a post.
type commentPostedMsg struct {
	gen     int
	entries []models.CommentEntry
	err     error
}

// conversationView shows a ticket's comment thread, oldest first, with an
// input line for appending to it. The thread is keyed to the remembered
// ticket id; without one the view fails locally and never fetches.
type conversationView struct {
	ctx  context.Context
	deps *Deps

	ticketID  int
	idMissing bool

	gen      int
	fetching bool
	loaded   bool

	entries []models.CommentEntry
	errText string

	input   textinput.Model
	private bool
	posting bool
}

func newConversationView(ctx context.Context, deps *Deps) *conversationView {
	input := textinput.New()
	input.Placeholder = "write a comment"
	input.Focus()

	v := &conversationView{ctx: ctx, deps: deps, input: input}

	id, err := deps.Session.SelectedID(ctx, session.ResourceTicket)
	if err != nil {
		v.idMissing = true
		v.loaded = true
		if errors.Is(err, session.ErrNoIdentifier) {
			v.errText = "no ticket selected"
		} else {
			v.errText = err.Error()
		}
		return v
	}
	v.ticketID = id
	return v
}

func (v *conversationView) Title() string {
	if v.idMissing {
		return "conversation"
	}
	return fmt.Sprintf("conversation · ticket #%d", v.ticketID)
}

func (v *conversationView) capturesKeys() bool { return true }

func (v *conversationView) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, v.fetchCmd())
}

func (v *conversationView) fetchCmd() tea.Cmd {
	if v.idMissing || v.fetching {
		return nil
	}
	v.fetching = true
	v.gen++
	gen := v.gen
	return func() tea.Msg {
		entries, err := v.deps.Tickets.Comments(v.ctx, v.ticketID)
		return threadLoadedMsg{gen: gen, entries: entries, err: err}
	}
}

// postCmd submits the input line. The service refetches the thread once
// after the post, so one command yields both the append and the fresh
// copy.
func (v *conversationView) postCmd() tea.Cmd {
	if v.posting {
		return nil
	}
	v.posting = true
	v.gen++
	gen := v.gen
	message := v.input.Value()
	private := v.private
	return func() tea.Msg {
		entries, err := v.deps.Tickets.PostComment(v.ctx, v.ticketID, message, private)
		return commentPostedMsg{gen: gen, entries: entries, err: err}
	}
}

func (v *conversationView) startDraftApprovalCmd() tea.Cmd {
	ticketID := v.ticketID
	return func() tea.Msg {
		if err := v.deps.Approvals.StartDraftProcess(v.ctx, ticketID); err != nil {
			return statusNoteMsg{text: errorText(err), isErr: true}
		}
		return statusNoteMsg{text: "draft approval process started"}
	}
}

func (v *conversationView) feedbackForm() View {
	ticketID := v.ticketID
	specs := feedbackFieldSpecs
	return newFormView(v.ctx, v.deps, formConfig{
		title:       fmt.Sprintf("feedback · ticket #%d", ticketID),
		specs:       specs,
		successNote: "feedback submitted",
		submit: func(ctx context.Context, body map[string]any) error {
			rating := intField(body, "rating")
			comments, _ := body["comments"].(string)
			return v.deps.Feedback.Create(ctx, ticketID, rating, comments)
		},
	})
}

func (v *conversationView) setEntries(entries []models.CommentEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	v.entries = entries
}

func (v *conversationView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case refetchMsg:
		return v, v.fetchCmd()

	case threadLoadedMsg:
		// fetches and posts share one generation counter; the guard clears
		// even when the response was superseded by a post
		v.fetching = false
		if msg.gen != v.gen {
			return v, nil
		}
		v.loaded = true
		if msg.err != nil {
			v.errText = errorText(msg.err)
			return v, nil
		}
		v.errText = ""
		v.setEntries(msg.entries)
		return v, nil

	case commentPostedMsg:
		v.posting = false
		if msg.gen != v.gen {
			return v, nil
		}
		if msg.err != nil {
			// the typed message stays in the input for a retry
			return v, func() tea.Msg { return statusNoteMsg{text: errorText(msg.err), isErr: true} }
		}
		v.input.SetValue("")
		v.setEntries(msg.entries)
		return v, nil

	case tea.KeyMsg:
		keys := v.deps.Keys
		switch {
		case key.Matches(msg, keys.Back):
			return v, func() tea.Msg { return popViewMsg{} }
		case msg.String() == "enter":
			if v.idMissing {
				return v, nil
			}
			return v, v.postCmd()
		case key.Matches(msg, keys.Private) && v.deps.Config.Role == config.RoleAgent && v.input.Value() == "":
			v.private = !v.private
			return v, nil
		case key.Matches(msg, keys.StartDraft) && v.deps.Config.Role == config.RoleAgent && v.input.Value() == "":
			if v.idMissing {
				return v, nil
			}
			return v, v.startDraftApprovalCmd()
		case key.Matches(msg, keys.Feedback) && v.deps.Config.Role == config.RoleUser && v.input.Value() == "":
			if v.idMissing {
				return v, nil
			}
			form := v.feedbackForm()
			return v, func() tea.Msg { return pushViewMsg{view: form} }
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *conversationView) View() string {
	theme := v.deps.Theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	agentStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground)
	userStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	privateStyle := lipgloss.NewStyle().Foreground(theme.BadgeText)

	var b strings.Builder
	b.WriteString("\n")

	switch {
	case v.errText != "":
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.ErrorText).Render(v.errText) + "\n")
	case !v.loaded:
		b.WriteString("  " + faint.Render("loading...") + "\n")
	case len(v.entries) == 0:
		b.WriteString("  " + faint.Render("no comments yet") + "\n")
	default:
		for _, entry := range v.entries {
			author := "user"
			style := userStyle
			if entry.AgentAuthored() {
				author = "agent"
				style = agentStyle
			}
			line := fmt.Sprintf("  [%s] %s", author, entry.Message)
			if entry.IsPrivate {
				line += privateStyle.Render("  (private)")
			}
			b.WriteString(style.Render(line) + "\n")
		}
	}

	if !v.idMissing {
		b.WriteString("\n  " + v.input.View() + "\n")
		if v.posting {
			b.WriteString("  " + faint.Render("posting...") + "\n")
		}
	}

	help := []string{"Enter post", "Esc back"}
	if v.deps.Config.Role == config.RoleAgent {
		mode := "public"
		if v.private {
			mode = "private"
		}
		help = append(help, "p privacy ("+mode+")", "A start approval")
	} else {
		help = append(help, "f feedback")
	}
	b.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.HelpText).Render(strings.Join(help, " · ")))
	return b.String()
}
