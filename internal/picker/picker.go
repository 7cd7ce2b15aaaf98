package picker

import (
	"context"
	"errors"
	"fmt"

	"chat-triage/internal/triage"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const previewWidth = 48

var appStyle = lipgloss.NewStyle().Margin(1, 2)

type chatItem struct {
	c triage.ChatSummary
}

func (i chatItem) Title() string {
	return i.c.Title
}

func (i chatItem) Description() string {
	meta := fmt.Sprintf("%d unread", i.c.UnreadCount)
	if i.c.Muted {
		meta += " | muted"
	}
	preview := i.c.Preview.Text
	if preview == "" {
		return meta
	}
	if i.c.Preview.IsSender {
		preview = "You: " + preview
	}
	return meta + " | " + ansi.Truncate(preview, previewWidth, "…")
}

func (i chatItem) FilterValue() string {
	return i.c.Title + " " + i.c.Preview.Text
}

type model struct {
	list   list.Model
	choice string
}

func newModel(chats []triage.ChatSummary) model {
	items := make([]list.Item, len(chats))
	for i, c := range chats {
		items[i] = chatItem{c: c}
	}

	l := list.New(items, list.NewDefaultDelegate(), 60, 20)
	l.Title = "Chats needing reply"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.Styles.Title = lipgloss.NewStyle().Bold(true)

	return model{list: l}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(chatItem); ok {
				m.choice = item.c.ID
			}
			return m, tea.Quit
		case "esc", "q", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	return appStyle.Render(m.list.View())
}

// Picker is the interactive fuzzy chat selector. It implements
// triage.ChatPicker.
type Picker struct{}

// Pick runs the selection UI and returns the chosen chat id, or "" when the
// user backs out. Interrupting the program counts as no selection, not an
// error.
func (Picker) Pick(ctx context.Context, chats []triage.ChatSummary) (string, error) {
	if len(chats) == 0 {
		return "", nil
	}

	p := tea.NewProgram(newModel(chats), tea.WithContext(ctx), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || ctx.Err() != nil {
			return "", nil
		}
		return "", fmt.Errorf("run chat picker: %w", err)
	}

	m, ok := final.(model)
	if !ok {
		return "", nil
	}
	return m.choice, nil
}
