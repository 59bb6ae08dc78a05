package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/trebuchet-org/scriptkit/internal/domain"
)

// multiSelectModel is the bubbletea model for multi-select
type multiSelectModel struct {
	items     []domain.KeystoreEntry
	cursor    int
	selected  map[int]bool
	title     string
	done      bool
	cancelled bool
}

func initialMultiSelectModel(entries []domain.KeystoreEntry, title string) multiSelectModel {
	return multiSelectModel{
		items:    entries,
		selected: make(map[int]bool),
		title:    title,
	}
}

// Init is the initial command for bubbletea
func (m multiSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case " ":
		m.selected[m.cursor] = !m.selected[m.cursor]
	case "enter":
		if len(m.selectedIDs()) > 0 {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the UI
func (m multiSelectModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(color.New(color.FgCyan, color.Bold).Sprintf("%s\n\n", m.title))

	for i, item := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = color.New(color.FgCyan).Sprint("▸")
		}

		checkbox := color.New(color.FgWhite).Sprint("○")
		if m.selected[i] {
			checkbox = color.New(color.FgGreen).Sprint("✓")
		}

		address := color.New(color.FgYellow).Sprintf("(%s)", item.Address.Hex())
		fmt.Fprintf(&b, "%s %s %s %s\n", cursor, checkbox, item.ID, address)
	}

	b.WriteString("\n")
	b.WriteString(color.New(color.FgYellow).Sprint("↑/↓: move  Space: toggle  Enter: confirm  q: quit\n"))

	return b.String()
}

// selectedIDs returns the chosen ids in list order
func (m multiSelectModel) selectedIDs() []string {
	return lo.FilterMap(m.items, func(item domain.KeystoreEntry, i int) (string, bool) {
		return item.ID, m.selected[i]
	})
}

// SelectAccounts shows a multi-select of keystore entries and returns the chosen ids
func SelectAccounts(entries []domain.KeystoreEntry, title string) ([]string, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("no keystore accounts to select")
	}

	p := tea.NewProgram(initialMultiSelectModel(entries, title))
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("multi-select failed: %w", err)
	}

	m := finalModel.(multiSelectModel)
	if !m.done {
		return nil, fmt.Errorf("selection cancelled")
	}
	return m.selectedIDs(), nil
}
