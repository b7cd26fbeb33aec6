package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gym-gazebo/gzlaunch/internal/launch"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionLaunch
	ActionPlan
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action Action
	World  *launch.World
	GUI    bool
}

// worldItem implements list.Item for world display
type worldItem struct {
	world launch.World
}

func (i worldItem) Title() string {
	return i.world.Name
}

func (i worldItem) Description() string {
	return fmt.Sprintf("%s | %s", speedLabel(i.world), truncatePath(i.world.Path, 50))
}

func (i worldItem) FilterValue() string {
	return i.world.Name
}

func speedLabel(w launch.World) string {
	if w.RealSpeed() {
		return "real time"
	}
	return "max speed"
}

func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return "..."
	}
	return "..." + path[len(path)-maxLen+3:]
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	guiOnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)

// Model is the bubbletea model for the world picker
type Model struct {
	list     list.Model
	result   PickerResult
	gui      bool
	quitting bool
}

// NewPicker creates a new world picker
func NewPicker(worlds []launch.World) Model {
	items := make([]list.Item, len(worlds))
	for i, w := range worlds {
		items[i] = worldItem{world: w}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "gzlaunch - Select World"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter", "p":
			if item, ok := m.list.SelectedItem().(worldItem); ok {
				w := item.world
				action := ActionLaunch
				if msg.String() == "p" {
					action = ActionPlan
				}
				m.result = PickerResult{Action: action, World: &w, GUI: m.gui}
				m.quitting = true
				return m, tea.Quit
			}

		case "g":
			m.gui = !m.gui
			return m, nil

		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	gui := "GUI: off"
	if m.gui {
		gui = guiOnStyle.Render("GUI: on")
	}
	help := helpStyle.Render("[enter] Launch  [p] Plan  [g] Toggle GUI  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + gui + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive world picker
func RunPicker(worlds []launch.World) (PickerResult, error) {
	if len(worlds) == 0 {
		return PickerResult{Action: ActionQuit}, nil
	}

	p := tea.NewProgram(NewPicker(worlds), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// SimpleList is a non-interactive listing of worlds
func SimpleList(worlds []launch.World, dir string) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("gzlaunch - Worlds") + "\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(worlds) == 0 {
		sb.WriteString(fmt.Sprintf("No worlds found in %s.\n", dir))
		return sb.String()
	}

	for i, w := range worlds {
		sb.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, w.Name, speedLabel(w)))
		sb.WriteString(fmt.Sprintf("   %s\n\n", truncatePath(w.Path, 56)))
	}

	return sb.String()
}
