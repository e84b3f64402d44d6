package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-candy/internal/core"
	"github.com/vovakirdan/tui-candy/internal/games/candy"
	"github.com/vovakirdan/tui-candy/internal/games/candy/levels"
	"github.com/vovakirdan/tui-candy/internal/registry"
)

// MenuChoice is what the player picked in the main menu.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoicePlay
	MenuChoiceScoreboard
	MenuChoiceQuit
)

var menuEntries = []string{
	"Play",
	"Select Level...",
	"High Scores",
	"Quit",
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuCurStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// MenuModel is the Bubble Tea model for the main menu and the level picker.
type MenuModel struct {
	info          registry.GameInfo
	catalog       *levels.Catalog
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	config        core.RuntimeConfig
	keyMapper     *KeyMapper
	help          help.Model
	choice        MenuChoice
	level         int // 1-based start level, 0 for the first
	quitOnChoice  bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	info, ok := registry.Info(candy.GameID)
	if !ok {
		info = registry.GameInfo{ID: candy.GameID, Title: "Candy Crush"}
	}

	return MenuModel{
		info:      info,
		catalog:   candy.ActiveCatalog(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelect(action)
		}
		return m.handleMain(action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config = m.config.Resized(msg.Width, msg.Height)
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MenuModel) handleMain(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		return m.choose(MenuChoiceQuit)
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case 0:
			m.level = 0
			return m.choose(MenuChoicePlay)
		case 1:
			m.inLevelSelect = true
			m.levelCursor = 0
		case 2:
			return m.choose(MenuChoiceScoreboard)
		case 3:
			return m.choose(MenuChoiceQuit)
		}
	}
	return m, nil
}

func (m MenuModel) handleLevelSelect(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		return m.choose(MenuChoiceQuit)
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < m.catalog.Count()-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.level = m.levelCursor + 1
		return m.choose(MenuChoicePlay)
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

// choose records the choice. Standalone menus end their program.
func (m MenuModel) choose(c MenuChoice) (tea.Model, tea.Cmd) {
	m.choice = c
	if m.quitOnChoice {
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice == MenuChoiceQuit {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewMain()
}

func (m MenuModel) viewMain() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(spaced(m.info.Title)), m.width))
	b.WriteString("\n\n")
	if m.info.Description != "" {
		b.WriteString(centerText(menuDimStyle.Render(m.info.Description), m.width))
		b.WriteString("\n\n")
	}

	for i, entry := range menuEntries {
		if i == 0 {
			entry = fmt.Sprintf("%s (%d levels)", entry, m.catalog.Count())
		}
		b.WriteString(centerText(cursorLine(i == m.cursor, entry), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuDimStyle.Render("In game: ")+m.help.View(m.keyMapper.Keys()), m.width))
	b.WriteString("\n")
	return b.String()
}

func (m MenuModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("SELECT LEVEL"), m.width))
	b.WriteString("\n\n")

	for i, lvl := range m.catalog.All() {
		line := fmt.Sprintf("%2d. %-18s %-8s goal %5d  moves %2d  %dx%d",
			i+1, lvl.Name, lvl.Difficulty, lvl.ScoreGoal, lvl.MoveBudget, lvl.Rows, lvl.Cols)
		b.WriteString(centerText(cursorLine(i == m.levelCursor, line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render("Enter: Play  |  Esc: Back  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Choice returns what the player picked, or MenuChoiceNone.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// StartLevel returns the chosen 1-based start level (0 = first level).
func (m MenuModel) StartLevel() int {
	return m.level
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

func cursorLine(selected bool, text string) string {
	if selected {
		return menuCurStyle.Render("> " + text)
	}
	return "  " + text
}

// spaced puts a space between letters of a title: "CANDY" → "C A N D Y".
func spaced(title string) string {
	return strings.Join(strings.Split(strings.ToUpper(title), ""), " ")
}

// centerText centers text within given width, ignoring ANSI styling.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "."
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice     MenuChoice
	StartLevel int
	Config     core.RuntimeConfig
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(cfg)
	model.quitOnChoice = true

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Choice: MenuChoiceQuit, Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.Choice() == MenuChoiceNone {
		return MenuResult{Choice: MenuChoiceQuit, Config: cfg}, nil
	}
	return MenuResult{
		Choice:     m.Choice(),
		StartLevel: m.StartLevel(),
		Config:     m.Config(),
	}, nil
}
