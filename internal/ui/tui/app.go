package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/usecase"
)

type screen int

const (
	screenHome screen = iota
	screenRunning
	screenResult
)

type action int

const (
	actionDemo action = iota
	actionScenario
	actionInit
	actionQuit
)

type menuItem struct {
	title  string
	desc   string
	action action
	path   string
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

type model struct {
	theme Theme
	deps  Deps

	scr     screen
	menu    list.Model
	spin    spinner.Model
	running bool
	toast   string
	width   int

	root string
	cfg  domain.Config

	runCh  chan runnerDoneMsg
	result runnerDoneMsg
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	l := list.New(menuItems(deps.Root, nil), list.NewDefaultDelegate(), 0, 0)
	l.Title = "payflow"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	s := spinner.New()
	s.Spinner = spinner.Dot

	return model{
		theme: DefaultTheme(),
		deps:  deps,
		scr:   screenHome,
		menu:  l,
		spin:  s,
		root:  deps.Root,
		cfg:   deps.Config,
	}
}

func menuItems(root string, refs []domain.ScenarioRef) []list.Item {
	items := []list.Item{
		menuItem{title: "Demo payment", desc: "100 USD card payment for John Doe", action: actionDemo},
	}
	for _, r := range refs {
		items = append(items, menuItem{title: r.Name, desc: r.Path, action: actionScenario, path: r.Path})
	}
	if root == "" {
		items = append(items, menuItem{title: "Init workspace", desc: "Create payflow.yaml and sample scenarios here", action: actionInit})
	}
	return append(items, menuItem{title: "Quit", desc: "Exit payflow", action: actionQuit})
}

func (m model) Init() tea.Cmd { return cmdLoadScenarios(m.deps, m.root) }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.menu.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case scenariosLoadedMsg:
		if msg.err != nil {
			m.toast = UserMessage(msg.err)
		}
		m.menu.SetItems(menuItems(m.root, msg.refs))
		return m, nil

	case initWorkspaceDoneMsg:
		if msg.err != nil {
			m.toast = UserMessage(msg.err)
			return m, nil
		}
		m.root = msg.root
		m.cfg = msg.cfg
		m.toast = "Workspace ready at " + msg.root
		return m, cmdLoadScenarios(m.deps, m.root)

	case runnerDoneMsg:
		m.running = false
		m.runCh = nil
		m.result = msg
		m.scr = screenResult
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.menu.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.scr == screenHome {
				return m, tea.Quit
			}
			if m.scr == screenResult {
				m.scr = screenHome
				return m, nil
			}

		case "enter":
			if m.scr == screenHome {
				it, ok := m.menu.SelectedItem().(menuItem)
				if !ok {
					return m, nil
				}
				return m.activate(it)
			}

		case "esc", "b":
			if m.scr == screenResult {
				m.scr = screenHome
				return m, nil
			}
		}
	}

	if m.scr == screenHome {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) activate(it menuItem) (tea.Model, tea.Cmd) {
	m.toast = ""
	switch it.action {
	case actionQuit:
		return m, tea.Quit

	case actionInit:
		return m, cmdInitWorkspaceHere(m.deps)

	case actionDemo:
		sc := usecase.DemoScenario()
		return m.startRun("", &sc)

	case actionScenario:
		return m.startRun(it.path, nil)
	}
	return m, nil
}

func (m model) startRun(path string, sc *domain.Scenario) (tea.Model, tea.Cmd) {
	if m.running {
		return m, nil
	}
	ch, listen := startRunAsync(m.deps, m.root, m.cfg, path, sc)
	m.runCh = ch
	m.running = true
	m.scr = screenRunning
	return m, tea.Batch(listen, m.spin.Tick)
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("payflow") + "\n" +
		m.theme.Subtitle.Render("validate, charge, notify and record payments") + "\n"

	var banner string
	if m.root != "" {
		banner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s", m.root))
	} else {
		banner = m.theme.Card.Render("⚠ No workspace found.\n\nPick \"Init workspace\" to create one here.")
	}
	if m.toast != "" {
		banner += "\n" + m.theme.Toast.Render(m.toast)
	}

	switch m.scr {
	case screenHome:
		help := m.theme.Help.Render("↑/↓ navigate • enter run • / search • q quit")
		return wrap.Render(header + "\n" + banner + "\n\n" + m.theme.Card.Render(m.menu.View()) + "\n" + help)

	case screenRunning:
		return wrap.Render(header + "\n" + banner + "\n\n" + m.spin.View() + " Processing…")

	case screenResult:
		return wrap.Render(header + "\n" + banner + "\n\n" + m.resultView())

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}

func (m model) resultView() string {
	var b strings.Builder
	if m.result.err != nil {
		b.WriteString(m.theme.Error.Render("Error: " + UserMessage(m.result.err)))
		b.WriteString("\n\n")
	}
	if m.result.run.ScenarioName != "" {
		b.WriteString(renderRun(m.result.run, m.width))
		b.WriteString("\n")
		b.WriteString(m.theme.Title.Render("Notifications"))
		b.WriteString("\n")
		b.WriteString(renderNotices(m.result.notices, 10))
	}
	return m.theme.Card.Render(b.String()) + "\n" + m.theme.Help.Render("esc/b back • q home • ctrl+c quit")
}
