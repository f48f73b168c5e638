package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/cardroom/holdem/internal/client"
	"github.com/cardroom/holdem/internal/deck"
	"github.com/cardroom/holdem/internal/game"
)

// Model is the Bubble Tea model for the holdem client. All table state is
// a sanitized view pushed by the server; nothing is computed locally.
type Model struct {
	client *client.Client
	logger *log.Logger

	logViewport viewport.Model
	input       textinput.Model

	gameLog []string

	playerID string
	tableID  string
	seat     int
	view     *game.TableView
	request  *game.ActionRequest

	lastStage string

	width       int
	height      int
	initialized bool
	quitting    bool
	focusedPane int // 0 = log, 1 = input
}

// NewModel creates the client model.
func NewModel(c *client.Client, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "fold / check / call / bet 50 / raise 100 / allin, or /help"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 100
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &Model{
		client:      c,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		input:       ti,
		seat:        -1,
		focusedPane: 1,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	m.addLog(HeaderStyle.Render(" Texas Hold'em "))
	m.addLog("Type /help for commands.")
	return textinput.Blink
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.input.Focus()
			} else {
				m.focusedPane = 0
				m.input.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				line := strings.TrimSpace(m.input.Value())
				m.input.SetValue("")
				if line != "" {
					if cmd := m.handleInput(line); cmd != nil {
						return m, cmd
					}
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		}

	case AuthResponseMsg:
		if msg.Data.Success {
			m.playerID = msg.Data.PlayerID
			m.client.SetPlayerID(msg.Data.PlayerID)
			m.addLog(SuccessStyle.Render("Authenticated."))
			_ = m.client.ListTables()
		} else {
			m.addLog(ErrorStyle.Render("Auth failed: " + msg.Data.Error))
		}

	case TableListMsg:
		m.addLog(InfoStyle.Render("Tables:"))
		for _, t := range msg.Data.Tables {
			m.addLog(fmt.Sprintf("  %s  %d/%d players  blinds %d/%d  [%s]",
				t.ID, t.PlayerCount, t.MaxPlayers, t.SmallBlind, t.BigBlind, t.Stage))
		}
		if len(msg.Data.Tables) == 0 {
			m.addLog("  (none)")
		}

	case TableJoinedMsg:
		m.tableID = msg.Data.TableID
		m.seat = msg.Data.Seat
		m.client.SetTableID(msg.Data.TableID)
		v := msg.Data.View
		m.view = &v
		m.addLog(SuccessStyle.Render(fmt.Sprintf("Joined table %s at seat %d", msg.Data.TableID, msg.Data.Seat)))

	case TableLeftMsg:
		m.addLog(InfoStyle.Render("Left table " + msg.Data.TableID))
		m.tableID = ""
		m.seat = -1
		m.view = nil
		m.request = nil
		m.client.SetTableID("")

	case PlayerJoinedMsg:
		m.addLog(fmt.Sprintf("%s sat down at seat %d", msg.Data.Name, msg.Data.Seat))

	case PlayerLeftMsg:
		m.addLog(fmt.Sprintf("%s left the table", msg.Data.PlayerID))

	case TableStateMsg:
		m.applyView(msg.Data.View)

	case ActionRequestMsg:
		if msg.Data.PlayerID == m.playerID {
			req := msg.Data.ActionRequest
			m.request = &req
		}

	case ChatMsg:
		m.addLog(fmt.Sprintf("%s: %s", msg.Data.Name, msg.Data.Text))

	case ServerErrorMsg:
		m.addLog(ErrorStyle.Render(fmt.Sprintf("Error [%s]: %s", msg.Data.Code, msg.Data.Message)))
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// applyView installs a fresh server snapshot and logs the notable
// transitions it reveals.
func (m *Model) applyView(v game.TableView) {
	if v.Stage != m.lastStage {
		switch v.Stage {
		case "preflop":
			m.addLog(HandInfoStyle.Render(fmt.Sprintf("--- Hand #%d ---", v.HandNum)))
			if pv := m.mySeat(&v); pv != nil && len(pv.HoleCards) > 0 {
				m.addLog("Your cards: " + m.formatCards(pv.HoleCards))
			}
		case "flop", "turn", "river":
			m.addLog(HandInfoStyle.Render(
				fmt.Sprintf("%s: %s  (pot %d)", v.Stage, m.formatCards(v.Community), v.TotalPot)))
		case "payouts":
			for _, w := range v.Winners {
				line := fmt.Sprintf("%s wins %d (%s)", m.nameOf(&v, w.PlayerID), w.Amount, w.HandDesc)
				if len(w.BestFive) > 0 {
					line += " " + m.formatCards(w.BestFive)
				}
				m.addLog(SuccessStyle.Render(line))
			}
		}
		m.lastStage = v.Stage
	}

	if v.LastAction != nil && (m.view == nil || m.view.LastAction == nil || *m.view.LastAction != *v.LastAction) {
		la := v.LastAction
		line := fmt.Sprintf("%s %s", m.nameOf(&v, la.PlayerID), la.Action)
		if la.Amount > 0 {
			line += fmt.Sprintf(" %d", la.Amount)
		}
		m.addLog(line)
	}

	m.view = &v
	if m.seat < 0 || v.CurrentSeat != m.seat {
		m.request = nil
	}
}

// handleInput parses one line from the prompt.
func (m *Model) handleInput(line string) tea.Cmd {
	if strings.HasPrefix(line, "/") {
		return m.handleCommand(line)
	}

	fields := strings.Fields(strings.ToLower(line))
	action := fields[0]
	switch action {
	case "fold", "check", "call", "allin", "all-in":
		if action == "allin" {
			action = "all-in"
		}
		m.sendAction(action, 0)
		return nil
	case "bet", "raise":
		if len(fields) < 2 {
			m.addLog(ErrorStyle.Render("Usage: " + action + " <amount>"))
			return nil
		}
		amount, err := strconv.Atoi(fields[1])
		if err != nil || amount <= 0 {
			m.addLog(ErrorStyle.Render("Invalid amount: " + fields[1]))
			return nil
		}
		m.sendAction(action, amount)
		return nil
	}

	// Anything else is table chat.
	if m.tableID == "" {
		m.addLog(ErrorStyle.Render("Join a table first (/list, /join <id>)"))
		return nil
	}
	if err := m.client.SendChat(line); err != nil {
		m.addLog(ErrorStyle.Render("Chat failed: " + err.Error()))
	}
	return nil
}

func (m *Model) handleCommand(line string) tea.Cmd {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/help":
		m.addLog("Commands: /list, /new, /join <table_id>, /leave, /quit")
		m.addLog("Actions:  fold, check, call, bet <n>, raise <n>, allin")
		m.addLog("Anything else is sent as table chat.")
	case "/list":
		_ = m.client.ListTables()
	case "/new":
		_ = m.client.CreateTable()
	case "/join":
		if len(fields) < 2 {
			m.addLog(ErrorStyle.Render("Usage: /join <table_id>"))
			return nil
		}
		_ = m.client.JoinTable(fields[1])
	case "/leave":
		if m.tableID == "" {
			m.addLog(ErrorStyle.Render("Not at a table"))
			return nil
		}
		_ = m.client.LeaveTable(m.tableID)
	case "/quit":
		m.quitting = true
		return tea.Sequence(tea.ClearScreen, tea.Quit)
	default:
		m.addLog(ErrorStyle.Render("Unknown command: " + fields[0]))
	}
	return nil
}

func (m *Model) sendAction(action string, amount int) {
	if m.request == nil {
		m.addLog(ErrorStyle.Render("It is not your turn"))
		return
	}
	if err := m.client.SendAction(action, amount); err != nil {
		m.addLog(ErrorStyle.Render("Action failed: " + err.Error()))
		return
	}
	m.request = nil
}

// View renders the TUI.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionWidth := max(m.width-2, 1)

	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(actionWidth)
	if m.focusedPane == 1 {
		actionStyle = actionStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	actionPane := actionStyle.Render(actionContent)

	sidebarWidth := 34
	sidebarHeight := max(m.height-actionHeight-4, 1)
	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(sidebarHeight).
		Render(m.renderTablePane())

	logWidth := max(m.width-sidebarWidth-6, 1)
	logHeight := sidebarHeight
	m.logViewport.Width = logWidth
	m.logViewport.Height = logHeight
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if !m.initialized && logWidth > 1 && logHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(logHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// renderTablePane draws the seat map, community cards and pots.
func (m *Model) renderTablePane() string {
	var b strings.Builder

	if m.view == nil {
		b.WriteString(InfoStyle.Render("Not at a table."))
		b.WriteString("\n\n/list to see tables\n/join <id> to sit down")
		return b.String()
	}
	v := m.view

	b.WriteString(HeaderStyle.Render(fmt.Sprintf(" %s ", v.Stage)))
	b.WriteString("\n")
	b.WriteString(WarningStyle.Render(fmt.Sprintf("Pot: %d", v.TotalPot)))
	if v.CurrentBet > 0 {
		b.WriteString(WarningStyle.Render(fmt.Sprintf("  Bet: %d", v.CurrentBet)))
	}
	b.WriteString("\n")
	if len(v.Community) > 0 {
		b.WriteString("Board: " + m.formatCards(v.Community) + "\n")
	}
	b.WriteString("\n")

	for i, pv := range v.Seats {
		if pv == nil {
			b.WriteString(InfoStyle.Render(fmt.Sprintf("%d. (empty)", i)))
			b.WriteString("\n")
			continue
		}
		marker := " "
		switch {
		case pv.IsDealer:
			marker = "D"
		case pv.IsSmallBlind:
			marker = "s"
		case pv.IsBigBlind:
			marker = "b"
		}
		line := fmt.Sprintf("%d%s %-12s %6d", i, marker, pv.Name, pv.Chips)
		if pv.Bet > 0 {
			line += fmt.Sprintf(" (%d)", pv.Bet)
		}
		switch {
		case pv.Folded:
			line = InfoStyle.Render(line + " folded")
		case pv.AllIn:
			line = WarningStyle.Render(line + " all-in")
		case i == v.CurrentSeat:
			line = SuccessStyle.Render(line + " ←")
		}
		if pv.ID == m.playerID && len(pv.HoleCards) > 0 {
			line += "  " + m.formatCards(pv.HoleCards)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(v.Pots) > 1 {
		b.WriteString("\n")
		for i, pot := range v.Pots {
			name := "side"
			if pot.IsMain {
				name = "main"
			}
			b.WriteString(InfoStyle.Render(fmt.Sprintf("%s pot %d: %d (%d way)", name, i, pot.Amount, len(pot.Eligible))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m *Model) renderActionPane() string {
	var b strings.Builder

	if m.request != nil {
		var actions []string
		actions = append(actions, ErrorStyle.Render("[fold]"))
		if m.request.CanCheck {
			actions = append(actions, SuccessStyle.Render("[check]"))
		}
		if m.request.CanCall {
			actions = append(actions, SuccessStyle.Render(fmt.Sprintf("[call %d]", m.request.CallAmount)))
		}
		if m.request.CanBet {
			actions = append(actions, WarningStyle.Render(fmt.Sprintf("[bet %d-%d]", m.request.MinBet, m.request.MaxBet)))
		}
		if m.request.CanRaise {
			actions = append(actions, WarningStyle.Render(fmt.Sprintf("[raise %d-%d]", m.request.MinRaise, m.request.MaxBet)))
		}
		actions = append(actions, WarningStyle.Render("[allin]"))
		b.WriteString(ActionsStyle.Render("Your turn: " + strings.Join(actions, " ")))
		b.WriteString("\n")
	} else if m.tableID != "" {
		b.WriteString(HandInfoStyle.Render("Waiting..."))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.focusedPane == 0 {
		b.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll • Tab to input"))
	} else {
		b.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}
	return b.String()
}

func (m *Model) formatCards(cards []deck.Card) string {
	var formatted []string
	for _, card := range cards {
		if card.Suit == deck.Hearts || card.Suit == deck.Diamonds {
			formatted = append(formatted, RedCardStyle.Render(card.String()))
		} else {
			formatted = append(formatted, BlackCardStyle.Render(card.String()))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

func (m *Model) mySeat(v *game.TableView) *game.PlayerView {
	for _, pv := range v.Seats {
		if pv != nil && pv.ID == m.playerID {
			return pv
		}
	}
	return nil
}

func (m *Model) nameOf(v *game.TableView, playerID string) string {
	for _, pv := range v.Seats {
		if pv != nil && pv.ID == playerID {
			return pv.Name
		}
	}
	return playerID
}

func (m *Model) addLog(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}
