package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardroom/holdem/internal/game"
	"github.com/cardroom/holdem/internal/gameid"
)

// GameService owns the table registry. It wires each table's callbacks to
// the server's connections and reaps tables that sit empty.
type GameService struct {
	mu     sync.RWMutex
	tables map[string]*game.Table

	// Last broadcast stage and pot per table, for deriving the stage,
	// showdown, and pot events out of consecutive snapshots.
	trackMu   sync.Mutex
	lastStage map[string]string
	lastPot   map[string]int

	cfg    *ServerConfig
	clock  quartz.Clock
	logger *log.Logger
	server *Server
}

// NewGameService creates a service with no tables; Start seeds the default
// one.
func NewGameService(cfg *ServerConfig, clock quartz.Clock, logger *log.Logger) *GameService {
	return &GameService{
		tables:    make(map[string]*game.Table),
		lastStage: make(map[string]string),
		lastPot:   make(map[string]int),
		cfg:       cfg,
		clock:     clock,
		logger:    logger.WithPrefix("service"),
	}
}

// SetServer binds the connection registry used for outbound messages.
func (gs *GameService) SetServer(s *Server) {
	gs.server = s
}

// Start seeds the default table and runs the empty-table reaper until the
// context is cancelled.
func (gs *GameService) Start(ctx context.Context) {
	if _, err := gs.CreateTable(CreateTableData{}); err != nil {
		gs.logger.Error("failed to create default table", "error", err)
	}

	ticker := gs.clock.NewTicker(gs.cfg.ReapInterval(), "reaper")
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			gs.closeAll()
			return
		case <-ticker.C:
			gs.reapEmptyTables()
		}
	}
}

// CreateTable registers a new table. Zero fields in the request fall back
// to the configured game settings.
func (gs *GameService) CreateTable(req CreateTableData) (string, error) {
	cfg := gs.cfg.TableConfig()
	if req.MaxPlayers > 0 {
		cfg.MaxPlayers = req.MaxPlayers
	}
	if req.SmallBlind > 0 {
		cfg.SmallBlind = req.SmallBlind
	}
	if req.BigBlind > 0 {
		cfg.BigBlind = req.BigBlind
	}
	if cfg.MaxPlayers < 2 || cfg.MaxPlayers > 10 {
		return "", fmt.Errorf("max players must be between 2 and 10")
	}
	if cfg.SmallBlind <= 0 || cfg.BigBlind <= cfg.SmallBlind {
		return "", fmt.Errorf("blinds must satisfy 0 < small < big")
	}

	id := gameid.NewTableID()
	table := game.NewTable(id, cfg, gs.clock, gs.logger, game.WithCallbacks(game.Callbacks{
		OnStateChange:   func(v game.TableView) { gs.broadcastState(id, v) },
		OnActionRequest: func(req game.ActionRequest) { gs.sendActionRequest(id, req) },
	}))

	gs.mu.Lock()
	gs.tables[id] = table
	gs.mu.Unlock()

	gs.logger.Info("table created", "table", id,
		"blinds", fmt.Sprintf("%d/%d", cfg.SmallBlind, cfg.BigBlind),
		"maxPlayers", cfg.MaxPlayers)
	return id, nil
}

// GetTable returns the table with the given id, or nil.
func (gs *GameService) GetTable(tableID string) *game.Table {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.tables[tableID]
}

// ListTables returns a summary of every registered table.
func (gs *GameService) ListTables() []TableInfo {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	infos := make([]TableInfo, 0, len(gs.tables))
	for id, t := range gs.tables {
		cfg := t.Config()
		infos = append(infos, TableInfo{
			ID:          id,
			PlayerCount: t.PlayerCount(),
			MaxPlayers:  cfg.MaxPlayers,
			SmallBlind:  cfg.SmallBlind,
			BigBlind:    cfg.BigBlind,
			Stage:       t.Stage().String(),
		})
	}
	return infos
}

// JoinTable seats the player and announces them to the table. Lookup and
// seat happen under the registry lock so the reaper cannot drop the table
// in between.
func (gs *GameService) JoinTable(tableID, playerID, name, avatarURL string) (int, error) {
	gs.mu.RLock()
	table := gs.tables[tableID]
	var seat int
	var err error
	if table != nil {
		seat, err = table.AddPlayer(playerID, name, avatarURL)
	}
	gs.mu.RUnlock()

	if table == nil {
		return -1, fmt.Errorf("table not found: %s", tableID)
	}
	if err != nil {
		return -1, err
	}

	if msg, err := NewMessage(MessageTypePlayerJoined, PlayerJoinedData{
		TableID:  tableID,
		PlayerID: playerID,
		Name:     name,
		Seat:     seat,
	}); err == nil && gs.server != nil {
		gs.server.BroadcastToTable(tableID, msg)
	}
	return seat, nil
}

// LeaveTable removes the player from the table; mid-hand this has fold
// semantics for their committed chips.
func (gs *GameService) LeaveTable(tableID, playerID string) error {
	table := gs.GetTable(tableID)
	if table == nil {
		return fmt.Errorf("table not found: %s", tableID)
	}
	if err := table.RemovePlayer(playerID); err != nil {
		return err
	}

	if msg, err := NewMessage(MessageTypePlayerLeft, PlayerLeftData{
		TableID:  tableID,
		PlayerID: playerID,
	}); err == nil && gs.server != nil {
		gs.server.BroadcastToTable(tableID, msg)
	}
	return nil
}

// HandleAction parses and forwards a betting action to the table.
func (gs *GameService) HandleAction(tableID, playerID string, action string, amount int) error {
	table := gs.GetTable(tableID)
	if table == nil {
		return fmt.Errorf("table not found: %s", tableID)
	}

	at, err := game.ParseActionType(action)
	if err != nil {
		return err
	}
	if at == game.ActionBet || at == game.ActionRaise {
		if err := validateAmount(amount); err != nil {
			return err
		}
	}
	if err := table.HandleAction(playerID, at, amount); err != nil {
		return err
	}

	// The whole room learns what was played, not just the actor.
	if msg, err := NewMessage(MessageTypeActionResult, ActionResultData{
		TableID:  tableID,
		PlayerID: playerID,
		Action:   action,
		Amount:   amount,
	}); err == nil && gs.server != nil {
		gs.server.BroadcastToTable(tableID, msg)
	}
	return nil
}

// Chat relays a chat line to everyone at the table. The sender must be
// seated there.
func (gs *GameService) Chat(tableID, playerID, name, text string) error {
	table := gs.GetTable(tableID)
	if table == nil {
		return fmt.Errorf("table not found: %s", tableID)
	}

	text, err := validateChat(text)
	if err != nil {
		return err
	}

	msg, err := NewMessage(MessageTypeChatNew, ChatNewData{
		TableID:  tableID,
		PlayerID: playerID,
		Name:     name,
		Text:     text,
		At:       gs.clock.Now(),
	})
	if err != nil {
		return err
	}
	if gs.server != nil {
		gs.server.BroadcastToTable(tableID, msg)
	}
	return nil
}

// broadcastState fans one table snapshot out to every connection at the
// table, sanitized per observer, preceded by the room-wide events the
// snapshot implies. Invoked synchronously from inside the table; it must
// not call back into it, and it doesn't: Sanitize is a pure function and
// sends only enqueue.
func (gs *GameService) broadcastState(tableID string, view game.TableView) {
	events := gs.stateEvents(tableID, view)
	if gs.server == nil {
		return
	}
	for _, msg := range events {
		gs.server.BroadcastToTable(tableID, msg)
	}
	gs.server.BroadcastTableState(tableID, view)
}

// stateEvents derives the broadcasts implied by a snapshot against the
// previous one for the same table: a stage transition, the showdown result
// when winners first appear, and a pot change.
func (gs *GameService) stateEvents(tableID string, view game.TableView) []*Message {
	gs.trackMu.Lock()
	prevStage := gs.lastStage[tableID]
	prevPot := gs.lastPot[tableID]
	gs.lastStage[tableID] = view.Stage
	gs.lastPot[tableID] = view.TotalPot
	gs.trackMu.Unlock()

	var msgs []*Message
	if view.Stage != prevStage {
		if msg, err := NewMessage(MessageTypeHandStage, HandStageData{
			TableID:   tableID,
			Stage:     view.Stage,
			Community: view.Community,
		}); err == nil {
			msgs = append(msgs, msg)
		}
		if len(view.Winners) > 0 {
			if msg, err := NewMessage(MessageTypeHandShowdown, HandShowdownData{
				TableID:   tableID,
				Winners:   view.Winners,
				Community: view.Community,
			}); err == nil {
				msgs = append(msgs, msg)
			}
		}
	}
	if view.TotalPot != prevPot {
		if msg, err := NewMessage(MessageTypePotUpdate, PotUpdateData{
			TableID:  tableID,
			Pots:     view.Pots,
			TotalPot: view.TotalPot,
		}); err == nil {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

func (gs *GameService) forgetTable(tableID string) {
	gs.trackMu.Lock()
	delete(gs.lastStage, tableID)
	delete(gs.lastPot, tableID)
	gs.trackMu.Unlock()
}

func (gs *GameService) sendActionRequest(tableID string, req game.ActionRequest) {
	if gs.server == nil {
		return
	}
	msg, err := NewMessage(MessageTypeActionRequest, ActionRequestData{
		TableID:       tableID,
		ActionRequest: req,
	})
	if err != nil {
		gs.logger.Error("failed to encode action request", "error", err)
		return
	}
	if err := gs.server.SendToPlayer(req.PlayerID, msg); err != nil {
		gs.logger.Debug("action request undeliverable", "player", req.PlayerID, "error", err)
	}
}

// reapEmptyTables drops tables with no seated players. The last table is
// kept so there is always somewhere to join.
func (gs *GameService) reapEmptyTables() {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	for id, t := range gs.tables {
		if len(gs.tables) == 1 {
			break
		}
		if t.Empty() {
			t.Close()
			delete(gs.tables, id)
			gs.forgetTable(id)
			gs.logger.Info("reaped empty table", "table", id)
		}
	}
}

func (gs *GameService) closeAll() {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	for id, t := range gs.tables {
		t.Close()
		delete(gs.tables, id)
		gs.forgetTable(id)
	}
}
