package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/cardroom/holdem/internal/gameid"
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	conn        *websocket.Conn
	send        chan *Message
	playerID    string
	playerName  string
	avatarURL   string
	tableID     string
	logger      *log.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	mu          sync.RWMutex
	closeOnce   sync.Once
	gameService *GameService
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, gameService *GameService) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:        conn,
		send:        make(chan *Message, 256),
		logger:      logger.WithPrefix("conn"),
		ctx:         ctx,
		cancel:      cancel,
		gameService: gameService,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, expected during shutdown.
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// SetPlayer associates this connection with an authenticated player.
func (c *Connection) SetPlayer(playerID, name, avatarURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playerID = playerID
	c.playerName = name
	c.avatarURL = avatarURL
}

// GetPlayer returns the associated player ID
func (c *Connection) GetPlayer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

// GetPlayerName returns the authenticated display name.
func (c *Connection) GetPlayerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerName
}

// GetAvatarURL returns the authenticated avatar URL.
func (c *Connection) GetAvatarURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.avatarURL
}

// SetTable associates this connection with a table
func (c *Connection) SetTable(tableID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tableID = tableID
}

// GetTable returns the associated table ID
func (c *Connection) GetTable() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tableID
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "player", c.GetPlayer())

	switch msg.Type {
	case MessageTypeAuth:
		var data AuthData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse auth data")
			return
		}
		c.handleAuth(data)

	case MessageTypeListTables:
		c.handleListTables()

	case MessageTypeCreateTable:
		var data CreateTableData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse create table data")
			return
		}
		c.handleCreateTable(data)

	case MessageTypeJoinTable:
		var data JoinTableData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse join table data")
			return
		}
		c.handleJoinTable(data)

	case MessageTypeLeaveTable:
		var data LeaveTableData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse leave table data")
			return
		}
		c.handleLeaveTable(data)

	case MessageTypeAction:
		var data ActionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse action data")
			return
		}
		c.handleAction(data)

	case MessageTypeChatSend:
		var data ChatSendData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse chat data")
			return
		}
		c.handleChat(data)

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg)
}

// requireAuth returns the player id, sending an error when the connection
// has not authenticated.
func (c *Connection) requireAuth() string {
	playerID := c.GetPlayer()
	if playerID == "" {
		c.sendError("not_authenticated", "Must authenticate first")
	}
	return playerID
}

func (c *Connection) handleAuth(data AuthData) {
	if err := validateName(data.Name); err != nil {
		response, _ := NewMessage(MessageTypeAuthResponse, AuthResponseData{
			Success: false,
			Error:   err.Error(),
		})
		_ = c.SendMessage(response)
		return
	}

	playerID := gameid.NewPlayerID()
	c.SetPlayer(playerID, data.Name, data.AvatarURL)
	c.logger.Info("Authenticated", "player", playerID, "name", data.Name)

	response, _ := NewMessage(MessageTypeAuthResponse, AuthResponseData{
		Success:  true,
		PlayerID: playerID,
	})
	_ = c.SendMessage(response)
}

func (c *Connection) handleListTables() {
	tables := c.gameService.ListTables()
	response, _ := NewMessage(MessageTypeTableList, TableListData{Tables: tables})
	_ = c.SendMessage(response)
}

func (c *Connection) handleCreateTable(data CreateTableData) {
	if c.requireAuth() == "" {
		return
	}

	tableID, err := c.gameService.CreateTable(data)
	if err != nil {
		c.sendError("create_failed", err.Error())
		return
	}

	response, _ := NewMessage(MessageTypeTableCreated, TableCreatedData{TableID: tableID})
	_ = c.SendMessage(response)
}

func (c *Connection) handleJoinTable(data JoinTableData) {
	playerID := c.requireAuth()
	if playerID == "" {
		return
	}
	if c.GetTable() != "" {
		c.sendError("already_joined", "Leave the current table first")
		return
	}

	seat, err := c.gameService.JoinTable(data.TableID, playerID, c.GetPlayerName(), c.GetAvatarURL())
	if err != nil {
		c.sendError("join_failed", err.Error())
		return
	}
	c.SetTable(data.TableID)

	table := c.gameService.GetTable(data.TableID)
	if table == nil {
		c.sendError("table_not_found", "Table not found after join")
		return
	}

	response, _ := NewMessage(MessageTypeTableJoined, TableJoinedData{
		TableID: data.TableID,
		Seat:    seat,
		View:    table.View(playerID),
	})
	_ = c.SendMessage(response)
}

func (c *Connection) handleLeaveTable(data LeaveTableData) {
	playerID := c.requireAuth()
	if playerID == "" {
		return
	}

	if err := c.gameService.LeaveTable(data.TableID, playerID); err != nil {
		c.sendError("leave_failed", err.Error())
		return
	}
	c.SetTable("")

	response, _ := NewMessage(MessageTypeTableLeft, TableLeftData{TableID: data.TableID})
	_ = c.SendMessage(response)
}

func (c *Connection) handleAction(data ActionData) {
	playerID := c.requireAuth()
	if playerID == "" {
		return
	}

	tableID := data.TableID
	if tableID == "" {
		tableID = c.GetTable()
	}

	// On success the service broadcasts the action_result to the table,
	// this connection included.
	if err := c.gameService.HandleAction(tableID, playerID, data.Action, data.Amount); err != nil {
		c.sendError("action_rejected", err.Error())
	}
}

func (c *Connection) handleChat(data ChatSendData) {
	playerID := c.requireAuth()
	if playerID == "" {
		return
	}

	tableID := data.TableID
	if tableID == "" {
		tableID = c.GetTable()
	}

	if err := c.gameService.Chat(tableID, playerID, c.GetPlayerName(), data.Text); err != nil {
		c.sendError("chat_rejected", err.Error())
	}
}
