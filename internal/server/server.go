package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/cardroom/holdem/internal/game"
)

// Server accepts WebSocket clients and routes table traffic to them.
type Server struct {
	addr          string
	allowedOrigin string
	upgrader      websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	httpServer  *http.Server
	gameService *GameService
}

// NewServer creates a new WebSocket server
func NewServer(addr string, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		addr:        addr,
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(s.allowedOrigin, r.Header.Get("Origin"))
		},
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	return s
}

// SetAllowedOrigin restricts upgrades to browsers served from the given
// origin. Must be called before Start.
func (s *Server) SetAllowedOrigin(origin string) {
	s.allowedOrigin = origin
}

// originAllowed is the upgrade origin policy: an empty setting admits any
// origin, anything else must match exactly. Requests without an Origin
// header come from non-browser clients and always pass.
func originAllowed(allowed, origin string) bool {
	if allowed == "" || origin == "" {
		return true
	}
	return origin == allowed
}

// SetGameService sets the game service for the server
func (s *Server) SetGameService(gameService *GameService) {
	s.gameService = gameService
}

// Start serves WebSocket and health endpoints until Stop is called.
func (s *Server) Start() error {
	go s.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpServer = &http.Server{Addr: s.addr, Handler: mux}

	s.logger.Info("Starting WebSocket server", "addr", s.addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the HTTP listener down and closes every client connection.
func (s *Server) Stop() error {
	s.cancel()

	var err error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = s.httpServer.Shutdown(ctx)
	}

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	return err
}

// run handles connection lifecycle
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.connections[conn]; ok {
				delete(s.connections, conn)

				// A dropped connection leaves its table like any
				// other departure.
				playerID := conn.GetPlayer()
				tableID := conn.GetTable()
				if playerID != "" && tableID != "" && s.gameService != nil {
					s.logger.Info("Cleaning up disconnected player", "player", playerID, "table", tableID)
					_ = s.gameService.LeaveTable(tableID, playerID)
				}

				_ = conn.Close()
			}
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.logger, s.gameService)
	s.register <- client
	client.Start()

	go func() {
		<-client.ctx.Done()
		s.unregister <- client
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// BroadcastToTable sends a message to all connections at a specific table
func (s *Server) BroadcastToTable(tableID string, msg *Message) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for conn := range s.connections {
		if conn.GetTable() == tableID {
			if err := conn.SendMessage(msg); err != nil {
				s.logger.Error("Failed to send message to client", "error", err, "player", conn.GetPlayer())
			} else {
				count++
			}
		}
	}

	s.logger.Debug("Broadcasted message to table", "tableId", tableID, "type", msg.Type, "recipients", count)
}

// BroadcastTableState fans a table snapshot out to every connection at the
// table. Each recipient gets the view sanitized for them: hole cards other
// than their own never leave the server.
func (s *Server) BroadcastTableState(tableID string, view game.TableView) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for conn := range s.connections {
		if conn.GetTable() != tableID {
			continue
		}
		msg, err := NewMessage(MessageTypeTableState, TableStateData{
			View: game.Sanitize(view, conn.GetPlayer()),
		})
		if err != nil {
			s.logger.Error("Failed to encode table state", "error", err)
			return
		}
		if err := conn.SendMessage(msg); err != nil {
			s.logger.Error("Failed to send table state", "error", err, "player", conn.GetPlayer())
		}
	}
}

// SendToPlayer sends a message to a specific player
func (s *Server) SendToPlayer(playerID string, msg *Message) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for conn := range s.connections {
		if conn.GetPlayer() == playerID {
			return conn.SendMessage(msg)
		}
	}

	return fmt.Errorf("player not found: %s", playerID)
}

// GetConnectedPlayers returns a list of connected player IDs
func (s *Server) GetConnectedPlayers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var players []string
	for conn := range s.connections {
		if playerID := conn.GetPlayer(); playerID != "" {
			players = append(players, playerID)
		}
	}

	return players
}

// GetTablePlayers returns a list of player IDs connected to a specific table
func (s *Server) GetTablePlayers(tableID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var players []string
	for conn := range s.connections {
		if conn.GetTable() == tableID && conn.GetPlayer() != "" {
			players = append(players, conn.GetPlayer())
		}
	}

	return players
}
