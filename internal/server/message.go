package server

import (
	"encoding/json"
	"time"

	"github.com/cardroom/holdem/internal/deck"
	"github.com/cardroom/holdem/internal/game"
)

// Message is the base WebSocket message envelope. Every frame in either
// direction is one of these; Data carries the type-specific payload.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type AuthData struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type CreateTableData struct {
	SmallBlind int `json:"smallBlind,omitempty"`
	BigBlind   int `json:"bigBlind,omitempty"`
	MaxPlayers int `json:"maxPlayers,omitempty"`
}

type JoinTableData struct {
	TableID string `json:"tableId"`
}

type LeaveTableData struct {
	TableID string `json:"tableId"`
}

type ActionData struct {
	TableID string `json:"tableId"`
	Action  string `json:"action"`
	Amount  int    `json:"amount,omitempty"`
}

type ChatSendData struct {
	TableID string `json:"tableId"`
	Text    string `json:"text"`
}

// Server → Client Messages

type AuthResponseData struct {
	Success  bool   `json:"success"`
	PlayerID string `json:"playerId,omitempty"`
	Error    string `json:"error,omitempty"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type TableInfo struct {
	ID          string `json:"id"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
	SmallBlind  int    `json:"smallBlind"`
	BigBlind    int    `json:"bigBlind"`
	Stage       string `json:"stage"`
}

type TableListData struct {
	Tables []TableInfo `json:"tables"`
}

type TableCreatedData struct {
	TableID string `json:"tableId"`
}

type TableJoinedData struct {
	TableID string         `json:"tableId"`
	Seat    int            `json:"seat"`
	View    game.TableView `json:"view"`
}

type TableLeftData struct {
	TableID string `json:"tableId"`
}

// TableStateData wraps a sanitized view; every recipient gets their own
// projection.
type TableStateData struct {
	View game.TableView `json:"view"`
}

// HandStageData announces a stage transition to the whole table.
type HandStageData struct {
	TableID   string      `json:"tableId"`
	Stage     string      `json:"stage"`
	Community []deck.Card `json:"communityCards"`
}

// HandShowdownData carries the payout lines once a hand is decided.
type HandShowdownData struct {
	TableID   string            `json:"tableId"`
	Winners   []game.WinnerView `json:"winners"`
	Community []deck.Card       `json:"communityCards"`
}

type PotUpdateData struct {
	TableID  string     `json:"tableId"`
	Pots     []game.Pot `json:"pots"`
	TotalPot int        `json:"totalPot"`
}

// ActionRequestData is sent only to the player whose turn it is.
type ActionRequestData struct {
	TableID string `json:"tableId"`
	game.ActionRequest
}

// ActionResultData is broadcast to the whole table after an action is
// applied.
type ActionResultData struct {
	TableID  string `json:"tableId"`
	PlayerID string `json:"playerId"`
	Action   string `json:"action"`
	Amount   int    `json:"amount,omitempty"`
}

type PlayerJoinedData struct {
	TableID  string `json:"tableId"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Seat     int    `json:"seat"`
}

type PlayerLeftData struct {
	TableID  string `json:"tableId"`
	PlayerID string `json:"playerId"`
}

type ChatNewData struct {
	TableID  string    `json:"tableId"`
	PlayerID string    `json:"playerId"`
	Name     string    `json:"name"`
	Text     string    `json:"text"`
	At       time.Time `json:"at"`
}
