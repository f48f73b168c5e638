package tui

import (
	"encoding/json"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/cardroom/holdem/internal/client"
	"github.com/cardroom/holdem/internal/server"
)

// Bubble Tea messages delivered from the network goroutines. Everything
// crosses into the program through tea.Program.Send, so the model is only
// ever touched from the Update loop.

type AuthResponseMsg struct{ Data server.AuthResponseData }

type TableStateMsg struct{ Data server.TableStateData }

type ActionRequestMsg struct{ Data server.ActionRequestData }

type TableListMsg struct{ Data server.TableListData }

type TableJoinedMsg struct{ Data server.TableJoinedData }

type TableLeftMsg struct{ Data server.TableLeftData }

type PlayerJoinedMsg struct{ Data server.PlayerJoinedData }

type PlayerLeftMsg struct{ Data server.PlayerLeftData }

type ChatMsg struct{ Data server.ChatNewData }

type ServerErrorMsg struct{ Data server.ErrorData }

// Bind registers network handlers that forward server messages into the
// running program. Call it before the client receives anything.
func Bind(c *client.Client, p *tea.Program, logger *log.Logger) {
	forward := func(mt server.MessageType, make func(json.RawMessage) (tea.Msg, error)) {
		c.AddEventHandler(mt, func(msg *server.Message) {
			m, err := make(msg.Data)
			if err != nil {
				logger.Error("Failed to decode message", "type", mt, "error", err)
				return
			}
			p.Send(m)
		})
	}

	forward(server.MessageTypeAuthResponse, func(raw json.RawMessage) (tea.Msg, error) {
		var data server.AuthResponseData
		err := json.Unmarshal(raw, &data)
		return AuthResponseMsg{data}, err
	})
	forward(server.MessageTypeTableState, func(raw json.RawMessage) (tea.Msg, error) {
		var data server.TableStateData
		err := json.Unmarshal(raw, &data)
		return TableStateMsg{data}, err
	})
	forward(server.MessageTypeActionRequest, func(raw json.RawMessage) (tea.Msg, error) {
		var data server.ActionRequestData
		err := json.Unmarshal(raw, &data)
		return ActionRequestMsg{data}, err
	})
	forward(server.MessageTypeTableList, func(raw json.RawMessage) (tea.Msg, error) {
		var data server.TableListData
		err := json.Unmarshal(raw, &data)
		return TableListMsg{data}, err
	})
	forward(server.MessageTypeTableJoined, func(raw json.RawMessage) (tea.Msg, error) {
		var data server.TableJoinedData
		err := json.Unmarshal(raw, &data)
		return TableJoinedMsg{data}, err
	})
	forward(server.MessageTypeTableLeft, func(raw json.RawMessage) (tea.Msg, error) {
		var data server.TableLeftData
		err := json.Unmarshal(raw, &data)
		return TableLeftMsg{data}, err
	})
	forward(server.MessageTypePlayerJoined, func(raw json.RawMessage) (tea.Msg, error) {
		var data server.PlayerJoinedData
		err := json.Unmarshal(raw, &data)
		return PlayerJoinedMsg{data}, err
	})
	forward(server.MessageTypePlayerLeft, func(raw json.RawMessage) (tea.Msg, error) {
		var data server.PlayerLeftData
		err := json.Unmarshal(raw, &data)
		return PlayerLeftMsg{data}, err
	})
	forward(server.MessageTypeChatNew, func(raw json.RawMessage) (tea.Msg, error) {
		var data server.ChatNewData
		err := json.Unmarshal(raw, &data)
		return ChatMsg{data}, err
	})
	forward(server.MessageTypeError, func(raw json.RawMessage) (tea.Msg, error) {
		var data server.ErrorData
		err := json.Unmarshal(raw, &data)
		return ServerErrorMsg{data}, err
	})
}
