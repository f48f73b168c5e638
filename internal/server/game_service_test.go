package server

import (
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/holdem/internal/game"
	"github.com/cardroom/holdem/internal/gameid"
)

func newTestService(t *testing.T) *GameService {
	t.Helper()
	return NewGameService(DefaultServerConfig(), quartz.NewMock(t), log.New(io.Discard))
}

func TestCreateTableDefaults(t *testing.T) {
	gs := newTestService(t)

	id, err := gs.CreateTable(CreateTableData{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "tbl_"))
	require.NoError(t, gameid.Validate(id, "tbl"))

	table := gs.GetTable(id)
	require.NotNil(t, table)
	assert.Equal(t, 5, table.Config().MaxPlayers)
	assert.Equal(t, 5, table.Config().SmallBlind)
	assert.Equal(t, 10, table.Config().BigBlind)
}

func TestCreateTableOverridesAndValidation(t *testing.T) {
	gs := newTestService(t)

	id, err := gs.CreateTable(CreateTableData{SmallBlind: 50, BigBlind: 100, MaxPlayers: 3})
	require.NoError(t, err)
	cfg := gs.GetTable(id).Config()
	assert.Equal(t, 50, cfg.SmallBlind)
	assert.Equal(t, 100, cfg.BigBlind)
	assert.Equal(t, 3, cfg.MaxPlayers)

	_, err = gs.CreateTable(CreateTableData{SmallBlind: 100, BigBlind: 50})
	assert.Error(t, err)

	_, err = gs.CreateTable(CreateTableData{MaxPlayers: 1})
	assert.Error(t, err)
}

func TestJoinAndLeaveTable(t *testing.T) {
	gs := newTestService(t)
	id, err := gs.CreateTable(CreateTableData{})
	require.NoError(t, err)

	seat, err := gs.JoinTable(id, "ply_1", "Alice", "")
	require.NoError(t, err)
	assert.Equal(t, 0, seat)

	seat, err = gs.JoinTable(id, "ply_2", "Bob", "")
	require.NoError(t, err)
	assert.Equal(t, 1, seat)

	_, err = gs.JoinTable("tbl_missing", "ply_3", "Carol", "")
	assert.Error(t, err)

	require.NoError(t, gs.LeaveTable(id, "ply_1"))
	assert.Error(t, gs.LeaveTable(id, "ply_1"))
}

func TestListTables(t *testing.T) {
	gs := newTestService(t)
	id, err := gs.CreateTable(CreateTableData{})
	require.NoError(t, err)
	_, err = gs.JoinTable(id, "ply_1", "Alice", "")
	require.NoError(t, err)

	infos := gs.ListTables()
	require.Len(t, infos, 1)
	assert.Equal(t, id, infos[0].ID)
	assert.Equal(t, 1, infos[0].PlayerCount)
	assert.Equal(t, 5, infos[0].MaxPlayers)
}

func TestHandleActionValidation(t *testing.T) {
	gs := newTestService(t)
	id, err := gs.CreateTable(CreateTableData{})
	require.NoError(t, err)
	_, err = gs.JoinTable(id, "ply_1", "Alice", "")
	require.NoError(t, err)

	assert.Error(t, gs.HandleAction(id, "ply_1", "teleport", 0))
	assert.Error(t, gs.HandleAction(id, "ply_1", "bet", 0))
	assert.Error(t, gs.HandleAction(id, "ply_1", "raise", maxActionAmount+1))
	assert.Error(t, gs.HandleAction("tbl_missing", "ply_1", "fold", 0))

	// Well-formed but no hand running yet.
	assert.Error(t, gs.HandleAction(id, "ply_1", "fold", 0))
}

func TestChatValidation(t *testing.T) {
	gs := newTestService(t)
	id, err := gs.CreateTable(CreateTableData{})
	require.NoError(t, err)

	assert.NoError(t, gs.Chat(id, "ply_1", "Alice", "hello"))
	assert.Error(t, gs.Chat(id, "ply_1", "Alice", "   "))
	assert.Error(t, gs.Chat("tbl_missing", "ply_1", "Alice", "hello"))
}

func TestReapKeepsLastTable(t *testing.T) {
	gs := newTestService(t)

	first, err := gs.CreateTable(CreateTableData{})
	require.NoError(t, err)
	second, err := gs.CreateTable(CreateTableData{})
	require.NoError(t, err)
	_, err = gs.JoinTable(second, "ply_1", "Alice", "")
	require.NoError(t, err)

	gs.reapEmptyTables()

	assert.Nil(t, gs.GetTable(first), "empty table should be reaped")
	assert.NotNil(t, gs.GetTable(second), "occupied table must survive")

	// The sole remaining table is never reaped, occupied or not.
	require.NoError(t, gs.LeaveTable(second, "ply_1"))
	gs.reapEmptyTables()
	assert.NotNil(t, gs.GetTable(second))
}

func TestJoinAfterReapFails(t *testing.T) {
	gs := newTestService(t)

	empty, err := gs.CreateTable(CreateTableData{})
	require.NoError(t, err)
	kept, err := gs.CreateTable(CreateTableData{})
	require.NoError(t, err)
	_, err = gs.JoinTable(kept, "ply_1", "Alice", "")
	require.NoError(t, err)

	gs.reapEmptyTables()
	require.Nil(t, gs.GetTable(empty))

	// Lookup and seat share the registry lock; a reaped table can never
	// seat anyone.
	_, err = gs.JoinTable(empty, "ply_2", "Bob", "")
	assert.Error(t, err)
}

func TestStateEventsDerivedFromSnapshots(t *testing.T) {
	gs := newTestService(t)

	types := func(msgs []*Message) []MessageType {
		out := make([]MessageType, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, m.Type)
		}
		return out
	}

	v := game.TableView{TableID: "tbl_x", Stage: "preflop", TotalPot: 15}
	assert.Equal(t, []MessageType{MessageTypeHandStage, MessageTypePotUpdate},
		types(gs.stateEvents("tbl_x", v)))

	// An unchanged snapshot implies nothing.
	assert.Empty(t, gs.stateEvents("tbl_x", v))

	v.Stage = "flop"
	assert.Equal(t, []MessageType{MessageTypeHandStage},
		types(gs.stateEvents("tbl_x", v)))

	v.TotalPot = 55
	assert.Equal(t, []MessageType{MessageTypePotUpdate},
		types(gs.stateEvents("tbl_x", v)))

	v.Stage = "payouts"
	v.TotalPot = 0
	v.Winners = []game.WinnerView{{PlayerID: "ply_1", Amount: 55, HandDesc: "Flush"}}
	msgs := gs.stateEvents("tbl_x", v)
	require.Equal(t, []MessageType{MessageTypeHandStage, MessageTypeHandShowdown, MessageTypePotUpdate},
		types(msgs))

	var showdown HandShowdownData
	require.NoError(t, json.Unmarshal(msgs[1].Data, &showdown))
	require.Len(t, showdown.Winners, 1)
	assert.Equal(t, "ply_1", showdown.Winners[0].PlayerID)
	assert.Equal(t, 55, showdown.Winners[0].Amount)

	// The result is announced once, not on every payouts-stage snapshot.
	assert.Empty(t, gs.stateEvents("tbl_x", v))
}

func TestMessageEnvelope(t *testing.T) {
	msg, err := NewMessage(MessageTypeChatNew, ChatNewData{Text: "hi"})
	require.NoError(t, err)

	assert.Equal(t, MessageTypeChatNew, msg.Type)
	assert.False(t, msg.Timestamp.IsZero())

	var data ChatNewData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, "hi", data.Text)
}
