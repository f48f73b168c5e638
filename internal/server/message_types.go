package server

// MessageType identifies a WebSocket message on the wire.
type MessageType string

const (
	// Client to server messages
	MessageTypeAuth        MessageType = "auth"
	MessageTypeListTables  MessageType = "list_tables"
	MessageTypeCreateTable MessageType = "create_table"
	MessageTypeJoinTable   MessageType = "join_table"
	MessageTypeLeaveTable  MessageType = "leave_table"
	MessageTypeAction      MessageType = "action"
	MessageTypeChatSend    MessageType = "chat_send"

	// Server to client messages
	MessageTypeAuthResponse  MessageType = "auth_response"
	MessageTypeError         MessageType = "error"
	MessageTypeTableList     MessageType = "table_list"
	MessageTypeTableCreated  MessageType = "table_created"
	MessageTypeTableJoined   MessageType = "table_joined"
	MessageTypeTableLeft     MessageType = "table_left"
	MessageTypeTableState    MessageType = "table_state"
	MessageTypeHandStage     MessageType = "hand_stage"
	MessageTypeHandShowdown  MessageType = "hand_showdown"
	MessageTypePotUpdate     MessageType = "pot_update"
	MessageTypeActionRequest MessageType = "action_request"
	MessageTypeActionResult  MessageType = "action_result"
	MessageTypePlayerJoined  MessageType = "player_joined"
	MessageTypePlayerLeft    MessageType = "player_left"
	MessageTypeChatNew       MessageType = "chat_new"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
