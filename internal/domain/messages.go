package domain

// client -> server message types
const (
	MsgInit         = "init"
	MsgSelectColumn = "select_column"
	MsgStart        = "start"
	MsgRestart      = "restart"
)

// server -> client message types
const (
	MsgSession        = "session"
	MsgPiecePlaced    = "piece_placed"
	MsgTurnChanged    = "turn_changed"
	MsgGameOver       = "game_over"
	MsgConfigRejected = "config_rejected"
	MsgRestarted      = "restarted"
	MsgError          = "error"
)

type ClientMessage struct {
	Type   string `json:"type"`
	Token  string `json:"token,omitempty"`
	Column int    `json:"column"`
	Color1 string `json:"color1,omitempty"`
	Color2 string `json:"color2,omitempty"`
}

type ServerMessage struct {
	Type      string    `json:"type"`
	Message   string    `json:"message,omitempty"`
	SessionID string    `json:"sessionId,omitempty"`
	Token     string    `json:"token,omitempty"`
	State     *Snapshot `json:"state,omitempty"`
	Row       *int      `json:"row,omitempty"`
	Column    *int      `json:"column,omitempty"`
	Player    PlayerID  `json:"player,omitempty"`
	Color     string    `json:"color,omitempty"`
	Result    Result    `json:"result,omitempty"`
	Winner    PlayerID  `json:"winner,omitempty"`
	Line      []Cell    `json:"line,omitempty"`
}
