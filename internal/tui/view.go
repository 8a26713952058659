package tui

import (
	"fmt"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/domain"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/service/game"
)

// colorPrompt collects the two colours before a round starts
type colorPrompt struct {
	player domain.PlayerID
	input  []rune
	colors [2]string
}

// view is what the terminal shows. It only changes on the event loop.
type view struct {
	rows    int
	columns int
	cells   [][]domain.PlayerID
	colors  map[domain.PlayerID]string
	phase   domain.Phase
	current domain.PlayerID
	line    []domain.Cell
	status  string
	cursor  int
	prompt  *colorPrompt
}

func newView(state domain.Snapshot) *view {
	v := &view{}
	v.load(state)
	return v
}

func (v *view) load(state domain.Snapshot) {
	v.rows = state.Rows
	v.columns = state.Columns
	v.cells = state.Cells
	v.phase = state.Phase
	v.current = state.CurrentPlayer
	v.line = nil
	v.prompt = nil
	v.colors = make(map[domain.PlayerID]string, len(state.Players))
	for _, p := range state.Players {
		v.colors[p.ID] = p.Color
	}
	if v.cursor >= v.columns {
		v.cursor = v.columns - 1
	}

	switch state.Phase {
	case domain.PhaseUnconfigured:
		v.status = "Press s to choose colours and start."
	case domain.PhaseActive:
		v.status = turnStatus(domain.Player{ID: state.CurrentPlayer, Color: v.colors[state.CurrentPlayer]})
	default:
		v.status = "Round over. Press r to restart."
	}
}

func (v *view) piecePlaced(move domain.Move, player domain.Player) {
	v.cells[move.Row][move.Column] = move.Player
	v.colors[player.ID] = player.Color
}

func (v *view) turnChanged(player domain.Player) {
	v.phase = domain.PhaseActive
	v.current = player.ID
	v.colors[player.ID] = player.Color
	v.status = turnStatus(player)
}

func (v *view) gameEnded(outcome domain.Outcome, winner domain.Player) {
	v.phase = domain.PhaseEnded
	v.line = outcome.Line
	v.status = game.EndMessage(outcome, winner) + " Press r to restart."
}

func (v *view) rejected(reason string) {
	v.status = reason
}

func (v *view) moveCursor(delta int) {
	v.cursor += delta
	if v.cursor < 0 {
		v.cursor = 0
	}
	if v.cursor >= v.columns {
		v.cursor = v.columns - 1
	}
}

func (v *view) onLine(row, column int) bool {
	for _, c := range v.line {
		if c.Row == row && c.Column == column {
			return true
		}
	}
	return false
}

func turnStatus(player domain.Player) string {
	return fmt.Sprintf("Player %d (%s) to move.", player.ID, player.Color)
}
