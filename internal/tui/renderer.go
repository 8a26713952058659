package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/domain"
)

const (
	boardTop  = 2
	boardLeft = 1
	cellWidth = 3
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the board, the status line and the key help.
func (r *Renderer) Render(v *view) {
	r.screen.Clear()

	title := tcell.StyleDefault.Bold(true)
	r.screen.DrawText(boardLeft, 0, "Connect Four", title)

	if v.phase == domain.PhaseActive {
		r.screen.SetContent(boardLeft+v.cursor*cellWidth+1, boardTop-1, 'v', tcell.StyleDefault)
	}

	frame := tcell.StyleDefault.Background(tcell.ColorNavy)
	for row := 0; row < v.rows; row++ {
		y := boardTop + row
		for col := 0; col < v.columns; col++ {
			x := boardLeft + col*cellWidth
			ch, style := r.disk(v, row, col)
			r.screen.SetContent(x, y, ' ', frame)
			r.screen.SetContent(x+1, y, ch, style)
			r.screen.SetContent(x+2, y, ' ', frame)
		}
	}

	labels := boardTop + v.rows
	for col := 0; col < v.columns; col++ {
		r.screen.DrawText(boardLeft+col*cellWidth+1, labels, fmt.Sprint(col+1), tcell.StyleDefault)
	}

	r.screen.DrawText(boardLeft, labels+2, v.status, tcell.StyleDefault)
	if p := v.prompt; p != nil {
		text := fmt.Sprintf("Player %d colour: %s", p.player, string(p.input))
		r.screen.DrawText(boardLeft, labels+3, text, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}
	r.screen.DrawText(boardLeft, labels+5, "1-9 or arrows+enter: drop  s: start  r: restart  q: quit", tcell.StyleDefault.Dim(true))

	r.screen.Show()
}

// disk picks the rune and style for one board cell. Colours tcell cannot
// name are drawn as the player number instead.
func (r *Renderer) disk(v *view, row, col int) (rune, tcell.Style) {
	style := tcell.StyleDefault.Background(tcell.ColorNavy)
	owner := v.cells[row][col]
	if owner == domain.Empty {
		return '.', style.Foreground(tcell.ColorGray)
	}

	if v.onLine(row, col) {
		style = style.Bold(true).Reverse(true)
	}

	color := tcell.GetColor(v.colors[owner])
	if color == tcell.ColorDefault {
		return rune('0' + int(owner)), style.Foreground(tcell.ColorWhite)
	}
	return '●', style.Foreground(color)
}
