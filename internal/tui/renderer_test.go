package tui

import (
	"context"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func contentAt(app *App, x, y int) (rune, tcell.Style) {
	ch, _, style, _ := app.screen.screen.GetContent(x, y)
	return ch, style
}

func TestRenderDrawsDisks(t *testing.T) {
	app := newTestApp(t)
	start(t, app, "red", "not-a-colour")
	app.handleEvent(context.Background(), runeKey('1'))
	app.handleEvent(context.Background(), runeKey('2'))

	app.renderer.Render(app.view)

	bottom := boardTop + app.view.rows - 1
	ch, style := contentAt(app, boardLeft+1, bottom)
	assert.Equal(t, '●', ch)
	assert.Equal(t, tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.GetColor("red")), style)

	ch, _ = contentAt(app, boardLeft+cellWidth+1, bottom)
	assert.Equal(t, '2', ch, "unknown colours fall back to the player number")

	ch, _ = contentAt(app, boardLeft+2*cellWidth+1, bottom)
	assert.Equal(t, '.', ch)
}

func TestRenderShowsStatus(t *testing.T) {
	app := newTestApp(t)
	app.renderer.Render(app.view)

	y := boardTop + app.view.rows + 2
	var line []rune
	for x := boardLeft; x < boardLeft+len("Press s"); x++ {
		ch, _ := contentAt(app, x, y)
		line = append(line, ch)
	}
	assert.Equal(t, "Press s", string(line))
}
