package tui

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/domain"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/service/game"
)

// App runs one local session on a terminal. It is the session's Notifier;
// callbacks are queued onto the event loop so the view is only touched there.
type App struct {
	screen   *Screen
	renderer *Renderer
	session  *game.Session
	view     *view
	post     func(func())
	running  bool
}

// NewApp opens a fresh session on sm and binds it to screen.
func NewApp(ctx context.Context, screen *Screen, sm *game.SessionManager) (*App, error) {
	app := &App{
		screen:   screen,
		renderer: NewRenderer(screen),
		post:     screen.Post,
		running:  true,
	}

	session, err := sm.CreateSession(ctx, app)
	if err != nil {
		return nil, err
	}
	app.session = session
	app.view = newView(session.Snapshot())
	return app, nil
}

// Run executes the main loop until the player quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		a.post(func() { a.running = false })
	}()

	for a.running {
		a.renderer.Render(a.view)
		a.handleEvent(ctx, a.screen.PollEvent())
	}
	return ctx.Err()
}

func (a *App) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if a.view.prompt != nil {
			a.handlePromptKey(ctx, ev)
			return
		}
		a.handleKey(ctx, ev)
	case *tcell.EventInterrupt:
		if fn, ok := ev.Data().(func()); ok {
			fn()
		}
	case *tcell.EventResize:
		a.screen.Sync()
	case nil:
		// screen finalized
		a.running = false
	}
}

func (a *App) handleKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.running = false
	case tcell.KeyLeft:
		a.view.moveCursor(-1)
	case tcell.KeyRight:
		a.view.moveCursor(1)
	case tcell.KeyEnter, tcell.KeyDown:
		a.session.HandleColumnSelected(ctx, a.view.cursor)

	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r >= '1' && r <= '9':
			column := int(r - '1')
			if column < a.view.columns {
				a.view.cursor = column
			}
			a.session.HandleColumnSelected(ctx, column)
		case r == ' ':
			a.session.HandleColumnSelected(ctx, a.view.cursor)
		case r == 's' || r == 'S':
			if a.view.phase == domain.PhaseUnconfigured {
				a.view.prompt = &colorPrompt{player: domain.Player1}
			}
		case r == 'r' || r == 'R':
			a.session.HandleRestartRequested(ctx)
		case r == 'q' || r == 'Q':
			a.running = false
		}
	}
}

func (a *App) handlePromptKey(ctx context.Context, ev *tcell.EventKey) {
	p := a.view.prompt

	switch ev.Key() {
	case tcell.KeyEscape:
		a.view.prompt = nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
		}
	case tcell.KeyEnter:
		p.colors[p.player-1] = string(p.input)
		p.input = nil
		if p.player == domain.Player1 {
			p.player = domain.Player2
			return
		}
		a.view.prompt = nil
		a.session.HandleStartRequested(ctx, p.colors[0], p.colors[1])
	case tcell.KeyRune:
		p.input = append(p.input, ev.Rune())
	}
}

func (a *App) PiecePlaced(move domain.Move, player domain.Player) {
	a.post(func() { a.view.piecePlaced(move, player) })
}

func (a *App) TurnChanged(player domain.Player) {
	a.post(func() { a.view.turnChanged(player) })
}

func (a *App) GameEnded(outcome domain.Outcome, winner domain.Player) {
	a.post(func() { a.view.gameEnded(outcome, winner) })
}

func (a *App) ConfigurationRejected(reason string) {
	a.post(func() { a.view.rejected(reason) })
}

func (a *App) Restarted(state domain.Snapshot) {
	a.post(func() { a.view.load(state) })
}
