// Package tui plays a hot-seat game in the terminal using tcell.
package tui

import "github.com/gdamore/tcell/v2"

// Screen wraps tcell.Screen with the few calls the game needs.
type Screen struct {
	screen tcell.Screen
}

// NewScreen creates and initializes a new terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newScreen(s)
}

func newScreen(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault)
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close finalizes the screen and restores terminal state.
func (s *Screen) Close() {
	s.screen.Fini()
}

func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Post queues fn to run on the event loop.
func (s *Screen) Post(fn func()) {
	_ = s.screen.PostEvent(tcell.NewEventInterrupt(fn))
}

func (s *Screen) Clear() {
	s.screen.Clear()
}

func (s *Screen) Show() {
	s.screen.Show()
}

func (s *Screen) Sync() {
	s.screen.Sync()
}

func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// DrawText writes text on one line starting at x.
func (s *Screen) DrawText(x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		s.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
