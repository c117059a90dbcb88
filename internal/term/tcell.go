package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/san-kum/termsaver/internal/screen"
)

// TcellDriver drives a real terminal through tcell.
type TcellDriver struct {
	scr    tcell.Screen
	events chan Event
	done   chan struct{}
}

func NewTcellDriver() *TcellDriver {
	return &TcellDriver{
		events: make(chan Event, 8),
		done:   make(chan struct{}),
	}
}

func (d *TcellDriver) Init() (int, int, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return 0, 0, &InitError{Cause: err}
	}
	if err := scr.Init(); err != nil {
		return 0, 0, &InitError{Cause: err}
	}
	scr.HideCursor()
	scr.Clear()
	d.scr = scr

	go d.pump()

	w, h := scr.Size()
	return w, h, nil
}

// pump translates tcell events into driver events until Fini.
func (d *TcellDriver) pump() {
	for {
		ev := d.scr.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if isQuitKey(ev) {
				select {
				case d.events <- Event{Kind: EventQuit}:
				case <-d.done:
					return
				}
			}
		case *tcell.EventResize:
			w, h := ev.Size()
			select {
			case d.events <- Event{Kind: EventResize, Width: w, Height: h}:
			case <-d.done:
				return
			}
		}
	}
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

func (d *TcellDriver) Fini() {
	close(d.done)
	d.scr.Fini()
}

func (d *TcellDriver) SetCell(x, y int, c screen.Cell) {
	style := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(c.Fg.R), int32(c.Fg.G), int32(c.Fg.B))).
		Bold(c.Bold)
	d.scr.SetContent(x, y, c.Ch, nil, style)
}

func (d *TcellDriver) Show() {
	d.scr.Show()
}

func (d *TcellDriver) Events() <-chan Event {
	return d.events
}
