package term

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/san-kum/termsaver/internal/screen"
)

func TestHeadlessDriverCountsActivity(t *testing.T) {
	d := NewHeadlessDriver(40, 12)
	w, h, err := d.Init()
	if err != nil {
		t.Fatal(err)
	}
	if w != 40 || h != 12 {
		t.Errorf("size = %dx%d, want 40x12", w, h)
	}

	d.SetCell(1, 1, screen.Cell{Ch: 'x'})
	d.SetCell(2, 1, screen.Cell{Ch: 'y'})
	d.Show()
	d.Fini()

	if d.CellWrites != 2 {
		t.Errorf("CellWrites = %d, want 2", d.CellWrites)
	}
	if d.ShowCalls != 1 {
		t.Errorf("ShowCalls = %d, want 1", d.ShowCalls)
	}
	if !d.Finished {
		t.Error("Fini not recorded")
	}
}

func TestHeadlessDriverDeliversEvents(t *testing.T) {
	d := NewHeadlessDriver(10, 10)
	d.Send(Event{Kind: EventResize, Width: 5, Height: 5})

	ev := <-d.Events()
	if ev.Kind != EventResize || ev.Width != 5 || ev.Height != 5 {
		t.Errorf("got %+v", ev)
	}
}

func TestInitErrorWrapsSentinel(t *testing.T) {
	err := &InitError{Cause: io.ErrUnexpectedEOF}
	if !errors.Is(err, ErrInit) {
		t.Error("InitError does not wrap ErrInit")
	}
	if !strings.Contains(err.Error(), io.ErrUnexpectedEOF.Error()) {
		t.Errorf("message %q does not mention the cause", err.Error())
	}
}

func TestIsQuitKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want bool
	}{
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{"Q", tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone), true},
		{"esc", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{"ctrl+c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone), true},
		{"plain rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isQuitKey(tt.ev); got != tt.want {
				t.Errorf("isQuitKey = %v, want %v", got, tt.want)
			}
		})
	}
}
