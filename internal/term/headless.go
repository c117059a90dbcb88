package term

import "github.com/san-kum/termsaver/internal/screen"

// HeadlessDriver satisfies Driver without touching a terminal. It
// records write counts so tests and headless verification can assert
// on presentation activity.
type HeadlessDriver struct {
	width, height int
	events        chan Event

	CellWrites int
	ShowCalls  int
	Finished   bool
}

func NewHeadlessDriver(width, height int) *HeadlessDriver {
	return &HeadlessDriver{
		width:  width,
		height: height,
		events: make(chan Event, 8),
	}
}

func (d *HeadlessDriver) Init() (int, int, error) {
	return d.width, d.height, nil
}

func (d *HeadlessDriver) Fini() {
	d.Finished = true
}

func (d *HeadlessDriver) SetCell(x, y int, c screen.Cell) {
	d.CellWrites++
}

func (d *HeadlessDriver) Show() {
	d.ShowCalls++
}

func (d *HeadlessDriver) Events() <-chan Event {
	return d.events
}

// Send injects an event, for tests.
func (d *HeadlessDriver) Send(ev Event) {
	d.events <- ev
}
