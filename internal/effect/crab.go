package effect

import (
	"math"
	"math/rand"

	"github.com/san-kum/termsaver/internal/screen"
)

var crabFrames = [6][]string{
	// Standard pose facing right.
	{
		`    _~^~^~_`,
		`\) /  o o  \ (/`,
		`  '_   ¬   _'`,
		`  \ '-----' /`,
	},
	// Walking pose facing right.
	{
		`    _~^~^~_`,
		`\) /  o o  \ (/`,
		` '-,   -  _'\`,
		`  | '----' `,
	},
	// Claws open facing right.
	{
		`    _~^~^~_`,
		`\/ /  o o  \ \/`,
		`  '_   u   _'`,
		`  \ '-----' /`,
	},
	// Standard pose facing left.
	{
		`    _~^~^~_`,
		`(\ /  o o  \ ()`,
		`  '_   ¬   _'`,
		`  / '-----' \`,
	},
	// Walking pose facing left.
	{
		`    _~^~^~_`,
		`(\ /  o o  \ ()`,
		` /'_  -   ,-'`,
		`    '----' |`,
	},
	// Claws open facing left.
	{
		`    _~^~^~_`,
		`\/ /  o o  \ \/`,
		`  '_   u   _'`,
		`  / '-----' \`,
	},
}

const (
	crabAnimSpeed    = 0.2
	crabMoveSpeed    = 5.0
	crabClapChance   = 0.05
	crabCollideDist2 = 36.0
	crabTurnTime     = 0.4
)

type crabState int

const (
	crabWalking crabState = iota
	crabTurning
	crabColliding
)

type crab struct {
	pos        vec2
	vel        vec2
	right      bool
	state      crabState
	stateTimer float64
	animTimer  float64
	frame      int
	color      screen.Color
}

func (c *crab) frameLines() []string {
	switch {
	case c.state == crabColliding && c.right:
		return crabFrames[2]
	case c.state == crabColliding:
		return crabFrames[5]
	case c.right:
		return crabFrames[c.frame%2]
	default:
		return crabFrames[3+c.frame%2]
	}
}

// Crabs scuttle across the screen, bounce off the edges, and clap
// their claws at each other on contact. Each crab runs a small state
// machine; collisions are decided from positions snapshotted at the
// start of the tick so the outcome is symmetric for both crabs.
type Crab struct {
	width, height int
	frameW        int
	frameH        int
	crabs         []crab
}

func NewCrab() *Crab {
	return &Crab{}
}

func frameSize() (w, h int) {
	for _, line := range crabFrames[0] {
		if n := len([]rune(line)); n > w {
			w = n
		}
	}
	return w, len(crabFrames[0])
}

func (e *Crab) Reset(width, height int, rng *rand.Rand) {
	e.width = width
	e.height = height
	e.frameW, e.frameH = frameSize()

	count := width * height / 800
	if count < 3 {
		count = 3
	}
	if count > 15 {
		count = 15
	}

	e.crabs = make([]crab, count)
	for i := range e.crabs {
		vx := 0.5 + rng.Float64()
		if rng.Intn(2) == 0 {
			vx = -vx
		}
		e.crabs[i] = crab{
			pos:   vec2{rng.Float64() * float64(width) * 0.8, rng.Float64() * float64(height) * 0.8},
			vel:   vec2{vx, rng.Float64() - 0.5},
			right: vx >= 0,
			color: screen.RGB(
				uint8(200+rng.Intn(56)),
				uint8(50+rng.Intn(101)),
				uint8(50+rng.Intn(51)),
			),
		}
	}

	// Spread out any crabs that spawned on top of each other.
	for i := 0; i < len(e.crabs); {
		moved := false
		for j := 0; j < i; j++ {
			d := e.crabs[i].pos.Sub(e.crabs[j].pos)
			if d.X*d.X+d.Y*d.Y < 100 {
				e.crabs[i].pos = vec2{rng.Float64() * float64(width) * 0.8, rng.Float64() * float64(height) * 0.8}
				moved = true
				break
			}
		}
		if !moved {
			i++
		}
	}
}

func (e *Crab) Tick(dt float64, rng *rand.Rand) {
	snapshot := make([]vec2, len(e.crabs))
	for i := range e.crabs {
		snapshot[i] = e.crabs[i].pos
	}

	for i := range e.crabs {
		c := &e.crabs[i]
		c.pos = c.pos.Add(c.vel.Scale(crabMoveSpeed * dt))

		// On terminals smaller than the sprite the crab just pins
		// to the origin instead of thrashing between edges.
		maxX := math.Max(0, float64(e.width-e.frameW))
		maxY := math.Max(0, float64(e.height-e.frameH))
		if c.pos.X < 0 {
			c.pos.X = 0
			c.vel.X = 0.5 + rng.Float64()
			c.enter(crabTurning, crabTurnTime)
		} else if c.pos.X > maxX {
			c.pos.X = maxX
			c.vel.X = -(0.5 + rng.Float64())
			c.enter(crabTurning, crabTurnTime)
		}
		if c.pos.Y < 0 {
			c.pos.Y = 0
			c.vel.Y = 0.2 + rng.Float64()*0.6
		} else if c.pos.Y > maxY {
			c.pos.Y = maxY
			c.vel.Y = -(0.2 + rng.Float64()*0.6)
		}

		if c.vel.X > 0 {
			c.right = true
		} else if c.vel.X < 0 {
			c.right = false
		}

		c.animTimer += dt
		if c.animTimer >= crabAnimSpeed {
			c.animTimer = 0
			c.frame = (c.frame + 1) % 2
		}

		if c.state != crabWalking {
			c.stateTimer -= dt
			if c.stateTimer <= 0 {
				c.state = crabWalking
			}
		} else if rng.Float64() < crabClapChance*dt {
			c.enter(crabColliding, crabAnimSpeed*5)
		}

		// Occasional wander so paths do not stay straight.
		if rng.Float64() < 0.02 {
			c.vel.X += rng.Float64()*0.4 - 0.2
			c.vel.Y += rng.Float64()*0.2 - 0.1
			if c.vel.X > 2 {
				c.vel.X = 1.5
			} else if c.vel.X < -2 {
				c.vel.X = -1.5
			}
			if c.vel.Y > 1 {
				c.vel.Y = 0.5
			} else if c.vel.Y < -1 {
				c.vel.Y = -0.5
			}
		}
	}

	// Pairwise collisions against the start-of-tick snapshot.
	for i := 0; i < len(e.crabs); i++ {
		for j := i + 1; j < len(e.crabs); j++ {
			d := snapshot[i].Sub(snapshot[j])
			if d.X*d.X+d.Y*d.Y >= crabCollideDist2 {
				continue
			}
			for _, k := range []int{i, j} {
				c := &e.crabs[k]
				c.enter(crabColliding, crabAnimSpeed*5)
				c.vel.X = -c.vel.X
				c.vel.Y += rng.Float64() - 0.5
				c.right = c.vel.X >= 0
			}
		}
	}
}

func (c *crab) enter(s crabState, duration float64) {
	c.state = s
	c.stateTimer = duration
}

func (e *Crab) Render(buf *screen.Buffer) {
	for i := range e.crabs {
		c := &e.crabs[i]
		baseX := int(c.pos.X)
		baseY := int(c.pos.Y)
		for dy, line := range c.frameLines() {
			for dx, ch := range []rune(line) {
				if ch == ' ' {
					continue
				}
				buf.Set(baseX+dx, baseY+dy, screen.Cell{Ch: ch, Fg: c.color, Bold: true})
			}
		}
	}
}

// Validate checks that every crab stays on screen with sane velocity.
func (e *Crab) Validate() error {
	for i := range e.crabs {
		c := &e.crabs[i]
		if !c.pos.IsFinite() || !c.vel.IsFinite() {
			return &invariantError{effect: "crab", detail: "non-finite state", index: i}
		}
		maxX := math.Max(0, float64(e.width-e.frameW))
		maxY := math.Max(0, float64(e.height-e.frameH))
		if c.pos.X < 0 || c.pos.Y < 0 || c.pos.X > maxX+1 || c.pos.Y > maxY+1 {
			return &invariantError{effect: "crab", detail: "position off screen", index: i}
		}
		if c.state != crabWalking && c.stateTimer <= 0 {
			return &invariantError{effect: "crab", detail: "expired state not cleared", index: i}
		}
	}
	return nil
}
