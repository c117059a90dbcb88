package effect

import (
	"math"
	"math/rand"

	"github.com/san-kum/termsaver/internal/screen"
)

const (
	boidVisualRange    = 9.0
	boidProtectedRange = 2.5
	boidSeparation     = 3.0
	boidAlignment      = 2.0
	boidCohesion       = 0.6
	boidSwirl          = 0.35
	boidBorderMargin   = 4.0
	boidBorderForce    = 18.0
	boidDamping        = 0.35
	boidMinSpeed       = 4.0
	boidMaxSpeed       = 16.0
)

type boid struct {
	pos vec2
	vel vec2
}

// Boids simulates a flock steered by separation, alignment, and
// cohesion, with a gentle swirl around the screen center and a border
// force that keeps the flock on screen. Neighbor lookups go through a
// uniform bucket grid sized to the visual range, so each boid only
// scans its own and adjacent buckets.
type Boids struct {
	width, height int
	boids         []boid
	buckets       map[[2]int][]int
}

func NewBoids() *Boids {
	return &Boids{}
}

func (b *Boids) Reset(width, height int, rng *rand.Rand) {
	b.width = width
	b.height = height
	count := width * height / 80
	if count < 20 {
		count = 20
	}
	if count > 120 {
		count = 120
	}
	b.boids = make([]boid, count)
	for i := range b.boids {
		ang := rng.Float64() * 2 * math.Pi
		speed := boidMinSpeed + rng.Float64()*(boidMaxSpeed-boidMinSpeed)
		b.boids[i] = boid{
			pos: vec2{rng.Float64() * float64(width), rng.Float64() * float64(height)},
			vel: vec2{math.Cos(ang), math.Sin(ang)}.Scale(speed),
		}
	}
}

func bucketOf(p vec2) [2]int {
	return [2]int{int(math.Floor(p.X / boidVisualRange)), int(math.Floor(p.Y / boidVisualRange))}
}

func (b *Boids) rebucket(snapshot []boid) {
	if b.buckets == nil {
		b.buckets = make(map[[2]int][]int)
	}
	for k := range b.buckets {
		delete(b.buckets, k)
	}
	for i := range snapshot {
		k := bucketOf(snapshot[i].pos)
		b.buckets[k] = append(b.buckets[k], i)
	}
}

// Tick reads neighbor state from a start-of-tick snapshot and writes
// the results back, so the outcome does not depend on update order.
func (b *Boids) Tick(dt float64, rng *rand.Rand) {
	cx := float64(b.width) / 2
	cy := float64(b.height) / 2

	snapshot := make([]boid, len(b.boids))
	copy(snapshot, b.boids)
	b.rebucket(snapshot)

	for i := range b.boids {
		me := &snapshot[i]
		var sep, avgVel, avgPos vec2
		neighbors := 0

		home := bucketOf(me.pos)
		for bx := home[0] - 1; bx <= home[0]+1; bx++ {
			for by := home[1] - 1; by <= home[1]+1; by++ {
				for _, j := range b.buckets[[2]int{bx, by}] {
					if j == i {
						continue
					}
					other := &snapshot[j]
					d := other.pos.Sub(me.pos)
					dist := d.Len()
					if dist > boidVisualRange {
						continue
					}
					if dist < boidProtectedRange && dist > 0 {
						sep = sep.Sub(d.Scale(1 / dist))
					}
					avgVel = avgVel.Add(other.vel)
					avgPos = avgPos.Add(other.pos)
					neighbors++
				}
			}
		}

		accel := sep.Scale(boidSeparation)
		if neighbors > 0 {
			inv := 1 / float64(neighbors)
			accel = accel.Add(avgVel.Scale(inv).Sub(me.vel).Scale(boidAlignment / boidMaxSpeed))
			accel = accel.Add(avgPos.Scale(inv).Sub(me.pos).Scale(boidCohesion))
		}

		// Swirl around the screen center keeps the flock circulating.
		toCenter := vec2{cx - me.pos.X, cy - me.pos.Y}
		accel = accel.Add(vec2{-toCenter.Y, toCenter.X}.Scale(boidSwirl / (toCenter.Len() + 1)))

		if me.pos.X < boidBorderMargin {
			accel.X += boidBorderForce
		}
		if me.pos.X > float64(b.width)-boidBorderMargin {
			accel.X -= boidBorderForce
		}
		if me.pos.Y < boidBorderMargin {
			accel.Y += boidBorderForce
		}
		if me.pos.Y > float64(b.height)-boidBorderMargin {
			accel.Y -= boidBorderForce
		}

		vel := me.vel.Add(accel.Scale(dt))
		vel = vel.Sub(vel.Scale(boidDamping * dt))

		speed := vel.Len()
		if speed > boidMaxSpeed {
			vel = vel.Scale(boidMaxSpeed / speed)
		} else if speed > 0 && speed < boidMinSpeed {
			vel = vel.Scale(boidMinSpeed / speed)
		}

		// Non-finite state is recovered, never propagated.
		if !vel.IsFinite() {
			vel = vec2{boidMinSpeed, 0}
		}
		b.boids[i].vel = vel
		b.boids[i].pos = me.pos.Add(vel.Scale(dt))
	}
}

var boidArrows = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

func arrowFor(v vec2) rune {
	ang := math.Atan2(v.Y, v.X)
	sector := int(math.Round(ang/(math.Pi/4))) & 7
	return boidArrows[sector]
}

func (b *Boids) Render(buf *screen.Buffer) {
	for i := range b.boids {
		bd := &b.boids[i]
		t := (bd.vel.Len() - boidMinSpeed) / (boidMaxSpeed - boidMinSpeed)
		t = math.Max(0, math.Min(1, t))
		fg := screen.RGB(uint8(120+120*t), uint8(200+40*t), 255)
		buf.Set(int(bd.pos.X), int(bd.pos.Y), screen.Cell{Ch: arrowFor(bd.vel), Fg: fg})
	}
}

// Validate checks that every boid has finite, clamped velocity.
func (b *Boids) Validate() error {
	for i := range b.boids {
		bd := &b.boids[i]
		if !bd.pos.IsFinite() || !bd.vel.IsFinite() {
			return &invariantError{effect: "boids", detail: "non-finite state", index: i}
		}
		if bd.vel.Len() > boidMaxSpeed*1.001 {
			return &invariantError{effect: "boids", detail: "velocity above max speed", index: i}
		}
	}
	return nil
}
