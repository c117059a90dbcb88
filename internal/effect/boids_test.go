package effect

import (
	"math"
	"math/rand"
	"testing"
)

func TestBoidsSpeedClamped(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	b := NewBoids()
	b.Reset(80, 24, rng)

	for i := 0; i < 600; i++ {
		b.Tick(1.0/60, rng)
		for j := range b.boids {
			speed := b.boids[j].vel.Len()
			if math.IsNaN(speed) || math.IsInf(speed, 0) {
				t.Fatalf("boid %d has non-finite speed at tick %d", j, i)
			}
			if speed > boidMaxSpeed*1.001 {
				t.Fatalf("boid %d speed %f exceeds max %f", j, speed, boidMaxSpeed)
			}
		}
	}
}

func TestBoidsCountScalesWithAreaWithinBounds(t *testing.T) {
	tests := []struct {
		w, h int
		want int
	}{
		{10, 10, 20},    // small screens get the floor
		{80, 24, 24},    // area / 80
		{300, 100, 120}, // large screens hit the cap
	}

	for _, tt := range tests {
		b := NewBoids()
		b.Reset(tt.w, tt.h, rand.New(rand.NewSource(1)))
		if got := len(b.boids); got != tt.want {
			t.Errorf("%dx%d: %d boids, want %d", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestBoidsStayNearScreen(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	b := NewBoids()
	b.Reset(60, 20, rng)

	for i := 0; i < 1800; i++ {
		b.Tick(1.0/60, rng)
	}
	// The border force is soft, so allow a small overshoot margin.
	for j := range b.boids {
		p := b.boids[j].pos
		if p.X < -10 || p.X > 70 || p.Y < -10 || p.Y > 30 {
			t.Errorf("boid %d drifted far off screen: %+v", j, p)
		}
	}
}

func TestArrowForCardinalDirections(t *testing.T) {
	tests := []struct {
		v    vec2
		want rune
	}{
		{vec2{1, 0}, '→'},
		{vec2{-1, 0}, '←'},
		{vec2{0, 1}, '↓'},
		{vec2{0, -1}, '↑'},
		{vec2{1, 1}, '↘'},
		{vec2{-1, -1}, '↖'},
	}

	for _, tt := range tests {
		if got := arrowFor(tt.v); got != tt.want {
			t.Errorf("arrowFor(%+v) = %c, want %c", tt.v, got, tt.want)
		}
	}
}
