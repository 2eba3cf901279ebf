package scrollfx

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func newGalleryFixture(t *testing.T) (*Gallery, *Stage, *Binding) {
	t.Helper()
	st := NewStage()
	targets := GalleryTargets{Strip: "strip"}
	st.AddRect("strip", 4000, 100)
	for layer := 0; layer < 3; layer++ {
		id := TargetID([]string{"front", "middle", "back"}[layer])
		st.AddRect(id, 600, 100)
		targets.Layers = append(targets.Layers, []TargetID{id})
	}
	for _, id := range []TargetID{"c0", "c1", "c2"} {
		st.AddRect(id, 100, 100)
		targets.Cards = append(targets.Cards, id)
	}
	g, err := NewGallery(DefaultGalleryConfig(), 1000, targets)
	if err != nil {
		t.Fatal(err)
	}
	return g, st, NewBinding(st)
}

func TestGalleryStripTracksProgress(t *testing.T) {
	g, st, b := newGalleryFixture(t)
	if g.MoveDistance() != 3000 {
		t.Fatalf("MoveDistance = %v, want 3000", g.MoveDistance())
	}
	tests := []struct {
		value float64
		want  float64
	}{
		{0, 0},
		{0.5, -1500},
		{1, -3000},
	}
	for _, tt := range tests {
		g.Animate(ProgressSample{Value: tt.value}, b)
		b.Flush()
		for _, id := range []TargetID{"strip", "front", "middle", "back"} {
			if got := st.Sprite(id).X; got != tt.want {
				t.Errorf("value %v: %s.X = %v, want %v", tt.value, id, got, tt.want)
			}
		}
	}
}

func TestGalleryLayersLagVelocity(t *testing.T) {
	g, st, b := newGalleryFixture(t)

	// base = min(30, 5000/500) = 10; gains 4, 2, 0; decay 0.35.
	g.Animate(ProgressSample{Value: 0.5, Velocity: 5000}, b)
	b.Flush()
	strip := st.Sprite("strip").X
	tests := []struct {
		id   TargetID
		want float64
	}{
		{"front", 40 * 0.35},
		{"middle", 20 * 0.35},
		{"back", 0},
	}
	for _, tt := range tests {
		if got := st.Sprite(tt.id).X - strip; math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s offset = %v, want %v", tt.id, got, tt.want)
		}
	}

	// The offset decays back once scrolling stops.
	for i := 0; i < 200; i++ {
		g.Animate(ProgressSample{Value: 0.5}, b)
	}
	b.Flush()
	if got := st.Sprite("front").X - st.Sprite("strip").X; got != 0 {
		t.Errorf("front offset after settling = %v, want 0", got)
	}
}

func TestGalleryEdgeSnapsNudge(t *testing.T) {
	g, st, b := newGalleryFixture(t)
	g.Animate(ProgressSample{Value: 0.9, Velocity: -20000}, b)
	g.Animate(ProgressSample{Value: 1, Velocity: -20000}, b)
	b.Flush()
	if got := st.Sprite("front").X; got != -3000 {
		t.Errorf("front.X at the end = %v, want exactly -3000", got)
	}
	for i := 0; i < g.Nudge().Layers(); i++ {
		if off := g.Nudge().Offset(i); off != 0 {
			t.Errorf("layer %d offset = %v after edge", i, off)
		}
	}
}

func TestGalleryCardsCascade(t *testing.T) {
	g, st, b := newGalleryFixture(t)
	g.Animate(ProgressSample{Value: 0}, b)
	b.Flush()
	for _, id := range []TargetID{"c0", "c1", "c2"} {
		sp := st.Sprite(id)
		if sp.Z != -50000 || sp.Scale != 0 {
			t.Errorf("%s at 0: z=%v scale=%v, want far and hidden", id, sp.Z, sp.Scale)
		}
	}

	g.Animate(ProgressSample{Value: 1}, b)
	b.Flush()
	if z := st.Sprite("c0").Z; z != 2000 {
		t.Errorf("c0 z = %v, want 2000", z)
	}
	if z := st.Sprite("c2").Z; z != 1500 {
		t.Errorf("last card z = %v, want 1500", z)
	}
	if s := st.Sprite("c1").Scale; s != 1 {
		t.Errorf("c1 scale = %v, want 1", s)
	}
}

func TestNewGalleryRejectsBadConfig(t *testing.T) {
	cfg := DefaultGalleryConfig()
	cfg.MoveViewports = math.NaN()
	if _, err := NewGallery(cfg, 1000, GalleryTargets{}); err == nil {
		t.Error("NaN travel should be rejected")
	}

	layers := GalleryTargets{Layers: make([][]TargetID, 4)}
	if _, err := NewGallery(DefaultGalleryConfig(), 1000, layers); err == nil {
		t.Error("more layers than gains should be rejected")
	}

	cfg = DefaultGalleryConfig()
	cfg.Nudge.Gains = nil
	err := cfg.Validate()
	if err == nil || errors.Is(err, ErrInvalidPhase) {
		t.Errorf("Validate() = %v, want a gallery error", err)
	}
}

func TestGalleryManyCardsRestAtEnd(t *testing.T) {
	st := NewStage()
	var targets GalleryTargets
	for i := 0; i < 14; i++ {
		id := TargetID(fmt.Sprintf("card%d", i))
		st.AddRect(id, 100, 100)
		targets.Cards = append(targets.Cards, id)
	}
	g, err := NewGallery(DefaultGalleryConfig(), 1000, targets)
	if err != nil {
		t.Fatal(err)
	}
	b := NewBinding(st)
	c := DefaultCascade()

	g.Animate(ProgressSample{Value: 1}, b)
	b.Flush()
	for i, id := range targets.Cards {
		want := c.ItemTarget
		if i == len(targets.Cards)-1 {
			want = c.LastTarget
		}
		if sp := st.Sprite(id); sp.Z != want || sp.Scale != 1 {
			t.Errorf("%s at 1: z=%v scale=%v, want z=%v scale=1", id, sp.Z, sp.Scale, want)
		}
	}

	g.Animate(ProgressSample{Value: 0}, b)
	b.Flush()
	for _, id := range targets.Cards {
		if sp := st.Sprite(id); sp.Z != c.Far || sp.Scale != 0 {
			t.Errorf("%s at 0: z=%v scale=%v, want z=%v scale=0", id, sp.Z, sp.Scale, c.Far)
		}
	}
}
