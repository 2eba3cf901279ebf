package scrollfx

import (
	"fmt"
	"testing"
)

// setupBenchStage creates a Stage with n sprites for benchmark use.
func setupBenchStage(n int) (*Stage, []TargetID) {
	s := NewStage()
	ids := make([]TargetID, n)
	for i := range ids {
		ids[i] = TargetID(fmt.Sprintf("sp%d", i))
		sp := s.AddRect(ids[i], 32, 32)
		sp.Left = float64(i%100) * 40
		sp.Top = float64(i/100) * 40
	}
	return s, ids
}

// --- Binding Benchmarks ---

func BenchmarkBinding_10000Writes(b *testing.B) {
	s, ids := setupBenchStage(10000)
	bind := NewBinding(s)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v := float64(i)
		for _, id := range ids {
			bind.Apply(id, Props{}.SetX(v).SetRotation(v))
		}
		bind.Flush()
	}
}

func BenchmarkBinding_10000Coalesced(b *testing.B) {
	s, ids := setupBenchStage(10000)
	bind := NewBinding(s)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v := float64(i)
		// Three writes per target merge into one flush.
		for _, id := range ids {
			bind.Apply(id, Props{}.SetX(v))
			bind.Apply(id, Props{}.SetY(v))
			bind.Apply(id, Props{}.SetOpacity(0.5))
		}
		bind.Flush()
	}
}

// --- Page Benchmarks ---

func benchPage(b *testing.B) (*Page, *ManualTicker) {
	b.Helper()
	cfg := DefaultConfig()
	cfg.Scrub = 0
	page, err := NewPage(cfg, NewStage())
	if err != nil {
		b.Fatal(err)
	}
	ticker := NewManualTicker()
	if err := page.Engine.Mount(ticker); err != nil {
		b.Fatal(err)
	}
	b.Cleanup(page.Engine.Unmount)
	return page, ticker
}

func BenchmarkPage_ScrollThrough(b *testing.B) {
	page, ticker := benchPage(b)
	height := page.ScrollHeight()
	const frames = 600

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		offset := height * float64(i%frames) / frames
		page.Engine.Scroll(offset, 600)
		ticker.Tick(1.0 / 60)
	}
}

func BenchmarkPage_Idle(b *testing.B) {
	page, ticker := benchPage(b)
	page.Engine.Scroll(page.Config.Pins.Gallery*page.Config.Viewport.Height/2, 0)
	ticker.Tick(1.0 / 60) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ticker.Tick(1.0 / 60)
	}
}
