package scrollfx

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewPageLayout(t *testing.T) {
	p, err := NewPage(DefaultConfig(), NewStage())
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, s := range p.Sections {
		names = append(names, s.Name)
	}
	want := []string{"gallery", "stackCards", "spotlight", "reveal", "footer"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
	// 5 + 8 + 6 + 3 + 1 viewport heights of 720 px.
	if got := p.ScrollHeight(); got != 23*720 {
		t.Errorf("ScrollHeight = %v, want %v", got, 23*720)
	}
	if p.Engine.Tracks() != 5 {
		t.Errorf("engine has %d tracks, want 5", p.Engine.Tracks())
	}
	if a := p.Active(); a == nil || a.Name != "gallery" {
		t.Errorf("active section at 0 = %v, want gallery", a)
	}
}

func TestPageShowTogglesVisibility(t *testing.T) {
	p, err := NewPage(DefaultConfig(), NewStage())
	if err != nil {
		t.Fatal(err)
	}
	spot := p.Sections[2]
	p.Show(spot.Region.StartOffset + 10)
	if p.Active() != spot {
		t.Fatalf("active = %s, want spotlight", p.Active().Name)
	}
	for i, s := range p.Sections {
		for _, sp := range s.Sprites {
			if sp.Visible != (i == 2) {
				t.Fatalf("%s visible = %v", sp.ID, sp.Visible)
			}
		}
	}

	p.Show(p.ScrollHeight() + 5000)
	if p.Active().Name != "footer" {
		t.Errorf("past the end active = %s, want footer", p.Active().Name)
	}
	p.Show(-100)
	if p.Active().Name != "gallery" {
		t.Errorf("before the start active = %s, want gallery", p.Active().Name)
	}
}

func TestPageScrollDrivesSections(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scrub = 0
	p, err := NewPage(cfg, NewStage())
	if err != nil {
		t.Fatal(err)
	}
	ticker := NewManualTicker()
	if err := p.Engine.Mount(ticker); err != nil {
		t.Fatal(err)
	}
	defer p.Engine.Unmount()

	reveal := p.Sections[3].Region
	p.Engine.Scroll(reveal.StartOffset+reveal.ExtentPx*0.25, 0)
	ticker.Tick(1.0 / 60)

	gh := cfg.Viewport.Width * 0.08 * 1.2
	if got := p.Stage.Sprite("reveal/block0/glyph0").Y; math.Abs(got-gh) > 1e-9 {
		t.Errorf("outgoing glyph Y = %v, want %v", got, gh)
	}
	if got := p.Stage.Sprite("reveal/block2/glyph0").Y; math.Abs(got-gh) > 1e-9 {
		t.Errorf("waiting glyph Y = %v, want %v", got, gh)
	}
	// Sections before the offset have run to their end.
	if got := p.Stage.Sprite("gallery/title0/layer2").X; got != -3*cfg.Viewport.Width {
		t.Errorf("gallery title X = %v, want %v", got, -3*cfg.Viewport.Width)
	}
	if p.Footer.World() != nil {
		t.Error("footer world created before the footer was reached")
	}

	footer := p.Sections[4].Region
	p.Engine.Scroll(footer.StartOffset+1, 10)
	ticker.Tick(1.0 / 60)
	if p.Footer.World() == nil {
		t.Fatal("footer world not created on enter")
	}
	if p.Stage.Sprite("footer/box0").Writes() == 0 {
		t.Error("footer boxes not synced")
	}
}
