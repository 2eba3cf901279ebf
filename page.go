package scrollfx

import (
	"fmt"

	"github.com/phanxgames/scrollfx/physics"
)

// PageSection is one pinned section of a Page: its scroll window and the
// sprites it owns.
type PageSection struct {
	Name     string
	Region   PinRegion
	Animator Animator
	Source   *ProgressSource
	Sprites  []*Sprite
}

// Contains reports whether the scroll offset falls inside the section's
// window.
func (s *PageSection) Contains(offset float64) bool {
	return offset >= s.Region.StartOffset && offset < s.Region.StartOffset+s.Region.ExtentPx
}

// Page lays the five sections out one after another in scroll order on a
// Stage and tracks each of them on an Engine. Only the section under the
// current scroll offset is visible.
type Page struct {
	Config   Config
	Stage    *Stage
	Engine   *Engine
	Sections []*PageSection

	Gallery    *Gallery
	StackCards *StackCards
	Spotlight  *Spotlight
	Reveal     *Reveal
	Footer     *Footer

	active int
}

var revealWords = []string{"SCROLL", "DRIVEN", "MOTION"}

// NewPage builds the demo page for cfg: sprites on stage, sections tracked
// on a new engine writing into stage.
func NewPage(cfg Config, stage *Stage) (*Page, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Page{
		Config: cfg,
		Stage:  stage,
		Engine: NewEngine(stage),
		active: -1,
	}
	p.Engine.SetDebugMode(cfg.Debug)
	p.Engine.SetVelocityHold(cfg.VelocityHold)

	builders := []func() error{
		p.buildGallery,
		p.buildStackCards,
		p.buildSpotlight,
		p.buildReveal,
		p.buildFooter,
	}
	for _, build := range builders {
		if err := build(); err != nil {
			return nil, fmt.Errorf("page: %w", err)
		}
	}
	p.Show(0)
	return p, nil
}

// ScrollHeight returns the total scrollable distance of the page.
func (p *Page) ScrollHeight() float64 {
	if len(p.Sections) == 0 {
		return 0
	}
	last := p.Sections[len(p.Sections)-1].Region
	return last.StartOffset + last.ExtentPx
}

// Active returns the section shown at the last Show call.
func (p *Page) Active() *PageSection {
	if p.active < 0 {
		return nil
	}
	return p.Sections[p.active]
}

// Show makes the section under offset visible and hides the others.
func (p *Page) Show(offset float64) {
	idx := len(p.Sections) - 1
	for i, s := range p.Sections {
		if s.Contains(offset) || offset < s.Region.StartOffset {
			idx = i
			break
		}
	}
	if idx == p.active {
		return
	}
	p.active = idx
	for i, s := range p.Sections {
		for _, sp := range s.Sprites {
			sp.Visible = i == idx
		}
	}
}

func (p *Page) add(name string, extentViewports float64, a Animator, sprites []*Sprite) {
	start := p.ScrollHeight()
	region := p.Config.Region(start, extentViewports)
	src := p.Engine.Track(region, a)
	src.Scrub = p.Config.Scrub
	p.Sections = append(p.Sections, &PageSection{
		Name:     name,
		Region:   region,
		Animator: a,
		Source:   src,
		Sprites:  sprites,
	})
}

func (p *Page) rect(id string, left, top, w, h float64, c Color) *Sprite {
	sp := p.Stage.AddRect(TargetID(id), w, h)
	sp.Left, sp.Top = left, top
	sp.Color = c
	return sp
}

func (p *Page) buildGallery() error {
	vw, vh := p.Config.Viewport.Width, p.Config.Viewport.Height
	cfg := p.Config.Gallery
	var sprites []*Sprite
	var t GalleryTargets

	titles := int(cfg.MoveViewports) + 1
	tw, th := vw*0.6, vh*0.15
	layerColors := []Color{
		{0.95, 0.35, 0.35, 1},
		{0.35, 0.75, 0.95, 1},
		{1, 1, 1, 1},
	}
	for layer := range cfg.Nudge.Gains {
		var ids []TargetID
		for k := 0; k < titles; k++ {
			sp := p.rect(fmt.Sprintf("gallery/title%d/layer%d", k, layer),
				float64(k)*vw+(vw-tw)/2, (vh-th)/2, tw, th, layerColors[layer%len(layerColors)])
			sp.ZIndex = len(cfg.Nudge.Gains) - layer
			ids = append(ids, sp.ID)
			sprites = append(sprites, sp)
		}
		t.Layers = append(t.Layers, ids)
	}

	const cards = 8
	cw, ch := vw*0.18, vh*0.28
	for i := 0; i < cards; i++ {
		col, row := i%4, i/4
		sp := p.rect(fmt.Sprintf("gallery/card%d", i),
			vw*(0.08+0.23*float64(col)), vh*(0.12+0.45*float64(row)), cw, ch,
			Color{0.9, 0.85, 0.7, 1})
		sp.ZIndex = 10 + i
		t.Cards = append(t.Cards, sp.ID)
		sprites = append(sprites, sp)
	}

	g, err := NewGallery(cfg, vw, t)
	if err != nil {
		return err
	}
	p.Gallery = g
	p.add("gallery", p.Config.Pins.Gallery, g, sprites)
	return nil
}

func (p *Page) buildStackCards() error {
	vw, vh := p.Config.Viewport.Width, p.Config.Viewport.Height
	cfg := p.Config.StackCards
	cw, ch := vw*0.6, vh*0.6
	var sprites []*Sprite
	var ids []TargetID
	for i := range cfg.Rotations {
		sp := p.rect(fmt.Sprintf("stack/card%d", i), (vw-cw)/2, (vh-ch)/2, cw, ch,
			Color{0.2 + 0.15*float64(i), 0.3, 0.6, 1})
		sp.ZIndex = i
		sp.Y = vh
		ids = append(ids, sp.ID)
		sprites = append(sprites, sp)
	}
	s, err := NewStackCards(cfg, Vec2{X: vw, Y: vh}, ids)
	if err != nil {
		return err
	}
	p.StackCards = s
	p.add("stackCards", p.Config.Pins.StackCards, s, sprites)
	return nil
}

func (p *Page) buildSpotlight() error {
	vw, vh := p.Config.Viewport.Width, p.Config.Viewport.Height
	cfg := p.Config.Spotlight
	size := Vec2{X: vw * 0.22, Y: vh * 0.32}
	var sprites []*Sprite
	var t SpotlightTargets
	for i, final := range cfg.Finals {
		card := p.rect(fmt.Sprintf("spotlight/card%d", i), vw/2, vh/2, size.X, size.Y,
			Color{0.95, 0.9 - 0.1*float64(i), 0.5, 1})
		card.ZIndex = i
		caption := p.rect(fmt.Sprintf("spotlight/caption%d", i),
			vw/2+final.X/100*size.X, vh/2+(final.Y+100)/100*size.Y+8, size.X, 20,
			Color{1, 1, 1, 1})
		caption.Opacity = 0
		t.Cards = append(t.Cards, card.ID)
		t.Captions = append(t.Captions, caption.ID)
		sprites = append(sprites, card, caption)
	}
	s, err := NewSpotlight(cfg, size, t)
	if err != nil {
		return err
	}
	p.Spotlight = s
	p.add("spotlight", p.Config.Pins.Spotlight, s, sprites)
	return nil
}

func (p *Page) buildReveal() error {
	vw, vh := p.Config.Viewport.Width, p.Config.Viewport.Height
	gw := vw * 0.08
	gh := gw * 1.2
	var sprites []*Sprite
	var t RevealTargets
	for b, word := range revealWords {
		left := (vw - float64(len(word))*gw) / 2
		var ids []TargetID
		for i := range word {
			sp := p.rect(fmt.Sprintf("reveal/block%d/glyph%d", b, i),
				left+float64(i)*gw, vh*0.3, gw*0.9, gh, Color{1, 1, 1, 1})
			if b > 0 {
				sp.Y = gh
			}
			ids = append(ids, sp.ID)
			sprites = append(sprites, sp)
		}
		t.Blocks = append(t.Blocks, ids)
	}
	indicator := p.rect("reveal/indicator", 0, vh-6, vw, 6, Color{0.95, 0.35, 0.35, 1})
	indicator.Scale = 0
	track := p.rect("reveal/track", 0, vh*0.7, 2*vw, vh*0.1, Color{0.3, 0.3, 0.3, 1})
	t.Indicator, t.Track = indicator.ID, track.ID
	sprites = append(sprites, indicator, track)

	r, err := NewReveal(p.Config.Reveal, gh, vw, t)
	if err != nil {
		return err
	}
	p.Reveal = r
	p.add("reveal", p.Config.Pins.Reveal, r, sprites)
	return nil
}

func (p *Page) buildFooter() error {
	vw, vh := p.Config.Viewport.Width, p.Config.Viewport.Height
	origin := Vec2{X: 0, Y: vh * 0.4}
	container := physics.Container{Width: vw, Height: vh * 0.6}
	floor := p.rect("footer/container", origin.X, origin.Y, container.Width, container.Height,
		Color{0.12, 0.12, 0.14, 1})
	floor.ZIndex = -1
	sprites := []*Sprite{floor}

	var t FooterTargets
	sizes := []Vec2{
		{X: 180, Y: 60}, {X: 140, Y: 140}, {X: 220, Y: 50}, {X: 100, Y: 100},
		{X: 160, Y: 70}, {X: 120, Y: 120}, {X: 200, Y: 60}, {X: 90, Y: 90},
	}
	for i, sz := range sizes {
		sp := p.rect(fmt.Sprintf("footer/box%d", i), origin.X, origin.Y, sz.X, sz.Y,
			Color{0.95, 0.6 + 0.04*float64(i), 0.2, 1})
		sp.Y = -3 * sz.Y
		t.Bodies = append(t.Bodies, sp.ID)
		t.Sizes = append(t.Sizes, sz)
		sprites = append(sprites, sp)
	}
	f, err := NewFooter(p.Config.Footer, origin, container, t)
	if err != nil {
		return err
	}
	p.Footer = f
	p.add("footer", p.Config.Pins.Footer, f, sprites)
	return nil
}
