// Package scrollfx is a scroll-driven animation engine with a small rigid-body
// playground, built to run inside [Ebitengine] or headless under tests.
//
// A page is a column of pinned sections. While the page scrolls through a
// section, that section's progress runs from 0 to 1 and its animator turns
// the progress into property writes on named targets.
//
// # Quick start
//
// The simplest way to get a window up is [NewPage] plus ebitenfx.Run:
//
//	page, err := scrollfx.NewPage(scrollfx.DefaultConfig(), scrollfx.NewStage())
//	if err != nil {
//		log.Fatal(err)
//	}
//	log.Fatal(ebitenfx.Run(page, ebitenfx.DefaultConfig()))
//
// For full control, build an [Engine] yourself, track your own animators, and
// drive it from any [Ticker]:
//
//	e := scrollfx.NewEngine(stage)
//	e.Track(scrollfx.PinRegion{StartOffset: 0, ExtentPx: 3600}, gallery)
//	ticker := scrollfx.NewManualTicker()
//	e.Mount(ticker)
//	e.Scroll(offset, velocity)
//	ticker.Tick(1.0 / 60)
//
// # Progress and phases
//
// A [ProgressSource] maps a raw scroll offset onto a [PinRegion] and can
// trail it with a spring ([ProgressSource.Scrub], via [harmonica]). A
// [Phase] carves a window out of [0, 1]; [Phase.Item] staggers items inside
// it. [Wave] and [Cascade] are the two other stagger shapes used by the
// built-in sections. At either end of the range every transition snaps to
// its terminal pose.
//
// # Easing and smoothing
//
// [Ease] curves come from [gween]'s ease package with the endpoints pinned
// to exactly 0 and 1. [Smoother] is a one-pole low-pass filter; [Marquee]
// and [Nudge] build velocity-reactive motion on top of it. [PropertyTween]
// is a time-based tween for values that must keep animating after the
// scroll stops.
//
// # Targets
//
// Animators never touch nodes directly. They call [Binding.Apply] with a
// [TargetID] and a [Props] set; the engine flushes the binding once per
// frame, so each node receives at most one write per frame. Targets that do
// not resolve, or resolve to disposed nodes, are skipped. [Stage] is an
// in-memory resolver of [Sprite] nodes.
//
// # Sections
//
// [Gallery], [StackCards], [Spotlight], [Reveal], and [Footer] are the
// built-in sections. [Footer] owns a physics.World that it creates the first
// time the section is entered and closes on [Engine.Unmount].
//
// # Configuration
//
// [Config] is loaded from YAML with [LoadConfig]; missing fields keep the
// values from [DefaultConfig].
//
// # Scripted input
//
// [Engine.InjectScroll], [Engine.InjectDrag], and [LoadScript] replay input
// one event per frame, for automated runs and tests.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [harmonica]: https://github.com/charmbracelet/harmonica
package scrollfx
