package scrollfx

import (
	"time"

	"github.com/phanxgames/scrollfx/internal/diag"
)

// debugStats holds per-frame timing and write counts.
// Only populated when Engine.debug is true.
type debugStats struct {
	inputTime    time.Duration
	progressTime time.Duration
	animateTime  time.Duration
	physicsTime  time.Duration
	flushTime    time.Duration
	tracks       int
	writes       int
}

// debugLog prints timing and write stats through the diagnostic logger.
func (e *Engine) debugLog(stats debugStats) {
	if !e.debug {
		return
	}
	total := stats.inputTime + stats.progressTime + stats.animateTime + stats.physicsTime + stats.flushTime
	diag.Logf("[scrollfx] input: %v | progress: %v | animate: %v | physics: %v | flush: %v | total: %v",
		stats.inputTime, stats.progressTime, stats.animateTime, stats.physicsTime, stats.flushTime, total)
	diag.Logf("[scrollfx] tracks: %d | node writes: %d", stats.tracks, stats.writes)
}

// debugMaxTracks is the track count above which the engine warns once.
const debugMaxTracks = 64

func (e *Engine) debugCheckTracks() {
	if len(e.tracks) > debugMaxTracks {
		e.tooManyTracks.Logf("[scrollfx] warning: %d tracks exceed %d", len(e.tracks), debugMaxTracks)
	}
}

// since returns the time elapsed from start when debugging, and zero
// otherwise so release frames skip the clock reads.
func (e *Engine) since(start time.Time) time.Duration {
	if !e.debug {
		return 0
	}
	return time.Since(start)
}

func (e *Engine) now() time.Time {
	if !e.debug {
		return time.Time{}
	}
	return time.Now()
}
