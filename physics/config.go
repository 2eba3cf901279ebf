package physics

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("physics: invalid config")

// Iterations sets how many solver passes run per fixed step.
type Iterations struct {
	Constraint int `yaml:"constraint"`
	Position   int `yaml:"position"`
	Velocity   int `yaml:"velocity"`
}

// Config holds the tunables of a World. Lengths are in pixels, time in
// seconds, angles in radians. Values are read once at NewWorld.
type Config struct {
	Gravity     r2.Vec  `yaml:"gravity"` // px/s²
	Restitution float64 `yaml:"restitution"`
	Friction    float64 `yaml:"friction"`
	FrictionAir float64 `yaml:"frictionAir"` // fraction of velocity lost per 1/60 s
	Density     float64 `yaml:"density"`     // mass per px²

	WallThickness float64       `yaml:"wallThickness"`
	TopWallDelay  time.Duration `yaml:"topWallDelay"`

	DragStiffness float64 `yaml:"dragStiffness"`
	MaxDragSpeed  float64 `yaml:"maxDragSpeed"` // px/s, per axis

	Iterations Iterations `yaml:"iterations"`

	TimeStep    float64 `yaml:"timeStep"`
	MaxSubSteps int     `yaml:"maxSubSteps"`

	// RestitutionThreshold is the closing speed below which contacts do not
	// bounce, so resting stacks stay still.
	RestitutionThreshold float64 `yaml:"restitutionThreshold"`
	// Slop is the penetration left uncorrected by the position passes.
	Slop float64 `yaml:"slop"`
	// Baumgarte is the fraction of remaining penetration removed per position pass.
	Baumgarte     float64 `yaml:"baumgarte"`
	MaxCorrection float64 `yaml:"maxCorrection"`

	// A body counts as settled after SettleSteps consecutive steps below
	// these speeds.
	SettleSpeed        float64 `yaml:"settleSpeed"`
	SettleAngularSpeed float64 `yaml:"settleAngularSpeed"`
	SettleSteps        int     `yaml:"settleSteps"`

	SpawnY       float64 `yaml:"spawnY"`
	SpawnSpacing float64 `yaml:"spawnSpacing"`
	Seed         uint64  `yaml:"seed"`
}

// DefaultConfig returns the footer playground settings.
func DefaultConfig() Config {
	return Config{
		Gravity:     r2.Vec{X: 0, Y: 1000},
		Restitution: 0.5,
		Friction:    0.15,
		FrictionAir: 0.02,
		Density:     0.002,

		WallThickness: 200,
		TopWallDelay:  3 * time.Second,

		DragStiffness: 0.6,
		MaxDragSpeed:  1200,

		Iterations: Iterations{Constraint: 10, Position: 20, Velocity: 16},

		TimeStep:    1.0 / 60,
		MaxSubSteps: 5,

		RestitutionThreshold: 60,
		Slop:                 0.5,
		Baumgarte:            0.2,
		MaxCorrection:        20,

		SettleSpeed:        8,
		SettleAngularSpeed: 0.05,
		SettleSteps:        30,

		SpawnY:       -500,
		SpawnSpacing: 200,
		Seed:         1,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	finite := func(name string, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, name)
		}
		return nil
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"gravity.x", c.Gravity.X}, {"gravity.y", c.Gravity.Y},
		{"restitution", c.Restitution}, {"friction", c.Friction},
		{"frictionAir", c.FrictionAir}, {"density", c.Density},
		{"wallThickness", c.WallThickness}, {"dragStiffness", c.DragStiffness},
		{"maxDragSpeed", c.MaxDragSpeed}, {"timeStep", c.TimeStep},
		{"spawnY", c.SpawnY}, {"spawnSpacing", c.SpawnSpacing},
	} {
		if err := finite(f.name, f.v); err != nil {
			return err
		}
	}
	switch {
	case c.TimeStep <= 0:
		return fmt.Errorf("%w: timeStep must be > 0, got %v", ErrInvalidConfig, c.TimeStep)
	case c.MaxSubSteps < 1:
		return fmt.Errorf("%w: maxSubSteps must be >= 1, got %d", ErrInvalidConfig, c.MaxSubSteps)
	case c.Density <= 0:
		return fmt.Errorf("%w: density must be > 0, got %v", ErrInvalidConfig, c.Density)
	case c.WallThickness <= 0:
		return fmt.Errorf("%w: wallThickness must be > 0, got %v", ErrInvalidConfig, c.WallThickness)
	case c.Restitution < 0 || c.Restitution > 1:
		return fmt.Errorf("%w: restitution must be in [0, 1], got %v", ErrInvalidConfig, c.Restitution)
	case c.Friction < 0:
		return fmt.Errorf("%w: friction must be >= 0, got %v", ErrInvalidConfig, c.Friction)
	case c.FrictionAir < 0 || c.FrictionAir >= 1:
		return fmt.Errorf("%w: frictionAir must be in [0, 1), got %v", ErrInvalidConfig, c.FrictionAir)
	case c.DragStiffness <= 0 || c.DragStiffness > 1:
		return fmt.Errorf("%w: dragStiffness must be in (0, 1], got %v", ErrInvalidConfig, c.DragStiffness)
	case c.MaxDragSpeed <= 0:
		return fmt.Errorf("%w: maxDragSpeed must be > 0, got %v", ErrInvalidConfig, c.MaxDragSpeed)
	case c.Iterations.Constraint < 1 || c.Iterations.Position < 0 || c.Iterations.Velocity < 1:
		return fmt.Errorf("%w: iterations %+v out of range", ErrInvalidConfig, c.Iterations)
	case c.TopWallDelay < 0:
		return fmt.Errorf("%w: topWallDelay must be >= 0, got %v", ErrInvalidConfig, c.TopWallDelay)
	case c.Baumgarte < 0 || c.Baumgarte > 1:
		return fmt.Errorf("%w: baumgarte must be in [0, 1], got %v", ErrInvalidConfig, c.Baumgarte)
	}
	return nil
}
