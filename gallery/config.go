package gallery

import (
	"fmt"
	"math"
)

// Config holds the tunables of the visibility and scoring model
type Config struct {
	// ConeAngle is the total field of view of a guard in radians
	ConeAngle float64

	// RaysInCone is the number of evenly spaced rays swept across the cone
	RaysInCone int

	// CornerEpsilon is the angular offset applied on both sides of every wall endpoint
	CornerEpsilon float64

	// MaxRange is how far a ray travels when it hits nothing
	MaxRange float64

	// DuplicateTolerance is the per-axis distance below which consecutive hits are merged
	DuplicateTolerance float64

	// SampleSpacing is the distance between floor sample points
	SampleSpacing float64

	// SampleMargin insets the sampling grid from the room bounding box
	SampleMargin float64

	// GuardRadius is the body radius used for hit testing and clamping
	GuardRadius float64

	// ArrowDistance is how far the rotation handle sits from the guard centre
	ArrowDistance float64

	// ArrowHitRadius is the pick radius of the rotation handle
	ArrowHitRadius float64

	// BaseScore is the score before guard and art adjustments
	BaseScore int

	// SpawnPoint is where newly added guards appear
	SpawnPoint Point
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ConeAngle:          math.Pi * 0.6, // 108 degrees
		RaysInCone:         60,
		CornerEpsilon:      0.0001,
		MaxRange:           1000.0,
		DuplicateTolerance: 0.1,
		SampleSpacing:      30.0,
		SampleMargin:       10.0,
		GuardRadius:        20.0,
		ArrowDistance:      20.0 * 3.6,
		ArrowHitRadius:     15.0,
		BaseScore:          5,
		SpawnPoint:         Point{X: 400, Y: 300},
	}
}

// Validate reports the first unusable setting
func (c Config) Validate() error {
	switch {
	case c.ConeAngle <= 0 || c.ConeAngle > 2*math.Pi:
		return fmt.Errorf("cone angle %v out of range (0, 2π]", c.ConeAngle)
	case c.RaysInCone <= 0:
		return fmt.Errorf("rays in cone must be positive, got %d", c.RaysInCone)
	case c.MaxRange <= 0:
		return fmt.Errorf("max range must be positive, got %v", c.MaxRange)
	case c.SampleSpacing <= 0:
		return fmt.Errorf("sample spacing must be positive, got %v", c.SampleSpacing)
	case c.GuardRadius <= 0:
		return fmt.Errorf("guard radius must be positive, got %v", c.GuardRadius)
	case c.CornerEpsilon < 0 || c.DuplicateTolerance < 0 || c.SampleMargin < 0 || c.ArrowHitRadius < 0:
		return fmt.Errorf("epsilon, tolerance, margin and hit radius must not be negative")
	}
	return nil
}
