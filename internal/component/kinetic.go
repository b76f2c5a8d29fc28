package component

import "github.com/antitower/server/internal/vmath"

type Velocity struct {
	Value vmath.Vec3
}

type Acceleration struct {
	Value vmath.Vec3
}

// Steering is the homing gain used when a tracker chases a detected target.
type Steering struct {
	AccelRate float64
}
