package game

import (
	"math"
	"math/rand"
)

// ShipRole partitions the fleet. Waiting ships become chain members when
// collected; no role ever becomes Enemy.
type ShipRole int

const (
	RoleChain   ShipRole = iota // lead or trailing companion
	RoleWaiting                 // companion waiting to be collected
	RoleEnemy
)

// Ship is a passive model: it never reads another ship, the board, or the
// photon pool. Cross-entity relationships use the fleet id (photons store
// the firing ship's id, not the ship).
//
// Velocity and weapon state change in Update; position changes are committed
// by the collision controller, which can see the board.
type Ship struct {
	id   int
	role ShipRole

	X, Y float64
	VX   float64
	VY   float64

	angle       float64 // facing, degrees: left 0, up 90, right 180, down 270
	targetAngle float64

	alive      bool
	fallAmount float64
	fireCool   int

	cfg ShipConfig
	rng *rand.Rand
}

// NewShip creates a live ship at (x, y) facing up.
func NewShip(id int, role ShipRole, x, y float64, cfg ShipConfig, rng *rand.Rand) *Ship {
	return &Ship{
		id:          id,
		role:        role,
		X:           x,
		Y:           y,
		angle:       90,
		targetAngle: 90,
		alive:       true,
		cfg:         cfg,
		rng:         rng,
	}
}

// ID returns the stable fleet id. Id 0 is the lead.
func (s *Ship) ID() int { return s.id }

// Role returns the ship's current role.
func (s *Ship) Role() ShipRole { return s.role }

// SetRole changes the role. Only Waiting to Chain transitions occur in play.
func (s *Ship) SetRole(role ShipRole) { s.role = role }

// Size returns the ship diameter in screen units.
func (s *Ship) Size() float64 { return s.cfg.Size }

// Angle returns the facing angle in degrees.
func (s *Ship) Angle() float64 { return s.angle }

// Alive reports whether the ship still exists at all. A dead ship is not
// drawn, targeted, or collided.
func (s *Ship) Alive() bool { return s.alive }

// Active reports whether the ship participates in play. A falling ship is
// alive but inactive: drawn, never targeted or collided.
func (s *Ship) Active() bool { return s.alive && s.fallAmount == 0 }

// Falling reports whether the ship is animating its death fall.
func (s *Ship) Falling() bool { return s.fallAmount > 0 }

// FallRatio returns fall progress in [0, 1] for rendering.
func (s *Ship) FallRatio() float64 {
	if s.fallAmount <= s.cfg.FallMin {
		return 0
	}
	r := (s.fallAmount - s.cfg.FallMin) / (s.cfg.FallMax - s.cfg.FallMin)
	if r > 1 {
		r = 1
	}
	return r
}

// Destroy starts the ship falling. The ship tumbles for several ticks before
// it dies; to remove a ship instantly use Kill.
func (s *Ship) Destroy() {
	if s.fallAmount == 0 {
		s.fallAmount = s.cfg.FallMin
	}
}

// Kill removes the ship immediately, skipping the fall animation.
func (s *Ship) Kill() { s.alive = false }

// CanFire reports whether the weapon cooldown has elapsed.
func (s *Ship) CanFire() bool { return s.fireCool <= 0 }

// Cooldown advances the weapon cooldown by one tick.
func (s *Ship) Cooldown() {
	if s.fireCool > 0 {
		s.fireCool--
	}
}

// ResetCooldown restarts the weapon cooldown after a shot.
func (s *Ship) ResetCooldown() { s.fireCool = s.cfg.Cooldown }

// Update applies one tick's control code to the ship's velocity and facing.
// It never moves the ship: position commits happen in collision resolution,
// which can consult the board. A falling ship ignores its controller and
// animates until it passes the far fall threshold.
func (s *Ship) Update(code ControlCode) {
	if !s.alive {
		return
	}
	if s.fallAmount >= s.cfg.FallMin {
		s.fallAmount += s.cfg.FallRate
		s.alive = s.fallAmount <= s.cfg.FallMax
		return
	}

	switch {
	case code&ControlMoveLeft != 0:
		s.targetAngle = 0
		s.VX = -s.cfg.MoveSpeed
		s.VY = 0
	case code&ControlMoveRight != 0:
		s.targetAngle = 180
		s.VX = s.cfg.MoveSpeed
		s.VY = 0
	case code&ControlMoveUp != 0:
		// Screen y grows downward, so up is negative vy.
		s.targetAngle = 90
		s.VY = -s.cfg.MoveSpeed
		s.VX = 0
	case code&ControlMoveDown != 0:
		s.targetAngle = 270
		s.VY = s.cfg.MoveSpeed
		s.VX = 0
	default:
		s.VX *= s.cfg.SpeedDamping
		s.VY *= s.cfg.SpeedDamping
		if math.Abs(s.VX) < s.cfg.Epsilon {
			s.VX = 0
		}
		if math.Abs(s.VY) < s.cfg.Epsilon {
			s.VY = 0
		}
	}

	s.turnToward()
}

// turnToward eases the facing angle to the target. While turning the ship
// does not translate; a 180 degree reversal gets a small random bias so the
// turn direction is not always the same.
func (s *Ship) turnToward() {
	if s.angle > s.targetAngle {
		diff := s.angle - s.targetAngle
		if diff <= s.cfg.TurnSpeed {
			s.angle = s.targetAngle
		} else {
			if diff == 180 {
				diff += s.rng.Float64()*s.cfg.RandFactor - s.cfg.RandFactor/2
			}
			if diff > 180 {
				s.angle += s.cfg.TurnSpeed
			} else {
				s.angle -= s.cfg.TurnSpeed
			}
		}
		s.VX, s.VY = 0, 0
	} else if s.angle < s.targetAngle {
		diff := s.targetAngle - s.angle
		if diff <= s.cfg.TurnSpeed {
			s.angle = s.targetAngle
		} else {
			if diff == 180 {
				diff += s.rng.Float64()*s.cfg.RandFactor - s.cfg.RandFactor/2
			}
			if diff > 180 {
				s.angle -= s.cfg.TurnSpeed
			} else {
				s.angle += s.cfg.TurnSpeed
			}
		}
		s.VX, s.VY = 0, 0
	}

	for s.angle > 360 {
		s.angle -= 360
	}
	for s.angle < 0 {
		s.angle += 360
	}
}

// AdjustForDrift eases a stopped ship back to its tile center. dx and dy are
// the signed offsets from the center on each axis; an axis drifts only while
// its velocity is zero.
func (s *Ship) AdjustForDrift(dx, dy float64) {
	if s.VX == 0 {
		if dx < -s.cfg.DriftTolerance {
			s.X += s.cfg.DriftSpeed
		} else if dx > s.cfg.DriftTolerance {
			s.X -= s.cfg.DriftSpeed
		}
	}
	if s.VY == 0 {
		if dy < -s.cfg.DriftTolerance {
			s.Y += s.cfg.DriftSpeed
		} else if dy > s.cfg.DriftTolerance {
			s.Y -= s.cfg.DriftSpeed
		}
	}
}
