package game

import (
	"math/rand"
	"testing"
)

func testShipConfig() ShipConfig {
	return ShipConfig{
		Size:           30,
		MoveSpeed:      6.5,
		TurnSpeed:      15,
		Cooldown:       20,
		FallRate:       0.5,
		FallMin:        1,
		FallMax:        8,
		RandFactor:     0.1,
		DriftTolerance: 1,
		DriftSpeed:     0.5,
		SpeedDamping:   0.5,
		Epsilon:        0.01,
	}
}

func newTestShip(t *testing.T, role ShipRole) *Ship {
	t.Helper()
	return NewShip(0, role, 100, 100, testShipConfig(), rand.New(rand.NewSource(7)))
}

func TestShip_CommandsSetVelocity(t *testing.T) {
	cases := []struct {
		code   ControlCode
		vx, vy float64
		angle  float64
	}{
		{ControlMoveLeft, -6.5, 0, 0},
		{ControlMoveRight, 6.5, 0, 180},
		{ControlMoveUp, 0, -6.5, 90},
		{ControlMoveDown, 0, 6.5, 270},
	}
	for _, c := range cases {
		s := newTestShip(t, RoleChain)
		// Run long enough for any turn to complete.
		for i := 0; i < 20; i++ {
			s.Update(c.code)
		}
		if s.VX != c.vx || s.VY != c.vy {
			t.Fatalf("code %#x: velocity = (%v,%v), want (%v,%v)", c.code, s.VX, s.VY, c.vx, c.vy)
		}
		if s.Angle() != c.angle {
			t.Fatalf("code %#x: angle = %v, want %v", c.code, s.Angle(), c.angle)
		}
	}
}

func TestShip_TurningFreezesTranslation(t *testing.T) {
	s := newTestShip(t, RoleChain)
	// Facing up (90), commanded down (270): the first updates turn, not move.
	s.Update(ControlMoveDown)
	if s.VX != 0 || s.VY != 0 {
		t.Fatalf("velocity during turn = (%v,%v), want zero", s.VX, s.VY)
	}
	if s.Angle() == 90 {
		t.Fatal("angle did not start easing toward the target")
	}
}

func TestShip_DampingStopsShip(t *testing.T) {
	s := newTestShip(t, RoleChain)
	s.Update(ControlMoveLeft)
	for i := 0; i < 30; i++ {
		s.Update(ControlNone)
	}
	if s.VX != 0 || s.VY != 0 {
		t.Fatalf("velocity after damping = (%v,%v), want zero", s.VX, s.VY)
	}
}

func TestShip_FallLifecycle(t *testing.T) {
	s := newTestShip(t, RoleEnemy)
	if !s.Active() {
		t.Fatal("fresh ship should be active")
	}
	s.Destroy()
	if s.Active() {
		t.Fatal("falling ship should be inactive")
	}
	if !s.Alive() || !s.Falling() {
		t.Fatal("falling ship should still be alive and falling")
	}

	// fallMin=1, fallMax=8, fallRate=0.5: dead after 15 updates.
	for i := 0; i < 14; i++ {
		s.Update(ControlNone)
		if !s.Alive() {
			t.Fatalf("ship died early at update %d", i)
		}
	}
	s.Update(ControlNone)
	if s.Alive() {
		t.Fatal("ship should be dead past the far fall threshold")
	}

	// Controllers are ignored once dead.
	s.Update(ControlMoveLeft)
	if s.VX != 0 {
		t.Fatal("dead ship accepted a movement command")
	}
}

func TestShip_CooldownGate(t *testing.T) {
	s := newTestShip(t, RoleChain)
	if !s.CanFire() {
		t.Fatal("fresh ship should be able to fire")
	}
	s.ResetCooldown()
	if s.CanFire() {
		t.Fatal("cooldown should block fire right after a shot")
	}
	for i := 0; i < 19; i++ {
		s.Cooldown()
	}
	if s.CanFire() {
		t.Fatal("cooldown expired one tick early")
	}
	s.Cooldown()
	if !s.CanFire() {
		t.Fatal("cooldown should be over")
	}
}

func TestShip_DriftTowardCenter(t *testing.T) {
	s := newTestShip(t, RoleChain)

	// Ship sits 3 units right of center: drift left.
	x := s.X
	s.AdjustForDrift(3, 0)
	if s.X != x-0.5 {
		t.Fatalf("x = %v, want %v", s.X, x-0.5)
	}

	// Within tolerance: no drift.
	x = s.X
	s.AdjustForDrift(0.5, 0.5)
	if s.X != x {
		t.Fatal("drifted inside the tolerance band")
	}

	// A moving axis never drifts.
	s.Update(ControlMoveUp)
	for i := 0; i < 20; i++ {
		s.Update(ControlMoveUp)
	}
	y := s.Y
	s.AdjustForDrift(0, 5)
	if s.Y != y {
		t.Fatal("drifted on an axis with nonzero velocity")
	}
}
