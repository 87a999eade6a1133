package game

import "math/rand"

// Fleet owns every ship in a session. Ships are created once and only ever
// deactivated; the slice never grows or shrinks, so a ship id is a stable
// index for the whole session.
//
// Slot 0 is the lead, then the waiting companions, then the enemies.
// Traversal is by index; callers skip dead or inactive ships as their
// contract requires.
type Fleet struct {
	ships []*Ship
}

// NewFleet allocates 1 + companions + enemies ships at the origin. Placement
// happens later, once the board geometry is known.
func NewFleet(cfg ShipConfig, rng *rand.Rand) *Fleet {
	n := 1 + cfg.NumCompanions + cfg.NumEnemies
	f := &Fleet{ships: make([]*Ship, n)}
	f.ships[0] = NewShip(0, RoleChain, 0, 0, cfg, rng)
	for i := 1; i <= cfg.NumCompanions; i++ {
		f.ships[i] = NewShip(i, RoleWaiting, 0, 0, cfg, rng)
	}
	for i := cfg.NumCompanions + 1; i < n; i++ {
		f.ships[i] = NewShip(i, RoleEnemy, 0, 0, cfg, rng)
	}
	return f
}

// Size returns the total ship count, dead or alive.
func (f *Fleet) Size() int { return len(f.ships) }

// Get returns the ship with the given id. The id must be in [0, Size).
func (f *Fleet) Get(id int) *Ship { return f.ships[id] }

// Lead returns ship 0.
func (f *Fleet) Lead() *Ship { return f.ships[0] }

// NumActive counts ships that are alive and not falling.
func (f *Fleet) NumActive() int {
	n := 0
	for _, s := range f.ships {
		if s.Active() {
			n++
		}
	}
	return n
}

// NumAlive counts ships that still exist, falling included.
func (f *Fleet) NumAlive() int {
	n := 0
	for _, s := range f.ships {
		if s.Alive() {
			n++
		}
	}
	return n
}

// NumActiveEnemies counts enemies still in play. The session uses this for
// the victory check.
func (f *Fleet) NumActiveEnemies() int {
	n := 0
	for _, s := range f.ships {
		if s.Role() == RoleEnemy && s.Active() {
			n++
		}
	}
	return n
}
