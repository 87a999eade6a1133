package game

import (
	"math"
	"math/rand"
)

// CollisionController commits movement and resolves overlaps. Movement
// lives here rather than in the gameplay layer because moving is what causes
// collisions; the gameplay layer only decides velocities.
type CollisionController struct {
	board   *Board
	fleet   *Fleet
	photons *PhotonPool
	chain   *Chain
	events  *eventQueue
	rng     *rand.Rand

	nudgeAmount float64
	nudgeLimit  int
	knockback   float64
}

func NewCollisionController(board *Board, fleet *Fleet, photons *PhotonPool, chain *Chain, events *eventQueue, cfg GameConfig, knockback float64, rng *rand.Rand) *CollisionController {
	return &CollisionController{
		board:       board,
		fleet:       fleet,
		photons:     photons,
		chain:       chain,
		events:      events,
		rng:         rng,
		nudgeAmount: cfg.NudgeAmount,
		nudgeLimit:  cfg.NudgeLimit,
		knockback:   knockback,
	}
}

// Resolve runs one tick of collision handling: movement commit, then
// ship-ship resolution, then ship-photon impacts. One pass, no fixed point;
// a pair is resolved at most once per tick.
func (c *CollisionController) Resolve() {
	for id := 0; id < c.fleet.Size(); id++ {
		if s := c.fleet.Get(id); s.Active() {
			c.moveIfSafe(s)
		}
	}

	c.resolveChainContacts()
	c.separateEnemies()
	c.resolvePhotonImpacts()
}

// moveIfSafe adds the ship's velocity to its position unless the step would
// take it from a safe cell to an unsafe one. Unsafe-to-unsafe and
// safe-to-safe both commit, so a ship already over the edge keeps falling
// off rather than freezing in place.
func (c *CollisionController) moveIfSafe(s *Ship) {
	safeBefore := c.board.IsSafeAtScreen(s.X, s.Y)
	nx, ny := s.X+s.VX, s.Y+s.VY
	safeAfter := c.board.IsSafeAtScreen(nx, ny)
	if !(safeBefore && !safeAfter) {
		s.X, s.Y = nx, ny
	}
}

// resolveChainContacts handles the pairs with game meaning: a chain member
// sharing a tile with an enemy is destroyed and removed from the chain; a
// chain member sharing a tile with a waiting companion collects it when the
// coins cover the cost.
func (c *CollisionController) resolveChainContacts() {
	// The chain mutates during resolution, so walk a snapshot of its ids.
	ids := make([]int, c.chain.Len())
	for i := range ids {
		ids[i] = c.chain.MemberShip(i).ID()
	}

	for _, id := range ids {
		member := c.fleet.Get(id)
		if !member.Active() {
			continue
		}
		mx := c.board.ScreenToBoard(member.X)
		my := c.board.ScreenToBoard(member.Y)

		for other := 0; other < c.fleet.Size(); other++ {
			s := c.fleet.Get(other)
			if !s.Active() || c.chain.Contains(other) {
				continue
			}
			if c.board.ScreenToBoard(s.X) != mx || c.board.ScreenToBoard(s.Y) != my {
				continue
			}
			switch s.Role() {
			case RoleEnemy:
				c.chain.Remove(id)
				c.events.push(EventBump, id, member.X, member.Y)
			case RoleWaiting:
				if c.chain.Collect(s) {
					c.events.push(EventPickup, s.ID(), s.X, s.Y)
				}
			}
			if !member.Active() {
				break
			}
		}
	}
}

// separateEnemies resolves two active enemies occupying one cell. Identical
// positions get a random nudge on both ships; otherwise the ship farther
// from the cell center (Manhattan) is pushed away from the other, falling
// back to pushing the closer one, falling back to nudging both.
func (c *CollisionController) separateEnemies() {
	for i := 0; i < c.fleet.Size(); i++ {
		a := c.fleet.Get(i)
		if a.Role() != RoleEnemy || !a.Active() {
			continue
		}
		for j := i + 1; j < c.fleet.Size(); j++ {
			b := c.fleet.Get(j)
			if b.Role() != RoleEnemy || !b.Active() {
				continue
			}
			ax, ay := c.board.ScreenToBoard(a.X), c.board.ScreenToBoard(a.Y)
			bx, by := c.board.ScreenToBoard(b.X), c.board.ScreenToBoard(b.Y)
			if ax != bx || ay != by {
				continue
			}
			if a.X == b.X && a.Y == b.Y {
				c.safeNudge(a)
				c.safeNudge(b)
				continue
			}
			cx, cy := c.board.BoardToScreen(ax), c.board.BoardToScreen(ay)
			da := manhattan(a.X, a.Y, cx, cy)
			db := manhattan(b.X, b.Y, cx, cy)
			far, near := a, b
			if db > da {
				far, near = b, a
			}
			if !c.pushAway(far, near) && !c.pushAway(near, far) {
				c.safeNudge(a)
				c.safeNudge(b)
			}
		}
	}
}

// pushAway moves s one ship diameter directly away from o, committing only
// when the target lands on a safe tile.
func (c *CollisionController) pushAway(s, o *Ship) bool {
	nx := s.X + sign(s.X-o.X)*s.Size()
	ny := s.Y + sign(s.Y-o.Y)*s.Size()
	if !c.board.IsSafeAtScreen(nx, ny) {
		return false
	}
	s.X, s.Y = nx, ny
	return true
}

// safeNudge tries bounded random offsets from the ship's current position
// until one lands on a safe tile. Attempts are capped; on failure the ship
// is left exactly where it started.
func (c *CollisionController) safeNudge(s *Ship) bool {
	baseX, baseY := s.X, s.Y
	for i := 0; i < c.nudgeLimit; i++ {
		nx := baseX + c.rng.Float64()*2*c.nudgeAmount - c.nudgeAmount
		ny := baseY + c.rng.Float64()*2*c.nudgeAmount - c.nudgeAmount
		if c.board.IsSafeAt(c.board.ScreenToBoard(nx), c.board.ScreenToBoard(ny)) {
			s.X, s.Y = nx, ny
			return true
		}
	}
	s.X, s.Y = baseX, baseY
	return false
}

// resolvePhotonImpacts applies photon hits on enemies: the tile under the
// ship starts falling, the ship is knocked back along the photon's dominant
// velocity axes, the photon dies, and the chain earns a coin.
func (c *CollisionController) resolvePhotonImpacts() {
	for id := 0; id < c.fleet.Size(); id++ {
		s := c.fleet.Get(id)
		if s.Role() != RoleEnemy || !s.Active() {
			continue
		}
		sx := c.board.ScreenToBoard(s.X)
		sy := c.board.ScreenToBoard(s.Y)

		cur := c.photons.Cursor()
		for ph := cur.Next(); ph != nil; ph = cur.Next() {
			if ph.Owner == id {
				continue
			}
			if c.board.ScreenToBoard(ph.X) != sx || c.board.ScreenToBoard(ph.Y) != sy {
				continue
			}
			c.board.DestroyTileAt(sx, sy)
			s.X += ph.PushX() * c.knockback
			s.Y += ph.PushY() * c.knockback
			c.photons.Destroy(ph)
			c.chain.AddCoin()
			c.events.push(EventBump, id, s.X, s.Y)
		}
	}
}

func manhattan(x0, y0, x1, y1 float64) float64 {
	return math.Abs(x1-x0) + math.Abs(y1-y0)
}

func sign(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
