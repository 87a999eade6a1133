package game

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
)

type collisionFixture struct {
	board     *Board
	fleet     *Fleet
	photons   *PhotonPool
	chain     *Chain
	events    *eventQueue
	collision *CollisionController
}

func newCollisionFixture(t *testing.T, companions, enemies int) *collisionFixture {
	t.Helper()
	board := NewBoard(testBoardConfig(), zerolog.Nop())
	scfg := testShipConfig()
	scfg.NumCompanions = companions
	scfg.NumEnemies = enemies
	rng := rand.New(rand.NewSource(11))
	fleet := NewFleet(scfg, rng)
	photons := NewPhotonPool(testPhotonConfig(16))
	pcfg := PlayerConfig{FollowDelay: 2, MaxCompanions: 8, DesyncTiles: 2, CompanionCost: 1}
	chain := NewChain(board, fleet, pcfg)
	events := &eventQueue{}
	gcfg := GameConfig{NudgeAmount: 0.1, NudgeLimit: 100, PlanInterval: 10}
	cc := NewCollisionController(board, fleet, photons, chain, events, gcfg, 36, rng)

	// Spread everyone out so only deliberately placed ships collide.
	for id := 0; id < fleet.Size(); id++ {
		s := fleet.Get(id)
		s.X = board.BoardToScreen(id)
		s.Y = board.BoardToScreen(7)
	}
	return &collisionFixture{board: board, fleet: fleet, photons: photons, chain: chain, events: events, collision: cc}
}

func (f *collisionFixture) place(id, tx, ty int) *Ship {
	s := f.fleet.Get(id)
	s.X = f.board.BoardToScreen(tx)
	s.Y = f.board.BoardToScreen(ty)
	return s
}

func TestCollision_MoveBlockedLeavingSafety(t *testing.T) {
	f := newCollisionFixture(t, 0, 1)
	s := f.place(1, 9, 0) // right edge column
	s.VX = 100            // would step off the board
	f.collision.Resolve()
	if s.X != f.board.BoardToScreen(9) {
		t.Fatalf("x = %v, ship should not step from safe to unsafe", s.X)
	}

	// A ship already in unsafe space keeps moving (unsafe to unsafe).
	s.X = -50
	s.VX = -10
	f.collision.Resolve()
	if s.X != -60 {
		t.Fatalf("x = %v, unsafe-to-unsafe moves must commit", s.X)
	}
}

func TestCollision_MoveCommitsOntoFallingTile(t *testing.T) {
	// Destroying the destination makes it unsafe, so the step is refused.
	f := newCollisionFixture(t, 0, 1)
	s := f.place(1, 3, 0)
	f.board.DestroyTileAt(4, 0)
	s.VX = f.board.BoardToScreen(4) - f.board.BoardToScreen(3)
	f.collision.Resolve()
	if f.board.ScreenToBoard(s.X) != 3 {
		t.Fatalf("ship stepped onto a falling tile, x tile = %d", f.board.ScreenToBoard(s.X))
	}
}

func TestCollision_NudgeSeparatesIdenticalPositions(t *testing.T) {
	f := newCollisionFixture(t, 0, 2)
	a := f.place(1, 4, 4)
	b := f.place(2, 4, 4)
	f.collision.Resolve()
	if a.X == b.X && a.Y == b.Y {
		t.Fatal("identical ships still identical after resolution")
	}
}

func TestCollision_NudgeCapRestoresPosition(t *testing.T) {
	f := newCollisionFixture(t, 0, 1)
	s := f.place(1, 4, 4)
	// No safe tile anywhere: every nudge attempt fails.
	for x := 0; x < f.board.Width(); x++ {
		for y := 0; y < f.board.Height(); y++ {
			f.board.DestroyTileAt(x, y)
		}
	}
	x, y := s.X, s.Y
	if f.collision.safeNudge(s) {
		t.Fatal("nudge should fail with no safe tiles")
	}
	if s.X != x || s.Y != y {
		t.Fatalf("failed nudge moved the ship to (%v,%v)", s.X, s.Y)
	}
}

func TestCollision_PushFartherShipAway(t *testing.T) {
	f := newCollisionFixture(t, 0, 2)
	a := f.place(1, 4, 4)
	b := f.place(2, 4, 4)
	// b sits off-center; it is farther and gets pushed away from a.
	b.X += 10
	f.collision.Resolve()
	ax, ay := f.board.ScreenToBoard(a.X), f.board.ScreenToBoard(a.Y)
	bx, by := f.board.ScreenToBoard(b.X), f.board.ScreenToBoard(b.Y)
	if ax == bx && ay == by && a.X == b.X && a.Y == b.Y {
		t.Fatal("overlapping enemies were not separated")
	}
	if a.X != f.board.BoardToScreen(4) {
		t.Fatalf("nearer ship moved (x=%v); the farther one should be pushed", a.X)
	}
}

func TestCollision_EnemyDestroysChainMember(t *testing.T) {
	f := newCollisionFixture(t, 0, 1)
	lead := f.place(0, 4, 4)
	f.place(1, 4, 4)
	f.collision.Resolve()
	if f.chain.Len() != 0 {
		t.Fatalf("chain length = %d, want 0 after the lead is caught", f.chain.Len())
	}
	if !lead.Falling() {
		t.Fatal("caught lead should be falling")
	}
	found := false
	for _, ev := range f.events.drain() {
		if ev.Kind == EventBump {
			found = true
		}
	}
	if !found {
		t.Fatal("no bump event for the kill")
	}
}

func TestCollision_PickupRequiresCoins(t *testing.T) {
	f := newCollisionFixture(t, 1, 0)
	f.place(0, 4, 4)
	comp := f.place(1, 4, 4)
	f.collision.Resolve()
	if f.chain.Len() != 1 {
		t.Fatal("pickup should fail without coins")
	}
	f.chain.AddCoin()
	f.place(1, 4, 4)
	f.collision.Resolve()
	if f.chain.Len() != 2 || comp.Role() != RoleChain {
		t.Fatal("pickup should succeed once the cost is covered")
	}
	if f.chain.Coins() != 0 {
		t.Fatalf("coins = %d, want 0 after paying the cost", f.chain.Coins())
	}
}

func TestCollision_PhotonImpact(t *testing.T) {
	f := newCollisionFixture(t, 0, 1)
	enemy := f.place(1, 4, 4)
	enemy.VX, enemy.VY = 0, 0
	// Lead fires from the left; photon arrives in the enemy's cell.
	f.photons.Allocate(0, f.board.BoardToScreen(4)-5, f.board.BoardToScreen(4), 1, 0, false)
	x := enemy.X
	f.collision.Resolve()

	if f.photons.Size() != 0 {
		t.Fatal("photon should be destroyed on impact")
	}
	if !f.board.IsFallingAt(4, 4) {
		t.Fatal("tile under the struck ship should start falling")
	}
	if enemy.X <= x {
		t.Fatalf("enemy x = %v, want knockback to the right of %v", enemy.X, x)
	}
	if f.chain.Coins() != 1 {
		t.Fatalf("coins = %d, want 1 for the hit", f.chain.Coins())
	}
}

func TestCollision_OwnerImmuneToOwnPhoton(t *testing.T) {
	f := newCollisionFixture(t, 0, 1)
	enemy := f.place(1, 4, 4)
	f.photons.Allocate(1, enemy.X, enemy.Y, 1, 0, false)
	f.collision.Resolve()
	if f.photons.Size() != 1 {
		t.Fatal("a ship must not be hit by its own photon")
	}
	if f.board.IsFallingAt(4, 4) {
		t.Fatal("no tile destruction from a self pass-through")
	}
}
