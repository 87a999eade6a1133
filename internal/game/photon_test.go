package game

import "testing"

func testPhotonConfig(capacity int) PhotonConfig {
	return PhotonConfig{
		Capacity: capacity,
		Speed:    5,
		Lifespan: 40,
	}
}

func countLive(p *PhotonPool) int {
	n := 0
	cur := p.Cursor()
	for ph := cur.Next(); ph != nil; ph = cur.Next() {
		n++
	}
	return n
}

func TestPhotonPool_AllocateScalesVelocity(t *testing.T) {
	p := NewPhotonPool(testPhotonConfig(4))
	p.Allocate(1, 10, 20, 1, 0, false)
	cur := p.Cursor()
	ph := cur.Next()
	if ph == nil {
		t.Fatal("expected a live photon")
	}
	if ph.Owner != 1 || ph.X != 10 || ph.Y != 20 {
		t.Fatalf("photon state = owner %d at (%v,%v)", ph.Owner, ph.X, ph.Y)
	}
	if ph.VX != 5 || ph.VY != 0 {
		t.Fatalf("velocity = (%v,%v), want (5,0)", ph.VX, ph.VY)
	}
	if ph.Life != 40 {
		t.Fatalf("life = %d, want 40", ph.Life)
	}
}

func TestPhotonPool_EvictsOldestAtCapacity(t *testing.T) {
	p := NewPhotonPool(testPhotonConfig(3))
	for i := 0; i < 5; i++ {
		p.Allocate(i, float64(i), 0, 1, 0, false)
	}
	if p.Size() != 3 {
		t.Fatalf("size = %d, want capacity 3", p.Size())
	}
	// Owners 0 and 1 were evicted; 2, 3, 4 survive oldest first.
	want := []int{2, 3, 4}
	cur := p.Cursor()
	for _, w := range want {
		ph := cur.Next()
		if ph == nil {
			t.Fatalf("ran out of photons before owner %d", w)
		}
		if ph.Owner != w {
			t.Fatalf("owner = %d, want %d", ph.Owner, w)
		}
	}
	if cur.Next() != nil {
		t.Fatal("more than capacity photons live")
	}
}

func TestPhotonPool_DestroyCountsOnce(t *testing.T) {
	p := NewPhotonPool(testPhotonConfig(4))
	p.Allocate(0, 0, 0, 1, 0, false)
	p.Allocate(1, 0, 0, 1, 0, false)
	p.Allocate(2, 0, 0, 1, 0, false)

	// Destroy the middle photon out of order.
	cur := p.Cursor()
	cur.Next()
	mid := cur.Next()
	p.Destroy(mid)
	if p.Size() != 2 {
		t.Fatalf("size after destroy = %d, want 2", p.Size())
	}
	p.Destroy(mid)
	if p.Size() != 2 {
		t.Fatal("double destroy decremented size twice")
	}

	// Let everything expire naturally; the dirty slot must not be
	// decremented again during trimming.
	for i := 0; i < 45; i++ {
		p.Update()
	}
	if p.Size() != 0 {
		t.Fatalf("size after expiry = %d, want 0", p.Size())
	}
	if countLive(p) != 0 {
		t.Fatal("cursor still yields photons after expiry")
	}
}

func TestPhotonPool_CursorSkipsDeadAndRestarts(t *testing.T) {
	p := NewPhotonPool(testPhotonConfig(4))
	for i := 0; i < 4; i++ {
		p.Allocate(i, 0, 0, 0, 1, false)
	}
	cur := p.Cursor()
	cur.Next()
	p.Destroy(cur.Next()) // owner 1

	if got := countLive(p); got != 3 {
		t.Fatalf("live photons = %d, want 3", got)
	}

	// Nested traversal must not disturb the outer one.
	outer := p.Cursor()
	first := outer.Next()
	inner := p.Cursor()
	for ph := inner.Next(); ph != nil; ph = inner.Next() {
	}
	second := outer.Next()
	if first.Owner != 0 || second.Owner != 2 {
		t.Fatalf("outer cursor saw owners %d, %d; want 0, 2", first.Owner, second.Owner)
	}
}

func TestPhotonPool_UpdateMovesAndExpires(t *testing.T) {
	p := NewPhotonPool(PhotonConfig{Capacity: 2, Speed: 3, Lifespan: 2})
	p.Allocate(0, 0, 0, 1, 0, false)
	p.Update()
	cur := p.Cursor()
	ph := cur.Next()
	if ph == nil || ph.X != 3 {
		t.Fatalf("photon did not move by its velocity")
	}
	p.Update()
	if p.Size() != 0 {
		t.Fatalf("size = %d after lifespan elapsed, want 0", p.Size())
	}
}

func TestPhotonPool_ReuseAfterWraparound(t *testing.T) {
	p := NewPhotonPool(testPhotonConfig(2))
	for i := 0; i < 20; i++ {
		p.Allocate(i, 0, 0, 1, 0, false)
		if p.Size() > 2 {
			t.Fatalf("size %d exceeds capacity at allocation %d", p.Size(), i)
		}
		if i%3 == 0 {
			cur := p.Cursor()
			if ph := cur.Next(); ph != nil {
				p.Destroy(ph)
			}
		}
		p.Update()
	}
	if got := countLive(p); got != p.Size() {
		t.Fatalf("cursor count %d disagrees with Size %d", got, p.Size())
	}
}
