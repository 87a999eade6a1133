package game

// Photon is one slot in the pool. Slots are allocated once and reused; a
// photon with Life <= 0 is logically absent.
type Photon struct {
	Owner int // fleet id of the firing ship, immune to its own shots
	X, Y  float64
	VX    float64
	VY    float64
	Life  int
	Power bool // fired from a power tile, renders in the hot palette

	// dirty marks a slot destroyed out of age order. Its removal was
	// already counted, so the trim pass must not count it again.
	dirty bool
}

// PushX returns the knockback direction on the x axis: the sign of the
// velocity when that component dominates, else zero. Diagonal photons push
// on both axes.
func (ph *Photon) PushX() float64 {
	return pushDir(ph.VX, ph.VY)
}

// PushY returns the knockback direction on the y axis.
func (ph *Photon) PushY() float64 {
	return pushDir(ph.VY, ph.VX)
}

func pushDir(v, w float64) float64 {
	speed := v*v + w*w
	switch {
	case v < 0 && v*v*4 > speed:
		return -1
	case v > 0 && v*v*4 > speed:
		return 1
	}
	return 0
}

// PhotonPool is a fixed-capacity circular buffer of photons. Allocation
// never grows the buffer: at capacity the oldest live photon is evicted.
//
// Slots occupy the region [head, head+count) mod capacity. count covers live
// slots plus dead ones not yet trimmed from the oldest end; size counts only
// slots that still owe a removal (live, or expired but untrimmed).
type PhotonPool struct {
	slots []Photon
	head  int
	count int
	size  int

	speed    float64
	lifespan int
}

// NewPhotonPool pre-allocates every slot. No allocation happens during play.
func NewPhotonPool(cfg PhotonConfig) *PhotonPool {
	return &PhotonPool{
		slots:    make([]Photon, cfg.Capacity),
		speed:    cfg.Speed,
		lifespan: cfg.Lifespan,
	}
}

// Size returns the live photon count.
func (p *PhotonPool) Size() int { return p.size }

// Lifespan returns the configured initial life, for life-ratio display.
func (p *PhotonPool) Lifespan() int { return p.lifespan }

// Allocate fires a photon from (x, y) along the unit direction (dx, dy),
// scaled to the pool speed. At capacity the oldest slot is evicted first,
// FIFO, in O(1).
func (p *PhotonPool) Allocate(owner int, x, y, dx, dy float64, power bool) {
	if p.count == len(p.slots) {
		old := &p.slots[p.head]
		if old.Life > 0 {
			p.size--
		} else if old.dirty {
			old.dirty = false
		}
		p.head = (p.head + 1) % len(p.slots)
		p.count--
	}
	s := &p.slots[(p.head+p.count)%len(p.slots)]
	s.Owner = owner
	s.X = x
	s.Y = y
	s.VX = dx * p.speed
	s.VY = dy * p.speed
	s.Life = p.lifespan
	s.Power = power
	s.dirty = false
	p.count++
	p.size++
}

// Destroy kills a photon before its natural expiry, as when it hits a ship.
// The live count drops immediately and the slot is marked dirty so the trim
// pass does not count the removal twice. Destroying a dead photon is a
// no-op.
func (p *PhotonPool) Destroy(ph *Photon) {
	if ph.Life <= 0 {
		return
	}
	ph.Life = 0
	ph.dirty = true
	p.size--
}

// Update ages and moves every live photon, then trims expired slots from the
// oldest end. A photon that expires mid-queue stays in its slot, skipped by
// cursors, until it reaches the head.
func (p *PhotonPool) Update() {
	for i := 0; i < p.count; i++ {
		s := &p.slots[(p.head+i)%len(p.slots)]
		if s.Life <= 0 {
			continue
		}
		s.Life--
		s.X += s.VX
		s.Y += s.VY
	}
	for p.count > 0 && p.slots[p.head].Life <= 0 {
		s := &p.slots[p.head]
		if s.dirty {
			s.dirty = false
		} else {
			p.size--
		}
		p.head = (p.head + 1) % len(p.slots)
		p.count--
	}
}

// Reset empties the pool.
func (p *PhotonPool) Reset() {
	for i := range p.slots {
		p.slots[i] = Photon{}
	}
	p.head = 0
	p.count = 0
	p.size = 0
}

// Cursor starts a traversal over the live photons, oldest first. Each
// traversal gets its own cursor value, so traversals can nest or restart
// freely. Photon pointers stay valid for the current tick only.
func (p *PhotonPool) Cursor() PhotonCursor {
	return PhotonCursor{pool: p}
}

// PhotonCursor walks the live photons of one pool. The zero value is not
// usable; obtain cursors from PhotonPool.Cursor.
type PhotonCursor struct {
	pool *PhotonPool
	pos  int
}

// Next returns the next live photon, or nil when the traversal is done.
func (c *PhotonCursor) Next() *Photon {
	for c.pos < c.pool.count {
		s := &c.pool.slots[(c.pool.head+c.pos)%len(c.pool.slots)]
		c.pos++
		if s.Life > 0 {
			return s
		}
	}
	return nil
}
