package game

// replaySample is one tick of the chain's history: where the front of the
// chain was and what it was told to do.
type replaySample struct {
	x, y float64
	code ControlCode
}

// Chain is the ordered sequence of player-controlled ships. Member 0 is the
// lead; member i replays the sample recorded i*followDelay ticks ago, so the
// whole chain retraces the lead's history at a fixed spacing.
//
// The history ring holds maxCompanions*followDelay samples, enough for every
// legal chain position to have a valid delayed sample once the ring is full.
type Chain struct {
	board *Board
	fleet *Fleet

	ring []replaySample
	head int // index of the most recent sample, -1 before the first record
	size int

	followDelay   int
	desyncTiles   int
	companionCost int
	maxMembers    int

	members []int // fleet ids, front first
	codes   []ControlCode

	coins int
}

// NewChain creates a chain holding only the lead ship.
func NewChain(board *Board, fleet *Fleet, cfg PlayerConfig) *Chain {
	return &Chain{
		board:         board,
		fleet:         fleet,
		ring:          make([]replaySample, cfg.MaxCompanions*cfg.FollowDelay),
		head:          -1,
		followDelay:   cfg.FollowDelay,
		desyncTiles:   cfg.DesyncTiles,
		companionCost: cfg.CompanionCost,
		maxMembers:    cfg.MaxCompanions,
		members:       []int{0},
		codes:         []ControlCode{ControlNone},
	}
}

// Len returns the number of chain members, lead included.
func (c *Chain) Len() int { return len(c.members) }

// Lead returns the ship at the front of the chain, or nil when the chain has
// been wiped out.
func (c *Chain) Lead() *Ship {
	if len(c.members) == 0 {
		return nil
	}
	return c.fleet.Get(c.members[0])
}

// MemberShip returns the ship at chain position i.
func (c *Chain) MemberShip(i int) *Ship { return c.fleet.Get(c.members[i]) }

// CommandFor returns the command member i applied in the last Advance. The
// gameplay layer reads it to process delayed fire commands.
func (c *Chain) CommandFor(i int) ControlCode { return c.codes[i] }

// Contains reports whether the ship with the given id is a chain member.
func (c *Chain) Contains(id int) bool { return c.indexOf(id) >= 0 }

func (c *Chain) indexOf(id int) int {
	for i, m := range c.members {
		if m == id {
			return i
		}
	}
	return -1
}

// Coins returns the chain's coin balance.
func (c *Chain) Coins() int { return c.coins }

// AddCoin awards one coin.
func (c *Chain) AddCoin() { c.coins++ }

// Record appends the lead's position and command for this tick. Called once
// per tick, before Advance. Once full the ring overwrites oldest-first.
func (c *Chain) Record(x, y float64, code ControlCode) {
	c.head = (c.head + 1) % len(c.ring)
	c.ring[c.head] = replaySample{x: x, y: y, code: code}
	if c.size < len(c.ring) {
		c.size++
	}
}

// sampleAt returns the sample recorded offset ticks ago. offset must be less
// than size.
func (c *Chain) sampleAt(offset int) replaySample {
	return c.ring[(c.head-offset+len(c.ring))%len(c.ring)]
}

// Advance replays one tick of history to every member, front to back. A
// member whose position has diverged from its replayed sample by more than
// the desync threshold (in tiles, on either axis) snaps to the sample's tile
// center; collisions deflect members off course and the snap keeps the error
// from accumulating.
//
// Members whose delay offset exceeds the recorded history idle until enough
// samples exist.
func (c *Chain) Advance() {
	for i, id := range c.members {
		ship := c.fleet.Get(id)
		offset := i * c.followDelay
		if offset >= c.size {
			c.codes[i] = ControlNone
			ship.Update(ControlNone)
			continue
		}
		smp := c.sampleAt(offset)
		c.codes[i] = smp.code
		ship.Update(smp.code)

		if !ship.Active() {
			continue
		}
		tx := c.board.ScreenToBoard(ship.X)
		ty := c.board.ScreenToBoard(ship.Y)
		wx := c.board.ScreenToBoard(smp.x)
		wy := c.board.ScreenToBoard(smp.y)
		if abs(tx-wx) > c.desyncTiles || abs(ty-wy) > c.desyncTiles {
			ship.X = c.board.BoardToScreen(wx)
			ship.Y = c.board.BoardToScreen(wy)
		}
	}
}

// Collect appends a waiting companion to the chain, spending coins. It
// refuses when the chain is full or the coins do not cover the cost. The new
// member starts at its would-be replay sample when enough history exists,
// else at the current tail's position.
func (c *Chain) Collect(ship *Ship) bool {
	if len(c.members) >= c.maxMembers || c.coins < c.companionCost {
		return false
	}
	c.coins -= c.companionCost

	offset := len(c.members) * c.followDelay
	if offset < c.size {
		smp := c.sampleAt(offset)
		ship.X, ship.Y = smp.x, smp.y
	} else if len(c.members) > 0 {
		tail := c.fleet.Get(c.members[len(c.members)-1])
		ship.X, ship.Y = tail.X, tail.Y
	}
	ship.SetRole(RoleChain)
	c.members = append(c.members, ship.ID())
	c.codes = append(c.codes, ControlNone)
	return true
}

// Remove destroys the chain member with the given id and drops it from the
// chain. Trailing members shift forward one position and catch up through
// the replay ring; if the lead itself is removed the next member becomes the
// new front. A removed ship never reverts to waiting.
func (c *Chain) Remove(id int) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	c.fleet.Get(id).Destroy()
	c.members = append(c.members[:i], c.members[i+1:]...)
	c.codes = c.codes[:len(c.members)]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
