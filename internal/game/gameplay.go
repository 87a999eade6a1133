package game

import (
	"math"
	"math/rand"
)

// Firing patterns: plain tiles fire a photon every 90 degrees, power tiles
// every 45.
const (
	normalFireStep = 90.0
	powerFireStep  = 45.0
)

// GameplayController turns controller decisions into velocities and weapon
// fire. It never commits a position change: moving causes collisions, so
// that belongs to the collision controller.
type GameplayController struct {
	board   *Board
	fleet   *Fleet
	photons *PhotonPool
	chain   *Chain
	events  *eventQueue

	// controls is indexed by ship id. Chain members have no entry of their
	// own: the front of the chain is driven by the primary controller and
	// the rest replay its history.
	controls []Controller
	primary  Controller
}

func NewGameplayController(board *Board, fleet *Fleet, photons *PhotonPool, chain *Chain, events *eventQueue, cfg GameConfig, primary Controller, rng *rand.Rand) *GameplayController {
	g := &GameplayController{
		board:    board,
		fleet:    fleet,
		photons:  photons,
		chain:    chain,
		events:   events,
		controls: make([]Controller, fleet.Size()),
		primary:  primary,
	}
	g.placeShips(rng)
	for id := 1; id < fleet.Size(); id++ {
		switch fleet.Get(id).Role() {
		case RoleWaiting:
			g.controls[id] = IdleController{}
		case RoleEnemy:
			g.controls[id] = NewEnemyController(id, board, fleet, chain, cfg.PlanInterval)
		}
	}
	return g
}

// placeShips puts the lead at the board center and scatters everyone else
// over the remaining tiles, one ship per tile.
func (g *GameplayController) placeShips(rng *rand.Rand) {
	cx, cy := g.board.Width()/2, g.board.Height()/2
	lead := g.fleet.Lead()
	lead.X = g.board.BoardToScreen(cx)
	lead.Y = g.board.BoardToScreen(cy)

	cells := make([][2]int, 0, g.board.Width()*g.board.Height()-1)
	for x := 0; x < g.board.Width(); x++ {
		for y := 0; y < g.board.Height(); y++ {
			if x != cx || y != cy {
				cells = append(cells, [2]int{x, y})
			}
		}
	}
	rng.Shuffle(len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})
	for id := 1; id < g.fleet.Size(); id++ {
		s := g.fleet.Get(id)
		s.X = g.board.BoardToScreen(cells[id-1][0])
		s.Y = g.board.BoardToScreen(cells[id-1][1])
	}
}

// Update runs the think phase of one tick: drift correction, retirement,
// controller polling, chain replay, and weapon fire. Velocities are set but
// positions stay put until collision resolution.
func (g *GameplayController) Update() {
	for id := 0; id < g.fleet.Size(); id++ {
		s := g.fleet.Get(id)
		if s.Active() {
			s.AdjustForDrift(g.board.CenterOffset(s.X), g.board.CenterOffset(s.Y))
			g.retireIfStranded(s)
		}
	}

	g.updateChain()

	for id := 0; id < g.fleet.Size(); id++ {
		s := g.fleet.Get(id)
		if g.chain.Contains(id) || !s.Alive() {
			continue
		}
		if !s.Active() || g.controls[id] == nil {
			s.Update(ControlNone)
			continue
		}
		s.Update(g.controls[id].Action())
	}
}

// updateChain records the primary command against the chain front, replays
// history to every member, and processes fire commands. Companions fire
// when their replayed command carries the fire bit, echoing the front's
// shots at the follow delay. Cooldown gates every shot.
func (g *GameplayController) updateChain() {
	lead := g.chain.Lead()
	if lead == nil || !lead.Active() {
		g.chain.Advance()
		return
	}
	g.chain.Record(lead.X, lead.Y, g.primary.Action())
	g.chain.Advance()

	for i := 0; i < g.chain.Len(); i++ {
		s := g.chain.MemberShip(i)
		if !s.Active() {
			continue
		}
		if g.chain.CommandFor(i)&ControlFire != 0 && s.CanFire() {
			g.fireWeapon(s)
		} else {
			s.Cooldown()
		}
	}
}

// retireIfStranded starts the death fall for a ship whose tile is gone.
func (g *GameplayController) retireIfStranded(s *Ship) {
	tx := g.board.ScreenToBoard(s.X)
	ty := g.board.ScreenToBoard(s.Y)
	if g.board.InBounds(tx, ty) && !g.board.IsDestroyedAt(tx, ty) {
		return
	}
	g.events.push(EventFall, s.ID(), s.X, s.Y)
	if g.chain.Contains(s.ID()) {
		g.chain.Remove(s.ID())
	} else {
		s.Destroy()
	}
}

// fireWeapon sprays a ring of photons around the ship. On a power tile the
// ring is twice as dense and the photons carry the power flag.
func (g *GameplayController) fireWeapon(s *Ship) {
	power := g.board.IsPowerTileAtScreen(s.X, s.Y)
	step := normalFireStep
	if power {
		step = powerFireStep
	}
	for angle := 0.0; angle < 360.0; angle += step {
		rad := angle * math.Pi / 180
		g.photons.Allocate(s.ID(), s.X, s.Y, math.Cos(rad), math.Sin(rad), power)
	}
	g.events.push(EventFire, s.ID(), s.X, s.Y)
	s.ResetCooldown()
}
