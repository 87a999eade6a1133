package game

import (
	"math/rand"

	"github.com/rs/zerolog"
)

// Status is the session's high-level state.
type Status int

const (
	StatusPlaying Status = iota
	StatusVictory        // every enemy is gone
	StatusDefeat         // every chain member is gone
)

// Session owns every model and controller for one game and drives them
// through the per-tick pipeline. The whole tick runs on the caller's
// goroutine; there is no concurrency anywhere in the core.
type Session struct {
	cfg Config
	log zerolog.Logger
	rng *rand.Rand

	board     *Board
	fleet     *Fleet
	photons   *PhotonPool
	chain     *Chain
	gameplay  *GameplayController
	collision *CollisionController
	events    *eventQueue

	ticks int64
}

// NewSession builds a session from validated config. The seed fixes every
// random draw (ship placement, nudges, turn jitter), so two sessions with
// the same config, seed, and primary commands play out identically.
func NewSession(cfg Config, seed int64, primary Controller, log zerolog.Logger) *Session {
	s := &Session{
		cfg: cfg,
		log: log,
		rng: rand.New(rand.NewSource(seed)),
	}
	s.events = &eventQueue{}
	s.board = NewBoard(cfg.Board, log)
	s.fleet = NewFleet(cfg.Ship, s.rng)
	s.photons = NewPhotonPool(cfg.Photon)
	s.chain = NewChain(s.board, s.fleet, cfg.Player)
	s.gameplay = NewGameplayController(s.board, s.fleet, s.photons, s.chain, s.events, cfg.Game, primary, s.rng)
	s.collision = NewCollisionController(s.board, s.fleet, s.photons, s.chain, s.events, cfg.Game, cfg.Photon.Knockback, s.rng)
	return s
}

// Step advances the simulation one tick: think (drift, retirement,
// controllers, chain replay, weapon fire), then act (movement commit and
// collision resolution), then aging (falling tiles, photon life). The tick
// runs to completion; nothing suspends mid-tick.
func (s *Session) Step() {
	s.gameplay.Update()
	s.collision.Resolve()
	s.board.Update()
	s.photons.Update()
	s.ticks++
}

// Status reports whether the game is still going.
func (s *Session) Status() Status {
	if s.chain.Len() == 0 {
		return StatusDefeat
	}
	if s.fleet.NumActiveEnemies() == 0 {
		return StatusVictory
	}
	return StatusPlaying
}

// Ticks returns the number of completed steps.
func (s *Session) Ticks() int64 { return s.ticks }

// Board exposes the tile grid.
func (s *Session) Board() *Board { return s.board }

// Fleet exposes the ship registry.
func (s *Session) Fleet() *Fleet { return s.fleet }

// Photons exposes the projectile pool.
func (s *Session) Photons() *PhotonPool { return s.photons }

// Chain exposes the companion chain.
func (s *Session) Chain() *Chain { return s.chain }

// DrainEvents returns the triggers raised since the last drain and clears
// them. The slice is reused; consume it before the next Step.
func (s *Session) DrainEvents() []Event {
	return s.events.drain()
}
